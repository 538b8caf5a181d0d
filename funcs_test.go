package expr

import (
	"math"
	"testing"
)

func TestFuncArities(t *testing.T) {
	sum := func(vals ...float64) float64 {
		var s float64
		for _, v := range vals {
			s += v
		}
		return s
	}
	cases := []struct {
		name string
		fn   Callable
		args []float64
		want float64
	}{
		{"Func0", Func0(func() float64 { return 7 }, true), nil, 7},
		{"Func1", Func1(func(a float64) float64 { return a * 2 }, true), []float64{3}, 6},
		{"Func2", Func2(func(a, b float64) float64 { return a + b }, true), []float64{1, 2}, 3},
		{"Func3", Func3(func(a, b, c float64) float64 { return sum(a, b, c) }, true), []float64{1, 2, 3}, 6},
		{"Func7", Func7(func(a, b, c, d, e, f, g float64) float64 { return sum(a, b, c, d, e, f, g) }, true), []float64{1, 1, 1, 1, 1, 1, 1}, 7},
	}
	for _, c := range cases {
		if got := c.fn.invoke(nil, c.args); got != c.want {
			t.Errorf("%s: want %v, got %v", c.name, c.want, got)
		}
		if c.fn.IsClosure() {
			t.Errorf("%s: unexpectedly a closure", c.name)
		}
		if c.fn.Arity() != len(c.args) {
			t.Errorf("%s: arity %d does not match %d arguments", c.name, c.fn.Arity(), len(c.args))
		}
	}
}

func TestClosureArities(t *testing.T) {
	type box struct{ n float64 }
	fn := Closure2(func(ctx any, a, b float64) float64 {
		return ctx.(*box).n + a + b
	}, false)
	if !fn.IsClosure() {
		t.Fatal("Closure2 did not produce a closure")
	}
	if got := fn.invoke(&box{n: 10}, []float64{1, 2}); got != 13 {
		t.Errorf("Closure2: want 13, got %v", got)
	}
}

func TestClosure0(t *testing.T) {
	calls := new(int)
	fn := Closure0(func(ctx any) float64 {
		*ctx.(*int)++
		return 1
	}, false)
	fn.invoke(calls, nil)
	fn.invoke(calls, nil)
	if *calls != 2 {
		t.Errorf("Closure0: want 2 invocations, got %d", *calls)
	}
}

func TestFac(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 1},
		{1, 1},
		{5, 120},
		{10, 3628800},
		{-1, math.NaN()},
	}
	for _, c := range cases {
		got := fac(c.in)
		if math.IsNaN(c.want) {
			if !math.IsNaN(got) {
				t.Errorf("fac(%v): want NaN, got %v", c.in, got)
			}
			continue
		}
		if got != c.want {
			t.Errorf("fac(%v): want %v, got %v", c.in, c.want, got)
		}
	}
}

func TestFacOverflow(t *testing.T) {
	if got := fac(171); !math.IsInf(got, 1) {
		t.Errorf("fac(171): want +Inf, got %v", got)
	}
}

func TestNcr(t *testing.T) {
	cases := []struct {
		n, r, want float64
	}{
		{5, 2, 10},
		{5, 0, 1},
		{5, 5, 1},
		{5, 6, math.NaN()},
		{-1, 0, math.NaN()},
	}
	for _, c := range cases {
		got := ncr(c.n, c.r)
		if math.IsNaN(c.want) {
			if !math.IsNaN(got) {
				t.Errorf("ncr(%v, %v): want NaN, got %v", c.n, c.r, got)
			}
			continue
		}
		if got != c.want {
			t.Errorf("ncr(%v, %v): want %v, got %v", c.n, c.r, c.want, got)
		}
	}
}

func TestNprMatchesFormula(t *testing.T) {
	// npr(n, r) == ncr(n, r) * fac(r)
	if got, want := npr(6, 3), ncr(6, 3)*fac(3); got != want {
		t.Errorf("npr(6, 3): want %v, got %v", want, got)
	}
}

func TestLookupBuiltin(t *testing.T) {
	if _, ok := lookupBuiltin("sin", false); !ok {
		t.Error(`lookupBuiltin("sin"): not found`)
	}
	if _, ok := lookupBuiltin("sine", false); ok {
		t.Error(`lookupBuiltin("sine"): should not match "sin" as a prefix`)
	}
	if _, ok := lookupBuiltin("nope", false); ok {
		t.Error(`lookupBuiltin("nope"): unexpectedly found`)
	}
}
