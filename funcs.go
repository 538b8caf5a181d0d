package expr

import "math"

// callable is a host numeric function of a fixed arity, optionally a closure
// that additionally takes an opaque context as its leading argument. Each
// arity is constructed through its own typed FuncN/ClosureN function below,
// matching the parser's arity-indexed dispatch; internally every arity is
// normalized to a single invoke shape so the evaluator needs no type switch.
type callable struct {
	name    string
	arity   int8
	pure    bool
	closure bool
	invoke  func(ctx any, args []float64) float64
}

func (c callable) named(name string) callable {
	c.name = name
	return c
}

// Callable is a host numeric function bound to a name or passed to Closure.
// Build one with FuncN for a plain function of N arguments or ClosureN for a
// function that additionally receives a context value. pure asserts that the
// function's result depends only on its arguments, which permits the
// compiler to fold calls to it when every argument is a constant; setting
// pure on a function that isn't is a correctness bug in the caller, not
// something this package can detect.
type Callable = callable

// Arity reports how many numeric arguments c expects, not counting a
// closure's context.
func (c Callable) Arity() int { return int(c.arity) }

// Pure reports whether c was constructed as foldable.
func (c Callable) Pure() bool { return c.pure }

// IsClosure reports whether c expects a context value.
func (c Callable) IsClosure() bool { return c.closure }

func Func0(f func() float64, pure bool) Callable {
	return Callable{arity: 0, pure: pure, invoke: func(any, []float64) float64 { return f() }}
}

func Func1(f func(float64) float64, pure bool) Callable {
	return Callable{arity: 1, pure: pure, invoke: func(_ any, a []float64) float64 { return f(a[0]) }}
}

func Func2(f func(float64, float64) float64, pure bool) Callable {
	return Callable{arity: 2, pure: pure, invoke: func(_ any, a []float64) float64 { return f(a[0], a[1]) }}
}

func Func3(f func(float64, float64, float64) float64, pure bool) Callable {
	return Callable{arity: 3, pure: pure, invoke: func(_ any, a []float64) float64 { return f(a[0], a[1], a[2]) }}
}

func Func4(f func(float64, float64, float64, float64) float64, pure bool) Callable {
	return Callable{arity: 4, pure: pure, invoke: func(_ any, a []float64) float64 { return f(a[0], a[1], a[2], a[3]) }}
}

func Func5(f func(float64, float64, float64, float64, float64) float64, pure bool) Callable {
	return Callable{arity: 5, pure: pure, invoke: func(_ any, a []float64) float64 { return f(a[0], a[1], a[2], a[3], a[4]) }}
}

func Func6(f func(float64, float64, float64, float64, float64, float64) float64, pure bool) Callable {
	return Callable{arity: 6, pure: pure, invoke: func(_ any, a []float64) float64 { return f(a[0], a[1], a[2], a[3], a[4], a[5]) }}
}

func Func7(f func(float64, float64, float64, float64, float64, float64, float64) float64, pure bool) Callable {
	return Callable{arity: 7, pure: pure, invoke: func(_ any, a []float64) float64 { return f(a[0], a[1], a[2], a[3], a[4], a[5], a[6]) }}
}

func Closure0(f func(ctx any) float64, pure bool) Callable {
	return Callable{arity: 0, pure: pure, closure: true, invoke: func(ctx any, _ []float64) float64 { return f(ctx) }}
}

func Closure1(f func(ctx any, a float64) float64, pure bool) Callable {
	return Callable{arity: 1, pure: pure, closure: true, invoke: func(ctx any, a []float64) float64 { return f(ctx, a[0]) }}
}

func Closure2(f func(ctx any, a, b float64) float64, pure bool) Callable {
	return Callable{arity: 2, pure: pure, closure: true, invoke: func(ctx any, a []float64) float64 { return f(ctx, a[0], a[1]) }}
}

func Closure3(f func(ctx any, a, b, c float64) float64, pure bool) Callable {
	return Callable{arity: 3, pure: pure, closure: true, invoke: func(ctx any, a []float64) float64 { return f(ctx, a[0], a[1], a[2]) }}
}

func Closure4(f func(ctx any, a, b, c, d float64) float64, pure bool) Callable {
	return Callable{arity: 4, pure: pure, closure: true, invoke: func(ctx any, a []float64) float64 { return f(ctx, a[0], a[1], a[2], a[3]) }}
}

func Closure5(f func(ctx any, a, b, c, d, e float64) float64, pure bool) Callable {
	return Callable{arity: 5, pure: pure, closure: true, invoke: func(ctx any, a []float64) float64 { return f(ctx, a[0], a[1], a[2], a[3], a[4]) }}
}

func Closure6(f func(ctx any, a, b, c, d, e, g float64) float64, pure bool) Callable {
	return Callable{arity: 6, pure: pure, closure: true, invoke: func(ctx any, a []float64) float64 { return f(ctx, a[0], a[1], a[2], a[3], a[4], a[5]) }}
}

func Closure7(f func(ctx any, a, b, c, d, e, g, h float64) float64, pure bool) Callable {
	return Callable{arity: 7, pure: pure, closure: true, invoke: func(ctx any, a []float64) float64 { return f(ctx, a[0], a[1], a[2], a[3], a[4], a[5], a[6]) }}
}

// bindingKind distinguishes a Binding that exposes a numeric cell from one
// that exposes a function or closure.
type bindingKind int8

const (
	bindingVariable bindingKind = iota
	bindingCallable
)

// Binding associates a name with either a live numeric cell or a function or
// closure. The engine reads a Binding's cell on every Evaluate and never
// writes through it; bindings are owned and must outlive every tree that
// references them.
type Binding struct {
	name string
	kind bindingKind
	cell *float64
	fn   Callable
	ctx  any
}

// Variable binds name to a numeric cell. The cell's value is re-read on
// every Evaluate, so mutating it between calls is observable.
func Variable(name string, cell *float64) Binding {
	return Binding{name: name, kind: bindingVariable, cell: cell}
}

// Function binds name to a plain function built with one of FuncN.
func Function(name string, fn Callable) Binding {
	return Binding{name: name, kind: bindingCallable, fn: fn}
}

// Closure binds name to a closure built with one of ClosureN, together with
// the opaque context value that will be passed as its leading argument.
func Closure(name string, fn Callable, ctx any) Binding {
	return Binding{name: name, kind: bindingCallable, fn: fn, ctx: ctx}
}

// builtins is the built-in symbol table, maintained in ascending name order
// so lookupBuiltin can binary search it; see resolve in lex.go. All built-ins
// are pure.
var builtins = []Binding{
	Function("abs", Func1(math.Abs, true).named("abs")),
	Function("acos", Func1(math.Acos, true).named("acos")),
	Function("asin", Func1(math.Asin, true).named("asin")),
	Function("atan", Func1(math.Atan, true).named("atan")),
	Function("atan2", Func2(math.Atan2, true).named("atan2")),
	Function("ceil", Func1(math.Ceil, true).named("ceil")),
	Function("cos", Func1(math.Cos, true).named("cos")),
	Function("cosh", Func1(math.Cosh, true).named("cosh")),
	Function("e", Func0(func() float64 { return 2.71828182845904523536 }, true).named("e")),
	Function("exp", Func1(math.Exp, true).named("exp")),
	Function("fac", Func1(fac, true).named("fac")),
	Function("floor", Func1(math.Floor, true).named("floor")),
	Function("ln", Func1(math.Log, true).named("ln")),
	Function("log", Func1(math.Log10, true).named("log")),
	Function("log10", Func1(math.Log10, true).named("log10")),
	Function("ncr", Func2(ncr, true).named("ncr")),
	Function("npr", Func2(npr, true).named("npr")),
	Function("pi", Func0(func() float64 { return 3.14159265358979323846 }, true).named("pi")),
	Function("pow", Func2(math.Pow, true).named("pow")),
	Function("sin", Func1(math.Sin, true).named("sin")),
	Function("sinh", Func1(math.Sinh, true).named("sinh")),
	Function("sqrt", Func1(math.Sqrt, true).named("sqrt")),
	Function("tan", Func1(math.Tan, true).named("tan")),
	Function("tanh", Func1(math.Tanh, true).named("tanh")),
}

// naturalLogBinding replaces the default base-10 "log" with natural log, for
// Compile calls made with the NaturalLog option.
var naturalLogBinding = Function("log", Func1(math.Log, true).named("log"))

// Operator intrinsics. The parser builds call nodes from these directly
// rather than looking them up by name, since operators are lexed as their
// own token kind, not identifiers; keeping them as ordinary callables lets
// the evaluator stay a single uniform dispatch instead of special-casing
// arithmetic nodes.
var (
	opAdd = Func2(func(a, b float64) float64 { return a + b }, true).named("+")
	opSub = Func2(func(a, b float64) float64 { return a - b }, true).named("-")
	opMul = Func2(func(a, b float64) float64 { return a * b }, true).named("*")
	opDiv = Func2(func(a, b float64) float64 { return a / b }, true).named("/")
	opMod = Func2(math.Mod, true).named("%")
	opPow = Func2(math.Pow, true).named("^")
	opNeg = Func1(func(a float64) float64 { return -a }, true).named("neg")
	opSeq = Func2(func(_, b float64) float64 { return b }, true).named(",")
)

// fac returns the double nearest floor(a)!, NaN if a is negative, and +Inf if
// the integer product overflows.
func fac(a float64) float64 {
	if a < 0 {
		return math.NaN()
	}
	n := uint64(a)
	var result uint64 = 1
	for i := uint64(1); i <= n; i++ {
		if result > math.MaxUint64/i {
			return math.Inf(1)
		}
		result *= i
	}
	return float64(result)
}

// ncr returns the binomial coefficient C(n, r): NaN if either argument is
// negative or r > n, +Inf on integer overflow of the iterative product.
// It uses the symmetry r <-> n-r to minimize the number of iterations.
func ncr(n, r float64) float64 {
	if n < 0 || r < 0 || r > n {
		return math.NaN()
	}
	un, ur := uint64(n), uint64(r)
	if ur > un/2 {
		ur = un - ur
	}
	var result uint64 = 1
	for i := uint64(1); i <= ur; i++ {
		if result > math.MaxUint64/(un-ur+i) {
			return math.Inf(1)
		}
		result *= un - ur + i
		result /= i
	}
	return float64(result)
}

// npr returns the number of permutations of r items from n.
func npr(n, r float64) float64 {
	return ncr(n, r) * fac(r)
}
