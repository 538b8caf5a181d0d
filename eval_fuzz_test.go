//go:build go1.18
// +build go1.18

package expr_test

import (
	"testing"

	"github.com/zephyrtronium/expr"
)

func FuzzEvaluate(f *testing.F) {
	f.Add("x^2 + 1")
	f.Add("pow(2,3)^2")
	f.Add("-3^2")
	f.Add("fac(20) / fac(19)")
	x := new(float64)
	f.Fuzz(func(t *testing.T, s string) {
		*x = 3
		tree, err := expr.Compile(s, []expr.Binding{expr.Variable("x", x)})
		if err != nil {
			return
		}
		_ = expr.Evaluate(tree)
		expr.Free(tree)
		// Freeing and evaluating again must be safe, not a double-free panic.
		_ = expr.Evaluate(tree)
		expr.Free(tree)
	})
}
