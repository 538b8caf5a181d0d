// Package expr implements a small embeddable arithmetic expression compiler
// and evaluator over IEEE-754 double precision numbers.
//
// An expression is turned into a tree once with Compile, then the tree can be
// evaluated any number of times with Evaluate. Names in the expression are
// resolved against a caller-supplied list of Bindings: a binding can expose a
// live numeric cell (re-read on every Evaluate), a pure or impure function of
// up to seven arguments, or a closure that additionally receives an opaque
// context value. Built-in functions such as sin, sqrt, and pow are always
// available unless shadowed by a caller binding of the same name.
//
// Compile performs constant folding: any subtree whose function is pure and
// whose arguments are all literal constants is collapsed at compile time, so
// repeated Evaluate calls don't redo work that doesn't depend on a binding.
//
//	tree, err := expr.Compile("x^2 + 1", []expr.Binding{expr.Variable("x", &x)})
//	if err != nil {
//		// err is a *expr.CompileError, carrying a byte offset into the source.
//	}
//	y := expr.Evaluate(tree)
//	expr.Free(tree)
package expr
