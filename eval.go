package expr

import "math"

// Compile parses text against the given bindings and returns a Tree ready to
// be Evaluated any number of times. Names in text are resolved first against
// bindings, in order, then against the built-in table; a caller binding
// shadows a built-in of the same name. The returned error, if any, is always
// a *CompileError.
func Compile(text string, bindings []Binding, opts ...CompileOption) (*Tree, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	p := newParser(text, bindings, o)
	root, err := p.parseList()
	if err != nil {
		root.free()
		return nil, err
	}
	if p.tok.kind != tokEnd {
		root.free()
		return nil, p.errHere()
	}
	root = fold(root)
	return &Tree{root: root}, nil
}

// Evaluate computes tree's value, re-reading every bound variable's cell and
// re-invoking every impure function along the way. A nil or already-freed
// Tree evaluates to NaN, the engine's canonical value for "no result".
func Evaluate(tree *Tree) float64 {
	if tree == nil {
		return math.NaN()
	}
	return evalNode(tree.root)
}

func evalNode(n *node) float64 {
	if n == nil {
		return math.NaN()
	}
	switch n.kind {
	case nodeConstant:
		return n.value
	case nodeVariable:
		return *n.cell
	case nodeCall:
		args := make([]float64, len(n.children))
		for i, c := range n.children {
			args[i] = evalNode(c)
		}
		return n.fn.invoke(n.ctx, args)
	default:
		return math.NaN()
	}
}

// Free releases tree's internal nodes. Calling Free on the same Tree more
// than once, or on nil, is safe and does nothing the second time.
func Free(tree *Tree) {
	if tree == nil {
		return
	}
	tree.root.free()
	tree.root = nil
}

// Interpret compiles and immediately evaluates text with no bindings beyond
// the built-ins, discarding the tree afterward. It's a convenience for the
// common case of evaluating a literal expression once.
func Interpret(text string, opts ...CompileOption) (float64, error) {
	tree, err := Compile(text, nil, opts...)
	if err != nil {
		return math.NaN(), err
	}
	v := Evaluate(tree)
	Free(tree)
	return v, nil
}
