package expr

// fold walks n post-order and collapses any call node whose function is pure
// and whose arguments have all themselves folded down to constants into a
// single nodeConstant holding the computed value. Variable reads and impure
// calls (and anything above them in the tree) are left alone, since their
// value can change between evaluations or has side effects that must happen
// on every Evaluate.
func fold(n *node) *node {
	if n == nil || n.kind != nodeCall {
		return n
	}
	allConst := true
	for i, c := range n.children {
		n.children[i] = fold(c)
		if n.children[i].kind != nodeConstant {
			allConst = false
		}
	}
	if !allConst || !n.fn.pure {
		return n
	}
	args := make([]float64, len(n.children))
	for i, c := range n.children {
		args[i] = c.value
	}
	v := n.fn.invoke(n.ctx, args)
	for _, c := range n.children {
		c.free()
	}
	n.children = nil
	n.fn = callable{}
	n.ctx = nil
	n.kind = nodeConstant
	n.value = v
	return n
}
