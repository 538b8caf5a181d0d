package expr

import (
	"strconv"
	"strings"
)

// nodeKind tags what a node holds. A call node carries an arbitrary-arity
// callable rather than a fixed left/right pair, so a single kind covers every
// built-in and host function of any arity.
type nodeKind int8

const (
	nodeNone nodeKind = iota
	nodeConstant
	nodeVariable
	nodeCall
)

// node is a node in the expression tree. Constant and Variable nodes have no
// children. A call node's arity is fn.arity, and len(children) must equal it;
// if fn is a closure, ctx is the opaque value passed as the leading argument
// at evaluation time.
type node struct {
	kind     nodeKind
	value    float64
	cell     *float64
	fn       callable
	ctx      any
	children []*node
}

// Tree is a compiled expression, ready to be evaluated any number of times.
// The zero Tree is not meaningful; obtain one from Compile or Interpret.
type Tree struct {
	root *node
}

// String renders the tree as a fully parenthesized expression, mostly useful
// for debugging and tests. It does not attempt to round-trip to valid input.
func (t *Tree) String() string {
	if t == nil || t.root == nil {
		return "<nil>"
	}
	var b strings.Builder
	t.root.fmt(&b)
	return b.String()
}

func (n *node) fmt(b *strings.Builder) {
	if n == nil {
		b.WriteString("$nil$")
		return
	}
	switch n.kind {
	case nodeConstant:
		b.WriteString(strconv.FormatFloat(n.value, 'g', -1, 64))
	case nodeVariable:
		b.WriteByte('$')
		b.WriteString(strconv.FormatFloat(*n.cell, 'g', -1, 64))
	case nodeCall:
		b.WriteByte('(')
		b.WriteString(n.fn.name)
		for _, c := range n.children {
			b.WriteByte(' ')
			c.fmt(b)
		}
		b.WriteByte(')')
	default:
		b.WriteString("$invalid$")
	}
}

// free releases a node's children depth-first, then clears the node so that
// calling free on it again is a harmless no-op. It does not touch a
// Variable's cell or a Closure's context: those are caller-owned.
func (n *node) free() {
	if n == nil {
		return
	}
	for _, c := range n.children {
		c.free()
	}
	n.children = nil
	n.cell = nil
	n.ctx = nil
	n.fn = callable{}
	n.kind = nodeNone
}
