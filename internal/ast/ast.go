package ast

import (
	"bytes"
	"rosky/internal/object"
	"rosky/internal/token"
)

type NodeKind int

const (
	OPERAND NodeKind = iota
	OPERATOR
)

// Node is one node of an expression tree. Left and Right own their
// subtrees; parent is only followed while the tree is being built.
type Node struct {
	Kind   NodeKind
	Op     string        // operator name, or the operand's source text
	Result object.Result // operands only
	Line   int
	Column int
	Left   *Node
	Right  *Node

	parent *Node
}

func NewOperand(tok token.Token, result object.Result) *Node {
	return &Node{Kind: OPERAND, Op: tok.Literal, Result: result, Line: tok.Line, Column: tok.Column}
}

// NewOperator builds an operator node. op may differ from the token text
// for prefix operators (`*` becomes `de`, `-` becomes `neg`).
func NewOperator(tok token.Token, op string) *Node {
	return &Node{Kind: OPERATOR, Op: op, Line: tok.Line, Column: tok.Column}
}

func (n *Node) String() string {
	if n == nil {
		return "_"
	}
	if n.Kind == OPERAND {
		return n.Op
	}
	var out bytes.Buffer
	out.WriteString("(")
	switch {
	case IsUnary(n.Op):
		out.WriteString(n.Op + " ")
		out.WriteString(n.Right.String())
	case n.Op == "[":
		out.WriteString(n.Left.String())
		out.WriteString("[" + n.Right.String() + "]")
	default:
		out.WriteString(n.Left.String())
		out.WriteString(" " + n.Op + " ")
		out.WriteString(n.Right.String())
	}
	out.WriteString(")")
	return out.String()
}

// Tree is built left to right from a flat token range. The most recent
// operand is always reachable by following right links from the root.
type Tree struct {
	Root *Node
}

// InsertRight attaches an operand at the end of the right spine.
func (t *Tree) InsertRight(n *Node) {
	if t.Root == nil {
		t.Root = n
		return
	}
	cur := t.Rightmost()
	cur.Right = n
	n.parent = cur
}

// InsertOp places an operator by walking down the right spine. It descends
// past operators that bind looser than op (or equally, when op is right
// associative) and otherwise rotates op in above the node it stopped at.
func (t *Tree) InsertOp(n *Node) {
	if t.Root == nil {
		t.Root = n
		return
	}
	prec := Precedence(n.Op)
	cur := t.Root
	for {
		if cur.Kind == OPERATOR {
			curPrec := Precedence(cur.Op)
			if curPrec < prec || (curPrec == prec && IsRightAssoc(n.Op)) {
				if cur.Right == nil {
					cur.Right = n
					n.parent = cur
					return
				}
				cur = cur.Right
				continue
			}
		}

		n.Left = cur
		n.parent = cur.parent
		if cur.parent != nil {
			cur.parent.Right = n
		} else {
			t.Root = n
		}
		cur.parent = n
		return
	}
}

func (t *Tree) Rightmost() *Node {
	cur := t.Root
	if cur == nil {
		return nil
	}
	for cur.Right != nil {
		cur = cur.Right
	}
	return cur
}

// Replace swaps a subtree on the right spine for another node.
func (t *Tree) Replace(old, n *Node) {
	n.parent = old.parent
	if old.parent == nil {
		t.Root = n
	} else {
		old.parent.Right = n
	}
	old.parent = nil
}

// Receiver finds the subtree a member call applies to: the rightmost
// operand together with any index operators it is the index of.
func (t *Tree) Receiver() *Node {
	cur := t.Rightmost()
	for cur != nil && cur.parent != nil && cur.parent.Op == "[" && cur.parent.Right == cur {
		cur = cur.parent
	}
	return cur
}
