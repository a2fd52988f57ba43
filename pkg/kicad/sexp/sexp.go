// Package sexp provides the S-expression document model shared by the
// KiCad schematic and netlist readers. Documents are parsed into a plain
// node tree; navigation helpers live in utils.go.
package sexp

import (
	"strings"
)

// NodeKind distinguishes the atom flavors from lists.
type NodeKind int

const (
	KindList   NodeKind = iota // parenthesized form
	KindBare                   // unquoted identifier, e.g. kicad_sch
	KindString                 // quoted string, stored unescaped
	KindNumber                 // numeric literal, stored as text
)

// Node is one element of a parsed document tree: either an atom carrying
// its text, or a list of child nodes.
type Node struct {
	Kind     NodeKind
	Value    string  // atom text (empty for lists)
	Children []*Node // list members (nil for atoms)
}

// IsAtom reports whether the node is an atom rather than a list.
func (n *Node) IsAtom() bool {
	return n.Kind != KindList
}

// Name returns the leading bare atom of a list, or "" when the list is
// empty or starts with something else. This is the form's type tag, e.g.
// "symbol" for (symbol ...).
func (n *Node) Name() string {
	if n == nil || n.Kind != KindList || len(n.Children) == 0 {
		return ""
	}
	head := n.Children[0]
	if head.Kind == KindBare {
		return head.Value
	}
	return ""
}

// String serializes the node back to S-expression text. The output is not
// byte-identical to the source (whitespace and escapes are normalized) but
// re-parsing it yields a structurally equal tree.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	switch n.Kind {
	case KindString:
		sb.WriteByte('"')
		escaped := strings.ReplaceAll(n.Value, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `"`, `\"`)
		sb.WriteString(escaped)
		sb.WriteByte('"')
	case KindBare, KindNumber:
		sb.WriteString(n.Value)
	case KindList:
		sb.WriteByte('(')
		for i, child := range n.Children {
			if i > 0 {
				sb.WriteByte(' ')
			}
			child.write(sb)
		}
		sb.WriteByte(')')
	}
}

// Equal reports structural equality of two trees. Atom kind and text must
// match; list children must match pairwise.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Kind != other.Kind || n.Value != other.Value {
		return false
	}
	if len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}
