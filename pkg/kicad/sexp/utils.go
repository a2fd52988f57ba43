package sexp

import (
	"fmt"
	"strconv"
)

// S-expression navigation helpers

// FindNode searches the direct children of a list for a sub-list whose
// name matches key.
// Example: FindNode(sym, "lib_id") finds (lib_id "Device:R").
func FindNode(n *Node, key string) (*Node, bool) {
	if n == nil || n.IsAtom() {
		return nil, false
	}
	for _, child := range n.Children {
		if child.Name() == key {
			return child, true
		}
	}
	return nil, false
}

// FindAllNodes returns every direct child list whose name matches key.
func FindAllNodes(n *Node, key string) []*Node {
	var results []*Node
	if n == nil || n.IsAtom() {
		return results
	}
	for _, child := range n.Children {
		if child.Name() == key {
			results = append(results, child)
		}
	}
	return results
}

// FindAllNodesDeep returns every list named key at any depth, including
// n itself, in document order. Traversal is iterative; schematic trees
// nest deeply enough that call recursion is not safe here.
func FindAllNodesDeep(n *Node, key string) []*Node {
	var results []*Node
	if n == nil {
		return results
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.IsAtom() {
			continue
		}
		if cur.Name() == key {
			results = append(results, cur)
		}
		// Push children in reverse so they pop in document order.
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
	return results
}

// GetNodeName returns the name of a list node, or an error for atoms and
// lists that do not start with a bare atom.
func GetNodeName(n *Node) (string, error) {
	if n == nil || n.IsAtom() {
		return "", fmt.Errorf("expected list, got atom")
	}
	name := n.Name()
	if name == "" {
		return "", fmt.Errorf("list does not start with a bare atom")
	}
	return name, nil
}

// Typed value extraction helpers

// GetString extracts the atom text at the given index in a list.
// Index 0 is the form name, 1 the first value, and so on.
func GetString(n *Node, index int) (string, error) {
	if n == nil || n.IsAtom() {
		return "", fmt.Errorf("expected list, got atom")
	}
	if index < 0 || index >= len(n.Children) {
		return "", fmt.Errorf("index %d out of bounds (length %d)", index, len(n.Children))
	}
	child := n.Children[index]
	if !child.IsAtom() {
		return "", fmt.Errorf("expected atom at index %d, got list", index)
	}
	return child.Value, nil
}

// GetInt extracts an int value at the given index.
func GetInt(n *Node, index int) (int, error) {
	str, err := GetString(n, index)
	if err != nil {
		return 0, err
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("failed to parse int %q: %w", str, err)
	}
	return val, nil
}

// GetFloat extracts a float64 value at the given index.
func GetFloat(n *Node, index int) (float64, error) {
	str, err := GetString(n, index)
	if err != nil {
		return 0, err
	}
	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse float %q: %w", str, err)
	}
	return val, nil
}

// ChildValue returns the first value of the direct child list named key.
// Example: ChildValue(node, "ref") on (node (ref "U1") (pin "3")) is "U1".
func ChildValue(n *Node, key string) (string, bool) {
	child, ok := FindNode(n, key)
	if !ok {
		return "", false
	}
	val, err := GetString(child, 1)
	if err != nil {
		return "", false
	}
	return val, true
}

// HasSymbol checks whether a list contains a specific bare atom, used for
// flag atoms like hide.
func HasSymbol(n *Node, symbol string) bool {
	if n == nil || n.IsAtom() {
		return false
	}
	for _, child := range n.Children {
		if child.Kind == KindBare && child.Value == symbol {
			return true
		}
	}
	return false
}
