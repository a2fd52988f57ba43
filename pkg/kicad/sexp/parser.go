package sexp

import (
	"fmt"
	"strconv"
)

// ParseError reports the first structural defect in a document: an
// unmatched parenthesis or an unterminated quoted string. Offset is the
// byte position of the defect, Line the 1-based line it falls on.
type ParseError struct {
	Offset int
	Line   int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed document at line %d (offset %d): %s", e.Line, e.Offset, e.Msg)
}

// Parse scans raw document text into its root node. The root is an
// implicit outer list whose children are the document's top-level forms.
// Parsing either succeeds completely or fails with a *ParseError; a
// partial tree is never returned.
//
// The scanner keeps an explicit stack of in-progress lists instead of
// recursing, so arbitrarily deep nesting (large hierarchical designs run
// to tens of thousands of nodes) cannot exhaust call depth.
func Parse(input []byte) (*Node, error) {
	root := &Node{Kind: KindList}
	stack := []*Node{root}
	line := 1

	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == '\n':
			line++
			i++

		case c == ' ' || c == '\t' || c == '\r':
			i++

		case c == '(':
			stack = append(stack, &Node{Kind: KindList})
			i++

		case c == ')':
			if len(stack) == 1 {
				return nil, &ParseError{Offset: i, Line: line, Msg: "unmatched ')'"}
			}
			done := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			top := stack[len(stack)-1]
			top.Children = append(top.Children, done)
			i++

		case c == '"':
			atom, next, newLine, err := scanString(input, i, line)
			if err != nil {
				return nil, err
			}
			top := stack[len(stack)-1]
			top.Children = append(top.Children, atom)
			line = newLine
			i = next

		default:
			start := i
			for i < len(input) && !isDelimiter(input[i]) {
				i++
			}
			text := string(input[start:i])
			top := stack[len(stack)-1]
			top.Children = append(top.Children, classifyBare(text))
		}
	}

	if len(stack) != 1 {
		return nil, &ParseError{Offset: len(input), Line: line, Msg: fmt.Sprintf("%d unclosed '('", len(stack)-1)}
	}
	return root, nil
}

// scanString consumes a quoted string starting at the opening quote.
// Backslash-escaped quotes and backslashes are unescaped; any other
// backslash sequence is kept verbatim. Returns the atom, the index just
// past the closing quote, and the updated line counter.
func scanString(input []byte, start, line int) (*Node, int, int, error) {
	openLine := line
	i := start + 1
	var buf []byte
	for i < len(input) {
		c := input[i]
		switch c {
		case '"':
			return &Node{Kind: KindString, Value: string(buf)}, i + 1, line, nil
		case '\\':
			if i+1 < len(input) && (input[i+1] == '"' || input[i+1] == '\\') {
				buf = append(buf, input[i+1])
				i += 2
				continue
			}
			buf = append(buf, c)
			i++
		case '\n':
			line++
			buf = append(buf, c)
			i++
		default:
			buf = append(buf, c)
			i++
		}
	}
	return nil, 0, 0, &ParseError{Offset: start, Line: openLine, Msg: "unterminated string"}
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '"', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// classifyBare tags an unquoted atom as a number when it parses as one.
func classifyBare(text string) *Node {
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return &Node{Kind: KindNumber, Value: text}
	}
	return &Node{Kind: KindBare, Value: text}
}
