package parser

import (
	"fmt"
	"strings"
)

// LexError reports a character the lexer does not recognize.
type LexError struct {
	Char rune
	Pos  Position
	Err  error
}

func (e *LexError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: illegal number starting with %q: %v", e.Pos, e.Char, e.Err)
	}
	return fmt.Sprintf("%s: illegal character %q", e.Pos, e.Char)
}

func (e *LexError) Unwrap() error {
	return e.Err
}

// ParseError reports a token sequence that does not match the grammar.
type ParseError struct {
	Pos      Position
	Got      Token
	Expected []TokenKind
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: syntax error: unexpected %s", e.Pos, e.Got)
	if len(e.Expected) > 0 {
		names := make([]string, len(e.Expected))
		for i, k := range e.Expected {
			names[i] = k.String()
		}
		fmt.Fprintf(&sb, ", expected %s", strings.Join(names, " or "))
	}
	return sb.String()
}

// UnsupportedNodeError is returned by Walk and BaseVisitor for node kinds a
// visitor does not handle.
type UnsupportedNodeError struct {
	Node Node
}

func (e *UnsupportedNodeError) Error() string {
	if e.Node == nil {
		return "unsupported node kind: <nil>"
	}
	return fmt.Sprintf("unsupported node kind: %T", e.Node)
}
