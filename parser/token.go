package parser

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenNumber
	TokenIdent
	TokenPlus
	TokenMinus
	TokenEquals
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:    "EOF",
	TokenNumber: "NUMBER",
	TokenIdent:  "ID",
	TokenPlus:   "PLUS",
	TokenMinus:  "MINUS",
	TokenEquals: "EQUALS",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is a lexical token. Value holds the parsed literal for TokenNumber.
type Token struct {
	Kind    TokenKind
	Pos     Position
	Literal string
	Value   float64
}

func (t Token) String() string {
	if t.Kind == TokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Literal)
}
