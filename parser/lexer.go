package parser

import (
	"strconv"
	"unicode/utf8"
)

// Lexer splits equation text into tokens. A Lexer is single-use; Tokenize
// creates a fresh one per call.
type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

// Next returns the next token. At the end of input it returns a TokenEOF
// token; an unrecognized character yields a *LexError.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()
	start := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Pos: start}, nil
	}

	ch := l.peek()
	switch {
	case isDigit(ch), ch == '-' && isDigit(l.peekN(1)):
		return l.scanNumber(start)
	case isLetter(ch):
		l.advance()
		return Token{Kind: TokenIdent, Pos: start, Literal: string(ch)}, nil
	case ch == '+':
		l.advance()
		return Token{Kind: TokenPlus, Pos: start, Literal: "+"}, nil
	case ch == '-':
		l.advance()
		return Token{Kind: TokenMinus, Pos: start, Literal: "-"}, nil
	case ch == '=':
		l.advance()
		return Token{Kind: TokenEquals, Pos: start, Literal: "="}, nil
	}

	r, _ := utf8.DecodeRune(l.input[l.pos:])
	return Token{}, &LexError{Char: r, Pos: start}
}

func (l *Lexer) scanNumber(start Position) (Token, error) {
	if l.peek() == '-' {
		l.advance()
	}
	for isDigit(l.peek()) {
		l.advance()
	}
	// A fraction needs at least one digit after the dot; "2." leaves the dot
	// for the next call, which rejects it.
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	literal := string(l.input[start.Offset:l.pos])
	value, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return Token{}, &LexError{Char: rune(literal[0]), Pos: start, Err: err}
	}
	return Token{Kind: TokenNumber, Pos: start, Literal: literal, Value: value}, nil
}

// Tokenize reads all tokens from input. The result always ends with a
// TokenEOF token unless an error is returned.
func Tokenize(input []byte) ([]Token, error) {
	return tokenize(NewLexer(input, ""))
}

func tokenize(l *Lexer) ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
