// Package ebnflex scans and recognizes text directly from an EBNF grammar
// in golang.org/x/exp/ebnf notation. Productions with a lowercase name are
// lexical; those referenced from syntactic productions become token kinds,
// together with every literal the syntactic productions use.
package ebnflex

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// Kind of the token emitted for input no token kind matches.
const KindError = "ERROR"

// Position represents a location in source code.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token with its position. Kind is a lexical
// production name or, for literals, the literal itself.
type Token struct {
	Kind     string
	Literal  string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Literal)
}

// memoKey identifies a production tried at an offset.
type memoKey struct {
	name   string
	offset int
}

// Lexer tokenizes input based on an EBNF grammar, skipping ASCII
// whitespace between tokens.
type Lexer struct {
	grammar  ebnf.Grammar
	names    []string
	literals []string
	input    []byte
	filename string
	pos      int
	line     int
	column   int
	memo     map[memoKey][]int // byte offsets where a production can end
	visiting map[memoKey]bool
}

// NewLexer creates a lexer for the given grammar and input.
func NewLexer(grammar ebnf.Grammar, input []byte, filename string) *Lexer {
	names, literals := tokenKinds(grammar)
	return &Lexer{
		grammar:  grammar,
		names:    names,
		literals: literals,
		input:    input,
		filename: filename,
		line:     1,
		column:   1,
		memo:     make(map[memoKey][]int),
		visiting: make(map[memoKey]bool),
	}
}

// LoadGrammar loads an EBNF grammar from a file.
func LoadGrammar(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	grammar, err := ebnf.Parse(filename, f)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}

	return grammar, nil
}

func isLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return unicode.IsLower(ch)
}

// tokenKinds collects the lexical productions and literals used by the
// syntactic productions of g, both sorted.
func tokenKinds(g ebnf.Grammar) (names, literals []string) {
	seenNames := make(map[string]bool)
	seenLiterals := make(map[string]bool)

	var walk func(expr ebnf.Expression)
	walk = func(expr ebnf.Expression) {
		switch e := expr.(type) {
		case *ebnf.Token:
			if e.String != "" {
				seenLiterals[e.String] = true
			}
		case *ebnf.Name:
			if isLexical(e.String) {
				seenNames[e.String] = true
			}
		case ebnf.Sequence:
			for _, item := range e {
				walk(item)
			}
		case ebnf.Alternative:
			for _, alt := range e {
				walk(alt)
			}
		case *ebnf.Repetition:
			walk(e.Body)
		case *ebnf.Option:
			walk(e.Body)
		case *ebnf.Group:
			walk(e.Body)
		}
	}
	for name, prod := range g {
		if !isLexical(name) && prod.Expr != nil {
			walk(prod.Expr)
		}
	}

	for name := range seenNames {
		names = append(names, name)
	}
	for lit := range seenLiterals {
		literals = append(literals, lit)
	}
	sort.Strings(names)
	sort.Strings(literals)
	return names, literals
}

// Position returns the current position in the input.
func (l *Lexer) Position() Position {
	return Position{
		Filename: l.filename,
		Offset:   l.pos,
		Line:     l.line,
		Column:   l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
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

// NextToken returns the next token from the input, or io.EOF with an EOF
// token at the end. It returns the longest match among the token kinds;
// on a tie the lexical production sorting first wins over later ones and
// over literals. Unmatched input yields a one-character KindError token.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()
	if l.pos >= len(l.input) {
		return Token{Kind: "EOF", Position: l.Position()}, io.EOF
	}

	startPos := l.Position()
	startOffset := l.pos
	clear(l.memo)

	var bestKind string
	var bestLen int
	for _, name := range l.names {
		if n := longest(l.matchName(name, startOffset)) - startOffset; n > bestLen {
			bestLen = n
			bestKind = name
		}
	}
	for _, lit := range l.literals {
		if n := len(lit); n > bestLen && bytes.HasPrefix(l.input[startOffset:], []byte(lit)) {
			bestLen = n
			bestKind = lit
		}
	}

	if bestLen == 0 {
		_, size := utf8.DecodeRune(l.input[startOffset:])
		bestLen = size
		bestKind = KindError
	}
	for l.pos < startOffset+bestLen {
		l.advance()
	}
	return Token{
		Kind:     bestKind,
		Literal:  string(l.input[startOffset:l.pos]),
		Position: startPos,
	}, nil
}

func longest(ends []int) int {
	if len(ends) == 0 {
		return -1
	}
	return ends[len(ends)-1]
}

// match returns every byte offset at which a match of expr starting at
// offset can end, in ascending order.
func (l *Lexer) match(expr ebnf.Expression, offset int) []int {
	switch e := expr.(type) {
	case nil:
		return []int{offset}

	case *ebnf.Token:
		if bytes.HasPrefix(l.input[offset:], []byte(e.String)) {
			return []int{offset + len(e.String)}
		}
		return nil

	case *ebnf.Range:
		lo, _ := utf8.DecodeRuneInString(e.Begin.String)
		hi, _ := utf8.DecodeRuneInString(e.End.String)
		ch, size := utf8.DecodeRune(l.input[offset:])
		if size > 0 && ch >= lo && ch <= hi {
			return []int{offset + size}
		}
		return nil

	case *ebnf.Name:
		return l.matchName(e.String, offset)

	case ebnf.Sequence:
		ends := []int{offset}
		for _, item := range e {
			var next []int
			for _, p := range ends {
				next = append(next, l.match(item, p)...)
			}
			if ends = normalize(next); len(ends) == 0 {
				return nil
			}
		}
		return ends

	case ebnf.Alternative:
		var ends []int
		for _, alt := range e {
			ends = append(ends, l.match(alt, offset)...)
		}
		return normalize(ends)

	case *ebnf.Group:
		return l.match(e.Body, offset)

	case *ebnf.Option:
		return normalize(append([]int{offset}, l.match(e.Body, offset)...))

	case *ebnf.Repetition:
		ends := []int{offset}
		frontier := []int{offset}
		for len(frontier) > 0 {
			var next []int
			for _, p := range frontier {
				for _, end := range l.match(e.Body, p) {
					if end > p && !slices.Contains(ends, end) {
						next = append(next, end)
					}
				}
			}
			frontier = normalize(next)
			ends = normalize(append(ends, frontier...))
		}
		return ends

	default:
		return nil
	}
}

// matchName matches a production with memoization. A production already
// being matched at the same offset is left recursive and fails.
func (l *Lexer) matchName(name string, offset int) []int {
	key := memoKey{name: name, offset: offset}
	if ends, ok := l.memo[key]; ok {
		return ends
	}
	if l.visiting[key] {
		return nil
	}
	prod, ok := l.grammar[name]
	if !ok {
		return nil
	}

	l.visiting[key] = true
	ends := l.match(prod.Expr, offset)
	delete(l.visiting, key)

	l.memo[key] = ends
	return ends
}

// Tokenize reads all tokens from input, ending with the EOF token.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err == io.EOF {
			tokens = append(tokens, tok)
			break
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
