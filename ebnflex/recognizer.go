package ebnflex

import (
	"fmt"
	"slices"

	"golang.org/x/exp/ebnf"
)

// SyntaxError reports the token at which recognition failed. It is the
// farthest token any alternative reached.
type SyntaxError struct {
	Token Token
}

func (e *SyntaxError) Error() string {
	if e.Token.Kind == "EOF" {
		return fmt.Sprintf("%s: unexpected end of input", e.Token.Position)
	}
	return fmt.Sprintf("%s: unexpected %q", e.Token.Position, e.Token.Literal)
}

// Recognizer decides whether a token stream derives from a syntactic
// production. It explores every alternative, so it accepts exactly the
// language of the grammar, at the cost of speed.
type Recognizer struct {
	grammar  ebnf.Grammar
	tokens   []Token
	memo     map[memoKey][]int
	visiting map[memoKey]bool
	farthest int
}

func NewRecognizer(grammar ebnf.Grammar, tokens []Token) *Recognizer {
	return &Recognizer{
		grammar:  grammar,
		tokens:   tokens,
		memo:     make(map[memoKey][]int),
		visiting: make(map[memoKey]bool),
	}
}

// Recognize tokenizes input and checks it against start.
func Recognize(grammar ebnf.Grammar, start string, input []byte, filename string) error {
	tokens, err := NewLexer(grammar, input, filename).Tokenize()
	if err != nil {
		return err
	}
	return NewRecognizer(grammar, tokens).Recognize(start)
}

// Recognize reports whether the whole token stream derives from start.
func (r *Recognizer) Recognize(start string) error {
	if _, ok := r.grammar[start]; !ok {
		return fmt.Errorf("no production %q", start)
	}
	eof := len(r.tokens) - 1
	if eof < 0 {
		return fmt.Errorf("no tokens")
	}
	for _, end := range r.matchName(start, 0) {
		if end == eof {
			return nil
		}
	}
	// A derivation that stopped early still leaves a token unconsumed.
	for _, end := range r.matchName(start, 0) {
		r.fail(end)
	}
	return &SyntaxError{Token: r.tokens[r.farthest]}
}

func (r *Recognizer) fail(pos int) {
	if pos > r.farthest {
		r.farthest = pos
	}
}

// match returns every token index at which a match of expr starting at
// pos can end, in ascending order.
func (r *Recognizer) match(expr ebnf.Expression, pos int) []int {
	switch e := expr.(type) {
	case nil:
		return []int{pos}

	case *ebnf.Token:
		if pos < len(r.tokens) && r.tokens[pos].Kind == e.String {
			return []int{pos + 1}
		}
		r.fail(pos)
		return nil

	case *ebnf.Name:
		if isLexical(e.String) {
			if pos < len(r.tokens) && r.tokens[pos].Kind == e.String {
				return []int{pos + 1}
			}
			r.fail(pos)
			return nil
		}
		return r.matchName(e.String, pos)

	case ebnf.Sequence:
		ends := []int{pos}
		for _, item := range e {
			var next []int
			for _, p := range ends {
				next = append(next, r.match(item, p)...)
			}
			ends = normalize(next)
			if len(ends) == 0 {
				return nil
			}
		}
		return ends

	case ebnf.Alternative:
		var ends []int
		for _, alt := range e {
			ends = append(ends, r.match(alt, pos)...)
		}
		return normalize(ends)

	case *ebnf.Group:
		return r.match(e.Body, pos)

	case *ebnf.Option:
		return normalize(append([]int{pos}, r.match(e.Body, pos)...))

	case *ebnf.Repetition:
		ends := []int{pos}
		frontier := []int{pos}
		for len(frontier) > 0 {
			var next []int
			for _, p := range frontier {
				for _, end := range r.match(e.Body, p) {
					// Only progress counts; an empty body match would loop.
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

func (r *Recognizer) matchName(name string, pos int) []int {
	key := memoKey{name: name, offset: pos}
	if ends, ok := r.memo[key]; ok {
		return ends
	}
	if r.visiting[key] {
		return nil
	}
	prod, ok := r.grammar[name]
	if !ok {
		return nil
	}

	r.visiting[key] = true
	ends := r.match(prod.Expr, pos)
	delete(r.visiting, key)

	r.memo[key] = ends
	return ends
}

func normalize(ends []int) []int {
	slices.Sort(ends)
	return slices.Compact(ends)
}
