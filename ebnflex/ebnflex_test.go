package ebnflex

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/exp/ebnf"
)

const listGrammar = `
List = "(" [ Item { "," Item } ] ")" .
Item = word | number | List .

word   = letter { letter } .
number = [ "-" ] digit { digit } .
letter = "a" … "z" .
digit  = "0" … "9" .
`

func mustGrammar(t *testing.T, src string) ebnf.Grammar {
	t.Helper()
	g, err := ebnf.Parse("test", strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	if err := ebnf.Verify(g, "List"); err != nil {
		t.Fatalf("verify grammar: %v", err)
	}
	return g
}

func kinds(tokens []Token) string {
	var parts []string
	for _, tok := range tokens {
		parts = append(parts, tok.Kind)
	}
	return strings.Join(parts, " ")
}

func TestLexer_Kinds(t *testing.T) {
	g := mustGrammar(t, listGrammar)
	tokens, err := NewLexer(g, []byte("(abc, -12,\n (x))"), "in").Tokenize()
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}

	want := "( word , number , ( word ) ) EOF"
	if got := kinds(tokens); got != want {
		t.Errorf("kinds = %q, want %q", got, want)
	}
	if tokens[3].Literal != "-12" {
		t.Errorf("number literal = %q, want -12", tokens[3].Literal)
	}
	if pos := tokens[5].Position.String(); pos != "in:2:2" {
		t.Errorf("position = %s, want in:2:2", pos)
	}
}

func TestLexer_LongestMatch(t *testing.T) {
	g := mustGrammar(t, listGrammar)
	tokens, err := NewLexer(g, []byte("- -3"), "").Tokenize()
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	// "-" alone is no token kind here: the literal only occurs inside number.
	if got, want := kinds(tokens), "ERROR number EOF"; got != want {
		t.Errorf("kinds = %q, want %q", got, want)
	}
}

func TestLexer_ErrorToken(t *testing.T) {
	g := mustGrammar(t, listGrammar)
	tokens, err := NewLexer(g, []byte("(é)"), "").Tokenize()
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if tokens[1].Kind != KindError || tokens[1].Literal != "é" {
		t.Errorf("token = %+v, want one ERROR token for é", tokens[1])
	}
	if tokens[2].Kind != ")" {
		t.Errorf("lexing did not resume after the error token: %+v", tokens[2])
	}
}

func TestRecognize(t *testing.T) {
	g := mustGrammar(t, listGrammar)

	tests := []struct {
		input string
		ok    bool
	}{
		{"()", true},
		{"(a)", true},
		{"(a, 1, (b, (c)), -2)", true},
		{"((()))", true},
		{"", false},
		{"(", false},
		{"(a,)", false},
		{"(a b)", false},
		{"() ()", false},
		{"(A)", false},
	}
	for _, tt := range tests {
		err := Recognize(g, "List", []byte(tt.input), "")
		if tt.ok && err != nil {
			t.Errorf("Recognize(%q) = %v, want success", tt.input, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("Recognize(%q) succeeded, want error", tt.input)
		}
	}
}

func TestRecognize_ErrorPosition(t *testing.T) {
	g := mustGrammar(t, listGrammar)

	tests := []struct {
		input string
		want  string
	}{
		{"(a b)", `1:4: unexpected "b"`},
		{"(a,\n  )", `2:3: unexpected ")"`},
		{"(a", `1:3: unexpected end of input`},
		{"() x", `1:4: unexpected "x"`},
	}
	for _, tt := range tests {
		err := Recognize(g, "List", []byte(tt.input), "")
		var syntaxErr *SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Errorf("Recognize(%q) = %v, want *SyntaxError", tt.input, err)
			continue
		}
		if err.Error() != tt.want {
			t.Errorf("Recognize(%q) = %q, want %q", tt.input, err, tt.want)
		}
	}
}

func TestRecognize_UnknownStart(t *testing.T) {
	g := mustGrammar(t, listGrammar)
	if err := Recognize(g, "Nope", []byte("()"), ""); err == nil {
		t.Error("expected error for unknown start production")
	}
}

func TestLexer_Backtracking(t *testing.T) {
	g, err := ebnf.Parse("test", strings.NewReader(`
S = suffixed { suffixed } .
suffixed = letter { letter } "x" .
letter = "a" … "z" .
`))
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}

	// The repetition may also swallow the final "x"; only the shorter
	// split completes the production.
	tokens, err := NewLexer(g, []byte("abx cx"), "").Tokenize()
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if got, want := kinds(tokens), "suffixed suffixed EOF"; got != want {
		t.Errorf("kinds = %q, want %q", got, want)
	}
	if tokens[0].Literal != "abx" {
		t.Errorf("literal = %q, want abx", tokens[0].Literal)
	}
}
