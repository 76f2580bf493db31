package parser

import (
	"bytes"
	_ "embed"
	"fmt"

	"golang.org/x/exp/ebnf"
)

// GrammarStart is the start production of the equation grammar.
const GrammarStart = "System"

//go:embed grammar.ebnf
var grammarSource []byte

// GrammarSource returns the EBNF text the parser implements.
func GrammarSource() []byte {
	return bytes.Clone(grammarSource)
}

// Grammar parses the embedded EBNF and verifies that every production is
// defined and reachable from GrammarStart.
func Grammar() (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse("grammar.ebnf", bytes.NewReader(grammarSource))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(grammar, GrammarStart); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return grammar, nil
}
