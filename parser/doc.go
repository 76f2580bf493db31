// Package parser turns the text of a linear system into an AST.
//
// Input is one equation per line, each a sum or difference of
// coefficient/variable terms equated to a number:
//
//	2x + 3y = 8
//	x - y = 2
//
// Variables are single ASCII letters and case matters. A coefficient of 1
// may be omitted ("x"), and "-x" means a coefficient of -1. The grammar is
// in grammar.ebnf and is returned by GrammarSource.
//
// # Pipeline
//
//	text ──▶ Lexer ──▶ []Token ──▶ Parser ──▶ *System
//
// Tokenize and Parse are stateless; each call builds its own Lexer and
// Parser, so they are safe to call from multiple goroutines.
//
// # Errors
//
// Parse fails with *LexError for characters outside the token set and with
// *ParseError for token sequences the grammar rejects. Neither produces a
// partial System.
//
// # Traversal
//
// Consumers implement Visitor and call Walk. Embedding BaseVisitor supplies
// the default handler, which fails with *UnsupportedNodeError.
package parser
