package parser

type Option func(*Parser)

// WithFile sets the file name reported in error positions.
func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// Parser is a recursive-descent parser for the grammar in grammar.ebnf.
type Parser struct {
	file   string
	tokens []Token
	pos    int
}

// Parse tokenizes and parses src into a System. Lexical errors are returned
// as *LexError, grammar violations as *ParseError. There is no partial
// result.
func Parse(src []byte, opts ...Option) (*System, error) {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	tokens, err := tokenize(NewLexer(src, p.file))
	if err != nil {
		return nil, err
	}
	p.tokens = tokens
	return p.parseSystem()
}

// ParseTokens parses an already tokenized input. The slice must end with a
// TokenEOF token, as returned by Tokenize.
func ParseTokens(tokens []Token) (*System, error) {
	p := &Parser{tokens: tokens}
	return p.parseSystem()
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		var pos Position
		if n := len(p.tokens); n > 0 {
			pos = p.tokens[n-1].Pos
		}
		return Token{Kind: TokenEOF, Pos: pos}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return tok, p.errorf(kind)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(expected ...TokenKind) error {
	tok := p.peek()
	return &ParseError{Pos: tok.Pos, Got: tok, Expected: expected}
}

// System = Equation { Equation } .
func (p *Parser) parseSystem() (*System, error) {
	sys := &System{}
	for {
		eq, err := p.parseEquation()
		if err != nil {
			return nil, err
		}
		sys.Equations = append(sys.Equations, eq)
		if p.check(TokenEOF) {
			return sys, nil
		}
	}
}

// Equation = Expression "=" number .
func (p *Parser) parseEquation() (Equation, error) {
	start := p.peek().Pos
	terms, err := p.parseExpression(1)
	if err != nil {
		return Equation{}, err
	}
	if _, err := p.expect(TokenEquals); err != nil {
		// The expression loop stops on anything but an operator, so name
		// those too.
		return Equation{}, p.errorf(TokenPlus, TokenMinus, TokenEquals)
	}
	value, err := p.expect(TokenNumber)
	if err != nil {
		return Equation{}, err
	}
	return Equation{Terms: terms, Value: value.Value, Pos: start}, nil
}

// Expression = Term [ ( "+" | "-" ) Expression ] .
//
// sign is the operator that preceded this expression; it applies to the
// leading term only, so "a - b - c" reads as a + (-b) + (-c). Terms are
// built with their final sign rather than flipped in place.
func (p *Parser) parseExpression(sign float64) ([]Term, error) {
	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if sign < 0 {
		first = first.Negate()
	}

	next := 1.0
	switch p.peek().Kind {
	case TokenPlus:
	case TokenMinus:
		next = -1
	default:
		return []Term{first}, nil
	}
	p.advance()
	rest, err := p.parseExpression(next)
	if err != nil {
		return nil, err
	}
	return append([]Term{first}, rest...), nil
}

// Term = number id | "-" id | id .
func (p *Parser) parseTerm() (Term, error) {
	switch p.peek().Kind {
	case TokenNumber:
		coef := p.advance()
		id, err := p.expect(TokenIdent)
		if err != nil {
			return Term{}, err
		}
		return Term{Coefficient: coef.Value, Variable: id.Literal[0]}, nil
	case TokenMinus:
		p.advance()
		id, err := p.expect(TokenIdent)
		if err != nil {
			return Term{}, err
		}
		return Term{Coefficient: -1, Variable: id.Literal[0]}, nil
	case TokenIdent:
		id := p.advance()
		return Term{Coefficient: 1, Variable: id.Literal[0]}, nil
	default:
		return Term{}, p.errorf(TokenNumber, TokenMinus, TokenIdent)
	}
}
