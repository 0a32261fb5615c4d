package expression

import (
	"fmt"
	"strings"
)

type parser struct {
	text   string
	tokens []token
	pos    int
}

// Parse parses an infix arithmetic formula made of + - * /, parentheses, numeric
// literals and identifiers.
func Parse(text string) (Expr, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrParse)
	}

	tokens, err := tokenize(text)
	if err != nil {
		return nil, err
	}

	p := &parser{text: text, tokens: tokens}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, p.unexpected(tok)
	}

	return expr, nil
}

// MustParse is like Parse but panics on error. Intended for tests and static formulas.
func MustParse(text string) Expr {
	e, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return e
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) unexpected(tok token) error {
	if tok.kind == tokenRParen {
		return fmt.Errorf("%w: unbalanced parenthesis at offset %d in %q", ErrParse, tok.pos, p.text)
	}
	return fmt.Errorf("%w: unexpected %s at offset %d in %q", ErrParse, tok, tok.pos, p.text)
}

func (p *parser) isOperator(ops ...Op) (Op, bool) {
	tok := p.peek()
	if tok.kind != tokenOperator {
		return 0, false
	}
	for _, op := range ops {
		if tok.text[0] == byte(op) {
			return op, true
		}
	}
	return 0, false
}

// expr := term (('+' | '-') term)*
func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := p.isOperator(OpAdd, OpSub)
		if !ok {
			return left, nil
		}
		p.next()

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, L: left, R: right}
	}
}

// term := unary (('*' | '/') unary)*
func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := p.isOperator(OpMul, OpDiv)
		if !ok {
			return left, nil
		}
		p.next()

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, L: left, R: right}
	}
}

// unary := ('-' | '+') unary | primary
func (p *parser) parseUnary() (Expr, error) {
	if op, ok := p.isOperator(OpAdd, OpSub); ok {
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, X: x}, nil
	}

	return p.parsePrimary()
}

// primary := number | ident | '(' expr ')'
func (p *parser) parsePrimary() (Expr, error) {
	tok := p.next()

	switch tok.kind {
	case tokenNumber:
		return &Number{Value: tok.value}, nil
	case tokenIdent:
		return &Ident{Name: tok.text}, nil
	case tokenLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		closing := p.next()
		if closing.kind != tokenRParen {
			return nil, fmt.Errorf("%w: unbalanced parenthesis opened at offset %d in %q", ErrParse, tok.pos, p.text)
		}
		return inner, nil
	default:
		return nil, p.unexpected(tok)
	}
}
