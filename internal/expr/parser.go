package expr

import (
	"strings"

	"github.com/codefionn/rpncalc/internal/value"
)

// bareOperators are accepted as a whole line and returned as identifiers, so
// an RPN user can type "+" after pushing two operands.
var bareOperators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true, "^": true,
}

// Parse lexes and parses src, lowest precedence first:
//
//	expr           := additive
//	additive       := multiplicative (('+'|'-') multiplicative)*
//	multiplicative := unary (('*'|'/'|'%') unary)*
//	unary          := '+' unary | '-' unary | power
//	power          := call ('^' unary)?
//	call           := Identifier '(' (additive (',' additive)*)? ')' | paren
//	paren          := '(' additive ')' | primary
//	primary        := DecimalNumber | HexNumber | Identifier | String
func Parse(src string) (Node, error) {
	if trimmed := strings.TrimSpace(src); bareOperators[trimmed] {
		return Ident{Name: trimmed}, nil
	}

	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, tokens: tokens}
	return p.parseExpr()
}

type parser struct {
	src    string
	tokens []Token
	pos    int
}

func (p *parser) peek(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *parser) next() Token {
	t := p.peek(0)
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	t := p.peek(0)
	if t.Kind != kind {
		return Token{}, p.unexpected(t, kind.String())
	}
	return p.next(), nil
}

func (p *parser) unexpected(t Token, want string) *ParseError {
	return errorAt(p.src, t.Start, t.End, "expected %s but found %s", want, t.describe())
}

func (p *parser) parseExpr() (Node, error) {
	if _, err := p.expect(StartOfInput); err != nil {
		return nil, err
	}
	if p.peek(0).Kind == EndOfInput {
		return nil, errorAt(p.src, 0, 0, "empty expression")
	}
	n, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(EndOfInput); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *parser) parseAdditive() (Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.peek(0).isOperator("+", "-") {
		op := p.next().Text
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = Binary{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek(0).isOperator("*", "/", "%") {
		op := p.next().Text
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = Binary{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Node, error) {
	t := p.peek(0)
	switch {
	case t.isOperator("+"):
		p.next()
		return p.parseUnary()
	case t.isOperator("-"):
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Unary{Op: "neg", Operand: operand}, nil
	}
	return p.parsePower()
}

// parsePower is right associative because its exponent is a unary, which
// itself may contain another power.
func (p *parser) parsePower() (Node, error) {
	base, err := p.parseCall()
	if err != nil {
		return nil, err
	}
	if !p.peek(0).isOperator("^") {
		return base, nil
	}
	op := p.next().Text
	exponent, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return Binary{Left: base, Op: op, Right: exponent}, nil
}

func (p *parser) parseCall() (Node, error) {
	if p.peek(0).Kind != Identifier || p.peek(1).Kind != LeftParen {
		return p.parseParen()
	}
	name := p.next().Text
	p.next()

	var args []Node
	if p.peek(0).Kind == RightParen {
		p.next()
		return Call{Name: name, Args: args}, nil
	}
	for {
		arg, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		t := p.peek(0)
		switch t.Kind {
		case Comma:
			p.next()
		case RightParen:
			p.next()
			return Call{Name: name, Args: args}, nil
		default:
			return nil, p.unexpected(t, "',' or ')'")
		}
	}
}

func (p *parser) parseParen() (Node, error) {
	if p.peek(0).Kind != LeftParen {
		return p.parsePrimary()
	}
	p.next()
	n, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RightParen); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *parser) parsePrimary() (Node, error) {
	t := p.peek(0)
	switch t.Kind {
	case DecimalNumber:
		p.next()
		return Literal{Value: value.Number(t.Number, value.Decimal)}, nil
	case HexNumber:
		p.next()
		return Literal{Value: value.Number(t.Number, value.Hexadecimal)}, nil
	case Identifier:
		p.next()
		return Ident{Name: t.Text}, nil
	case String:
		p.next()
		return Literal{Value: value.String(t.Text)}, nil
	}
	return nil, p.unexpected(t, "expression")
}
