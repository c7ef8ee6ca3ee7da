/*
Copyright 2023 The fxplot Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package expr

import (
	"fmt"
	"math"
	"strconv"
)

// parser is a recursive-descent parser over the token stream.  Precedence,
// loosest to tightest: ternary, comparison, additive, multiplicative, unary
// minus, exponentiation (right-associative), atoms.
type parser struct {
	toks Tokens
	pos  int
}

// Parse turns an already-normalized expression string into a tree.
func Parse(input string) (Node, error) {
	p := &parser{toks: tokenize(input)}
	node, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if !p.peek().isEOF() {
		return nil, p.errorAt(p.peek(), "unexpected %q", p.peek().Val)
	}
	return node, nil
}

func (p *parser) peek() Token {
	return p.toks[p.pos]
}

func (p *parser) next() Token {
	t := p.toks[p.pos]
	if !t.isEOF() {
		p.pos++
	}
	return t
}

func (p *parser) expect(typ TokenType, what string) (Token, error) {
	t := p.next()
	if t.Type != typ {
		return t, p.errorAt(t, "expected %s, found %q", what, t.Val)
	}
	return t, nil
}

func (p *parser) errorAt(t Token, format string, args ...interface{}) error {
	if t.isEOF() {
		return fmt.Errorf("parse error at end of expression: "+format, args...)
	}
	return fmt.Errorf("parse error at position %d: "+format, append([]interface{}{t.StartPos}, args...)...)
}

func (p *parser) parseTernary() (Node, error) {
	cond, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != QUESTION {
		return cond, nil
	}
	p.next()
	then, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON, "':' of conditional"); err != nil {
		return nil, err
	}
	els, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	return Conditional{Cond: cond, Then: then, Else: els}, nil
}

func (p *parser) parseComparison() (Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != COMPARE {
		return left, nil
	}
	op := p.next()
	switch op.Val {
	case "<", "<=", ">", ">=", "==", "!=":
	default:
		return nil, p.errorAt(op, "unsupported comparison %q", op.Val)
	}
	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return Binary{Op: op.Val, Left: left, Right: right}, nil
}

func (p *parser) parseAdditive() (Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == ARITHMETIC && (p.peek().Val == "+" || p.peek().Val == "-") {
		op := p.next().Val
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == ARITHMETIC && (p.peek().Val == "*" || p.peek().Val == "/") {
		op := p.next().Val
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Node, error) {
	if p.peek().Type == ARITHMETIC && p.peek().Val == "-" {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Neg{Operand: operand}, nil
	}
	if p.peek().Type == ARITHMETIC && p.peek().Val == "+" {
		p.next()
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Node, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.peek().Type == ARITHMETIC && p.peek().Val == "^" {
		p.next()
		// the exponent may itself carry a unary minus (2^-3)
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Binary{Op: "^", Left: base, Right: exp}, nil
	}
	return base, nil
}

func (p *parser) parseAtom() (Node, error) {
	t := p.next()
	switch t.Type {
	case NUM:
		val, err := strconv.ParseFloat(t.Val, 64)
		if err != nil {
			return nil, p.errorAt(t, "malformed number %q", t.Val)
		}
		return Literal{Val: val}, nil
	case IDENT:
		switch t.Val {
		case "x":
			return Variable{}, nil
		case "pi", "π":
			return Literal{Val: math.Pi}, nil
		}
		if !knownFuncs[t.Val] {
			return nil, p.errorAt(t, "unknown identifier %q", t.Val)
		}
		if _, err := p.expect(LEFT_PAREN, "'(' after function name"); err != nil {
			return nil, err
		}
		arg, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RIGHT_PAREN, "')'"); err != nil {
			return nil, err
		}
		return Call{Name: t.Val, Arg: arg}, nil
	case LEFT_PAREN:
		inner, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RIGHT_PAREN, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	case EOF:
		return nil, p.errorAt(t, "unexpected end of expression")
	}
	return nil, p.errorAt(t, "unexpected %q", t.Val)
}
