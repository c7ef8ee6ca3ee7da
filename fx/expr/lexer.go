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
	"unicode"
	"unicode/utf8"

	"github.com/fxplot/fxplot/debug"
)

type TokenType string

const (
	NUM         TokenType = "number"
	IDENT       TokenType = "identifier"
	ARITHMETIC  TokenType = "arithmetic"
	COMPARE     TokenType = "comparison"
	QUESTION    TokenType = "question"
	COLON       TokenType = "colon"
	LEFT_PAREN  TokenType = "leftparen"
	RIGHT_PAREN TokenType = "rightparen"
	EOF         TokenType = "EOF"
	UNKNOWN     TokenType = "unknown"
)

// Token is a single lexical unit of an expression string.
type Token struct {
	StartPos int
	EndPos   int
	Type     TokenType
	Val      string
}

func (t Token) isEOF() bool {
	return t.Type == EOF
}

func (t Token) String() string {
	return fmt.Sprintf("Token.Val(%v) Type(%v) StartEnd[%v:%v]",
		t.Val,
		t.Type,
		t.StartPos,
		t.EndPos,
	)
}

type Tokens []Token

func (ts Tokens) Vals() []string {
	v := make([]string, len(ts))
	for i, t := range ts {
		v[i] = t.Val
	}
	return v
}

// tokenize splits the normalized expression string into tokens.  Unknown
// runes become UNKNOWN tokens rather than aborting the scan -- the parser
// turns those into a positioned error.
func tokenize(input string) Tokens {
	var toks Tokens
	pos := 0
	for pos < len(input) {
		rn, width := utf8.DecodeRuneInString(input[pos:])
		switch {
		case unicode.IsSpace(rn):
			pos += width
		case rn >= '0' && rn <= '9' || rn == '.':
			end := scanNumber(input, pos)
			toks = append(toks, Token{Type: NUM, Val: input[pos:end], StartPos: pos, EndPos: end})
			pos = end
		case unicode.IsLetter(rn):
			end := scanIdent(input, pos)
			toks = append(toks, Token{Type: IDENT, Val: input[pos:end], StartPos: pos, EndPos: end})
			pos = end
		case rn == '+' || rn == '-' || rn == '*' || rn == '/' || rn == '^':
			toks = append(toks, Token{Type: ARITHMETIC, Val: string(rn), StartPos: pos, EndPos: pos + width})
			pos += width
		case rn == '<' || rn == '>' || rn == '=' || rn == '!':
			end := pos + width
			if end < len(input) && input[end] == '=' {
				end++
			}
			toks = append(toks, Token{Type: COMPARE, Val: input[pos:end], StartPos: pos, EndPos: end})
			pos = end
		case rn == '?':
			toks = append(toks, Token{Type: QUESTION, Val: "?", StartPos: pos, EndPos: pos + width})
			pos += width
		case rn == ':':
			toks = append(toks, Token{Type: COLON, Val: ":", StartPos: pos, EndPos: pos + width})
			pos += width
		case rn == '(':
			toks = append(toks, Token{Type: LEFT_PAREN, Val: "(", StartPos: pos, EndPos: pos + width})
			pos += width
		case rn == ')':
			toks = append(toks, Token{Type: RIGHT_PAREN, Val: ")", StartPos: pos, EndPos: pos + width})
			pos += width
		default:
			toks = append(toks, Token{Type: UNKNOWN, Val: string(rn), StartPos: pos, EndPos: pos + width})
			pos += width
		}
	}
	toks = append(toks, Token{Type: EOF, StartPos: pos, EndPos: pos})
	debug.Debugln(toks.Vals())
	return toks
}

// scanNumber consumes a real literal: digits, at most one dot, and an
// optional exponent part (1e-3).
func scanNumber(input string, start int) int {
	end := start
	sawDot := false
	for end < len(input) {
		c := input[end]
		if c >= '0' && c <= '9' {
			end++
			continue
		}
		if c == '.' && !sawDot {
			sawDot = true
			end++
			continue
		}
		break
	}
	// optional exponent, only if it is actually well-formed
	if end < len(input) && (input[end] == 'e' || input[end] == 'E') {
		expEnd := end + 1
		if expEnd < len(input) && (input[expEnd] == '+' || input[expEnd] == '-') {
			expEnd++
		}
		digits := expEnd
		for digits < len(input) && input[digits] >= '0' && input[digits] <= '9' {
			digits++
		}
		if digits > expEnd {
			end = digits
		}
	}
	return end
}

func scanIdent(input string, start int) int {
	end := start
	for end < len(input) {
		rn, width := utf8.DecodeRuneInString(input[end:])
		if !unicode.IsLetter(rn) && !unicode.IsDigit(rn) {
			break
		}
		end += width
	}
	return end
}
