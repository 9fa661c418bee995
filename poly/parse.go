/*
   Copyright 2025 The DIRPX Authors.

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

package poly

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"dirpx.dev/renf/utils/decimal"
)

var (
	// ErrMalformedExpression is returned when a polynomial expression cannot
	// be parsed.
	ErrMalformedExpression = errors.New("renf(poly): malformed polynomial expression")
	// ErrUnknownVariable is returned when an expression references a symbol
	// other than the expected variable.
	ErrUnknownVariable = errors.New("renf(poly): unknown variable in expression")
	// ErrNegativeExponent is returned when an expression carries a negative
	// or non-integer exponent.
	ErrNegativeExponent = errors.New("renf(poly): exponent must be a non-negative integer")
)

// Parse reads a polynomial expression in the given variable, e.g. "a^2 - 2",
// "x^3 + 3*x - 13", "1/2*a + 1" or "-a+1". Terms are signed monomials with
// integer, rational or decimal coefficients; the '*' between coefficient and
// variable is optional. A bare number parses as a constant polynomial.
func Parse(s, variable string) (Poly, error) {
	if variable == "" {
		return nil, fmt.Errorf("%w: empty variable name", ErrUnknownVariable)
	}
	lex := &lexer{src: s}
	sum := Poly{}
	first := true
	for {
		lex.skipSpace()
		if lex.eof() {
			if first {
				return nil, fmt.Errorf("%w: empty expression", ErrMalformedExpression)
			}
			return sum, nil
		}
		sign := 1
		switch {
		case lex.accept('+'):
			if first {
				return nil, fmt.Errorf("%w: leading '+'", ErrMalformedExpression)
			}
		case lex.accept('-'):
			sign = -1
		default:
			if !first {
				return nil, fmt.Errorf("%w: expected '+' or '-' near %q", ErrMalformedExpression, lex.rest())
			}
		}
		term, err := lex.term(variable)
		if err != nil {
			return nil, err
		}
		if sign < 0 {
			term = term.Neg()
		}
		sum = sum.Add(term)
		first = false
	}
}

// lexer is a minimal cursor over a polynomial expression.
type lexer struct {
	src string
	pos int
}

func (l *lexer) eof() bool { return l.pos >= len(l.src) }

func (l *lexer) rest() string { return l.src[l.pos:] }

func (l *lexer) skipSpace() {
	for !l.eof() && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t') {
		l.pos++
	}
}

// accept consumes c if it is the next byte.
func (l *lexer) accept(c byte) bool {
	if !l.eof() && l.src[l.pos] == c {
		l.pos++
		return true
	}
	return false
}

// number consumes an unsigned numeric literal: digits with optional '/',
// '.' or exponent part.
func (l *lexer) number() (string, bool) {
	start := l.pos
	seenDigit := false
	for !l.eof() {
		c := l.src[l.pos]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
			l.pos++
		case c == '.' || c == '/':
			l.pos++
		case (c == 'e' || c == 'E') && seenDigit:
			// Exponent part, possibly signed.
			l.pos++
			if !l.eof() && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
				l.pos++
			}
		default:
			return l.src[start:l.pos], seenDigit
		}
	}
	return l.src[start:l.pos], seenDigit
}

// symbol consumes an identifier.
func (l *lexer) symbol() string {
	start := l.pos
	for !l.eof() {
		c := l.src[l.pos]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9' && l.pos > start) {
			l.pos++
			continue
		}
		break
	}
	return l.src[start:l.pos]
}

// term parses one unsigned monomial: coefficient, variable power, or both.
func (l *lexer) term(variable string) (Poly, error) {
	l.skipSpace()
	coeff := big.NewRat(1, 1)
	haveCoeff := false
	if lit, ok := l.number(); ok {
		c, err := decimal.Parse(lit)
		if err != nil {
			return nil, fmt.Errorf("%w: bad coefficient %q", ErrMalformedExpression, lit)
		}
		coeff = c
		haveCoeff = true
		l.skipSpace()
		if l.accept('*') {
			l.skipSpace()
		}
	}

	sym := l.symbol()
	if sym == "" {
		if !haveCoeff {
			return nil, fmt.Errorf("%w: expected term near %q", ErrMalformedExpression, l.rest())
		}
		return Constant(coeff), nil
	}
	if sym != variable {
		return nil, fmt.Errorf("%w: %q (expected %q)", ErrUnknownVariable, sym, variable)
	}

	exp := 1
	l.skipSpace()
	if l.accept('^') {
		l.skipSpace()
		lit, ok := l.number()
		if !ok {
			return nil, fmt.Errorf("%w: missing exponent", ErrMalformedExpression)
		}
		n, err := strconv.Atoi(lit)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q", ErrNegativeExponent, lit)
		}
		exp = n
	}

	mono := make(Poly, exp+1)
	for i := range mono {
		mono[i] = new(big.Rat)
	}
	mono[exp].Set(coeff)
	return mono.trim(), nil
}

// String renders p in descending order with spaced operators, the form used
// for defining polynomials: "a^2 - 2", "x^3 + 3*x - 13".
func (p Poly) String(variable string) string {
	return p.format(variable, true)
}

// Compact renders p in descending order without spaces, the form used inside
// element display: "a+1", "-a+1", "1/2*a".
func (p Poly) Compact(variable string) string {
	return p.format(variable, false)
}

func (p Poly) format(variable string, spaced bool) string {
	q := p.trimView()
	if q.IsZero() {
		return "0"
	}
	var sb strings.Builder
	first := true
	for i := len(q) - 1; i >= 0; i-- {
		c := q[i]
		if c.Sign() == 0 {
			continue
		}
		abs := new(big.Rat).Abs(c)
		switch {
		case first && c.Sign() < 0:
			sb.WriteByte('-')
		case !first && spaced:
			if c.Sign() < 0 {
				sb.WriteString(" - ")
			} else {
				sb.WriteString(" + ")
			}
		case !first:
			if c.Sign() < 0 {
				sb.WriteByte('-')
			} else {
				sb.WriteByte('+')
			}
		}
		if i == 0 {
			sb.WriteString(abs.RatString())
		} else {
			if abs.Cmp(big.NewRat(1, 1)) != 0 {
				sb.WriteString(abs.RatString())
				sb.WriteByte('*')
			}
			sb.WriteString(variable)
			if i > 1 {
				sb.WriteByte('^')
				sb.WriteString(strconv.Itoa(i))
			}
		}
		first = false
	}
	return sb.String()
}
