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

package field

import (
	"math/big"

	"dirpx.dev/renf/ball"
	"dirpx.dev/renf/poly"
	"dirpx.dev/renf/utils/decimal"
)

// Element is an immutable element of a Field, stored as the reduced rational
// coefficient vector in the field's power basis. Elements never change their
// field reference; every operation allocates a new element.
type Element struct {
	fld    *Field
	coeffs []*big.Rat // always of length fld.degree
}

// newElement wraps a reduced polynomial of degree < f.degree as an element,
// zero-padding the coefficient vector to the field degree.
func (f *Field) newElement(reduced poly.Poly) *Element {
	coeffs := make([]*big.Rat, f.degree)
	for i := range coeffs {
		coeffs[i] = reduced.Coeff(i)
	}
	return &Element{fld: f, coeffs: coeffs}
}

// Field returns the handle of the field this element belongs to.
func (e *Element) Field() *Field {
	return e.fld
}

// Zero returns the additive identity of the field.
func (f *Field) Zero() *Element {
	return f.newElement(poly.Poly{})
}

// One returns the multiplicative identity of the field.
func (f *Field) One() *Element {
	return f.newElement(poly.FromInt64(1))
}

// Gen returns the generator of the field, i.e. the chosen root of the
// defining polynomial.
func (f *Field) Gen() *Element {
	gen, _ := poly.FromInt64(0, 1).Mod(f.minpoly)
	return f.newElement(gen)
}

// AnElement returns a typical element of the field, its generator.
func (f *Field) AnElement() *Element {
	return f.Gen()
}

// reduced returns the element's power-basis polynomial, trimmed.
func (e *Element) reduced() poly.Poly {
	return poly.New(e.coeffs...)
}

// IsZero reports whether e is the additive identity.
func (e *Element) IsZero() bool {
	for _, c := range e.coeffs {
		if c.Sign() != 0 {
			return false
		}
	}
	return true
}

// Rational returns the exact rational value of e and true when e lies in the
// prime field, i.e. all generator powers beyond the constant term vanish.
func (e *Element) Rational() (*big.Rat, bool) {
	for _, c := range e.coeffs[1:] {
		if c.Sign() != 0 {
			return nil, false
		}
	}
	return new(big.Rat).Set(e.coeffs[0]), true
}

// IsRational reports whether e lies in the prime field.
func (e *Element) IsRational() bool {
	_, ok := e.Rational()
	return ok
}

// IsInteger reports whether e is a rational integer.
func (e *Element) IsInteger() bool {
	r, ok := e.Rational()
	return ok && r.IsInt()
}

// Enclosure refines the generator enclosure until the element's own value is
// enclosed within maxWidth, then returns that value enclosure. The interval
// is exact: it always contains the element's real value.
func (e *Element) Enclosure(maxWidth *big.Rat) ball.Interval {
	if r, ok := e.Rational(); ok {
		return ball.Point(r)
	}
	ep := e.reduced()
	iv := ep.EvalInterval(e.fld.Enclosure())
	for i := 0; i < e.fld.maxRefine; i++ {
		if iv.Width().Cmp(maxWidth) <= 0 {
			break
		}
		e.fld.refine()
		iv = ep.EvalInterval(e.fld.Enclosure())
	}
	return iv
}

// String renders the element. Integers print bare ("2"), rationals print as
// "(2/3 ~ 0.666667)", and everything else as a compact polynomial in the
// generator with a six-decimal approximation, e.g. "(a+1 ~ 2.414214)".
func (e *Element) String() string {
	if r, ok := e.Rational(); ok {
		if r.IsInt() {
			return r.Num().String()
		}
		return "(" + r.RatString() + " ~ " + decimal.FormatFixed(r, 6) + ")"
	}
	iv := e.Enclosure(approxWidth())
	return "(" + e.reduced().Compact(e.fld.variable) + " ~ " + decimal.FormatFixed(iv.Mid(), 6) + ")"
}

// approxWidth is the value-enclosure width targeted for display rounding.
func approxWidth() *big.Rat {
	return new(big.Rat).SetFrac(big.NewInt(1), big.NewInt(100000000))
}
