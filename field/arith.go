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
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrFieldMismatch is returned when both operands do not reference the
	// identical field handle. Equal-but-distinct handles are rejected on
	// purpose: canonicalization must go through the registry.
	ErrFieldMismatch = errors.New("renf(field): operands belong to different field handles")
	// ErrDivisionByZero is returned when dividing by the additive identity.
	ErrDivisionByZero = errors.New("renf(field): division by zero")
	// ErrNonIntegerPower is returned when a power with a non-integer
	// exponent is requested.
	ErrNonIntegerPower = errors.New("renf(field): only integer exponents are supported")
)

// sameField rejects operands from distinct handles, even when those handles
// describe the same mathematical field.
func (e *Element) sameField(o *Element) error {
	if e.fld != o.fld {
		return ErrFieldMismatch
	}
	return nil
}

// Add returns e + o.
func (e *Element) Add(o *Element) (*Element, error) {
	if err := e.sameField(o); err != nil {
		return nil, err
	}
	coeffs := make([]*big.Rat, e.fld.degree)
	for i := range coeffs {
		coeffs[i] = new(big.Rat).Add(e.coeffs[i], o.coeffs[i])
	}
	return &Element{fld: e.fld, coeffs: coeffs}, nil
}

// Sub returns e - o.
func (e *Element) Sub(o *Element) (*Element, error) {
	if err := e.sameField(o); err != nil {
		return nil, err
	}
	coeffs := make([]*big.Rat, e.fld.degree)
	for i := range coeffs {
		coeffs[i] = new(big.Rat).Sub(e.coeffs[i], o.coeffs[i])
	}
	return &Element{fld: e.fld, coeffs: coeffs}, nil
}

// Neg returns -e.
func (e *Element) Neg() *Element {
	coeffs := make([]*big.Rat, e.fld.degree)
	for i := range coeffs {
		coeffs[i] = new(big.Rat).Neg(e.coeffs[i])
	}
	return &Element{fld: e.fld, coeffs: coeffs}
}

// Mul returns e * o, reduced in the power basis.
func (e *Element) Mul(o *Element) (*Element, error) {
	if err := e.sameField(o); err != nil {
		return nil, err
	}
	product := e.reduced().Mul(o.reduced())
	reduced, err := product.Mod(e.fld.minpoly)
	if err != nil {
		return nil, err
	}
	return e.fld.newElement(reduced), nil
}

// Div returns e / o via the field's exact division: the inverse of o is
// computed with the extended Euclidean algorithm against the minimal
// polynomial and multiplied in.
func (e *Element) Div(o *Element) (*Element, error) {
	if err := e.sameField(o); err != nil {
		return nil, err
	}
	inv, err := o.inverse()
	if err != nil {
		return nil, err
	}
	return e.Mul(inv)
}

// Inv returns the multiplicative inverse of e.
func (e *Element) Inv() (*Element, error) {
	return e.inverse()
}

func (e *Element) inverse() (*Element, error) {
	if e.IsZero() {
		return nil, ErrDivisionByZero
	}
	inv, err := e.reduced().ModInverse(e.fld.minpoly)
	if err != nil {
		return nil, fmt.Errorf("renf(field): inversion failed (defining polynomial not irreducible?): %w", err)
	}
	return e.fld.newElement(inv), nil
}

// Pow returns e^n for an integer exponent: repeated exact multiplication,
// with exact inversion for negative exponents. e^0 is one; 0^n for positive
// n is zero, and 0^n for negative n fails with ErrDivisionByZero.
func (e *Element) Pow(n int) (*Element, error) {
	if n < 0 {
		inv, err := e.inverse()
		if err != nil {
			return nil, err
		}
		return inv.Pow(-n)
	}
	result := e.fld.One()
	base := e
	var err error
	for n > 0 {
		if n&1 == 1 {
			if result, err = result.Mul(base); err != nil {
				return nil, err
			}
		}
		n >>= 1
		if n > 0 {
			if base, err = base.Mul(base); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// PowRat returns e^x for a rational exponent. Only integer exponents are
// representable exactly in the field, so any other x fails with
// ErrNonIntegerPower.
func (e *Element) PowRat(x *big.Rat) (*Element, error) {
	if !x.IsInt() {
		return nil, ErrNonIntegerPower
	}
	if !x.Num().IsInt64() {
		return nil, fmt.Errorf("%w: exponent out of range", ErrNonIntegerPower)
	}
	return e.Pow(int(x.Num().Int64()))
}

// Sign returns the exact sign of e's real value: -1, 0 or 1. For elements
// outside the prime field the generator enclosure is refined until the value
// enclosure excludes zero; this terminates whenever the defining polynomial
// is irreducible.
func (e *Element) Sign() (int, error) {
	if r, ok := e.Rational(); ok {
		return r.Sign(), nil
	}
	ep := e.reduced()
	for i := 0; i < e.fld.maxRefine; i++ {
		if s := ep.EvalInterval(e.fld.Enclosure()).Sign(); s != 0 {
			return s, nil
		}
		e.fld.refine()
	}
	return 0, ErrSignInconclusive
}

// Cmp compares e and o in the strict total order induced by the real
// embedding, returning -1, 0 or 1. The comparison is exact; there is no
// epsilon tolerance.
func (e *Element) Cmp(o *Element) (int, error) {
	diff, err := e.Sub(o)
	if err != nil {
		return 0, err
	}
	return diff.Sign()
}

// Equal reports exact equality of two elements of the same handle.
func (e *Element) Equal(o *Element) (bool, error) {
	if err := e.sameField(o); err != nil {
		return false, err
	}
	for i := range e.coeffs {
		if e.coeffs[i].Cmp(o.coeffs[i]) != 0 {
			return false, nil
		}
	}
	return true, nil
}
