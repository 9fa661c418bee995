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

	"dirpx.dev/renf/poly"
)

var (
	// ErrMalformedElement is returned when a value cannot be encoded as an
	// element of the field.
	ErrMalformedElement = errors.New("renf(field): value cannot be encoded as a field element")
	// ErrTooManyCoefficients is returned when a coefficient vector exceeds
	// the field degree.
	ErrTooManyCoefficients = errors.New("renf(field): coefficient vector longer than field degree")
)

// CoefficientSource is implemented by external representations of algebraic
// numbers that expose their power-basis coefficients in the same generator.
// Encode accepts any such value, making lossless interop possible without a
// dependency on the foreign type.
type CoefficientSource interface {
	// PowerBasisCoefficients returns rational coefficients in ascending
	// degree order.
	PowerBasisCoefficients() []*big.Rat
}

// Encode converts a value to an exact element of f. Accepted forms: Go
// integers, *big.Int, *big.Rat, a dense ascending coefficient slice
// ([]*big.Rat or []int64, length at most the field degree), a polynomial
// expression string in the generator symbol (which covers bare integers and
// "p/q" rationals), an existing *Element of f, and any CoefficientSource.
func (f *Field) Encode(value any) (*Element, error) {
	switch v := value.(type) {
	case *Element:
		if v.fld != f {
			return nil, ErrFieldMismatch
		}
		return v, nil
	case int:
		return f.encodeRat(new(big.Rat).SetInt64(int64(v))), nil
	case int64:
		return f.encodeRat(new(big.Rat).SetInt64(v)), nil
	case *big.Int:
		return f.encodeRat(new(big.Rat).SetInt(v)), nil
	case *big.Rat:
		return f.encodeRat(v), nil
	case []*big.Rat:
		return f.encodeCoefficients(v)
	case []int64:
		coeffs := make([]*big.Rat, len(v))
		for i, c := range v {
			coeffs[i] = new(big.Rat).SetInt64(c)
		}
		return f.encodeCoefficients(coeffs)
	case string:
		p, err := poly.Parse(v, f.variable)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedElement, err)
		}
		// Textual input may mention generator powers at or above the degree
		// ("a^2" in a quadratic field); they reduce exactly first.
		reduced, err := p.Mod(f.minpoly)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedElement, err)
		}
		coeffs := make([]*big.Rat, reduced.Degree()+1)
		for i := range coeffs {
			coeffs[i] = reduced.Coeff(i)
		}
		return f.encodeCoefficients(coeffs)
	case CoefficientSource:
		return f.encodeCoefficients(v.PowerBasisCoefficients())
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrMalformedElement, value)
	}
}

// encodeRat embeds a rational constant.
func (f *Field) encodeRat(r *big.Rat) *Element {
	return f.newElement(poly.Constant(r))
}

// encodeCoefficients realizes a power-basis coefficient vector using only
// field ring operations: a running generator power is maintained and each
// coefficient is accumulated as sum += c_i * gen_pow; gen_pow *= gen.
func (f *Field) encodeCoefficients(coeffs []*big.Rat) (*Element, error) {
	trimmed := len(coeffs)
	for trimmed > 0 && coeffs[trimmed-1].Sign() == 0 {
		trimmed--
	}
	if trimmed > f.degree {
		return nil, ErrTooManyCoefficients
	}
	coeffs = coeffs[:trimmed]
	gen := f.Gen()
	genPow := f.One()
	sum := f.Zero()
	for _, c := range coeffs {
		term, err := f.encodeRat(c).Mul(genPow)
		if err != nil {
			return nil, err
		}
		if sum, err = sum.Add(term); err != nil {
			return nil, err
		}
		if genPow, err = genPow.Mul(gen); err != nil {
			return nil, err
		}
	}
	return sum, nil
}

// Decode extracts the element's exact rational coefficient vector in the
// power basis, zero-padded to the field degree. It fails with
// ErrFieldMismatch when e belongs to a different handle. Decode is the exact
// inverse of Encode on coefficient vectors of length at most the degree.
func (f *Field) Decode(e *Element) ([]*big.Rat, error) {
	if e.fld != f {
		return nil, ErrFieldMismatch
	}
	return e.Coefficients(), nil
}

// Coefficients returns a copy of the element's power-basis coefficient
// vector, length equal to the field degree.
func (e *Element) Coefficients() []*big.Rat {
	out := make([]*big.Rat, len(e.coeffs))
	for i, c := range e.coeffs {
		out[i] = new(big.Rat).Set(c)
	}
	return out
}

// NumeratorVector returns the element's coefficients as integer numerators
// over one shared denominator, the form used by backend exact engines.
func (e *Element) NumeratorVector() ([]*big.Int, *big.Int) {
	den := big.NewInt(1)
	for _, c := range e.coeffs {
		gcd := new(big.Int).GCD(nil, nil, den, c.Denom())
		den.Mul(den, new(big.Int).Div(c.Denom(), gcd))
	}
	nums := make([]*big.Int, len(e.coeffs))
	for i, c := range e.coeffs {
		scale := new(big.Int).Div(den, c.Denom())
		nums[i] = new(big.Int).Mul(c.Num(), scale)
	}
	return nums, den
}
