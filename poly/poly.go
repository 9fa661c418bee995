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

// Package poly implements exact univariate polynomial arithmetic over the
// rationals: ring operations, Euclidean division, (extended) GCD, Sturm
// sequences, real-root counting and isolation, and exact interval evaluation.
// Coefficients are big.Rat values in ascending degree order. A Poly is
// immutable once constructed; every operation returns a fresh value.
package poly

import (
	"errors"
	"math/big"

	"dirpx.dev/renf/ball"
)

var (
	// ErrDivisionByZero is returned when dividing by the zero polynomial.
	ErrDivisionByZero = errors.New("renf(poly): division by zero polynomial")
	// ErrNotInvertible is returned when an element has no inverse modulo the
	// given modulus, i.e. the two polynomials share a non-trivial factor.
	ErrNotInvertible = errors.New("renf(poly): polynomial is not invertible modulo the modulus")
	// ErrRootAtEndpoint is returned when a root-counting query is posed on an
	// interval whose endpoint is itself a root.
	ErrRootAtEndpoint = errors.New("renf(poly): interval endpoint is a root")
)

// Poly is a univariate polynomial over the rationals with coefficients in
// ascending degree order. The zero polynomial is the empty slice. A normalized
// Poly carries no trailing zero coefficients.
type Poly []*big.Rat

// New builds a polynomial from ascending-degree coefficients.
// The coefficients are copied and trailing zeros are trimmed.
func New(coeffs ...*big.Rat) Poly {
	p := make(Poly, len(coeffs))
	for i, c := range coeffs {
		p[i] = new(big.Rat).Set(c)
	}
	return p.trim()
}

// FromInt64 builds a polynomial from ascending-degree integer coefficients.
func FromInt64(coeffs ...int64) Poly {
	p := make(Poly, len(coeffs))
	for i, c := range coeffs {
		p[i] = big.NewRat(c, 1)
	}
	return p.trim()
}

// Constant returns the degree-zero polynomial c.
func Constant(c *big.Rat) Poly {
	return New(c)
}

// trim drops trailing zero coefficients in place and returns the result.
func (p Poly) trim() Poly {
	n := len(p)
	for n > 0 && p[n-1].Sign() == 0 {
		n--
	}
	return p[:n]
}

// Clone returns a deep copy of p.
func (p Poly) Clone() Poly {
	q := make(Poly, len(p))
	for i, c := range p {
		q[i] = new(big.Rat).Set(c)
	}
	return q
}

// IsZero reports whether p is the zero polynomial.
func (p Poly) IsZero() bool {
	return len(p) == 0
}

// Degree returns the degree of p, or -1 for the zero polynomial.
func (p Poly) Degree() int {
	return len(p) - 1
}

// Coeff returns a copy of the coefficient of x^i, which is zero for i beyond
// the degree.
func (p Poly) Coeff(i int) *big.Rat {
	if i < 0 || i >= len(p) {
		return new(big.Rat)
	}
	return new(big.Rat).Set(p[i])
}

// Lead returns a copy of the leading coefficient, or zero for the zero
// polynomial.
func (p Poly) Lead() *big.Rat {
	return p.Coeff(p.Degree())
}

// Add returns p + q.
func (p Poly) Add(q Poly) Poly {
	n := max(len(p), len(q))
	out := make(Poly, n)
	for i := 0; i < n; i++ {
		out[i] = new(big.Rat)
		if i < len(p) {
			out[i].Add(out[i], p[i])
		}
		if i < len(q) {
			out[i].Add(out[i], q[i])
		}
	}
	return out.trim()
}

// Sub returns p - q.
func (p Poly) Sub(q Poly) Poly {
	return p.Add(q.Neg())
}

// Neg returns -p.
func (p Poly) Neg() Poly {
	out := make(Poly, len(p))
	for i, c := range p {
		out[i] = new(big.Rat).Neg(c)
	}
	return out
}

// Mul returns p * q.
func (p Poly) Mul(q Poly) Poly {
	if p.IsZero() || q.IsZero() {
		return Poly{}
	}
	out := make(Poly, len(p)+len(q)-1)
	for i := range out {
		out[i] = new(big.Rat)
	}
	t := new(big.Rat)
	for i, a := range p {
		if a.Sign() == 0 {
			continue
		}
		for j, b := range q {
			t.Mul(a, b)
			out[i+j].Add(out[i+j], t)
		}
	}
	return out.trim()
}

// Scale returns r * p.
func (p Poly) Scale(r *big.Rat) Poly {
	if r.Sign() == 0 {
		return Poly{}
	}
	out := make(Poly, len(p))
	for i, c := range p {
		out[i] = new(big.Rat).Mul(c, r)
	}
	return out.trim()
}

// Derivative returns the formal derivative p'.
func (p Poly) Derivative() Poly {
	if len(p) <= 1 {
		return Poly{}
	}
	out := make(Poly, len(p)-1)
	for i := 1; i < len(p); i++ {
		out[i-1] = new(big.Rat).Mul(p[i], big.NewRat(int64(i), 1))
	}
	return out.trim()
}

// Monic returns p scaled so that its leading coefficient is one.
// The zero polynomial is returned unchanged.
func (p Poly) Monic() Poly {
	if p.IsZero() {
		return Poly{}
	}
	inv := new(big.Rat).Inv(p[len(p)-1])
	return p.Scale(inv)
}

// Equal reports exact coefficient-wise equality.
func (p Poly) Equal(q Poly) bool {
	a, b := p.trimView(), q.trimView()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Cmp(b[i]) != 0 {
			return false
		}
	}
	return true
}

// trimView returns the normalized slice without copying coefficients.
func (p Poly) trimView() Poly {
	n := len(p)
	for n > 0 && p[n-1].Sign() == 0 {
		n--
	}
	return p[:n]
}

// QuoRem performs Euclidean division of p by q, returning quotient and
// remainder with deg(rem) < deg(q).
func (p Poly) QuoRem(q Poly) (Poly, Poly, error) {
	q = q.trimView()
	if q.IsZero() {
		return nil, nil, ErrDivisionByZero
	}
	rem := p.Clone().trim()
	quo := make(Poly, 0)
	if len(rem) >= len(q) {
		quo = make(Poly, len(rem)-len(q)+1)
		for i := range quo {
			quo[i] = new(big.Rat)
		}
	}
	leadInv := new(big.Rat).Inv(q[len(q)-1])
	t := new(big.Rat)
	for len(rem) >= len(q) {
		shift := len(rem) - len(q)
		factor := new(big.Rat).Mul(rem[len(rem)-1], leadInv)
		quo[shift].Set(factor)
		for j, c := range q {
			t.Mul(factor, c)
			rem[shift+j] = new(big.Rat).Sub(rem[shift+j], t)
		}
		rem = rem.trim()
	}
	return quo.trim(), rem, nil
}

// Mod returns the remainder of p modulo q.
func (p Poly) Mod(q Poly) (Poly, error) {
	_, rem, err := p.QuoRem(q)
	return rem, err
}

// GCD returns the monic greatest common divisor of p and q.
// GCD(0, 0) is the zero polynomial.
func (p Poly) GCD(q Poly) Poly {
	a, b := p.Clone().trim(), q.Clone().trim()
	for !b.IsZero() {
		// Monic normalization keeps coefficient growth in check.
		_, rem, _ := a.QuoRem(b)
		a, b = b, rem.Monic()
	}
	return a.Monic()
}

// Squarefree returns the squarefree part p / gcd(p, p'), monic.
func (p Poly) Squarefree() Poly {
	if p.Degree() < 1 {
		return p.Monic()
	}
	g := p.GCD(p.Derivative())
	if g.Degree() < 1 {
		return p.Monic()
	}
	quo, _, _ := p.QuoRem(g)
	return quo.Monic()
}

// ModInverse returns the inverse of p modulo m, i.e. a polynomial t with
// t*p = 1 (mod m). It fails with ErrNotInvertible when p and m share a
// non-trivial common factor, and with ErrDivisionByZero when p is zero
// modulo m.
func (p Poly) ModInverse(m Poly) (Poly, error) {
	red, err := p.Mod(m)
	if err != nil {
		return nil, err
	}
	if red.IsZero() {
		return nil, ErrDivisionByZero
	}
	oldR, r := m.Clone().trim(), red
	oldT, t := Poly{}, FromInt64(1)
	for !r.IsZero() {
		quo, rem, _ := oldR.QuoRem(r)
		oldR, r = r, rem
		oldT, t = t, oldT.Sub(quo.Mul(t))
	}
	if oldR.Degree() > 0 {
		return nil, ErrNotInvertible
	}
	// Scale so that the Bezout identity yields exactly one.
	inv := new(big.Rat).Inv(oldR[0])
	out := oldT.Scale(inv)
	return out.Mod(m)
}

// Eval returns the exact value of p at x using Horner's scheme.
func (p Poly) Eval(x *big.Rat) *big.Rat {
	acc := new(big.Rat)
	for i := len(p) - 1; i >= 0; i-- {
		acc.Mul(acc, x)
		acc.Add(acc, p[i])
	}
	return acc
}

// EvalInterval returns an interval guaranteed to contain p(x) for every x in
// iv. The enclosure is computed with exact rational interval arithmetic; it
// may overestimate but never misses a value.
func (p Poly) EvalInterval(iv ball.Interval) ball.Interval {
	res := ball.Point(p.Coeff(0))
	if len(p) <= 1 {
		return res
	}
	pw := ball.Point(big.NewRat(1, 1))
	for i := 1; i < len(p); i++ {
		pw = pw.Mul(iv)
		if p[i].Sign() != 0 {
			res = res.Add(pw.Scale(p[i]))
		}
	}
	return res
}
