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

// Package field implements real embedded number fields and their elements.
//
// A Field is an exact-field handle: a rational minimal polynomial, a generator
// variable, and an isolating interval selecting one of the polynomial's real
// roots as the generator's value. An Element is an immutable rational
// coefficient vector in the field's power basis. All arithmetic is exact;
// ordering is decided by refining the generator's enclosure, never by
// floating-point comparison.
//
// Fields are safe for concurrent use. Handles are meant to be obtained
// through a registry so that equal embeddings share one identical handle;
// arithmetic across distinct handles is rejected even when they describe the
// same mathematical field.
package field

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"dirpx.dev/renf/ball"
	"dirpx.dev/renf/poly"
)

var (
	// ErrInvalidPolynomial is returned when the defining polynomial is zero
	// or constant.
	ErrInvalidPolynomial = errors.New("renf(field): defining polynomial must have degree at least one")
	// ErrEmptyVariable is returned when an empty generator variable name is provided.
	ErrEmptyVariable = errors.New("renf(field): empty variable name provided")
	// ErrMalformedInterval is returned when the provided interval cannot be
	// used as an isolating interval (e.g. an endpoint is a root).
	ErrMalformedInterval = errors.New("renf(field): malformed isolating interval")
	// ErrIntervalNoRoot is returned when the interval contains no real root
	// of the defining polynomial.
	ErrIntervalNoRoot = errors.New("renf(field): interval contains no root of the polynomial")
	// ErrIntervalManyRoots is returned when the interval contains more than
	// one real root of the defining polynomial.
	ErrIntervalManyRoots = errors.New("renf(field): interval contains more than one root of the polynomial")
	// ErrSignInconclusive is returned when the refinement step limit is
	// reached before the sign of an element could be decided. This can only
	// happen when the defining polynomial is not a minimal (irreducible)
	// polynomial, or when the limit is configured too low.
	ErrSignInconclusive = errors.New("renf(field): sign undecided within the refinement step limit")
)

// DefaultMaxRefineSteps bounds enclosure bisection during sign decisions and
// display. Each step halves the enclosure, so the default allows enclosures
// far below any practical coefficient size.
const DefaultMaxRefineSteps = 4096

// Option configures a Field during construction.
type Option func(*Field)

// WithMaxRefineSteps bounds the number of enclosure bisections per sign
// decision. Non-positive values reset to DefaultMaxRefineSteps.
func WithMaxRefineSteps(n int) Option {
	return func(f *Field) {
		if n <= 0 {
			n = DefaultMaxRefineSteps
		}
		f.maxRefine = n
	}
}

// Field is an immutable handle to a real embedded number field. The only
// internal mutability is the cached generator enclosure, which is guarded by
// a mutex and only ever shrinks.
type Field struct {
	// minpoly is the monic defining polynomial, used for power-basis reduction.
	minpoly poly.Poly
	// ipoly is the primitive integer scaling of minpoly with positive leading
	// coefficient; it is the canonical display and identity form.
	ipoly poly.Poly
	// sf is the squarefree part of minpoly, used for enclosure bisection.
	sf poly.Poly
	// variable is the generator symbol.
	variable string
	// degree is the degree of the defining polynomial.
	degree int
	// maxRefine bounds enclosure bisections per sign decision.
	maxRefine int

	// mu guards encl; signLo is fixed after construction.
	mu sync.Mutex
	// encl is the current isolating enclosure of the generator.
	encl ball.Interval
	// signLo is the sign of sf at encl.Lo, invariant under refinement.
	signLo int
}

// New builds a field handle from a defining polynomial, a generator variable
// and an isolating interval. The interval must contain exactly one real root
// of the polynomial and its endpoints must not be roots; violations are
// reported eagerly, not deep inside later arithmetic.
func New(p poly.Poly, variable string, iv ball.Interval, opts ...Option) (*Field, error) {
	if p.Degree() < 1 {
		return nil, ErrInvalidPolynomial
	}
	if variable == "" {
		return nil, ErrEmptyVariable
	}

	count, err := p.CountRealRootsIn(iv)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInterval, err)
	}
	switch {
	case count == 0:
		return nil, ErrIntervalNoRoot
	case count > 1:
		return nil, ErrIntervalManyRoots
	}

	sf := p.Squarefree()
	signLo := sf.Eval(iv.Lo).Sign()
	if signLo == 0 || signLo == sf.Eval(iv.Hi).Sign() {
		return nil, fmt.Errorf("%w: interval does not bracket a sign change", ErrMalformedInterval)
	}

	f := &Field{
		minpoly:   p.Monic(),
		ipoly:     primitive(p),
		sf:        sf,
		variable:  variable,
		degree:    p.Degree(),
		maxRefine: DefaultMaxRefineSteps,
		encl:      ball.FromEndpoints(iv.Lo, iv.Hi),
		signLo:    signLo,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// primitive returns p scaled to coprime integer coefficients with a positive
// leading coefficient.
func primitive(p poly.Poly) poly.Poly {
	lcm := big.NewInt(1)
	for i := 0; i <= p.Degree(); i++ {
		c := p.Coeff(i)
		if c.Sign() != 0 {
			lcm.Mul(lcm, new(big.Int).Div(c.Denom(), new(big.Int).GCD(nil, nil, lcm, c.Denom())))
		}
	}
	scaled := p.Scale(new(big.Rat).SetInt(lcm))
	gcd := new(big.Int)
	for i := 0; i <= scaled.Degree(); i++ {
		c := scaled.Coeff(i)
		if c.Sign() != 0 {
			gcd.GCD(nil, nil, gcd, new(big.Int).Abs(c.Num()))
		}
	}
	if gcd.Sign() != 0 {
		scaled = scaled.Scale(new(big.Rat).SetFrac(big.NewInt(1), gcd))
	}
	if scaled.Lead().Sign() < 0 {
		scaled = scaled.Neg()
	}
	return scaled
}

// Degree returns the degree of the defining polynomial.
func (f *Field) Degree() int {
	return f.degree
}

// Variable returns the generator symbol.
func (f *Field) Variable() string {
	return f.variable
}

// MinimalPolynomial returns the primitive integer form of the defining
// polynomial, ascending degree.
func (f *Field) MinimalPolynomial() poly.Poly {
	return f.ipoly.Clone()
}

// Characteristic returns zero, the characteristic of every number field.
func (f *Field) Characteristic() *big.Int {
	return new(big.Int)
}

// Enclosure returns a copy of the current isolating enclosure of the
// generator. It only ever shrinks over the handle's lifetime.
func (f *Field) Enclosure() ball.Interval {
	f.mu.Lock()
	defer f.mu.Unlock()
	return ball.FromEndpoints(f.encl.Lo, f.encl.Hi)
}

// refine halves the generator enclosure once.
func (f *Field) refine() {
	f.mu.Lock()
	defer f.mu.Unlock()
	mid := splitAvoidingRoot(f.sf, f.encl)
	if f.sf.Eval(mid).Sign() == f.signLo {
		f.encl = ball.Interval{Lo: mid, Hi: f.encl.Hi}
	} else {
		f.encl = ball.Interval{Lo: f.encl.Lo, Hi: mid}
	}
}

// refineTo shrinks the enclosure until its width is at most maxWidth,
// respecting the refinement step limit.
func (f *Field) refineTo(maxWidth *big.Rat) ball.Interval {
	for i := 0; i < f.maxRefine; i++ {
		iv := f.Enclosure()
		if iv.Width().Cmp(maxWidth) <= 0 {
			return iv
		}
		f.refine()
	}
	return f.Enclosure()
}

// splitAvoidingRoot picks a point strictly inside iv at which sf does not
// vanish, preferring the midpoint.
func splitAvoidingRoot(sf poly.Poly, iv ball.Interval) *big.Rat {
	width := iv.Width()
	den := int64(2*sf.Degree() + 3)
	for i := int64(1); i <= den; i++ {
		var frac *big.Rat
		if i == 1 {
			frac = big.NewRat(1, 2)
		} else {
			frac = big.NewRat(i-1, den)
		}
		cand := new(big.Rat).Mul(width, frac)
		cand.Add(cand, iv.Lo)
		if sf.Eval(cand).Sign() != 0 {
			return cand
		}
	}
	return iv.Mid()
}

// IsolatingBall returns a ball around the generator suitable for textual
// descriptors. The enclosure is first refined well below the padding, then
// the radius is padded so that decimal rounding of the printed center can
// never push the root outside the ball.
func (f *Field) IsolatingBall() ball.Ball {
	iv := f.refineTo(displayWidth())
	b := iv.Ball()
	pad := new(big.Rat).Abs(b.Center)
	pad.Add(pad, big.NewRat(1, 1))
	pad.Mul(pad, padScale())
	b.Radius = new(big.Rat).Add(b.Radius, pad)
	return b
}

// String renders the field in the textual descriptor syntax, e.g.
// "NumberField(a^2 - 2, [1.4142135623730951 +/- 2.42e-14])".
func (f *Field) String() string {
	return "NumberField(" + f.ipoly.String(f.variable) + ", " + f.IsolatingBall().String() + ")"
}

// displayWidth is the enclosure width targeted for field display, well below
// the descriptor radius padding.
func displayWidth() *big.Rat {
	return new(big.Rat).SetFrac(big.NewInt(1), new(big.Int).Exp(big.NewInt(10), big.NewInt(16), nil))
}

// padScale is the relative radius padding applied to descriptor balls.
func padScale() *big.Rat {
	return new(big.Rat).SetFrac(big.NewInt(1), new(big.Int).Exp(big.NewInt(10), big.NewInt(14), nil))
}
