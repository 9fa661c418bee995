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

// Package ball provides exact center-radius balls and endpoint intervals over
// the rationals. Balls are the external "[center +/- radius]" syntax used to
// pin down one real root of a polynomial; intervals are the internal form all
// root isolation and sign computations work with. Both are immutable values.
package ball

import (
	"errors"
	"math/big"
	"strings"

	"dirpx.dev/renf/utils/decimal"
)

var (
	// ErrMalformedBall is returned when a ball literal cannot be parsed.
	ErrMalformedBall = errors.New("renf(ball): malformed ball literal")
	// ErrNegativeRadius is returned when a ball literal carries a negative radius.
	ErrNegativeRadius = errors.New("renf(ball): negative radius")
)

// Ball is an exact center-radius pair describing the set
// [Center-Radius, Center+Radius]. The zero radius ball is a point.
type Ball struct {
	// Center is the midpoint of the ball.
	Center *big.Rat
	// Radius is the non-negative half-width of the ball.
	Radius *big.Rat
}

// Parse reads a ball literal of the form "[c +/- r]" or "c +/- r".
// A bare number "c" parses as the point ball with radius zero.
// Center and radius accept integer, rational and decimal notation.
func Parse(s string) (Ball, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" {
		return Ball{}, ErrMalformedBall
	}

	centerStr, radiusStr, found := strings.Cut(s, "+/-")
	center, err := decimal.Parse(centerStr)
	if err != nil {
		return Ball{}, ErrMalformedBall
	}
	radius := new(big.Rat)
	if found {
		if radius, err = decimal.Parse(radiusStr); err != nil {
			return Ball{}, ErrMalformedBall
		}
	}
	if radius.Sign() < 0 {
		return Ball{}, ErrNegativeRadius
	}
	return Ball{Center: center, Radius: radius}, nil
}

// String renders the ball in "[c +/- r]" syntax with a decimal center.
func (b Ball) String() string {
	return "[" + decimal.Format(b.Center, 17) + " +/- " + decimal.Format(b.Radius, 3) + "]"
}

// Interval converts the ball to its endpoint representation.
func (b Ball) Interval() Interval {
	return Interval{
		Lo: new(big.Rat).Sub(b.Center, b.Radius),
		Hi: new(big.Rat).Add(b.Center, b.Radius),
	}
}

// Interval is an exact rational interval [Lo, Hi] with Lo <= Hi.
type Interval struct {
	// Lo is the lower endpoint.
	Lo *big.Rat
	// Hi is the upper endpoint.
	Hi *big.Rat
}

// Point returns the degenerate interval [x, x].
func Point(x *big.Rat) Interval {
	c := new(big.Rat).Set(x)
	return Interval{Lo: c, Hi: new(big.Rat).Set(x)}
}

// FromEndpoints returns the interval [lo, hi], swapping if necessary.
func FromEndpoints(lo, hi *big.Rat) Interval {
	l := new(big.Rat).Set(lo)
	h := new(big.Rat).Set(hi)
	if l.Cmp(h) > 0 {
		l, h = h, l
	}
	return Interval{Lo: l, Hi: h}
}

// Ball converts the interval to its center-radius representation.
func (iv Interval) Ball() Ball {
	two := big.NewRat(2, 1)
	center := new(big.Rat).Add(iv.Lo, iv.Hi)
	center.Quo(center, two)
	radius := new(big.Rat).Sub(iv.Hi, iv.Lo)
	radius.Quo(radius, two)
	return Ball{Center: center, Radius: radius}
}

// Width returns Hi - Lo.
func (iv Interval) Width() *big.Rat {
	return new(big.Rat).Sub(iv.Hi, iv.Lo)
}

// Mid returns the midpoint (Lo + Hi) / 2.
func (iv Interval) Mid() *big.Rat {
	m := new(big.Rat).Add(iv.Lo, iv.Hi)
	return m.Quo(m, big.NewRat(2, 1))
}

// Contains reports whether x lies in [Lo, Hi].
func (iv Interval) Contains(x *big.Rat) bool {
	return iv.Lo.Cmp(x) <= 0 && iv.Hi.Cmp(x) >= 0
}

// Overlaps reports whether the closed intervals share at least one point.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Lo.Cmp(o.Hi) <= 0 && o.Lo.Cmp(iv.Hi) <= 0
}

// Sign returns 1 if the whole interval is positive, -1 if negative,
// and 0 if it contains zero.
func (iv Interval) Sign() int {
	if iv.Lo.Sign() > 0 {
		return 1
	}
	if iv.Hi.Sign() < 0 {
		return -1
	}
	return 0
}

// Add returns the interval image of x+y for x in iv, y in o.
func (iv Interval) Add(o Interval) Interval {
	return Interval{
		Lo: new(big.Rat).Add(iv.Lo, o.Lo),
		Hi: new(big.Rat).Add(iv.Hi, o.Hi),
	}
}

// Mul returns the interval image of x*y for x in iv, y in o.
func (iv Interval) Mul(o Interval) Interval {
	products := [4]*big.Rat{
		new(big.Rat).Mul(iv.Lo, o.Lo),
		new(big.Rat).Mul(iv.Lo, o.Hi),
		new(big.Rat).Mul(iv.Hi, o.Lo),
		new(big.Rat).Mul(iv.Hi, o.Hi),
	}
	lo, hi := products[0], products[0]
	for _, p := range products[1:] {
		if p.Cmp(lo) < 0 {
			lo = p
		}
		if p.Cmp(hi) > 0 {
			hi = p
		}
	}
	return Interval{Lo: lo, Hi: hi}
}

// Scale returns the interval image of r*x for x in iv.
func (iv Interval) Scale(r *big.Rat) Interval {
	lo := new(big.Rat).Mul(iv.Lo, r)
	hi := new(big.Rat).Mul(iv.Hi, r)
	if r.Sign() < 0 {
		lo, hi = hi, lo
	}
	return Interval{Lo: lo, Hi: hi}
}
