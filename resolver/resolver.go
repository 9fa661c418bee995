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

// Package resolver disambiguates approximate real values against the exact
// real roots of a polynomial. This guards the common failure mode where a
// supplied approximation is not yet precise enough to distinguish two real
// roots of a high-degree polynomial: candidates are narrowed at an
// escalating precision ladder, and the resolution fails loudly instead of
// guessing.
package resolver

import (
	"errors"
	"math/big"

	"dirpx.dev/renf/apis"
	"dirpx.dev/renf/ball"
	"dirpx.dev/renf/config"
	"dirpx.dev/renf/poly"
)

var (
	// ErrNoRealRoots is returned when the polynomial has no real roots at all.
	ErrNoRealRoots = errors.New("renf(resolver): polynomial has no real roots")
	// ErrNoMatchingRoot is returned when the approximate ball does not
	// overlap any real root of the polynomial.
	ErrNoMatchingRoot = errors.New("renf(resolver): embedding does not isolate any root")
	// ErrPrecisionExhausted is returned when more than one root still
	// overlaps the approximate ball at the ladder's maximum precision.
	ErrPrecisionExhausted = errors.New("renf(resolver): embedding does not separate roots at maximum supported precision")
	// ErrInvalidPolynomial is returned when the polynomial is zero or constant.
	ErrInvalidPolynomial = errors.New("renf(resolver): polynomial must have degree at least one")
)

// New constructs an apis.Resolver backed by exact Sturm-sequence root
// isolation. The returned resolver is stateless and safe for concurrent use.
func New() apis.Resolver {
	return disambiguator{}
}

// disambiguator resolves approximate embeddings by exact root isolation and
// interval overlap at escalating precision.
type disambiguator struct{}

// Ensure disambiguator implements apis.Resolver.
var _ apis.Resolver = disambiguator{}

// Roots returns isolating enclosures for all real roots of p, ascending.
func (disambiguator) Roots(p poly.Poly) []ball.Interval {
	return p.IsolateRealRoots()
}

// Resolve locates the unique real root of p overlapping the approximate
// ball. Candidate roots are evaluated to enclosures of 2^-prec width for
// each precision prec on the ladder; the search stops as soon as exactly one
// candidate overlaps, fails immediately when none does, and escalates while
// several do.
func (d disambiguator) Resolve(p poly.Poly, approx ball.Ball, cfg apis.Config) (apis.Root, error) {
	if p.Degree() < 1 {
		return apis.Root{}, ErrInvalidPolynomial
	}
	candidates := p.IsolateRealRoots()
	if len(candidates) == 0 {
		return apis.Root{}, ErrNoRealRoots
	}

	ladder := cfg.PrecisionLadder
	if len(ladder) == 0 {
		ladder = config.DefaultPrecisionLadder()
	}
	target := approx.Interval()

	for _, prec := range ladder {
		width := precisionWidth(prec)
		matched := -1
		count := 0
		for i := range candidates {
			candidates[i] = p.RefineRootInterval(candidates[i], width)
			if candidates[i].Overlaps(target) {
				matched = i
				count++
			}
		}
		switch {
		case count == 0:
			return apis.Root{}, ErrNoMatchingRoot
		case count == 1:
			return apis.Root{Index: matched, Enclosure: candidates[matched]}, nil
		}
	}
	return apis.Root{}, ErrPrecisionExhausted
}

// precisionWidth returns 2^-bits as an exact rational.
func precisionWidth(bits uint) *big.Rat {
	den := new(big.Int).Lsh(big.NewInt(1), bits)
	return new(big.Rat).SetFrac(big.NewInt(1), den)
}
