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

package apis

import (
	"dirpx.dev/renf/ball"
	"dirpx.dev/renf/poly"
)

// Root identifies one real root of a polynomial: its index among all real
// roots in ascending order and an isolating enclosure.
type Root struct {
	// Index is the position of the root among the polynomial's real roots,
	// ascending, starting at zero.
	Index int
	// Enclosure is an isolating interval of the root whose endpoints are not
	// themselves roots.
	Enclosure ball.Interval
}

// Resolver disambiguates an approximate real value against the exact real
// roots of a polynomial. Implementations must be safe for concurrent use.
type Resolver interface {
	// Resolve returns the unique real root of p matched by the approximate
	// ball, escalating through the configured precision ladder. It fails
	// when no root overlaps the ball or when several roots remain
	// indistinguishable at the ladder's maximum precision.
	Resolve(p poly.Poly, approx ball.Ball, cfg Config) (Root, error)

	// Roots returns isolating enclosures for all real roots of p in
	// ascending order.
	Roots(p poly.Poly) []ball.Interval
}
