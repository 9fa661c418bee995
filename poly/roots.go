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
	"math/big"

	"dirpx.dev/renf/ball"
)

// Sturm returns the Sturm sequence of p: p, p', and the negated remainders of
// successive Euclidean divisions. Sign variation counts over this sequence
// yield exact real-root counts.
func (p Poly) Sturm() []Poly {
	seq := []Poly{p.Clone().trim()}
	d := p.Derivative()
	if d.IsZero() {
		return seq
	}
	seq = append(seq, d)
	for {
		n := len(seq)
		_, rem, err := seq[n-2].QuoRem(seq[n-1])
		if err != nil || rem.IsZero() {
			return seq
		}
		seq = append(seq, rem.Neg())
	}
}

// variations counts sign changes of the Sturm sequence evaluated at x,
// skipping zero values.
func variations(seq []Poly, x *big.Rat) int {
	count := 0
	prev := 0
	for _, q := range seq {
		s := q.Eval(x).Sign()
		if s == 0 {
			continue
		}
		if prev != 0 && s != prev {
			count++
		}
		prev = s
	}
	return count
}

// CountRealRootsIn returns the number of distinct real roots of p strictly
// inside (iv.Lo, iv.Hi). Multiple roots are counted once. It fails with
// ErrRootAtEndpoint if either endpoint is itself a root.
func (p Poly) CountRealRootsIn(iv ball.Interval) (int, error) {
	if p.Degree() < 1 {
		return 0, nil
	}
	f := p.Squarefree()
	if f.Eval(iv.Lo).Sign() == 0 || f.Eval(iv.Hi).Sign() == 0 {
		return 0, ErrRootAtEndpoint
	}
	seq := f.Sturm()
	return variations(seq, iv.Lo) - variations(seq, iv.Hi), nil
}

// RootBound returns a rational B such that every real root of p lies strictly
// inside (-B, B), via the Cauchy bound 1 + max |a_i / a_n|.
func (p Poly) RootBound() *big.Rat {
	bound := big.NewRat(1, 1)
	if p.Degree() < 1 {
		return bound
	}
	leadInv := new(big.Rat).Inv(p[len(p)-1])
	for _, c := range p[:len(p)-1] {
		q := new(big.Rat).Mul(c, leadInv)
		q.Abs(q)
		if q.Cmp(bound) > 0 {
			bound.Set(q)
		}
	}
	return bound.Add(bound, big.NewRat(1, 1))
}

// IsolateRealRoots returns disjoint open intervals, sorted in ascending
// order, each containing exactly one distinct real root of p and together
// covering all of them. The returned endpoints are never roots, so every
// interval brackets a sign change of the squarefree part of p. The result is
// empty when p has no real roots.
func (p Poly) IsolateRealRoots() []ball.Interval {
	if p.Degree() < 1 {
		return nil
	}
	f := p.Squarefree()
	seq := f.Sturm()
	bound := f.RootBound()
	lo := new(big.Rat).Neg(bound)
	hi := new(big.Rat).Set(bound)

	var out []ball.Interval
	var split func(lo, hi *big.Rat, vlo, vhi int)
	split = func(lo, hi *big.Rat, vlo, vhi int) {
		n := vlo - vhi
		switch {
		case n <= 0:
			return
		case n == 1:
			out = append(out, ball.FromEndpoints(lo, hi))
		default:
			mid := splitPoint(f, lo, hi)
			vmid := variations(seq, mid)
			split(lo, mid, vlo, vmid)
			split(mid, hi, vmid, vhi)
		}
	}
	split(lo, hi, variations(seq, lo), variations(seq, hi))
	return out
}

// splitPoint picks a subdivision point strictly inside (lo, hi) at which f
// does not vanish. The midpoint is preferred; if it happens to be a root, a
// nearby rational is chosen instead. f has at most deg(f) roots, so one of
// the 2*deg(f)+3 candidates must work.
func splitPoint(f Poly, lo, hi *big.Rat) *big.Rat {
	width := new(big.Rat).Sub(hi, lo)
	mid := new(big.Rat).Mul(width, big.NewRat(1, 2))
	mid.Add(mid, lo)
	if f.Eval(mid).Sign() != 0 {
		return mid
	}
	den := int64(2*f.Degree() + 3)
	for i := int64(1); i < den; i++ {
		cand := new(big.Rat).Mul(width, big.NewRat(i, den))
		cand.Add(cand, lo)
		if f.Eval(cand).Sign() != 0 {
			return cand
		}
	}
	// Unreachable for a non-constant f.
	return new(big.Rat).Add(lo, new(big.Rat).Quo(width, big.NewRat(2, 1)))
}

// RefineRootInterval shrinks an isolating interval of a simple real root of p
// by repeated bisection until its width is at most maxWidth. The interval
// must bracket a sign change of the squarefree part of p, as produced by
// IsolateRealRoots; endpoints of the result are never roots.
func (p Poly) RefineRootInterval(iv ball.Interval, maxWidth *big.Rat) ball.Interval {
	f := p.Squarefree()
	lo := new(big.Rat).Set(iv.Lo)
	hi := new(big.Rat).Set(iv.Hi)
	sLo := f.Eval(lo).Sign()
	for new(big.Rat).Sub(hi, lo).Cmp(maxWidth) > 0 {
		mid := splitPoint(f, lo, hi)
		if f.Eval(mid).Sign() == sLo {
			lo = mid
		} else {
			hi = mid
		}
	}
	return ball.Interval{Lo: lo, Hi: hi}
}
