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

package field_test

import (
	"errors"
	"math/big"
	"testing"

	"dirpx.dev/renf/ball"
	"dirpx.dev/renf/field"
	"dirpx.dev/renf/poly"
)

func mustEncode(t *testing.T, f *field.Field, v any) *field.Element {
	t.Helper()
	e, err := f.Encode(v)
	if err != nil {
		t.Fatalf("Encode(%v): %v", v, err)
	}
	return e
}

func mustEqual(t *testing.T, got, want *field.Element) {
	t.Helper()
	ok, err := got.Equal(want)
	if err != nil {
		t.Fatalf("Equal: %v", err)
	}
	if !ok {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestGenSquaredIsTwo(t *testing.T) {
	f := sqrt2Field(t)
	g := f.Gen()
	sq, err := g.Mul(g)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	mustEqual(t, sq, mustEncode(t, f, 2))
}

func TestDifferenceOfSquares(t *testing.T) {
	f := sqrt2Field(t)
	g := f.Gen()
	one := f.One()

	plus, err := g.Add(one)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	minus, err := g.Sub(one)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	// (sqrt2+1)(sqrt2-1) = 1.
	prod, err := plus.Mul(minus)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	mustEqual(t, prod, one)
}

func TestFieldLaws(t *testing.T) {
	f := sqrt2Field(t)
	a := mustEncode(t, f, "a + 1")
	b := mustEncode(t, f, "1/2*a - 3")
	c := mustEncode(t, f, "2*a + 1/7")

	ab, _ := a.Add(b)
	ba, _ := b.Add(a)
	mustEqual(t, ab, ba)

	mab, _ := a.Mul(b)
	mba, _ := b.Mul(a)
	mustEqual(t, mab, mba)

	// Distributivity: a*(b+c) = a*b + a*c.
	bc, _ := b.Add(c)
	left, _ := a.Mul(bc)
	ac, _ := a.Mul(c)
	right, _ := mab.Add(ac)
	mustEqual(t, left, right)

	// Additive and multiplicative identities.
	az, _ := a.Add(f.Zero())
	mustEqual(t, az, a)
	ao, _ := a.Mul(f.One())
	mustEqual(t, ao, a)

	// Inverses.
	neg, _ := a.Add(a.Neg())
	mustEqual(t, neg, f.Zero())
	inv, err := a.Inv()
	if err != nil {
		t.Fatalf("Inv: %v", err)
	}
	ainv, _ := a.Mul(inv)
	mustEqual(t, ainv, f.One())
}

func TestDiv(t *testing.T) {
	f := sqrt2Field(t)
	g := f.Gen()
	two := mustEncode(t, f, 2)

	// 2 / sqrt2 = sqrt2.
	q, err := two.Div(g)
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	mustEqual(t, q, g)

	if _, err := g.Div(f.Zero()); !errors.Is(err, field.ErrDivisionByZero) {
		t.Fatalf("division by zero: want ErrDivisionByZero, got %v", err)
	}
	if _, err := f.Zero().Inv(); !errors.Is(err, field.ErrDivisionByZero) {
		t.Fatalf("Inv(0): want ErrDivisionByZero, got %v", err)
	}
}

func TestPow(t *testing.T) {
	f := sqrt2Field(t)
	g := f.Gen()

	sq, err := g.Pow(2)
	if err != nil {
		t.Fatalf("Pow(2): %v", err)
	}
	mustEqual(t, sq, mustEncode(t, f, 2))

	one, err := g.Pow(0)
	if err != nil {
		t.Fatalf("Pow(0): %v", err)
	}
	mustEqual(t, one, f.One())

	// g^-2 = 1/2.
	negsq, err := g.Pow(-2)
	if err != nil {
		t.Fatalf("Pow(-2): %v", err)
	}
	mustEqual(t, negsq, mustEncode(t, f, big.NewRat(1, 2)))

	if _, err := f.Zero().Pow(-1); !errors.Is(err, field.ErrDivisionByZero) {
		t.Fatalf("0^-1: want ErrDivisionByZero, got %v", err)
	}
	z, err := f.Zero().Pow(3)
	if err != nil {
		t.Fatalf("0^3: %v", err)
	}
	mustEqual(t, z, f.Zero())
}

func TestPowRat(t *testing.T) {
	f := sqrt2Field(t)
	g := f.Gen()

	sq, err := g.PowRat(big.NewRat(2, 1))
	if err != nil {
		t.Fatalf("PowRat(2): %v", err)
	}
	mustEqual(t, sq, mustEncode(t, f, 2))

	if _, err := g.PowRat(big.NewRat(1, 2)); !errors.Is(err, field.ErrNonIntegerPower) {
		t.Fatalf("PowRat(1/2): want ErrNonIntegerPower, got %v", err)
	}
}

func TestSign(t *testing.T) {
	f := sqrt2Field(t)
	g := f.Gen()

	cases := []struct {
		e    *field.Element
		want int
	}{
		{g, 1},
		{g.Neg(), -1},
		{f.Zero(), 0},
		{mustEncode(t, f, big.NewRat(-3, 7)), -1},
		{mustEncode(t, f, "a - 1"), 1},  // sqrt2 - 1 > 0
		{mustEncode(t, f, "a - 2"), -1}, // sqrt2 - 2 < 0
	}
	for i, tc := range cases {
		got, err := tc.e.Sign()
		if err != nil {
			t.Fatalf("case %d Sign: %v", i, err)
		}
		if got != tc.want {
			t.Fatalf("case %d Sign = %d, want %d", i, got, tc.want)
		}
	}
}

func TestSign_TightDecision(t *testing.T) {
	f := sqrt2Field(t)
	// 1414213/1000000 < sqrt2 < 1414214/1000000: both decisions require real
	// refinement, far beyond the initial enclosure.
	below := mustEncode(t, f, "a - 1414213/1000000")
	s, err := below.Sign()
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if s != 1 {
		t.Fatalf("sqrt2 - 1.414213: sign %d, want 1", s)
	}
	above := mustEncode(t, f, "a - 1414214/1000000")
	if s, err = above.Sign(); err != nil || s != -1 {
		t.Fatalf("sqrt2 - 1.414214: sign %d err %v, want -1", s, err)
	}
}

func TestCmp_TotalOrder(t *testing.T) {
	f := sqrt2Field(t)
	g := f.Gen()
	one := f.One()

	// 1 < sqrt2 < 3/2.
	c, err := one.Cmp(g)
	if err != nil {
		t.Fatalf("Cmp: %v", err)
	}
	if c != -1 {
		t.Fatalf("1 vs sqrt2: got %d, want -1", c)
	}
	threeHalves := mustEncode(t, f, big.NewRat(3, 2))
	if c, err = g.Cmp(threeHalves); err != nil || c != -1 {
		t.Fatalf("sqrt2 vs 3/2: got %d err %v, want -1", c, err)
	}
	if c, err = g.Cmp(g); err != nil || c != 0 {
		t.Fatalf("sqrt2 vs itself: got %d err %v, want 0", c, err)
	}
}

func TestFieldMismatch(t *testing.T) {
	// Two handles of the same mathematical field, built independently,
	// must not interoperate.
	f1 := sqrt2Field(t)
	f2, err := field.New(
		poly.FromInt64(-2, 0, 1), "a",
		ball.FromEndpoints(big.NewRat(1, 1), big.NewRat(2, 1)),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := f1.Gen().Add(f2.Gen()); !errors.Is(err, field.ErrFieldMismatch) {
		t.Fatalf("Add across handles: want ErrFieldMismatch, got %v", err)
	}
	if _, err := f1.Gen().Mul(f2.One()); !errors.Is(err, field.ErrFieldMismatch) {
		t.Fatalf("Mul across handles: want ErrFieldMismatch, got %v", err)
	}
	if _, err := f1.Gen().Cmp(f2.Gen()); !errors.Is(err, field.ErrFieldMismatch) {
		t.Fatalf("Cmp across handles: want ErrFieldMismatch, got %v", err)
	}
}

func TestRationalPredicates(t *testing.T) {
	f := sqrt2Field(t)

	half := mustEncode(t, f, big.NewRat(1, 2))
	if !half.IsRational() || half.IsInteger() {
		t.Fatalf("1/2: IsRational=%v IsInteger=%v", half.IsRational(), half.IsInteger())
	}
	three := mustEncode(t, f, 3)
	if !three.IsInteger() {
		t.Fatalf("3 must be an integer")
	}
	if f.Gen().IsRational() {
		t.Fatalf("sqrt2 must not be rational")
	}
	r, ok := half.Rational()
	if !ok || r.Cmp(big.NewRat(1, 2)) != 0 {
		t.Fatalf("Rational(1/2) = (%v, %v)", r, ok)
	}
}

func TestElementString(t *testing.T) {
	f := sqrt2Field(t)

	cases := []struct {
		v    any
		want string
	}{
		{2, "2"},
		{-13, "-13"},
		{big.NewRat(2, 3), "(2/3 ~ 0.666667)"},
		{"a", "(a ~ 1.414214)"},
		{"a + 1", "(a+1 ~ 2.414214)"},
		{"-a + 1", "(-a+1 ~ -0.414214)"},
		{"1/2*a", "(1/2*a ~ 0.707107)"},
	}
	for _, tc := range cases {
		e := mustEncode(t, f, tc.v)
		if got := e.String(); got != tc.want {
			t.Fatalf("String(%v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}
