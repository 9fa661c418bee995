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

package renf

import (
	"errors"
	"sync"
	"testing"

	"dirpx.dev/renf/apis"
	"dirpx.dev/renf/ball"
	"dirpx.dev/renf/builder"
	"dirpx.dev/renf/config"
	"dirpx.dev/renf/field"
	"dirpx.dev/renf/poly"
	"dirpx.dev/renf/resolver"
)

// reset returns the global state to defaults; pins are cleared because nil
// reg/res are passed.
func reset(tb testing.TB) {
	tb.Helper()
	cfg := config.DefaultConfig()
	SetAll(&cfg, nil, nil, nil, builder.New())
}

// ---------------------- Test doubles (mocks) ----------------------

type mockResolver struct {
	calls int
	mu    sync.Mutex
}

func (m *mockResolver) Resolve(p poly.Poly, approx ball.Ball, cfg apis.Config) (apis.Root, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return resolver.New().Resolve(p, approx, cfg)
}

func (m *mockResolver) Roots(p poly.Poly) []ball.Interval {
	return resolver.New().Roots(p)
}

type mockBuilder struct {
	resolverBuilds int
	registryBuilds int
	mu             sync.Mutex
	inner          apis.Builder
}

func newMockBuilder() *mockBuilder {
	return &mockBuilder{inner: builder.New()}
}

func (m *mockBuilder) BuildResolver(cfg apis.Config, prev apis.Resolver, ext any) apis.Resolver {
	m.mu.Lock()
	m.resolverBuilds++
	m.mu.Unlock()
	return m.inner.BuildResolver(cfg, prev, ext)
}

func (m *mockBuilder) BuildRegistry(cfg apis.Config, res apis.Resolver, prev apis.Registry, ext any) apis.Registry {
	m.mu.Lock()
	m.registryBuilds++
	m.mu.Unlock()
	return m.inner.BuildRegistry(cfg, res, prev, ext)
}

// ---------------------- Tests ----------------------

func TestNew_CanonicalIdentity(t *testing.T) {
	reset(t)

	f1, err := New("a^2 - 2", "a", "[1.4 +/- 0.1]")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f2, err := New("a^2 - 2", "a", "[1.41 +/- 0.01]")
	if err != nil {
		t.Fatalf("New (equivalent): %v", err)
	}
	if f1 != f2 {
		t.Fatalf("equivalent descriptors produced distinct handles")
	}
}

func TestNew_ParseErrors(t *testing.T) {
	reset(t)

	if _, err := New("???", "a", "[1.4 +/- 0.1]"); !errors.Is(err, poly.ErrMalformedExpression) {
		t.Fatalf("bad polynomial: want ErrMalformedExpression, got %v", err)
	}
	if _, err := New("a^2 - 2", "a", "nope"); !errors.Is(err, ball.ErrMalformedBall) {
		t.Fatalf("bad interval: want ErrMalformedBall, got %v", err)
	}
}

func TestGetOrCreate(t *testing.T) {
	reset(t)

	p, err := poly.Parse("x^3 + 3*x - 13", "x")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b, err := ball.Parse("[1.9 +/- 0.2]")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	f, err := GetOrCreate(apis.Embedding{Polynomial: p, Variable: "x", Approx: b})
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if f.Degree() != 3 {
		t.Fatalf("Degree = %d, want 3", f.Degree())
	}
}

func TestEndToEnd(t *testing.T) {
	reset(t)

	f, err := New("a^2 - 2", "a", "[1.4 +/- 0.1]")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g := f.Gen()

	// sqrt2 * sqrt2 = 2, exactly.
	sq, err := g.Mul(g)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	two, err := f.Encode(2)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if ok, err := sq.Equal(two); err != nil || !ok {
		t.Fatalf("g*g != 2: ok=%v err=%v", ok, err)
	}

	// 1 < sqrt2 < 3/2, exactly.
	if c, err := f.One().Cmp(g); err != nil || c != -1 {
		t.Fatalf("1 vs sqrt2: c=%d err=%v", c, err)
	}

	// Elements of the negative-root embedding live on a distinct handle.
	neg, err := New("a^2 - 2", "a", "[-1.4 +/- 0.1]")
	if err != nil {
		t.Fatalf("New(-): %v", err)
	}
	if neg == f {
		t.Fatalf("distinct roots share a handle")
	}
	if _, err := g.Add(neg.Gen()); !errors.Is(err, field.ErrFieldMismatch) {
		t.Fatalf("cross-handle Add: want ErrFieldMismatch, got %v", err)
	}
}

func TestScenario_Sqrt2(t *testing.T) {
	reset(t)

	f, err := New("x^2 - 2", "x", "[1.4 +/- 0.1]")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g := f.Gen()
	if got := g.String(); got != "(x ~ 1.414214)" {
		t.Fatalf("Gen repr = %q, want %q", got, "(x ~ 1.414214)")
	}

	one := f.One()
	plus, err := g.Add(one)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	minus, err := g.Sub(one)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	prod, err := plus.Mul(minus)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	sq, err := g.Mul(g)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	sqMinusOne, err := sq.Sub(one)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	// (g+1)(g-1) = g*g - 1 = 1, all exact.
	if ok, err := prod.Equal(sqMinusOne); err != nil || !ok {
		t.Fatalf("(g+1)(g-1) != g*g - 1: ok=%v err=%v", ok, err)
	}
	if ok, err := prod.Equal(one); err != nil || !ok {
		t.Fatalf("(g+1)(g-1) != 1: ok=%v err=%v", ok, err)
	}
}

func TestSetConfig_PreservesHandles(t *testing.T) {
	reset(t)

	f1, err := New("a^2 - 3", "a", "[1.7 +/- 0.1]")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	SetConfig(config.NewConfig(config.WithMaxPrecision(512)))

	f2, err := New("a^2 - 3", "a", "[1.7 +/- 0.1]")
	if err != nil {
		t.Fatalf("New after SetConfig: %v", err)
	}
	if f1 != f2 {
		t.Fatalf("SetConfig dropped the canonical handle")
	}
	if got := Config(); got.PrecisionLadder[len(got.PrecisionLadder)-1] != 512 {
		t.Fatalf("Config not updated: %v", got.PrecisionLadder)
	}
}

func TestSetResolver_PinsAndRebuilds(t *testing.T) {
	reset(t)

	mock := &mockResolver{}
	SetResolver(mock)

	if !IsResolverPinned() {
		t.Fatalf("SetResolver must pin the resolver")
	}
	if Resolver() != apis.Resolver(mock) {
		t.Fatalf("Resolver() is not the pinned instance")
	}

	// The pinned resolver services lookups.
	if _, err := New("a^2 - 5", "a", "[2.2 +/- 0.1]"); err != nil {
		t.Fatalf("New via pinned resolver: %v", err)
	}
	mock.mu.Lock()
	calls := mock.calls
	mock.mu.Unlock()
	if calls == 0 {
		t.Fatalf("pinned resolver was never consulted")
	}

	// SetConfig must not rebuild a pinned resolver.
	SetConfig(config.DefaultConfig())
	if Resolver() != apis.Resolver(mock) {
		t.Fatalf("SetConfig replaced a pinned resolver")
	}

	UnpinResolver()
	if IsResolverPinned() {
		t.Fatalf("UnpinResolver did not clear the pin")
	}
	SetConfig(config.DefaultConfig())
	if Resolver() == apis.Resolver(mock) {
		t.Fatalf("SetConfig kept an unpinned resolver")
	}

	reset(t)
}

func TestSetRegistry_Pins(t *testing.T) {
	reset(t)

	reg := Registry()
	SetRegistry(reg)
	if !IsRegistryPinned() {
		t.Fatalf("SetRegistry must pin the registry")
	}
	SetConfig(config.DefaultConfig())
	if Registry() != reg {
		t.Fatalf("SetConfig replaced a pinned registry")
	}
	UnpinRegistry()
	if IsRegistryPinned() {
		t.Fatalf("UnpinRegistry did not clear the pin")
	}

	reset(t)
}

func TestSetBuilder(t *testing.T) {
	reset(t)

	mock := newMockBuilder()
	SetBuilder(mock)
	if Builder() != apis.Builder(mock) {
		t.Fatalf("Builder() is not the installed instance")
	}
	mock.mu.Lock()
	builds := mock.registryBuilds
	mock.mu.Unlock()
	if builds == 0 {
		t.Fatalf("SetBuilder did not rebuild through the new builder")
	}

	// Handles survive the builder swap via adoption.
	f1, err := New("a^2 - 2", "a", "[1.4 +/- 0.1]")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	SetConfig(config.DefaultConfig())
	f2, err := New("a^2 - 2", "a", "[1.4 +/- 0.1]")
	if err != nil {
		t.Fatalf("New after rebuild: %v", err)
	}
	if f1 != f2 {
		t.Fatalf("builder swap dropped the canonical handle")
	}

	reset(t)
}

func TestExt(t *testing.T) {
	reset(t)

	type policy struct{ Name string }
	SetExt(policy{Name: "strict"})

	got, ok := ExtAs[policy]()
	if !ok || got.Name != "strict" {
		t.Fatalf("ExtAs = (%v, %v), want (strict, true)", got, ok)
	}
	if _, ok := ExtAs[int](); ok {
		t.Fatalf("ExtAs with the wrong type must miss")
	}

	reset(t)
}

func TestSetAll(t *testing.T) {
	reset(t)

	mockB := newMockBuilder()
	mockR := &mockResolver{}
	cfg := config.NewConfig(config.WithMaxRefineSteps(64))

	SetAll(&cfg, "ext-token", nil, mockR, mockB)

	if Config().MaxRefineSteps != 64 {
		t.Fatalf("SetAll did not apply config")
	}
	if Resolver() != apis.Resolver(mockR) || !IsResolverPinned() {
		t.Fatalf("SetAll did not install and pin the resolver")
	}
	if Builder() != apis.Builder(mockB) {
		t.Fatalf("SetAll did not install the builder")
	}
	if ext, ok := ExtAs[string](); !ok || ext != "ext-token" {
		t.Fatalf("SetAll did not install ext")
	}
	if IsRegistryPinned() {
		t.Fatalf("nil registry must not be pinned")
	}

	reset(t)
}

func TestConcurrentReadsDuringReconfiguration(t *testing.T) {
	reset(t)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				SetConfig(config.DefaultConfig())
			}
		}
	}()

	for i := 0; i < 200; i++ {
		if _, err := New("a^2 - 2", "a", "[1.4 +/- 0.1]"); err != nil {
			t.Fatalf("New during reconfiguration: %v", err)
		}
		_ = Registry()
		_ = Resolver()
		_ = Config()
	}
	close(stop)
	wg.Wait()

	reset(t)
}
