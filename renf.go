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
	"sync/atomic"

	"dirpx.dev/renf/apis"
	"dirpx.dev/renf/ball"
	"dirpx.dev/renf/builder"
	"dirpx.dev/renf/config"
	"dirpx.dev/renf/field"
	"dirpx.dev/renf/poly"
)

// init initializes the global registry state.
func init() {
	// Initialize state with default cfg, res, and reg.
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.res = b.BuildResolver(s.cfg, nil, nil)
	s.reg = b.BuildRegistry(s.cfg, s.res, nil, nil)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("renf: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("renf: builder returned nil resolver")
)

// GetOrCreate returns the canonical field handle for the embedding using the
// global registry. Equal embeddings yield the identical handle from every
// call site.
// This is a convenience wrapper around the global reg.
func GetOrCreate(emb apis.Embedding) (*field.Field, error) {
	return st.Load().reg.GetOrCreate(emb)
}

// New builds (or returns the canonical handle of) a field from its textual
// descriptor parts: a polynomial expression, the generator variable, and an
// isolating ball such as "1.4 +/- 0.1".
// This is a convenience wrapper around the global reg.
func New(polynomial, variable, interval string) (*field.Field, error) {
	p, err := poly.Parse(polynomial, variable)
	if err != nil {
		return nil, err
	}
	b, err := ball.Parse(interval)
	if err != nil {
		return nil, err
	}
	return GetOrCreate(apis.Embedding{Polynomial: p, Variable: variable, Approx: b})
}

// SetAll explicitly sets all global renf state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced.
//
// This is a convenience wrapper around the global state.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Extension
	next := ext

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Resolver
	nres := res
	npres := false
	if nres == nil {
		nres = nbld.BuildResolver(ncfg, old.res, next)
	} else {
		npres = true
	}

	// Registry
	nreg := reg
	npreg := false
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, nres, old.reg, next)
	} else {
		npreg = true
	}

	// Ensure non-nil reg and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  ncfg,
			ext:  next,
			reg:  nreg,
			res:  nres,
			bld:  nbld,
			preg: npreg,
			pres: npres,
		},
	)
}

// Config returns the global renf configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global renf configuration to cfg.
// It rebuilds the global res and reg using the new configuration.
// This is a convenience wrapper around the global state.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new res and reg based on the new cfg and old state.
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(cfg, old.res, old.ext)
	}
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(cfg, nres, old.reg, old.ext)
	}

	// Ensure non-nil nres and nreg.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  cfg,
			ext:  old.ext,
			reg:  nreg,
			res:  nres,
			bld:  b,
			preg: old.preg,
			pres: old.pres,
		},
	)
}

// Registry returns the global renf reg.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets the global renf reg to reg.
// This is a convenience wrapper around the global state.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  reg,
			res:  old.res,
			bld:  old.bld,
			preg: true,
			pres: old.pres,
		},
	)
}

// Resolver returns the global renf res.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver sets the global renf res to res.
// It rebuilds the global reg against the new res unless the reg is pinned.
// This is a convenience wrapper around the global state.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new reg based on the old cfg and new res.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, res, old.reg, old.ext)
	}

	// Ensure non-nil reg.
	if nreg == nil {
		panic(ErrNilRegistry)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  nreg,
			res:  res,
			bld:  b,
			preg: old.preg,
			pres: true,
		},
	)
}

// Builder returns the global renf bld.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global renf bld to b.
// This is a convenience wrapper around the global state.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build new res and reg based on the new bld and old state.
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, old.res, old.ext)
	}
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, nres, old.reg, old.ext)
	}

	// Ensure non-nil reg and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  nreg,
			res:  nres,
			bld:  b,
			preg: old.preg,
			pres: old.pres,
		},
	)
}

// SetExt replaces extension config and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new res and reg based on the new ext and old state.
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, old.res, ext)
	}
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, nres, old.reg, ext)
	}

	// Ensure non-nil reg and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  ext,
			reg:  nreg,
			res:  nres,
			bld:  b,
			preg: old.preg,
			pres: old.pres,
		},
	)
}

// ExtAs returns the global renf extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned returns whether the global renf reg is pinned (immutable).
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry makes the global renf reg immutable.
func PinRegistry() {
	setPins(func(s *state) { s.preg = true })
}

// UnpinRegistry makes the global renf reg mutable again.
func UnpinRegistry() {
	setPins(func(s *state) { s.preg = false })
}

// IsResolverPinned returns whether the global renf res is pinned (immutable).
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver makes the global renf res immutable.
func PinResolver() {
	setPins(func(s *state) { s.pres = true })
}

// UnpinResolver makes the global renf res mutable again.
func UnpinResolver() {
	setPins(func(s *state) { s.pres = false })
}

// setPins publishes a state copy with the pin flags adjusted.
func setPins(adjust func(*state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	ns := &state{
		cfg:  old.cfg,
		ext:  old.ext,
		reg:  old.reg,
		res:  old.res,
		bld:  old.bld,
		preg: old.preg,
		pres: old.pres,
	}
	adjust(ns)
	st.Store(ns)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global renf state.
var st atomic.Pointer[state]

// state is the global renf state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global renf configuration.
	cfg apis.Config
	// ext is the global renf extension configuration.
	ext any
	// reg is the global renf reg.
	reg apis.Registry
	// res is the global renf res.
	res apis.Resolver
	// bld is the global renf bld.
	bld apis.Builder
	// preg indicates whether the reg is pinned (immutable).
	preg bool
	// pres indicates whether the res is pinned (immutable).
	pres bool
}
