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

// Package registry canonicalizes field handles by embedding identity.
//
// Two embeddings are identical iff their normalized (defining polynomial,
// variable name, exact image of the generator) triples are equal; the exact
// image is pinned down by the root's index among the polynomial's real roots,
// never by comparing interval text or floating approximations. The registry
// guarantees at most one live handle per distinct embedding, so elements from
// "the same" field are always interoperable.
package registry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"dirpx.dev/renf/apis"
	"dirpx.dev/renf/field"
	"dirpx.dev/renf/poly"
	"dirpx.dev/renf/resolver"
)

var (
	// ErrNotAbsolute is returned when the embedding's domain is a relative
	// extension; only absolute number fields are supported.
	ErrNotAbsolute = errors.New("renf(registry): number field must be absolute")
	// ErrNoRealEmbedding is returned when the polynomial admits no
	// order-preserving map into the reals, i.e. it has no real roots.
	ErrNoRealEmbedding = errors.New("renf(registry): number field must be endowed with an embedding into the reals")
	// ErrNilResolver is returned when constructing a registry without a resolver.
	ErrNilResolver = errors.New("renf(registry): nil resolver provided")
	// ErrEmptyKey is returned when adopting an entry without a key.
	ErrEmptyKey = errors.New("renf(registry): empty key provided")
	// ErrNilField is returned when adopting an entry without a field handle.
	ErrNilField = errors.New("renf(registry): nil field provided")
	// ErrConflictingAdoption indicates an attempt to adopt a different
	// handle under an occupied key.
	ErrConflictingAdoption = errors.New("renf(registry): conflicting field adoption")
)

// New constructs a Registry that disambiguates embeddings with res and
// builds handles configured by cfg.
func New(cfg apis.Config, res apis.Resolver) (apis.Registry, error) {
	if res == nil {
		return nil, ErrNilResolver
	}
	return &registry{cfg: cfg, res: res}, nil
}

// registry is a mutex-guarded canonical map from embedding identity to field
// handle. Reads go through a sync.Map fast path; writes double-check under a
// mutex so concurrent GetOrCreate calls for one embedding build one handle.
type registry struct {
	// cfg carries the disambiguation and refinement knobs.
	cfg apis.Config
	// res disambiguates approximate embeddings.
	res apis.Resolver
	// mu guards write-side consistency and counter.
	mu sync.Mutex
	// m maps canonical key to *field.Field.
	m sync.Map
	// count tracks the number of registered fields.
	count int
}

// GetOrCreate returns the canonical handle for the embedding, creating it on
// first use. All callers with equal embeddings receive the identical handle.
func (r *registry) GetOrCreate(emb apis.Embedding) (*field.Field, error) {
	key, root, err := r.canonicalize(emb)
	if err != nil {
		return nil, err
	}

	// Fast read path.
	if v, ok := r.m.Load(key); ok {
		return v.(*field.Field), nil
	}

	// Write path: guard with a mutex so no two goroutines race to construct
	// and register two distinct handles for one canonical embedding.
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.m.Load(key); ok {
		return v.(*field.Field), nil
	}

	f, err := field.New(emb.Polynomial, emb.Variable, root.Enclosure,
		field.WithMaxRefineSteps(r.cfg.MaxRefineSteps))
	if err != nil {
		return nil, err
	}
	r.m.Store(key, f)
	r.count++
	return f, nil
}

// Lookup returns the canonical handle for the embedding if present.
func (r *registry) Lookup(emb apis.Embedding) (*field.Field, bool) {
	key, _, err := r.canonicalize(emb)
	if err != nil {
		return nil, false
	}
	if v, ok := r.m.Load(key); ok {
		return v.(*field.Field), true
	}
	return nil, false
}

// Adopt registers an existing handle under its key, migrating it from a
// previous registry instance. It is idempotent for the same (key, handle)
// pair.
func (r *registry) Adopt(e apis.Entry) error {
	if e.Key == "" {
		return ErrEmptyKey
	}
	if e.Field == nil {
		return ErrNilField
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.m.Load(e.Key); ok {
		if v.(*field.Field) == e.Field {
			return nil
		}
		return ErrConflictingAdoption
	}
	r.m.Store(e.Key, e.Field)
	r.count++
	return nil
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Key:   key.(string),
			Field: value.(*field.Field),
		})
		return true
	})
	return entries
}

// Count returns the number of registered fields.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Remove evicts the handle registered under key.
func (r *registry) Remove(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m.Load(key); !ok {
		return false
	}
	r.m.Delete(key)
	r.count--
	return true
}

// Reset clears all registered fields.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = sync.Map{}
	r.count = 0
}

// canonicalize validates the embedding and derives its identity key: the
// primitive integer form of the defining polynomial, the variable name, and
// the exact root selected by disambiguating the approximate image.
func (r *registry) canonicalize(emb apis.Embedding) (string, apis.Root, error) {
	if emb.Base != nil {
		return "", apis.Root{}, ErrNotAbsolute
	}
	root, err := r.res.Resolve(emb.Polynomial, emb.Approx, r.cfg)
	if err != nil {
		if errors.Is(err, resolver.ErrNoRealRoots) {
			return "", apis.Root{}, ErrNoRealEmbedding
		}
		return "", apis.Root{}, err
	}
	return Key(emb.Polynomial, emb.Variable, root.Index), root, nil
}

// Key builds the canonical identity string for a (polynomial, variable, root
// index) triple. The polynomial is normalized to its primitive integer form
// so that rational scalings of the same minimal polynomial collide.
func Key(p poly.Poly, variable string, rootIndex int) string {
	norm := normalizeKeyPoly(p)
	var sb strings.Builder
	for i := 0; i <= norm.Degree(); i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(norm.Coeff(i).RatString())
	}
	return fmt.Sprintf("%s|%s|%s", sb.String(), variable, strconv.Itoa(rootIndex))
}

// normalizeKeyPoly scales p monic; together with the root index this is a
// faithful normalization of the embedding identity.
func normalizeKeyPoly(p poly.Poly) poly.Poly {
	return p.Monic()
}
