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

// Package renf provides exact arithmetic in real embedded algebraic number
// fields, with a global, process-wide canonicalizing registry of field
// handles.
//
// A real embedded number field is described by a rational polynomial, a
// generator variable, and an approximate real image of the generator (a ball
// "center +/- radius") that selects one of the polynomial's real roots.
// Elements of such a field are exact rational coefficient vectors in the
// power basis of the generator; arithmetic, comparison, and sign decisions
// are exact, never floating-point.
//
// # Design
//
// The core of renf is a read-mostly global snapshot (state). The snapshot
// holds four things:
//
//   - Config: knobs that control root disambiguation and ordering
//     (the precision ladder used to separate nearby real roots, and the
//     bisection step limit used when deciding signs of elements).
//
//   - Registry: a process-wide canonical mapping from embedding identity
//     to field handle. Two embeddings denote the same field exactly when
//     their normalized (polynomial, variable, selected real root) triples
//     agree; the registry guarantees that all such callers receive the
//     identical *field.Field pointer. This identity is what makes elements
//     deserialized in different places interoperable.
//
//   - Resolver: a read-only object that answers "which exact real root
//     does this approximate ball mean?". The default resolver isolates all
//     real roots with Sturm sequences and refines them through an
//     escalating precision ladder until exactly one root is compatible
//     with the given ball. Zero compatible roots fail immediately; more
//     than one after the ladder is exhausted fails with a precision error.
//     Resolver is expected to be concurrency-safe for reads.
//
//   - Builder: a pluggable factory that knows how to construct Registry
//     and Resolver instances for a given Config (and optional extension
//     data). The Builder is also allowed to reuse/migrate state from
//     previous Registry/Resolver instances, so canonical handles survive
//     reconfiguration.
//
// All of these live inside a single immutable struct called state.
// The package holds an atomic pointer to the current state. Readers load
// that pointer, use it, and never mutate it. Writers build a brand-new
// state and atomically swap it in.
//
// This means field lookups are lock-free on the hot path:
//
//	f, err := renf.New("a^2 - 2", "a", "1.4 +/- 0.1")
//	g := f.Gen()
//
// and concurrent callers always see a consistent snapshot.
//
// # Global API
//
// The package exposes three groups of operations:
//
//  1. Read helpers:
//
//     New(polynomial, variable, interval string) (*field.Field, error)
//     GetOrCreate(emb apis.Embedding) (*field.Field, error)
//     Registry() apis.Registry
//     Resolver() apis.Resolver
//
//     These are safe for concurrent use without additional locking.
//     They always read from the latest published snapshot.
//
//  2. Mutation helpers:
//
//     SetConfig(cfg apis.Config)
//     SetBuilder(b apis.Builder)
//     SetExt(ext T)
//     SetRegistry(reg apis.Registry)
//     SetResolver(res apis.Resolver)
//     UnpinRegistry()
//     UnpinResolver()
//     SetAll(...)
//
//     Each of these acquires an internal build lock, derives a new
//     snapshot (rebuilding or reusing Registry / Resolver as needed),
//     and then atomically publishes that snapshot. When the registry is
//     rebuilt, previously issued handles are adopted into the new
//     registry so their identity is preserved.
//
// 3. Introspection:
//
//     ExtAs[T]() (T, bool)
//     // plus Registry().Entries(), Registry().Count(), etc.
//
// # Concurrency model
//
// Reads (New, GetOrCreate, Registry, Resolver, Config) load the current
// *state atomically and never take the build lock. The Registry serializes
// handle construction internally so that concurrent GetOrCreate calls for
// one embedding build exactly one handle.
//
// Writes (SetConfig, SetBuilder, SetExt, SetRegistry, SetResolver, the pin
// helpers, SetAll) take a short build mutex, assemble a brand-new state
// struct, and then publish it via an atomic pointer swap.
//
// # Pinning
//
// renf supports pinning a layer:
//
//   - When you call SetRegistry(reg), that exact Registry becomes the
//     process-wide registry and is considered pinned. Further calls to
//     SetConfig() will not attempt to rebuild a new Registry until you
//     explicitly UnpinRegistry().
//
//   - When you call SetResolver(res), that Resolver is pinned and will
//     not be rebuilt automatically until UnpinResolver().
//
// # Packages
//
// The arithmetic lives below this facade:
//
//   - poly: exact rational polynomials, Sturm sequences, real-root
//     isolation and refinement, expression parsing and printing.
//   - ball: balls "[c +/- r]" and exact endpoint intervals.
//   - field: field handles, elements, codec, arithmetic and ordering.
//   - resolver: ball-to-root disambiguation over a precision ladder.
//   - registry: the canonicalizing handle map.
//   - store: YAML persistence of elements through a registry.
//
// # Scope
//
// renf is intentionally small. It only solves one job:
//
//	"Given a defining polynomial and a chosen real root, do exact field
//	 arithmetic and exact ordering, with one canonical handle per field."
//
// Relative extensions, non-real embeddings, and symbolic simplification
// beyond power-basis reduction belong to higher layers.
package renf
