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

import "dirpx.dev/renf/field"

// Registry canonicalizes field handles by embedding identity: at most one
// live handle exists per distinct embedding for the registry's lifetime.
// Implementations must serialize concurrent GetOrCreate calls so no two
// goroutines construct distinct handles for one canonical embedding.
type Registry interface {
	// GetOrCreate returns the canonical handle for the embedding, building
	// and registering it on first use. Equal embeddings always yield the
	// identical handle, not merely an equal one.
	GetOrCreate(emb Embedding) (*field.Field, error)
	// Lookup returns the canonical handle for the embedding if present.
	Lookup(emb Embedding) (*field.Field, bool)
	// Adopt registers an existing handle under its canonical key. It is used
	// for migration between registry instances; re-adoption of the same
	// handle is idempotent.
	Adopt(e Entry) error
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered fields.
	Count() int
	// Remove evicts the handle registered under key, reporting whether it
	// was present. Eviction is an explicit policy decision of the caller.
	Remove(key string) bool
	// Reset clears all registered fields.
	Reset()
}

// Entry is a single (key, field) association in a Registry snapshot.
type Entry struct {
	// Key is the canonical embedding identity.
	Key string
	// Field is the registered handle.
	Field *field.Field
}
