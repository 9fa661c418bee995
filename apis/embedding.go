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

// Embedding describes a map from an abstract number field into the reals: a
// defining polynomial, a generator variable, and an approximate real value of
// the generator selecting one root. It is used only as an identity key during
// registry lookup and is never retained.
type Embedding struct {
	// Polynomial is the defining polynomial with rational coefficients in
	// ascending degree order.
	Polynomial poly.Poly

	// Variable is the generator symbol, part of the embedding identity.
	Variable string

	// Approx is the approximate real image of the generator. It need not be
	// isolating on its own; disambiguation escalates precision as required.
	Approx ball.Ball

	// Base, when non-nil, marks the domain as a relative extension of
	// another field. Only absolute fields are supported; registries reject
	// embeddings with a base.
	Base *Embedding
}
