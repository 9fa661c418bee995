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

// Config carries read-only knobs that influence root disambiguation and sign
// refinement. It is passed by value and should be treated as immutable by
// implementations.
type Config struct {
	// PrecisionLadder lists the working precisions, in bits, at which root
	// disambiguation is attempted, in ascending order. The last entry is the
	// maximum supported precision; it is a configured limit, not a proven
	// separation bound.
	PrecisionLadder []uint

	// MaxRefineSteps bounds enclosure bisections per sign decision on field
	// elements. Acts as a safety guard when a caller supplies a reducible
	// defining polynomial.
	MaxRefineSteps int
}
