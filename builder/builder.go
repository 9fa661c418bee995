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

package builder

import (
	"dirpx.dev/renf/apis"
	"dirpx.dev/renf/registry"
	"dirpx.dev/renf/resolver"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildResolver builds and returns a new apis.Resolver based on the provided
// configuration and pre-existing resolver. The default resolver is stateless,
// so the pre-existing instance is not consulted.
func (b *builder) BuildResolver(_ apis.Config, _ apis.Resolver, _ any) apis.Resolver {
	return resolver.New()
}

// BuildRegistry builds and returns a new apis.Registry based on the provided
// configuration, resolver, and pre-existing registry. If a pre-existing
// registry is provided, its entries are adopted into the new registry so
// canonical handles keep their identity across rebuilds.
func (b *builder) BuildRegistry(cfg apis.Config, res apis.Resolver, prev apis.Registry, _ any) apis.Registry {
	if res == nil {
		res = resolver.New()
	}
	nreg, err := registry.New(cfg, res)
	if err != nil {
		return nil
	}
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = nreg.Adopt(e)
		}
	}
	return nreg
}
