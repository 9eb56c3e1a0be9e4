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
	"dirpx.dev/rfxpath/apis"
	"dirpx.dev/rfxpath/loader"
	"dirpx.dev/rfxpath/modules"
	"dirpx.dev/rfxpath/registry"
	"dirpx.dev/rfxpath/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds a new apis.Registry. Entries of a previous registry
// are copied first, then the built-in modules fill any specifier still free.
func (b *builder) BuildRegistry(_ apis.Config, prev apis.Registry) apis.Registry {
	nreg := registry.New()
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = nreg.Register(e.Specifier, e.Module)
		}
	}
	_ = modules.Register(nreg)
	return nreg
}

// BuildLoader builds a new apis.Loader over reg: registry lookups for bare
// specifiers, then Go source files, then YAML/JSON documents. The previous
// loader is not reused, so file caches start empty.
func (b *builder) BuildLoader(_ apis.Config, reg apis.Registry, _ apis.Loader) apis.Loader {
	return loader.New(
		strategy.NewRegistryStrategy(reg),
		strategy.NewSourceStrategy(),
		strategy.NewDocumentStrategy(),
	)
}
