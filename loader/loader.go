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

package loader

import (
	"fmt"

	"dirpx.dev/rfxpath/apis"
)

// New constructs an apis.Loader that tries the given strategies in order.
// Nil strategies are ignored. The returned loader is safe for concurrent use
// provided strategies themselves are safe for concurrent TryLoad calls.
func New(strategies ...apis.Strategy) apis.Loader {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out}
}

// chain is an immutable, order-preserving loader over a set of strategies.
type chain struct {
	strats []apis.Strategy
}

// Load runs strategies in order until one handles the specifier.
// A handled failure stops the chain; if no strategy handles the
// specifier, the error wraps apis.ErrModuleNotFound.
func (l chain) Load(specifier string, cfg apis.Config) (any, error) {
	for _, s := range l.strats {
		mod, ok, err := s.TryLoad(specifier, cfg)
		if !ok {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("rfx(loader): load %q: %w", specifier, err)
		}
		return mod, nil
	}
	return nil, fmt.Errorf("%w: %q", apis.ErrModuleNotFound, specifier)
}

// Func adapts a plain function to apis.Loader. It is handy for hosts that
// already own a module table, and for tests.
type Func func(specifier string, cfg apis.Config) (any, error)

// Load calls f.
func (f Func) Load(specifier string, cfg apis.Config) (any, error) {
	return f(specifier, cfg)
}
