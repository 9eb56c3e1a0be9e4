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

package strategy

import (
	"dirpx.dev/rfxpath/apis"
)

// NewRegistryStrategy creates an apis.Strategy that serves bare specifiers
// from an apis.Registry.
func NewRegistryStrategy(reg apis.Registry) apis.Strategy {
	return &registryStrategy{reg: reg}
}

// registryStrategy consults a provided apis.Registry (no filesystem access).
type registryStrategy struct {
	reg apis.Registry
}

// Ensure registryStrategy implements apis.Strategy.
var _ apis.Strategy = (*registryStrategy)(nil)

// TryLoad looks specifier up in the registry. Path specifiers fall through.
func (s *registryStrategy) TryLoad(specifier string, _ apis.Config) (any, bool, error) {
	if s.reg == nil || IsPath(specifier) {
		return nil, false, nil
	}
	mod, ok := s.reg.Lookup(specifier)
	return mod, ok, nil
}
