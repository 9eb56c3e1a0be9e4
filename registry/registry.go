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

package registry

import (
	"errors"
	"strings"
	"sync"

	"dirpx.dev/rfxpath/apis"
	uref "dirpx.dev/rfxpath/utils/reflect"
)

var (
	// ErrEmptySpecifier is returned when an empty specifier is provided.
	ErrEmptySpecifier = errors.New("rfx(registry): empty specifier provided")
	// ErrPathSpecifier is returned when a specifier contains a path separator.
	// Path-bearing specifiers are served by file loaders, never by the registry.
	ErrPathSpecifier = errors.New("rfx(registry): specifier must be bare")
	// ErrNilModule is returned when a nil module is provided.
	ErrNilModule = errors.New("rfx(registry): nil module provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a specifier with a different module.
	ErrConflictingRegistration = errors.New("rfx(registry): conflicting module registration")
)

// New constructs an empty Registry.
func New() apis.Registry {
	return &registry{}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps specifiers to modules.
	m sync.Map // map[string]any
	// count tracks the number of registered entries.
	count int
}

// Register associates specifier with module.
// It is idempotent for the same (specifier, module) pair.
func (r *registry) Register(specifier string, module any) error {
	if specifier == "" {
		return ErrEmptySpecifier
	}
	if strings.ContainsAny(specifier, `/\`) {
		return ErrPathSpecifier
	}
	if module == nil {
		return ErrNilModule
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(specifier); ok {
		return sameOrConflict(old, module)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(specifier); ok {
		return sameOrConflict(old, module)
	}

	r.m.Store(specifier, module)
	r.count++
	return nil
}

func sameOrConflict(old, module any) error {
	if uref.Same(old, module) {
		return nil
	}
	return ErrConflictingRegistration
}

// Lookup returns the module registered under specifier.
func (r *registry) Lookup(specifier string) (any, bool) {
	if specifier == "" {
		return nil, false
	}
	return r.m.Load(specifier)
}

// Member makes the registry usable as a root context: a member read
// returns the module registered under that name.
func (r *registry) Member(name string) (any, bool) {
	return r.Lookup(name)
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Specifier: key.(string),
			Module:    value,
		})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
}
