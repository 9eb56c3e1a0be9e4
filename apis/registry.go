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

// Registry holds modules that bare specifiers resolve to.
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
//
// A Registry is also a Namespace: reading a member off it returns the module
// registered under that specifier. The engine uses it as the default root.
type Registry interface {
	Namespace
	// Register associates a bare specifier with a module value.
	// Implementations should be idempotent; conflicting re-registrations fail.
	Register(specifier string, module any) error
	// Lookup returns the module registered under specifier, if present.
	Lookup(specifier string) (module any, ok bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// Entry is a single (specifier, module) association in a Registry snapshot.
type Entry struct {
	// Specifier is the bare module specifier.
	Specifier string
	// Module is the registered value.
	Module any
}
