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

// Package rfxpath provides a process-wide reference resolution service.
//
// rfxpath turns a dotted-path expression such as
//
//	[r(./handlers)].Routes.[c(prefix)]
//
// into a live Go value: it loads a module, walks members, calls functions
// and constructs objects. Expressions are data, so they can live in
// configuration files and be bound late, at startup.
//
// # Expressions
//
// An expression is split on "." (dots inside brackets do not split). Each
// segment is either a plain member name or an operation:
//
//	[r(spec)]   load a module; a spec holding "/" is a path under Config.WorkDir
//	[m(spec)]   load a module by bare specifier
//	[n(name)]   read a member (same as a plain segment)
//	[c(a,b)]    call the current value with arguments a and b
//	[i(a,b)]    construct a new value from the current one
//
// Call and construct arguments name entries of an argument table
// (expr.Args). An entry whose value is the string "[g(name)]" is replaced by
// the named entry of the globals table (expr.Globals).
//
// Every step must produce a usable value. A nil result fails with
// apis.ErrUnresolvedReference, and so do false, zero and "" unless
// Config.NilOnly is set.
//
// # Design
//
// The core is a read-mostly global snapshot (state) holding:
//
//   - Config: working directory, unwrap depth and the nil-only switch.
//
//   - Registry: modules registered by the host under bare specifiers.
//     The default builder seeds it with the built-in "uuid", "convert" and
//     "validator" modules. The registry is also the default root, so
//     "uuid.Plain.[c()]" works without a load step.
//
//   - Loader: turns specifiers into modules by trying strategies in order:
//     registry lookup, Go source files interpreted by yaegi, then YAML/JSON
//     documents.
//
//   - Builder: constructs Registry and Loader for a Config, migrating
//     entries from the previous registry.
//
// Readers load the snapshot atomically and never lock. Writers take a short
// build mutex, derive a new snapshot and publish it with an atomic swap.
//
// # Pinning
//
// SetRegistry and SetLoader install a layer and pin it: SetConfig and
// SetBuilder stop rebuilding that layer until UnpinRegistry / UnpinLoader.
//
// # Scope
//
// rfxpath trusts its expressions and modules. It is not a sandbox and it is
// not a scripting language; use it to wire values named in configuration.
package rfxpath
