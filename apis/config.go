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

// Config carries read-only resolution knobs for the engine and loaders.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// WorkDir is the base directory for path-bearing module specifiers.
	// Empty means the process working directory at load time.
	WorkDir string

	// MaxUnwrap limits pointer/interface unwrapping when reading a member
	// off the current context. Acts as a safety guard against pathological nesting.
	MaxUnwrap int

	// NilOnly narrows the unresolved-reference check to nil values.
	// When false, any falsy step result (false, 0, NaN, "") also aborts resolution.
	NilOnly bool
}
