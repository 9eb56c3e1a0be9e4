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

// Namespace is implemented by values that expose named members themselves
// instead of through reflection (loaded modules, registries, dynamic objects).
type Namespace interface {
	// Member returns the member called name, or false if there is none.
	Member(name string) (any, bool)
}

// Callable is implemented by values that can be invoked with positional
// arguments without going through reflect.
type Callable interface {
	Call(args ...any) (any, error)
}

// Constructor is implemented by values that build new instances from
// positional arguments.
type Constructor interface {
	New(args ...any) (any, error)
}

// Initializer is implemented by pointer types constructed from a
// reflect.Type. Init receives the constructor arguments after allocation.
type Initializer interface {
	Init(args ...any) error
}
