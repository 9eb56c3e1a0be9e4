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

package expr

// Operation is the tag of one compiled step.
type Operation byte

const (
	// OpRequire loads a module from a path-bearing or bare specifier.
	OpRequire Operation = 'r'
	// OpModule loads a module from a bare specifier.
	OpModule Operation = 'm'
	// OpNamespace reads a named member off the current context.
	OpNamespace Operation = 'n'
	// OpCall invokes the current context with the node's params.
	OpCall Operation = 'c'
	// OpInstance constructs a new object from the current context.
	OpInstance Operation = 'i'
)

// String returns the one-character tag.
func (o Operation) String() string { return string(rune(o)) }

// Node is one compiled instruction.
//
// For OpRequire, OpModule and OpNamespace, Name holds the raw segment text
// (a module specifier or member name) and Params is nil. For OpCall and
// OpInstance, Params holds the fully resolved arguments and Name is empty.
// Nodes with other tags keep their raw text in Name.
type Node struct {
	Op     Operation
	Name   string
	Params []any
}
