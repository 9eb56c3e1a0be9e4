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

import (
	"fmt"
	"regexp"
	"strings"

	"dirpx.dev/rfxpath/apis"
)

var (
	// operationPattern matches a bracketed operation segment: [x(params)].
	operationPattern = regexp.MustCompile(`^\[(\w)\((.*)\)\]$`)
	// globalPattern matches the global indirection marker: [g(name)].
	globalPattern = regexp.MustCompile(`^\[g\((.*)\)\]$`)
)

// Compile parses expression into instruction nodes.
//
// Segments are separated by dots outside brackets. A segment of the form
// [x(text)] becomes a node tagged x; any other segment becomes an
// OpNamespace node. For OpCall and OpInstance the text is a comma-separated
// list of argument names: names are trimmed, empty names dropped, and each
// name is replaced by its value in args (nil when absent). Argument values of
// the form [g(name)] are replaced by globals[name].
func Compile(expression string, args Args, globals Globals) ([]Node, error) {
	segments, err := Split(expression)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, len(segments))
	for _, seg := range segments {
		nodes = append(nodes, compileSegment(seg, args, globals))
	}
	return nodes, nil
}

// CompileValue compiles an expression held in a dynamically typed value,
// as decoded from configuration. Anything but a string fails with
// apis.ErrMalformedExpression.
func CompileValue(expression any, args Args, globals Globals) ([]Node, error) {
	s, ok := expression.(string)
	if !ok {
		return nil, fmt.Errorf("%w: expression is %T, want string", apis.ErrMalformedExpression, expression)
	}
	return Compile(s, args, globals)
}

// Split cuts expression into segments at dots that are not inside brackets.
// An unclosed '[' fails with apis.ErrMalformedExpression.
func Split(expression string) ([]string, error) {
	var (
		out   []string
		depth int
		start int
	)
	for i := 0; i < len(expression); i++ {
		switch expression[i] {
		case '[':
			depth++
		case ']':
			// A stray ']' is plain name text.
			if depth > 0 {
				depth--
			}
		case '.':
			if depth == 0 {
				out = append(out, expression[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w: unclosed '[' in %q", apis.ErrMalformedExpression, expression)
	}
	return append(out, expression[start:]), nil
}

func compileSegment(seg string, args Args, globals Globals) Node {
	m := operationPattern.FindStringSubmatch(seg)
	if m == nil {
		return Node{Op: OpNamespace, Name: seg}
	}
	op := Operation(m[1][0])
	switch op {
	case OpCall, OpInstance:
		return Node{Op: op, Params: params(m[2], args, globals)}
	}
	return Node{Op: op, Name: m[2]}
}

// params resolves a comma-separated list of argument names.
func params(text string, args Args, globals Globals) []any {
	out := []any{}
	for _, name := range strings.Split(text, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		v, _ := args.Lookup(name)
		out = append(out, globals.Substitute(v))
	}
	return out
}
