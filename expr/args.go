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
	"sort"

	"gopkg.in/yaml.v3"
)

// Arg is one named entry of an argument table.
type Arg struct {
	Name  string
	Value any
}

// Args is an ordered argument table. Order matters only to callers that
// consume the table as a sequence (see engine.Target).
type Args []Arg

// ArgsOf builds an Args table from m, ordered by name.
func ArgsOf(m map[string]any) Args {
	if len(m) == 0 {
		return nil
	}
	out := make(Args, 0, len(m))
	for k, v := range m {
		out = append(out, Arg{Name: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the value bound to name. Later entries shadow earlier ones.
func (a Args) Lookup(name string) (any, bool) {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i].Name == name {
			return a[i].Value, true
		}
	}
	return nil, false
}

// UnmarshalYAML decodes a mapping into Args, keeping document order.
func (a *Args) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*a = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("rfx(expr): args must be a mapping, got line %d", node.Line)
	}
	out := make(Args, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("rfx(expr): args %q: %w", node.Content[i].Value, err)
		}
		out = append(out, Arg{Name: node.Content[i].Value, Value: value})
	}
	*a = out
	return nil
}

// Globals is the table consulted for [g(name)] argument values.
type Globals map[string]any

// Substitute returns globals[name] when v is a string of the form
// [g(name)], and v unchanged otherwise.
func (g Globals) Substitute(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	m := globalPattern.FindStringSubmatch(s)
	if m == nil {
		return v
	}
	return g[m[1]]
}

// SubstituteAll applies Substitute to every value of args, in order.
func (g Globals) SubstituteAll(args Args) []any {
	out := make([]any, len(args))
	for i, e := range args {
		out[i] = g.Substitute(e.Value)
	}
	return out
}
