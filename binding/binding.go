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

// Package binding reads late-bound construction descriptions from YAML.
//
// A binding names an expression, its argument table, optional globals and
// what to do with the resolved value:
//
//	expr: "[r(./handlers)].NewHandler"
//	mode: call
//	args:
//	  addr: ":8080"
//	  store: "[g(store)]"
//	globals:
//	  store: memory
package binding

import (
	"errors"
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"

	"dirpx.dev/rfxpath/apis"
	"dirpx.dev/rfxpath/engine"
	"dirpx.dev/rfxpath/expr"
)

// Mode selects what Build does with the resolved value.
type Mode string

const (
	// ModeResolve returns the resolved value as is.
	ModeResolve Mode = "resolve"
	// ModeCall calls the resolved value with the binding's arguments.
	ModeCall Mode = "call"
	// ModeNew constructs a new value from the resolved one.
	ModeNew Mode = "new"
)

// ErrUnknownMode is returned for a mode other than resolve, call or new.
var ErrUnknownMode = errors.New("rfx(binding): unknown mode")

// Binding is one decoded binding document.
type Binding struct {
	Expr    string
	Args    expr.Args
	Globals expr.Globals
	Mode    Mode
}

// raw mirrors the document; expr stays a node so a non-string value can be
// reported as a malformed expression.
type raw struct {
	Expr    yaml.Node      `yaml:"expr"`
	Args    expr.Args      `yaml:"args"`
	Globals map[string]any `yaml:"globals"`
	Mode    string         `yaml:"mode"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *Binding) UnmarshalYAML(node *yaml.Node) error {
	var r raw
	if err := node.Decode(&r); err != nil {
		return err
	}
	if r.Expr.Kind != yaml.ScalarNode || r.Expr.ShortTag() != "!!str" {
		return fmt.Errorf("%w: expr must be a string (line %d)", apis.ErrMalformedExpression, node.Line)
	}
	mode, err := parseMode(r.Mode)
	if err != nil {
		return err
	}
	*b = Binding{Expr: r.Expr.Value, Args: r.Args, Globals: r.Globals, Mode: mode}
	return nil
}

func parseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case "":
		return ModeResolve, nil
	case ModeResolve, ModeCall, ModeNew:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Parse decodes a single binding document.
func Parse(data []byte) (Binding, error) {
	var b Binding
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Binding{}, fmt.Errorf("rfx(binding): %w", err)
	}
	if b.Expr == "" {
		return Binding{}, fmt.Errorf("rfx(binding): %w: empty document or expr", apis.ErrMalformedExpression)
	}
	return b, nil
}

// LoadFile reads and decodes the binding document at path.
func LoadFile(path string) (Binding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Binding{}, fmt.Errorf("rfx(binding): read %s: %w", path, err)
	}
	b, err := Parse(data)
	if err != nil {
		return Binding{}, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Build evaluates b with e. Caller globals override document globals; a nil
// ctx resolves from the engine's root.
func (b Binding) Build(e *engine.Engine, ctx any, globals expr.Globals) (any, error) {
	g := make(expr.Globals, len(b.Globals)+len(globals))
	maps.Copy(g, b.Globals)
	maps.Copy(g, globals)

	switch b.Mode {
	case ModeResolve, "":
		return e.Resolve(b.Expr, b.Args, ctx, g)
	case ModeCall:
		return e.Invoke(b.Expr, b.Args, ctx, g)
	case ModeNew:
		return e.Instantiate(b.Expr, b.Args, ctx, g)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMode, b.Mode)
}
