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
	"fmt"
	"go/token"
	"os"
	"strings"
	"sync"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"dirpx.dev/rfxpath/apis"
)

// sourceExts lists the extensions served by the source strategy.
var sourceExts = []string{".go"}

// NewSourceStrategy creates an apis.Strategy that loads Go source files
// through the yaegi interpreter. Only path specifiers are handled; "./x"
// finds x.go. The file is expected to declare package main, and its
// top-level identifiers become the module's members.
//
// Each strategy instance keeps its own cache, so a file is interpreted once
// per strategy.
func NewSourceStrategy() apis.Strategy {
	return &sourceStrategy{}
}

// sourceStrategy interprets .go files and memoizes the resulting modules.
type sourceStrategy struct {
	cache memo
}

// Ensure sourceStrategy implements apis.Strategy.
var _ apis.Strategy = (*sourceStrategy)(nil)

// TryLoad interprets the Go file named by specifier.
func (s *sourceStrategy) TryLoad(specifier string, cfg apis.Config) (any, bool, error) {
	return tryLoadFile(&s.cache, specifier, cfg, sourceExts, loadSource)
}

func loadSource(path string) (any, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(code))) == 0 {
		return nil, fmt.Errorf("source: %s is empty", path)
	}
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("source: load stdlib symbols: %w", err)
	}
	if _, err := i.EvalPath(path); err != nil {
		return nil, fmt.Errorf("source: interpret %s: %w", path, err)
	}
	return &SourceModule{path: path, ip: i}, nil
}

// SourceModule is an interpreted Go file. It is an apis.Namespace over the
// file's top-level identifiers.
type SourceModule struct {
	path string
	// mu serializes evaluation; the interpreter is not safe for concurrent Eval.
	mu sync.Mutex
	ip *interp.Interpreter
}

// Path returns the absolute path the module was loaded from.
func (m *SourceModule) Path() string { return m.path }

// Member evaluates the top-level identifier name in the module.
// Anything but a plain identifier is refused.
func (m *SourceModule) Member(name string) (any, bool) {
	if !token.IsIdentifier(name) {
		return nil, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, err := m.ip.Eval(name)
	if err != nil || !v.IsValid() || !v.CanInterface() {
		return nil, false
	}
	return v.Interface(), true
}
