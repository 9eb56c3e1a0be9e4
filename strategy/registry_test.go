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

package strategy_test

import (
	"testing"

	"dirpx.dev/rfxpath/apis"
	"dirpx.dev/rfxpath/config"
	rfxregistry "dirpx.dev/rfxpath/registry"
	"dirpx.dev/rfxpath/strategy"
)

func TestRegistryStrategy_WithRealRegistry(t *testing.T) {
	reg := rfxregistry.New()
	mod := map[string]any{"answer": 42}
	if err := reg.Register("answers", mod); err != nil {
		t.Fatalf("Register(answers): %v", err)
	}

	s := strategy.NewRegistryStrategy(reg)

	got, ok, err := s.TryLoad("answers", config.DefaultConfig())
	if err != nil || !ok {
		t.Fatalf("TryLoad(answers) = (%v, %v, %v), want handled", got, ok, err)
	}
	if m, _ := got.(map[string]any); m["answer"] != 42 {
		t.Fatalf("TryLoad(answers) = %#v, want registered module", got)
	}
}

func TestRegistryStrategy_FallsThrough(t *testing.T) {
	reg := rfxregistry.New()
	_ = reg.Register("answers", 42)
	s := strategy.NewRegistryStrategy(reg)

	for _, spec := range []string{"unknown", "./answers", "/abs/answers"} {
		if _, ok, err := s.TryLoad(spec, config.DefaultConfig()); ok || err != nil {
			t.Fatalf("TryLoad(%q) = (%v, %v), want unhandled", spec, ok, err)
		}
	}
}

func TestRegistryStrategy_NilRegistry(t *testing.T) {
	s := strategy.NewRegistryStrategy(nil)
	if _, ok, _ := s.TryLoad("x", apis.Config{}); ok {
		t.Fatalf("nil registry must not handle anything")
	}
}

func TestIsPath(t *testing.T) {
	cases := map[string]bool{
		"assert":       false,
		"./dummyObj":   true,
		"/a/b":         true,
		"dir/file.go":  true,
		"with.dot.txt": false,
	}
	for in, want := range cases {
		if got := strategy.IsPath(in); got != want {
			t.Fatalf("IsPath(%q) = %v, want %v", in, got, want)
		}
	}
}
