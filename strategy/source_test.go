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
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/rfxpath/apis"
	"dirpx.dev/rfxpath/config"
	"dirpx.dev/rfxpath/strategy"
)

const sourceModule = `package main

import "strconv"

var Greeting = "hello"

func Fn(a, b int) string {
	return strconv.Itoa(a) + strconv.Itoa(b)
}
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestSourceStrategy_LoadsGoFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dummyObj.go", sourceModule)
	cfg := config.NewConfig(config.WithWorkDir(dir))

	s := strategy.NewSourceStrategy()
	mod, ok, err := s.TryLoad("./dummyObj", cfg)
	if err != nil || !ok {
		t.Fatalf("TryLoad(./dummyObj) = (%v, %v, %v), want handled", mod, ok, err)
	}
	ns, isNS := mod.(apis.Namespace)
	if !isNS {
		t.Fatalf("module is %T, want apis.Namespace", mod)
	}

	g, ok := ns.Member("Greeting")
	if !ok || g != "hello" {
		t.Fatalf("Member(Greeting) = (%v, %v), want (hello, true)", g, ok)
	}
	if _, ok := ns.Member("Missing"); ok {
		t.Fatalf("Member(Missing) should miss")
	}
	if _, ok := ns.Member("1 + 1"); ok {
		t.Fatalf("Member must refuse non-identifiers")
	}

	fn, ok := ns.Member("Fn")
	if !ok {
		t.Fatalf("Member(Fn) not found")
	}
	if f, _ := fn.(func(int, int) string); f == nil || f(1, 1) != "11" {
		t.Fatalf("Member(Fn) = %T, want func(int, int) string returning 11", fn)
	}
}

func TestSourceStrategy_Memoizes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mod.go", sourceModule)
	s := strategy.NewSourceStrategy()

	a, _, err := s.TryLoad(path, apis.Config{})
	if err != nil {
		t.Fatalf("TryLoad: %v", err)
	}
	b, _, _ := s.TryLoad(path, apis.Config{})
	if a != b {
		t.Fatalf("second load returned a different module")
	}
	if sm, ok := a.(*strategy.SourceModule); !ok || sm.Path() != path {
		t.Fatalf("module path = %v, want %s", a, path)
	}
}

func TestSourceStrategy_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.go", "package main\nfunc (\n")
	writeFile(t, dir, "empty.go", "  \n")
	cfg := config.NewConfig(config.WithWorkDir(dir))
	s := strategy.NewSourceStrategy()

	for _, spec := range []string{"./broken", "./empty.go"} {
		if _, ok, err := s.TryLoad(spec, cfg); !ok || err == nil {
			t.Fatalf("TryLoad(%q) = (%v, %v), want handled error", spec, ok, err)
		}
	}
	if _, ok, _ := s.TryLoad("./absent", cfg); ok {
		t.Fatalf("missing file must fall through")
	}
	if _, ok, _ := s.TryLoad("bare", cfg); ok {
		t.Fatalf("bare specifier must fall through")
	}
}

// TestSourceStrategy_ConcurrentMember_NoRace hammers Member on one module.
func TestSourceStrategy_ConcurrentMember_NoRace(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mod.go", sourceModule)
	s := strategy.NewSourceStrategy()

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 2
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				mod, _, err := s.TryLoad(path, apis.Config{})
				if err != nil {
					t.Errorf("TryLoad: %v", err)
					return
				}
				if g, ok := mod.(apis.Namespace).Member("Greeting"); !ok || g != "hello" {
					t.Errorf("Member(Greeting) = (%v, %v)", g, ok)
					return
				}
			}
		}()
	}
	wg.Wait()
}
