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

package rfxpath

import (
	"bytes"
	"errors"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"dirpx.dev/rfxpath/apis"
	"dirpx.dev/rfxpath/builder"
	"dirpx.dev/rfxpath/config"
	"dirpx.dev/rfxpath/expr"
	"dirpx.dev/rfxpath/registry"
)

// Reset to a clean snapshot using b, and restore the default builder when
// the test ends. Pins are cleared because reg and ldr are rebuilt.
func resetWithBuilder(tb testing.TB, b apis.Builder, cfg apis.Config) {
	tb.Helper()
	SetAll(&cfg, nil, nil, b)
	tb.Cleanup(func() {
		def := config.DefaultConfig()
		SetAll(&def, nil, nil, builder.New())
		SetLogger(nil)
	})
}

// ---------------------- Test doubles (mocks) ----------------------

type mockRegistry struct {
	apis.Registry
	id string
}

func newMockRegistry(id string) *mockRegistry {
	return &mockRegistry{Registry: registry.New(), id: id}
}

type mockLoader struct {
	id string
	mu sync.Mutex
	n  int
}

func (l *mockLoader) Load(specifier string, cfg apis.Config) (any, error) {
	l.mu.Lock()
	l.n++
	l.mu.Unlock()
	if specifier == "loader" {
		return map[string]any{"id": l.id, "unwrap": cfg.MaxUnwrap}, nil
	}
	return nil, apis.ErrModuleNotFound
}

type mockBuilder struct {
	mu             sync.Mutex
	lastCfg        apis.Config
	lastPrevRegID  string
	lastPrevLdrID  string
	regCounter     int
	ldrCounter     int
	returnFixedReg apis.Registry // optional override
	returnFixedLdr apis.Loader   // optional override
}

func (b *mockBuilder) BuildRegistry(cfg apis.Config, prev apis.Registry) apis.Registry {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg = cfg
	if mr, ok := prev.(*mockRegistry); ok {
		b.lastPrevRegID = mr.id
	}
	if b.returnFixedReg != nil {
		return b.returnFixedReg
	}
	b.regCounter++
	return newMockRegistry("reg#" + strconv.Itoa(b.regCounter))
}

func (b *mockBuilder) BuildLoader(cfg apis.Config, _ apis.Registry, prev apis.Loader) apis.Loader {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg = cfg
	if ml, ok := prev.(*mockLoader); ok {
		b.lastPrevLdrID = ml.id
	}
	if b.returnFixedLdr != nil {
		return b.returnFixedLdr
	}
	b.ldrCounter++
	return &mockLoader{id: "ldr#" + strconv.Itoa(b.ldrCounter)}
}

// ---------------------- Tests ----------------------

func TestSetConfig_Rebuilds_Unpinned(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.NewConfig(config.WithMaxUnwrap(8)))

	s1Reg := Registry()
	s1Ldr := Loader()

	SetConfig(config.NewConfig(config.WithMaxUnwrap(4), config.WithNilOnly(true)))

	if Registry() == s1Reg {
		t.Fatalf("registry was not rebuilt on SetConfig (unpinned)")
	}
	if Loader() == s1Ldr {
		t.Fatalf("loader was not rebuilt on SetConfig (unpinned)")
	}

	b.mu.Lock()
	gotCfg, prevReg, prevLdr := b.lastCfg, b.lastPrevRegID, b.lastPrevLdrID
	b.mu.Unlock()
	if gotCfg.MaxUnwrap != 4 || !gotCfg.NilOnly {
		t.Fatalf("builder received wrong cfg: %+v", gotCfg)
	}
	if prevReg != "reg#1" || prevLdr != "ldr#1" {
		t.Fatalf("builder saw prev (%q, %q), want (reg#1, ldr#1)", prevReg, prevLdr)
	}
	if got := Config(); got.MaxUnwrap != 4 {
		t.Fatalf("Config() = %+v", got)
	}
}

func TestSetRegistry_PinsRegistry_and_RebuildsLoaderIfUnpinned(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.DefaultConfig())

	customReg := newMockRegistry("custom")
	SetRegistry(customReg)
	if !IsRegistryPinned() {
		t.Fatalf("SetRegistry must pin the registry")
	}

	beforeLdr := Loader()
	SetConfig(config.NewConfig(config.WithMaxUnwrap(3)))

	if Registry() != customReg {
		t.Fatalf("pinned registry was rebuilt unexpectedly")
	}
	if Loader() == beforeLdr {
		t.Fatalf("loader was not rebuilt when cfg changed and loader not pinned")
	}
}

func TestSetLoader_PinsLoader(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.DefaultConfig())

	custom := &mockLoader{id: "custom"}
	SetLoader(custom)
	if !IsLoaderPinned() {
		t.Fatalf("SetLoader must pin the loader")
	}
	SetConfig(config.NewConfig(config.WithMaxUnwrap(2)))
	if Loader() != custom {
		t.Fatalf("pinned loader was rebuilt unexpectedly")
	}

	// The engine of the new snapshot loads through the pinned loader.
	got, err := Resolve("[m(loader)].id", nil, nil, nil)
	if err != nil || got != "custom" {
		t.Fatalf("Resolve via pinned loader = (%v, %v)", got, err)
	}
}

func TestSetBuilder_Rebuilds_Only_Unpinned(t *testing.T) {
	b1 := &mockBuilder{}
	resetWithBuilder(t, b1, config.DefaultConfig())
	PinRegistry()
	reg := Registry()

	b2 := &mockBuilder{ldrCounter: 100}
	SetBuilder(b2)

	if Builder() != b2 {
		t.Fatalf("builder not swapped")
	}
	if Registry() != reg {
		t.Fatalf("pinned registry rebuilt by SetBuilder")
	}
	if ml, ok := Loader().(*mockLoader); !ok || ml.id != "ldr#101" {
		t.Fatalf("loader not rebuilt by the new builder: %#v", Loader())
	}
}

func TestUnpin_Allows_Rebuild_After(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.DefaultConfig())
	PinRegistry()
	PinLoader()

	reg1, ldr1 := Registry(), Loader()
	SetConfig(config.NewConfig(config.WithMaxUnwrap(5)))
	if Registry() != reg1 || Loader() != ldr1 {
		t.Fatalf("pinned layers must survive SetConfig")
	}

	UnpinRegistry()
	UnpinLoader()
	if IsRegistryPinned() || IsLoaderPinned() {
		t.Fatalf("unpin did not clear the flags")
	}
	SetConfig(config.NewConfig(config.WithMaxUnwrap(6)))
	if Registry() == reg1 {
		t.Fatalf("registry should rebuild after UnpinRegistry+SetConfig")
	}
	if Loader() == ldr1 {
		t.Fatalf("loader should rebuild after UnpinLoader+SetConfig")
	}
}

func TestSetAll_NilBuilderResultPanics(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.DefaultConfig())

	defer func() {
		r := recover()
		if err, _ := r.(error); !errors.Is(err, ErrNilLoader) {
			t.Fatalf("recover() = %v, want ErrNilLoader", r)
		}
	}()
	SetAll(nil, nil, nil, nilLoaderBuilder{})
}

type nilLoaderBuilder struct{}

func (nilLoaderBuilder) BuildRegistry(apis.Config, apis.Registry) apis.Registry {
	return registry.New()
}
func (nilLoaderBuilder) BuildLoader(apis.Config, apis.Registry, apis.Loader) apis.Loader {
	return nil
}

func TestDefaultState_ResolvesBuiltinsAndRegistered(t *testing.T) {
	resetWithBuilder(t, builder.New(), config.DefaultConfig())

	if err := Register("app", map[string]any{"Name": "demo"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	got, err := Resolve("app.Name", nil, nil, nil)
	if err != nil || got != "demo" {
		t.Fatalf("Resolve(app.Name) = (%v, %v)", got, err)
	}

	ok, err := Invoke("[m(validator)].IsUUID", expr.Args{{Name: "id", Value: "[g(id)]"}}, nil,
		expr.Globals{"id": "6ba7b810-9dad-11d1-80b4-00c04fd430c8"})
	if err != nil || ok != true {
		t.Fatalf("Invoke(IsUUID) = (%v, %v)", ok, err)
	}

	tg, err := ResolveCallable("[m(convert)].ParseBool", expr.Args{{Name: "v", Value: "yes"}}, nil, nil)
	if err != nil || len(tg.Args) != 1 || tg.Args[0] != "yes" {
		t.Fatalf("ResolveCallable = (%+v, %v)", tg, err)
	}
	if _, err := Instantiate("[m(validator)].whatever", nil, nil, nil); !errors.Is(err, apis.ErrUnresolvedReference) {
		t.Fatalf("want ErrUnresolvedReference, got %v", err)
	}
}

func TestSetLogger_ReachesEngine(t *testing.T) {
	resetWithBuilder(t, builder.New(), config.DefaultConfig())

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	if _, err := Resolve("uuid", nil, nil, nil); err != nil {
		t.Fatalf("Resolve(uuid): %v", err)
	}
	if !strings.Contains(buf.String(), "rfx step") {
		t.Fatalf("logger not wired into the engine: %q", buf.String())
	}
}

func TestResolve_Concurrent_With_SetConfig(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.DefaultConfig())

	done := make(chan struct{})
	var wg sync.WaitGroup

	readers := runtime.GOMAXPROCS(0) * 4
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if _, err := Resolve("[m(loader)].id", nil, nil, nil); err != nil {
					t.Errorf("Resolve: %v", err)
					return
				}
			}
		}()
	}

	go func() {
		for i := 0; i < 20; i++ {
			SetConfig(config.NewConfig(config.WithMaxUnwrap(4 + i%5)))
			time.Sleep(time.Millisecond)
		}
		close(done)
	}()

	wg.Wait()
	<-done
}
