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
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"dirpx.dev/rfxpath/apis"
	"dirpx.dev/rfxpath/builder"
	"dirpx.dev/rfxpath/config"
	"dirpx.dev/rfxpath/engine"
	"dirpx.dev/rfxpath/expr"
)

// init initializes the global state.
func init() {
	cfg := config.DefaultConfig()
	b := builder.New()
	reg := b.BuildRegistry(cfg, nil)
	st.Store(newState(cfg, reg, b.BuildLoader(cfg, reg, nil), b, nil, false, false))
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("rfx: builder returned nil registry")
	// ErrNilLoader is returned when a builder returns a nil loader.
	ErrNilLoader = errors.New("rfx: builder returned nil loader")
)

// Target is a resolved callable together with its ordered arguments.
type Target = engine.Target

// Resolve resolves expression against ctx, or against the global registry
// when ctx is nil. This is a convenience wrapper around the global engine.
func Resolve(expression string, args expr.Args, ctx any, globals expr.Globals) (any, error) {
	return st.Load().eng.Resolve(expression, args, ctx, globals)
}

// ResolveCallable resolves expression to a callable and its arguments.
func ResolveCallable(expression string, args expr.Args, ctx any, globals expr.Globals) (Target, error) {
	return st.Load().eng.ResolveCallable(expression, args, ctx, globals)
}

// Instantiate resolves expression and constructs the result.
func Instantiate(expression string, args expr.Args, ctx any, globals expr.Globals) (any, error) {
	return st.Load().eng.Instantiate(expression, args, ctx, globals)
}

// Invoke resolves expression and calls the result with ctx as receiver.
func Invoke(expression string, args expr.Args, ctx any, globals expr.Globals) (any, error) {
	return st.Load().eng.Invoke(expression, args, ctx, globals)
}

// Register adds a module to the global registry.
// This is a convenience wrapper around the global reg.
func Register(specifier string, module any) error {
	return st.Load().reg.Register(specifier, module)
}

// Engine returns the engine of the current snapshot.
func Engine() *engine.Engine {
	return st.Load().eng
}

// SetAll explicitly sets all global state components.
//
// Nil arguments leave the corresponding component unchanged. Registry and
// loader are rebuilt by the (new) builder unless given, in which case they
// are pinned. Pins of layers that are rebuilt are cleared.
func SetAll(cfg *apis.Config, reg apis.Registry, ldr apis.Loader, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()

	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	nreg, npreg := reg, reg != nil
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, old.reg)
	}
	nldr, npldr := ldr, ldr != nil
	if nldr == nil {
		nldr = nbld.BuildLoader(ncfg, nreg, old.ldr)
	}

	publish(ncfg, nreg, nldr, nbld, old.log, npreg, npldr)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg and rebuilds the layers
// that are not pinned.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()
	rebuild(st.Load(), cfg, nil)
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets and pins the global registry. The loader is rebuilt over
// it unless pinned.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	nldr := old.ldr
	if !old.pldr {
		nldr = old.bld.BuildLoader(old.cfg, reg, old.ldr)
	}
	publish(old.cfg, reg, nldr, old.bld, old.log, true, old.pldr)
}

// Loader returns the global loader.
func Loader() apis.Loader {
	return st.Load().ldr
}

// SetLoader sets and pins the global loader.
func SetLoader(ldr apis.Loader) {
	if ldr == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	publish(old.cfg, old.reg, ldr, old.bld, old.log, old.preg, true)
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder to b and rebuilds the layers that are
// not pinned.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()
	old := st.Load()
	rebuild(old, old.cfg, b)
}

// SetLogger sets the logger handed to the global engine. A nil logger
// restores the default, which discards everything.
func SetLogger(l *slog.Logger) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	publish(old.cfg, old.reg, old.ldr, old.bld, l, old.preg, old.pldr)
}

// IsRegistryPinned reports whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry stops the global registry from being rebuilt.
func PinRegistry() { repin(func(preg, _ *bool) { *preg = true }) }

// UnpinRegistry allows the global registry to be rebuilt again.
func UnpinRegistry() { repin(func(preg, _ *bool) { *preg = false }) }

// IsLoaderPinned reports whether the global loader is pinned.
func IsLoaderPinned() bool {
	return st.Load().pldr
}

// PinLoader stops the global loader from being rebuilt.
func PinLoader() { repin(func(_, pldr *bool) { *pldr = true }) }

// UnpinLoader allows the global loader to be rebuilt again.
func UnpinLoader() { repin(func(_, pldr *bool) { *pldr = false }) }

// repin republishes the current snapshot with pin flags changed by fn.
func repin(fn func(preg, pldr *bool)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	preg, pldr := old.preg, old.pldr
	fn(&preg, &pldr)
	publish(old.cfg, old.reg, old.ldr, old.bld, old.log, preg, pldr)
}

// rebuild derives the unpinned layers from cfg and b (old.bld when nil) and
// publishes the result. Callers hold buildMu.
func rebuild(old *state, cfg apis.Config, b apis.Builder) {
	if b == nil {
		b = old.bld
	}
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(cfg, old.reg)
	}
	nldr := old.ldr
	if !old.pldr {
		nldr = b.BuildLoader(cfg, nreg, old.ldr)
	}
	publish(cfg, nreg, nldr, b, old.log, old.preg, old.pldr)
}

// publish validates the layers and stores a new snapshot. Callers hold buildMu.
func publish(cfg apis.Config, reg apis.Registry, ldr apis.Loader, b apis.Builder, log *slog.Logger, preg, pldr bool) {
	// Ensure non-nil reg and ldr.
	if reg == nil {
		panic(ErrNilRegistry)
	}
	if ldr == nil {
		panic(ErrNilLoader)
	}
	st.Store(newState(cfg, reg, ldr, b, log, preg, pldr))
}

func newState(cfg apis.Config, reg apis.Registry, ldr apis.Loader, b apis.Builder, log *slog.Logger, preg, pldr bool) *state {
	return &state{
		cfg:  cfg,
		reg:  reg,
		ldr:  ldr,
		bld:  b,
		log:  log,
		eng:  engine.New(cfg, ldr, engine.WithRoot(reg), engine.WithLogger(log)),
		preg: preg,
		pldr: pldr,
	}
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	cfg apis.Config
	reg apis.Registry
	ldr apis.Loader
	bld apis.Builder
	// log is nil for the default discard logger.
	log *slog.Logger
	// eng is built from cfg, ldr and reg; the registry is its root.
	eng *engine.Engine
	// preg indicates whether the reg is pinned.
	preg bool
	// pldr indicates whether the ldr is pinned.
	pldr bool
}
