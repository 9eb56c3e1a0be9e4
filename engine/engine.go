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

// Package engine folds compiled expressions over a context.
//
// An Engine is built from a configuration and an apis.Loader. It carries no
// mutable state of its own and is safe for concurrent use as long as its
// loader is.
package engine

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"dirpx.dev/rfxpath/apis"
	"dirpx.dev/rfxpath/config"
	"dirpx.dev/rfxpath/expr"
	uref "dirpx.dev/rfxpath/utils/reflect"
)

// Engine resolves expressions against an object graph.
type Engine struct {
	cfg  apis.Config
	ldr  apis.Loader
	root any
	log  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRoot sets the context used when a caller passes none.
func WithRoot(root any) Option {
	return func(e *Engine) { e.root = root }
}

// WithLogger sets the logger that receives one debug record per executed step.
// A nil logger keeps the default, which discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New returns an Engine that loads modules through ldr.
func New(cfg apis.Config, ldr apis.Loader, opts ...Option) *Engine {
	e := &Engine{
		cfg: cfg,
		ldr: ldr,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() apis.Config { return e.cfg }

// Root returns the default context.
func (e *Engine) Root() any { return e.root }

// Execute runs a single node against current and returns the next context.
func (e *Engine) Execute(current any, node expr.Node) (any, error) {
	next, err := e.step(current, node)
	if err != nil {
		return nil, err
	}
	if !uref.Truthy(next, e.cfg.NilOnly) {
		return nil, fmt.Errorf("%w: %s(%s) yielded %v", apis.ErrUnresolvedReference, node.Op, node.Name, next)
	}
	return next, nil
}

func (e *Engine) step(current any, node expr.Node) (any, error) {
	switch node.Op {
	case expr.OpRequire:
		spec := node.Name
		if containsSeparator(spec) {
			dir, err := config.WorkDir(e.cfg)
			if err != nil {
				return nil, err
			}
			spec = filepath.Join(dir, spec)
		}
		return e.load(spec)
	case expr.OpModule:
		if containsSeparator(node.Name) {
			return nil, fmt.Errorf("%w: %q is not a bare specifier", apis.ErrModuleNotFound, node.Name)
		}
		return e.load(node.Name)
	case expr.OpNamespace:
		v, _ := uref.Member(current, node.Name, e.cfg)
		return v, nil
	case expr.OpCall:
		if !uref.Invocable(current) {
			return nil, fmt.Errorf("%w: cannot call %T", apis.ErrInvalidOperationTarget, current)
		}
		return uref.Call(current, node.Params)
	case expr.OpInstance:
		if !uref.Constructible(current) {
			return nil, fmt.Errorf("%w: cannot construct %T", apis.ErrInvalidOperationTarget, current)
		}
		return uref.Construct(current, node.Params)
	}
	return nil, fmt.Errorf("%w: %q", apis.ErrUnsupportedOperation, string(rune(node.Op)))
}

func (e *Engine) load(specifier string) (any, error) {
	if e.ldr == nil {
		return nil, fmt.Errorf("%w: no loader for %q", apis.ErrModuleNotFound, specifier)
	}
	return e.ldr.Load(specifier, e.cfg)
}

// Reduce folds nodes over seed, left to right.
func (e *Engine) Reduce(seed any, nodes []expr.Node) (any, error) {
	cur := seed
	for i, n := range nodes {
		next, err := e.Execute(cur, n)
		if err != nil {
			return nil, fmt.Errorf("step %d %s(%s): %w", i, n.Op, n.Name, err)
		}
		e.log.Debug("rfx step", "index", i, "op", n.Op.String(), "name", n.Name, "type", fmt.Sprintf("%T", next))
		cur = next
	}
	return cur, nil
}

// Resolve compiles expression and folds it over ctx, or over the root when
// ctx is nil.
func (e *Engine) Resolve(expression string, args expr.Args, ctx any, globals expr.Globals) (any, error) {
	nodes, err := expr.Compile(expression, args, globals)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", expression, err)
	}
	if ctx == nil {
		ctx = e.root
	}
	v, err := e.Reduce(ctx, nodes)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", expression, err)
	}
	return v, nil
}

// Target is a resolved invocable reference together with its arguments.
type Target struct {
	Fn   any
	Args []any
}

// ResolveCallable resolves expression and checks that the result can be
// called or constructed. Args holds the argument table values in order,
// with global references substituted.
func (e *Engine) ResolveCallable(expression string, args expr.Args, ctx any, globals expr.Globals) (Target, error) {
	v, err := e.Resolve(expression, args, ctx, globals)
	if err != nil {
		return Target{}, err
	}
	if !uref.Invocable(v) && !uref.Constructible(v) {
		return Target{}, fmt.Errorf("resolve %q: %w: got %T", expression, apis.ErrNotAFunction, v)
	}
	return Target{Fn: v, Args: globals.SubstituteAll(args)}, nil
}

// Instantiate constructs the callable target of expression.
func (e *Engine) Instantiate(expression string, args expr.Args, ctx any, globals expr.Globals) (any, error) {
	t, err := e.ResolveCallable(expression, args, ctx, globals)
	if err != nil {
		return nil, err
	}
	v, err := uref.Construct(t.Fn, t.Args)
	if err != nil {
		return nil, fmt.Errorf("instantiate %q: %w", expression, err)
	}
	return v, nil
}

// Invoke resolves expression from ctx and calls the result with ctx as
// receiver. A string ctx is itself resolved from the root first. The
// receiver is passed as the leading argument when the target is a method
// expression; construction-only targets are constructed instead.
func (e *Engine) Invoke(expression string, args expr.Args, ctx any, globals expr.Globals) (any, error) {
	if s, ok := ctx.(string); ok {
		recv, err := e.Resolve(s, nil, nil, globals)
		if err != nil {
			return nil, fmt.Errorf("invoke %q: receiver: %w", expression, err)
		}
		ctx = recv
	}
	t, err := e.ResolveCallable(expression, args, ctx, globals)
	if err != nil {
		return nil, err
	}
	var v any
	if uref.Invocable(t.Fn) {
		v, err = uref.CallWith(t.Fn, ctx, t.Args)
	} else {
		v, err = uref.Construct(t.Fn, t.Args)
	}
	if err != nil {
		return nil, fmt.Errorf("invoke %q: %w", expression, err)
	}
	return v, nil
}

func containsSeparator(s string) bool {
	for _, r := range s {
		if r == '/' || r == filepath.Separator {
			return true
		}
	}
	return false
}
