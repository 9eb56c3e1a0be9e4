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

// Command rfxpath resolves a binding file or an inline expression and
// prints the result.
//
//	rfxpath -file binding.yaml
//	rfxpath -expr '[r(./settings)].db.host' -workdir ./deploy
//	rfxpath -expr '[m(validator)].InRange' -mode call -set v=5 -set lo=1 -set hi=10
//	rfxpath -repl
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"dirpx.dev/rfxpath"
	"dirpx.dev/rfxpath/binding"
	"dirpx.dev/rfxpath/config"
	"dirpx.dev/rfxpath/expr"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rfxpath", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.String("file", "", "path to a YAML binding document")
	expression := fs.String("expr", "", "expression to resolve (ignored with -file)")
	mode := fs.String("mode", "", "resolve, call or new (overrides the binding's mode)")
	workdir := fs.String("workdir", "", "directory relative module paths resolve against (defaults to cwd)")
	verbose := fs.Bool("v", false, "log every resolution step to stderr")
	repl := fs.Bool("repl", false, "read expressions interactively")
	sets := argFlag{}
	fs.Var(&sets, "set", "argument name=value, repeatable; values are YAML scalars")
	globals := argFlag{}
	fs.Var(&globals, "global", "global name=value, repeatable; values are YAML scalars")
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	die := func(format string, args ...any) int {
		errLabel.Fprint(stderr, " ERR ")
		fmt.Fprintf(stderr, " "+format+"\n", args...)
		return 1
	}

	rfxpath.SetConfig(config.NewConfig(config.WithWorkDir(*workdir)))
	if *verbose {
		rfxpath.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if *repl {
		return runREPL(stdout, stderr)
	}

	var b binding.Binding
	switch {
	case strings.TrimSpace(*file) != "":
		var err error
		if b, err = binding.LoadFile(*file); err != nil {
			return die("load binding: %v", err)
		}
	case strings.TrimSpace(*expression) != "":
		b = binding.Binding{Expr: *expression, Mode: binding.ModeResolve}
	default:
		return die("-file or -expr is required")
	}
	if *mode != "" {
		b.Mode = binding.Mode(*mode)
	}
	b.Args = append(b.Args, expr.Args(sets)...)

	g := expr.Globals{}
	for _, a := range globals {
		g[a.Name] = a.Value
	}
	out, err := b.Build(rfxpath.Engine(), nil, g)
	if err != nil {
		return die("%v", err)
	}
	if err := emit(stdout, out); err != nil {
		return die("print: %v", err)
	}
	return 0
}

// emit writes strings verbatim, containers as YAML and anything else with %v.
func emit(w io.Writer, v any) error {
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.String:
		_, err := fmt.Fprintln(w, rv.String())
		return err
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Bool,
		reflect.Int, reflect.Int64, reflect.Float64:
		if data, err := marshal(v); err == nil {
			_, err = w.Write(data)
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%v\n", v)
	return err
}

// marshal is yaml.Marshal that reports unsupported values (funcs, chans)
// as errors instead of panicking.
func marshal(v any) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("yaml: %v", r)
		}
	}()
	return yaml.Marshal(v)
}

// argFlag collects name=value pairs in command-line order.
type argFlag expr.Args

func (a *argFlag) String() string {
	if a == nil || len(*a) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(*a))
	for _, e := range *a {
		pairs = append(pairs, fmt.Sprintf("%s=%v", e.Name, e.Value))
	}
	return strings.Join(pairs, ", ")
}

func (a *argFlag) Set(value string) error {
	parts := strings.SplitN(value, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("expected name=value, got %q", value)
	}
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return fmt.Errorf("name is empty in %q", value)
	}
	var v any = parts[1]
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(parts[1]), &node); err == nil && len(node.Content) == 1 {
		if n := node.Content[0]; n.Kind == yaml.ScalarNode && n.ShortTag() != "!!null" {
			var scalar any
			if n.Decode(&scalar) == nil {
				v = scalar
			}
		}
	}
	*a = append(*a, expr.Arg{Name: name, Value: v})
	return nil
}
