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

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"dirpx.dev/rfxpath"
	"dirpx.dev/rfxpath/binding"
	"dirpx.dev/rfxpath/expr"
)

const (
	historyFile = ".rfxpath_history"
	prompt      = "rfx> "
)

const replHelp = `expressions are resolved against the global registry.
  :set name=value     bind a call/construct argument
  :global name=value  bind a global for [g(name)]
  :unset name         drop an argument or global
  :mode resolve|call|new
  :register name expr register the result of expr as module name
  :show               print the current arguments, globals and mode
  :reset              clear arguments, globals and mode
  :help               this text
  :quit               leave
`

var (
	errLabel = color.New(color.FgWhite, color.BgRed)
	okLabel  = color.New(color.FgWhite, color.BgGreen)
	dim      = color.New(color.Faint)
)

// session is the state a REPL carries between lines.
type session struct {
	args    argFlag
	globals argFlag
	mode    binding.Mode
	out     io.Writer
}

func newSession(out io.Writer) *session {
	return &session{mode: binding.ModeResolve, out: out}
}

// errQuit ends the loop.
var errQuit = errors.New("quit")

// handle evaluates one line: a ":" command or an expression.
func (s *session) handle(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if strings.HasPrefix(line, ":") {
		return s.command(line)
	}

	g := expr.Globals{}
	for _, a := range s.globals {
		g[a.Name] = a.Value
	}
	b := binding.Binding{Expr: line, Args: expr.Args(s.args), Mode: s.mode}
	v, err := b.Build(rfxpath.Engine(), nil, g)
	if err != nil {
		return err
	}
	okLabel.Fprint(s.out, " OK ")
	fmt.Fprint(s.out, " ")
	dim.Fprintf(s.out, "%T\n", v)
	return emit(s.out, v)
}

func (s *session) command(line string) error {
	fields := strings.Fields(line)
	rest := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
	switch strings.ToLower(fields[0]) {
	case ":quit", ":exit":
		return errQuit
	case ":help":
		fmt.Fprint(s.out, replHelp)
	case ":set":
		return s.args.Set(rest)
	case ":global":
		return s.globals.Set(rest)
	case ":unset":
		s.args = s.args.without(rest)
		s.globals = s.globals.without(rest)
	case ":mode":
		switch m := binding.Mode(rest); m {
		case binding.ModeResolve, binding.ModeCall, binding.ModeNew:
			s.mode = m
		default:
			return fmt.Errorf("%w: %q", binding.ErrUnknownMode, rest)
		}
	case ":register":
		if len(fields) < 3 {
			return errors.New("usage: :register name expr")
		}
		v, err := rfxpath.Resolve(strings.Join(fields[2:], " "), expr.Args(s.args), nil, nil)
		if err != nil {
			return err
		}
		return rfxpath.Register(fields[1], v)
	case ":show":
		fmt.Fprintf(s.out, "mode:    %s\nargs:    %s\nglobals: %s\n", s.mode, s.args.String(), s.globals.String())
	case ":reset":
		*s = *newSession(s.out)
	default:
		return fmt.Errorf("unknown command %s (try :help)", fields[0])
	}
	return nil
}

// without returns a copy of a lacking every entry called name.
func (a argFlag) without(name string) argFlag {
	out := make(argFlag, 0, len(a))
	for _, e := range a {
		if e.Name != name {
			out = append(out, e)
		}
	}
	return out
}

// runREPL reads expressions from the terminal until EOF or :quit.
func runREPL(stdout, stderr io.Writer) int {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	// Load history (best-effort)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	s := newSession(stdout)
	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			// EOF or Ctrl+C
			fmt.Fprintln(stdout)
			break
		}
		err = s.handle(line)
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			errLabel.Fprint(stderr, " ERR ")
			fmt.Fprintf(stderr, " %v\n", err)
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
	}

	// Persist history (best-effort)
	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return 0
}
