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

package config

import (
	"os"
	"path/filepath"

	"dirpx.dev/rfxpath/apis"
)

const (
	// DefaultWorkDir represents the default for WorkDir.
	// Empty means the process working directory at load time.
	DefaultWorkDir = ""
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultNilOnly represents the default for NilOnly.
	// When false, falsy step results are treated as unresolved references.
	DefaultNilOnly = false
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		WorkDir:   DefaultWorkDir,
		MaxUnwrap: DefaultMaxUnwrap,
		NilOnly:   DefaultNilOnly,
	}
}

// WorkDir returns the absolute base directory for path specifiers under cfg.
// An empty cfg.WorkDir means the process working directory.
func WorkDir(cfg apis.Config) (string, error) {
	if cfg.WorkDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(cfg.WorkDir)
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithWorkDir sets the WorkDir option. The directory is cleaned but not
// made absolute; relative directories are resolved against the process
// working directory at load time.
func WithWorkDir(dir string) Option {
	return func(c *apis.Config) {
		if dir == "" {
			c.WorkDir = DefaultWorkDir
			return
		}
		c.WorkDir = filepath.Clean(dir)
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithNilOnly sets the NilOnly option.
func WithNilOnly(nilOnly bool) Option {
	return func(c *apis.Config) {
		c.NilOnly = nilOnly
	}
}
