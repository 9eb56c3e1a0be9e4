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

package config_test

import (
	"path/filepath"
	"testing"

	"dirpx.dev/rfxpath/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.WorkDir != config.DefaultWorkDir {
		t.Fatalf("WorkDir = %q, want %q", got.WorkDir, config.DefaultWorkDir)
	}
	if got.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Fatalf("MaxUnwrap = %d, want %d", got.MaxUnwrap, config.DefaultMaxUnwrap)
	}
	if got.NilOnly != config.DefaultNilOnly {
		t.Fatalf("NilOnly = %v, want %v", got.NilOnly, config.DefaultNilOnly)
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if got != def {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestWithWorkDir(t *testing.T) {
	dir := filepath.Join("a", "b", "..", "c")
	c := config.NewConfig(config.WithWorkDir(dir))
	if want := filepath.Join("a", "c"); c.WorkDir != want {
		t.Fatalf("WorkDir = %q, want %q", c.WorkDir, want)
	}

	c2 := config.NewConfig(config.WithWorkDir(dir), config.WithWorkDir(""))
	if c2.WorkDir != config.DefaultWorkDir {
		t.Fatalf("WorkDir = %q, want default", c2.WorkDir)
	}
}

func TestWithNilOnly(t *testing.T) {
	c := config.NewConfig(config.WithNilOnly(true))
	if !c.NilOnly {
		t.Fatalf("NilOnly = %v, want true", c.NilOnly)
	}

	c2 := config.NewConfig(config.WithNilOnly(false))
	if c2.NilOnly {
		t.Fatalf("NilOnly = %v, want false", c2.NilOnly)
	}
}

func TestWithMaxUnwrap_Positive(t *testing.T) {
	c := config.NewConfig(config.WithMaxUnwrap(3))
	if c.MaxUnwrap != 3 {
		t.Fatalf("MaxUnwrap = %d, want 3", c.MaxUnwrap)
	}
}

func TestWithMaxUnwrap_Negative_ResetsToDefault(t *testing.T) {
	c := config.NewConfig(config.WithMaxUnwrap(-1))
	if c.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Fatalf("MaxUnwrap = %d, want default %d", c.MaxUnwrap, config.DefaultMaxUnwrap)
	}
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithNilOnly(false),
		config.WithNilOnly(true),
		config.WithMaxUnwrap(2),
		config.WithMaxUnwrap(5),
		config.WithWorkDir("x"),
		config.WithWorkDir("y"),
	)

	if !c.NilOnly {
		t.Errorf("NilOnly = %v, want true (last option wins)", c.NilOnly)
	}
	if c.MaxUnwrap != 5 {
		t.Errorf("MaxUnwrap = %d, want 5 (last option wins)", c.MaxUnwrap)
	}
	if c.WorkDir != "y" {
		t.Errorf("WorkDir = %q, want y (last option wins)", c.WorkDir)
	}
}

func TestNewConfig_MaxUnwrapZeroAllowed(t *testing.T) {
	// Zero is stored as given; consumers fall back to the default depth.
	c := config.NewConfig(config.WithMaxUnwrap(0))
	if c.MaxUnwrap != 0 {
		t.Fatalf("MaxUnwrap = %d, want 0", c.MaxUnwrap)
	}
}

func TestWorkDir(t *testing.T) {
	dir := t.TempDir()
	got, err := config.WorkDir(config.NewConfig(config.WithWorkDir(dir)))
	if err != nil || got != dir {
		t.Fatalf("WorkDir = (%q, %v), want (%q, nil)", got, err, dir)
	}

	got, err = config.WorkDir(config.DefaultConfig())
	if err != nil || !filepath.IsAbs(got) {
		t.Fatalf("WorkDir(default) = (%q, %v), want an absolute directory", got, err)
	}
}
