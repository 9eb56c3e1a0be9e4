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
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"dirpx.dev/rfxpath/apis"
	"dirpx.dev/rfxpath/config"
)

// IsPath reports whether specifier carries a path separator and must be
// loaded from the filesystem rather than by name.
func IsPath(specifier string) bool {
	return strings.ContainsRune(specifier, '/') || strings.ContainsRune(specifier, filepath.Separator)
}

// absPath anchors a relative specifier at the configured working directory.
func absPath(specifier string, cfg apis.Config) (string, error) {
	if filepath.IsAbs(specifier) {
		return filepath.Clean(specifier), nil
	}
	dir, err := config.WorkDir(cfg)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, specifier), nil
}

// locate returns the first regular file among path (when its extension is
// one of exts) and path+ext for each ext.
func locate(path string, exts []string) (string, bool) {
	if slices.Contains(exts, strings.ToLower(filepath.Ext(path))) && isFile(path) {
		return path, true
	}
	for _, ext := range exts {
		if p := path + ext; isFile(p) {
			return p, true
		}
	}
	return "", false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// memo caches loaded modules by absolute path. Each path is loaded at most
// once at a time; failed loads are forgotten so a later call can retry.
type memo struct {
	m sync.Map // key: path, val: *memoEntry
}

type memoEntry struct {
	once sync.Once
	mod  any
	err  error
}

func (c *memo) load(path string, fn func(string) (any, error)) (any, error) {
	v, _ := c.m.LoadOrStore(path, &memoEntry{})
	e := v.(*memoEntry)
	e.once.Do(func() { e.mod, e.err = fn(path) })
	if e.err != nil {
		c.m.CompareAndDelete(path, e)
	}
	return e.mod, e.err
}

// tryLoadFile is the shared TryLoad body of file-backed strategies.
func tryLoadFile(c *memo, specifier string, cfg apis.Config, exts []string, fn func(string) (any, error)) (any, bool, error) {
	if !IsPath(specifier) {
		return nil, false, nil
	}
	abs, err := absPath(specifier, cfg)
	if err != nil {
		return nil, true, err
	}
	path, ok := locate(abs, exts)
	if !ok {
		return nil, false, nil
	}
	mod, err := c.load(path, fn)
	return mod, true, err
}
