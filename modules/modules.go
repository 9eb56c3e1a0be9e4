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

// Package modules provides the built-in modules every default registry
// carries: "uuid", "convert" and "validator". Each module is a
// map[string]any of exported helpers, so expressions reach them with
// member reads, e.g. "[m(uuid)].Plain.[c()]".
package modules

import (
	"dirpx.dev/rfxpath/apis"
	"dirpx.dev/rfxpath/convert"
	"dirpx.dev/rfxpath/uuids"
	"dirpx.dev/rfxpath/validator"
)

// builtins is built once so that re-registration is idempotent.
var builtins = map[string]map[string]any{
	"uuid": {
		"New":     uuids.New,
		"Short":   uuids.Short,
		"Plain":   uuids.Plain,
		"AsPlain": uuids.AsPlain,
		"AsV4":    uuids.AsV4,
		"Parse":   uuids.Parse,
		"Equal":   uuids.Equal,
		"Empty":   uuids.Empty,
	},
	"convert": {
		"ParseBool":  convert.ParseBool,
		"ToUUID":     convert.ToUUID,
		"ToUUIDPath": convert.ToUUIDPath,
		"Convert":    convert.Convert,
	},
	"validator": {
		"IsUUID":            validator.IsUUID,
		"IsEmail":           validator.IsEmail,
		"IsEmptyString":     validator.IsEmptyString,
		"IsTime":            validator.IsTime,
		"IsStandardDate":    validator.IsStandardDate,
		"CheckStringLength": validator.CheckStringLength,
		"IsNumber":          validator.IsNumber,
		"InRange":           validator.InRange,
		"IsFunction":        validator.IsFunction,
		"IsDate":            validator.IsDate,
	},
}

// Register adds the built-in modules to reg. Specifiers already bound to
// another module are left alone; the first such conflict is returned after
// the remaining modules are registered.
func Register(reg apis.Registry) error {
	var first error
	for spec, mod := range builtins {
		if _, taken := reg.Lookup(spec); taken {
			continue
		}
		if err := reg.Register(spec, mod); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Lookup returns the built-in module for specifier.
func Lookup(specifier string) (map[string]any, bool) {
	m, ok := builtins[specifier]
	return m, ok
}
