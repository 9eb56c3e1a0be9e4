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

package reflect

import (
	"reflect"

	"dirpx.dev/rfxpath/apis"
	"dirpx.dev/rfxpath/config"
)

// Member reads the member called name off v and reports whether it exists.
//
// Lookup policy, applied at every unwrapping level:
//   - apis.Namespace -> v.Member(name), which ends the search
//   - exported method called name -> bound method value
//   - ptr/interface -> Elem(), at most cfg.MaxUnwrap times
//   - map with a string (or interface) key -> entry under name
//   - struct -> exported field called name, including promoted fields
//
// If MaxUnwrap <= 0, DefaultMaxUnwrap is used.
func Member(v any, name string, cfg apis.Config) (any, bool) {
	if v == nil {
		return nil, false
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	rv := reflect.ValueOf(v)
	for i := 0; ; i++ {
		if rv.CanInterface() {
			if ns, ok := rv.Interface().(apis.Namespace); ok {
				return ns.Member(name)
			}
		}
		if m := rv.MethodByName(name); m.IsValid() && m.CanInterface() {
			return m.Interface(), true
		}

		switch rv.Kind() {
		case reflect.Ptr, reflect.Interface:
			if rv.IsNil() || i >= maxUnwrap {
				return nil, false
			}
			rv = rv.Elem()
		case reflect.Map:
			return mapEntry(rv, name)
		case reflect.Struct:
			return field(rv, name)
		default:
			return nil, false
		}
	}
}

// mapEntry returns m[name] for maps whose key accepts a string.
func mapEntry(m reflect.Value, name string) (any, bool) {
	kt := m.Type().Key()
	key := reflect.ValueOf(name)
	switch {
	case kt.Kind() == reflect.String:
		key = key.Convert(kt)
	case kt.Kind() == reflect.Interface && key.Type().AssignableTo(kt):
	default:
		return nil, false
	}
	e := m.MapIndex(key)
	if !e.IsValid() || !e.CanInterface() {
		return nil, false
	}
	return e.Interface(), true
}

// field returns the exported field called name.
func field(s reflect.Value, name string) (any, bool) {
	sf, ok := s.Type().FieldByName(name)
	if !ok || !sf.IsExported() {
		return nil, false
	}
	// Promoted fields behind a nil embedded pointer are unreachable.
	f, err := s.FieldByIndexErr(sf.Index)
	if err != nil || !f.CanInterface() {
		return nil, false
	}
	return f.Interface(), true
}
