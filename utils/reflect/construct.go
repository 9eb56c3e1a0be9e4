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
	"fmt"
	"reflect"

	"dirpx.dev/rfxpath/apis"
)

// Constructible reports whether v can be the target of an instance step:
// an apis.Constructor, a reflect.Type, or anything Invocable (factory func).
func Constructible(v any) bool {
	switch c := v.(type) {
	case apis.Constructor:
		return true
	case reflect.Type:
		return c != nil
	}
	return Invocable(v)
}

// Construct builds a new instance from ctor with args.
//
//   - apis.Constructor -> ctor.New(args...)
//   - reflect.Type -> a freshly allocated *T; if *T implements
//     apis.Initializer, Init(args...) runs on it, otherwise args are
//     assigned positionally to the exported fields of struct T (or to T
//     itself for non-struct types)
//   - func -> factory convention, Call(ctor, args)
func Construct(ctor any, args []any) (out any, err error) {
	defer recoverInto(&err)

	switch c := ctor.(type) {
	case apis.Constructor:
		return c.New(args...)
	case reflect.Type:
		if c != nil {
			return allocate(c, args)
		}
	}
	if Invocable(ctor) {
		return Call(ctor, args)
	}
	return nil, fmt.Errorf("%w: %T is not constructible", apis.ErrInvalidOperationTarget, ctor)
}

// allocate creates *T for t (or for t.Elem() when t is a pointer type).
func allocate(t reflect.Type, args []any) (any, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	p := reflect.New(t)
	if in, ok := p.Interface().(apis.Initializer); ok {
		if err := in.Init(args...); err != nil {
			return nil, err
		}
		return p.Interface(), nil
	}
	if len(args) == 0 {
		return p.Interface(), nil
	}

	if t.Kind() != reflect.Struct {
		if len(args) > 1 {
			return nil, fmt.Errorf("%w: got %d, want at most 1", apis.ErrArity, len(args))
		}
		v, err := Coerce(args[0], t)
		if err != nil {
			return nil, err
		}
		p.Elem().Set(v)
		return p.Interface(), nil
	}

	fields := exportedFields(t)
	if len(args) > len(fields) {
		return nil, fmt.Errorf("%w: got %d, want at most %d", apis.ErrArity, len(args), len(fields))
	}
	for i, a := range args {
		v, err := Coerce(a, t.Field(fields[i]).Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", t.Field(fields[i]).Name, err)
		}
		p.Elem().Field(fields[i]).Set(v)
	}
	return p.Interface(), nil
}

// exportedFields returns the indexes of t's exported top-level fields.
func exportedFields(t reflect.Type) []int {
	out := make([]int, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			out = append(out, i)
		}
	}
	return out
}
