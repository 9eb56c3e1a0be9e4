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
	"math"
	"reflect"

	"dirpx.dev/rfxpath/apis"
)

// errorType is the reflect.Type of the error interface.
var errorType = reflect.TypeFor[error]()

// Invocable reports whether v can be the target of a call step:
// an apis.Callable or a non-nil func.
func Invocable(v any) bool {
	if _, ok := v.(apis.Callable); ok {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}

// Call invokes fn with args as positional arguments and no receiver.
//
// Go funcs are called through reflect. Missing trailing arguments are
// passed as zero values; surplus arguments fail with apis.ErrArity unless
// fn is variadic. Arguments are converted between numeric kinds and between
// named types sharing a kind. A trailing error result, when non-nil, is
// returned as the error. The first remaining result is the value; a func
// without results yields nil.
func Call(fn any, args []any) (out any, err error) {
	defer recoverInto(&err)

	if c, ok := fn.(apis.Callable); ok {
		return c.Call(args...)
	}
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, fmt.Errorf("%w: %T is not callable", apis.ErrInvalidOperationTarget, fn)
	}
	in, err := arguments(rv.Type(), args)
	if err != nil {
		return nil, err
	}
	return results(rv.Call(in))
}

// CallWith invokes fn like Call, passing recv as the leading argument when
// fn has the method-expression shape func(recv, args...). Otherwise recv is
// ignored and fn is called without a receiver.
func CallWith(fn any, recv any, args []any) (any, error) {
	if recv != nil && takesReceiver(reflect.ValueOf(fn), reflect.TypeOf(recv), len(args)) {
		return Call(fn, append([]any{recv}, args...))
	}
	return Call(fn, args)
}

// takesReceiver reports whether fn's first parameter accepts rt and the
// remaining parameters fit n arguments.
func takesReceiver(fn reflect.Value, rt reflect.Type, n int) bool {
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return false
	}
	ft := fn.Type()
	if ft.IsVariadic() {
		if ft.NumIn() < 2 || ft.NumIn()-2 > n {
			return false
		}
	} else if ft.NumIn() != n+1 {
		return false
	}
	return rt.AssignableTo(ft.In(0))
}

// arguments converts args to the parameter types of ft.
func arguments(ft reflect.Type, args []any) ([]reflect.Value, error) {
	n := ft.NumIn()
	fixed := n
	if ft.IsVariadic() {
		fixed = n - 1
	} else if len(args) > n {
		return nil, fmt.Errorf("%w: got %d, want at most %d", apis.ErrArity, len(args), n)
	}

	in := make([]reflect.Value, 0, max(n, len(args)))
	for i := 0; i < fixed; i++ {
		var a any
		if i < len(args) {
			a = args[i]
		}
		v, err := Coerce(a, ft.In(i))
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in = append(in, v)
	}
	if ft.IsVariadic() {
		et := ft.In(n - 1).Elem()
		for i := fixed; i < len(args); i++ {
			v, err := Coerce(args[i], et)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			in = append(in, v)
		}
	}
	return in, nil
}

// results folds the return values of a reflect call into (value, error).
// A trailing result of any nil-able type implementing error counts as the
// error, so concrete error pointers are recognised too.
func results(out []reflect.Value) (any, error) {
	if n := len(out); n > 0 && isError(out[n-1].Type()) {
		if !out[n-1].IsNil() {
			return nil, out[n-1].Interface().(error)
		}
		out = out[:n-1]
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}

func isError(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return t.Implements(errorType)
	}
	return false
}

// Coerce returns a as a value of type t. nil becomes the zero value.
// Numeric values convert only when the value is representable in t: no
// wrap-around, no sign flip, no dropped fraction.
func Coerce(a any, t reflect.Type) (reflect.Value, error) {
	if a == nil {
		return reflect.Zero(t), nil
	}
	v := reflect.ValueOf(a)
	switch {
	case v.Type().AssignableTo(t):
		return v, nil
	case numeric(v.Kind()) && numeric(t.Kind()):
		if !fits(v, t) {
			return reflect.Value{}, fmt.Errorf("%w: %v does not fit %s", apis.ErrArgumentType, a, t)
		}
		return v.Convert(t), nil
	case v.Kind() == t.Kind() && v.Type().ConvertibleTo(t):
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: cannot use %T as %s", apis.ErrArgumentType, a, t)
}

// fits reports whether the numeric value v converts to t without loss.
func fits(v reflect.Value, t reflect.Type) bool {
	dst := reflect.New(t).Elem()
	switch {
	case signed(v.Kind()):
		i := v.Int()
		switch {
		case signed(t.Kind()):
			return !dst.OverflowInt(i)
		case unsigned(t.Kind()):
			return i >= 0 && !dst.OverflowUint(uint64(i))
		}
	case unsigned(v.Kind()):
		u := v.Uint()
		switch {
		case signed(t.Kind()):
			return u <= math.MaxInt64 && !dst.OverflowInt(int64(u))
		case unsigned(t.Kind()):
			return !dst.OverflowUint(u)
		}
	default:
		f := v.Float()
		switch {
		case signed(t.Kind()):
			return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 && !dst.OverflowInt(int64(f))
		case unsigned(t.Kind()):
			return f == math.Trunc(f) && f >= 0 && f < math.MaxUint64 && !dst.OverflowUint(uint64(f))
		default:
			return !dst.OverflowFloat(f)
		}
	}
	// Integer to float: the value must survive the round trip.
	return v.Convert(t).Convert(v.Type()).Equal(v)
}

func signed(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func unsigned(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// recoverInto turns a panic raised by user code into an error.
func recoverInto(err *error) {
	if r := recover(); r != nil {
		if e, ok := r.(error); ok {
			*err = fmt.Errorf("rfx: panic: %w", e)
			return
		}
		*err = fmt.Errorf("rfx: panic: %v", r)
	}
}
