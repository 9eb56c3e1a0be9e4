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

// Package validator holds field validators for configuration and request
// values. Each validator is a total function: invalid or oddly typed input
// yields false, never an error.
package validator

import (
	"math"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	emailPattern = regexp.MustCompile(`(?i)^[a-z0-9!#$%&'*+/=?^_` + "`" + `{|}~.-]+@[a-z0-9]([a-z0-9-]*[a-z0-9])?(\.[a-z0-9]([a-z0-9-]*[a-z0-9])?)*$`)
	timePattern  = regexp.MustCompile(`^(([0-9])|([0-1][0-9])|(2[0-3]))(:(([0-9])|([0-5][0-9]))){1,2}$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)
)

// IsUUID reports whether s is a UUID in dashed (36) or plain (32) form.
func IsUUID(s string) bool {
	if len(s) != 32 && len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// IsEmail reports whether s looks like an e-mail address.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsEmptyString reports whether v is a string that is empty after trimming.
func IsEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// IsTime reports whether v is a "H:MM" or "H:MM:SS" string (24h clock).
func IsTime(v any) bool {
	s, ok := v.(string)
	return ok && timePattern.MatchString(s)
}

// IsStandardDate reports whether v is a "YYYY-M-D" string.
func IsStandardDate(v any) bool {
	s, ok := v.(string)
	return ok && datePattern.MatchString(s)
}

// LengthOption tunes CheckStringLength.
type LengthOption func(*lengthOptions)

type lengthOptions struct {
	canBeEmpty bool
	dontTrim   bool
}

// CanBeEmpty accepts the empty string.
func CanBeEmpty() LengthOption {
	return func(o *lengthOptions) { o.canBeEmpty = true }
}

// DontTrim measures the string as given instead of trimmed.
func DontTrim() LengthOption {
	return func(o *lengthOptions) { o.dontTrim = true }
}

// CheckStringLength reports whether v is a string no longer than maxLength
// runes. nil counts as the empty string. Unless CanBeEmpty is given, the
// (trimmed) string must not be empty.
func CheckStringLength(v any, maxLength int, opts ...LengthOption) bool {
	var o lengthOptions
	for _, opt := range opts {
		opt(&o)
	}
	if v == nil {
		v = ""
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	if !o.dontTrim {
		s = strings.TrimSpace(s)
	}
	n := len([]rune(s))
	return (o.canBeEmpty || n != 0) && n <= maxLength
}

// IsNumber reports whether v holds a Go numeric value other than NaN.
func IsNumber(v any) bool {
	_, ok := number(v)
	return ok
}

// InRange reports whether v is a number within [min, max].
func InRange(v any, min, max float64) bool {
	f, ok := number(v)
	return ok && f >= min && f <= max
}

func number(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	var f float64
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f = float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		f = float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		f = rv.Float()
	default:
		return 0, false
	}
	return f, !math.IsNaN(f)
}

// IsFunction reports whether v is a non-nil func. When arity is
// non-negative, the func must also take exactly that many parameters.
func IsFunction(v any, arity int) bool {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return false
	}
	return arity < 0 || rv.Type().NumIn() == arity
}

// dateLayouts are the string layouts IsDate accepts.
var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, time.DateTime, time.DateOnly}

// IsDate reports whether v denotes a valid date: a non-zero time.Time, a
// number (Unix milliseconds), or a string in one of the accepted layouts.
func IsDate(v any) bool {
	switch d := v.(type) {
	case time.Time:
		return !d.IsZero()
	case string:
		for _, layout := range dateLayouts {
			if _, err := time.Parse(layout, d); err == nil {
				return true
			}
		}
		return false
	}
	return IsNumber(v)
}
