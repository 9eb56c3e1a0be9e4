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

// Package convert coerces loosely typed configuration values.
package convert

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"dirpx.dev/rfxpath/uuids"
)

var (
	// ErrInvalidInput is returned when an input cannot be converted.
	ErrInvalidInput = errors.New("convert: invalid input")
	// ErrUnsupportedTarget is returned for an unknown target type name.
	ErrUnsupportedTarget = errors.New("convert: unsupported target type")
)

// ParseBool coerces input to a bool.
//
// Strings are false when empty, "0" or "false" (any case) and true otherwise.
// Numbers are false when zero or NaN. nil is false. Any other value is true.
func ParseBool(input any) bool {
	switch v := input.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && v != "0" && !strings.EqualFold(v, "false")
	case int:
		return v != 0
	case int8:
		return v != 0
	case int16:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case uint:
		return v != 0
	case uint8:
		return v != 0
	case uint16:
		return v != 0
	case uint32:
		return v != 0
	case uint64:
		return v != 0
	case float32:
		return v != 0 && !math.IsNaN(float64(v))
	case float64:
		return v != 0 && !math.IsNaN(v)
	}
	return true
}

// ToUUID converts a string (any form uuid.Parse accepts) or a 16-byte
// slice to a UUID.
func ToUUID(input any) (uuid.UUID, error) {
	switch v := input.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		u, err := uuids.Parse(v)
		if err != nil {
			return uuid.Nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return u, nil
	case []byte:
		u, err := uuid.FromBytes(v)
		if err != nil {
			return uuid.Nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return u, nil
	}
	return uuid.Nil, fmt.Errorf("%w: %T", ErrInvalidInput, input)
}

// ToUUIDPath converts input like ToUUID and formats it in upper-case
// dashed form, suitable for file names.
func ToUUIDPath(input any) (string, error) {
	u, err := ToUUID(input)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(u.String()), nil
}

// Convert converts input to the target named by to: "UUID" or "UUIDPath".
func Convert(input any, to string) (any, error) {
	switch to {
	case "UUID":
		return ToUUID(input)
	case "UUIDPath":
		return ToUUIDPath(input)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedTarget, to)
}
