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

// Package uuids wraps github.com/google/uuid with the helpers the rest of
// the repository and the "uuid" built-in module expose.
package uuids

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// shortSpace is the number of distinct short identifiers (36^4).
const shortSpace = 36 * 36 * 36 * 36

// New returns a random (version 4) UUID.
func New() uuid.UUID {
	return uuid.New()
}

// Short returns a random 4-character base-36 identifier. It is meant for
// human-facing labels, not for uniqueness guarantees.
func Short() string {
	s := strconv.FormatInt(int64(rand.IntN(shortSpace)), 36)
	return strings.Repeat("0", 4-len(s)) + s
}

// Plain returns a new random UUID as 32 lowercase hex digits.
func Plain() string {
	return AsPlain(New())
}

// AsPlain formats u as 32 lowercase hex digits, without dashes.
func AsPlain(u uuid.UUID) string {
	return strings.ReplaceAll(u.String(), "-", "")
}

// AsV4 reformats a UUID string (dashed, plain, braced or urn form) in the
// canonical dashed form.
func AsV4(s string) (string, error) {
	u, err := Parse(s)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// Parse decodes s in any form accepted by uuid.Parse.
func Parse(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// Equal reports whether a and b spell the same UUID, ignoring case.
func Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Empty returns the nil UUID.
func Empty() uuid.UUID {
	return uuid.Nil
}
