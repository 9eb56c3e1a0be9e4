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

package apis

import "errors"

var (
	// ErrMalformedExpression is returned when an expression cannot be split
	// into segments, or is not a string where one was required.
	ErrMalformedExpression = errors.New("rfx: malformed expression")
	// ErrUnsupportedOperation is returned for an operation tag outside r, m, n, c, i.
	ErrUnsupportedOperation = errors.New("rfx: unsupported operation")
	// ErrInvalidOperationTarget is returned when a call or instance step
	// runs against a context that cannot be invoked or constructed.
	ErrInvalidOperationTarget = errors.New("rfx: invalid operation target")
	// ErrUnresolvedReference is returned when a step yields an empty context.
	ErrUnresolvedReference = errors.New("rfx: unresolved reference")
	// ErrNotAFunction is returned when an expression resolves to a value
	// that cannot be invoked.
	ErrNotAFunction = errors.New("rfx: expression does not resolve to a function")
	// ErrModuleNotFound is returned when no loader strategy knows a specifier.
	ErrModuleNotFound = errors.New("rfx: module not found")
	// ErrArity is returned when a call receives more arguments than the target accepts.
	ErrArity = errors.New("rfx: wrong number of arguments")
	// ErrArgumentType is returned when an argument cannot be used as the
	// corresponding parameter type.
	ErrArgumentType = errors.New("rfx: argument type mismatch")
)
