// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dispatch

import (
	"errors"

	"rivaas.dev/dispatch/trie"
)

// Static errors for error handling and testing.
// These errors are wrapped with fmt.Errorf and %w when context is needed.
var (
	// Build-time errors, returned from Builder methods. They are programmer
	// errors and should halt startup.

	// ErrAlreadyRegistered is returned when a route's method filter overlaps
	// an entry already registered under the same pattern.
	ErrAlreadyRegistered = trie.ErrAlreadyRegistered

	// ErrUnknownMethod is returned for a method name outside the supported
	// set, or an empty method filter.
	ErrUnknownMethod = errors.New("dispatch: unknown HTTP method")

	// ErrNilHandler is returned when a nil handler or middleware is
	// registered. Nil modifiers are ignored instead.
	ErrNilHandler = errors.New("dispatch: nil handler")

	// Routing errors, returned from Router.Match. The driver converts them
	// to 404 and 405 responses; they are ordinary request outcomes, not
	// failures.

	// ErrNotFound means no registered pattern matched the request path.
	ErrNotFound = errors.New("dispatch: no route matched")

	// ErrMethodNotAllowed means the path matched but no route entry accepts
	// the request method.
	ErrMethodNotAllowed = errors.New("dispatch: method not allowed")
)
