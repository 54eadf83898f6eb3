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
	"fmt"
	"net/http"
	"strings"
)

// MethodFilter is a bitset over the supported HTTP methods. A route entry
// carries one filter, which may combine several methods:
//
//	b.Route(dispatch.MethodGet|dispatch.MethodPost, "/form", handler)
type MethodFilter uint8

const (
	// MethodGet matches GET requests.
	MethodGet MethodFilter = 1 << iota
	// MethodPost matches POST requests.
	MethodPost
	// MethodPut matches PUT requests.
	MethodPut
	// MethodPatch matches PATCH requests.
	MethodPatch
	// MethodDelete matches DELETE requests.
	MethodDelete
	// MethodHead matches HEAD requests.
	MethodHead
	// MethodOptions matches OPTIONS requests.
	MethodOptions

	// AnyMethod matches every supported method.
	AnyMethod = MethodGet | MethodPost | MethodPut | MethodPatch | MethodDelete | MethodHead | MethodOptions
)

// methodNames is ordered by bit position.
var methodNames = [...]string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
	http.MethodOptions,
}

// ParseMethod maps a textual HTTP method to its filter bit. Method names are
// case-sensitive per RFC 9110; unknown methods fail with ErrUnknownMethod.
func ParseMethod(method string) (MethodFilter, error) {
	for i, name := range methodNames {
		if method == name {
			return 1 << i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
}

// Contains reports whether q is non-empty and every bit of q is set in f;
// the empty filter is never contained. A route entry with
// filter f serves a request method q (a single bit) iff f.Contains(q).
func (f MethodFilter) Contains(q MethodFilter) bool {
	return f&q == q && q != 0
}

// Methods returns the method names in the filter, ordered GET, POST, PUT,
// PATCH, DELETE, HEAD, OPTIONS.
func (f MethodFilter) Methods() []string {
	var out []string
	for i, name := range methodNames {
		if f&(1<<i) != 0 {
			out = append(out, name)
		}
	}
	return out
}

// String renders the filter as "GET|POST". The zero filter renders as "".
func (f MethodFilter) String() string {
	return strings.Join(f.Methods(), "|")
}
