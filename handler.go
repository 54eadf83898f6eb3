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

import "context"

// Handler is the leaf of the dispatch pipeline. One handler instance serves
// arbitrarily many concurrent requests, so implementations must be safe for
// concurrent use and must not mutate shared state without their own
// coordination.
//
// Handle either produces a response or reports an error; the driver converts
// errors to 500 responses (see Router.Handle). Blocking work must observe
// ctx so cancellation propagates.
type Handler interface {
	Handle(ctx context.Context, state *State, req *Request) (*Response, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, state *State, req *Request) (*Response, error)

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, state *State, req *Request) (*Response, error) {
	return f(ctx, state, req)
}
