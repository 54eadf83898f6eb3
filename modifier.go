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

// Modifier is the cross-route request/response rewriter. It is registered on
// the router, not per route, and runs for every request that routed —
// requests answered 404 or 405 never see it.
//
// Modifiers are not middleware: they cannot short-circuit the handler or
// change the dispatch target, and their two halves bracket the whole
// pipeline with symmetric unwinding (see Router.Handle). They also cannot
// fail; a modifier that detects a problem attaches an error-bearing value to
// the request extensions for a downstream handler, or rewrites the response
// in its after phase.
//
// Thread safety: one Modifier instance serves all requests concurrently.
type Modifier interface {
	// Before may mutate the request and returns the Modify holding whatever
	// per-request state the after phase needs. Returning nil skips the
	// after phase for this request.
	Before(ctx context.Context, req *Request, state *State) Modify
}

// Modify is the second half of a Modifier: per-request state captured during
// Before, consumed by exactly one After call.
type Modify interface {
	// After may mutate the response.
	After(ctx context.Context, resp *Response, state *State)
}

// ModifierFunc adapts a plain function to the Modifier interface.
type ModifierFunc func(ctx context.Context, req *Request, state *State) Modify

// Before calls f.
func (f ModifierFunc) Before(ctx context.Context, req *Request, state *State) Modify {
	return f(ctx, req, state)
}

// ModifyFunc adapts a plain function to the Modify interface.
type ModifyFunc func(ctx context.Context, resp *Response, state *State)

// After calls f.
func (f ModifyFunc) After(ctx context.Context, resp *Response, state *State) {
	f(ctx, resp, state)
}
