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

// Route pattern sentinels reported to observability when no route matched.
// Recorders should use the pattern, never the raw path, as the metric
// dimension — patterns are bounded, paths are not.
const (
	// PatternNotFound is reported when no pattern matched the path.
	PatternNotFound = "_not_found"

	// PatternMethodNotAllowed is reported when the path matched but the
	// method table did not.
	PatternMethodNotAllowed = "_method_not_allowed"
)

// ObservabilityRecorder provides unified observability lifecycle hooks for
// the request driver. Implementations typically combine metrics, distributed
// tracing, and access logging.
//
// Lifecycle:
//  1. The driver calls OnRequestStart(ctx, req) → (enrichedCtx, token)
//     before routing. The enriched context flows through modifiers and the
//     handler (e.g. carrying a trace span); the token is opaque per-request
//     state. Returning a nil token excludes the request: OnRequestEnd is
//     then skipped, but the enriched context still applies, so trace
//     propagation keeps working on excluded paths.
//  2. After the response is final (all after phases done, or a 404/405
//     short-circuit), the driver calls OnRequestEnd with the matched route
//     pattern — or a sentinel — the response, and the handler error, if any.
//     On cancellation the hook still fires, with a nil response and the
//     context error, so per-request resources (spans, timers) are released.
//
// Thread safety: all methods must be safe for concurrent use.
type ObservabilityRecorder interface {
	OnRequestStart(ctx context.Context, req *Request) (context.Context, any)
	OnRequestEnd(ctx context.Context, token any, req *Request, resp *Response, routePattern string, err error)
}
