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

// Package dispatch is a reusable HTTP request-dispatch core: a path-based
// router paired with a composable middleware/modifier pipeline, built once
// and then shared by any number of concurrent request tasks.
//
// # Model
//
// Routing and execution are split into a build phase and a serve phase.
// During build, a mutable Builder collects routes (method filter + path
// template + handler), middleware, and modifiers. Build seals it into an
// immutable Router: every leaf handler is wrapped with the middleware stack
// — first registered innermost — and the modifier list is frozen. At serve
// time the driver matches the path against an arena-backed trie, dispatches
// on the method, attaches URL captures to the request, and runs
//
//	before(modifier 0) … before(modifier n-1)
//	handler
//	after(modifier n-1) … after(modifier 0)
//
// with strict sequential ordering and symmetric unwinding.
//
// Middleware is per-route and composes at build time; modifiers are
// router-wide and bracket every routed request. Requests answered 404 or
// 405 never enter the pipeline.
//
// # Path templates
//
// Templates combine constant segments, single-segment parameters, and a
// trailing wildcard (see the pattern package):
//
//	/users/:id
//	/static/*filepath
//
// Constant beats parameter beats wildcard at every node, and a failed
// descent falls back to the nearest enclosing wildcard.
//
// # Usage
//
//	b := dispatch.New()
//	_ = b.GET("/users/:id", dispatch.HandlerFunc(
//	    func(ctx context.Context, state *dispatch.State, req *dispatch.Request) (*dispatch.Response, error) {
//	        return dispatch.Text(http.StatusOK, "user "+req.Param("id")), nil
//	    }))
//
//	router := b.Build(dispatch.NewState())
//	http.ListenAndServe(":8080", router)
//
// The Router implements http.Handler through a thin adapter; the core itself
// never touches sockets, TLS, or HTTP framing. Hosts that bring their own
// transport drive Router.Handle directly.
//
// # Concurrency
//
// The Router is immutable after Build. Handlers, middleware-produced
// handlers, and modifiers must be safe for concurrent use; requests are
// independent and share nothing except the application State.
package dispatch
