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
	"context"

	"rivaas.dev/dispatch/pattern"
)

// Middleware transforms a handler into a new handler. Wrap runs once per
// route when the builder is sealed, never per request, so per-request cost
// is whatever the returned handler adds and nothing more.
//
// The returned handler must itself satisfy the Handler contract (concurrent
// use, any number of calls).
type Middleware interface {
	Wrap(next Handler) Handler
}

// MiddlewareFunc adapts a plain function to the Middleware interface.
//
//	logging := dispatch.MiddlewareFunc(func(next dispatch.Handler) dispatch.Handler {
//	    return dispatch.HandlerFunc(func(ctx context.Context, state *dispatch.State, req *dispatch.Request) (*dispatch.Response, error) {
//	        resp, err := next.Handle(ctx, state, req)
//	        // post-processing
//	        return resp, err
//	    })
//	})
type MiddlewareFunc func(next Handler) Handler

// Wrap calls f.
func (f MiddlewareFunc) Wrap(next Handler) Handler { return f(next) }

// Passthrough is the identity middleware: Wrap returns its argument.
type Passthrough struct{}

// Wrap returns next unchanged.
func (Passthrough) Wrap(next Handler) Handler { return next }

// PathMiddleware applies an inner middleware only to requests whose path
// matches a prefix pattern. Both the wrapped and the plain handler are built
// at seal time; each request picks one by re-matching the pattern against
// its path.
//
// The pattern follows trie semantics, so a prefix covering a subtree is
// written with a wildcard: "/admin/*rest".
type PathMiddleware struct {
	pattern pattern.Pattern
	inner   Middleware
}

// NewPathMiddleware parses the prefix template and wraps inner.
func NewPathMiddleware(prefix string, inner Middleware) (*PathMiddleware, error) {
	p, err := pattern.Parse(prefix)
	if err != nil {
		return nil, err
	}
	return &PathMiddleware{pattern: p, inner: inner}, nil
}

// Wrap builds the per-request selector around both variants of next.
func (m *PathMiddleware) Wrap(next Handler) Handler {
	return &pathHandler{
		pattern: m.pattern,
		wrapped: m.inner.Wrap(next),
		plain:   next,
	}
}

type pathHandler struct {
	pattern pattern.Pattern
	wrapped Handler
	plain   Handler
}

func (h *pathHandler) Handle(ctx context.Context, state *State, req *Request) (*Response, error) {
	if h.pattern.Match(req.Path(), pattern.Discard()) {
		return h.wrapped.Handle(ctx, state, req)
	}
	return h.plain.Handle(ctx, state, req)
}

// compose nests a handler inside every middleware in registration order: the
// first-registered middleware becomes the innermost wrap, seeing the request
// last on the way in and the response first on the way out.
func compose(middlewares []Middleware, h Handler) Handler {
	for _, m := range middlewares {
		h = m.Wrap(h)
	}
	return h
}
