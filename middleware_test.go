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
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/dispatch/pattern"
)

func TestPassthrough(t *testing.T) {
	t.Parallel()

	h := &markerHandler{body: "x"}
	assert.Same(t, h, Handler(Passthrough{}.Wrap(h)))
}

// TestComposeOrder: compose nests first-registered innermost, so wrap-time
// side effects happen in registration order and call-time wrappers apply in
// reverse.
func TestComposeOrder(t *testing.T) {
	t.Parallel()

	var wrapOrder []string
	tag := func(name string) Middleware {
		return MiddlewareFunc(func(next Handler) Handler {
			wrapOrder = append(wrapOrder, name)
			return next
		})
	}

	compose([]Middleware{tag("m0"), tag("m1"), tag("m2")}, textHandler(""))
	assert.Equal(t, []string{"m0", "m1", "m2"}, wrapOrder)
}

// TestComposeWrapsOncePerRoute: Wrap runs at build time, once per route
// entry, never per request.
func TestComposeWrapsOncePerRoute(t *testing.T) {
	t.Parallel()

	wraps := 0
	counting := MiddlewareFunc(func(next Handler) Handler {
		wraps++
		return next
	})

	b := New()
	require.NoError(t, b.Middleware(counting))
	require.NoError(t, b.GET("/a", textHandler("")))
	require.NoError(t, b.GET("/b", textHandler("")))
	router := b.Build(NewState())

	assert.Equal(t, 2, wraps)

	for range 5 {
		handleOK(t, router, http.MethodGet, "/a")
	}
	assert.Equal(t, 2, wraps)
}

func TestPathMiddleware(t *testing.T) {
	t.Parallel()

	pm, err := NewPathMiddleware("/admin/*rest", prependMiddleware("admin:"))
	require.NoError(t, err)

	b := New()
	require.NoError(t, b.Middleware(pm))
	require.NoError(t, b.GET("/admin/panel", textHandler("panel")))
	require.NoError(t, b.GET("/public", textHandler("public")))
	router := b.Build(NewState())

	// Matching the prefix takes the wrapped handler.
	resp := handleOK(t, router, http.MethodGet, "/admin/panel")
	assert.Equal(t, "admin:panel", bodyOf(t, resp))

	// Everything else takes the original.
	resp = handleOK(t, router, http.MethodGet, "/public")
	assert.Equal(t, "public", bodyOf(t, resp))
}

func TestPathMiddlewareParseError(t *testing.T) {
	t.Parallel()

	_, err := NewPathMiddleware("/a/*x/b", Passthrough{})
	assert.ErrorIs(t, err, pattern.ErrWildcardNotLast)
}

// TestMiddlewareErrorPropagation: an error from the inner handler flows
// through wrapping middleware to the driver, which converts it to a 500.
func TestMiddlewareErrorPropagation(t *testing.T) {
	t.Parallel()

	seen := false
	observer := MiddlewareFunc(func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, state *State, req *Request) (*Response, error) {
			resp, err := next.Handle(ctx, state, req)
			if err != nil {
				seen = true
			}
			return resp, err
		})
	})

	b := New()
	require.NoError(t, b.Middleware(observer))
	require.NoError(t, b.GET("/boom", HandlerFunc(
		func(context.Context, *State, *Request) (*Response, error) {
			return nil, assert.AnError
		})))
	router := b.Build(NewState())

	resp := handleOK(t, router, http.MethodGet, "/boom")
	assert.Equal(t, http.StatusInternalServerError, resp.Status())
	assert.True(t, seen)
}
