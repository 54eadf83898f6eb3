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

// textHandler returns a handler answering 200 with a fixed body.
func textHandler(body string) Handler {
	return HandlerFunc(func(context.Context, *State, *Request) (*Response, error) {
		return Text(http.StatusOK, body), nil
	})
}

// markerHandler is a pointer-identity handler for identity assertions.
type markerHandler struct {
	body string
}

func (m *markerHandler) Handle(context.Context, *State, *Request) (*Response, error) {
	return Text(http.StatusOK, m.body), nil
}

// echoParam returns a handler echoing one URL parameter.
func echoParam(name string) Handler {
	return HandlerFunc(func(_ context.Context, _ *State, req *Request) (*Response, error) {
		return Text(http.StatusOK, req.Param(name)), nil
	})
}

func TestBuilderRoute(t *testing.T) {
	t.Parallel()

	b := New()
	require.NoError(t, b.Route(MethodGet, "/users/:id", echoParam("id")))
	require.NoError(t, b.Route(MethodPost, "/users/:id", textHandler("created")))

	infos := b.Routes()
	require.Len(t, infos, 2)
	assert.Equal(t, RouteInfo{Filter: MethodGet, Pattern: "/users/:id"}, infos[0])
	assert.Equal(t, RouteInfo{Filter: MethodPost, Pattern: "/users/:id"}, infos[1])
}

func TestBuilderRouteErrors(t *testing.T) {
	t.Parallel()

	t.Run("nil handler", func(t *testing.T) {
		t.Parallel()
		b := New()
		assert.ErrorIs(t, b.Route(MethodGet, "/x", nil), ErrNilHandler)
	})

	t.Run("empty filter", func(t *testing.T) {
		t.Parallel()
		b := New()
		assert.ErrorIs(t, b.Route(0, "/x", textHandler("")), ErrUnknownMethod)
	})

	t.Run("parse error", func(t *testing.T) {
		t.Parallel()
		b := New()
		err := b.Route(MethodGet, "/a/*rest/b", textHandler(""))
		assert.ErrorIs(t, err, pattern.ErrWildcardNotLast)
	})

	t.Run("duplicate method", func(t *testing.T) {
		t.Parallel()
		b := New()
		require.NoError(t, b.GET("/x", textHandler("a")))
		assert.ErrorIs(t, b.GET("/x", textHandler("b")), ErrAlreadyRegistered)
	})

	t.Run("overlapping filter", func(t *testing.T) {
		t.Parallel()
		b := New()
		require.NoError(t, b.Route(MethodGet|MethodPost, "/x", textHandler("a")))
		assert.ErrorIs(t, b.Route(MethodPost|MethodPut, "/x", textHandler("b")), ErrAlreadyRegistered)
		// Disjoint filters on the same path are fine.
		require.NoError(t, b.Route(MethodPut|MethodDelete, "/x", textHandler("c")))
	})

	t.Run("any conflicts with everything", func(t *testing.T) {
		t.Parallel()
		b := New()
		require.NoError(t, b.Any("/x", textHandler("a")))
		assert.ErrorIs(t, b.HEAD("/x", textHandler("b")), ErrAlreadyRegistered)
	})
}

func TestBuilderMethodHelpers(t *testing.T) {
	t.Parallel()

	b := New()
	require.NoError(t, b.GET("/r", textHandler("")))
	require.NoError(t, b.POST("/r", textHandler("")))
	require.NoError(t, b.PUT("/r", textHandler("")))
	require.NoError(t, b.PATCH("/r", textHandler("")))
	require.NoError(t, b.DELETE("/r", textHandler("")))
	require.NoError(t, b.HEAD("/r", textHandler("")))
	require.NoError(t, b.OPTIONS("/r", textHandler("")))

	var filters MethodFilter
	for _, info := range b.Routes() {
		filters |= info.Filter
	}
	assert.Equal(t, AnyMethod, filters)
}

func TestBuilderMiddlewareNil(t *testing.T) {
	t.Parallel()

	b := New()
	assert.ErrorIs(t, b.Middleware(nil), ErrNilHandler)

	// Nil modifiers are silently ignored; registration is infallible.
	b.Modifier(nil)
	router := b.Build(NewState())
	assert.Empty(t, router.modifiers)
}

func TestBuilderMerge(t *testing.T) {
	t.Parallel()

	users := New()
	require.NoError(t, users.GET("/users", textHandler("list")))

	b := New()
	require.NoError(t, b.GET("/health", textHandler("ok")))
	require.NoError(t, b.Merge(users))

	router := b.Build(NewState())
	h, _, err := router.Match(http.MethodGet, "/users", nil)
	require.NoError(t, err)
	require.NotNil(t, h)

	// Colliding merge propagates the registration error.
	dup := New()
	require.NoError(t, dup.GET("/health", textHandler("other")))
	assert.ErrorIs(t, b.Merge(dup), ErrAlreadyRegistered)
}

func TestBuilderMount(t *testing.T) {
	t.Parallel()

	admin := New()
	require.NoError(t, admin.GET("/users/:id", echoParam("id")))

	b := New()
	require.NoError(t, b.Mount("/admin", admin))

	router := b.Build(NewState())
	params := &UrlParams{}
	_, pat, err := router.Match(http.MethodGet, "/admin/users/8", params)
	require.NoError(t, err)
	assert.Equal(t, "/admin/users/:id", pat.String())
	assert.Equal(t, "8", params.Get("id"))

	// The sub-builder's own paths do not exist un-prefixed.
	_, _, err = router.Match(http.MethodGet, "/users/8", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestBuilderMountScopedMiddleware verifies that a mounted builder's
// middleware applies only to its own subtree, while the parent's middleware
// wraps everything.
func TestBuilderMountScopedMiddleware(t *testing.T) {
	t.Parallel()

	tag := func(prefix string) Middleware {
		return MiddlewareFunc(func(next Handler) Handler {
			return HandlerFunc(func(ctx context.Context, state *State, req *Request) (*Response, error) {
				resp, err := next.Handle(ctx, state, req)
				if err != nil {
					return nil, err
				}
				body, err := resp.ReadBody()
				if err != nil {
					return nil, err
				}
				return Text(resp.Status(), prefix+string(body)), nil
			})
		})
	}

	sub := New()
	require.NoError(t, sub.GET("/leaf", textHandler("x")))
	require.NoError(t, sub.Middleware(tag("sub:")))

	b := New()
	require.NoError(t, b.GET("/top", textHandler("y")))
	require.NoError(t, b.Middleware(tag("parent:")))
	require.NoError(t, b.Mount("/s", sub))

	router := b.Build(NewState())

	resp := handleOK(t, router, http.MethodGet, "/s/leaf")
	assert.Equal(t, "parent:sub:x", bodyOf(t, resp))

	resp = handleOK(t, router, http.MethodGet, "/top")
	assert.Equal(t, "parent:y", bodyOf(t, resp))
}

// TestBuilderMountHoistsModifiers verifies sub-builder modifiers become
// router-wide, per the modifier contract.
func TestBuilderMountHoistsModifiers(t *testing.T) {
	t.Parallel()

	sub := New()
	require.NoError(t, sub.GET("/leaf", textHandler("x")))
	sub.Modifier(headerModifier("X-Sub", "1"))

	b := New()
	require.NoError(t, b.GET("/top", textHandler("y")))
	require.NoError(t, b.Mount("/s", sub))

	router := b.Build(NewState())

	// The hoisted modifier runs even for routes the parent registered.
	resp := handleOK(t, router, http.MethodGet, "/top")
	assert.Equal(t, "1", resp.Header().Get("X-Resp-X-Sub"))
}

func TestBuilderClear(t *testing.T) {
	t.Parallel()

	b := New()
	require.NoError(t, b.GET("/x", textHandler("")))
	require.NoError(t, b.Middleware(Passthrough{}))
	b.Modifier(headerModifier("X-M", "1"))

	b.Clear()
	assert.Empty(t, b.Routes())

	router := b.Build(NewState())
	_, _, err := router.Match(http.MethodGet, "/x", nil)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, router.modifiers)
}

// TestBuilderReusableAfterBuild: the built router must not observe routes
// registered afterwards.
func TestBuilderReusableAfterBuild(t *testing.T) {
	t.Parallel()

	b := New()
	require.NoError(t, b.GET("/a", textHandler("a")))
	router := b.Build(NewState())

	require.NoError(t, b.GET("/b", textHandler("b")))

	_, _, err := router.Match(http.MethodGet, "/b", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	router2 := b.Build(NewState())
	_, _, err = router2.Match(http.MethodGet, "/b", nil)
	assert.NoError(t, err)
}
