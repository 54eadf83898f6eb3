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
	"rivaas.dev/dispatch/pattern"
	"rivaas.dev/dispatch/trie"
)

// Router is the sealed product of a Builder: a path trie whose leaves carry
// composed handler pipelines, plus the frozen modifier list and the shared
// application state.
//
// The Router is immutable and safe for concurrent use by any number of
// request tasks without additional synchronization. Routes cannot change
// after Build; build a new Router to change them.
type Router struct {
	tree      *trie.Trie[*routeSet]
	modifiers []Modifier
	state     *State
	cfg       config
}

// State returns the application state the router was built with.
func (r *Router) State() *State { return r.state }

// Routes lists every route entry in the same order as Builder.Routes, with
// middleware already composed into the handlers.
func (r *Router) Routes() []RouteInfo {
	return routeInfos(r.tree)
}

// match resolves path and method to the leaf's method table and the matching
// entry. The two failure modes are ErrNotFound (no path match — allowed is
// 0) and ErrMethodNotAllowed (path matched, method table did not — allowed
// carries the leaf's union filter for the Allow header).
func (r *Router) match(method, path string, params pattern.Params) (Handler, pattern.Pattern, MethodFilter, error) {
	set, pat, ok := r.tree.Lookup(path, params)
	if !ok {
		return nil, pattern.Pattern{}, 0, ErrNotFound
	}

	var allowed MethodFilter
	for _, e := range set.entries {
		allowed |= e.filter
	}

	// An unsupported method name cannot be in any filter, so it surfaces as
	// 405 on a matched path, exactly like a supported-but-unregistered one.
	bit, err := ParseMethod(method)
	if err != nil {
		return nil, pat, allowed, ErrMethodNotAllowed
	}
	for _, e := range set.entries {
		if e.filter.Contains(bit) {
			return e.handler, pat, allowed, nil
		}
	}
	return nil, pat, allowed, ErrMethodNotAllowed
}

// Match resolves a method and path to the composed handler that would serve
// them, binding URL captures into params. It returns the matched route
// pattern alongside the handler.
//
// Failure modes are ErrNotFound and ErrMethodNotAllowed; both are ordinary
// outcomes, and Router.Handle converts them to 404 and 405 responses.
func (r *Router) Match(method, path string, params pattern.Params) (Handler, pattern.Pattern, error) {
	if params == nil {
		params = pattern.Discard()
	}
	h, pat, _, err := r.match(method, path, params)
	return h, pat, err
}

// MatchedRoute is one route entry matched by MatchRoutes.
type MatchedRoute struct {
	Filter  MethodFilter
	Pattern string
	Handler Handler
}

// MatchRoutes returns every route entry on the matched path whose filter
// contains the request method, in registration order. The driver uses only
// the first; the full list serves introspection and tooling. A nil slice
// means the path itself did not match.
func (r *Router) MatchRoutes(method, path string) []MatchedRoute {
	set, pat, ok := r.tree.Lookup(path, pattern.Discard())
	if !ok {
		return nil
	}
	bit, err := ParseMethod(method)
	if err != nil {
		return []MatchedRoute{}
	}
	matched := make([]MatchedRoute, 0, len(set.entries))
	for _, e := range set.entries {
		if e.filter.Contains(bit) {
			matched = append(matched, MatchedRoute{Filter: e.filter, Pattern: pat.String(), Handler: e.handler})
		}
	}
	return matched
}
