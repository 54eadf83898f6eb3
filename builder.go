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
	"slices"

	"rivaas.dev/dispatch/pattern"
	"rivaas.dev/dispatch/trie"
)

// routeEntry pairs a method filter with a handler. A leaf owns an ordered
// list of entries whose filters never intersect.
type routeEntry struct {
	filter  MethodFilter
	handler Handler
}

// routeSet is the trie payload: the method table of one path.
type routeSet struct {
	entries []routeEntry
}

// Builder accumulates routes, middleware, and modifiers, then seals them
// into an immutable Router with Build. All registration happens during a
// single-threaded configuration phase; the Builder itself is not safe for
// concurrent use.
//
// Example:
//
//	b := dispatch.New()
//	if err := b.GET("/users/:id", getUser); err != nil {
//	    log.Fatal(err)
//	}
//	b.Modifier(requestid.New())
//	router := b.Build(dispatch.NewState())
type Builder struct {
	tree        *trie.Trie[*routeSet]
	middlewares []Middleware
	modifiers   []Modifier
	cfg         config
}

// New returns an empty Builder with the given options applied.
func New(opts ...Option) *Builder {
	b := &Builder{
		tree: trie.New[*routeSet](),
		cfg:  defaultConfig(),
	}
	for _, opt := range opts {
		opt(&b.cfg)
	}
	return b
}

// Route registers handler for the methods in filter under the path template.
//
// Registering two entries with intersecting filters under the same pattern
// is a hard error (ErrAlreadyRegistered): duplicate registration is a
// programmer mistake and should halt startup, not be resolved at runtime.
func (b *Builder) Route(filter MethodFilter, template string, handler Handler) error {
	if handler == nil {
		return fmt.Errorf("%w: route %q", ErrNilHandler, template)
	}
	if filter == 0 || filter&^AnyMethod != 0 {
		return fmt.Errorf("%w: route %q: invalid method filter %#x", ErrUnknownMethod, template, uint8(filter))
	}
	p, err := pattern.Parse(template)
	if err != nil {
		return err
	}
	return b.addEntries(p, []routeEntry{{filter: filter, handler: handler}})
}

// addEntries merges entries into the leaf addressed by p, creating it on
// first use and rejecting method-filter overlap.
func (b *Builder) addEntries(p pattern.Pattern, entries []routeEntry) error {
	set, ok := b.tree.Get(p)
	if !ok {
		return b.tree.Register(p, &routeSet{entries: entries})
	}
	for _, e := range entries {
		for _, existing := range (*set).entries {
			if existing.filter&e.filter != 0 {
				return fmt.Errorf("%s %s: %w", e.filter, p, ErrAlreadyRegistered)
			}
		}
		(*set).entries = append((*set).entries, e)
	}
	return nil
}

// GET registers handler for GET requests on the path template.
func (b *Builder) GET(template string, handler Handler) error {
	return b.Route(MethodGet, template, handler)
}

// POST registers handler for POST requests on the path template.
func (b *Builder) POST(template string, handler Handler) error {
	return b.Route(MethodPost, template, handler)
}

// PUT registers handler for PUT requests on the path template.
func (b *Builder) PUT(template string, handler Handler) error {
	return b.Route(MethodPut, template, handler)
}

// PATCH registers handler for PATCH requests on the path template.
func (b *Builder) PATCH(template string, handler Handler) error {
	return b.Route(MethodPatch, template, handler)
}

// DELETE registers handler for DELETE requests on the path template.
func (b *Builder) DELETE(template string, handler Handler) error {
	return b.Route(MethodDelete, template, handler)
}

// HEAD registers handler for HEAD requests on the path template.
func (b *Builder) HEAD(template string, handler Handler) error {
	return b.Route(MethodHead, template, handler)
}

// OPTIONS registers handler for OPTIONS requests on the path template.
func (b *Builder) OPTIONS(template string, handler Handler) error {
	return b.Route(MethodOptions, template, handler)
}

// Any registers handler for every supported method on the path template.
func (b *Builder) Any(template string, handler Handler) error {
	return b.Route(AnyMethod, template, handler)
}

// Middleware appends m to the middleware stack. Registration order decides
// nesting: the first-registered middleware ends up innermost when Build
// composes the pipelines.
func (b *Builder) Middleware(m Middleware) error {
	if m == nil {
		return fmt.Errorf("%w: middleware", ErrNilHandler)
	}
	b.middlewares = append(b.middlewares, m)
	return nil
}

// Modifier appends m to the modifier list. Modifiers run for every routed
// request in registration order (before) and reverse order (after); nil
// modifiers are ignored.
func (b *Builder) Modifier(m Modifier) {
	if m == nil {
		return
	}
	b.modifiers = append(b.modifiers, m)
}

// Mount registers every route of sub under prefix.
//
// The sub-builder's middleware is composed into its routes at mount time, so
// it stays scoped to the mounted subtree; the parent's middleware wraps
// outside of it at Build. Sub-builder modifiers are hoisted onto the parent,
// since modifiers are router-wide by definition.
func (b *Builder) Mount(prefix string, sub *Builder) error {
	p, err := pattern.Parse(prefix)
	if err != nil {
		return err
	}
	return b.graft(p, sub)
}

// Merge registers every route of sub into b, without a prefix. Middleware
// and modifier handling matches Mount.
func (b *Builder) Merge(sub *Builder) error {
	return b.graft(pattern.Pattern{}, sub)
}

func (b *Builder) graft(prefix pattern.Pattern, sub *Builder) error {
	for _, r := range sub.tree.Routes() {
		joined, err := pattern.Join(prefix, r.Pattern)
		if err != nil {
			return err
		}
		entries := make([]routeEntry, len(r.Payload.entries))
		for i, e := range r.Payload.entries {
			entries[i] = routeEntry{filter: e.filter, handler: compose(sub.middlewares, e.handler)}
		}
		if err := b.addEntries(joined, entries); err != nil {
			return err
		}
	}
	b.modifiers = append(b.modifiers, sub.modifiers...)
	return nil
}

// Clear drops every registered route, middleware, and modifier.
func (b *Builder) Clear() {
	b.tree.Clear()
	b.middlewares = nil
	b.modifiers = nil
}

// RouteInfo describes one registered route entry for introspection.
type RouteInfo struct {
	Filter  MethodFilter
	Pattern string
}

// Routes lists every registered route entry: paths in the trie's arena
// order (see trie.Trie.Routes), entries of one path in registration order.
func (b *Builder) Routes() []RouteInfo {
	return routeInfos(b.tree)
}

func routeInfos(t *trie.Trie[*routeSet]) []RouteInfo {
	var infos []RouteInfo
	for _, r := range t.Routes() {
		for _, e := range r.Payload.entries {
			infos = append(infos, RouteInfo{Filter: e.filter, Pattern: r.Pattern.String()})
		}
	}
	return infos
}

// Build seals the builder into an immutable Router bound to state.
//
// Every leaf handler is wrapped with the middleware stack in registration
// order — first registered innermost — and the modifier list is frozen on
// the router. The builder remains usable afterwards; the router shares
// nothing mutable with it.
func (b *Builder) Build(state *State) *Router {
	composed := trie.Map(b.tree, func(set *routeSet, _ pattern.Pattern) *routeSet {
		entries := make([]routeEntry, len(set.entries))
		for i, e := range set.entries {
			entries[i] = routeEntry{filter: e.filter, handler: compose(b.middlewares, e.handler)}
		}
		return &routeSet{entries: entries}
	})
	return &Router{
		tree:      composed,
		modifiers: slices.Clone(b.modifiers),
		state:     state,
		cfg:       b.cfg,
	}
}
