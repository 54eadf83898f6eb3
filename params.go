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

import "sync"

// maxInlineParams is the number of bindings stored in the fixed arrays
// before overflowing to a map. Most routes have well under 8 parameters, so
// the common case never allocates.
const maxInlineParams = 8

// UrlParams holds the parameter and wildcard captures of a matched route.
// The driver inserts it into the request extensions before modifiers run, so
// handlers retrieve it with dispatch.Get[*dispatch.UrlParams](req.Extensions())
// or the Request.Param shortcut.
//
// Storage is hybrid: the first 8 bindings live in fixed-size arrays and any
// overflow goes to a map. If a route needs more than 8 parameters, consider
// refactoring the API design.
//
// ⚠️ MEMORY SAFETY: UrlParams objects are pooled and reused. Do not retain a
// reference beyond the request lifetime; copy values out instead.
type UrlParams struct {
	keys     [maxInlineParams]string
	values   [maxInlineParams]string
	count    int
	overflow map[string]string
}

// Set binds name to value, overwriting an existing binding of the same name.
// It implements pattern.Params so the trie can write captures directly.
func (p *UrlParams) Set(name, value string) {
	for i := range p.count {
		if p.keys[i] == name {
			p.values[i] = value
			return
		}
	}
	if p.overflow != nil {
		if _, ok := p.overflow[name]; ok {
			p.overflow[name] = value
			return
		}
	}
	if p.count < maxInlineParams {
		p.keys[p.count] = name
		p.values[p.count] = value
		p.count++
		return
	}
	if p.overflow == nil {
		p.overflow = make(map[string]string, 2)
	}
	p.overflow[name] = value
}

// Get returns the value bound to name, or "" when absent.
func (p *UrlParams) Get(name string) string {
	v, _ := p.Lookup(name)
	return v
}

// Lookup returns the value bound to name and whether it exists.
func (p *UrlParams) Lookup(name string) (string, bool) {
	for i := range p.count {
		if p.keys[i] == name {
			return p.values[i], true
		}
	}
	if p.overflow != nil {
		v, ok := p.overflow[name]
		return v, ok
	}
	return "", false
}

// Len returns the number of bindings.
func (p *UrlParams) Len() int { return p.count + len(p.overflow) }

// Names returns the bound names in insertion order. Overflow bindings (past
// the inline capacity) follow in map order.
func (p *UrlParams) Names() []string {
	names := make([]string, 0, p.Len())
	names = append(names, p.keys[:p.count]...)
	for name := range p.overflow {
		names = append(names, name)
	}
	return names
}

// reset clears the bindings for pooled reuse. The inline arrays are zeroed
// explicitly so the backing strings become collectable.
func (p *UrlParams) reset() {
	for i := range p.count {
		p.keys[i] = ""
		p.values[i] = ""
	}
	p.count = 0
	p.overflow = nil
}

var paramsPool = sync.Pool{
	New: func() any { return &UrlParams{} },
}

// acquireParams retrieves a cleared UrlParams from the pool.
func acquireParams() *UrlParams {
	p, ok := paramsPool.Get().(*UrlParams)
	if !ok {
		// Pool corruption: something Put() a foreign type. Should never
		// happen in normal operation.
		panic("dispatch: pool corruption - paramsPool returned non-UrlParams type")
	}
	return p
}

// releaseParams returns a UrlParams to the pool.
func releaseParams(p *UrlParams) {
	p.reset()
	paramsPool.Put(p)
}
