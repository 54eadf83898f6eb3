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

import "reflect"

// Extensions is an erased map keyed by the runtime type of the stored value:
// one slot per Go type. It is the channel by which modifiers hand data to
// handlers (url params, a parsed cookie jar, a session id) and by which the
// application state exposes process-wide services.
//
// Thread safety: Extensions is NOT thread-safe. A request's extension map is
// single-owner and moves with the request; state extensions must be fully
// populated before the router starts serving and treated as read-only
// afterwards.
type Extensions struct {
	values map[reflect.Type]any
}

// Len returns the number of stored values.
func (e *Extensions) Len() int { return len(e.values) }

// Insert stores value under its type T, replacing any previous value of the
// same type.
func Insert[T any](e *Extensions, value T) {
	if e.values == nil {
		e.values = make(map[reflect.Type]any, 4)
	}
	e.values[reflect.TypeFor[T]()] = value
}

// Get returns the value stored under type T.
func Get[T any](e *Extensions) (T, bool) {
	v, ok := e.values[reflect.TypeFor[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Remove drops the value stored under type T, reporting whether one existed.
func Remove[T any](e *Extensions) bool {
	key := reflect.TypeFor[T]()
	if _, ok := e.values[key]; !ok {
		return false
	}
	delete(e.values, key)
	return true
}

// State carries the process-wide services handlers and modifiers share: a
// session store, configuration, database handles. It is populated once
// before Build and shared by reference across all request tasks, so values
// placed in it must be safe for concurrent use.
type State struct {
	ext Extensions
}

// NewState returns an empty State.
func NewState() *State { return &State{} }

// Extensions returns the state's typed extension map.
func (s *State) Extensions() *Extensions { return &s.ext }
