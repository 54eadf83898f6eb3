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

// Package requestid assigns every routed request a correlation ID.
//
// The before phase reuses the client-supplied X-Request-ID (when allowed) or
// generates a UUID, stores it in the request extensions for handlers, and
// the after phase echoes it on the response so clients can correlate.
package requestid

import (
	"context"

	"github.com/google/uuid"

	"rivaas.dev/dispatch"
)

// ID is the extension type carrying the request's correlation ID. Handlers
// fetch it with dispatch.Get[requestid.ID](req.Extensions()).
type ID string

// defaultHeader is the conventional request ID header.
const defaultHeader = "X-Request-ID"

// Option configures the request ID modifier.
type Option func(*config)

type config struct {
	header        string
	generator     func() string
	allowClientID bool
}

// WithHeader overrides the header name used on both request and response.
func WithHeader(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.header = name
		}
	}
}

// WithGenerator replaces the UUID generator.
func WithGenerator(f func() string) Option {
	return func(cfg *config) {
		if f != nil {
			cfg.generator = f
		}
	}
}

// WithAllowClientID controls whether a client-supplied ID is trusted and
// propagated. Default: true. Disable on public edges where the header could
// be used to pollute logs.
func WithAllowClientID(allow bool) Option {
	return func(cfg *config) {
		cfg.allowClientID = allow
	}
}

// New returns the request ID modifier.
//
// Example:
//
//	b.Modifier(requestid.New())
func New(opts ...Option) dispatch.Modifier {
	cfg := config{
		header:        defaultHeader,
		generator:     uuid.NewString,
		allowClientID: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &modifier{cfg: cfg}
}

type modifier struct {
	cfg config
}

// Before resolves the ID, stamps the request header, and parks the ID in the
// extensions for handlers.
func (m *modifier) Before(_ context.Context, req *dispatch.Request, _ *dispatch.State) dispatch.Modify {
	id := ""
	if m.cfg.allowClientID {
		id = req.Header().Get(m.cfg.header)
	}
	if id == "" {
		id = m.cfg.generator()
	}
	req.Header().Set(m.cfg.header, id)
	dispatch.Insert(req.Extensions(), ID(id))
	return &stamp{header: m.cfg.header, id: id}
}

// stamp echoes the ID on the response.
type stamp struct {
	header string
	id     string
}

// After sets the response header.
func (s *stamp) After(_ context.Context, resp *dispatch.Response, _ *dispatch.State) {
	resp.Header().Set(s.header, s.id)
}
