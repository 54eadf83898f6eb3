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

// Package accesslog provides a zerolog-backed access logging modifier.
//
// It is a modifier, not middleware: it brackets every routed request on the
// router regardless of which route matched, capturing the start time in the
// before phase and emitting one canonical log line in the after phase.
package accesslog

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"rivaas.dev/dispatch"
)

// Option configures the access log modifier.
type Option func(*config)

type config struct {
	logger       zerolog.Logger
	excludePaths map[string]struct{}
}

// WithLogger sets the zerolog logger lines are written to. The default is
// zerolog.Nop().
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithExcludePaths suppresses logging for exact request paths, typically
// health and metrics endpoints.
func WithExcludePaths(paths ...string) Option {
	return func(cfg *config) {
		for _, p := range paths {
			cfg.excludePaths[p] = struct{}{}
		}
	}
}

// New returns the access logging modifier.
//
// Example:
//
//	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
//	b.Modifier(accesslog.New(
//	    accesslog.WithLogger(logger),
//	    accesslog.WithExcludePaths("/health"),
//	))
func New(opts ...Option) dispatch.Modifier {
	cfg := config{
		logger:       zerolog.Nop(),
		excludePaths: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &modifier{cfg: cfg}
}

type modifier struct {
	cfg config
}

// Before captures the request line and start time. Excluded paths return a
// nil Modify, skipping the after phase entirely.
func (m *modifier) Before(_ context.Context, req *dispatch.Request, _ *dispatch.State) dispatch.Modify {
	if _, excluded := m.cfg.excludePaths[req.Path()]; excluded {
		return nil
	}
	return &entry{
		logger: &m.cfg.logger,
		method: req.Method(),
		path:   req.Path(),
		ip:     req.RealIP(),
		start:  time.Now(),
	}
}

// entry is the per-request state between the two phases.
type entry struct {
	logger *zerolog.Logger
	method string
	path   string
	ip     string
	start  time.Time
}

// After emits the canonical access line with the final status.
func (e *entry) After(_ context.Context, resp *dispatch.Response, _ *dispatch.State) {
	e.logger.Info().
		Str("method", e.method).
		Str("path", e.path).
		Str("ip", e.ip).
		Int("status", resp.Status()).
		Dur("duration", time.Since(e.start)).
		Msg("request")
}
