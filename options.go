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
	"io"
	"log/slog"
)

// noopLogger is the singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// NoopLogger returns the singleton no-op logger.
func NoopLogger() *slog.Logger { return noopLogger }

// Option defines functional options for builder and router configuration.
type Option func(*config)

// config carries the settings a Builder hands to the Router it builds.
type config struct {
	debug         bool
	logger        *slog.Logger
	observability ObservabilityRecorder
	notFound      Handler
}

func defaultConfig() config {
	return config{logger: noopLogger}
}

// WithDebug controls whether handler error messages reach the client.
//
// In debug mode the synthetic 500 response carries the error text; in
// production mode (the default) the body is opaque and the error is only
// logged.
func WithDebug(enable bool) Option {
	return func(c *config) {
		c.debug = enable
	}
}

// WithLogger sets the structured logger for driver diagnostics (handler
// failures, write errors). The default discards everything.
//
// Example:
//
//	b := dispatch.New(dispatch.WithLogger(slog.Default()))
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger == nil {
			logger = noopLogger
		}
		c.logger = logger
	}
}

// WithObservability sets the unified observability recorder for the router.
// The recorder sees every request with its matched route pattern, which
// keeps metric cardinality bounded. Pass nil to disable.
//
// Example:
//
//	rec, err := dispatch.NewOTelRecorder(dispatch.WithMeterProvider(provider))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	b := dispatch.New(dispatch.WithObservability(rec))
func WithObservability(recorder ObservabilityRecorder) Option {
	return func(c *config) {
		c.observability = recorder
	}
}

// WithNotFound sets a custom handler for requests that match no route,
// replacing the default plain 404. The handler runs without middleware or
// modifiers: an unrouted request never enters the pipeline.
func WithNotFound(handler Handler) Option {
	return func(c *config) {
		c.notFound = handler
	}
}
