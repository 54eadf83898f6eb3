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

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"runtime"

	"rivaas.dev/dispatch"
)

// RecoveryOption configures the Recovery middleware.
type RecoveryOption func(*recoveryConfig)

type recoveryConfig struct {
	logger    *slog.Logger
	stackSize int
}

// WithRecoveryLogger sets the logger panics are reported to. The default
// discards them.
func WithRecoveryLogger(logger *slog.Logger) RecoveryOption {
	return func(cfg *recoveryConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithStackSize sets the maximum captured stack trace size in bytes.
// Default: 4KB.
func WithStackSize(size int) RecoveryOption {
	return func(cfg *recoveryConfig) {
		cfg.stackSize = size
	}
}

// Recovery returns a middleware that converts handler panics into 500
// responses. Register it first so it ends up innermost, catching panics
// before they unwind through later-registered middleware.
//
// A panicking handler otherwise takes the whole request task down; with
// Recovery the panic becomes an ordinary 500 response and no error is
// returned.
//
// Example:
//
//	_ = b.Middleware(middleware.Recovery(
//	    middleware.WithRecoveryLogger(slog.Default()),
//	))
func Recovery(opts ...RecoveryOption) dispatch.Middleware {
	cfg := recoveryConfig{
		logger:    dispatch.NoopLogger(),
		stackSize: 4 << 10,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return dispatch.MiddlewareFunc(func(next dispatch.Handler) dispatch.Handler {
		return dispatch.HandlerFunc(func(ctx context.Context, state *dispatch.State, req *dispatch.Request) (resp *dispatch.Response, err error) {
			defer func() {
				if rec := recover(); rec != nil {
					stack := make([]byte, cfg.stackSize)
					stack = stack[:runtime.Stack(stack, false)]
					cfg.logger.ErrorContext(ctx, "panic recovered",
						"panic", rec,
						"path", req.Path(),
						"stack", string(stack),
					)
					resp = dispatch.Text(http.StatusInternalServerError, "500 internal server error")
					err = nil
				}
			}()
			return next.Handle(ctx, state, req)
		})
	})
}
