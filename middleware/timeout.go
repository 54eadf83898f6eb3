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
	"net/http"
	"time"

	"rivaas.dev/dispatch"
)

// TimeoutOption configures the Timeout middleware.
type TimeoutOption func(*timeoutConfig)

type timeoutConfig struct {
	response func() *dispatch.Response
}

// WithTimeoutResponse sets the response factory used when the deadline is
// exceeded. The default is a plain 504.
func WithTimeoutResponse(f func() *dispatch.Response) TimeoutOption {
	return func(cfg *timeoutConfig) {
		cfg.response = f
	}
}

// Timeout returns a middleware that races the inner handler against a
// timer. When the timer wins, the request context is canceled and a 504
// response is returned; the inner handler's eventual result is discarded.
//
// Handlers should respect context cancellation so the lost branch actually
// stops working. The goroutine running the inner handler is not killed —
// it drains in the background once it returns.
//
// Example:
//
//	_ = b.Middleware(middleware.Timeout(30 * time.Second))
func Timeout(d time.Duration, opts ...TimeoutOption) dispatch.Middleware {
	cfg := timeoutConfig{
		response: func() *dispatch.Response {
			return dispatch.Text(http.StatusGatewayTimeout, "504 gateway timeout")
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return dispatch.MiddlewareFunc(func(next dispatch.Handler) dispatch.Handler {
		return dispatch.HandlerFunc(func(ctx context.Context, state *dispatch.State, req *dispatch.Request) (*dispatch.Response, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()

			type result struct {
				resp *dispatch.Response
				err  error
			}
			// Buffered so the inner goroutine never blocks after a lost race.
			done := make(chan result, 1)
			go func() {
				resp, err := next.Handle(ctx, state, req)
				done <- result{resp: resp, err: err}
			}()

			select {
			case r := <-done:
				return r.resp, r.err
			case <-ctx.Done():
				if ctx.Err() == context.DeadlineExceeded {
					return cfg.response(), nil
				}
				return nil, ctx.Err()
			}
		})
	})
}
