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
	"errors"
	"net/http"
	"strings"

	"rivaas.dev/dispatch/pattern"
)

// Handle is the request driver. For one request it performs, in order:
//
//  1. Match path and method. On ErrNotFound or ErrMethodNotAllowed a 404 or
//     405 response is returned immediately — modifiers see only requests
//     that routed.
//  2. Attach the URL captures to the request extensions as *UrlParams.
//  3. Run every modifier's before phase in registration order, collecting
//     the returned Modify values.
//  4. Call the composed handler. A handler error becomes a synthetic 500;
//     whether the error text reaches the body is the WithDebug policy.
//  5. Run the collected after phases in reverse order — for each modifier,
//     its after runs after the handler and after the after of every
//     later-registered modifier.
//
// Everything runs sequentially on the calling goroutine; there is no
// parallelism between modifier halves or between modifiers and the handler.
//
// Cancellation: ctx is checked between phases and threaded through every
// call. When ctx is done, Handle stops at the next phase boundary and
// returns ctx.Err() — modifiers whose before did not complete never get
// their after, and no synthetic response is produced.
func (r *Router) Handle(ctx context.Context, req *Request) (*Response, error) {
	var token any
	if r.cfg.observability != nil {
		var enriched context.Context
		enriched, token = r.cfg.observability.OnRequestStart(ctx, req)
		if enriched != nil {
			ctx = enriched
		}
	}

	params := acquireParams()
	defer releaseParams(params)

	h, pat, allowed, err := r.match(req.Method(), req.Path(), params)
	if err != nil {
		resp, sentinel := r.unrouted(ctx, req, allowed, err)
		r.observeEnd(ctx, token, req, resp, sentinel, nil)
		return resp, nil
	}

	Insert(req.Extensions(), params)

	mods := make([]Modify, 0, len(r.modifiers))
	for _, m := range r.modifiers {
		if err := ctx.Err(); err != nil {
			r.observeEnd(ctx, token, req, nil, pat.String(), err)
			return nil, err
		}
		if mod := m.Before(ctx, req, r.state); mod != nil {
			mods = append(mods, mod)
		}
	}

	if err := ctx.Err(); err != nil {
		r.observeEnd(ctx, token, req, nil, pat.String(), err)
		return nil, err
	}
	resp, herr := h.Handle(ctx, r.state, req)
	if herr != nil {
		if err := ctx.Err(); err != nil {
			r.observeEnd(ctx, token, req, nil, pat.String(), err)
			return nil, err
		}
		r.cfg.logger.ErrorContext(ctx, "handler failed",
			"method", req.Method(),
			"pattern", pat.String(),
			"error", herr,
		)
		resp = r.errorResponse(herr)
	}
	if resp == nil {
		resp = NewResponse(http.StatusOK)
	}

	for i := len(mods) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			r.observeEnd(ctx, token, req, nil, pat.String(), err)
			return nil, err
		}
		mods[i].After(ctx, resp, r.state)
	}

	r.observeEnd(ctx, token, req, resp, pat.String(), herr)
	return resp, nil
}

// unrouted builds the 404/405 response for a request that never entered the
// pipeline, honoring the custom not-found handler when one is configured.
func (r *Router) unrouted(ctx context.Context, req *Request, allowed MethodFilter, err error) (*Response, string) {
	if errors.Is(err, ErrMethodNotAllowed) {
		resp := Text(http.StatusMethodNotAllowed, "405 method not allowed")
		if allowed != 0 {
			resp.Header().Set("Allow", strings.Join(allowed.Methods(), ", "))
		}
		return resp, PatternMethodNotAllowed
	}

	if r.cfg.notFound != nil {
		resp, herr := r.cfg.notFound.Handle(ctx, r.state, req)
		if herr == nil && resp != nil {
			return resp, PatternNotFound
		}
		r.cfg.logger.ErrorContext(ctx, "not-found handler failed", "error", herr)
	}
	return Text(http.StatusNotFound, "404 page not found"), PatternNotFound
}

// errorResponse converts a handler error to the synthetic 500.
func (r *Router) errorResponse(err error) *Response {
	if r.cfg.debug {
		return Text(http.StatusInternalServerError, err.Error())
	}
	return Text(http.StatusInternalServerError, "500 internal server error")
}

func (r *Router) observeEnd(ctx context.Context, token any, req *Request, resp *Response, routePattern string, err error) {
	if r.cfg.observability == nil || token == nil {
		return
	}
	r.cfg.observability.OnRequestEnd(ctx, token, req, resp, routePattern, err)
}

// ServeHTTP adapts the driver to net/http: the transport produces requests
// and consumes one response per request, while routing and pipeline
// execution stay inside Handle.
//
// Failures to write the response are the transport's concern; they are
// logged and otherwise dropped.
func (r *Router) ServeHTTP(w http.ResponseWriter, hr *http.Request) {
	req := FromHTTP(hr)
	resp, err := r.Handle(hr.Context(), req)
	if err != nil {
		// Canceled mid-pipeline: the client is gone, there is nothing
		// useful to write.
		return
	}
	if err := resp.WriteTo(w); err != nil {
		r.cfg.logger.Debug("response write failed", "error", err)
	}
}

// interface conformance
var (
	_ http.Handler   = (*Router)(nil)
	_ pattern.Params = (*UrlParams)(nil)
)
