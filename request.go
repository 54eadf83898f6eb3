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
	"net/http"
	"net/url"
	"strings"
)

// emptyBody is the shared no-op body.
type emptyBody struct{}

func (emptyBody) Read([]byte) (int, error) { return 0, io.EOF }
func (emptyBody) Close() error             { return nil }

// EmptyBody returns a body that reads as immediately exhausted. Requests and
// responses constructed without a body use it, so Body is never nil.
func EmptyBody() io.ReadCloser { return emptyBody{} }

// Request is the dispatch core's view of one HTTP request: method, URL,
// headers, body, and the typed extension map that moves with it.
//
// Only the URL path participates in routing; query and fragment handling is
// left to the host's URI parsing.
//
// Thread safety: a Request is bound to a single request task and must not be
// shared across goroutines.
type Request struct {
	method string
	url    *url.URL
	header http.Header
	body   io.ReadCloser
	ext    Extensions
}

// NewRequest builds a request from a method and a request target. The target
// is parsed with net/url; a nil body is replaced by EmptyBody.
func NewRequest(method, target string, body io.ReadCloser) (*Request, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	if body == nil {
		body = EmptyBody()
	}
	return &Request{
		method: method,
		url:    u,
		header: make(http.Header),
		body:   body,
	}, nil
}

// FromHTTP adapts a net/http request for the driver. The URL, headers, and
// body are referenced, not copied; the extension map starts empty.
func FromHTTP(r *http.Request) *Request {
	body := r.Body
	if body == nil {
		body = EmptyBody()
	}
	return &Request{
		method: r.Method,
		url:    r.URL,
		header: r.Header,
		body:   body,
	}
}

// Method returns the HTTP method, e.g. "GET".
func (r *Request) Method() string { return r.method }

// URL returns the request URL.
func (r *Request) URL() *url.URL { return r.url }

// Path returns the URL path routed by the dispatcher.
func (r *Request) Path() string { return r.url.Path }

// Header returns the request headers. The map may be mutated by modifiers
// during their before phase.
func (r *Request) Header() http.Header { return r.header }

// Body returns the request body. The caller owns the read position.
func (r *Request) Body() io.ReadCloser { return r.body }

// SetBody replaces the request body. A nil body is replaced by EmptyBody.
func (r *Request) SetBody(body io.ReadCloser) {
	if body == nil {
		body = EmptyBody()
	}
	r.body = body
}

// Extensions returns the request's typed extension map. Modifiers attach
// values here for handlers to pick up.
func (r *Request) Extensions() *Extensions { return &r.ext }

// Param returns the URL parameter bound under name by the matched route, or
// "" when the request carries no such binding. It is shorthand for fetching
// *UrlParams from the extensions.
func (r *Request) Param(name string) string {
	params, ok := Get[*UrlParams](&r.ext)
	if !ok {
		return ""
	}
	return params.Get(name)
}

// RealIP returns the client IP, honoring X-Forwarded-For and X-Real-IP set
// by trusted proxies ahead of the transport.
func (r *Request) RealIP() string {
	if xff := r.header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	return r.header.Get("X-Real-IP")
}
