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
	"bytes"
	"io"
	"net/http"
	"strings"
)

// Response is the value a handler produces and modifiers rewrite on the way
// out: a status code, headers, and a body stream. It stays a plain value
// until the transport adapter writes it, so modifiers can still change
// status and headers after the handler has returned.
type Response struct {
	status int
	header http.Header
	body   io.Reader
}

// NewResponse returns a response with the given status, empty headers, and
// an empty body.
func NewResponse(status int) *Response {
	return &Response{
		status: status,
		header: make(http.Header),
		body:   EmptyBody(),
	}
}

// Text returns a text/plain response with the given status and body.
func Text(status int, body string) *Response {
	resp := NewResponse(status)
	resp.header.Set("Content-Type", "text/plain; charset=utf-8")
	resp.body = strings.NewReader(body)
	return resp
}

// Status returns the HTTP status code.
func (r *Response) Status() int { return r.status }

// SetStatus replaces the HTTP status code.
func (r *Response) SetStatus(status int) { r.status = status }

// Header returns the response headers for reading and mutation.
func (r *Response) Header() http.Header { return r.header }

// Body returns the body stream. Reading it consumes it.
func (r *Response) Body() io.Reader { return r.body }

// SetBody replaces the body stream. A nil body is replaced by an empty one.
func (r *Response) SetBody(body io.Reader) {
	if body == nil {
		body = EmptyBody()
	}
	r.body = body
}

// ReadBody drains the body and swaps in a replayable copy, returning the
// bytes. Middleware that rewrites bodies uses it to observe the inner
// handler's output without breaking downstream readers.
func (r *Response) ReadBody() ([]byte, error) {
	b, err := io.ReadAll(r.body)
	if err != nil {
		return nil, err
	}
	r.body = bytes.NewReader(b)
	return b, nil
}

// WriteTo writes status, headers, and body to a net/http response writer.
// It is the bridge the transport adapter uses; the core itself never touches
// the wire.
func (r *Response) WriteTo(w http.ResponseWriter) error {
	dst := w.Header()
	for k, vs := range r.header {
		dst[k] = vs
	}
	status := r.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, err := io.Copy(w, r.body)
	return err
}
