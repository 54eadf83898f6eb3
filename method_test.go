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
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		want   MethodFilter
	}{
		{http.MethodGet, MethodGet},
		{http.MethodPost, MethodPost},
		{http.MethodPut, MethodPut},
		{http.MethodPatch, MethodPatch},
		{http.MethodDelete, MethodDelete},
		{http.MethodHead, MethodHead},
		{http.MethodOptions, MethodOptions},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.method)
		require.NoError(t, err, tt.method)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseMethodUnknown(t *testing.T) {
	t.Parallel()

	for _, method := range []string{"TRACE", "CONNECT", "get", "", "BREW"} {
		_, err := ParseMethod(method)
		assert.ErrorIs(t, err, ErrUnknownMethod, "method %q", method)
	}
}

func TestMethodFilterContains(t *testing.T) {
	t.Parallel()

	combined := MethodGet | MethodPost

	assert.True(t, combined.Contains(MethodGet))
	assert.True(t, combined.Contains(MethodPost))
	assert.True(t, combined.Contains(MethodGet|MethodPost))
	assert.False(t, combined.Contains(MethodPut))
	assert.False(t, combined.Contains(MethodGet|MethodPut))

	// The empty query is never contained: a route entry cannot serve "no
	// method".
	assert.False(t, combined.Contains(0))

	assert.True(t, AnyMethod.Contains(MethodDelete))
	assert.True(t, AnyMethod.Contains(AnyMethod))
}

func TestMethodFilterString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "GET", MethodGet.String())
	assert.Equal(t, "GET|POST", (MethodGet | MethodPost).String())
	assert.Equal(t, "GET|POST|PUT|PATCH|DELETE|HEAD|OPTIONS", AnyMethod.String())
	assert.Equal(t, "", MethodFilter(0).String())

	assert.Equal(t, []string{"GET", "DELETE"}, (MethodGet | MethodDelete).Methods())
}
