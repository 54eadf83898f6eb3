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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	rec, err := NewPrometheusRecorder(WithRegisterer(registry))
	require.NoError(t, err)

	b := New(WithObservability(rec))
	require.NoError(t, b.GET("/users/:id", echoParam("id")))
	router := b.Build(NewState())

	handleOK(t, router, http.MethodGet, "/users/1")
	handleOK(t, router, http.MethodGet, "/users/2")
	handleOK(t, router, http.MethodGet, "/nope")

	// The route label is the pattern, so both user requests share a series.
	matched := rec.requestCount.WithLabelValues(http.MethodGet, "/users/:id", "200")
	assert.Equal(t, 2.0, testutil.ToFloat64(matched))

	missed := rec.requestCount.WithLabelValues(http.MethodGet, PatternNotFound, "404")
	assert.Equal(t, 1.0, testutil.ToFloat64(missed))

	// Both collectors are registered and exported.
	families, err := registry.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "http_requests_total")
	assert.Contains(t, names, "http_request_duration_seconds")
}

func TestPrometheusRecorderDuplicateRegistration(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	_, err := NewPrometheusRecorder(WithRegisterer(registry))
	require.NoError(t, err)

	_, err = NewPrometheusRecorder(WithRegisterer(registry))
	assert.Error(t, err)
}
