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
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder is an ObservabilityRecorder that exports request count
// and duration as Prometheus collectors, labeled by method, route pattern,
// and status code.
type PrometheusRecorder struct {
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// PrometheusOption configures NewPrometheusRecorder.
type PrometheusOption func(*prometheusConfig)

type prometheusConfig struct {
	registerer prometheus.Registerer
	buckets    []float64
}

// WithRegisterer sets the registry the collectors register with. Defaults to
// prometheus.DefaultRegisterer.
func WithRegisterer(reg prometheus.Registerer) PrometheusOption {
	return func(c *prometheusConfig) {
		c.registerer = reg
	}
}

// WithDurationBuckets overrides the histogram buckets for request duration.
func WithDurationBuckets(buckets []float64) PrometheusOption {
	return func(c *prometheusConfig) {
		c.buckets = buckets
	}
}

// NewPrometheusRecorder builds the recorder and registers its collectors.
func NewPrometheusRecorder(opts ...PrometheusOption) (*PrometheusRecorder, error) {
	cfg := prometheusConfig{
		registerer: prometheus.DefaultRegisterer,
		buckets:    prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	rec := &PrometheusRecorder{
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of dispatched HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: cfg.buckets,
		}, []string{"method", "route", "status"}),
	}

	if err := cfg.registerer.Register(rec.requestCount); err != nil {
		return nil, err
	}
	if err := cfg.registerer.Register(rec.requestDuration); err != nil {
		return nil, err
	}
	return rec, nil
}

// OnRequestStart records the start time as the per-request token.
func (p *PrometheusRecorder) OnRequestStart(ctx context.Context, _ *Request) (context.Context, any) {
	return ctx, time.Now()
}

// OnRequestEnd observes count and duration under the route pattern.
func (p *PrometheusRecorder) OnRequestEnd(_ context.Context, token any, req *Request, resp *Response, routePattern string, _ error) {
	start, ok := token.(time.Time)
	if !ok {
		return
	}
	status := 0
	if resp != nil {
		status = resp.Status()
	}
	labels := prometheus.Labels{
		"method": req.Method(),
		"route":  routePattern,
		"status": strconv.Itoa(status),
	}
	p.requestCount.With(labels).Inc()
	p.requestDuration.With(labels).Observe(time.Since(start).Seconds())
}
