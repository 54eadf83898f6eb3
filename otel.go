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
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationScope names the meter and tracer owned by this module.
const instrumentationScope = "rivaas.dev/dispatch"

// OTelRecorder is an ObservabilityRecorder backed by OpenTelemetry: one
// server span per request plus http_requests_total and
// http_request_duration_seconds instruments, dimensioned by method, route
// pattern, and status code.
type OTelRecorder struct {
	tracer          trace.Tracer
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
}

// OTelOption configures NewOTelRecorder.
type OTelOption func(*otelConfig)

type otelConfig struct {
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
}

// WithMeterProvider sets the meter provider. Defaults to the global one.
func WithMeterProvider(provider metric.MeterProvider) OTelOption {
	return func(c *otelConfig) {
		c.meterProvider = provider
	}
}

// WithTracerProvider sets the tracer provider. Defaults to the global one.
func WithTracerProvider(provider trace.TracerProvider) OTelOption {
	return func(c *otelConfig) {
		c.tracerProvider = provider
	}
}

// NewOTelRecorder builds the recorder and its instruments.
//
// Example:
//
//	rec, err := dispatch.NewOTelRecorder()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	b := dispatch.New(dispatch.WithObservability(rec))
func NewOTelRecorder(opts ...OTelOption) (*OTelRecorder, error) {
	cfg := otelConfig{
		meterProvider:  otel.GetMeterProvider(),
		tracerProvider: otel.GetTracerProvider(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	meter := cfg.meterProvider.Meter(instrumentationScope)

	requestCount, err := meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of dispatched HTTP requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}
	requestDuration, err := meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request duration histogram: %w", err)
	}

	return &OTelRecorder{
		tracer:          cfg.tracerProvider.Tracer(instrumentationScope),
		requestCount:    requestCount,
		requestDuration: requestDuration,
	}, nil
}

// otelToken is the per-request state between the two lifecycle hooks.
type otelToken struct {
	span  trace.Span
	start time.Time
}

// OnRequestStart opens the server span. The enriched context carries it into
// modifiers and the handler for propagation to downstream calls.
func (o *OTelRecorder) OnRequestStart(ctx context.Context, req *Request) (context.Context, any) {
	ctx, span := o.tracer.Start(ctx, req.Method()+" "+req.Path(),
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method()),
			attribute.String("url.path", req.Path()),
		),
	)
	return ctx, &otelToken{span: span, start: time.Now()}
}

// OnRequestEnd records the instruments and finishes the span, renaming it to
// the matched route pattern to keep span names low-cardinality.
func (o *OTelRecorder) OnRequestEnd(ctx context.Context, token any, req *Request, resp *Response, routePattern string, err error) {
	t, ok := token.(*otelToken)
	if !ok {
		return
	}

	status := 0
	if resp != nil {
		status = resp.Status()
	}
	attrs := []attribute.KeyValue{
		attribute.String("http.request.method", req.Method()),
		attribute.String("http.route", routePattern),
		attribute.Int("http.response.status_code", status),
	}

	o.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	o.requestDuration.Record(ctx, time.Since(t.start).Seconds(), metric.WithAttributes(attrs...))

	t.span.SetName(req.Method() + " " + routePattern)
	t.span.SetAttributes(attrs...)
	if err != nil {
		t.span.RecordError(err)
		t.span.SetStatus(codes.Error, err.Error())
	}
	t.span.End()
}
