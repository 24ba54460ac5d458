//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

// Package telemetry provides OpenTelemetry instrumentation for the assist
// engine. The global tracer and meter providers are used, so the host
// application controls exporters and sampling.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/manualqa/manualqa-go/log"
)

const scopeName = "github.com/manualqa/manualqa-go"

// Attribute keys recorded on spans and metrics.
const (
	KeyStrategy       = "manualqa.retrieval.strategy"
	KeyChunksAnalyzed = "manualqa.retrieval.chunks_analyzed"
	KeyTopChunks      = "manualqa.retrieval.top_chunks"
	KeyQueryType      = "manualqa.prompt.query_type"
)

var (
	tracer = otel.Tracer(scopeName)
	meter  = otel.Meter(scopeName)

	queryCounter metric.Int64Counter
)

func init() {
	var err error
	queryCounter, err = meter.Int64Counter(
		"manualqa_queries_total",
		metric.WithDescription("Total number of questions processed by the assist engine"),
	)
	if err != nil {
		log.Warnf("failed to create query counter: %v", err)
	}
}

// StartQuery starts a span covering one question/answer cycle.
func StartQuery(ctx context.Context, strategy string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "assist.Ask",
		trace.WithAttributes(attribute.String(KeyStrategy, strategy)))
}

// RecordQuery counts one processed question against its strategy.
func RecordQuery(ctx context.Context, strategy string) {
	if queryCounter == nil {
		return
	}
	queryCounter.Add(ctx, 1, metric.WithAttributes(attribute.String(KeyStrategy, strategy)))
}
