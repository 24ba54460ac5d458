//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

// Package assist wires the retrieval enhancement engine into a
// question-answering flow: it retrieves candidate passages from an upstream
// retriever, enhances them, and assembles the prompt bundle for the
// language-model caller. Invoking the model itself is out of scope; the
// caller consumes the returned bundle.
package assist

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/manualqa/manualqa-go/log"
	"github.com/manualqa/manualqa-go/prompt"
	"github.com/manualqa/manualqa-go/retrieval"
	"github.com/manualqa/manualqa-go/telemetry"
)

// DefaultRetrieveLimit is the number of candidate passages requested from
// the upstream retriever per question.
const DefaultRetrieveLimit = 8

// Retriever supplies candidate passages for a query. It is the boundary to
// the upstream similarity search; no ranking guarantee is assumed, the
// enhancement engine re-ranks from scratch.
type Retriever interface {
	// Retrieve returns up to limit passages relevant to the query.
	Retrieve(ctx context.Context, query string, limit int) ([]string, error)
}

// Answer is the outcome of one question: the enhanced context, the
// assembled prompt bundle, and the retrieval metadata.
type Answer struct {
	// Question is the question as asked.
	Question string `json:"question"`

	// Context is the enhanced context blob used in the prompt.
	Context string `json:"context"`

	// Prompt is the assembled system/user prompt pair.
	Prompt *prompt.Bundle `json:"prompt"`

	// Retrieval is the full enhancement result, including metrics.
	Retrieval *retrieval.Result `json:"retrieval"`

	// OverrideApplied reports whether a prompt override matched the question.
	OverrideApplied bool `json:"override_applied"`
}

// Metrics is a snapshot of the engine's aggregated per-query metadata.
type Metrics struct {
	// TotalQueries is the number of questions processed.
	TotalQueries int `json:"total_queries"`

	// AvgChunksAnalyzed is the mean candidate count across questions.
	AvgChunksAnalyzed float64 `json:"avg_chunks_analyzed"`

	// StrategyUsage counts questions per strategy.
	StrategyUsage map[string]int `json:"strategy_usage"`

	// CurrentStrategy is the strategy used for new questions.
	CurrentStrategy string `json:"current_strategy"`

	// CurrentPromptStyle is the prompt style requested for new questions.
	CurrentPromptStyle string `json:"current_prompt_style"`
}

// Engine orchestrates retrieval, enhancement, and prompt assembly.
// It aggregates per-query metadata explicitly instead of relying on any
// ambient state, so callers own the numbers they read.
type Engine struct {
	retriever Retriever
	enhancer  *retrieval.Enhancer
	overrides *prompt.Overrides
	limit     int

	mu             sync.RWMutex
	strategy       string
	style          prompt.Style
	chainOfThought bool

	totalQueries  int
	totalChunks   int
	strategyUsage map[string]int
}

// Option configures the Engine.
type Option func(*Engine)

// WithRetriever sets the upstream retriever. Required for Ask.
func WithRetriever(r Retriever) Option {
	return func(e *Engine) { e.retriever = r }
}

// WithEnhancer replaces the default retrieval enhancer.
func WithEnhancer(enhancer *retrieval.Enhancer) Option {
	return func(e *Engine) {
		if enhancer != nil {
			e.enhancer = enhancer
		}
	}
}

// WithStrategy sets the initial retrieval strategy.
func WithStrategy(name string) Option {
	return func(e *Engine) { e.strategy = name }
}

// WithPromptStyle sets the initial prompt style.
func WithPromptStyle(style prompt.Style) Option {
	return func(e *Engine) { e.style = style }
}

// WithChainOfThought toggles chain-of-thought prompt assembly.
func WithChainOfThought(enabled bool) Option {
	return func(e *Engine) { e.chainOfThought = enabled }
}

// WithRetrieveLimit sets how many candidates are requested per question.
func WithRetrieveLimit(limit int) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.limit = limit
		}
	}
}

// WithPromptOverrides sets the prompt-override lookup table.
func WithPromptOverrides(o *prompt.Overrides) Option {
	return func(e *Engine) { e.overrides = o }
}

// New creates an assist engine with options.
func New(opts ...Option) *Engine {
	e := &Engine{
		enhancer:      retrieval.New(),
		limit:         DefaultRetrieveLimit,
		strategy:      retrieval.DefaultStrategy,
		style:         prompt.StyleDetailed,
		strategyUsage: make(map[string]int),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enhancer returns the engine's retrieval enhancer.
func (e *Engine) Enhancer() *retrieval.Enhancer {
	return e.enhancer
}

// SetStrategy switches the retrieval strategy for subsequent questions.
// Unknown names are rejected.
func (e *Engine) SetStrategy(name string) error {
	if !e.enhancer.Has(name) {
		return fmt.Errorf("unknown retrieval strategy %q", name)
	}
	e.mu.Lock()
	e.strategy = name
	e.mu.Unlock()
	return nil
}

// SetPromptStyle switches the prompt style for subsequent questions.
// Unknown styles are rejected.
func (e *Engine) SetPromptStyle(style prompt.Style) error {
	if !style.Valid() {
		return fmt.Errorf("unknown prompt style %q", style)
	}
	e.mu.Lock()
	e.style = style
	e.mu.Unlock()
	return nil
}

// Ask answers one question: retrieve candidates, enhance them with the
// current strategy, and assemble the prompt bundle.
func (e *Engine) Ask(ctx context.Context, question string) (*Answer, error) {
	if e.retriever == nil {
		return nil, fmt.Errorf("assist engine has no retriever configured")
	}

	e.mu.RLock()
	strategyName := e.strategy
	style := e.style
	chainOfThought := e.chainOfThought
	e.mu.RUnlock()

	ctx, span := telemetry.StartQuery(ctx, strategyName)
	defer span.End()

	passages, err := e.retriever.Retrieve(ctx, question, e.limit)
	if err != nil {
		return nil, fmt.Errorf("retrieve candidates: %w", err)
	}

	result, err := e.enhancer.GetEnhancedContext(ctx, question, passages, strategyName)
	if err != nil {
		return nil, fmt.Errorf("enhance context: %w", err)
	}

	var bundle *prompt.Bundle
	if chainOfThought {
		bundle = prompt.BuildChainOfThought(question, result.EnhancedContext)
	} else {
		bundle = prompt.Build(question, result.EnhancedContext, style)
	}
	overrideApplied := false
	if e.overrides != nil {
		overrideApplied = e.overrides.Apply(question, bundle)
	}

	span.SetAttributes(
		attribute.Int(telemetry.KeyChunksAnalyzed, result.ChunksAnalyzed),
		attribute.Int(telemetry.KeyTopChunks, result.TopChunks),
		attribute.String(telemetry.KeyQueryType, string(bundle.QueryType)),
	)
	telemetry.RecordQuery(ctx, result.Strategy)

	e.recordQuery(result)
	log.Debugf("answered question with strategy %s: %d/%d chunks selected",
		result.Strategy, result.TopChunks, result.ChunksAnalyzed)

	return &Answer{
		Question:        question,
		Context:         result.EnhancedContext,
		Prompt:          bundle,
		Retrieval:       result,
		OverrideApplied: overrideApplied,
	}, nil
}

func (e *Engine) recordQuery(result *retrieval.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.totalQueries++
	e.totalChunks += result.ChunksAnalyzed
	e.strategyUsage[result.Strategy]++
}

// Metrics returns a snapshot of the aggregated per-query metadata.
func (e *Engine) Metrics() Metrics {
	e.mu.RLock()
	defer e.mu.RUnlock()

	usage := make(map[string]int, len(e.strategyUsage))
	for k, v := range e.strategyUsage {
		usage[k] = v
	}
	avg := 0.0
	if e.totalQueries > 0 {
		avg = float64(e.totalChunks) / float64(e.totalQueries)
	}
	return Metrics{
		TotalQueries:       e.totalQueries,
		AvgChunksAnalyzed:  avg,
		StrategyUsage:      usage,
		CurrentStrategy:    e.strategy,
		CurrentPromptStyle: string(e.style),
	}
}
