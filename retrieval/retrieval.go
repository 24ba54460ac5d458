//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

// Package retrieval provides the retrieval enhancement engine. It takes the
// candidate passages returned by an upstream similarity search and
// re-scores, re-ranks, filters, or expands them into an annotated context
// blob ready for downstream prompting.
//
// The engine is a pure function of its inputs: it keeps no state across
// calls beyond the strategy table built at construction, performs no I/O,
// and is safe for concurrent use.
package retrieval

import (
	"context"
	"fmt"

	"github.com/manualqa/manualqa-go/log"
	"github.com/manualqa/manualqa-go/retrieval/strategy"
	"github.com/manualqa/manualqa-go/retrieval/strategy/hybrid"
	"github.com/manualqa/manualqa-go/retrieval/strategy/multiquery"
	"github.com/manualqa/manualqa-go/retrieval/strategy/rerank"
	"github.com/manualqa/manualqa-go/retrieval/strategy/semanticfilter"
)

// DefaultStrategy is the fallback used when the caller names an unknown or
// empty strategy. The permissive fallback is deliberate: strategy selection
// is a tuning knob, not a correctness input.
const DefaultStrategy = "hybrid"

// Result is the terminal artifact of one enhancement run.
type Result struct {
	// EnhancedContext is the rendered, annotated context blob.
	EnhancedContext string `json:"enhanced_context"`

	// Strategy is the name of the strategy that actually ran.
	Strategy string `json:"strategy"`

	// ChunksAnalyzed is the number of candidate passages supplied.
	ChunksAnalyzed int `json:"chunks_analyzed"`

	// TopChunks is the number of passages selected.
	TopChunks int `json:"top_chunks"`

	// Sections are the selected passages in rank order.
	Sections []*strategy.Section `json:"sections,omitempty"`

	// Metrics holds the strategy-specific aggregate metrics.
	Metrics map[string]any `json:"metrics,omitempty"`
}

// Enhancer dispatches enhancement requests to a fixed table of strategies.
type Enhancer struct {
	strategies map[string]strategy.Strategy
}

// Option configures the Enhancer.
type Option func(*config)

type config struct {
	hybridTopK        int
	rerankTopK        int
	multiQueryTopK    int
	semanticTopK      int
	semanticThreshold float64
	extraStrategies   []strategy.Strategy
}

// WithHybridTopK overrides the hybrid strategy's selection size.
func WithHybridTopK(k int) Option {
	return func(c *config) { c.hybridTopK = k }
}

// WithRerankTopK overrides the rerank strategy's selection size.
func WithRerankTopK(k int) Option {
	return func(c *config) { c.rerankTopK = k }
}

// WithMultiQueryTopK overrides the multi-query strategy's selection size.
func WithMultiQueryTopK(k int) Option {
	return func(c *config) { c.multiQueryTopK = k }
}

// WithSemanticFilterTopK overrides the semantic filter's selection size.
func WithSemanticFilterTopK(k int) Option {
	return func(c *config) { c.semanticTopK = k }
}

// WithSemanticFilterThreshold overrides the semantic filter's overlap threshold.
func WithSemanticFilterThreshold(threshold float64) Option {
	return func(c *config) { c.semanticThreshold = threshold }
}

// WithStrategy registers an additional strategy, or replaces a built-in one
// that shares its name.
func WithStrategy(s strategy.Strategy) Option {
	return func(c *config) { c.extraStrategies = append(c.extraStrategies, s) }
}

// New creates an Enhancer with the four built-in strategies.
func New(opts ...Option) *Enhancer {
	cfg := &config{
		hybridTopK:        hybrid.DefaultTopK,
		rerankTopK:        rerank.DefaultTopK,
		multiQueryTopK:    multiquery.DefaultTopK,
		semanticTopK:      semanticfilter.DefaultTopK,
		semanticThreshold: semanticfilter.DefaultThreshold,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	builtins := []strategy.Strategy{
		hybrid.New(hybrid.WithTopK(cfg.hybridTopK)),
		rerank.New(rerank.WithTopK(cfg.rerankTopK)),
		multiquery.New(multiquery.WithTopK(cfg.multiQueryTopK)),
		semanticfilter.New(
			semanticfilter.WithTopK(cfg.semanticTopK),
			semanticfilter.WithThreshold(cfg.semanticThreshold),
		),
	}
	strategies := make(map[string]strategy.Strategy, len(builtins)+len(cfg.extraStrategies))
	for _, s := range builtins {
		strategies[s.Name()] = s
	}
	for _, s := range cfg.extraStrategies {
		strategies[s.Name()] = s
	}
	return &Enhancer{strategies: strategies}
}

// Strategies returns the registered strategy names.
func (e *Enhancer) Strategies() []string {
	names := make([]string, 0, len(e.strategies))
	for name := range e.strategies {
		names = append(names, name)
	}
	return names
}

// Has reports whether a strategy with the given name is registered.
func (e *Enhancer) Has(name string) bool {
	_, ok := e.strategies[name]
	return ok
}

// GetEnhancedContext runs the named strategy over the candidate passages.
// An unknown or empty strategy name falls back to the default strategy.
// Zero candidates yield an empty context with zero-valued counts, not an
// error.
func (e *Enhancer) GetEnhancedContext(ctx context.Context, query string, passages []string, strategyName string) (*Result, error) {
	s, ok := e.strategies[strategyName]
	if !ok {
		if strategyName != "" {
			log.Debugf("unknown retrieval strategy %q, falling back to %q", strategyName, DefaultStrategy)
		}
		s = e.strategies[DefaultStrategy]
	}

	candidates := make([]*strategy.Candidate, len(passages))
	for i, p := range passages {
		candidates[i] = &strategy.Candidate{Text: p, Index: i}
	}

	out, err := s.Enhance(ctx, &strategy.Query{Text: query}, candidates)
	if err != nil {
		return nil, fmt.Errorf("strategy %s: %w", s.Name(), err)
	}

	return &Result{
		EnhancedContext: out.Context,
		Strategy:        s.Name(),
		ChunksAnalyzed:  len(passages),
		TopChunks:       len(out.Sections),
		Sections:        out.Sections,
		Metrics:         out.Metrics,
	}, nil
}
