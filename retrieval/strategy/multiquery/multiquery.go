//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

// Package multiquery implements the multi-query expansion strategy: the
// query is expanded into paraphrase variants and each passage is scored by
// its best similarity across all variants.
package multiquery

import (
	"context"
	"fmt"
	"sort"

	"github.com/manualqa/manualqa-go/retrieval/expand"
	"github.com/manualqa/manualqa-go/retrieval/lexical"
	"github.com/manualqa/manualqa-go/retrieval/strategy"
)

// DefaultTopK is the default number of passages to select.
const DefaultTopK = 5

// Strategy is the multi-query expansion strategy.
type Strategy struct {
	topK int
}

// Option configures the multi-query strategy.
type Option func(*Strategy)

// WithTopK sets the maximum number of passages to select.
func WithTopK(k int) Option {
	return func(s *Strategy) {
		if k > 0 {
			s.topK = k
		}
	}
}

// New creates a multi-query strategy with options.
func New(opts ...Option) *Strategy {
	s := &Strategy{topK: DefaultTopK}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements the Strategy interface.
func (s *Strategy) Name() string { return "multi_query" }

// Enhance implements the Strategy interface.
func (s *Strategy) Enhance(ctx context.Context, query *strategy.Query, candidates []*strategy.Candidate) (*strategy.Output, error) {
	variants := expand.Expand(query.Text)

	type scored struct {
		candidate   *strategy.Candidate
		score       float64
		bestVariant string
	}
	scoredCandidates := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		best := scored{candidate: c, score: 0.0, bestVariant: query.Text}
		for _, variant := range variants {
			// Strictly-greater comparison keeps the earliest variant on
			// equal scores; the original query is always first.
			if score := lexical.Similarity(c.Text, variant); score > best.score {
				best.score = score
				best.bestVariant = variant
			}
		}
		scoredCandidates = append(scoredCandidates, best)
	}

	sort.SliceStable(scoredCandidates, func(i, j int) bool {
		return scoredCandidates[i].score > scoredCandidates[j].score
	})
	if len(scoredCandidates) > s.topK {
		scoredCandidates = scoredCandidates[:s.topK]
	}

	sections := make([]*strategy.Section, 0, len(scoredCandidates))
	variantsUsed := make(map[string]struct{})
	for _, sc := range scoredCandidates {
		sections = append(sections, &strategy.Section{
			Text:       sc.candidate.Text,
			Index:      sc.candidate.Index,
			Score:      sc.score,
			Annotation: fmt.Sprintf("Best Match: '%s', Score: %.2f", sc.bestVariant, sc.score),
		})
		variantsUsed[sc.bestVariant] = struct{}{}
	}

	return &strategy.Output{
		Context:  strategy.Render(sections),
		Sections: sections,
		Metrics: map[string]any{
			"query_variations":   variants,
			"variation_coverage": len(variantsUsed),
		},
	}, nil
}
