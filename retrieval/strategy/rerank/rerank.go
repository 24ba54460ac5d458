//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

// Package rerank implements the re-ranking strategy: passages are selected
// greedily by a weighted blend of relevance, intrinsic quality, and
// diversity against the passages accepted so far.
package rerank

import (
	"context"
	"fmt"

	"github.com/manualqa/manualqa-go/retrieval/lexical"
	"github.com/manualqa/manualqa-go/retrieval/strategy"
)

// Scoring weights and selection defaults. The weights sum to 1.0 so the
// combined score stays in [0, 1].
const (
	DefaultTopK = 4

	relevanceWeight = 0.5
	qualityWeight   = 0.3
	diversityWeight = 0.2
)

// Strategy is the re-ranking strategy.
type Strategy struct {
	topK int
}

// Option configures the rerank strategy.
type Option func(*Strategy)

// WithTopK sets the maximum number of passages to select.
func WithTopK(k int) Option {
	return func(s *Strategy) {
		if k > 0 {
			s.topK = k
		}
	}
}

// New creates a rerank strategy with options.
func New(opts ...Option) *Strategy {
	s := &Strategy{topK: DefaultTopK}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements the Strategy interface.
func (s *Strategy) Name() string { return "rerank" }

// Enhance implements the Strategy interface. Relevance and quality are fixed
// per passage; diversity is recomputed each round against the passages
// already accepted, so the first accepted passage always scores diversity
// 1.0 and later picks are penalized for redundancy.
func (s *Strategy) Enhance(ctx context.Context, query *strategy.Query, candidates []*strategy.Candidate) (*strategy.Output, error) {
	type entry struct {
		candidate *strategy.Candidate
		relevance float64
		quality   float64
	}
	remaining := make([]entry, 0, len(candidates))
	for _, c := range candidates {
		remaining = append(remaining, entry{
			candidate: c,
			relevance: lexical.Similarity(c.Text, query.Text),
			quality:   lexical.Quality(c.Text),
		})
	}

	var (
		sections      []*strategy.Section
		selectedTexts []string

		relevanceSum float64
		qualitySum   float64
		diversitySum float64
	)
	for len(sections) < s.topK && len(remaining) > 0 {
		bestIdx := -1
		bestScore := -1.0
		bestDiversity := 0.0
		for i, e := range remaining {
			diversity := lexical.Diversity(e.candidate.Text, selectedTexts)
			score := e.relevance*relevanceWeight + e.quality*qualityWeight + diversity*diversityWeight
			// Strictly-greater comparison keeps the earlier candidate on ties.
			if score > bestScore {
				bestIdx = i
				bestScore = score
				bestDiversity = diversity
			}
		}

		best := remaining[bestIdx]
		sections = append(sections, &strategy.Section{
			Text:       best.candidate.Text,
			Index:      best.candidate.Index,
			Score:      bestScore,
			Annotation: fmt.Sprintf("Relevance: %.2f, Quality: %.2f", best.relevance, best.quality),
		})
		selectedTexts = append(selectedTexts, best.candidate.Text)
		relevanceSum += best.relevance
		qualitySum += best.quality
		diversitySum += bestDiversity
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	metrics := map[string]any{
		"avg_relevance": 0.0,
		"avg_quality":   0.0,
		"avg_diversity": 0.0,
	}
	if n := float64(len(sections)); n > 0 {
		metrics["avg_relevance"] = relevanceSum / n
		metrics["avg_quality"] = qualitySum / n
		metrics["avg_diversity"] = diversitySum / n
	}

	return &strategy.Output{
		Context:  strategy.Render(sections),
		Sections: sections,
		Metrics:  metrics,
	}, nil
}
