//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

// Package hybrid implements the hybrid retrieval strategy: a weighted blend
// of query-keyword coverage, word-overlap similarity, and a length bonus.
package hybrid

import (
	"context"
	"fmt"
	"sort"

	"github.com/manualqa/manualqa-go/retrieval/lexical"
	"github.com/manualqa/manualqa-go/retrieval/strategy"
)

// Scoring weights and selection defaults. The weights sum to 1.0 so the
// combined score stays in [0, 1].
const (
	DefaultTopK = 5

	keywordWeight    = 0.4
	similarityWeight = 0.5
	lengthWeight     = 0.1

	// Passages in this length band receive the full length bonus.
	minPreferredLength = 100
	maxPreferredLength = 500

	fullLengthBonus    = 1.0
	partialLengthBonus = 0.8
)

// Strategy is the hybrid retrieval strategy.
type Strategy struct {
	topK int
}

// Option configures the hybrid strategy.
type Option func(*Strategy)

// WithTopK sets the maximum number of passages to select.
func WithTopK(k int) Option {
	return func(s *Strategy) {
		if k > 0 {
			s.topK = k
		}
	}
}

// New creates a hybrid strategy with options.
func New(opts ...Option) *Strategy {
	s := &Strategy{topK: DefaultTopK}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements the Strategy interface.
func (s *Strategy) Name() string { return "hybrid" }

// Enhance implements the Strategy interface.
func (s *Strategy) Enhance(ctx context.Context, query *strategy.Query, candidates []*strategy.Candidate) (*strategy.Output, error) {
	keywords := lexical.Keywords(query.Text)

	type scored struct {
		candidate *strategy.Candidate
		score     float64
		matches   int
	}
	scoredCandidates := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		matches := lexical.CountKeywordMatches(c.Text, keywords)
		keywordRatio := 0.0
		if len(keywords) > 0 {
			keywordRatio = float64(matches) / float64(len(keywords))
		}
		similarity := lexical.Similarity(c.Text, query.Text)
		lengthBonus := partialLengthBonus
		if len(c.Text) >= minPreferredLength && len(c.Text) <= maxPreferredLength {
			lengthBonus = fullLengthBonus
		}
		score := keywordRatio*keywordWeight + similarity*similarityWeight + lengthBonus*lengthWeight
		scoredCandidates = append(scoredCandidates, scored{candidate: c, score: score, matches: matches})
	}

	// Stable sort keeps original candidate order on equal scores.
	sort.SliceStable(scoredCandidates, func(i, j int) bool {
		return scoredCandidates[i].score > scoredCandidates[j].score
	})
	if len(scoredCandidates) > s.topK {
		scoredCandidates = scoredCandidates[:s.topK]
	}

	sections := make([]*strategy.Section, 0, len(scoredCandidates))
	for _, sc := range scoredCandidates {
		sections = append(sections, &strategy.Section{
			Text:       sc.candidate.Text,
			Index:      sc.candidate.Index,
			Score:      sc.score,
			Annotation: fmt.Sprintf("Relevance: %.2f, Keywords: %d", sc.score, sc.matches),
		})
	}

	return &strategy.Output{
		Context:  strategy.Render(sections),
		Sections: sections,
		Metrics: map[string]any{
			"average_score":    strategy.MeanScore(sections),
			"keyword_coverage": keywordCoverage(sections, keywords),
		},
	}, nil
}

// keywordCoverage is the fraction of query keywords that appear in at least
// one selected passage.
func keywordCoverage(sections []*strategy.Section, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0.0
	}
	covered := 0
	for _, kw := range keywords {
		for _, s := range sections {
			if lexical.CountKeywordMatches(s.Text, []string{kw}) > 0 {
				covered++
				break
			}
		}
	}
	return float64(covered) / float64(len(keywords))
}
