//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

// Package semanticfilter implements the semantic filtering strategy:
// passages whose concept overlap with the query falls below a threshold are
// excluded outright before ranking the survivors.
package semanticfilter

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/manualqa/manualqa-go/retrieval/lexical"
	"github.com/manualqa/manualqa-go/retrieval/strategy"
)

// Selection defaults. The threshold is a hard filter, not a tie-break, and
// is kept overridable via WithThreshold.
const (
	DefaultTopK      = 4
	DefaultThreshold = 0.3

	// maxAnnotatedConcepts bounds how many passage concepts are rendered
	// into the section annotation.
	maxAnnotatedConcepts = 5
)

// Strategy is the semantic filtering strategy.
type Strategy struct {
	topK      int
	threshold float64
}

// Option configures the semantic filter strategy.
type Option func(*Strategy)

// WithTopK sets the maximum number of passages to select from the filtered set.
func WithTopK(k int) Option {
	return func(s *Strategy) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithThreshold sets the minimum concept overlap a passage must exceed to
// survive the filter.
func WithThreshold(threshold float64) Option {
	return func(s *Strategy) {
		if threshold >= 0 {
			s.threshold = threshold
		}
	}
}

// New creates a semantic filter strategy with options.
func New(opts ...Option) *Strategy {
	s := &Strategy{topK: DefaultTopK, threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements the Strategy interface.
func (s *Strategy) Name() string { return "semantic_filter" }

// Enhance implements the Strategy interface.
func (s *Strategy) Enhance(ctx context.Context, query *strategy.Query, candidates []*strategy.Candidate) (*strategy.Output, error) {
	queryConcepts := lexical.Concepts(query.Text)

	type scored struct {
		candidate *strategy.Candidate
		overlap   float64
		concepts  []string
	}
	var filtered []scored
	for _, c := range candidates {
		concepts := lexical.Concepts(c.Text)
		overlap := lexical.SetOverlap(queryConcepts, concepts)
		if overlap > s.threshold {
			filtered = append(filtered, scored{candidate: c, overlap: overlap, concepts: concepts})
		}
	}
	filteredCount := len(filtered)

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].overlap > filtered[j].overlap
	})
	if len(filtered) > s.topK {
		filtered = filtered[:s.topK]
	}

	sections := make([]*strategy.Section, 0, len(filtered))
	overlapSum := 0.0
	for _, sc := range filtered {
		concepts := sc.concepts
		if len(concepts) > maxAnnotatedConcepts {
			concepts = concepts[:maxAnnotatedConcepts]
		}
		sections = append(sections, &strategy.Section{
			Text:       sc.candidate.Text,
			Index:      sc.candidate.Index,
			Score:      sc.overlap,
			Annotation: fmt.Sprintf("Semantic Overlap: %.2f, Concepts: %s", sc.overlap, strings.Join(concepts, ", ")),
		})
		overlapSum += sc.overlap
	}

	avgOverlap := 0.0
	if len(sections) > 0 {
		avgOverlap = overlapSum / float64(len(sections))
	}

	return &strategy.Output{
		Context:  strategy.Render(sections),
		Sections: sections,
		Metrics: map[string]any{
			"query_concepts":       queryConcepts,
			"filtered_chunks":      filteredCount,
			"avg_semantic_overlap": avgOverlap,
		},
	}, nil
}
