//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

// Package strategy defines the interface shared by the retrieval enhancement
// strategies and the types that flow between them and the dispatcher.
package strategy

import (
	"context"
	"fmt"
	"strings"
)

// Strategy selects and orders a subset of candidate passages for a query and
// renders them into an annotated context blob.
type Strategy interface {
	// Name returns the strategy's registry name.
	Name() string

	// Enhance scores the candidates against the query and returns the
	// selected, ordered subset with its rendered context and metrics.
	Enhance(ctx context.Context, query *Query, candidates []*Candidate) (*Output, error)
}

// Query represents the user question handed to a strategy.
type Query struct {
	// Text is the raw query text.
	Text string
}

// Candidate is one passage from the upstream similarity search together with
// its position in the candidate list. Candidates are read-only; strategies
// never mutate them.
type Candidate struct {
	// Text is the passage content.
	Text string

	// Index is the passage's position in the original candidate list. It
	// breaks score ties so output stays deterministic.
	Index int
}

// Section is a selected passage at its final rank.
type Section struct {
	// Text is the passage content.
	Text string

	// Index is the original candidate index of the passage.
	Index int

	// Score is the strategy's primary score for the passage.
	Score float64

	// Annotation is the strategy-specific score annotation rendered into
	// the section header.
	Annotation string
}

// Output is the result of one strategy run.
type Output struct {
	// Context is the rendered, annotated context blob. Empty when nothing
	// was selected.
	Context string

	// Sections are the selected passages in rank order.
	Sections []*Section

	// Metrics holds the strategy-specific aggregate metrics.
	Metrics map[string]any
}

// Render joins sections into the enhanced context blob. Each section is
// headed by its 1-based rank and annotation; sections are separated by a
// blank line.
func Render(sections []*Section) string {
	parts := make([]string, 0, len(sections))
	for i, s := range sections {
		parts = append(parts, fmt.Sprintf("[Section %d - %s]\n%s", i+1, s.Annotation, s.Text))
	}
	return strings.Join(parts, "\n\n")
}

// Texts returns the section passage texts in rank order.
func Texts(sections []*Section) []string {
	texts := make([]string, len(sections))
	for i, s := range sections {
		texts[i] = s.Text
	}
	return texts
}

// MeanScore returns the average section score, or 0 when empty.
func MeanScore(sections []*Section) float64 {
	if len(sections) == 0 {
		return 0.0
	}
	total := 0.0
	for _, s := range sections {
		total += s.Score
	}
	return total / float64(len(sections))
}
