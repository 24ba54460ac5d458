//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

package rerank_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manualqa/manualqa-go/retrieval/lexical"
	"github.com/manualqa/manualqa-go/retrieval/strategy"
	"github.com/manualqa/manualqa-go/retrieval/strategy/rerank"
)

func candidates(texts ...string) []*strategy.Candidate {
	cs := make([]*strategy.Candidate, len(texts))
	for i, t := range texts {
		cs[i] = &strategy.Candidate{Text: t, Index: i}
	}
	return cs
}

func TestRerankFirstSelectionHasFullDiversity(t *testing.T) {
	s := rerank.New()
	query := &strategy.Query{Text: "how to install the filter"}
	cands := candidates(
		"1. Install the filter firmly.",
		"The filter must be installed before first use.",
		"Unrelated shipping information.",
	)
	out, err := s.Enhance(context.Background(), query, cands)
	require.NoError(t, err)
	require.NotEmpty(t, out.Sections)

	// The first pick is scored with diversity 1.0, so its combined score is
	// exactly 0.5*relevance + 0.3*quality + 0.2.
	first := out.Sections[0]
	relevance := lexical.Similarity(first.Text, query.Text)
	quality := lexical.Quality(first.Text)
	assert.InDelta(t, 0.5*relevance+0.3*quality+0.2, first.Score, 1e-9)
}

func TestRerankTopKTruncation(t *testing.T) {
	s := rerank.New()
	out, err := s.Enhance(context.Background(), &strategy.Query{Text: "filter"}, candidates(
		"filter a.", "filter b.", "filter c.", "filter d.", "filter e.", "filter f.",
	))
	require.NoError(t, err)
	assert.Len(t, out.Sections, rerank.DefaultTopK)
}

func TestRerankPenalizesRedundancy(t *testing.T) {
	s := rerank.New(rerank.WithTopK(2))
	out, err := s.Enhance(context.Background(), &strategy.Query{Text: "replace filter"}, candidates(
		"replace filter quickly.",
		"replace filter quickly.",
		"replace filter swiftly.",
	))
	require.NoError(t, err)
	require.Len(t, out.Sections, 2)

	// The duplicate of the first pick loses its diversity component, so the
	// second pick is the distinct passage.
	assert.Equal(t, 0, out.Sections[0].Index)
	assert.Equal(t, 2, out.Sections[1].Index)
}

func TestRerankStableTieBreak(t *testing.T) {
	s := rerank.New()
	out, err := s.Enhance(context.Background(), &strategy.Query{Text: "totally unrelated"}, candidates(
		"alpha beta gamma.", "alpha beta gamma.",
	))
	require.NoError(t, err)
	require.Len(t, out.Sections, 2)
	assert.Equal(t, 0, out.Sections[0].Index)
	assert.Equal(t, 1, out.Sections[1].Index)
}

func TestRerankMetrics(t *testing.T) {
	s := rerank.New()
	out, err := s.Enhance(context.Background(), &strategy.Query{Text: "install filter"}, candidates(
		"Install the filter.", "Check the hose.",
	))
	require.NoError(t, err)

	for _, key := range []string{"avg_relevance", "avg_quality", "avg_diversity"} {
		v, ok := out.Metrics[key].(float64)
		require.True(t, ok, "metric %s", key)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
	assert.Contains(t, out.Sections[0].Annotation, "Relevance: ")
	assert.Contains(t, out.Sections[0].Annotation, "Quality: ")
}

func TestRerankEmptyCandidates(t *testing.T) {
	s := rerank.New()
	out, err := s.Enhance(context.Background(), &strategy.Query{Text: "anything"}, nil)
	require.NoError(t, err)
	assert.Empty(t, out.Sections)
	assert.Equal(t, "", out.Context)
	assert.Equal(t, 0.0, out.Metrics["avg_relevance"])
}
