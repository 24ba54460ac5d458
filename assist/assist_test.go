//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

package assist_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manualqa/manualqa-go/assist"
	"github.com/manualqa/manualqa-go/prompt"
)

// staticRetriever returns a fixed passage list for any query.
type staticRetriever struct {
	passages []string
}

func (r staticRetriever) Retrieve(ctx context.Context, query string, limit int) ([]string, error) {
	if limit < len(r.passages) {
		return r.passages[:limit], nil
	}
	return r.passages, nil
}

// failingRetriever always fails.
type failingRetriever struct{}

func (failingRetriever) Retrieve(ctx context.Context, query string, limit int) ([]string, error) {
	return nil, errors.New("index unavailable")
}

var manualPassages = []string{
	"Step 1: remove cover. Step 2: install filter.",
	"Specifications: voltage 12V, weight 2kg.",
	"Contact support for help.",
}

func TestAskProducesPromptAndMetadata(t *testing.T) {
	e := assist.New(assist.WithRetriever(staticRetriever{passages: manualPassages}))
	answer, err := e.Ask(context.Background(), "How do I install the filter?")
	require.NoError(t, err)

	assert.Equal(t, "hybrid", answer.Retrieval.Strategy)
	assert.Equal(t, 3, answer.Retrieval.ChunksAnalyzed)
	assert.NotEmpty(t, answer.Context)
	require.NotNil(t, answer.Prompt)
	// A how-to question redirects the prompt to the step-by-step style.
	assert.Equal(t, prompt.StyleStepByStep, answer.Prompt.Style)
	assert.Contains(t, answer.Prompt.User, answer.Context)
}

func TestAskWithoutRetriever(t *testing.T) {
	e := assist.New()
	_, err := e.Ask(context.Background(), "anything")
	assert.Error(t, err)
}

func TestAskRetrieverFailure(t *testing.T) {
	e := assist.New(assist.WithRetriever(failingRetriever{}))
	_, err := e.Ask(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retrieve candidates")
}

func TestAskAppliesOverrides(t *testing.T) {
	overrides := prompt.NewOverrides(map[string]string{"filter": "Always cite the filter model number."})
	e := assist.New(
		assist.WithRetriever(staticRetriever{passages: manualPassages}),
		assist.WithPromptOverrides(overrides),
	)
	answer, err := e.Ask(context.Background(), "How do I install the filter?")
	require.NoError(t, err)
	assert.True(t, answer.OverrideApplied)
	assert.Contains(t, answer.Prompt.System, "Always cite the filter model number.")
}

func TestAskChainOfThought(t *testing.T) {
	e := assist.New(
		assist.WithRetriever(staticRetriever{passages: manualPassages}),
		assist.WithChainOfThought(true),
	)
	answer, err := e.Ask(context.Background(), "why does the filter leak")
	require.NoError(t, err)
	assert.Contains(t, answer.Prompt.User, "step by step")
}

func TestSetStrategy(t *testing.T) {
	e := assist.New(assist.WithRetriever(staticRetriever{passages: manualPassages}))
	require.NoError(t, e.SetStrategy("rerank"))

	answer, err := e.Ask(context.Background(), "install the filter")
	require.NoError(t, err)
	assert.Equal(t, "rerank", answer.Retrieval.Strategy)

	assert.Error(t, e.SetStrategy("bogus"))
}

func TestSetPromptStyle(t *testing.T) {
	e := assist.New()
	require.NoError(t, e.SetPromptStyle(prompt.StyleBasic))
	assert.Error(t, e.SetPromptStyle(prompt.Style("bogus")))
}

func TestMetricsAggregation(t *testing.T) {
	e := assist.New(assist.WithRetriever(staticRetriever{passages: manualPassages}))

	for i := 0; i < 3; i++ {
		_, err := e.Ask(context.Background(), "install the filter")
		require.NoError(t, err)
	}
	require.NoError(t, e.SetStrategy("multi_query"))
	_, err := e.Ask(context.Background(), "install the filter")
	require.NoError(t, err)

	m := e.Metrics()
	assert.Equal(t, 4, m.TotalQueries)
	assert.Equal(t, 3.0, m.AvgChunksAnalyzed)
	assert.Equal(t, 3, m.StrategyUsage["hybrid"])
	assert.Equal(t, 1, m.StrategyUsage["multi_query"])
	assert.Equal(t, "multi_query", m.CurrentStrategy)
}

func TestMetricsEmpty(t *testing.T) {
	m := assist.New().Metrics()
	assert.Equal(t, 0, m.TotalQueries)
	assert.Equal(t, 0.0, m.AvgChunksAnalyzed)
	assert.Empty(t, m.StrategyUsage)
}

func TestCompareStrategies(t *testing.T) {
	e := assist.New(assist.WithRetriever(staticRetriever{passages: manualPassages}))
	reports, err := e.CompareStrategies(context.Background(), "How do I install the filter?")
	require.NoError(t, err)

	require.Len(t, reports, 4)
	for _, name := range []string{"hybrid", "rerank", "multi_query", "semantic_filter"} {
		report, ok := reports[name]
		require.True(t, ok, name)
		assert.Equal(t, name, report.Strategy)
		assert.Equal(t, 3, report.ChunksAnalyzed)
		assert.NotNil(t, report.Metrics)
	}
}

func TestCompareStrategiesRetrieverFailure(t *testing.T) {
	e := assist.New(assist.WithRetriever(failingRetriever{}))
	_, err := e.CompareStrategies(context.Background(), "anything")
	assert.Error(t, err)
}
