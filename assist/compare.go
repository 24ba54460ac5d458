//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

package assist

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/manualqa/manualqa-go/retrieval"
)

// compareParallelism bounds the worker pool used to run strategies side by
// side. One worker per built-in strategy.
const compareParallelism = 4

// StrategyReport summarizes one strategy's behavior on a query.
type StrategyReport struct {
	// Strategy is the strategy name.
	Strategy string `json:"strategy"`

	// ChunksAnalyzed is the number of candidates supplied to the strategy.
	ChunksAnalyzed int `json:"chunks_analyzed"`

	// TopChunks is the number of passages the strategy selected.
	TopChunks int `json:"top_chunks"`

	// ContextLength is the rendered context size in bytes.
	ContextLength int `json:"context_length"`

	// Metrics holds the strategy-specific aggregate metrics.
	Metrics map[string]any `json:"metrics,omitempty"`
}

// CompareStrategies retrieves candidates once and runs every registered
// strategy over them concurrently, returning a report per strategy. Useful
// for tuning which strategy suits a document corpus.
func (e *Engine) CompareStrategies(ctx context.Context, query string) (map[string]*StrategyReport, error) {
	if e.retriever == nil {
		return nil, fmt.Errorf("assist engine has no retriever configured")
	}
	passages, err := e.retriever.Retrieve(ctx, query, e.limit)
	if err != nil {
		return nil, fmt.Errorf("retrieve candidates: %w", err)
	}

	pool, err := ants.NewPool(compareParallelism)
	if err != nil {
		return nil, fmt.Errorf("create comparison worker pool: %w", err)
	}
	defer pool.Release()

	names := e.enhancer.Strategies()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		reports = make(map[string]*StrategyReport, len(names))
	)
	errCh := make(chan error, len(names))
	for _, name := range names {
		wg.Add(1)
		strategyName := name
		submitErr := pool.Submit(func() {
			defer wg.Done()
			result, err := e.enhancer.GetEnhancedContext(ctx, query, passages, strategyName)
			if err != nil {
				errCh <- fmt.Errorf("strategy %s: %w", strategyName, err)
				return
			}
			mu.Lock()
			reports[strategyName] = reportFromResult(result)
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			errCh <- fmt.Errorf("submit comparison task: %w", submitErr)
		}
	}
	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		return nil, err
	}
	return reports, nil
}

func reportFromResult(result *retrieval.Result) *StrategyReport {
	return &StrategyReport{
		Strategy:       result.Strategy,
		ChunksAnalyzed: result.ChunksAnalyzed,
		TopChunks:      result.TopChunks,
		ContextLength:  len(result.EnhancedContext),
		Metrics:        result.Metrics,
	}
}
