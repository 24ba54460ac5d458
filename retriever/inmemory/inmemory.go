//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory retriever that ranks stored
// documents by lexical similarity to the query. It is the default backend
// for small manual collections and for tests.
package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/manualqa/manualqa-go/document"
	"github.com/manualqa/manualqa-go/retrieval/lexical"
)

// Retriever stores documents in memory and retrieves the passages most
// similar to a query. It is safe for concurrent use.
type Retriever struct {
	mu   sync.RWMutex
	docs []*document.Document
	byID map[string]int
}

// New creates an empty in-memory retriever.
func New() *Retriever {
	return &Retriever{byID: make(map[string]int)}
}

// Add stores a document. A document with an existing ID replaces the stored
// copy in place, keeping its rank-stable position.
func (r *Retriever) Add(doc *document.Document) error {
	if doc == nil || doc.IsEmpty() {
		return fmt.Errorf("inmemory: cannot add empty document")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if i, ok := r.byID[doc.ID]; ok {
		r.docs[i] = doc.Clone()
		return nil
	}
	r.byID[doc.ID] = len(r.docs)
	r.docs = append(r.docs, doc.Clone())
	return nil
}

// AddText is a convenience wrapper that wraps raw text in a document and
// stores it.
func (r *Retriever) AddText(name, content string) (*document.Document, error) {
	doc := document.New(name, content)
	if err := r.Add(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Get returns the stored document with the given ID.
func (r *Retriever) Get(id string) (*document.Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return r.docs[i].Clone(), true
}

// Len returns the number of stored documents.
func (r *Retriever) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}

// Retrieve returns the content of up to limit stored documents ranked by
// lexical similarity to the query, most similar first. Documents with zero
// similarity are still eligible so that generic queries over a small
// collection return something to enhance; ties keep insertion order.
func (r *Retriever) Retrieve(ctx context.Context, query string, limit int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, 0, len(r.docs))
	for i, doc := range r.docs {
		ranked = append(ranked, scored{
			index: i,
			score: lexical.Similarity(query, doc.Content),
		})
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	if limit > len(ranked) {
		limit = len(ranked)
	}
	passages := make([]string, 0, limit)
	for _, s := range ranked[:limit] {
		passages = append(passages, r.docs[s.index].Content)
	}
	return passages, nil
}
