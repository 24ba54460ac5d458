//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

// Package lexical provides pattern-based text analysis used by the retrieval
// enhancement strategies: keyword and concept extraction, word-overlap
// similarity, and passage quality/diversity scoring. All functions are pure
// and deterministic; no NLP model is involved.
package lexical

import (
	"regexp"
	"sort"
	"strings"
)

// minKeywordLength is the minimum token length for a keyword.
const minKeywordLength = 3

var wordPattern = regexp.MustCompile(`\b\w+\b`)

// stopWords are common English words excluded from keyword extraction.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "can": {}, "this": {},
	"that": {}, "these": {}, "those": {},
}

// Tokens returns the set of lower-cased word tokens in text.
func Tokens(text string) map[string]struct{} {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Keywords extracts the unique keywords from text: lower-cased word tokens
// with stop words and tokens shorter than three characters removed.
// The result is sorted so callers observe a deterministic order.
func Keywords(text string) []string {
	set := make(map[string]struct{})
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if len(w) < minKeywordLength {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		set[w] = struct{}{}
	}
	keywords := make([]string, 0, len(set))
	for w := range set {
		keywords = append(keywords, w)
	}
	sort.Strings(keywords)
	return keywords
}

// CountKeywordMatches counts how many of the given keywords occur in text.
// Matching is case-insensitive substring containment.
func CountKeywordMatches(text string, keywords []string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			count++
		}
	}
	return count
}
