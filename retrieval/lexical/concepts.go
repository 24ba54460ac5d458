//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

package lexical

import (
	"regexp"
	"sort"
	"strings"
)

var (
	// titlePhrasePattern matches one or more consecutive capitalized words,
	// a rough proxy for domain terms and product names.
	titlePhrasePattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)

	// measurementPattern matches a number followed by a common unit.
	measurementPattern = regexp.MustCompile(`\d+\s*(?:mm|cm|in|kg|lb|V|A|W|Hz)`)

	// actionVerbPattern matches the fixed action-verb vocabulary.
	actionVerbPattern = regexp.MustCompile(`\b(?:install|connect|configure|setup|test|check|verify|replace|repair)\b`)
)

// Concepts extracts coarse semantic concepts from text: title-case phrases,
// unit-bearing measurements, and a fixed vocabulary of action verbs. The
// result is a sorted, deduplicated slice.
func Concepts(text string) []string {
	set := make(map[string]struct{})
	for _, m := range titlePhrasePattern.FindAllString(text, -1) {
		set[m] = struct{}{}
	}
	for _, m := range measurementPattern.FindAllString(text, -1) {
		set[m] = struct{}{}
	}
	for _, m := range actionVerbPattern.FindAllString(strings.ToLower(text), -1) {
		set[m] = struct{}{}
	}

	concepts := make([]string, 0, len(set))
	for c := range set {
		concepts = append(concepts, c)
	}
	sort.Strings(concepts)
	return concepts
}
