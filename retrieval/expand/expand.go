//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

// Package expand derives paraphrase variants of a user query with
// pattern-based rewriting. Variants improve recall when passages phrase a
// topic differently from the question.
package expand

import (
	"sort"
	"strings"
)

// rewriteRule substitutes term with each replacement when trigger is present
// in the lower-cased query.
type rewriteRule struct {
	trigger      string
	term         string
	replacements []string
}

var rules = []rewriteRule{
	{trigger: "how", term: "how", replacements: []string{"what steps", "procedure for", "method to"}},
	{trigger: "error", term: "error", replacements: []string{"solution"}},
	{trigger: "problem", term: "problem", replacements: []string{"fix"}},
	{trigger: "issue", term: "issue", replacements: []string{"resolve"}},
}

// definitionPrefixes replace a leading "what is".
var definitionPrefixes = []string{"define", "explain", "describe"}

// Expand returns the query together with its paraphrase variants. The
// original query is always first; the remaining variants are deduplicated
// and sorted for deterministic output. Rules apply independently, so a query
// may produce variants from several rules at once.
func Expand(query string) []string {
	lower := strings.ToLower(query)
	set := make(map[string]struct{})

	for _, rule := range rules {
		if !strings.Contains(lower, rule.trigger) {
			continue
		}
		for _, repl := range rule.replacements {
			set[strings.ReplaceAll(query, rule.term, repl)] = struct{}{}
		}
	}
	if strings.HasPrefix(lower, "what is") {
		rest := query[len("what is"):]
		for _, prefix := range definitionPrefixes {
			set[prefix+rest] = struct{}{}
		}
	}
	delete(set, query)

	variants := make([]string, 0, len(set)+1)
	for v := range set {
		variants = append(variants, v)
	}
	sort.Strings(variants)
	return append([]string{query}, variants...)
}
