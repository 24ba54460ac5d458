//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

package lexical

// Similarity computes the Jaccard similarity of the word-token sets of the
// two texts. It returns a value in [0, 1], and 0.0 when either text has no
// tokens. The function is symmetric and serves as the engine's sole proxy
// for semantic relatedness.
func Similarity(a, b string) float64 {
	tokensA := Tokens(a)
	tokensB := Tokens(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0.0
	}

	intersection := 0
	for w := range tokensA {
		if _, ok := tokensB[w]; ok {
			intersection++
		}
	}
	union := len(tokensA) + len(tokensB) - intersection
	return float64(intersection) / float64(union)
}

// SetOverlap computes the Jaccard overlap of two string sets given as slices.
// Duplicates are collapsed. Returns 0.0 when either set is empty.
func SetOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	setA := make(map[string]struct{}, len(a))
	for _, s := range a {
		setA[s] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, s := range b {
		setB[s] = struct{}{}
	}

	intersection := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}
