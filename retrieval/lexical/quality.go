//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

package lexical

import (
	"regexp"
	"strings"
)

// Quality scoring weights and targets.
const (
	qualityLengthWeight   = 0.4
	qualityStructWeight   = 0.3
	qualitySentenceWeight = 0.3

	// preferredLength is the content length at which the length component
	// saturates at 1.0.
	preferredLength = 200
)

var (
	numberedListPattern = regexp.MustCompile(`\d+\.`)
	bulletPattern       = regexp.MustCompile(`[-•*]`)
)

// Quality scores the intrinsic quality of a passage in [0, 1] from its
// length, structural markers (numbered lists or bullets), and sentence
// completeness.
func Quality(passage string) float64 {
	lengthScore := float64(len(passage)) / preferredLength
	if lengthScore > 1.0 {
		lengthScore = 1.0
	}

	structureScore := 0.5
	if numberedListPattern.MatchString(passage) || bulletPattern.MatchString(passage) {
		structureScore = 1.0
	}

	sentenceScore := 0.5
	trimmed := strings.TrimSpace(passage)
	if strings.HasSuffix(trimmed, ".") || strings.HasSuffix(trimmed, "!") || strings.HasSuffix(trimmed, "?") {
		sentenceScore = 1.0
	}

	return lengthScore*qualityLengthWeight +
		structureScore*qualityStructWeight +
		sentenceScore*qualitySentenceWeight
}

// Diversity scores how different a passage is from the passages already
// selected, in [0, 1]. It returns 1.0 when nothing has been selected yet;
// otherwise one minus the average similarity to the selected passages.
// The score is order-dependent: it must be computed against the passages
// chosen so far, not the full candidate set.
func Diversity(passage string, selected []string) float64 {
	if len(selected) == 0 {
		return 1.0
	}
	total := 0.0
	for _, s := range selected {
		total += Similarity(passage, s)
	}
	return 1.0 - total/float64(len(selected))
}
