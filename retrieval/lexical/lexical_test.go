//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

package lexical_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manualqa/manualqa-go/retrieval/lexical"
)

func TestKeywords(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "drops stop words and short tokens",
			text:     "How do I install the filter?",
			expected: []string{"filter", "how", "install"},
		},
		{
			name:     "deduplicates tokens",
			text:     "filter filter Filter FILTER",
			expected: []string{"filter"},
		},
		{
			name:     "empty text",
			text:     "",
			expected: []string{},
		},
		{
			name:     "only stop words",
			text:     "the and or but",
			expected: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, lexical.Keywords(tt.text))
		})
	}
}

func TestKeywordsIdempotent(t *testing.T) {
	first := lexical.Keywords("Install the water filter behind the access panel.")
	second := lexical.Keywords(strings.Join(first, " "))
	assert.Equal(t, first, second)
}

func TestCountKeywordMatches(t *testing.T) {
	keywords := []string{"install", "filter", "voltage"}
	assert.Equal(t, 2, lexical.CountKeywordMatches("Install the filter now.", keywords))
	assert.Equal(t, 0, lexical.CountKeywordMatches("Contact support.", keywords))
	assert.Equal(t, 0, lexical.CountKeywordMatches("", keywords))
}

func TestSimilarity(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		assert.Equal(t, 1.0, lexical.Similarity("install the filter", "install the filter"))
	})
	t.Run("symmetry", func(t *testing.T) {
		a := "replace the water filter"
		b := "the filter needs replacement soon"
		assert.Equal(t, lexical.Similarity(a, b), lexical.Similarity(b, a))
	})
	t.Run("disjoint", func(t *testing.T) {
		assert.Equal(t, 0.0, lexical.Similarity("alpha beta", "gamma delta"))
	})
	t.Run("empty operand", func(t *testing.T) {
		assert.Equal(t, 0.0, lexical.Similarity("", "install filter"))
		assert.Equal(t, 0.0, lexical.Similarity("install filter", ""))
	})
	t.Run("partial overlap", func(t *testing.T) {
		// tokens: {install, filter} vs {install, cover} -> 1/3.
		assert.InDelta(t, 1.0/3.0, lexical.Similarity("install filter", "install cover"), 1e-9)
	})
}

func TestSetOverlap(t *testing.T) {
	assert.Equal(t, 0.0, lexical.SetOverlap(nil, []string{"a"}))
	assert.Equal(t, 0.0, lexical.SetOverlap([]string{"a"}, nil))
	assert.Equal(t, 1.0, lexical.SetOverlap([]string{"a", "b"}, []string{"b", "a"}))
	assert.InDelta(t, 1.0/3.0, lexical.SetOverlap([]string{"a", "b"}, []string{"b", "c"}), 1e-9)
}

func TestConcepts(t *testing.T) {
	text := "Install the Water Filter assembly rated 12V and 5 kg. Verify the seal."
	concepts := lexical.Concepts(text)

	assert.Contains(t, concepts, "Water Filter")
	assert.Contains(t, concepts, "12V")
	assert.Contains(t, concepts, "5 kg")
	assert.Contains(t, concepts, "install")
	assert.Contains(t, concepts, "verify")
}

func TestConceptsEmpty(t *testing.T) {
	assert.Empty(t, lexical.Concepts("nothing of note here"))
}

func TestQuality(t *testing.T) {
	t.Run("bounded", func(t *testing.T) {
		for _, text := range []string{
			"",
			"short",
			"1. First step\n2. Second step.",
			strings.Repeat("a complete sentence. ", 30),
		} {
			q := lexical.Quality(text)
			assert.GreaterOrEqual(t, q, 0.0)
			assert.LessOrEqual(t, q, 1.0)
		}
	})
	t.Run("structured complete passage scores full marks beyond length", func(t *testing.T) {
		long := strings.Repeat("step ", 50) + "1. do this and finish the job properly."
		// length saturated (1.0*0.4) + structure (1.0*0.3) + sentence (1.0*0.3).
		assert.InDelta(t, 1.0, lexical.Quality(long), 1e-9)
	})
	t.Run("unstructured fragment scores the floor components", func(t *testing.T) {
		// length 4/200*0.4 + 0.5*0.3 + 0.5*0.3.
		assert.InDelta(t, 0.008+0.3, lexical.Quality("word"), 1e-9)
	})
}

func TestDiversity(t *testing.T) {
	t.Run("no prior selections", func(t *testing.T) {
		assert.Equal(t, 1.0, lexical.Diversity("anything", nil))
	})
	t.Run("identical prior selection", func(t *testing.T) {
		assert.InDelta(t, 0.0, lexical.Diversity("install filter", []string{"install filter"}), 1e-9)
	})
	t.Run("unrelated prior selection", func(t *testing.T) {
		assert.InDelta(t, 1.0, lexical.Diversity("install filter", []string{"warranty terms apply"}), 1e-9)
	})
	t.Run("averages across selections", func(t *testing.T) {
		got := lexical.Diversity("install filter", []string{"install filter", "warranty terms apply"})
		assert.InDelta(t, 0.5, got, 1e-9)
	})
}
