//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

// Package prompt builds the system/user prompt pair handed to the language
// model caller. Styles are selected by analyzing the query; the package only
// assembles text and makes no model calls.
package prompt

import (
	"fmt"
	"strings"
)

// Style names a prompt template.
type Style string

// Supported prompt styles.
const (
	StyleBasic           Style = "basic"
	StyleDetailed        Style = "detailed"
	StyleStepByStep      Style = "step_by_step"
	StyleTroubleshooting Style = "troubleshooting"
)

// Styles returns the supported styles.
func Styles() []Style {
	return []Style{StyleBasic, StyleDetailed, StyleStepByStep, StyleTroubleshooting}
}

// Valid reports whether s names a supported style.
func (s Style) Valid() bool {
	switch s {
	case StyleBasic, StyleDetailed, StyleStepByStep, StyleTroubleshooting:
		return true
	}
	return false
}

// QueryType classifies the intent of a user query.
type QueryType string

// Query types recognized by AnalyzeQueryType.
const (
	TypeHowTo      QueryType = "how_to"
	TypeProblem    QueryType = "problem"
	TypeDefinition QueryType = "definition"
	TypeGeneral    QueryType = "general"
)

// Bundle is an assembled prompt pair plus the analysis that produced it.
type Bundle struct {
	// System is the system prompt text.
	System string `json:"system_prompt"`

	// User is the user prompt text with context and question inlined.
	User string `json:"user_prompt"`

	// QueryType is the detected query intent.
	QueryType QueryType `json:"query_type"`

	// Style is the template that was ultimately used.
	Style Style `json:"style"`
}

type template struct {
	system string
	user   string
}

// user templates take the context first, the question second.
var templates = map[Style]template{
	StyleBasic: {
		system: "You are a helpful assistant that answers questions based on the provided context. Answer accurately and concisely.",
		user:   "Context: %s\n\nQuestion: %s\n\nAnswer:",
	},
	StyleDetailed: {
		system: `You are an expert assistant specializing in product manuals and technical documentation.
Your task is to provide accurate, detailed, and helpful answers based on the given context.

Guidelines:
- Always base your answer on the provided context
- If the context doesn't contain enough information, clearly state what's missing
- Provide step-by-step instructions when applicable
- Use clear, professional language
- Include relevant details and specifications when available`,
		user: "Context Information:\n%s\n\nUser Question: %s\n\nPlease provide a comprehensive answer based on the context above. If any information is missing from the context, please indicate this clearly.",
	},
	StyleStepByStep: {
		system: `You are a technical support specialist. When answering questions, always:
1. Break down complex procedures into clear steps
2. Highlight important safety warnings or precautions
3. Mention any required tools or materials
4. Provide troubleshooting tips when relevant
5. Use numbered lists for procedures`,
		user: "Based on this context:\n%s\n\nQuestion: %s\n\nProvide a step-by-step answer:",
	},
	StyleTroubleshooting: {
		system: `You are a troubleshooting expert. When users have problems:
1. First, identify the most likely cause based on symptoms
2. Provide step-by-step diagnostic steps
3. Offer multiple solutions, starting with the simplest
4. Include safety warnings where applicable
5. Suggest when professional help might be needed`,
		user: "Context: %s\n\nProblem: %s\n\nPlease help troubleshoot this issue:",
	},
}

var (
	howToIndicators      = []string{"how to", "how do i", "steps", "procedure", "install", "setup", "configure"}
	problemIndicators    = []string{"error", "problem", "issue", "not working", "broken", "fix", "troubleshoot"}
	definitionIndicators = []string{"what is", "what are", "define", "meaning", "explain"}
)

// AnalyzeQueryType classifies a query by indicator phrases. Problem queries
// are checked after how-to queries, so "how to fix" counts as how-to.
func AnalyzeQueryType(query string) QueryType {
	lower := strings.ToLower(query)
	for _, ind := range howToIndicators {
		if strings.Contains(lower, ind) {
			return TypeHowTo
		}
	}
	for _, ind := range problemIndicators {
		if strings.Contains(lower, ind) {
			return TypeProblem
		}
	}
	for _, ind := range definitionIndicators {
		if strings.Contains(lower, ind) {
			return TypeDefinition
		}
	}
	return TypeGeneral
}

// Build assembles a prompt bundle for the query and retrieved context.
// The requested style is overridden when query analysis detects a how-to or
// problem query; an unknown style falls back to detailed.
func Build(query, context string, style Style) *Bundle {
	if !style.Valid() {
		style = StyleDetailed
	}
	queryType := AnalyzeQueryType(query)
	switch queryType {
	case TypeHowTo:
		style = StyleStepByStep
	case TypeProblem:
		style = StyleTroubleshooting
	}

	tpl := templates[style]
	return &Bundle{
		System:    tpl.system,
		User:      fmt.Sprintf(tpl.user, context, query),
		QueryType: queryType,
		Style:     style,
	}
}

// BuildChainOfThought assembles a prompt that walks the model through
// explicit reasoning steps before answering.
func BuildChainOfThought(query, context string) *Bundle {
	user := fmt.Sprintf(`Context: %s

Question: %s

Let me think through this step by step:

1. First, I need to understand what information is available in the context...
2. Then, I should identify the key points relevant to the question...
3. Finally, I'll provide a clear answer based on this analysis...

Answer:`, context, query)

	return &Bundle{
		System:    "You are a logical assistant that thinks through problems step by step. When answering questions, first analyze the context, then reason through the answer, and finally provide a clear response.",
		User:      user,
		QueryType: AnalyzeQueryType(query),
		Style:     StyleDetailed,
	}
}
