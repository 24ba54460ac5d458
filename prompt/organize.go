//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

package prompt

import (
	"strconv"
	"strings"
)

// Context section categories, in render order.
const (
	CategoryWarnings       = "warnings"
	CategoryProcedures     = "procedures"
	CategorySpecifications = "specifications"
	CategoryGeneral        = "general_info"
)

var (
	warningMarkers       = []string{"warning", "caution", "danger", "safety"}
	procedureMarkers     = []string{"step", "procedure", "install", "setup"}
	specificationMarkers = []string{"specification", "dimension", "weight", "voltage"}

	categoryOrder = []string{CategoryWarnings, CategoryProcedures, CategorySpecifications, CategoryGeneral}
)

// OrganizeChunks buckets context chunks into warning, procedure,
// specification, and general categories by marker words. Empty categories
// are omitted.
func OrganizeChunks(chunks []string) map[string][]string {
	organized := make(map[string][]string)
	for _, chunk := range chunks {
		category := categorize(chunk)
		organized[category] = append(organized[category], chunk)
	}
	return organized
}

func categorize(chunk string) string {
	lower := strings.ToLower(chunk)
	if containsAny(lower, warningMarkers) {
		return CategoryWarnings
	}
	if containsAny(lower, procedureMarkers) {
		return CategoryProcedures
	}
	if containsAny(lower, specificationMarkers) {
		return CategorySpecifications
	}
	return CategoryGeneral
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// RenderOrganized renders categorized chunks as numbered, labeled sections
// in a fixed category order.
func RenderOrganized(organized map[string][]string) string {
	var parts []string
	section := 1
	for _, category := range categoryOrder {
		chunks, ok := organized[category]
		if !ok {
			continue
		}
		parts = append(parts, "Section "+strconv.Itoa(section)+" ("+category+"):\n"+strings.Join(chunks, "\n"))
		section++
	}
	return strings.Join(parts, "\n")
}
