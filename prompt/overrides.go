//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

package prompt

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Overrides is a lookup table of query keyword to prompt-override text. The
// table is produced by an external, offline process from historical
// feedback; this package only consumes it.
type Overrides struct {
	table map[string]string
}

// NewOverrides creates an override table from an in-memory map. Keys are
// lower-cased.
func NewOverrides(table map[string]string) *Overrides {
	normalized := make(map[string]string, len(table))
	for k, v := range table {
		normalized[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &Overrides{table: normalized}
}

// LoadOverrides reads an override table from a JSON file mapping query
// keywords to override text. A missing file yields an empty table, not an
// error, since the offline process may not have produced one yet.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewOverrides(nil), nil
		}
		return nil, fmt.Errorf("read overrides file: %w", err)
	}
	var table map[string]string
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse overrides file %s: %w", path, err)
	}
	return NewOverrides(table), nil
}

// Len returns the number of entries in the table.
func (o *Overrides) Len() int {
	return len(o.table)
}

// Lookup returns the override text for a query. Keys are matched as
// substrings of the lower-cased query; when several keys match, the longest
// one wins.
func (o *Overrides) Lookup(query string) (string, bool) {
	lower := strings.ToLower(query)
	bestKey := ""
	found := false
	for key := range o.table {
		if key == "" || !strings.Contains(lower, key) {
			continue
		}
		if !found || len(key) > len(bestKey) {
			bestKey = key
			found = true
		}
	}
	if !found {
		return "", false
	}
	return o.table[bestKey], true
}

// Apply appends the matching override, if any, to the bundle's system
// prompt and returns whether an override was applied.
func (o *Overrides) Apply(query string, bundle *Bundle) bool {
	text, ok := o.Lookup(query)
	if !ok {
		return false
	}
	bundle.System = bundle.System + "\n\n" + text
	return true
}
