// Package schema resolves semantic table columns from unreliable headers.
//
// Column order and exact header text are not contractually fixed across the
// sheet exports; header keywords are the contract. Each table declares an
// ordered list of columns with keyword candidates and an optional positional
// fallback, consumed by one generic resolver.
package schema

import "strings"

// NoColumn marks a semantic field with no resolved column.
const NoColumn = -1

// Column describes one semantic field of a table.
type Column struct {
	// Field is the semantic name, e.g. "name", "country", "rating".
	Field string

	// Keywords are matched against header cells, exact match first, then
	// substring, in priority order.
	Keywords []string

	// Fallback is a literal column index used when keyword matching
	// fails, for sheets with known-unreliable header text. NoColumn
	// disables the fallback.
	Fallback int
}

// Col builds a Column without a positional fallback.
func Col(field string, keywords ...string) Column {
	return Column{Field: field, Keywords: keywords, Fallback: NoColumn}
}

// ColAt builds a Column with a positional fallback index.
func ColAt(field string, fallback int, keywords ...string) Column {
	return Column{Field: field, Keywords: keywords, Fallback: fallback}
}

// Resolve maps each semantic field to a header column index. Matching per
// column: exact (case-insensitive, trimmed) first, then substring, then the
// declared fallback. Unresolved fields map to NoColumn.
func Resolve(header []string, cols []Column) map[string]int {
	low := make([]string, len(header))
	for i, h := range header {
		low[i] = strings.ToLower(strings.TrimSpace(h))
	}

	out := make(map[string]int, len(cols))
	for _, c := range cols {
		out[c.Field] = resolveOne(low, c)
	}
	return out
}

func resolveOne(header []string, c Column) int {
	for _, kw := range c.Keywords {
		for i, h := range header {
			if h == kw {
				return i
			}
		}
	}
	for _, kw := range c.Keywords {
		for i, h := range header {
			if strings.Contains(h, kw) {
				return i
			}
		}
	}
	if c.Fallback >= 0 && c.Fallback < len(header) {
		return c.Fallback
	}
	return NoColumn
}

// Field returns the cell for a resolved field, or "" when the field is
// unresolved or the row is short.
func Field(row []string, resolved map[string]int, field string) string {
	idx, ok := resolved[field]
	if !ok || idx == NoColumn || idx >= len(row) {
		return ""
	}
	return row[idx]
}
