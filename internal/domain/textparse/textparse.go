// Package textparse splits raw delimited sheet text into rows and fields.
//
// Sheet exports are not strict RFC 4180: a double quote always toggles the
// "inside quoted field" state rather than escaping an embedded quote, and
// malformed quoting degrades to best-effort field accumulation instead of
// raising an error.
package textparse

import "strings"

// Delimiter used by the sheet exports.
const Delimiter = ','

// SplitLine splits one line of delimited text into trimmed fields. The
// delimiter is ignored while inside a quoted region; one leading and one
// trailing quote are stripped from each field.
func SplitLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case r == Delimiter && !inQuotes:
			fields = append(fields, cleanField(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, cleanField(cur.String()))
	return fields
}

// cleanField trims whitespace and strips one surrounding quote character.
func cleanField(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return strings.TrimSpace(s)
}

// Rows splits raw sheet text into non-blank lines, stripping a UTF-8 BOM.
func Rows(text string) []string {
	text = strings.TrimPrefix(text, "\uFEFF")
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	rows := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		rows = append(rows, l)
	}
	return rows
}

// FindHeader scans the first window rows for one containing any of the
// keywords, case-insensitively. Returns the row index or -1.
func FindHeader(rows []string, keywords []string, window int) int {
	if window <= 0 || window > len(rows) {
		window = len(rows)
	}
	for i := 0; i < window; i++ {
		low := strings.ToLower(rows[i])
		for _, kw := range keywords {
			if strings.Contains(low, kw) {
				return i
			}
		}
	}
	return -1
}
