// Package sanitize coerces spreadsheet-formatted numeric text into numbers.
package sanitize

import (
	"math"
	"strconv"
	"strings"
)

// Placeholder markers that spreadsheets emit for absent values.
var placeholders = []string{"#", "N/A", "n/a", "—"}

// Number parses loose numeric text. It reports false for empty input,
// placeholder markers, unparseable text, and negative values; times and
// counts in this domain are never negative.
func Number(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" {
		return 0, false
	}
	for _, p := range placeholders {
		if strings.Contains(s, p) {
			return 0, false
		}
	}

	// Strip thousands separators and anything that is not a digit,
	// a decimal point, or a sign.
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "-" {
		return 0, false
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// Int parses like Number and floors the result.
func Int(raw string) (int, bool) {
	v, ok := Number(raw)
	if !ok {
		return 0, false
	}
	return int(math.Floor(v)), true
}

// NumberOr parses like Number with a fallback for absent values.
func NumberOr(raw string, fallback float64) float64 {
	if v, ok := Number(raw); ok {
		return v
	}
	return fallback
}

// IntOr parses like Int with a fallback for absent values.
func IntOr(raw string, fallback int) int {
	if v, ok := Int(raw); ok {
		return v
	}
	return fallback
}
