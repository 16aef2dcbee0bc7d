// Package identity canonicalizes free-text athlete and country names into
// stable keys used to join records across independent sheets.
package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics removes combining marks: "José" -> "Jose".
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func deaccent(s string) string {
	out, _, err := transform.String(stripDiacritics, s)
	if err != nil {
		return s
	}
	return out
}

// Key normalizes a display name into an athlete identity key: lowercase,
// diacritics stripped, non-alphanumeric characters removed. Keys are not
// guaranteed globally unique; the aggregator reports collisions across
// distinct raw names.
func Key(name string) string {
	s := strings.ToLower(deaccent(name))
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// countryAliases maps noisy source spellings to canonical country keys.
// Input is compared after uppercasing, trimming, and de-accenting.
var countryAliases = map[string]string{
	"UNITED STATES OF AMERICA": "USA",
	"UNITED STATES":            "USA",
	"US":                       "USA",
	"U.S.A.":                   "USA",
	"REPUBLIC OF KOREA":        "KOREA",
	"SOUTH KOREA":              "KOREA",
	"KOREA, SOUTH":             "KOREA",
	"RUSSIAN FEDERATION":       "RUSSIA",
	"UNITED KINGDOM":           "UK",
	"GREAT BRITAIN":            "UK",
	"ENGLAND":                  "UK",
	"SCOTLAND":                 "UK",
	"WALES":                    "UK",
	"NORTHERN IRELAND":         "UK",
	"CZECH REPUBLIC":           "CZECHIA",
	"HOLLAND":                  "NETHERLANDS",
	"TAIWAN, PROVINCE OF CHINA": "TAIWAN",
	"CHINESE TAIPEI":            "TAIWAN",
	"UNITED ARAB EMIRATES":      "UAE",
	"VIET NAM":                  "VIETNAM",
}

// Country canonicalizes a free-text country name. Unmapped input passes
// through uppercased, trimmed, and de-accented.
func Country(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(deaccent(raw)))
	if canon, ok := countryAliases[s]; ok {
		return canon
	}
	return s
}

// FixEntity special-cases two hard-coded identities whose name and flag
// arrive inconsistently in the source sheets. All other input passes
// through unchanged.
func FixEntity(name, flag string) (string, string) {
	switch Country(name) {
	case "PUERTO RICO":
		return "PUERTO RICO", "\U0001F1F5\U0001F1F7"
	case "USA":
		return "USA", "\U0001F1FA\U0001F1F8"
	}
	return name, flag
}
