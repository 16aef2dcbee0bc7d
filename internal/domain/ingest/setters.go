package ingest

import (
	"strings"

	"github.com/ryanmford/apexspeedrun/internal/domain/identity"
	"github.com/ryanmford/apexspeedrun/internal/domain/model"
	"github.com/ryanmford/apexspeedrun/internal/domain/sanitize"
	"github.com/ryanmford/apexspeedrun/internal/domain/schema"
	"github.com/ryanmford/apexspeedrun/internal/domain/textparse"
	"github.com/ryanmford/apexspeedrun/pkg/metrics"
)

var setterHeaderKeywords = []string{"setter", "name"}

// Count columns carry unreliable headers in the setter export; positional
// fallbacks mirror the sheet's fixed layout.
var setterColumns = []schema.Column{
	schema.Col("name", "setter", "name"),
	schema.Col("country", "country", "nation"),
	schema.Col("flag", "flag"),
	schema.ColAt("sets", 3, "sets", "total"),
	schema.ColAt("leads", 4, "leads", "lead"),
	schema.ColAt("assists", 5, "assists", "assist"),
}

// Setters converts a setter-credit table into typed records. Impact is
// computed later by the stats builders once leaderboards exist.
func Setters(text string) []model.SetterRecord {
	rows := textparse.Rows(text)
	headerIdx := textparse.FindHeader(rows, setterHeaderKeywords, headerScanWindow)
	if headerIdx < 0 {
		if len(rows) > 0 {
			metrics.RecordHeaderNotFound("setters")
		}
		return nil
	}

	cols := schema.Resolve(textparse.SplitLine(rows[headerIdx]), setterColumns)

	var out []model.SetterRecord
	dropped := 0
	for i := headerIdx + 1; i < len(rows); i++ {
		fields := textparse.SplitLine(rows[i])
		name := strings.TrimSpace(schema.Field(fields, cols, "name"))
		if name == "" {
			dropped++
			continue
		}

		country, flag := identity.FixEntity(
			schema.Field(fields, cols, "country"),
			schema.Field(fields, cols, "flag"),
		)

		out = append(out, model.SetterRecord{
			Name:         name,
			CountryName:  country,
			Region:       flag,
			SetsCount:    sanitize.IntOr(schema.Field(fields, cols, "sets"), 0),
			LeadsCount:   sanitize.IntOr(schema.Field(fields, cols, "leads"), 0),
			AssistsCount: sanitize.IntOr(schema.Field(fields, cols, "assists"), 0),
		})
	}

	metrics.RecordRowsParsed("setters", len(out))
	metrics.RecordRowsDropped("setters", dropped)
	return out
}

// SetterLinks builds the course-to-setter join table. A link is exact when
// the setter's name equals one of the comma-separated names in the course's
// combined setter string, and fuzzy when it only matches as a
// case-insensitive substring. Fuzzy links are flagged, not silently merged.
func SetterLinks(setters []model.SetterRecord, courses map[string]model.CourseRecord) []model.SetterLink {
	var links []model.SetterLink
	for _, course := range courses {
		if strings.TrimSpace(course.Setter) == "" {
			continue
		}
		parts := strings.Split(course.Setter, ",")
		exact := make(map[string]bool, len(parts))
		for _, p := range parts {
			exact[strings.ToLower(strings.TrimSpace(p))] = true
		}

		for _, s := range setters {
			low := strings.ToLower(strings.TrimSpace(s.Name))
			if low == "" {
				continue
			}
			switch {
			case exact[low]:
				links = append(links, model.SetterLink{Course: course.Name, Setter: s.Name})
			case strings.Contains(strings.ToLower(course.Setter), low):
				links = append(links, model.SetterLink{Course: course.Name, Setter: s.Name, Fuzzy: true})
				metrics.RecordAmbiguousSetterLink()
			}
		}
	}
	return links
}
