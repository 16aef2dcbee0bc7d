package ingest

import (
	"strings"

	"github.com/ryanmford/apexspeedrun/internal/domain/identity"
	"github.com/ryanmford/apexspeedrun/internal/domain/model"
	"github.com/ryanmford/apexspeedrun/internal/domain/schema"
	"github.com/ryanmford/apexspeedrun/internal/domain/textparse"
	"github.com/ryanmford/apexspeedrun/pkg/metrics"
)

var courseHeaderKeywords = []string{"course", "track", "name"}

// Fallback indices cover columns whose header text is unreliable in the
// real registry export: state/province, the two setter columns, the demo
// video link, and coordinates.
var courseColumns = []schema.Column{
	schema.Col("name", "course", "track", "name"),
	schema.Col("city", "city"),
	schema.ColAt("state", 2, "state", "province"),
	schema.Col("country", "country"),
	schema.Col("flag", "flag"),
	schema.Col("difficulty", "difficulty", "grade"),
	schema.Col("length", "length", "distance"),
	schema.Col("elevation", "elevation", "elev"),
	schema.Col("type", "type", "style"),
	schema.Col("date", "date set", "date", "established"),
	schema.ColAt("leads", 10, "lead setter", "lead"),
	schema.ColAt("assists", 11, "assistant setter", "assistant", "assist"),
	schema.ColAt("video", 12, "video", "demo", "link"),
	schema.ColAt("coordinates", 13, "coordinates", "coords", "latlng"),
}

// Courses converts a course-metadata table into a registry keyed by
// uppercased course name. Rows with an empty course name are skipped;
// later rows overwrite earlier ones rather than merging.
func Courses(text, seasonMarker string) map[string]model.CourseRecord {
	rows := textparse.Rows(text)
	headerIdx := textparse.FindHeader(rows, courseHeaderKeywords, headerScanWindow)
	if headerIdx < 0 {
		if len(rows) > 0 {
			metrics.RecordHeaderNotFound("courses")
		}
		return map[string]model.CourseRecord{}
	}

	cols := schema.Resolve(textparse.SplitLine(rows[headerIdx]), courseColumns)

	out := make(map[string]model.CourseRecord)
	dropped := 0
	for i := headerIdx + 1; i < len(rows); i++ {
		fields := textparse.SplitLine(rows[i])
		name := strings.ToUpper(strings.TrimSpace(schema.Field(fields, cols, "name")))
		if name == "" {
			dropped++
			continue
		}

		leads := schema.Field(fields, cols, "leads")
		assists := schema.Field(fields, cols, "assists")
		combined := leads
		if leads != "" && assists != "" {
			combined = leads + ", " + assists
		} else if assists != "" {
			combined = assists
		}

		country, flag := identity.FixEntity(
			schema.Field(fields, cols, "country"),
			schema.Field(fields, cols, "flag"),
		)

		dateSet := schema.Field(fields, cols, "date")

		out[name] = model.CourseRecord{
			Name:             name,
			City:             schema.Field(fields, cols, "city"),
			StateOrProvince:  schema.Field(fields, cols, "state"),
			Country:          country,
			Flag:             flag,
			Difficulty:       schema.Field(fields, cols, "difficulty"),
			Length:           schema.Field(fields, cols, "length"),
			Elevation:        schema.Field(fields, cols, "elevation"),
			Type:             schema.Field(fields, cols, "type"),
			DateSet:          dateSet,
			LeadSetters:      leads,
			AssistantSetters: assists,
			Setter:           combined,
			DemoVideoURL:     schema.Field(fields, cols, "video"),
			Coordinates:      schema.Field(fields, cols, "coordinates"),
			IsCurrentSeason:  seasonMarker != "" && strings.Contains(dateSet, seasonMarker),
		}
	}

	metrics.RecordRowsParsed("courses", len(out))
	metrics.RecordRowsDropped("courses", dropped)
	return out
}
