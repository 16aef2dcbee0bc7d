// Package ingest converts raw sheet tables into typed domain records.
package ingest

import (
	"strconv"

	"github.com/ryanmford/apexspeedrun/internal/domain/identity"
	"github.com/ryanmford/apexspeedrun/internal/domain/model"
	"github.com/ryanmford/apexspeedrun/internal/domain/sanitize"
	"github.com/ryanmford/apexspeedrun/internal/domain/schema"
	"github.com/ryanmford/apexspeedrun/internal/domain/textparse"
	"github.com/ryanmford/apexspeedrun/pkg/metrics"
)

const headerScanWindow = 10

// minNameLen filters out stray single-character cells in the name column.
const minNameLen = 2

var rankingHeaderKeywords = []string{"name", "athlete"}

var rankingColumns = []schema.Column{
	schema.Col("name", "athlete", "name"),
	schema.Col("country", "country", "nation"),
	schema.Col("flag", "flag", "region"),
	schema.Col("rating", "rating"),
	schema.Col("points", "points", "pts"),
	schema.Col("runs", "runs", "run count"),
	schema.Col("wins", "wins", "victories"),
	schema.Col("sets", "sets", "set count"),
	schema.Col("contribution", "contribution", "contrib"),
	schema.Col("fire", "fire", "flame"),
}

// Rankings converts a rankings table into ordered athlete records. A table
// with no recognizable header yields an empty slice. Keys that collide
// within the table are disambiguated with the source row index so distinct
// ranking rows never merge.
func Rankings(text string, gender model.Gender, table string) []model.AthleteRecord {
	rows := textparse.Rows(text)
	headerIdx := textparse.FindHeader(rows, rankingHeaderKeywords, headerScanWindow)
	if headerIdx < 0 {
		if len(rows) > 0 {
			metrics.RecordHeaderNotFound(table)
		}
		return nil
	}

	cols := schema.Resolve(textparse.SplitLine(rows[headerIdx]), rankingColumns)

	var out []model.AthleteRecord
	seen := make(map[string]bool)
	dropped := 0
	for i := headerIdx + 1; i < len(rows); i++ {
		fields := textparse.SplitLine(rows[i])
		name := schema.Field(fields, cols, "name")
		if len(name) < minNameLen {
			dropped++
			continue
		}

		key := identity.Key(name)
		if seen[key] {
			key += strconv.Itoa(i)
		}
		seen[key] = true

		country, flag := identity.FixEntity(
			schema.Field(fields, cols, "country"),
			schema.Field(fields, cols, "flag"),
		)

		out = append(out, model.AthleteRecord{
			Name:              name,
			Key:               key,
			Gender:            gender,
			CountryName:       country,
			Region:            flag,
			Rating:            sanitize.NumberOr(schema.Field(fields, cols, "rating"), 0),
			Runs:              sanitize.IntOr(schema.Field(fields, cols, "runs"), 0),
			Wins:              sanitize.IntOr(schema.Field(fields, cols, "wins"), 0),
			Points:            sanitize.NumberOr(schema.Field(fields, cols, "points"), 0),
			Sets:              sanitize.IntOr(schema.Field(fields, cols, "sets"), 0),
			ContributionScore: sanitize.NumberOr(schema.Field(fields, cols, "contribution"), 0),
			FireCount:         sanitize.IntOr(schema.Field(fields, cols, "fire"), 0),
			AllTimeRank:       len(out) + 1,
		})
	}

	metrics.RecordRowsParsed(table, len(out))
	metrics.RecordRowsDropped(table, dropped)
	return out
}
