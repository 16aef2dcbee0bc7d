package stats

import (
	"sort"
	"strings"

	"github.com/ryanmford/apexspeedrun/internal/domain/model"
)

const podiumSize = 3

// countrySeparators split a multi-nationality country field. Each listed
// country earns a full medal, so total credits can exceed podium slots.
var countrySeparators = []string{"/", ",", "&"}

// BuildMedals computes the worldwide medal table: for every course board
// in both genders, the top three finishers earn gold, silver, and bronze
// credited to every country associated with that athlete. Rows come back
// sorted by gold, then silver, then bronze, descending.
func BuildMedals(boards model.Boards, athletes map[string]model.AthleteRecord) []model.MedalRow {
	type medalAcc struct {
		flag   string
		counts [podiumSize]int
	}
	byCountry := make(map[string]*medalAcc)

	for _, byCourse := range boards {
		for _, board := range byCourse {
			for place, key := range podium(board) {
				a := athletes[key]
				flags := splitCountries(a.Region)
				for i, country := range splitCountries(a.CountryName) {
					acc, ok := byCountry[country]
					if !ok {
						acc = &medalAcc{}
						byCountry[country] = acc
					}
					acc.counts[place]++
					if acc.flag == "" && i < len(flags) {
						acc.flag = flags[i]
					}
				}
			}
		}
	}

	rows := make([]model.MedalRow, 0, len(byCountry))
	for country, acc := range byCountry {
		rows = append(rows, model.MedalRow{
			Country: country,
			Flag:    acc.flag,
			Gold:    acc.counts[0],
			Silver:  acc.counts[1],
			Bronze:  acc.counts[2],
		})
	}
	SortMedals(rows, "", false)
	return rows
}

// podium returns up to three athlete keys sorted ascending by time.
func podium(board map[string]float64) []string {
	keys := make([]string, 0, len(board))
	for k := range board {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if board[keys[i]] != board[keys[j]] {
			return board[keys[i]] < board[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > podiumSize {
		keys = keys[:podiumSize]
	}
	return keys
}

// splitCountries breaks a delimited multi-country field into trimmed parts.
func splitCountries(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	for _, sep := range countrySeparators {
		s = strings.ReplaceAll(s, sep, "\x00")
	}
	parts := strings.Split(s, "\x00")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SortMedals re-orders rows by a user-selected key: gold, silver, bronze,
// total, or country. The empty key means the default gold/silver/bronze
// descending order; asc flips the direction.
func SortMedals(rows []model.MedalRow, key string, asc bool) {
	less := func(a, b model.MedalRow) bool {
		switch key {
		case "silver":
			return a.Silver > b.Silver
		case "bronze":
			return a.Bronze > b.Bronze
		case "total":
			return a.Gold+a.Silver+a.Bronze > b.Gold+b.Silver+b.Bronze
		case "country":
			return a.Country < b.Country
		case "", "gold":
			if a.Gold != b.Gold {
				return a.Gold > b.Gold
			}
			if a.Silver != b.Silver {
				return a.Silver > b.Silver
			}
			if a.Bronze != b.Bronze {
				return a.Bronze > b.Bronze
			}
			return a.Country < b.Country
		}
		return a.Country < b.Country
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if asc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}
