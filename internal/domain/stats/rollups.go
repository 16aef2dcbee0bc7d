package stats

import (
	"sort"

	"github.com/samber/lo"

	"github.com/ryanmford/apexspeedrun/internal/domain/identity"
	"github.com/ryanmford/apexspeedrun/internal/domain/model"
	"github.com/ryanmford/apexspeedrun/internal/domain/sanitize"
)

// rollupAcc accumulates one location while folding the course list.
type rollupAcc struct {
	name      string
	flag      string
	courses   int
	runs      int
	elevSum   float64
	elevCount int
	athletes  map[string]bool
	cities    map[string]bool
	countries map[string]bool
}

func newRollupAcc(name, flag string) *rollupAcc {
	return &rollupAcc{
		name:      name,
		flag:      flag,
		athletes:  make(map[string]bool),
		cities:    make(map[string]bool),
		countries: make(map[string]bool),
	}
}

func (r *rollupAcc) add(c model.CourseSummary) {
	r.courses++
	r.runs += c.Runs
	// Average elevation runs over parseable values only, not course count.
	if elev, ok := sanitize.Number(c.Elevation); ok {
		r.elevSum += elev
		r.elevCount++
	}
	for _, e := range c.TopMen {
		r.athletes[e.Key] = true
	}
	for _, e := range c.TopWomen {
		r.athletes[e.Key] = true
	}
	r.cities[c.City] = true
	r.countries[c.Country] = true
}

func (r *rollupAcc) row(withGeo bool) model.LocationRollup {
	out := model.LocationRollup{
		Name:     r.name,
		Flag:     r.flag,
		Courses:  r.courses,
		Runs:     r.runs,
		Athletes: len(r.athletes),
	}
	if r.elevCount > 0 {
		out.AvgElevation = r.elevSum / float64(r.elevCount)
	}
	if withGeo {
		out.Cities = len(r.cities)
		out.Countries = len(r.countries)
	}
	return out
}

// BuildRollups folds the derived course list into city, country, and
// continent rollups. Continents are pre-seeded with all seven canonical
// buckets so consumers always see a complete set.
func BuildRollups(courses []model.CourseSummary) model.Rollups {
	cities := make(map[string]*rollupAcc)
	countries := make(map[string]*rollupAcc)
	continents := make(map[string]*rollupAcc, len(identity.AllContinents))
	for _, c := range identity.AllContinents {
		continents[c.Name] = newRollupAcc(c.Name, c.Flag)
	}

	for _, c := range courses {
		city, ok := cities[c.City]
		if !ok {
			city = newRollupAcc(c.City, c.Flag)
			cities[c.City] = city
		}
		city.add(c)

		country, ok := countries[c.Country]
		if !ok {
			country = newRollupAcc(c.Country, c.Flag)
			countries[c.Country] = country
		}
		country.add(c)

		continents[identity.ContinentOf(c.Country).Name].add(c)
	}

	return model.Rollups{
		Cities:     sortedRows(lo.Values(cities), false),
		Countries:  sortedRows(lo.Values(countries), true),
		Continents: sortedRows(lo.Values(continents), true),
	}
}

func sortedRows(accs []*rollupAcc, withGeo bool) []model.LocationRollup {
	rows := lo.Map(accs, func(r *rollupAcc, _ int) model.LocationRollup { return r.row(withGeo) })
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Courses != rows[j].Courses {
			return rows[i].Courses > rows[j].Courses
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}
