package identity

// Continent is a fixed geographic bucket with a display glyph.
type Continent struct {
	Name string
	Flag string
}

// AllContinents lists the seven canonical buckets in display order. The
// GLOBAL catch-all is included so rollups always carry a complete set.
var AllContinents = []Continent{
	{Name: "EUROPE", Flag: "\U0001F30D"},
	{Name: "NORTH AMERICA", Flag: "\U0001F30E"},
	{Name: "SOUTH AMERICA", Flag: "\U0001F30E"},
	{Name: "ASIA", Flag: "\U0001F30F"},
	{Name: "OCEANIA", Flag: "\U0001F30F"},
	{Name: "AFRICA", Flag: "\U0001F30D"},
	{Name: "GLOBAL", Flag: "\U0001F310"},
}

var continentMembers = map[string][]string{
	"EUROPE": {
		"UK", "FRANCE", "GERMANY", "SPAIN", "ITALY", "PORTUGAL", "NETHERLANDS",
		"BELGIUM", "AUSTRIA", "SWITZERLAND", "POLAND", "CZECHIA", "SLOVAKIA",
		"SLOVENIA", "CROATIA", "SERBIA", "HUNGARY", "ROMANIA", "BULGARIA",
		"GREECE", "DENMARK", "SWEDEN", "NORWAY", "FINLAND", "ICELAND",
		"IRELAND", "RUSSIA", "UKRAINE", "BELARUS", "LITHUANIA", "LATVIA",
		"ESTONIA", "LUXEMBOURG", "MONACO", "ANDORRA", "MALTA", "CYPRUS",
		"ALBANIA", "NORTH MACEDONIA", "BOSNIA AND HERZEGOVINA", "MONTENEGRO",
		"MOLDOVA", "TURKEY",
	},
	"NORTH AMERICA": {
		"USA", "CANADA", "MEXICO", "PUERTO RICO", "GUATEMALA", "HONDURAS",
		"EL SALVADOR", "NICARAGUA", "COSTA RICA", "PANAMA", "CUBA", "JAMAICA",
		"HAITI", "DOMINICAN REPUBLIC", "BAHAMAS", "TRINIDAD AND TOBAGO",
		"BARBADOS", "BELIZE",
	},
	"SOUTH AMERICA": {
		"BRAZIL", "ARGENTINA", "CHILE", "COLOMBIA", "PERU", "VENEZUELA",
		"ECUADOR", "BOLIVIA", "PARAGUAY", "URUGUAY", "GUYANA", "SURINAME",
	},
	"ASIA": {
		"JAPAN", "KOREA", "CHINA", "TAIWAN", "HONG KONG", "SINGAPORE",
		"MALAYSIA", "INDONESIA", "PHILIPPINES", "THAILAND", "VIETNAM",
		"INDIA", "PAKISTAN", "BANGLADESH", "SRI LANKA", "NEPAL", "MONGOLIA",
		"KAZAKHSTAN", "UZBEKISTAN", "ISRAEL", "UAE", "SAUDI ARABIA", "QATAR",
		"KUWAIT", "JORDAN", "LEBANON", "IRAN", "IRAQ", "MACAU",
	},
	"OCEANIA": {
		"AUSTRALIA", "NEW ZEALAND", "FIJI", "PAPUA NEW GUINEA", "SAMOA",
		"TONGA", "VANUATU", "NEW CALEDONIA",
	},
	"AFRICA": {
		"SOUTH AFRICA", "EGYPT", "MOROCCO", "ALGERIA", "TUNISIA", "NIGERIA",
		"GHANA", "KENYA", "ETHIOPIA", "TANZANIA", "UGANDA", "SENEGAL",
		"CAMEROON", "IVORY COAST", "ZIMBABWE", "ZAMBIA", "BOTSWANA",
		"NAMIBIA", "MOZAMBIQUE", "ANGOLA", "MADAGASCAR", "MAURITIUS",
	},
}

var continentByCountry = func() map[string]Continent {
	m := make(map[string]Continent)
	byName := make(map[string]Continent, len(AllContinents))
	for _, c := range AllContinents {
		byName[c.Name] = c
	}
	for name, members := range continentMembers {
		for _, country := range members {
			m[country] = byName[name]
		}
	}
	return m
}()

// ContinentOf resolves a canonical country name to its continent bucket.
// Unmatched countries land in the GLOBAL catch-all.
func ContinentOf(country string) Continent {
	if c, ok := continentByCountry[Country(country)]; ok {
		return c
	}
	return AllContinents[len(AllContinents)-1]
}
