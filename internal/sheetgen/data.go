package sheetgen

// Name and location pools for synthetic data. Entries deliberately include
// diacritics and multi-country strings to exercise identity normalization.

var firstNamesMen = []string{
	"Luka", "Mateo", "Kenji", "Diego", "Rasmus", "Tomás", "Jasper",
	"André", "Ilya", "Marco", "Finn", "Santiago", "Owen", "Tariq",
}

var firstNamesWomen = []string{
	"Mira", "Sofía", "Hana", "Ingrid", "Chloe", "Amara", "Yuki",
	"Elise", "Nadia", "Paula", "Greta", "Lucía", "Maren", "Zoe",
}

var lastNames = []string{
	"Kovač", "Fernández", "Okafor", "Lindqvist", "Tanaka", "Moreau",
	"Silva", "Petrov", "Haugen", "Castillo", "Novák", "Reyes",
	"Björk", "Durand", "Santos", "Kim",
}

type location struct {
	City    string
	State   string
	Country string
	Flag    string
}

var locations = []location{
	{"Salt Lake City", "Utah", "USA", "🇺🇸"},
	{"Boulder", "Colorado", "USA", "🇺🇸"},
	{"Chamonix", "", "France", "🇫🇷"},
	{"Innsbruck", "Tyrol", "Austria", "🇦🇹"},
	{"Seoul", "", "South Korea", "🇰🇷"},
	{"Tokyo", "", "Japan", "🇯🇵"},
	{"São Paulo", "", "Brazil", "🇧🇷"},
	{"Sheffield", "", "UK", "🇬🇧"},
	{"Bern", "", "Switzerland", "🇨🇭"},
	{"Guadalajara", "Jalisco", "Mexico", "🇲🇽"},
	{"Melbourne", "Victoria", "Australia", "🇦🇺"},
	{"Cape Town", "", "South Africa", "🇿🇦"},
}

// A few athletes carry dual-country credit strings.
var dualCountries = []struct {
	Raw  string
	Flag string
}{
	{"USA / Mexico", "🇺🇸🇲🇽"},
	{"France, Switzerland", "🇫🇷🇨🇭"},
	{"Japan & Brazil", "🇯🇵🇧🇷"},
}

var courseAdjectives = []string{
	"Granite", "Ember", "Hollow", "Rusty", "Silent", "Broken",
	"Copper", "Velvet", "Iron", "Thorn", "Glacier", "Cinder",
}

var courseNouns = []string{
	"Spire", "Traverse", "Gully", "Rampart", "Chute", "Ridge",
	"Cauldron", "Switchback", "Ledge", "Corridor",
}

var courseTypes = []string{"sprint", "endurance", "technical", "mixed"}

var difficulties = []string{"V3", "V4", "V5", "V6", "V7", "V8"}

var setterNames = []string{
	"Bram Oster", "Celia Marchetti", "Dai Nakamura", "Femke Visser",
	"Gustav Lindh", "Imani Walker", "Joon Park", "Katya Sorokina",
	"Lars Eriksen", "Noa Ben-David",
}
