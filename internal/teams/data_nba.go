package teams

import "github.com/fortuna/augur/internal/domain"

var nbaTeams = []TeamIdentity{
	{Name: "Atlanta Hawks", Abbreviation: "ATL", Aliases: []string{"Hawks"}, Community: "AtlantaHawks", Latitude: 33.7573, Longitude: -84.3963},
	{Name: "Boston Celtics", Abbreviation: "BOS", Aliases: []string{"Celtics", "Celts"}, Community: "bostonceltics", Latitude: 42.3662, Longitude: -71.0621},
	{Name: "Brooklyn Nets", Abbreviation: "BKN", Aliases: []string{"Nets"}, Community: "GoNets", Latitude: 40.6826, Longitude: -73.9754},
	{Name: "Charlotte Hornets", Abbreviation: "CHA", Aliases: []string{"Hornets"}, Community: "CharlotteHornets", Latitude: 35.2251, Longitude: -80.8392},
	{Name: "Chicago Bulls", Abbreviation: "CHI", Aliases: []string{"Bulls"}, Community: "chicagobulls", Latitude: 41.8807, Longitude: -87.6742},
	{Name: "Cleveland Cavaliers", Abbreviation: "CLE", Aliases: []string{"Cavaliers", "Cavs"}, Community: "clevelandcavs", Latitude: 41.4965, Longitude: -81.6882},
	{Name: "Dallas Mavericks", Abbreviation: "DAL", Aliases: []string{"Mavericks", "Mavs"}, Community: "Mavericks", Latitude: 32.7905, Longitude: -96.8103},
	{Name: "Denver Nuggets", Abbreviation: "DEN", Aliases: []string{"Nuggets"}, Community: "denvernuggets", Latitude: 39.7487, Longitude: -105.0077},
	{Name: "Detroit Pistons", Abbreviation: "DET", Aliases: []string{"Pistons"}, Community: "DetroitPistons", Latitude: 42.3411, Longitude: -83.0553},
	{Name: "Golden State Warriors", Abbreviation: "GSW", Aliases: []string{"Warriors", "Dubs"}, Community: "warriors", Latitude: 37.7680, Longitude: -122.3877},
	{Name: "Houston Rockets", Abbreviation: "HOU", Aliases: []string{"Rockets"}, Community: "rockets", Latitude: 29.7508, Longitude: -95.3621},
	{Name: "Indiana Pacers", Abbreviation: "IND", Aliases: []string{"Pacers"}, Community: "pacers", Latitude: 39.7640, Longitude: -86.1555},
	{Name: "Los Angeles Clippers", Abbreviation: "LAC", Aliases: []string{"Clippers", "LA Clippers"}, Community: "LAClippers", Latitude: 33.9447, Longitude: -118.3415},
	{Name: "Los Angeles Lakers", Abbreviation: "LAL", Aliases: []string{"Lakers", "LA Lakers"}, Community: "lakers", Latitude: 34.0430, Longitude: -118.2673},
	{Name: "Memphis Grizzlies", Abbreviation: "MEM", Aliases: []string{"Grizzlies", "Grizz"}, Community: "memphisgrizzlies", Latitude: 35.1382, Longitude: -90.0506},
	{Name: "Miami Heat", Abbreviation: "MIA", Aliases: []string{"Heat"}, Community: "heat", Latitude: 25.7814, Longitude: -80.1870},
	{Name: "Milwaukee Bucks", Abbreviation: "MIL", Aliases: []string{"Bucks"}, Community: "MkeBucks", Latitude: 43.0451, Longitude: -87.9172},
	{Name: "Minnesota Timberwolves", Abbreviation: "MIN", Aliases: []string{"Timberwolves", "Wolves"}, Community: "timberwolves", Latitude: 44.9795, Longitude: -93.2760},
	{Name: "New Orleans Pelicans", Abbreviation: "NOP", Aliases: []string{"Pelicans", "Pels"}, Community: "NOLAPelicans", Latitude: 29.9490, Longitude: -90.0821},
	{Name: "New York Knicks", Abbreviation: "NYK", Aliases: []string{"Knicks"}, Community: "NYKnicks", Latitude: 40.7505, Longitude: -73.9934},
	{Name: "Oklahoma City Thunder", Abbreviation: "OKC", Aliases: []string{"Thunder"}, Community: "Thunder", Latitude: 35.4634, Longitude: -97.5151},
	{Name: "Orlando Magic", Abbreviation: "ORL", Aliases: []string{"Magic"}, Community: "OrlandoMagic", Latitude: 28.5392, Longitude: -81.3839},
	{Name: "Philadelphia 76ers", Abbreviation: "PHI", Aliases: []string{"76ers", "Sixers"}, Community: "sixers", Latitude: 39.9012, Longitude: -75.1720},
	{Name: "Phoenix Suns", Abbreviation: "PHX", Aliases: []string{"Suns"}, Community: "suns", Latitude: 33.4457, Longitude: -112.0712},
	{Name: "Portland Trail Blazers", Abbreviation: "POR", Aliases: []string{"Trail Blazers", "Blazers"}, Community: "ripcity", Latitude: 45.5316, Longitude: -122.6668},
	{Name: "Sacramento Kings", Abbreviation: "SAC", Aliases: []string{"Kings"}, Community: "kings", Latitude: 38.5802, Longitude: -121.4997},
	{Name: "San Antonio Spurs", Abbreviation: "SAS", Aliases: []string{"Spurs"}, Community: "NBASpurs", Latitude: 29.4270, Longitude: -98.4375},
	{Name: "Toronto Raptors", Abbreviation: "TOR", Aliases: []string{"Raptors", "Raps"}, Community: "torontoraptors", Latitude: 43.6435, Longitude: -79.3791},
	{Name: "Utah Jazz", Abbreviation: "UTA", Aliases: []string{"Jazz"}, Community: "UtahJazz", Latitude: 40.7683, Longitude: -111.9011},
	{Name: "Washington Wizards", Abbreviation: "WAS", Aliases: []string{"Wizards", "Wiz"}, Community: "washingtonwizards", Latitude: 38.8981, Longitude: -77.0209},
}

// ESPN sometimes uses shortened versions of team abbreviations
var espnNBAAbbreviations = map[string]string{
	"GS":   "GSW",
	"SA":   "SAS",
	"NO":   "NOP",
	"NY":   "NYK",
	"UTAH": "UTA",
	"WSH":  "WAS",
}

func init() {
	for i := range nbaTeams {
		nbaTeams[i].League = domain.SportNBA
	}
}
