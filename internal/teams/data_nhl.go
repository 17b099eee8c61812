package teams

import "github.com/fortuna/augur/internal/domain"

var nhlTeams = []TeamIdentity{
	{Name: "Anaheim Ducks", Abbreviation: "ANA", Aliases: []string{"Ducks"}, Community: "AnaheimDucks", Latitude: 33.8078, Longitude: -117.8765},
	{Name: "Boston Bruins", Abbreviation: "BOS", Aliases: []string{"Bruins"}, Community: "BostonBruins", Latitude: 42.3662, Longitude: -71.0621},
	{Name: "Buffalo Sabres", Abbreviation: "BUF", Aliases: []string{"Sabres"}, Community: "sabres", Latitude: 42.8750, Longitude: -78.8764},
	{Name: "Calgary Flames", Abbreviation: "CGY", Aliases: []string{"Flames"}, Community: "CalgaryFlames", Latitude: 51.0374, Longitude: -114.0519},
	{Name: "Carolina Hurricanes", Abbreviation: "CAR", Aliases: []string{"Hurricanes", "Canes"}, Community: "canes", Latitude: 35.8033, Longitude: -78.7219},
	{Name: "Chicago Blackhawks", Abbreviation: "CHI", Aliases: []string{"Blackhawks", "Hawks"}, Community: "hawks", Latitude: 41.8807, Longitude: -87.6742},
	{Name: "Colorado Avalanche", Abbreviation: "COL", Aliases: []string{"Avalanche", "Avs"}, Community: "ColoradoAvalanche", Latitude: 39.7487, Longitude: -105.0077},
	{Name: "Columbus Blue Jackets", Abbreviation: "CBJ", Aliases: []string{"Blue Jackets", "Jackets"}, Community: "BlueJackets", Latitude: 39.9693, Longitude: -83.0061},
	{Name: "Dallas Stars", Abbreviation: "DAL", Aliases: []string{"Stars"}, Community: "DallasStars", Latitude: 32.7905, Longitude: -96.8103},
	{Name: "Detroit Red Wings", Abbreviation: "DET", Aliases: []string{"Red Wings", "Wings"}, Community: "DetroitRedWings", Latitude: 42.3411, Longitude: -83.0553},
	{Name: "Edmonton Oilers", Abbreviation: "EDM", Aliases: []string{"Oilers"}, Community: "EdmontonOilers", Latitude: 53.5469, Longitude: -113.4979},
	{Name: "Florida Panthers", Abbreviation: "FLA", Aliases: []string{"Panthers", "Cats"}, Community: "FloridaPanthers", Latitude: 26.1584, Longitude: -80.3257},
	{Name: "Los Angeles Kings", Abbreviation: "LAK", Aliases: []string{"Kings", "LA Kings"}, Community: "losangeleskings", Latitude: 34.0430, Longitude: -118.2673},
	{Name: "Minnesota Wild", Abbreviation: "MIN", Aliases: []string{"Wild"}, Community: "wildhockey", Latitude: 44.9448, Longitude: -93.1010},
	{Name: "Montréal Canadiens", Abbreviation: "MTL", Aliases: []string{"Montreal Canadiens", "Canadiens", "Habs"}, Community: "Habs", Latitude: 45.4961, Longitude: -73.5693},
	{Name: "Nashville Predators", Abbreviation: "NSH", Aliases: []string{"Predators", "Preds"}, Community: "Predators", Latitude: 36.1592, Longitude: -86.7785},
	{Name: "New Jersey Devils", Abbreviation: "NJD", Aliases: []string{"Devils"}, Community: "devils", Latitude: 40.7334, Longitude: -74.1713},
	{Name: "New York Islanders", Abbreviation: "NYI", Aliases: []string{"Islanders", "Isles"}, Community: "NewYorkIslanders", Latitude: 40.7226, Longitude: -73.5906},
	{Name: "New York Rangers", Abbreviation: "NYR", Aliases: []string{"Rangers", "Blueshirts"}, Community: "rangers", Latitude: 40.7505, Longitude: -73.9934},
	{Name: "Ottawa Senators", Abbreviation: "OTT", Aliases: []string{"Senators", "Sens"}, Community: "OttawaSenators", Latitude: 45.2969, Longitude: -75.9272},
	{Name: "Philadelphia Flyers", Abbreviation: "PHI", Aliases: []string{"Flyers"}, Community: "Flyers", Latitude: 39.9012, Longitude: -75.1720},
	{Name: "Pittsburgh Penguins", Abbreviation: "PIT", Aliases: []string{"Penguins", "Pens"}, Community: "penguins", Latitude: 40.4394, Longitude: -79.9892},
	{Name: "San Jose Sharks", Abbreviation: "SJS", Aliases: []string{"Sharks"}, Community: "SanJoseSharks", Latitude: 37.3327, Longitude: -121.9012},
	{Name: "Seattle Kraken", Abbreviation: "SEA", Aliases: []string{"Kraken"}, Community: "SeattleKraken", Latitude: 47.6221, Longitude: -122.3540},
	{Name: "St Louis Blues", Abbreviation: "STL", Aliases: []string{"St. Louis Blues", "Blues"}, Community: "stlouisblues", Latitude: 38.6268, Longitude: -90.2026},
	{Name: "Tampa Bay Lightning", Abbreviation: "TBL", Aliases: []string{"Lightning", "Bolts"}, Community: "TampaBayLightning", Latitude: 27.9427, Longitude: -82.4518},
	{Name: "Toronto Maple Leafs", Abbreviation: "TOR", Aliases: []string{"Maple Leafs", "Leafs"}, Community: "leafs", Latitude: 43.6435, Longitude: -79.3791},
	{Name: "Utah Mammoth", Abbreviation: "UTA", Aliases: []string{"Utah Hockey Club", "Mammoth"}, Community: "UtahHockeyClub", Latitude: 40.7683, Longitude: -111.9011},
	{Name: "Vancouver Canucks", Abbreviation: "VAN", Aliases: []string{"Canucks", "Nucks"}, Community: "canucks", Latitude: 49.2778, Longitude: -123.1089},
	{Name: "Vegas Golden Knights", Abbreviation: "VGK", Aliases: []string{"Golden Knights", "Knights"}, Community: "goldenknights", Latitude: 36.1029, Longitude: -115.1784},
	{Name: "Washington Capitals", Abbreviation: "WSH", Aliases: []string{"Capitals", "Caps"}, Community: "caps", Latitude: 38.8981, Longitude: -77.0209},
	{Name: "Winnipeg Jets", Abbreviation: "WPG", Aliases: []string{"Jets"}, Community: "winnipegjets", Latitude: 49.8928, Longitude: -97.1436},
}

// ESPN shortens several NHL abbreviations
var espnNHLAbbreviations = map[string]string{
	"NJ":   "NJD",
	"SJ":   "SJS",
	"TB":   "TBL",
	"LA":   "LAK",
	"UTAH": "UTA",
}

func init() {
	for i := range nhlTeams {
		nhlTeams[i].League = domain.SportNHL
	}
}
