package teams

import "github.com/fortuna/augur/internal/domain"

var mlbTeams = []TeamIdentity{
	{Name: "Arizona Diamondbacks", Abbreviation: "ARI", Aliases: []string{"Diamondbacks", "D-backs", "Dbacks"}, Community: "azdiamondbacks", Latitude: 33.4455, Longitude: -112.0667},
	{Name: "Atlanta Braves", Abbreviation: "ATL", Aliases: []string{"Braves"}, Community: "Braves", Latitude: 33.8908, Longitude: -84.4678, Outdoor: true},
	{Name: "Baltimore Orioles", Abbreviation: "BAL", Aliases: []string{"Orioles", "O's"}, Community: "orioles", Latitude: 39.2839, Longitude: -76.6217, Outdoor: true},
	{Name: "Boston Red Sox", Abbreviation: "BOS", Aliases: []string{"Red Sox"}, Community: "redsox", Latitude: 42.3467, Longitude: -71.0972, Outdoor: true},
	{Name: "Chicago Cubs", Abbreviation: "CHC", Aliases: []string{"Cubs"}, Community: "CHICubs", Latitude: 41.9484, Longitude: -87.6553, Outdoor: true},
	{Name: "Chicago White Sox", Abbreviation: "CWS", Aliases: []string{"White Sox", "Sox"}, Community: "whitesox", Latitude: 41.8299, Longitude: -87.6338, Outdoor: true},
	{Name: "Cincinnati Reds", Abbreviation: "CIN", Aliases: []string{"Reds"}, Community: "Reds", Latitude: 39.0975, Longitude: -84.5066, Outdoor: true},
	{Name: "Cleveland Guardians", Abbreviation: "CLE", Aliases: []string{"Guardians", "Guards"}, Community: "ClevelandGuardians", Latitude: 41.4962, Longitude: -81.6852, Outdoor: true},
	{Name: "Colorado Rockies", Abbreviation: "COL", Aliases: []string{"Rockies", "Rox"}, Community: "ColoradoRockies", Latitude: 39.7559, Longitude: -104.9942, Outdoor: true},
	{Name: "Detroit Tigers", Abbreviation: "DET", Aliases: []string{"Tigers"}, Community: "motorcitykitties", Latitude: 42.3390, Longitude: -83.0485, Outdoor: true},
	{Name: "Houston Astros", Abbreviation: "HOU", Aliases: []string{"Astros", "Stros"}, Community: "Astros", Latitude: 29.7573, Longitude: -95.3555},
	{Name: "Kansas City Royals", Abbreviation: "KC", Aliases: []string{"Royals"}, Community: "KCRoyals", Latitude: 39.0517, Longitude: -94.4803, Outdoor: true},
	{Name: "Los Angeles Angels", Abbreviation: "LAA", Aliases: []string{"Angels", "Halos"}, Community: "angelsbaseball", Latitude: 33.8003, Longitude: -117.8827, Outdoor: true},
	{Name: "Los Angeles Dodgers", Abbreviation: "LAD", Aliases: []string{"Dodgers"}, Community: "Dodgers", Latitude: 34.0739, Longitude: -118.2400, Outdoor: true},
	{Name: "Miami Marlins", Abbreviation: "MIA", Aliases: []string{"Marlins"}, Community: "letsgofish", Latitude: 25.7781, Longitude: -80.2197},
	{Name: "Milwaukee Brewers", Abbreviation: "MIL", Aliases: []string{"Brewers", "Brew Crew"}, Community: "Brewers", Latitude: 43.0280, Longitude: -87.9712},
	{Name: "Minnesota Twins", Abbreviation: "MIN", Aliases: []string{"Twins"}, Community: "minnesotatwins", Latitude: 44.9817, Longitude: -93.2776, Outdoor: true},
	{Name: "New York Mets", Abbreviation: "NYM", Aliases: []string{"Mets"}, Community: "NewYorkMets", Latitude: 40.7571, Longitude: -73.8458, Outdoor: true},
	{Name: "New York Yankees", Abbreviation: "NYY", Aliases: []string{"Yankees", "Yanks"}, Community: "NYYankees", Latitude: 40.8296, Longitude: -73.9262, Outdoor: true},
	{Name: "Athletics", Abbreviation: "ATH", Aliases: []string{"Oakland Athletics", "A's"}, Community: "OaklandAthletics", Latitude: 38.5803, Longitude: -121.5133, Outdoor: true},
	{Name: "Philadelphia Phillies", Abbreviation: "PHI", Aliases: []string{"Phillies", "Phils"}, Community: "phillies", Latitude: 39.9061, Longitude: -75.1665, Outdoor: true},
	{Name: "Pittsburgh Pirates", Abbreviation: "PIT", Aliases: []string{"Pirates", "Bucs"}, Community: "buccos", Latitude: 40.4469, Longitude: -80.0057, Outdoor: true},
	{Name: "San Diego Padres", Abbreviation: "SD", Aliases: []string{"Padres", "Friars"}, Community: "Padres", Latitude: 32.7073, Longitude: -117.1566, Outdoor: true},
	{Name: "San Francisco Giants", Abbreviation: "SF", Aliases: []string{"Giants"}, Community: "SFGiants", Latitude: 37.7786, Longitude: -122.3893, Outdoor: true},
	{Name: "Seattle Mariners", Abbreviation: "SEA", Aliases: []string{"Mariners", "M's"}, Community: "Mariners", Latitude: 47.5914, Longitude: -122.3325},
	{Name: "St. Louis Cardinals", Abbreviation: "STL", Aliases: []string{"St Louis Cardinals", "Cardinals", "Cards"}, Community: "Cardinals", Latitude: 38.6226, Longitude: -90.1928, Outdoor: true},
	{Name: "Tampa Bay Rays", Abbreviation: "TB", Aliases: []string{"Rays"}, Community: "tampabayrays", Latitude: 27.7682, Longitude: -82.6534},
	{Name: "Texas Rangers", Abbreviation: "TEX", Aliases: []string{"Rangers"}, Community: "TexasRangers", Latitude: 32.7473, Longitude: -97.0845},
	{Name: "Toronto Blue Jays", Abbreviation: "TOR", Aliases: []string{"Blue Jays", "Jays"}, Community: "Torontobluejays", Latitude: 43.6414, Longitude: -79.3894},
	{Name: "Washington Nationals", Abbreviation: "WSH", Aliases: []string{"Nationals", "Nats"}, Community: "Nationals", Latitude: 38.8730, Longitude: -77.0074, Outdoor: true},
}

var espnMLBAbbreviations = map[string]string{
	"CHW": "CWS",
	"OAK": "ATH",
}

func init() {
	for i := range mlbTeams {
		mlbTeams[i].League = domain.SportMLB
	}
}
