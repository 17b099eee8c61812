package teams

import "github.com/fortuna/augur/internal/domain"

var nflTeams = []TeamIdentity{
	{Name: "Arizona Cardinals", Abbreviation: "ARI", Aliases: []string{"Cardinals"}, Community: "AZCardinals", Latitude: 33.5276, Longitude: -112.2626},
	{Name: "Atlanta Falcons", Abbreviation: "ATL", Aliases: []string{"Falcons"}, Community: "falcons", Latitude: 33.7554, Longitude: -84.4008},
	{Name: "Baltimore Ravens", Abbreviation: "BAL", Aliases: []string{"Ravens"}, Community: "ravens", Latitude: 39.2780, Longitude: -76.6227, Outdoor: true},
	{Name: "Buffalo Bills", Abbreviation: "BUF", Aliases: []string{"Bills"}, Community: "buffalobills", Latitude: 42.7738, Longitude: -78.7870, Outdoor: true},
	{Name: "Carolina Panthers", Abbreviation: "CAR", Aliases: []string{"Panthers"}, Community: "panthers", Latitude: 35.2258, Longitude: -80.8528, Outdoor: true},
	{Name: "Chicago Bears", Abbreviation: "CHI", Aliases: []string{"Bears"}, Community: "CHIBears", Latitude: 41.8623, Longitude: -87.6167, Outdoor: true},
	{Name: "Cincinnati Bengals", Abbreviation: "CIN", Aliases: []string{"Bengals"}, Community: "bengals", Latitude: 39.0955, Longitude: -84.5161, Outdoor: true},
	{Name: "Cleveland Browns", Abbreviation: "CLE", Aliases: []string{"Browns"}, Community: "Browns", Latitude: 41.5061, Longitude: -81.6995, Outdoor: true},
	{Name: "Dallas Cowboys", Abbreviation: "DAL", Aliases: []string{"Cowboys"}, Community: "cowboys", Latitude: 32.7473, Longitude: -97.0945},
	{Name: "Denver Broncos", Abbreviation: "DEN", Aliases: []string{"Broncos"}, Community: "DenverBroncos", Latitude: 39.7439, Longitude: -105.0201, Outdoor: true},
	{Name: "Detroit Lions", Abbreviation: "DET", Aliases: []string{"Lions"}, Community: "detroitlions", Latitude: 42.3400, Longitude: -83.0456},
	{Name: "Green Bay Packers", Abbreviation: "GB", Aliases: []string{"Packers"}, Community: "GreenBayPackers", Latitude: 44.5013, Longitude: -88.0622, Outdoor: true},
	{Name: "Houston Texans", Abbreviation: "HOU", Aliases: []string{"Texans"}, Community: "Texans", Latitude: 29.6847, Longitude: -95.4107},
	{Name: "Indianapolis Colts", Abbreviation: "IND", Aliases: []string{"Colts"}, Community: "Colts", Latitude: 39.7601, Longitude: -86.1639},
	{Name: "Jacksonville Jaguars", Abbreviation: "JAX", Aliases: []string{"Jaguars", "Jags"}, Community: "Jaguars", Latitude: 30.3239, Longitude: -81.6373, Outdoor: true},
	{Name: "Kansas City Chiefs", Abbreviation: "KC", Aliases: []string{"Chiefs"}, Community: "KansasCityChiefs", Latitude: 39.0489, Longitude: -94.4839, Outdoor: true},
	{Name: "Las Vegas Raiders", Abbreviation: "LV", Aliases: []string{"Raiders"}, Community: "raiders", Latitude: 36.0909, Longitude: -115.1833},
	{Name: "Los Angeles Chargers", Abbreviation: "LAC", Aliases: []string{"Chargers", "Bolts"}, Community: "Chargers", Latitude: 33.9535, Longitude: -118.3392},
	{Name: "Los Angeles Rams", Abbreviation: "LAR", Aliases: []string{"Rams"}, Community: "LosAngelesRams", Latitude: 33.9535, Longitude: -118.3392},
	{Name: "Miami Dolphins", Abbreviation: "MIA", Aliases: []string{"Dolphins", "Fins"}, Community: "miamidolphins", Latitude: 25.9580, Longitude: -80.2389, Outdoor: true},
	{Name: "Minnesota Vikings", Abbreviation: "MIN", Aliases: []string{"Vikings", "Vikes"}, Community: "minnesotavikings", Latitude: 44.9737, Longitude: -93.2577},
	{Name: "New England Patriots", Abbreviation: "NE", Aliases: []string{"Patriots", "Pats"}, Community: "Patriots", Latitude: 42.0909, Longitude: -71.2643, Outdoor: true},
	{Name: "New Orleans Saints", Abbreviation: "NO", Aliases: []string{"Saints"}, Community: "Saints", Latitude: 29.9511, Longitude: -90.0812},
	{Name: "New York Giants", Abbreviation: "NYG", Aliases: []string{"Giants"}, Community: "NYGiants", Latitude: 40.8135, Longitude: -74.0745, Outdoor: true},
	{Name: "New York Jets", Abbreviation: "NYJ", Aliases: []string{"Jets"}, Community: "nyjets", Latitude: 40.8135, Longitude: -74.0745, Outdoor: true},
	{Name: "Philadelphia Eagles", Abbreviation: "PHI", Aliases: []string{"Eagles", "Birds"}, Community: "eagles", Latitude: 39.9008, Longitude: -75.1675, Outdoor: true},
	{Name: "Pittsburgh Steelers", Abbreviation: "PIT", Aliases: []string{"Steelers"}, Community: "steelers", Latitude: 40.4468, Longitude: -80.0158, Outdoor: true},
	{Name: "San Francisco 49ers", Abbreviation: "SF", Aliases: []string{"49ers", "Niners"}, Community: "49ers", Latitude: 37.4030, Longitude: -121.9700, Outdoor: true},
	{Name: "Seattle Seahawks", Abbreviation: "SEA", Aliases: []string{"Seahawks", "Hawks"}, Community: "Seahawks", Latitude: 47.5952, Longitude: -122.3316, Outdoor: true},
	{Name: "Tampa Bay Buccaneers", Abbreviation: "TB", Aliases: []string{"Buccaneers", "Bucs"}, Community: "buccaneers", Latitude: 27.9759, Longitude: -82.5033, Outdoor: true},
	{Name: "Tennessee Titans", Abbreviation: "TEN", Aliases: []string{"Titans"}, Community: "Tennesseetitans", Latitude: 36.1665, Longitude: -86.7713, Outdoor: true},
	{Name: "Washington Commanders", Abbreviation: "WAS", Aliases: []string{"Commanders", "Commies"}, Community: "Commanders", Latitude: 38.9078, Longitude: -76.8645, Outdoor: true},
}

var espnNFLAbbreviations = map[string]string{
	"WSH": "WAS",
}

func init() {
	for i := range nflTeams {
		nflTeams[i].League = domain.SportNFL
	}
}
