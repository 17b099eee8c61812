package teams

import "github.com/fortuna/augur/internal/domain"

// DefaultRegistry builds the registry for every supported league
func DefaultRegistry() (*Registry, error) {
	var all []TeamIdentity
	all = append(all, nhlTeams...)
	all = append(all, nbaTeams...)
	all = append(all, mlbTeams...)
	all = append(all, nflTeams...)

	translations := map[string]map[string]map[string]string{
		ProviderESPN: {
			domain.SportNHL: espnNHLAbbreviations,
			domain.SportNBA: espnNBAAbbreviations,
			domain.SportMLB: espnMLBAbbreviations,
			domain.SportNFL: espnNFLAbbreviations,
		},
	}

	return NewRegistry(all, translations)
}
