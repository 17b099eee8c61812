package teams

import (
	"fmt"
	"sort"
	"strings"
)

// Providers with their own abbreviation vocabularies
const (
	ProviderESPN = "espn"
	ProviderMLB  = "mlbstats"
)

// TeamIdentity is the canonical record for one franchise
type TeamIdentity struct {
	Name         string   `json:"name"`
	League       string   `json:"league"`
	Abbreviation string   `json:"abbreviation"`
	Aliases      []string `json:"aliases,omitempty"`
	Community    string   `json:"community,omitempty"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	Outdoor      bool     `json:"outdoor,omitempty"`
}

// Registry resolves names, aliases and abbreviations to canonical identities.
// It is built once at startup and is read-only afterwards, so it is safe to
// share across goroutines. Lookups are case-insensitive.
type Registry struct {
	identities []TeamIdentity

	// lowercased name/alias -> identity indices across all leagues
	byName map[string][]int
	// league -> lowercased name/alias -> identity index
	byLeagueName map[string]map[string]int
	// league -> uppercased league abbreviation -> identity index
	byAbbr map[string]map[string]int
	// league -> lowercased community identifier -> identity index
	byCommunity map[string]map[string]int
	// provider -> league -> provider abbreviation -> league abbreviation
	translations map[string]map[string]map[string]string
}

// NewRegistry indexes identities. A name or alias claimed by two teams of the
// same league is rejected; the same alias in different leagues is allowed and
// only resolvable through league-scoped lookups.
func NewRegistry(identities []TeamIdentity, translations map[string]map[string]map[string]string) (*Registry, error) {
	r := &Registry{
		identities:   make([]TeamIdentity, len(identities)),
		byName:       make(map[string][]int),
		byLeagueName: make(map[string]map[string]int),
		byAbbr:       make(map[string]map[string]int),
		byCommunity:  make(map[string]map[string]int),
		translations: make(map[string]map[string]map[string]string),
	}
	copy(r.identities, identities)

	for i, team := range r.identities {
		if r.byLeagueName[team.League] == nil {
			r.byLeagueName[team.League] = make(map[string]int)
			r.byAbbr[team.League] = make(map[string]int)
			r.byCommunity[team.League] = make(map[string]int)
		}

		keys := append([]string{team.Name}, team.Aliases...)
		for _, key := range keys {
			norm := normalize(key)
			if norm == "" {
				continue
			}
			if existing, ok := r.byLeagueName[team.League][norm]; ok {
				if existing == i {
					continue
				}
				return nil, fmt.Errorf("%s: %q claimed by both %s and %s", team.League, key, r.identities[existing].Name, team.Name)
			}
			r.byLeagueName[team.League][norm] = i
			r.byName[norm] = append(r.byName[norm], i)
		}

		abbr := strings.ToUpper(strings.TrimSpace(team.Abbreviation))
		if abbr != "" {
			if existing, ok := r.byAbbr[team.League][abbr]; ok {
				return nil, fmt.Errorf("%s: abbreviation %s claimed by both %s and %s", team.League, abbr, r.identities[existing].Name, team.Name)
			}
			r.byAbbr[team.League][abbr] = i
		}

		if community := normalizeCommunity(team.Community); community != "" {
			if existing, ok := r.byCommunity[team.League][community]; ok {
				return nil, fmt.Errorf("%s: community %s claimed by both %s and %s", team.League, team.Community, r.identities[existing].Name, team.Name)
			}
			r.byCommunity[team.League][community] = i
		}
	}

	for provider, leagues := range translations {
		r.translations[provider] = make(map[string]map[string]string)
		for league, table := range leagues {
			r.translations[provider][league] = make(map[string]string, len(table))
			for from, to := range table {
				r.translations[provider][league][strings.ToUpper(from)] = strings.ToUpper(to)
			}
		}
	}

	return r, nil
}

// Canonicalize resolves raw across every league. Names that match teams in
// more than one league are left unresolved.
func (r *Registry) Canonicalize(raw string) (TeamIdentity, bool) {
	matches := r.byName[normalize(raw)]
	if len(matches) != 1 {
		return TeamIdentity{}, false
	}
	return r.identities[matches[0]], true
}

// CanonicalizeIn resolves raw within one league. Names and aliases win over
// community identifiers ("r/leafs", "leafs").
func (r *Registry) CanonicalizeIn(league, raw string) (TeamIdentity, bool) {
	if idx, ok := r.byLeagueName[league][normalize(raw)]; ok {
		return r.identities[idx], true
	}
	return r.ByCommunity(league, raw)
}

// ByCommunity resolves a team's community/forum identifier, with or without
// the "r/" prefix
func (r *Registry) ByCommunity(league, community string) (TeamIdentity, bool) {
	idx, ok := r.byCommunity[league][normalizeCommunity(community)]
	if !ok {
		return TeamIdentity{}, false
	}
	return r.identities[idx], true
}

// Community returns the community identifier for a team, or "" when the team
// is unknown or has none
func (r *Registry) Community(league, name string) string {
	team, ok := r.CanonicalizeIn(league, name)
	if !ok {
		return ""
	}
	return team.Community
}

// CanonicalName returns the canonical name for raw, or raw unchanged
func (r *Registry) CanonicalName(raw string) string {
	if team, ok := r.Canonicalize(raw); ok {
		return team.Name
	}
	return raw
}

// CanonicalNameIn is CanonicalName scoped to a league
func (r *Registry) CanonicalNameIn(league, raw string) string {
	if team, ok := r.CanonicalizeIn(league, raw); ok {
		return team.Name
	}
	return raw
}

// ByAbbreviation resolves a league abbreviation ("TOR", "NJD")
func (r *Registry) ByAbbreviation(league, abbr string) (TeamIdentity, bool) {
	idx, ok := r.byAbbr[league][strings.ToUpper(strings.TrimSpace(abbr))]
	if !ok {
		return TeamIdentity{}, false
	}
	return r.identities[idx], true
}

// TranslateAbbreviation maps a provider's abbreviation onto the league's
// vocabulary ("NJ" -> "NJD"). Unknown abbreviations pass through uppercased.
func (r *Registry) TranslateAbbreviation(provider, league, abbr string) string {
	abbr = strings.ToUpper(strings.TrimSpace(abbr))
	if to, ok := r.translations[provider][league][abbr]; ok {
		return to
	}
	return abbr
}

// ProviderAbbreviation maps a league abbreviation back to the provider's
// vocabulary ("NJD" -> "NJ"); abbreviations the provider shares pass through
func (r *Registry) ProviderAbbreviation(provider, league, abbr string) string {
	abbr = strings.ToUpper(strings.TrimSpace(abbr))
	for from, to := range r.translations[provider][league] {
		if to == abbr {
			return from
		}
	}
	return abbr
}

// ByProviderAbbreviation translates then resolves a provider abbreviation
func (r *Registry) ByProviderAbbreviation(provider, league, abbr string) (TeamIdentity, bool) {
	return r.ByAbbreviation(league, r.TranslateAbbreviation(provider, league, abbr))
}

// Resolve tries the name table first, then the abbreviation tables
func (r *Registry) Resolve(provider, league, raw string) (TeamIdentity, bool) {
	if team, ok := r.CanonicalizeIn(league, raw); ok {
		return team, true
	}
	return r.ByProviderAbbreviation(provider, league, raw)
}

// Aliases returns the lowercased strings that identify a team in free text
func (r *Registry) Aliases(league, name string) []string {
	team, ok := r.CanonicalizeIn(league, name)
	if !ok {
		if n := normalize(name); n != "" {
			return []string{n}
		}
		return nil
	}

	out := []string{normalize(team.Name)}
	for _, alias := range team.Aliases {
		if n := normalize(alias); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Location returns the home venue coordinates for a team
func (r *Registry) Location(league, name string) (lat, lon float64, ok bool) {
	team, found := r.CanonicalizeIn(league, name)
	if !found || (team.Latitude == 0 && team.Longitude == 0) {
		return 0, 0, false
	}
	return team.Latitude, team.Longitude, true
}

// Teams returns a league's identities sorted by name
func (r *Registry) Teams(league string) []TeamIdentity {
	var out []TeamIdentity
	for _, team := range r.identities {
		if team.League == league {
			out = append(out, team)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Leagues returns the league keys present in the registry
func (r *Registry) Leagues() []string {
	out := make([]string, 0, len(r.byLeagueName))
	for league := range r.byLeagueName {
		out = append(out, league)
	}
	sort.Strings(out)
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func normalizeCommunity(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "/")
	return strings.TrimPrefix(s, "r/")
}
