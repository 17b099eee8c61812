package espn

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fortuna/augur/internal/domain"
	"github.com/fortuna/augur/internal/teams"
)

const (
	// scheduleLookback covers a full road trip, not just the back-to-back
	// and four-day windows
	scheduleLookback  = 14 * 24 * time.Hour
	scheduleLookahead = 24 * time.Hour
)

// TeamDirectory resolves ESPN labels and abbreviations to canonical teams
type TeamDirectory interface {
	Resolve(provider, league, raw string) (teams.TeamIdentity, bool)
	ProviderAbbreviation(provider, league, abbr string) string
	CanonicalizeIn(league, raw string) (teams.TeamIdentity, bool)
}

// Ingester turns ESPN payloads into canonical domain values
type Ingester struct {
	client *Client
	teams  TeamDirectory
	log    *logrus.Entry
}

// NewIngester creates an ESPN ingester over client
func NewIngester(client *Client, directory TeamDirectory, log *logrus.Logger) *Ingester {
	return &Ingester{
		client: client,
		teams:  directory,
		log:    log.WithField("component", "espn"),
	}
}

func sportPath(sport string) (string, error) {
	path, ok := SportPaths[sport]
	if !ok {
		return "", fmt.Errorf("espn: unsupported sport %q", sport)
	}
	return path, nil
}

// Schedule returns the games around asOf used for rest and travel analysis
func (i *Ingester) Schedule(ctx context.Context, sport string, asOf time.Time) ([]domain.Game, error) {
	path, err := sportPath(sport)
	if err != nil {
		return nil, err
	}

	data, err := i.client.FetchScoreboard(ctx, path, asOf.Add(-scheduleLookback), asOf.Add(scheduleLookahead))
	if err != nil {
		return nil, fmt.Errorf("fetching %s scoreboard: %w", sport, err)
	}

	parsed := ParseScoreboard(data)
	games := make([]domain.Game, 0, len(parsed))
	for _, p := range parsed {
		games = append(games, domain.Game{
			ID:           p.ID,
			SportKey:     sport,
			HomeTeam:     i.teamName(sport, p.Home),
			AwayTeam:     i.teamName(sport, p.Away),
			CommenceTime: p.Date,
		})
	}

	i.log.WithField("sport", sport).Debugf("Parsed %d scoreboard games", len(games))
	return games, nil
}

// TeamStats returns season records and scoring rates keyed by canonical name
func (i *Ingester) TeamStats(ctx context.Context, sport string) (map[string]domain.TeamStats, error) {
	path, err := sportPath(sport)
	if err != nil {
		return nil, err
	}

	data, err := i.client.FetchStandings(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetching %s standings: %w", sport, err)
	}

	out := make(map[string]domain.TeamStats)
	for _, s := range ParseStandings(data) {
		name := i.teamName(sport, s.Team)
		stats := map[string]float64{}
		if s.PointsFor > 0 || s.PointsAgainst > 0 {
			stats[domain.StatPointsFor] = s.PointsFor
			stats[domain.StatPointsAgainst] = s.PointsAgainst
		}
		out[name] = domain.TeamStats{
			Team:    name,
			Record:  s.Record(),
			Streak:  s.Streak,
			LastTen: s.LastTen,
			Stats:   stats,
		}
	}

	if len(out) == 0 {
		i.log.WithField("sport", sport).Warn("⚠️  Standings payload had no teams")
	}
	return out, nil
}

// Injuries returns the injury report keyed by canonical name
func (i *Ingester) Injuries(ctx context.Context, sport string) (map[string][]domain.Injury, error) {
	path, err := sportPath(sport)
	if err != nil {
		return nil, err
	}

	data, err := i.client.FetchInjuries(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetching %s injuries: %w", sport, err)
	}

	out := make(map[string][]domain.Injury)
	for _, p := range ParseInjuries(data) {
		name := i.teamName(sport, TeamMeta{DisplayName: p.Team})
		out[name] = append(out[name], p.Injury)
	}
	return out, nil
}

// HeadToHead derives the completed season series between home and away from
// the home team's schedule
func (i *Ingester) HeadToHead(ctx context.Context, sport, home, away string) (domain.H2H, error) {
	path, err := sportPath(sport)
	if err != nil {
		return domain.H2H{}, err
	}

	team, ok := i.teams.CanonicalizeIn(sport, home)
	if !ok {
		return domain.H2H{}, fmt.Errorf("espn: unknown team %q", home)
	}
	abbr := i.teams.ProviderAbbreviation(teams.ProviderESPN, sport, team.Abbreviation)

	data, err := i.client.FetchTeamSchedule(ctx, path, abbr)
	if err != nil {
		return domain.H2H{}, fmt.Errorf("fetching %s schedule: %w", abbr, err)
	}

	var wins, losses int
	for _, g := range ParseScoreboard(data) {
		if g.Status != "final" {
			continue
		}

		homeName, awayName := i.teamName(sport, g.Home), i.teamName(sport, g.Away)
		var teamWon bool
		switch {
		case homeName == team.Name && awayName == away:
			teamWon = g.HomeWinner || (!g.AwayWinner && g.HomeScore > g.AwayScore)
		case awayName == team.Name && homeName == away:
			teamWon = g.AwayWinner || (!g.HomeWinner && g.AwayScore > g.HomeScore)
		default:
			continue
		}

		if teamWon {
			wins++
		} else {
			losses++
		}
	}

	return domain.H2H{
		Home: fmt.Sprintf("%d-%d", wins, losses),
		Away: fmt.Sprintf("%d-%d", losses, wins),
	}, nil
}

// teamName resolves a competitor to its canonical name, preferring the
// display name and falling back to the abbreviation
func (i *Ingester) teamName(sport string, meta TeamMeta) string {
	if meta.DisplayName != "" {
		if team, ok := i.teams.Resolve(teams.ProviderESPN, sport, meta.DisplayName); ok {
			return team.Name
		}
	}
	if meta.Abbreviation != "" {
		if team, ok := i.teams.Resolve(teams.ProviderESPN, sport, meta.Abbreviation); ok {
			return team.Name
		}
	}
	return fallbackString(meta.DisplayName, meta.Abbreviation)
}
