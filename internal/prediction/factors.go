package prediction

import (
	"fmt"
	"math"
	"strconv"

	"github.com/fortuna/augur/internal/domain"
	"github.com/fortuna/augur/internal/fatigue"
)

// Context is everything the engine needs beyond the game itself. Maps are
// keyed by canonical team name; missing entries mean "no data".
type Context struct {
	TeamStats map[string]domain.TeamStats
	Injuries  map[string][]domain.Injury
	H2H       *domain.H2H
	Schedule  []domain.Game
	Pitchers  map[string]domain.Pitcher
	Goalies   map[string]domain.Goalie
	Sentiment *domain.SentimentScore
	Weather   *domain.Weather
}

type factorBuilder func(game domain.Game, in Context) domain.Factor

func (in Context) stats(team string) (domain.TeamStats, bool) {
	ts, ok := in.TeamStats[team]
	return ts, ok
}

func unavailable(name string) domain.Factor {
	return domain.Factor{
		Name:        name,
		RawValue:    math.NaN(),
		HomeDisplay: domain.NotAvailable,
		AwayDisplay: domain.NotAvailable,
	}
}

func recordFactor(game domain.Game, in Context) domain.Factor {
	home, _ := in.stats(game.HomeTeam)
	away, _ := in.stats(game.AwayTeam)
	// rate-only entries (standings missing) carry no record
	if home.Record == "" || away.Record == "" {
		return unavailable(FactorRecord)
	}

	hr, ar := domain.ParseRecord(home.Record), domain.ParseRecord(away.Record)
	return domain.Factor{
		Name:        FactorRecord,
		RawValue:    hr.WinPct() - ar.WinPct(),
		HomeDisplay: hr.String(),
		AwayDisplay: ar.String(),
	}
}

func h2hFactor(game domain.Game, in Context) domain.Factor {
	if in.H2H == nil {
		return unavailable(FactorH2H)
	}

	hr, ar := domain.ParseRecord(in.H2H.Home), domain.ParseRecord(in.H2H.Away)
	return domain.Factor{
		Name:        FactorH2H,
		RawValue:    hr.WinPct() - ar.WinPct(),
		HomeDisplay: hr.String(),
		AwayDisplay: ar.String(),
	}
}

func lastTenFactor(game domain.Game, in Context) domain.Factor {
	home, _ := in.stats(game.HomeTeam)
	away, _ := in.stats(game.AwayTeam)
	if home.LastTen == "" || away.LastTen == "" {
		return unavailable(FactorLastTen)
	}

	hr, ar := domain.ParseRecord(home.LastTen), domain.ParseRecord(away.LastTen)
	return domain.Factor{
		Name:        FactorLastTen,
		RawValue:    hr.WinPct() - ar.WinPct(),
		HomeDisplay: hr.String(),
		AwayDisplay: ar.String(),
	}
}

func scoringMarginFactor(game domain.Game, in Context) domain.Factor {
	homeMargin, okHome := margin(in, game.HomeTeam)
	awayMargin, okAway := margin(in, game.AwayTeam)
	if !okHome || !okAway {
		return unavailable(FactorScoringMargin)
	}

	return domain.Factor{
		Name:        FactorScoringMargin,
		RawValue:    homeMargin - awayMargin,
		HomeDisplay: signed(homeMargin),
		AwayDisplay: signed(awayMargin),
	}
}

func margin(in Context, team string) (float64, bool) {
	ts, ok := in.stats(team)
	if !ok {
		return 0, false
	}
	scored, okFor := ts.Stat(domain.StatPointsFor)
	allowed, okAgainst := ts.Stat(domain.StatPointsAgainst)
	if !okFor || !okAgainst {
		return 0, false
	}
	return scored - allowed, true
}

// goalieDuelFactor favors the side with the lower GAA and higher save
// percentage; GSAx adds a small term when both sides report it
func goalieDuelFactor(game domain.Game, in Context) domain.Factor {
	home, okHome := in.Goalies[game.HomeTeam]
	away, okAway := in.Goalies[game.AwayTeam]
	if !okHome || !okAway || home.Name == "" || away.Name == "" {
		f := unavailable(FactorGoalieDuel)
		if okHome && home.Name != "" {
			f.HomeDisplay = goalieDisplay(home)
		}
		if okAway && away.Name != "" {
			f.AwayDisplay = goalieDisplay(away)
		}
		return f
	}

	raw := (away.GAA - home.GAA) + (home.SavePct-away.SavePct)*100
	if home.GSAx != nil && away.GSAx != nil {
		raw += (*home.GSAx - *away.GSAx) * 0.1
	}

	return domain.Factor{
		Name:        FactorGoalieDuel,
		RawValue:    raw,
		HomeDisplay: goalieDisplay(home),
		AwayDisplay: goalieDisplay(away),
	}
}

func goalieDisplay(g domain.Goalie) string {
	sv := strconv.FormatFloat(g.SavePct, 'f', 3, 64)
	if len(sv) > 1 && sv[0] == '0' {
		sv = sv[1:]
	}
	label := fmt.Sprintf("%s (%.2f GAA, %s)", g.Name, g.GAA, sv)
	if !g.Confirmed {
		label += " projected"
	}
	return label
}

func pitcherDuelFactor(game domain.Game, in Context) domain.Factor {
	home, okHome := in.Pitchers[game.HomeTeam]
	away, okAway := in.Pitchers[game.AwayTeam]
	if !okHome || !okAway || home.Name == "" || away.Name == "" {
		f := unavailable(FactorPitcherDuel)
		if okHome && home.Name != "" {
			f.HomeDisplay = pitcherDisplay(home)
		}
		if okAway && away.Name != "" {
			f.AwayDisplay = pitcherDisplay(away)
		}
		return f
	}

	return domain.Factor{
		Name:        FactorPitcherDuel,
		RawValue:    (away.ERA - home.ERA) + (away.WHIP-home.WHIP)*3,
		HomeDisplay: pitcherDisplay(home),
		AwayDisplay: pitcherDisplay(away),
	}
}

func pitcherDisplay(p domain.Pitcher) string {
	return fmt.Sprintf("%s (%.2f ERA, %.2f WHIP)", p.Name, p.ERA, p.WHIP)
}

func opsFactor(game domain.Game, in Context) domain.Factor {
	home, away, ok := statPair(in, game, domain.StatOPS)
	if !ok {
		return unavailable(FactorOPS)
	}
	return domain.Factor{
		Name:        FactorOPS,
		RawValue:    (home - away) * 100,
		HomeDisplay: strconv.FormatFloat(home, 'f', 3, 64),
		AwayDisplay: strconv.FormatFloat(away, 'f', 3, 64),
	}
}

// eraFactor is away minus home so a lower home staff ERA helps home
func eraFactor(game domain.Game, in Context) domain.Factor {
	home, away, ok := statPair(in, game, domain.StatERA)
	if !ok {
		return unavailable(FactorERA)
	}
	return domain.Factor{
		Name:        FactorERA,
		RawValue:    away - home,
		HomeDisplay: strconv.FormatFloat(home, 'f', 2, 64),
		AwayDisplay: strconv.FormatFloat(away, 'f', 2, 64),
	}
}

func statPair(in Context, game domain.Game, key string) (home, away float64, ok bool) {
	hs, okHome := in.stats(game.HomeTeam)
	as, okAway := in.stats(game.AwayTeam)
	if !okHome || !okAway {
		return 0, 0, false
	}
	home, okHome = hs.Stat(key)
	away, okAway = as.Stat(key)
	return home, away, okHome && okAway
}

// restFactor compares schedule fatigue as of puck drop; a more tired visitor favors home
func restFactor(game domain.Game, in Context) domain.Factor {
	home := fatigue.Score(game.HomeTeam, in.Schedule, game.CommenceTime)
	away := fatigue.Score(game.AwayTeam, in.Schedule, game.CommenceTime)
	return domain.Factor{
		Name:        FactorRest,
		RawValue:    away - home,
		HomeDisplay: strconv.FormatFloat(home, 'f', 0, 64),
		AwayDisplay: strconv.FormatFloat(away, 'f', 0, 64),
	}
}

func sentimentFactor(game domain.Game, in Context) domain.Factor {
	if in.Sentiment == nil {
		return unavailable(FactorSentiment)
	}
	s := in.Sentiment
	return domain.Factor{
		Name:        FactorSentiment,
		RawValue:    (s.Home - s.Away) / 9,
		HomeDisplay: strconv.FormatFloat(s.Home, 'f', 1, 64),
		AwayDisplay: strconv.FormatFloat(s.Away, 'f', 1, 64),
	}
}

// weatherFactor gives home a point in adverse outdoor conditions
func weatherFactor(game domain.Game, in Context) domain.Factor {
	if in.Weather == nil {
		return unavailable(FactorWeather)
	}
	w := in.Weather
	raw := 0.0
	if w.Adverse() {
		raw = 1
	}
	display := fmt.Sprintf("%.0f°F, %.0f mph", w.TempF, w.WindMPH)
	if w.PrecipMM > 0 {
		display += fmt.Sprintf(", %.1f mm", w.PrecipMM)
	}
	return domain.Factor{
		Name:        FactorWeather,
		RawValue:    raw,
		HomeDisplay: display,
		AwayDisplay: display,
	}
}

// injuryFactor counts listed injuries; more away injuries favors home
func injuryFactor(game domain.Game, in Context) domain.Factor {
	home := len(in.Injuries[game.HomeTeam])
	away := len(in.Injuries[game.AwayTeam])
	return domain.Factor{
		Name:        FactorInjuries,
		RawValue:    float64(away - home),
		HomeDisplay: strconv.Itoa(home),
		AwayDisplay: strconv.Itoa(away),
	}
}

func signed(v float64) string {
	return fmt.Sprintf("%+.2f", v)
}
