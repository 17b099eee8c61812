package prediction

import "github.com/fortuna/augur/internal/domain"

// Factor names in the order they appear in a prediction
const (
	FactorRecord        = "Record"
	FactorH2H           = "H2H"
	FactorLastTen       = "Last 10"
	FactorScoringMargin = "Scoring Margin"
	FactorGoalieDuel    = "Goalie Duel"
	FactorPitcherDuel   = "Pitcher Duel"
	FactorOPS           = "OPS"
	FactorERA           = "ERA"
	FactorRest          = "Rest"
	FactorSentiment     = "Sentiment"
	FactorWeather       = "Weather"
	FactorInjuries      = "Injury Impact"
	FactorBettingValue  = "Betting Value"
)

// Weights is a sport's fixed factor weight table. BettingDamping divides the
// Betting Value weight for the secondary pass.
type Weights struct {
	Factors        map[string]float64
	BettingDamping float64
}

// Weight returns the weight for a factor, 0 when the sport does not use it
func (w Weights) Weight(name string) float64 {
	return w.Factors[name]
}

// Profile isolates what matters for a sport from how factors combine
type Profile interface {
	Key() string
	Weights() Weights
	// SportFactors returns the factors shown between H2H and Injury Impact
	SportFactors(game domain.Game, in Context) []domain.Factor
}

type profile struct {
	key     string
	weights Weights
	build   []factorBuilder
}

func (p profile) Key() string      { return p.key }
func (p profile) Weights() Weights { return p.weights }

func (p profile) SportFactors(game domain.Game, in Context) []domain.Factor {
	out := make([]domain.Factor, 0, len(p.build))
	for _, b := range p.build {
		f := b(game, in)
		f.Weight = p.weights.Weight(f.Name)
		out = append(out, f)
	}
	return out
}

// HockeyProfile weighs recent form and the goaltending matchup
func HockeyProfile() Profile {
	return profile{
		key: domain.SportNHL,
		weights: Weights{
			Factors: map[string]float64{
				FactorRecord:        30,
				FactorH2H:           10,
				FactorLastTen:       15,
				FactorScoringMargin: 4,
				FactorGoalieDuel:    3,
				FactorRest:          1,
				FactorSentiment:     2,
				FactorInjuries:      1.5,
				FactorBettingValue:  10,
			},
			BettingDamping: 10,
		},
		build: []factorBuilder{lastTenFactor, scoringMarginFactor, goalieDuelFactor, restFactor, sentimentFactor},
	}
}

// BasketballProfile leans on record and point differential
func BasketballProfile() Profile {
	return profile{
		key: domain.SportNBA,
		weights: Weights{
			Factors: map[string]float64{
				FactorRecord:        35,
				FactorH2H:           8,
				FactorLastTen:       15,
				FactorScoringMargin: 1,
				FactorRest:          1.5,
				FactorSentiment:     2,
				FactorInjuries:      2,
				FactorBettingValue:  10,
			},
			BettingDamping: 5,
		},
		build: []factorBuilder{lastTenFactor, scoringMarginFactor, restFactor, sentimentFactor},
	}
}

// BaseballProfile adds the starting pitcher matchup and run environment
func BaseballProfile() Profile {
	return profile{
		key: domain.SportMLB,
		weights: Weights{
			Factors: map[string]float64{
				FactorRecord:       25,
				FactorH2H:          8,
				FactorLastTen:      10,
				FactorPitcherDuel:  4,
				FactorOPS:          0.5,
				FactorERA:          2,
				FactorSentiment:    1.5,
				FactorWeather:      1,
				FactorInjuries:     1,
				FactorBettingValue: 10,
			},
			BettingDamping: 5,
		},
		build: []factorBuilder{lastTenFactor, pitcherDuelFactor, opsFactor, eraFactor, sentimentFactor, weatherFactor},
	}
}

// FootballProfile has no trailing window; weather and rest matter more
func FootballProfile() Profile {
	return profile{
		key: domain.SportNFL,
		weights: Weights{
			Factors: map[string]float64{
				FactorRecord:        35,
				FactorH2H:           5,
				FactorScoringMargin: 1,
				FactorRest:          0.5,
				FactorSentiment:     2,
				FactorWeather:       2,
				FactorInjuries:      1,
				FactorBettingValue:  10,
			},
			BettingDamping: 10,
		},
		build: []factorBuilder{scoringMarginFactor, restFactor, sentimentFactor, weatherFactor},
	}
}

// DefaultProfile is used for sport keys without a dedicated table
func DefaultProfile() Profile {
	return profile{
		key: "default",
		weights: Weights{
			Factors: map[string]float64{
				FactorRecord:       30,
				FactorH2H:          10,
				FactorLastTen:      10,
				FactorSentiment:    2,
				FactorInjuries:     1,
				FactorBettingValue: 10,
			},
			BettingDamping: 10,
		},
		build: []factorBuilder{lastTenFactor, sentimentFactor},
	}
}

// Profiles returns the built-in sport profiles keyed by sport key
func Profiles() map[string]Profile {
	out := make(map[string]Profile)
	for _, p := range []Profile{HockeyProfile(), BasketballProfile(), BaseballProfile(), FootballProfile()} {
		out[p.Key()] = p
	}
	return out
}
