package prediction

import (
	"math"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/fortuna/augur/internal/domain"
)

const (
	// Baseline is the neutral starting score for the home side
	Baseline = 50.0

	strongThreshold = 15.0
	goodThreshold   = 7.5

	SideHome = "home"
	SideAway = "away"
)

// Engine turns a game and its context into a GamePrediction. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	profiles         map[string]Profile
	fallback         Profile
	primaryBookmaker string
	log              *logrus.Entry
}

// Option configures an Engine
type Option func(*Engine)

// WithPrimaryBookmaker selects the book whose h2h prices feed Betting Value
func WithPrimaryBookmaker(key string) Option {
	return func(e *Engine) { e.primaryBookmaker = key }
}

// WithProfile registers or replaces a sport profile
func WithProfile(p Profile) Option {
	return func(e *Engine) { e.profiles[p.Key()] = p }
}

// WithLogger sets the logger
func WithLogger(log *logrus.Logger) Option {
	return func(e *Engine) { e.log = log.WithField("component", "prediction") }
}

// NewEngine creates an engine with the built-in sport profiles
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		profiles: Profiles(),
		fallback: DefaultProfile(),
		log:      logrus.StandardLogger().WithField("component", "prediction"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ProfileFor selects the profile for a sport key, falling back to the default table
func (e *Engine) ProfileFor(sport string) Profile {
	if p, ok := e.profiles[sport]; ok {
		return p
	}
	return e.fallback
}

// Sports lists sport keys with a dedicated profile
func (e *Engine) Sports() []string {
	out := make([]string, 0, len(e.profiles))
	for key := range e.profiles {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Predict scores game under profile. Output depends only on its inputs.
//
// Factors are summed into the home score from the 50 baseline in display
// order. Betting Value is applied afterwards as a damped second pass against
// the score accumulated so far: value = homeScore - 100/homeOdds, added with
// weight/damping. It is skipped when either price is missing.
func (e *Engine) Predict(game domain.Game, profile Profile, in Context) domain.GamePrediction {
	if profile == nil {
		profile = e.ProfileFor(game.SportKey)
	}
	weights := profile.Weights()

	factors := make(domain.Factors, 0, 12)
	withWeight := func(f domain.Factor) domain.Factor {
		f.Weight = weights.Weight(f.Name)
		return f
	}

	factors = append(factors, withWeight(recordFactor(game, in)))
	factors = append(factors, withWeight(h2hFactor(game, in)))
	factors = append(factors, profile.SportFactors(game, in)...)
	factors = append(factors, withWeight(injuryFactor(game, in)))

	homeScore := Baseline
	for _, f := range factors {
		homeScore += f.Contribution()
	}

	betting, aux := e.bettingValue(game, homeScore, weights)
	homeScore += betting.Contribution()
	factors = append(factors, betting)

	if math.IsNaN(homeScore) || math.IsInf(homeScore, 0) {
		e.log.WithField("game", game.ID).Warn("⚠️  Non-finite home score, resetting to baseline")
		homeScore = Baseline
	}

	winner, side := game.AwayTeam, SideAway
	if homeScore > Baseline {
		winner, side = game.HomeTeam, SideHome
	}

	aux.Weather = in.Weather

	return domain.GamePrediction{
		Game:       game,
		Winner:     winner,
		WinnerSide: side,
		Confidence: Confidence(homeScore),
		HomeScore:  homeScore,
		Factors:    factors,
		Auxiliary:  aux,
	}
}

// bettingValue compares the accumulated home score with the market's implied
// home probability. The away value mirrors it on the implied 100-homeScore share.
func (e *Engine) bettingValue(game domain.Game, homeScore float64, weights Weights) (domain.Factor, domain.Auxiliary) {
	homeOdds, awayOdds, ok := game.MoneylineOdds(e.primaryBookmaker)
	if !ok {
		f := unavailable(FactorBettingValue)
		f.Weight = dampedWeight(weights)
		return f, domain.Auxiliary{}
	}

	homeValue := homeScore - 100/homeOdds
	awayValue := (100 - homeScore) - 100/awayOdds

	f := domain.Factor{
		Name:        FactorBettingValue,
		RawValue:    homeValue,
		Weight:      dampedWeight(weights),
		HomeDisplay: strconv.FormatFloat(homeOdds, 'f', 2, 64),
		AwayDisplay: strconv.FormatFloat(awayOdds, 'f', 2, 64),
	}
	return f, domain.Auxiliary{HomeValue: &homeValue, AwayValue: &awayValue}
}

func dampedWeight(w Weights) float64 {
	damping := w.BettingDamping
	if damping <= 0 {
		damping = 1
	}
	return w.Weight(FactorBettingValue) / damping
}

// Confidence buckets the distance from the baseline. Thresholds are exclusive.
func Confidence(homeScore float64) domain.ConfidenceLabel {
	distance := math.Abs(Baseline - homeScore)
	switch {
	case distance > strongThreshold:
		return domain.StrongAdvantage
	case distance > goodThreshold:
		return domain.GoodChance
	default:
		return domain.SlightEdge
	}
}
