package fatigue

import (
	"sort"
	"time"

	"github.com/fortuna/augur/internal/domain"
)

const (
	backToBackWindow  = 30 * time.Hour
	backToBackPenalty = 5.0

	denseWindow   = 4 * 24 * time.Hour
	denseMinGames = 2
	densePenalty  = 3.0

	roadTripMin    = 3
	roadTripMaxGap = 96 * time.Hour
)

// Breakdown is the itemized fatigue for one team
type Breakdown struct {
	BackToBack    bool `json:"back_to_back"`
	RecentGames   int  `json:"recent_games"`
	RoadTripGames int  `json:"road_trip_games"`
}

// Score is the additive fatigue penalty
func (b Breakdown) Score() float64 {
	score := 0.0
	if b.BackToBack {
		score += backToBackPenalty
	}
	if b.RecentGames >= denseMinGames {
		score += densePenalty
	}
	if b.RoadTripGames >= roadTripMin {
		score += float64(b.RoadTripGames)
	}
	return score
}

// Score returns team's fatigue as of asOf. It is never negative.
func Score(team string, games []domain.Game, asOf time.Time) float64 {
	return Analyze(team, games, asOf).Score()
}

// Analyze inspects the games team played strictly before asOf: a game within
// the last 30 hours is a back-to-back, two or more in the trailing four days
// is a dense stretch, and three or more consecutive away games leading up to
// asOf (broken by a home game or a gap of more than four days) is a road trip.
func Analyze(team string, games []domain.Game, asOf time.Time) Breakdown {
	var past []domain.Game
	for _, g := range games {
		if g.Involves(team) && g.CommenceTime.Before(asOf) {
			past = append(past, g)
		}
	}
	if len(past) == 0 {
		return Breakdown{}
	}

	sort.SliceStable(past, func(i, j int) bool {
		return past[i].CommenceTime.After(past[j].CommenceTime)
	})

	var b Breakdown
	if asOf.Sub(past[0].CommenceTime) <= backToBackWindow {
		b.BackToBack = true
	}

	for _, g := range past {
		if asOf.Sub(g.CommenceTime) > denseWindow {
			break
		}
		b.RecentGames++
	}

	// the trip must run up to asOf, so the first gap is measured from asOf
	prev := asOf
	for _, g := range past {
		if g.IsHome(team) {
			break
		}
		if prev.Sub(g.CommenceTime) > roadTripMaxGap {
			break
		}
		b.RoadTripGames++
		prev = g.CommenceTime
	}

	return b
}
