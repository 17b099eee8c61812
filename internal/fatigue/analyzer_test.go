package fatigue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fortuna/augur/internal/domain"
)

const team = "Boston Bruins"

var asOf = time.Date(2026, 1, 20, 19, 0, 0, 0, time.UTC)

func home(hoursAgo int) domain.Game {
	return domain.Game{HomeTeam: team, AwayTeam: "Other", CommenceTime: asOf.Add(-time.Duration(hoursAgo) * time.Hour)}
}

func away(hoursAgo int) domain.Game {
	return domain.Game{HomeTeam: "Other", AwayTeam: team, CommenceTime: asOf.Add(-time.Duration(hoursAgo) * time.Hour)}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		games []domain.Game
		want  float64
	}{
		{name: "no games", want: 0},
		{name: "rested", games: []domain.Game{home(24 * 6)}, want: 0},
		{name: "back to back only", games: []domain.Game{home(24)}, want: 5},
		{name: "back to back boundary", games: []domain.Game{home(30)}, want: 5},
		{name: "just outside back to back", games: []domain.Game{home(31)}, want: 0},
		{name: "dense stretch", games: []domain.Game{home(48), home(72)}, want: 3},
		{name: "back to back and dense", games: []domain.Game{home(24), home(72)}, want: 8},
		{
			name:  "road trip of three",
			games: []domain.Game{away(24 * 3), away(24 * 6), away(24 * 9), home(24 * 11)},
			want:  3,
		},
		{
			name:  "road trip broken by home game",
			games: []domain.Game{away(24 * 3), home(24 * 5), away(24 * 7), away(24 * 9)},
			want:  0,
		},
		{
			name:  "road trip broken by gap",
			games: []domain.Game{away(24 * 3), away(24 * 5), away(24 * 10)},
			want:  0,
		},
		{
			name:  "stale road trip",
			games: []domain.Game{away(24 * 20), away(24 * 21), away(24 * 22)},
			want:  0,
		},
		{
			name:  "road trip ending more than four days ago",
			games: []domain.Game{away(24 * 5), away(24 * 7), away(24 * 9)},
			want:  0,
		},
		{
			name:  "long road trip counts every leg",
			games: []domain.Game{away(24 * 3), away(24 * 6), away(24 * 9), away(24 * 12), away(24 * 15)},
			want:  5,
		},
		{
			name:  "all three",
			games: []domain.Game{away(20), away(60), away(100), away(140)},
			want:  5 + 3 + 4,
		},
		{
			name:  "future and unrelated games ignored",
			games: []domain.Game{home(-2), {HomeTeam: "A", AwayTeam: "B", CommenceTime: asOf.Add(-time.Hour)}},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(team, tt.games, asOf))
		})
	}
}

func TestScore_BackToBackStrictlyIncreases(t *testing.T) {
	bases := [][]domain.Game{
		nil,
		{home(24 * 6)},
		{away(24 * 3), away(24 * 5), away(24 * 7)},
		{home(50), home(80)},
	}

	for _, base := range bases {
		before := Score(team, base, asOf)
		after := Score(team, append(append([]domain.Game{}, base...), home(12)), asOf)
		assert.Greater(t, after, before)
		assert.GreaterOrEqual(t, before, 0.0)
	}
}

func TestAnalyze_CaseInsensitiveTeam(t *testing.T) {
	b := Analyze("boston bruins", []domain.Game{away(10), away(50), away(90)}, asOf)

	assert.True(t, b.BackToBack)
	assert.Equal(t, 3, b.RecentGames)
	assert.Equal(t, 3, b.RoadTripGames)
}
