package sentiment

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/augur/internal/domain"
)

type fakeSearcher struct {
	flair    []Post
	broad    []Post
	flairErr error
	broadErr error
	requests []SearchRequest
}

func (f *fakeSearcher) SearchPosts(_ context.Context, req SearchRequest) ([]Post, error) {
	f.requests = append(f.requests, req)
	if req.Flair != "" {
		return f.flair, f.flairErr
	}
	return f.broad, f.broadErr
}

type fakeAliases map[string][]string

func (f fakeAliases) Aliases(_, name string) []string { return f[name] }

type countingObserver map[string]int

func (c countingObserver) SentimentSource(source string) { c[source]++ }

var leafsHabs = fakeAliases{
	"Toronto Maple Leafs": {"toronto maple leafs", "maple leafs", "leafs"},
	"Montréal Canadiens":  {"montréal canadiens", "montreal canadiens", "canadiens", "habs"},
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func matchup(home, away string) Matchup {
	return Matchup{
		League:     domain.SportNHL,
		Home:       "Toronto Maple Leafs",
		Away:       "Montréal Canadiens",
		HomeRecord: domain.ParseRecord(home),
		AwayRecord: domain.ParseRecord(away),
	}
}

func newAggregator(s PostSearcher, opts ...Option) *Aggregator {
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return NewAggregator(s, leafsHabs, nil, 0, opts...)
}

func TestScore_FlairSearchWins(t *testing.T) {
	searcher := &fakeSearcher{
		flair: []Post{
			{Title: "Leafs look sharp in morning skate"},
			{Title: "Maple Leafs vs Habs preview"},
			{Title: "Random trade rumours"},
		},
		broad: []Post{{Title: "Habs habs habs"}},
	}
	obs := countingObserver{}

	got := newAggregator(searcher, WithObserver(obs)).Score(context.Background(), matchup("5-5", "5-5"))

	assert.Equal(t, domain.SentimentFlairSearch, got.Source)
	// 2 home mentions, 1 away mention
	assert.InDelta(t, 1+2.0/3.0*9, got.Home, 1e-9)
	assert.InDelta(t, 1+1.0/3.0*9, got.Away, 1e-9)
	require.Len(t, searcher.requests, 1)
	assert.Equal(t, "hockey", searcher.requests[0].Community)
	assert.Equal(t, "Discussion", searcher.requests[0].Flair)
	assert.Equal(t, DefaultWindow, searcher.requests[0].Window)
	assert.Contains(t, searcher.requests[0].Terms, "habs")
	assert.Equal(t, 1, obs[string(domain.SentimentFlairSearch)])
}

func TestScore_TierOrder(t *testing.T) {
	tests := []struct {
		name     string
		searcher *fakeSearcher
		want     domain.SentimentSource
		calls    int
	}{
		{
			name:     "empty flair falls to broad",
			searcher: &fakeSearcher{broad: []Post{{Title: "Habs win again"}}},
			want:     domain.SentimentBroadSearch,
			calls:    2,
		},
		{
			name:     "flair error falls to broad",
			searcher: &fakeSearcher{flairErr: errors.New("429"), broad: []Post{{Title: "Leafs"}}},
			want:     domain.SentimentBroadSearch,
			calls:    2,
		},
		{
			name:     "both empty falls back",
			searcher: &fakeSearcher{},
			want:     domain.SentimentWinPctFallback,
			calls:    2,
		},
		{
			name:     "both error falls back",
			searcher: &fakeSearcher{flairErr: errors.New("down"), broadErr: errors.New("down")},
			want:     domain.SentimentWinPctFallback,
			calls:    2,
		},
		{
			name:     "flair posts without mentions falls back",
			searcher: &fakeSearcher{flair: []Post{{Title: "Weekly free talk"}}, broad: []Post{{Title: "Leafs"}}},
			want:     domain.SentimentWinPctFallback,
			calls:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newAggregator(tt.searcher).Score(context.Background(), matchup("7-3", "3-7"))
			assert.Equal(t, tt.want, got.Source)
			assert.Len(t, tt.searcher.requests, tt.calls)
		})
	}
}

func TestScore_NoSearcherUsesFallback(t *testing.T) {
	got := newAggregator(nil).Score(context.Background(), matchup("10-0", "0-10"))

	assert.Equal(t, domain.SentimentWinPctFallback, got.Source)
	assert.Equal(t, 10.0, got.Home)
	assert.Equal(t, 1.0, got.Away)
}

func TestScore_UnknownLeagueSkipsSearch(t *testing.T) {
	searcher := &fakeSearcher{flair: []Post{{Title: "Leafs"}}}
	m := matchup("1-1", "1-1")
	m.League = "cricket_ipl"

	got := newAggregator(searcher).Score(context.Background(), m)

	assert.Equal(t, domain.SentimentWinPctFallback, got.Source)
	assert.Empty(t, searcher.requests)
}

func TestFallback_Monotonic(t *testing.T) {
	away := domain.ParseRecord("4-4")
	prev := Fallback(domain.ParseRecord("0-8"), away).Home

	for wins := 1; wins <= 8; wins++ {
		home := domain.Record{Wins: wins, Losses: 8 - wins}
		got := Fallback(home, away)
		assert.GreaterOrEqual(t, got.Home, prev)
		assert.Equal(t, Fallback(domain.ParseRecord("0-8"), away).Away, got.Away)
		prev = got.Home
	}
}

func TestScores_AlwaysBounded(t *testing.T) {
	records := []string{"", "0-0", "10-0", "0-10", "3-4-5", "garbage", "82-0"}
	for _, h := range records {
		for _, a := range records {
			s := Fallback(domain.ParseRecord(h), domain.ParseRecord(a))
			assert.True(t, s.Home >= 1 && s.Home <= 10, "home %v", s.Home)
			assert.True(t, s.Away >= 1 && s.Away <= 10, "away %v", s.Away)
		}
	}

	for home := 0; home <= 5; home++ {
		for away := 0; away <= 5; away++ {
			s := FromMentions(home, away)
			assert.True(t, s.Home >= 1 && s.Home <= 10)
			assert.True(t, s.Away >= 1 && s.Away <= 10)
		}
	}
}

func TestCountMentions(t *testing.T) {
	posts := []Post{
		{Title: "LEAFS beat the Habs"},
		{Title: "Canadiens call up prospect"},
		{Title: "Off-topic"},
	}

	home, away := CountMentions(posts, leafsHabs["Toronto Maple Leafs"], leafsHabs["Montréal Canadiens"])
	assert.Equal(t, 1, home)
	assert.Equal(t, 2, away)
}

func TestWithTiers_CustomOrder(t *testing.T) {
	var order []domain.SentimentSource
	tier := func(src domain.SentimentSource, posts []Post) Tier {
		return Tier{Source: src, Search: func(context.Context, Matchup, []string) ([]Post, error) {
			order = append(order, src)
			return posts, nil
		}}
	}

	a := newAggregator(nil, WithTiers(
		tier(domain.SentimentBroadSearch, nil),
		tier(domain.SentimentFlairSearch, []Post{{Title: "habs"}}),
	))
	got := a.Score(context.Background(), matchup("1-0", "0-1"))

	assert.Equal(t, []domain.SentimentSource{domain.SentimentBroadSearch, domain.SentimentFlairSearch}, order)
	assert.Equal(t, domain.SentimentFlairSearch, got.Source)
	assert.Equal(t, 1.0, got.Home)
	assert.Equal(t, 10.0, got.Away)
}
