package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/augur/internal/cache"
	"github.com/fortuna/augur/internal/domain"
	"github.com/fortuna/augur/internal/ingest"
	"github.com/fortuna/augur/internal/prediction"
	"github.com/fortuna/augur/internal/sentiment"
	"github.com/fortuna/augur/internal/teams"
)

var testNow = time.Date(2026, 1, 20, 17, 0, 0, 0, time.UTC)

type fakeOdds struct {
	mu    sync.Mutex
	games map[string][]domain.Game
	err   error
	calls int
}

func (f *fakeOdds) FetchGames(_ context.Context, sport string) ([]domain.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.games[sport], nil
}

type fakeLeague struct {
	stats    map[string]domain.TeamStats
	injuries map[string][]domain.Injury
	schedule []domain.Game
	h2h      domain.H2H
	err      error
}

func (f *fakeLeague) Schedule(context.Context, string, time.Time) ([]domain.Game, error) {
	return f.schedule, f.err
}

func (f *fakeLeague) TeamStats(context.Context, string) (map[string]domain.TeamStats, error) {
	return f.stats, f.err
}

func (f *fakeLeague) Injuries(context.Context, string) (map[string][]domain.Injury, error) {
	return f.injuries, f.err
}

func (f *fakeLeague) HeadToHead(context.Context, string, string, string) (domain.H2H, error) {
	return f.h2h, f.err
}

type fakeWeather struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeWeather) Current(context.Context, float64, float64) (domain.Weather, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return domain.Weather{TempF: 40, WindMPH: 22, PrecipMM: 2, Condition: "Rain"}, nil
}

type fakeSentiment struct {
	panicFor string
}

func (f *fakeSentiment) Score(_ context.Context, m sentiment.Matchup) domain.SentimentScore {
	if m.Home == f.panicFor {
		panic("boom")
	}
	return sentiment.Fallback(m.HomeRecord, m.AwayRecord)
}

type fakeBaseball struct{}

func (fakeBaseball) ProbablePitchers(context.Context, time.Time) (map[string]domain.Pitcher, error) {
	return map[string]domain.Pitcher{
		"Chicago Cubs":   {Name: "Justin Steele", ERA: 3.10, WHIP: 1.15},
		"Boston Red Sox": {Name: "Garrett Crochet", ERA: 2.60, WHIP: 1.02},
	}, nil
}

func (fakeBaseball) TeamRates(context.Context, int) (map[string]map[string]float64, error) {
	return map[string]map[string]float64{
		"Chicago Cubs":   {domain.StatOPS: 0.760, domain.StatERA: 3.90},
		"Boston Red Sox": {domain.StatOPS: 0.720, domain.StatERA: 4.10},
	}, nil
}

type recordingObserver struct {
	mu       sync.Mutex
	upstream map[string]int
	batches  int
}

func (o *recordingObserver) UpstreamError(source string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.upstream == nil {
		o.upstream = map[string]int{}
	}
	o.upstream[source]++
}

func (o *recordingObserver) ObserveBatch(string, time.Duration, int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.batches++
}

func nhlGame(id, home, away string, homePrice, awayPrice float64) domain.Game {
	return domain.Game{
		ID:           id,
		SportKey:     domain.SportNHL,
		HomeTeam:     home,
		AwayTeam:     away,
		CommenceTime: testNow.Add(2 * time.Hour),
		Bookmakers: []domain.Bookmaker{{
			Key: "fanduel",
			Markets: []domain.Market{{
				Key:      domain.MarketH2H,
				Outcomes: []domain.Outcome{{Name: home, Price: homePrice}, {Name: away, Price: awayPrice}},
			}},
		}},
	}
}

func newTestService(t *testing.T, sources Sources, opts ...Option) *PredictionService {
	t.Helper()
	registry, err := teams.DefaultRegistry()
	require.NoError(t, err)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	c := cache.New(cache.NewMemoryStore(), cache.WithLogger(log))
	engine := prediction.NewEngine(prediction.WithLogger(log))
	opts = append([]Option{WithLogger(log), WithClock(func() time.Time { return testNow })}, opts...)
	return NewPredictionService(sources, engine, c, registry, opts...)
}

func TestPredictSport_PreservesOddsOrderAndCanonicalizes(t *testing.T) {
	odds := &fakeOdds{games: map[string][]domain.Game{domain.SportNHL: {
		nhlGame("g1", "Montreal Canadiens", "Boston Bruins", 2.10, 1.80),
		nhlGame("g2", "Toronto Maple Leafs", "Ottawa Senators", 1.70, 2.20),
		nhlGame("g3", "Utah Hockey Club", "Colorado Avalanche", 2.40, 1.60),
	}}}
	league := &fakeLeague{
		stats: map[string]domain.TeamStats{
			"Montréal Canadiens":  {Team: "Montréal Canadiens", Record: "25-20-5"},
			"Boston Bruins":       {Team: "Boston Bruins", Record: "28-18-4"},
			"Toronto Maple Leafs": {Team: "Toronto Maple Leafs", Record: "30-15-5"},
			"Ottawa Senators":     {Team: "Ottawa Senators", Record: "22-24-4"},
		},
		h2h: domain.H2H{Home: "1-0", Away: "0-1"},
	}

	svc := newTestService(t, Sources{Odds: odds, League: league, Sentiment: &fakeSentiment{}})
	batch, err := svc.PredictSport(context.Background(), domain.SportNHL)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, batch.ID)
	assert.Equal(t, domain.SportNHL, batch.Sport)
	assert.Equal(t, testNow, batch.GeneratedAt)
	require.Len(t, batch.Predictions, 3)

	ids := []string{batch.Predictions[0].Game.ID, batch.Predictions[1].Game.ID, batch.Predictions[2].Game.ID}
	assert.Equal(t, []string{"g1", "g2", "g3"}, ids)

	first := batch.Predictions[0]
	assert.Equal(t, "Montréal Canadiens", first.Game.HomeTeam)
	record, ok := first.Factors.Get(prediction.FactorRecord)
	require.True(t, ok)
	assert.True(t, record.Applies())

	betting, ok := first.Factors.Get(prediction.FactorBettingValue)
	require.True(t, ok)
	assert.True(t, betting.Applies(), "outcome names must be canonicalized with the teams")

	assert.Equal(t, "Utah Mammoth", batch.Predictions[2].Game.HomeTeam)
	missing, _ := batch.Predictions[2].Factors.Get(prediction.FactorRecord)
	assert.False(t, missing.Applies())
}

func TestPredictSport_UpstreamFailuresDegrade(t *testing.T) {
	odds := &fakeOdds{games: map[string][]domain.Game{domain.SportNHL: {
		nhlGame("g1", "Toronto Maple Leafs", "Boston Bruins", 1.9, 1.9),
	}}}
	league := &fakeLeague{err: errors.New("connection reset")}
	observer := &recordingObserver{}

	svc := newTestService(t, Sources{Odds: odds, League: league}, WithObserver(observer))
	batch, err := svc.PredictSport(context.Background(), domain.SportNHL)
	require.NoError(t, err)
	require.Len(t, batch.Predictions, 1)

	for _, name := range []string{prediction.FactorRecord, prediction.FactorH2H} {
		f, ok := batch.Predictions[0].Factors.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, domain.NotAvailable, f.HomeDisplay, name)
	}

	for _, source := range []string{SourceSchedule, SourceStandings, SourceInjuries, SourceH2H} {
		assert.Equal(t, 1, observer.upstream[source], source)
	}
	assert.Equal(t, 1, observer.batches)
}

func TestPredictSport_OddsFailureYieldsEmptyBatch(t *testing.T) {
	odds := &fakeOdds{err: ingest.ErrNotFound}
	svc := newTestService(t, Sources{Odds: odds})

	batch, err := svc.PredictSport(context.Background(), domain.SportNHL)
	require.NoError(t, err)
	assert.Empty(t, batch.Predictions)
}

func TestPredictSport_UnknownSport(t *testing.T) {
	svc := newTestService(t, Sources{Odds: &fakeOdds{}}, WithSports(domain.SportNHL))

	_, err := svc.PredictSport(context.Background(), domain.SportNBA)
	assert.ErrorIs(t, err, ErrUnknownSport)
	assert.False(t, svc.Supports(domain.SportNBA))
	assert.Equal(t, []string{domain.SportNHL}, svc.Sports())
}

func TestPredictSport_BaseballEnrichment(t *testing.T) {
	game := domain.Game{
		ID:           "m1",
		HomeTeam:     "Chicago Cubs",
		AwayTeam:     "Boston Red Sox",
		CommenceTime: testNow.Add(3 * time.Hour),
	}
	odds := &fakeOdds{games: map[string][]domain.Game{domain.SportMLB: {game}}}
	league := &fakeLeague{stats: map[string]domain.TeamStats{
		"Chicago Cubs":   {Team: "Chicago Cubs", Record: "60-40"},
		"Boston Red Sox": {Team: "Boston Red Sox", Record: "55-45"},
	}}
	weather := &fakeWeather{}

	svc := newTestService(t, Sources{Odds: odds, League: league, Weather: weather, Baseball: fakeBaseball{}})
	batch, err := svc.PredictSport(context.Background(), domain.SportMLB)
	require.NoError(t, err)
	require.Len(t, batch.Predictions, 1)

	p := batch.Predictions[0]
	for _, name := range []string{prediction.FactorRecord, prediction.FactorPitcherDuel, prediction.FactorOPS, prediction.FactorERA, prediction.FactorWeather} {
		f, ok := p.Factors.Get(name)
		require.True(t, ok, name)
		assert.True(t, f.Applies(), name)
	}
	require.NotNil(t, p.Auxiliary.Weather)
	assert.Equal(t, "Rain", p.Auxiliary.Weather.Condition)
	assert.Equal(t, 1, weather.calls)
}

func TestPredictSport_IndoorVenueSkipsWeather(t *testing.T) {
	odds := &fakeOdds{games: map[string][]domain.Game{domain.SportNHL: {
		nhlGame("g1", "Toronto Maple Leafs", "Boston Bruins", 1.9, 1.9),
	}}}
	weather := &fakeWeather{}

	svc := newTestService(t, Sources{Odds: odds, Weather: weather})
	batch, err := svc.PredictSport(context.Background(), domain.SportNHL)
	require.NoError(t, err)

	assert.Nil(t, batch.Predictions[0].Auxiliary.Weather)
	assert.Zero(t, weather.calls)
}

func TestPredictSport_PanickingGameDoesNotAbortSiblings(t *testing.T) {
	odds := &fakeOdds{games: map[string][]domain.Game{domain.SportNHL: {
		nhlGame("g1", "Toronto Maple Leafs", "Boston Bruins", 1.9, 1.9),
		nhlGame("g2", "Ottawa Senators", "Buffalo Sabres", 1.9, 1.9),
	}}}

	svc := newTestService(t, Sources{Odds: odds, Sentiment: &fakeSentiment{panicFor: "Toronto Maple Leafs"}})
	batch, err := svc.PredictSport(context.Background(), domain.SportNHL)
	require.NoError(t, err)
	require.Len(t, batch.Predictions, 2)

	degraded, _ := batch.Predictions[0].Factors.Get(prediction.FactorSentiment)
	assert.False(t, degraded.Applies())
	assert.Equal(t, "g1", batch.Predictions[0].Game.ID)

	healthy, _ := batch.Predictions[1].Factors.Get(prediction.FactorSentiment)
	assert.True(t, healthy.Applies())
}

func TestPredictSport_CancelledContext(t *testing.T) {
	svc := newTestService(t, Sources{Odds: &fakeOdds{}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.PredictSport(ctx, domain.SportNHL)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCurrent_CachesUntilRefresh(t *testing.T) {
	odds := &fakeOdds{games: map[string][]domain.Game{domain.SportNHL: {
		nhlGame("g1", "Toronto Maple Leafs", "Boston Bruins", 1.9, 1.9),
	}}}
	svc := newTestService(t, Sources{Odds: odds})
	ctx := context.Background()

	first, err := svc.Current(ctx, domain.SportNHL, false)
	require.NoError(t, err)
	second, err := svc.Current(ctx, domain.SportNHL, false)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	refreshed, err := svc.Current(ctx, domain.SportNHL, true)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, refreshed.ID)

	after, err := svc.Current(ctx, domain.SportNHL, false)
	require.NoError(t, err)
	assert.Equal(t, refreshed.ID, after.ID)

	// odds are cached independently of the batch
	assert.Equal(t, 1, odds.calls)
}

func TestMergeStats(t *testing.T) {
	base := map[string]domain.TeamStats{
		"Chicago Cubs": {Team: "Chicago Cubs", Record: "60-40", Stats: map[string]float64{domain.StatPointsFor: 4.8}},
	}
	extra := map[string]domain.TeamStats{
		"Chicago Cubs":      {Team: "Chicago Cubs", Stats: map[string]float64{domain.StatOPS: 0.760}},
		"Milwaukee Brewers": {Team: "Milwaukee Brewers", Stats: map[string]float64{domain.StatOPS: 0.700}},
	}

	merged := mergeStats(base, extra)
	assert.Equal(t, "60-40", merged["Chicago Cubs"].Record)
	assert.Equal(t, map[string]float64{domain.StatPointsFor: 4.8, domain.StatOPS: 0.760}, merged["Chicago Cubs"].Stats)
	assert.Contains(t, merged, "Milwaukee Brewers")

	assert.Len(t, mergeStats(nil, extra), 2)
}
