package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fortuna/augur/internal/cache"
	"github.com/fortuna/augur/internal/domain"
	"github.com/fortuna/augur/internal/ingest"
	"github.com/fortuna/augur/internal/prediction"
	"github.com/fortuna/augur/internal/sentiment"
	"github.com/fortuna/augur/internal/teams"
)

// DefaultConcurrency bounds in-flight per-game enrichments
const DefaultConcurrency = 8

// ErrUnknownSport is returned for sports the service is not configured to predict
var ErrUnknownSport = errors.New("unknown sport")

// Upstream source labels used in logs and metrics
const (
	SourceOdds      = "odds"
	SourceSchedule  = "schedule"
	SourceStandings = "standings"
	SourceInjuries  = "injuries"
	SourceH2H       = "h2h"
	SourceWeather   = "weather"
	SourcePitchers  = "pitchers"
	SourceTeamRates = "team_rates"
	SourceGoalies   = "goalies"
)

// OddsSource lists a sport's upcoming games with bookmaker prices
type OddsSource interface {
	FetchGames(ctx context.Context, sport string) ([]domain.Game, error)
}

// LeagueSource supplies standings, injuries, the recent schedule and season series
type LeagueSource interface {
	Schedule(ctx context.Context, sport string, asOf time.Time) ([]domain.Game, error)
	TeamStats(ctx context.Context, sport string) (map[string]domain.TeamStats, error)
	Injuries(ctx context.Context, sport string) (map[string][]domain.Injury, error)
	HeadToHead(ctx context.Context, sport, home, away string) (domain.H2H, error)
}

// WeatherSource reports current conditions at a coordinate
type WeatherSource interface {
	Current(ctx context.Context, lat, lon float64) (domain.Weather, error)
}

// SentimentScorer reads fan sentiment for a matchup. It never fails.
type SentimentScorer interface {
	Score(ctx context.Context, m sentiment.Matchup) domain.SentimentScore
}

// BaseballSource supplies probable pitchers and team rate stats
type BaseballSource interface {
	ProbablePitchers(ctx context.Context, date time.Time) (map[string]domain.Pitcher, error)
	TeamRates(ctx context.Context, season int) (map[string]map[string]float64, error)
}

// GoalieSource supplies tonight's starting goalies keyed by team
type GoalieSource interface {
	Starters(ctx context.Context) (map[string]domain.Goalie, error)
}

// TeamDirectory canonicalizes provider team names and locates venues
type TeamDirectory interface {
	CanonicalizeIn(league, raw string) (teams.TeamIdentity, bool)
	CanonicalNameIn(league, raw string) string
	Location(league, name string) (lat, lon float64, ok bool)
}

// Observer records upstream failures and batch timings (implemented by metrics.Recorder)
type Observer interface {
	UpstreamError(source string)
	ObserveBatch(sport string, elapsed time.Duration, count int)
}

// Sources bundles the collaborators a PredictionService reads from. Odds is
// required; any other nil source leaves its factors unavailable.
type Sources struct {
	Odds      OddsSource
	League    LeagueSource
	Weather   WeatherSource
	Sentiment SentimentScorer
	Baseball  BaseballSource
	Goalies   GoalieSource
}

// PredictionService joins upstream data with the scoring engine, one batch per sport
type PredictionService struct {
	sources     Sources
	engine      *prediction.Engine
	cache       *cache.Cache
	teams       TeamDirectory
	sports      []string
	observer    Observer
	concurrency int
	now         func() time.Time
	log         *logrus.Entry
}

// Option configures a PredictionService
type Option func(*PredictionService)

// WithSports restricts the service to the given sport keys
func WithSports(sports ...string) Option {
	return func(s *PredictionService) { s.sports = sports }
}

// WithObserver attaches metrics
func WithObserver(o Observer) Option {
	return func(s *PredictionService) { s.observer = o }
}

// WithConcurrency bounds in-flight per-game enrichments
func WithConcurrency(n int) Option {
	return func(s *PredictionService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithClock overrides the wall clock
func WithClock(now func() time.Time) Option {
	return func(s *PredictionService) { s.now = now }
}

// WithLogger sets the logger
func WithLogger(log *logrus.Logger) Option {
	return func(s *PredictionService) { s.log = log.WithField("component", "predictions") }
}

// NewPredictionService creates the orchestrator
func NewPredictionService(sources Sources, engine *prediction.Engine, c *cache.Cache, directory TeamDirectory, opts ...Option) *PredictionService {
	s := &PredictionService{
		sources:     sources,
		engine:      engine,
		cache:       c,
		teams:       directory,
		concurrency: DefaultConcurrency,
		now:         time.Now,
		log:         logrus.StandardLogger().WithField("component", "predictions"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.sports) == 0 {
		s.sports = engine.Sports()
	}
	sort.Strings(s.sports)
	return s
}

// Sports lists the sport keys this service predicts
func (s *PredictionService) Sports() []string {
	return append([]string(nil), s.sports...)
}

// Supports reports whether sport is enabled
func (s *PredictionService) Supports(sport string) bool {
	i := sort.SearchStrings(s.sports, sport)
	return i < len(s.sports) && s.sports[i] == sport
}

// Current returns the cached batch for sport, producing one when absent or
// when refresh is set
func (s *PredictionService) Current(ctx context.Context, sport string, refresh bool) (domain.Batch, error) {
	if !refresh {
		return cache.Fetch(ctx, s.cache, cache.BatchKey(sport), cache.BatchTTL, func(ctx context.Context) (domain.Batch, error) {
			return s.PredictSport(ctx, sport)
		})
	}

	batch, err := s.PredictSport(ctx, sport)
	if err != nil {
		return batch, err
	}
	if err := cache.Put(ctx, s.cache, cache.BatchKey(sport), cache.BatchTTL, batch); err != nil {
		s.log.WithError(err).WithField("sport", sport).Warn("⚠️  Failed to cache batch")
	}
	return batch, nil
}

// shared is the per-sport data every game in a batch reads
type shared struct {
	schedule []domain.Game
	stats    map[string]domain.TeamStats
	injuries map[string][]domain.Injury
	pitchers map[string]domain.Pitcher
	goalies  map[string]domain.Goalie
}

// PredictSport produces a fresh batch for sport. Upstream failures degrade to
// neutral inputs; only an unknown sport or a cancelled context is an error.
// Predictions keep the odds provider's game order.
func (s *PredictionService) PredictSport(ctx context.Context, sport string) (domain.Batch, error) {
	if !s.Supports(sport) {
		return domain.Batch{}, fmt.Errorf("%w: %s", ErrUnknownSport, sport)
	}

	start := s.now()
	log := s.log.WithField("sport", sport)

	var (
		games []domain.Game
		data  = &shared{}
		wg    sync.WaitGroup
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		games = s.fetchGames(ctx, sport)
	}()
	s.fetchShared(ctx, sport, start, data, &wg)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return domain.Batch{}, err
	}

	profile := s.engine.ProfileFor(sport)
	predictions := make([]domain.GamePrediction, len(games))
	sem := make(chan struct{}, s.concurrency)

	for i, game := range games {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			predictions[i] = s.predictGame(ctx, profile, game, data)
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return domain.Batch{}, err
	}

	elapsed := s.now().Sub(start)
	if s.observer != nil {
		s.observer.ObserveBatch(sport, elapsed, len(predictions))
	}
	log.WithField("elapsed", elapsed).Infof("✓ Predicted %d games", len(predictions))

	return domain.Batch{
		ID:          uuid.New(),
		Sport:       sport,
		GeneratedAt: start.UTC(),
		Predictions: predictions,
	}, nil
}

func (s *PredictionService) fetchGames(ctx context.Context, sport string) []domain.Game {
	if s.sources.Odds == nil {
		return nil
	}
	games, err := cache.Fetch(ctx, s.cache, cache.OddsKey(sport), cache.OddsTTL, func(ctx context.Context) ([]domain.Game, error) {
		return s.sources.Odds.FetchGames(ctx, sport)
	})
	if err != nil {
		s.degrade(SourceOdds, sport, err)
		return nil
	}

	out := make([]domain.Game, len(games))
	for i, g := range games {
		out[i] = s.canonicalGame(sport, g)
	}
	return out
}

// fetchShared starts the per-sport fetches on wg. result is populated once wg
// is drained and is read-only afterwards.
func (s *PredictionService) fetchShared(ctx context.Context, sport string, asOf time.Time, result *shared, wg *sync.WaitGroup) {
	var mu sync.Mutex
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	if s.sources.League != nil {
		run(func() {
			games, err := cache.Fetch(ctx, s.cache, cache.ScheduleKey(sport), cache.ScoreboardTTL, func(ctx context.Context) ([]domain.Game, error) {
				return s.sources.League.Schedule(ctx, sport, asOf)
			})
			if err != nil {
				s.degrade(SourceSchedule, sport, err)
				return
			}
			result.schedule = games
		})
		run(func() {
			stats, err := cache.Fetch(ctx, s.cache, cache.TeamStatsKey(sport), cache.TeamStatsTTL, func(ctx context.Context) (map[string]domain.TeamStats, error) {
				return s.sources.League.TeamStats(ctx, sport)
			})
			if err != nil {
				s.degrade(SourceStandings, sport, err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			result.stats = mergeStats(result.stats, stats)
		})
		run(func() {
			injuries, err := cache.Fetch(ctx, s.cache, cache.InjuriesKey(sport), cache.InjuriesTTL, func(ctx context.Context) (map[string][]domain.Injury, error) {
				return s.sources.League.Injuries(ctx, sport)
			})
			if err != nil {
				s.degrade(SourceInjuries, sport, err)
				return
			}
			result.injuries = injuries
		})
	}

	if sport == domain.SportMLB && s.sources.Baseball != nil {
		run(func() {
			pitchers, err := cache.Fetch(ctx, s.cache, cache.PitchersKey(asOf), cache.PitcherTTL, func(ctx context.Context) (map[string]domain.Pitcher, error) {
				return s.sources.Baseball.ProbablePitchers(ctx, asOf)
			})
			if err != nil {
				s.degrade(SourcePitchers, sport, err)
				return
			}
			out := make(map[string]domain.Pitcher, len(pitchers))
			for team, p := range pitchers {
				out[s.teams.CanonicalNameIn(sport, team)] = p
			}
			result.pitchers = out
		})
		run(func() {
			rates, err := cache.Fetch(ctx, s.cache, cache.TeamRatesKey(asOf.Year()), cache.PitcherTTL, func(ctx context.Context) (map[string]map[string]float64, error) {
				return s.sources.Baseball.TeamRates(ctx, asOf.Year())
			})
			if err != nil {
				s.degrade(SourceTeamRates, sport, err)
				return
			}
			extra := make(map[string]domain.TeamStats, len(rates))
			for team, values := range rates {
				name := s.teams.CanonicalNameIn(sport, team)
				extra[name] = domain.TeamStats{Team: name, Stats: values}
			}
			mu.Lock()
			defer mu.Unlock()
			result.stats = mergeStats(result.stats, extra)
		})
	}

	if sport == domain.SportNHL && s.sources.Goalies != nil {
		run(func() {
			goalies, err := cache.Fetch(ctx, s.cache, cache.GoaliesKey(asOf), cache.GoalieTTL, s.sources.Goalies.Starters)
			if err != nil {
				s.degrade(SourceGoalies, sport, err)
				return
			}
			result.goalies = goalies
		})
	}
}

// predictGame enriches and scores one game. A panic in enrichment degrades
// this game to a context-free prediction.
func (s *PredictionService) predictGame(ctx context.Context, profile prediction.Profile, game domain.Game, data *shared) (out domain.GamePrediction) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithFields(logrus.Fields{"game": game.ID, "panic": r}).Error("❌ Enrichment panicked, scoring without context")
			out = s.engine.Predict(game, profile, prediction.Context{})
		}
	}()

	sport := game.SportKey
	in := prediction.Context{
		TeamStats: data.stats,
		Injuries:  data.injuries,
		Schedule:  data.schedule,
		Pitchers:  data.pitchers,
		Goalies:   data.goalies,
	}

	if s.sources.League != nil {
		h2h, err := cache.Fetch(ctx, s.cache, cache.H2HKey(sport, game.HomeTeam, game.AwayTeam), cache.H2HTTL, func(ctx context.Context) (domain.H2H, error) {
			return s.sources.League.HeadToHead(ctx, sport, game.HomeTeam, game.AwayTeam)
		})
		if err != nil {
			s.degrade(SourceH2H, sport, err)
		} else {
			in.H2H = &h2h
		}
	}

	if s.sources.Sentiment != nil {
		score, _ := cache.Fetch(ctx, s.cache, cache.SentimentKey(sport, game.HomeTeam, game.AwayTeam), cache.SentimentTTL, func(ctx context.Context) (domain.SentimentScore, error) {
			return s.sources.Sentiment.Score(ctx, sentiment.Matchup{
				League:     sport,
				Home:       game.HomeTeam,
				Away:       game.AwayTeam,
				HomeRecord: domain.ParseRecord(data.stats[game.HomeTeam].Record),
				AwayRecord: domain.ParseRecord(data.stats[game.AwayTeam].Record),
			}), nil
		})
		in.Sentiment = &score
	}

	in.Weather = s.weatherFor(ctx, sport, game.HomeTeam)

	return s.engine.Predict(game, profile, in)
}

// weatherFor reads conditions at open-air home venues; indoor venues get nil
func (s *PredictionService) weatherFor(ctx context.Context, sport, home string) *domain.Weather {
	if s.sources.Weather == nil {
		return nil
	}
	team, ok := s.teams.CanonicalizeIn(sport, home)
	if !ok || !team.Outdoor {
		return nil
	}
	lat, lon, ok := s.teams.Location(sport, team.Name)
	if !ok {
		return nil
	}

	w, err := cache.Fetch(ctx, s.cache, cache.WeatherKey(lat, lon), cache.WeatherTTL, func(ctx context.Context) (domain.Weather, error) {
		return s.sources.Weather.Current(ctx, lat, lon)
	})
	if err != nil {
		s.degrade(SourceWeather, sport, err)
		return nil
	}
	return &w
}

// canonicalGame rewrites team and outcome names to canonical form so odds,
// standings and starters join on the same key
func (s *PredictionService) canonicalGame(sport string, g domain.Game) domain.Game {
	g.SportKey = sport
	g.HomeTeam = s.teams.CanonicalNameIn(sport, g.HomeTeam)
	g.AwayTeam = s.teams.CanonicalNameIn(sport, g.AwayTeam)

	books := make([]domain.Bookmaker, len(g.Bookmakers))
	for i, b := range g.Bookmakers {
		markets := make([]domain.Market, len(b.Markets))
		for j, m := range b.Markets {
			outcomes := make([]domain.Outcome, len(m.Outcomes))
			for k, o := range m.Outcomes {
				outcomes[k] = domain.Outcome{Name: s.teams.CanonicalNameIn(sport, o.Name), Price: o.Price}
			}
			markets[j] = domain.Market{Key: m.Key, Outcomes: outcomes}
		}
		b.Markets = markets
		books[i] = b
	}
	g.Bookmakers = books
	return g
}

func (s *PredictionService) degrade(source, sport string, err error) {
	entry := s.log.WithError(err).WithFields(logrus.Fields{"source": source, "sport": sport})
	if errors.Is(err, ingest.ErrNotFound) {
		entry.Info("No upstream data (off-season?), using neutral default")
	} else {
		entry.Warn("⚠️  Upstream unavailable, using neutral default")
	}
	if s.observer != nil {
		s.observer.UpstreamError(source)
	}
}

// mergeStats overlays extra onto base. Records and form from base win; stat
// maps are unioned.
func mergeStats(base, extra map[string]domain.TeamStats) map[string]domain.TeamStats {
	if base == nil {
		base = make(map[string]domain.TeamStats, len(extra))
	}
	for team, add := range extra {
		cur, ok := base[team]
		if !ok {
			base[team] = add
			continue
		}
		if cur.Record == "" {
			cur.Record, cur.Streak, cur.LastTen = add.Record, add.Streak, add.LastTen
		}
		merged := make(map[string]float64, len(cur.Stats)+len(add.Stats))
		for k, v := range add.Stats {
			merged[k] = v
		}
		for k, v := range cur.Stats {
			merged[k] = v
		}
		cur.Stats = merged
		base[team] = cur
	}
	return base
}
