package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fortuna/augur/internal/cache"
	"github.com/fortuna/augur/internal/config"
	"github.com/fortuna/augur/internal/domain"
	"github.com/fortuna/augur/internal/ingest/espn"
	"github.com/fortuna/augur/internal/ingest/goalies"
	"github.com/fortuna/augur/internal/ingest/mlb"
	"github.com/fortuna/augur/internal/ingest/odds"
	"github.com/fortuna/augur/internal/ingest/reddit"
	"github.com/fortuna/augur/internal/ingest/weather"
	"github.com/fortuna/augur/internal/prediction"
	"github.com/fortuna/augur/internal/sentiment"
	"github.com/fortuna/augur/internal/service"
	"github.com/fortuna/augur/internal/teams"
)

const (
	appName    = "augur-predict"
	appVersion = "1.0.0"
)

var shortNames = map[string]string{
	"nhl": domain.SportNHL,
	"nba": domain.SportNBA,
	"mlb": domain.SportMLB,
	"nfl": domain.SportNFL,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	var (
		sport     = flag.String("sport", "", "Sport to predict (nhl, nba, mlb, nfl or a full sport key)")
		bookmaker = flag.String("bookmaker", cfg.Prediction.PrimaryBookmaker, "Primary bookmaker for betting value")
		timeout   = flag.Duration("timeout", 2*time.Minute, "Overall deadline")
		headless  = flag.Bool("headless", cfg.Sources.HeadlessScraper, "Fall back to a headless browser for goalie pages")
		pretty    = flag.Bool("pretty", true, "Indent JSON output")
		verbose   = flag.Bool("v", false, "Log progress to stderr")
	)
	flag.Parse()

	key, ok := sportKey(*sport)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s v%s: specify --sport (nhl, nba, mlb, nfl)\n", appName, appVersion)
		os.Exit(2)
	}

	log := cfg.Log.Logger()
	log.SetOutput(os.Stderr)
	if !*verbose {
		log.SetLevel(logrus.WarnLevel)
	}

	registry, err := teams.DefaultRegistry()
	if err != nil {
		log.Fatalf("build team registry: %v", err)
	}

	var headlessFetcher goalies.PageFetcher
	if *headless {
		hf := goalies.NewHeadlessFetcher(log)
		defer hf.Close()
		headlessFetcher = hf
	}

	sources := service.Sources{
		Odds:    odds.New(cfg.Sources.OddsAPIBase, cfg.Sources.OddsAPIKey, log),
		League:  espn.NewIngester(espn.New(cfg.Sources.ESPNAPIBase, log), registry, log),
		Weather: weather.New(cfg.Sources.WeatherAPIBase, log),
		Sentiment: sentiment.NewAggregator(
			reddit.New(cfg.Sources.RedditAPIBase, log),
			registry,
			sentiment.DefaultForums,
			cfg.Prediction.SentimentWindow,
			sentiment.WithLogger(log),
		),
		Baseball: mlb.New(cfg.Sources.MLBAPIBase, log),
		Goalies:  goalies.NewResolver(cfg.Sources.GoalieSourceURL, goalies.NewHTTPFetcher(), headlessFetcher, registry, log),
	}

	engine := prediction.NewEngine(
		prediction.WithPrimaryBookmaker(*bookmaker),
		prediction.WithLogger(log),
	)
	svc := service.NewPredictionService(sources, engine, cache.New(cache.NewMemoryStore(), cache.WithLogger(log)), registry,
		service.WithSports(key),
		service.WithLogger(log),
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	batch, err := svc.PredictSport(ctx, key)
	if err != nil {
		log.Fatalf("predict %s: %v", key, err)
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(batch); err != nil {
		log.Fatalf("encode batch: %v", err)
	}
}

func sportKey(raw string) (string, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if key, ok := shortNames[raw]; ok {
		return key, true
	}
	return raw, domain.IsSupportedSport(raw)
}
