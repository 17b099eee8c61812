package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fortuna/augur/internal/api/rest"
	"github.com/fortuna/augur/internal/api/websocket"
	"github.com/fortuna/augur/internal/cache"
	"github.com/fortuna/augur/internal/config"
	"github.com/fortuna/augur/internal/ingest/espn"
	"github.com/fortuna/augur/internal/ingest/goalies"
	"github.com/fortuna/augur/internal/ingest/mlb"
	"github.com/fortuna/augur/internal/ingest/odds"
	"github.com/fortuna/augur/internal/ingest/reddit"
	"github.com/fortuna/augur/internal/ingest/weather"
	"github.com/fortuna/augur/internal/metrics"
	"github.com/fortuna/augur/internal/prediction"
	"github.com/fortuna/augur/internal/publisher"
	"github.com/fortuna/augur/internal/scheduler"
	"github.com/fortuna/augur/internal/sentiment"
	"github.com/fortuna/augur/internal/service"
	"github.com/fortuna/augur/internal/store"
	"github.com/fortuna/augur/internal/store/repository"
	"github.com/fortuna/augur/internal/teams"
)

const (
	serviceName    = "augur"
	serviceVersion = "1.0.0"

	redisMaxRetries = 30
	redisRetryDelay = 2 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	log := cfg.Log.Logger()
	log.Infof("Starting %s v%s - Win Probability Service", serviceName, serviceVersion)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry, err := teams.DefaultRegistry()
	if err != nil {
		log.Fatalf("Failed to build team registry: %v", err)
	}

	// Database
	db, err := store.NewDatabase(ctx, cfg.Storage.AtlasDSN, log)
	if err != nil {
		log.Fatalf("Failed to connect to Atlas database: %v", err)
	}
	defer db.Close()
	log.Info("✓ Connected to Atlas database")

	if err := db.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	log.Info("✓ Database migrations applied")

	teamRepo := repository.NewTeamRepository(db)
	for _, league := range registry.Leagues() {
		n, err := teamRepo.Sync(ctx, registry.Teams(league))
		if err != nil {
			log.WithError(err).Warnf("⚠️  Team sync failed for %s (continuing anyway)", league)
			continue
		}
		log.WithField("league", league).Debugf("Synced %d teams", n)
	}
	predictionRepo := repository.NewPredictionRepository(db)

	recorder := metrics.NewRecorder()
	healthChecks := map[string]rest.HealthCheck{"atlas": db.HealthCheck}

	// Cache backend, plus the Redis stream publisher when Redis is in use
	var (
		cacheStore cache.Store
		sinks      = scheduler.Sinks{Store: predictionRepo}
	)
	switch cfg.Storage.CacheBackend {
	case config.CacheRedis:
		redisStore := connectRedis(cfg.Storage.RedisURL, log)
		defer redisStore.Close()
		cacheStore = redisStore
		sinks.Publisher = publisher.NewRedisStreamPublisher(redisStore.Client())
		healthChecks["redis"] = redisStore.HealthCheck
		log.Info("✓ Connected to Redis")
	default:
		cacheStore = cache.NewMemoryStore()
		log.Info("✓ Using in-memory cache")
	}
	c := cache.New(cacheStore, cache.WithObserver(recorder), cache.WithLogger(log))

	// Upstream clients
	sources := service.Sources{
		Odds:    odds.New(cfg.Sources.OddsAPIBase, cfg.Sources.OddsAPIKey, log),
		League:  espn.NewIngester(espn.New(cfg.Sources.ESPNAPIBase, log), registry, log),
		Weather: weather.New(cfg.Sources.WeatherAPIBase, log),
		Sentiment: sentiment.NewAggregator(
			reddit.New(cfg.Sources.RedditAPIBase, log),
			registry,
			sentiment.DefaultForums,
			cfg.Prediction.SentimentWindow,
			sentiment.WithObserver(recorder),
			sentiment.WithLogger(log),
		),
		Baseball: mlb.New(cfg.Sources.MLBAPIBase, log),
	}

	var goalieResolver *goalies.Resolver
	if cfg.Sources.HeadlessScraper {
		headless := goalies.NewHeadlessFetcher(log)
		defer headless.Close()
		goalieResolver = goalies.NewResolver(cfg.Sources.GoalieSourceURL, goalies.NewHTTPFetcher(), headless, registry, log)
		log.Info("✓ Headless goalie scraper enabled")
	} else {
		goalieResolver = goalies.NewResolver(cfg.Sources.GoalieSourceURL, goalies.NewHTTPFetcher(), nil, registry, log)
	}
	sources.Goalies = goalieResolver

	engine := prediction.NewEngine(
		prediction.WithPrimaryBookmaker(cfg.Prediction.PrimaryBookmaker),
		prediction.WithLogger(log),
	)
	predictions := service.NewPredictionService(sources, engine, c, registry,
		service.WithSports(cfg.Prediction.EnabledSports...),
		service.WithObserver(recorder),
		service.WithLogger(log),
	)
	log.WithField("sports", predictions.Sports()).Info("✓ Prediction service ready")

	// WebSocket server
	wsServer := websocket.NewServer(log)
	sinks.Broadcaster = wsServer
	go func() {
		if err := wsServer.Start(cfg.Server.WSPort); err != nil {
			log.WithError(err).Error("WebSocket server error")
		}
	}()
	log.Infof("✓ WebSocket server listening on :%s", cfg.Server.WSPort)

	// Scheduler
	var sched *scheduler.Orchestrator
	schedDone := make(chan struct{})
	if cfg.Prediction.EnableScheduler {
		schedulerConfig := scheduler.DefaultConfig()
		schedulerConfig.Schedule = cfg.Prediction.RefreshSchedule
		schedulerConfig.Sports = predictions.Sports()
		schedulerConfig.RefreshTimeout = cfg.Prediction.RefreshTimeout
		schedulerConfig.Retention = cfg.Storage.Retention

		sched = scheduler.NewOrchestrator(predictions, sinks, schedulerConfig, log)
		go func() {
			defer close(schedDone)
			if err := sched.Start(ctx); err != nil {
				log.Fatalf("Scheduler failed to start: %v", err)
			}
		}()
	} else {
		close(schedDone)
		log.Warn("⚠️  Scheduler disabled; predictions refresh on request only")
	}

	// REST API server
	handler := rest.NewHandler(predictions, predictionRepo, registry, healthChecks)
	if sched != nil {
		handler.WithRefreshStatus(sched)
	}
	router := rest.NewRouter(handler, recorder.Handler(), cfg.Server.CORSOrigins, log)
	restServer := rest.NewServer(cfg.Server.RESTPort, router, log)
	go func() {
		if err := restServer.Start(); err != nil {
			log.WithError(err).Error("REST server error")
		}
	}()

	log.Infof("✓ %s v%s started successfully", serviceName, serviceVersion)
	log.Infof("  REST API: http://0.0.0.0:%s", cfg.Server.RESTPort)
	log.Infof("  WebSocket: ws://0.0.0.0:%s/ws/predictions", cfg.Server.WSPort)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down gracefully...")
	cancel()
	<-schedDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("REST API server shutdown error")
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("WebSocket server shutdown error")
	}

	log.Infof("%s stopped", serviceName)
}

// connectRedis retries until Redis answers or the retry budget is spent
func connectRedis(url string, log *logrus.Logger) *cache.RedisStore {
	log.Info("Connecting to Redis...")
	for i := 0; ; i++ {
		rs, err := cache.NewRedisStore(url)
		if err == nil {
			return rs
		}
		if i >= redisMaxRetries-1 {
			log.Fatalf("Failed to connect to Redis after %d attempts: %v", redisMaxRetries, err)
		}
		log.Warnf("Redis connection attempt %d/%d failed: %v (retrying in %v)", i+1, redisMaxRetries, err, redisRetryDelay)
		time.Sleep(redisRetryDelay)
	}
}
