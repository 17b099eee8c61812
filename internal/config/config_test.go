package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/augur/internal/domain"
	"github.com/fortuna/augur/internal/ingest/espn"
	"github.com/fortuna/augur/internal/sentiment"
)

var configKeys = []string{
	"REST_PORT", "WS_PORT", "CORS_ORIGINS", "ATLAS_DSN", "REDIS_URL", "CACHE_BACKEND",
	"PREDICTION_RETENTION", "ODDS_API_KEY", "ODDS_API_BASE", "ESPN_API_BASE",
	"WEATHER_API_BASE", "REDDIT_API_BASE", "MLB_API_BASE", "GOALIE_SOURCE_URL",
	"ENABLE_HEADLESS_SCRAPER", "ENABLED_SPORTS", "PRIMARY_BOOKMAKER", "SENTIMENT_WINDOW",
	"ENABLE_SCHEDULER", "REFRESH_SCHEDULE", "REFRESH_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.RESTPort)
	assert.Equal(t, "8081", cfg.Server.WSPort)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, CacheRedis, cfg.Storage.CacheBackend)
	assert.Equal(t, espn.BaseURL, cfg.Sources.ESPNAPIBase)
	assert.False(t, cfg.Sources.HeadlessScraper)
	assert.Equal(t, domain.Sports(), cfg.Prediction.EnabledSports)
	assert.Equal(t, sentiment.DefaultWindow, cfg.Prediction.SentimentWindow)
	assert.True(t, cfg.Prediction.EnableScheduler)
	assert.Empty(t, cfg.Prediction.PrimaryBookmaker)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CACHE_BACKEND", "Memory")
	t.Setenv("ENABLED_SPORTS", " icehockey_nhl , baseball_mlb ,")
	t.Setenv("SENTIMENT_WINDOW", "168h")
	t.Setenv("REFRESH_TIMEOUT", "45")
	t.Setenv("ENABLE_HEADLESS_SCRAPER", "true")
	t.Setenv("ENABLE_SCHEDULER", "not-a-bool")
	t.Setenv("PRIMARY_BOOKMAKER", "fanduel")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, CacheMemory, cfg.Storage.CacheBackend)
	assert.Equal(t, []string{domain.SportNHL, domain.SportMLB}, cfg.Prediction.EnabledSports)
	assert.Equal(t, 7*24*time.Hour, cfg.Prediction.SentimentWindow)
	assert.Equal(t, 45*time.Second, cfg.Prediction.RefreshTimeout)
	assert.True(t, cfg.Sources.HeadlessScraper)
	assert.True(t, cfg.Prediction.EnableScheduler, "unparseable bools keep the default")
	assert.Equal(t, "fanduel", cfg.Prediction.PrimaryBookmaker)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestFromEnvValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown cache backend", "CACHE_BACKEND", "memcached"},
		{"unsupported sport", "ENABLED_SPORTS", "soccer_epl"},
		{"no sports", "ENABLED_SPORTS", " , "},
		{"bad log level", "LOG_LEVEL", "loud"},
		{"bad log format", "LOG_FORMAT", "xml"},
		{"zero sentiment window", "SENTIMENT_WINDOW", "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("REST_PORT")
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("REST_PORT=9090\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.RESTPort)
}

func TestLoadMissingEnvFileIsFine(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}

func TestLoggerHonoursLevelAndFormat(t *testing.T) {
	log := LogConfig{Level: "debug", Format: "json"}.Logger()
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = LogConfig{Level: "bogus", Format: "text"}.Logger()
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}
