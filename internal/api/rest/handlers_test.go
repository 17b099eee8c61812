package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/augur/internal/domain"
	"github.com/fortuna/augur/internal/scheduler"
	"github.com/fortuna/augur/internal/service"
	"github.com/fortuna/augur/internal/store"
	"github.com/fortuna/augur/internal/teams"
)

type fakePredictor struct {
	batch    domain.Batch
	err      error
	refreshed bool
}

func (f *fakePredictor) Sports() []string { return []string{domain.SportNBA, domain.SportNHL} }

func (f *fakePredictor) Supports(sport string) bool {
	return sport == domain.SportNBA || sport == domain.SportNHL
}

func (f *fakePredictor) Current(_ context.Context, sport string, refresh bool) (domain.Batch, error) {
	f.refreshed = refresh
	if f.err != nil {
		return domain.Batch{}, f.err
	}
	b := f.batch
	b.Sport = sport
	return b, nil
}

type fakeBatches struct {
	latest map[string]domain.Batch
}

func (f *fakeBatches) LatestBatch(_ context.Context, sport string) (domain.Batch, error) {
	b, ok := f.latest[sport]
	if !ok {
		return domain.Batch{}, fmt.Errorf("no batch for %s: %w", sport, store.ErrNotFound)
	}
	return b, nil
}

func (f *fakeBatches) History(_ context.Context, sport string, limit int) ([]store.BatchSummary, error) {
	out := make([]store.BatchSummary, 0, limit)
	for i := 0; i < limit; i++ {
		out = append(out, store.BatchSummary{Sport: sport, GameCount: i})
	}
	return out, nil
}

func (f *fakeBatches) GameHistory(_ context.Context, gameID string) ([]store.GamePrediction, error) {
	if gameID != "g1" {
		return nil, store.ErrNotFound
	}
	return []store.GamePrediction{{GameID: "g1", Winner: "Boston Celtics"}}, nil
}

func newTestRouter(t *testing.T, p Predictor, b BatchStore, checks map[string]HealthCheck) http.Handler {
	t.Helper()
	registry, err := teams.DefaultRegistry()
	require.NoError(t, err)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	handler := NewHandler(p, b, registry, checks)
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("# metrics")) })
	return NewRouter(handler, metrics, nil, log)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGetPredictions(t *testing.T) {
	id := uuid.New()
	p := &fakePredictor{batch: domain.Batch{ID: id, GeneratedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}}
	router := newTestRouter(t, p, nil, nil)

	rec := get(t, router, "/api/v1/predictions/nba")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var batch domain.Batch
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &batch))
	assert.Equal(t, id, batch.ID)
	assert.Equal(t, domain.SportNBA, batch.Sport)
	assert.False(t, p.refreshed)

	rec = get(t, router, "/api/v1/predictions/icehockey_nhl?refresh=true")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, p.refreshed)
}

func TestGetPredictionsErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{"unsupported sport", "/api/v1/predictions/cricket", nil, http.StatusNotFound},
		{"unknown sport from service", "/api/v1/predictions/nhl", service.ErrUnknownSport, http.StatusNotFound},
		{"service failure", "/api/v1/predictions/nhl", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, &fakePredictor{err: tt.err}, nil, nil)
			rec := get(t, router, tt.path)
			assert.Equal(t, tt.status, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body, "error")
		})
	}
}

func TestPersistedRoutes(t *testing.T) {
	id := uuid.New()
	batches := &fakeBatches{latest: map[string]domain.Batch{domain.SportNHL: {ID: id, Sport: domain.SportNHL}}}
	router := newTestRouter(t, &fakePredictor{}, batches, nil)

	rec := get(t, router, "/api/v1/predictions/nhl/latest")
	require.Equal(t, http.StatusOK, rec.Code)
	var batch domain.Batch
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &batch))
	assert.Equal(t, id, batch.ID)

	rec = get(t, router, "/api/v1/predictions/nba/latest")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, router, "/api/v1/predictions/nhl/history?limit=3")
	require.Equal(t, http.StatusOK, rec.Code)
	var history []store.BatchSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Len(t, history, 3)

	rec = get(t, router, "/api/v1/predictions/nhl/history?limit=-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, router, "/api/v1/games/g1/predictions")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = get(t, router, "/api/v1/games/zzz/predictions")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPersistedRoutesWithoutStore(t *testing.T) {
	router := newTestRouter(t, &fakePredictor{}, nil, nil)
	rec := get(t, router, "/api/v1/predictions/nhl/latest")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestResolveTeam(t *testing.T) {
	router := newTestRouter(t, &fakePredictor{}, nil, nil)

	rec := get(t, router, "/api/v1/teams/resolve?name=habs")
	require.Equal(t, http.StatusOK, rec.Code)
	var team teams.TeamIdentity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &team))
	assert.Equal(t, "Montréal Canadiens", team.Name)

	// shared nickname needs a league
	assert.Equal(t, http.StatusNotFound, get(t, router, "/api/v1/teams/resolve?name=Rangers").Code)
	rec = get(t, router, "/api/v1/teams/resolve?name=Rangers&league=mlb")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &team))
	assert.Equal(t, "Texas Rangers", team.Name)

	rec = get(t, router, "/api/v1/teams/resolve?name=r/leafs&league=nhl")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &team))
	assert.Equal(t, "Toronto Maple Leafs", team.Name)
	assert.Equal(t, "leafs", team.Community)

	assert.Equal(t, http.StatusBadRequest, get(t, router, "/api/v1/teams/resolve").Code)
}

func TestGetTeamsAndSports(t *testing.T) {
	router := newTestRouter(t, &fakePredictor{}, nil, nil)

	rec := get(t, router, "/api/v1/teams?league=nfl")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []teams.TeamIdentity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 32)

	assert.Equal(t, http.StatusBadRequest, get(t, router, "/api/v1/teams").Code)

	rec = get(t, router, "/api/v1/sports")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sports":["basketball_nba","icehockey_nhl"]}`, rec.Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	healthy := newTestRouter(t, &fakePredictor{}, nil, map[string]HealthCheck{
		"redis": func(context.Context) error { return nil },
	})
	rec := get(t, healthy, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"healthy"`)

	degraded := newTestRouter(t, &fakePredictor{}, nil, map[string]HealthCheck{
		"atlas": func(context.Context) error { return errors.New("connection refused") },
	})
	rec = get(t, degraded, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")

	rec = get(t, healthy, "/metrics")
	assert.Equal(t, "# metrics", rec.Body.String())
}

var _ RefreshStatus = (*scheduler.Orchestrator)(nil)

type fakeRefreshes map[string]scheduler.SportStatus

func (f fakeRefreshes) Status() map[string]scheduler.SportStatus { return f }

func TestHealthIncludesRefreshStatus(t *testing.T) {
	registry, err := teams.DefaultRegistry()
	require.NoError(t, err)
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	handler := NewHandler(&fakePredictor{}, nil, registry, nil).WithRefreshStatus(fakeRefreshes{
		domain.SportNHL: {Games: 7, ConsecutiveErrors: 0, LastBatch: "b1"},
		domain.SportMLB: {ConsecutiveErrors: 2, LastError: "upstream down"},
	})
	rec := get(t, NewRouter(handler, nil, nil, log), "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Refreshes map[string]scheduler.SportStatus `json:"refreshes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 7, body.Refreshes[domain.SportNHL].Games)
	assert.Equal(t, "upstream down", body.Refreshes[domain.SportMLB].LastError)

	rec = get(t, newTestRouter(t, &fakePredictor{}, nil, nil), "/health")
	assert.NotContains(t, rec.Body.String(), "refreshes")
}

func TestRecoveryMiddleware(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	h := RecoveryMiddleware(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))

	rec := get(t, h, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLoggingMiddlewareKeepsValidRequestID(t *testing.T) {
	router := newTestRouter(t, &fakePredictor{}, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sports", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}
