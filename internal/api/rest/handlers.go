package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/fortuna/augur/internal/domain"
	"github.com/fortuna/augur/internal/scheduler"
	"github.com/fortuna/augur/internal/service"
	"github.com/fortuna/augur/internal/store"
	"github.com/fortuna/augur/internal/teams"
)

// Predictor serves prediction batches
type Predictor interface {
	Sports() []string
	Supports(sport string) bool
	Current(ctx context.Context, sport string, refresh bool) (domain.Batch, error)
}

// BatchStore reads persisted batches
type BatchStore interface {
	LatestBatch(ctx context.Context, sport string) (domain.Batch, error)
	History(ctx context.Context, sport string, limit int) ([]store.BatchSummary, error)
	GameHistory(ctx context.Context, gameID string) ([]store.GamePrediction, error)
}

// TeamLookup resolves team names
type TeamLookup interface {
	Canonicalize(raw string) (teams.TeamIdentity, bool)
	CanonicalizeIn(league, raw string) (teams.TeamIdentity, bool)
	Teams(league string) []teams.TeamIdentity
}

// RefreshStatus reports the latest scheduled refresh per sport
type RefreshStatus interface {
	Status() map[string]scheduler.SportStatus
}

// HealthCheck probes one dependency
type HealthCheck func(ctx context.Context) error

// sportShortNames lets clients use league names in paths
var sportShortNames = map[string]string{
	"nhl": domain.SportNHL,
	"nba": domain.SportNBA,
	"mlb": domain.SportMLB,
	"nfl": domain.SportNFL,
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	predictions Predictor
	batches     BatchStore
	teams       TeamLookup
	checks      map[string]HealthCheck
	refreshes   RefreshStatus
}

// NewHandler creates a new handler. batches may be nil when running without a database.
func NewHandler(predictions Predictor, batches BatchStore, lookup TeamLookup, checks map[string]HealthCheck) *Handler {
	return &Handler{
		predictions: predictions,
		batches:     batches,
		teams:       lookup,
		checks:      checks,
	}
}

// WithRefreshStatus adds the scheduler's per-sport refresh status to /health
func (h *Handler) WithRefreshStatus(s RefreshStatus) *Handler {
	h.refreshes = s
	return h
}

// HealthCheck reports the status of each dependency
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(r.Context()); err != nil {
			deps[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "degraded"
	}
	body := map[string]interface{}{
		"status":       overall,
		"service":      "augur",
		"dependencies": deps,
	}
	if h.refreshes != nil {
		body["refreshes"] = h.refreshes.Status()
	}
	respondJSON(w, status, body)
}

// GetSports lists the sports with predictions
func (h *Handler) GetSports(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"sports": h.predictions.Sports()})
}

// GetPredictions returns the current batch for a sport; ?refresh=true forces a recompute
func (h *Handler) GetPredictions(w http.ResponseWriter, r *http.Request) {
	sport, ok := h.sportParam(w, r)
	if !ok {
		return
	}
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))

	batch, err := h.predictions.Current(r.Context(), sport, refresh)
	if err != nil {
		if errors.Is(err, service.ErrUnknownSport) {
			respondError(w, http.StatusNotFound, "Unknown sport", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to produce predictions", err)
		return
	}

	respondJSON(w, http.StatusOK, batch)
}

// GetLatestPredictions returns the most recent persisted batch
func (h *Handler) GetLatestPredictions(w http.ResponseWriter, r *http.Request) {
	sport, ok := h.sportParam(w, r)
	if !ok || !h.requireStore(w) {
		return
	}

	batch, err := h.batches.LatestBatch(r.Context(), sport)
	if err != nil {
		respondStoreError(w, "Failed to fetch latest batch", err)
		return
	}
	respondJSON(w, http.StatusOK, batch)
}

// GetPredictionHistory lists persisted batches for a sport
func (h *Handler) GetPredictionHistory(w http.ResponseWriter, r *http.Request) {
	sport, ok := h.sportParam(w, r)
	if !ok || !h.requireStore(w) {
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 500 {
			respondError(w, http.StatusBadRequest, "Invalid limit parameter", err)
			return
		}
		limit = n
	}

	history, err := h.batches.History(r.Context(), sport, limit)
	if err != nil {
		respondStoreError(w, "Failed to fetch batch history", err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}

// GetGamePredictions returns how a game's prediction moved over time
func (h *Handler) GetGamePredictions(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}
	gameID := mux.Vars(r)["gameID"]

	history, err := h.batches.GameHistory(r.Context(), gameID)
	if err != nil {
		respondStoreError(w, "Failed to fetch game predictions", err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}

// GetTeams lists a league's canonical teams
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	league, ok := resolveSport(r.URL.Query().Get("league"))
	if !ok {
		respondError(w, http.StatusBadRequest, "league parameter is required", nil)
		return
	}
	respondJSON(w, http.StatusOK, h.teams.Teams(league))
}

// ResolveTeam canonicalizes a raw team name, optionally within a league
func (h *Handler) ResolveTeam(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		respondError(w, http.StatusBadRequest, "name parameter is required", nil)
		return
	}

	var (
		team  teams.TeamIdentity
		found bool
	)
	if league, ok := resolveSport(r.URL.Query().Get("league")); ok {
		team, found = h.teams.CanonicalizeIn(league, name)
	} else {
		team, found = h.teams.Canonicalize(name)
	}
	if !found {
		respondError(w, http.StatusNotFound, "Team not found", nil)
		return
	}
	respondJSON(w, http.StatusOK, team)
}

func (h *Handler) sportParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	sport, ok := resolveSport(mux.Vars(r)["sport"])
	if !ok || !h.predictions.Supports(sport) {
		respondError(w, http.StatusNotFound, "Unknown sport", nil)
		return "", false
	}
	return sport, true
}

func (h *Handler) requireStore(w http.ResponseWriter) bool {
	if h.batches == nil {
		respondError(w, http.StatusServiceUnavailable, "Persistence is not configured", nil)
		return false
	}
	return true
}

func resolveSport(raw string) (string, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return "", false
	}
	if key, ok := sportShortNames[raw]; ok {
		return key, true
	}
	return raw, true
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}

func respondStoreError(w http.ResponseWriter, message string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Not found", err)
		return
	}
	respondError(w, http.StatusInternalServerError, message, err)
}
