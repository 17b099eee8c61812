package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Server represents the REST API server
type Server struct {
	server *http.Server
	log    *logrus.Entry
}

// NewRouter wires routes and middleware. metrics may be nil.
func NewRouter(handler *Handler, metrics http.Handler, corsOrigins []string, log *logrus.Logger) *mux.Router {
	router := mux.NewRouter()

	router.Use(RecoveryMiddleware(log))
	router.Use(LoggingMiddleware(log))
	router.Use(CORSMiddleware(corsOrigins))

	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	if metrics != nil {
		router.Handle("/metrics", metrics).Methods("GET")
	}

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/sports", handler.GetSports).Methods("GET")

	// Predictions
	api.HandleFunc("/predictions/{sport}", handler.GetPredictions).Methods("GET")
	api.HandleFunc("/predictions/{sport}/latest", handler.GetLatestPredictions).Methods("GET")
	api.HandleFunc("/predictions/{sport}/history", handler.GetPredictionHistory).Methods("GET")
	api.HandleFunc("/games/{gameID}/predictions", handler.GetGamePredictions).Methods("GET")

	// Teams
	api.HandleFunc("/teams", handler.GetTeams).Methods("GET")
	api.HandleFunc("/teams/resolve", handler.ResolveTeam).Methods("GET")

	return router
}

// NewServer creates a new REST API server
func NewServer(port string, router http.Handler, log *logrus.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%s", port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log.WithField("component", "rest"),
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	s.log.Infof("REST API listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
