package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/fortuna/augur/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server represents the WebSocket server
type Server struct {
	hub    *Hub
	server *http.Server
	ctx    context.Context
	cancel context.CancelFunc
	logger *logrus.Logger
	log    *logrus.Entry
}

// NewServer creates a new WebSocket server
func NewServer(log *logrus.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		hub:    NewHub(log),
		ctx:    ctx,
		cancel: cancel,
		logger: log,
		log:    log.WithField("component", "websocket"),
	}
}

// Hub exposes the server's hub
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the server's routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/predictions", s.handlePredictions)
	mux.HandleFunc("/ws/health", s.handleHealth)
	return mux
}

// Start runs the hub and serves until Shutdown
func (s *Server) Start(port string) error {
	go s.hub.Run(s.ctx)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: s.Handler(),
	}

	s.log.Infof("WebSocket server listening on :%s", port)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Broadcast pushes a batch to subscribed clients
func (s *Server) Broadcast(batch domain.Batch) {
	s.hub.Broadcast(batch)
}

// handlePredictions upgrades the connection and registers a client
func (s *Server) handlePredictions(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("⚠️  Failed to upgrade connection")
		return
	}

	client := NewClient(uuid.New().String(), conn, s.hub, s.logger)
	s.hub.Register(client)

	// pumps outlive the request, so they run on the server context
	go client.WritePump(s.ctx)
	go client.ReadPump(s.ctx)
}

// handleHealth returns WebSocket server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "healthy",
		"clients": s.hub.ClientCount(),
	})
}

// Shutdown stops the hub and gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
