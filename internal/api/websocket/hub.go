package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fortuna/augur/internal/domain"
)

// Hub maintains the set of active clients and fans batches out to them
type Hub struct {
	clients   map[*Client]bool
	clientsMu sync.RWMutex

	broadcast  chan domain.Batch
	register   chan *Client
	unregister chan *Client

	metricsMu        sync.Mutex
	totalConnections int64
	totalMessages    int64

	log *logrus.Entry
}

// NewHub creates a new Hub instance
func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan domain.Batch, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log.WithField("component", "hub"),
	}
}

// Run is the hub's main loop; it returns when ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	h.log.Info("✓ Hub started")

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case c := <-h.register:
			h.registerClient(c)
		case c := <-h.unregister:
			h.unregisterClient(c)
		case batch := <-h.broadcast:
			h.broadcastBatch(batch)
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// Broadcast queues a batch for matching clients; a full queue drops it
func (h *Hub) Broadcast(batch domain.Batch) {
	select {
	case h.broadcast <- batch:
	default:
		h.log.WithField("sport", batch.Sport).Warn("⚠️  Broadcast buffer full, dropping batch")
	}
}

func (h *Hub) registerClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	h.clients[c] = true
	h.metricsMu.Lock()
	h.totalConnections++
	h.metricsMu.Unlock()

	h.log.WithField("client", c.ID).Infof("Client connected (total: %d)", len(h.clients))
}

func (h *Hub) unregisterClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		h.log.WithField("client", c.ID).Infof("Client disconnected (total: %d)", len(h.clients))
	}
}

// broadcastBatch sends each client the slice of batch its filter admits.
// Clients with a full buffer are disconnected.
func (h *Hub) broadcastBatch(batch domain.Batch) {
	h.clientsMu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	now := time.Now()
	sent, dropped := 0, 0
	for _, c := range clients {
		filtered, ok := c.Filter().Apply(batch)
		if !ok {
			continue
		}
		if c.TrySend(ServerMessage{Type: MessageTypePredictions, Payload: filtered, Timestamp: now}) {
			sent++
			continue
		}
		dropped++
		h.log.WithField("client", c.ID).Warn("⚠️  Client buffer full, disconnecting")
		go h.Unregister(c)
	}

	h.metricsMu.Lock()
	h.totalMessages += int64(sent)
	h.metricsMu.Unlock()

	h.log.WithFields(logrus.Fields{"sport": batch.Sport, "sent": sent, "dropped": dropped}).Debug("broadcast")
}

// Metrics returns hub counters
func (h *Hub) Metrics() map[string]interface{} {
	active := h.ClientCount()

	h.metricsMu.Lock()
	defer h.metricsMu.Unlock()

	return map[string]interface{}{
		"active_clients":     active,
		"total_connections":  h.totalConnections,
		"total_messages":     h.totalMessages,
		"broadcast_capacity": cap(h.broadcast),
		"broadcast_usage":    len(h.broadcast),
	}
}

// ClientCount returns the number of active clients
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) shutdown() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	h.log.Infof("Shutting down hub (%d active clients)", len(h.clients))
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}
