package websocket

import (
	"time"

	"github.com/fortuna/augur/internal/domain"
)

// Message types exchanged with clients
const (
	MessageTypeSubscribe   = "subscribe"
	MessageTypeUnsubscribe = "unsubscribe"
	MessageTypeHeartbeat   = "heartbeat"
	MessageTypePredictions = "predictions"
	MessageTypeError       = "error"
)

// ClientMessage is a request from a client
type ClientMessage struct {
	Type   string   `json:"type"`
	Sports []string `json:"sports,omitempty"`
	Games  []string `json:"games,omitempty"`
}

// ServerMessage is pushed to clients
type ServerMessage struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Filter narrows which batches a client receives. An empty filter receives everything.
type Filter struct {
	Sports []string `json:"sports,omitempty"`
	Games  []string `json:"games,omitempty"`
}

// Apply returns the part of batch the filter admits, or false when nothing matches
func (f Filter) Apply(batch domain.Batch) (domain.Batch, bool) {
	if len(f.Sports) > 0 && !contains(f.Sports, batch.Sport) {
		return batch, false
	}
	if len(f.Games) == 0 {
		return batch, true
	}

	kept := make([]domain.GamePrediction, 0, len(f.Games))
	for _, p := range batch.Predictions {
		if contains(f.Games, p.Game.ID) {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return batch, false
	}
	batch.Predictions = kept
	return batch, true
}

// ErrorMessage is the payload of an error message
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ConnectionStats is the payload of a heartbeat reply
type ConnectionStats struct {
	ClientID         string    `json:"client_id"`
	ConnectedAt      time.Time `json:"connected_at"`
	MessagesSent     int64     `json:"messages_sent"`
	MessagesReceived int64     `json:"messages_received"`
	Filter           Filter    `json:"filter"`
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
