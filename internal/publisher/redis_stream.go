package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fortuna/augur/internal/domain"
)

// DefaultMaxLen caps each stream at roughly this many entries
const DefaultMaxLen = 1000

// StreamName returns the stream a sport's batches are published to
func StreamName(sport string) string {
	return "predictions." + sport
}

// StreamAdder is the subset of *redis.Client the publisher needs
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisStreamPublisher publishes prediction batches to Redis streams
type RedisStreamPublisher struct {
	client StreamAdder
	maxLen int64
	now    func() time.Time
}

// NewRedisStreamPublisher creates a new Redis stream publisher from existing client
func NewRedisStreamPublisher(client StreamAdder) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
		maxLen: DefaultMaxLen,
		now:    time.Now,
	}
}

// PublishBatch appends the batch to predictions.<sport> and returns the entry id
func (p *RedisStreamPublisher) PublishBatch(ctx context.Context, batch domain.Batch) (string, error) {
	data, err := json.Marshal(batch)
	if err != nil {
		return "", fmt.Errorf("encoding batch: %w", err)
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamName(batch.Sport),
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"batch_id":  batch.ID.String(),
			"games":     len(batch.Predictions),
			"data":      string(data),
			"timestamp": p.now().Unix(),
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("publishing to %s: %w", StreamName(batch.Sport), err)
	}
	return id, nil
}
