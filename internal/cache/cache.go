package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrMiss is returned by stores when a key is absent or expired
var ErrMiss = errors.New("cache miss")

// Store is a byte-level key/value backend with per-key expiry
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Observer receives hit/miss notifications (implemented by metrics.Recorder)
type Observer interface {
	CacheHit(key string)
	CacheMiss(key string)
	ProducerError(key string)
}

// Cache memoizes producer results by key. It is constructed once at startup and
// shared by reference. Concurrent misses on the same key may both run the
// producer; the last successful write wins.
type Cache struct {
	store      Store
	defaultTTL time.Duration
	observer   Observer
	log        *logrus.Entry
}

// Option configures a Cache
type Option func(*Cache)

// WithDefaultTTL sets the TTL used when Fetch is called with ttl <= 0
func WithDefaultTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.defaultTTL = ttl }
}

// WithObserver attaches hit/miss instrumentation
func WithObserver(o Observer) Option {
	return func(c *Cache) { c.observer = o }
}

// WithLogger sets the logger
func WithLogger(log *logrus.Logger) Option {
	return func(c *Cache) { c.log = log.WithField("component", "cache") }
}

// New creates a cache over store
func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store:      store,
		defaultTTL: DefaultTTL,
		log:        logrus.StandardLogger().WithField("component", "cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the stored value for key while it is fresh; otherwise it runs
// producer, stores the result for ttl and returns it. Producer errors are
// returned unchanged and nothing is stored, so the next call retries.
func Fetch[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, producer func(context.Context) (T, error)) (T, error) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	if raw, err := c.store.Get(ctx, key); err == nil {
		var value T
		if err := json.Unmarshal(raw, &value); err == nil {
			c.hit(key)
			return value, nil
		}
		c.log.WithField("key", key).Warn("⚠️  Undecodable cache entry, refetching")
	} else if !errors.Is(err, ErrMiss) {
		c.log.WithError(err).WithField("key", key).Warn("⚠️  Cache read failed, treating as miss")
	}

	c.miss(key)

	value, err := producer(ctx)
	if err != nil {
		if c.observer != nil {
			c.observer.ProducerError(key)
		}
		return value, err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		c.log.WithError(err).WithField("key", key).Warn("⚠️  Value not cacheable")
		return value, nil
	}
	if err := c.store.Set(ctx, key, raw, ttl); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("⚠️  Cache write failed")
	}

	return value, nil
}

// Put stores value under key for ttl, replacing any fresh entry
func Put[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, value T) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return c.store.Set(ctx, key, raw, ttl)
}

func (c *Cache) hit(key string) {
	c.log.WithField("key", key).Debug("cache hit")
	if c.observer != nil {
		c.observer.CacheHit(key)
	}
}

func (c *Cache) miss(key string) {
	c.log.WithField("key", key).Debug("cache miss")
	if c.observer != nil {
		c.observer.CacheMiss(key)
	}
}
