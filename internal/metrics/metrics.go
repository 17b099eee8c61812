package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns the service's Prometheus collectors. A nil *Recorder is a no-op.
type Recorder struct {
	registry       *prometheus.Registry
	cacheHits      *prometheus.CounterVec
	cacheMisses    *prometheus.CounterVec
	producerErrors *prometheus.CounterVec
	batchDuration  *prometheus.HistogramVec
	predictions    *prometheus.CounterVec
	sentiment      *prometheus.CounterVec
	upstreamErrors *prometheus.CounterVec
}

// NewRecorder creates a recorder backed by its own registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "augur",
			Name:      "cache_hits_total",
			Help:      "Cache lookups served from a stored entry.",
		}, []string{"prefix"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "augur",
			Name:      "cache_misses_total",
			Help:      "Cache lookups that invoked the producer.",
		}, []string{"prefix"}),
		producerErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "augur",
			Name:      "cache_producer_errors_total",
			Help:      "Producer failures propagated through the cache.",
		}, []string{"prefix"}),
		batchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "augur",
			Name:      "prediction_batch_seconds",
			Help:      "Time to build a prediction batch for one sport.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"sport"}),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "augur",
			Name:      "predictions_total",
			Help:      "Game predictions produced.",
		}, []string{"sport"}),
		sentiment: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "augur",
			Name:      "sentiment_source_total",
			Help:      "Sentiment scores by producing tier.",
		}, []string{"source"}),
		upstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "augur",
			Name:      "upstream_errors_total",
			Help:      "Collaborator failures replaced with neutral defaults.",
		}, []string{"source"}),
	}

	r.registry.MustRegister(
		r.cacheHits, r.cacheMisses, r.producerErrors,
		r.batchDuration, r.predictions, r.sentiment, r.upstreamErrors,
	)
	return r
}

// Handler exposes the registry for scraping
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry (used by tests)
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) CacheHit(key string) {
	if r == nil {
		return
	}
	r.cacheHits.WithLabelValues(KeyPrefix(key)).Inc()
}

func (r *Recorder) CacheMiss(key string) {
	if r == nil {
		return
	}
	r.cacheMisses.WithLabelValues(KeyPrefix(key)).Inc()
}

func (r *Recorder) ProducerError(key string) {
	if r == nil {
		return
	}
	r.producerErrors.WithLabelValues(KeyPrefix(key)).Inc()
}

// ObserveBatch records a finished prediction batch
func (r *Recorder) ObserveBatch(sport string, elapsed time.Duration, count int) {
	if r == nil {
		return
	}
	r.batchDuration.WithLabelValues(sport).Observe(elapsed.Seconds())
	r.predictions.WithLabelValues(sport).Add(float64(count))
}

func (r *Recorder) SentimentSource(source string) {
	if r == nil {
		return
	}
	r.sentiment.WithLabelValues(source).Inc()
}

func (r *Recorder) UpstreamError(source string) {
	if r == nil {
		return
	}
	r.upstreamErrors.WithLabelValues(source).Inc()
}

// KeyPrefix keeps label cardinality bounded: "odds:icehockey_nhl" -> "odds"
func KeyPrefix(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
