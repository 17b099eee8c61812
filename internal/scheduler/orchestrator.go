package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/fortuna/augur/internal/domain"
)

// Predictor produces prediction batches
type Predictor interface {
	Current(ctx context.Context, sport string, refresh bool) (domain.Batch, error)
}

// BatchStore persists batches and drops old ones
type BatchStore interface {
	SaveBatch(ctx context.Context, batch domain.Batch) error
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}

// Publisher fans a batch out to downstream consumers
type Publisher interface {
	PublishBatch(ctx context.Context, batch domain.Batch) (string, error)
}

// Broadcaster pushes a batch to connected live clients
type Broadcaster interface {
	Broadcast(batch domain.Batch)
}

// Sinks are the optional destinations of every refreshed batch. Nil sinks
// are skipped.
type Sinks struct {
	Store       BatchStore
	Publisher   Publisher
	Broadcaster Broadcaster
}

// Config holds scheduler configuration
type Config struct {
	Schedule       string         // cron expression for refreshes; default every 15 minutes
	Sports         []string       // sports refreshed on each run
	RunOnStart     bool           // refresh once before the first tick
	RefreshTimeout time.Duration  // bound on one full run; default 2m
	MaxRetries     int            // default 3
	RetryDelay     time.Duration  // default 5s
	Retention      time.Duration  // stored batches older than this are pruned; 0 disables
	PruneSchedule  string         // cron expression for pruning; default 04:00 daily
	Location       *time.Location // cron timezone; default UTC
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() *Config {
	return &Config{
		Schedule:       "*/15 * * * *",
		RunOnStart:     true,
		RefreshTimeout: 2 * time.Minute,
		MaxRetries:     3,
		RetryDelay:     5 * time.Second,
		Retention:      30 * 24 * time.Hour,
		PruneSchedule:  "0 4 * * *",
		Location:       time.UTC,
	}
}

// SportStatus is the outcome of the latest refresh of one sport
type SportStatus struct {
	LastRun           time.Time `json:"last_run"`
	LastBatch         string    `json:"last_batch,omitempty"`
	Games             int       `json:"games"`
	LastError         string    `json:"last_error,omitempty"`
	ConsecutiveErrors int       `json:"consecutive_errors"`
}

// Orchestrator runs the cron-driven refresh of every enabled sport:
// predict, save, publish, broadcast.
type Orchestrator struct {
	predictor Predictor
	sinks     Sinks
	config    *Config
	log       *logrus.Entry
	now       func() time.Time

	cron *cron.Cron
	run  sync.Mutex // serializes refresh runs

	statusMu sync.RWMutex
	status   map[string]SportStatus
}

// NewOrchestrator creates a new scheduler orchestrator
func NewOrchestrator(predictor Predictor, sinks Sinks, config *Config, log *logrus.Logger) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}
	defaults := DefaultConfig()
	if config.Schedule == "" {
		config.Schedule = defaults.Schedule
	}
	if config.RefreshTimeout <= 0 {
		config.RefreshTimeout = defaults.RefreshTimeout
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = defaults.MaxRetries
	}
	if config.RetryDelay < 0 {
		config.RetryDelay = 0
	}
	if config.PruneSchedule == "" {
		config.PruneSchedule = defaults.PruneSchedule
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Orchestrator{
		predictor: predictor,
		sinks:     sinks,
		config:    config,
		log:       log.WithField("component", "scheduler"),
		now:       time.Now,
		status:    make(map[string]SportStatus),
	}
}

// Start registers the cron jobs and blocks until ctx is cancelled
func (o *Orchestrator) Start(ctx context.Context) error {
	o.cron = cron.New(
		cron.WithLocation(o.config.Location),
		cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(o.log))),
	)

	if _, err := o.cron.AddFunc(o.config.Schedule, func() { o.RefreshAll(ctx) }); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", o.config.Schedule, err)
	}
	if o.config.Retention > 0 && o.sinks.Store != nil {
		if _, err := o.cron.AddFunc(o.config.PruneSchedule, func() { o.prune(ctx) }); err != nil {
			return fmt.Errorf("invalid prune schedule %q: %w", o.config.PruneSchedule, err)
		}
	}

	o.log.WithFields(logrus.Fields{
		"schedule": o.config.Schedule,
		"sports":   o.config.Sports,
	}).Info("→ Scheduler started")

	o.cron.Start()
	if o.config.RunOnStart {
		go o.RefreshAll(ctx)
	}

	<-ctx.Done()
	o.Stop()
	return nil
}

// Stop halts the cron and waits for a running job to finish
func (o *Orchestrator) Stop() {
	if o.cron == nil {
		return
	}
	<-o.cron.Stop().Done()
	o.log.Info("✓ Scheduler stopped")
}

// RefreshAll refreshes every configured sport in order. Concurrent calls are
// serialized.
func (o *Orchestrator) RefreshAll(ctx context.Context) {
	o.run.Lock()
	defer o.run.Unlock()

	ctx, cancel := context.WithTimeout(ctx, o.config.RefreshTimeout)
	defer cancel()

	start := o.now()
	var produced int
	for _, sport := range o.config.Sports {
		if ctx.Err() != nil {
			o.log.Warn("⚠️  Refresh run cut short")
			return
		}
		batch, err := o.RefreshSport(ctx, sport)
		if err != nil {
			continue
		}
		produced += len(batch.Predictions)
	}

	o.log.WithFields(logrus.Fields{
		"sports":      len(o.config.Sports),
		"predictions": produced,
		"duration":    o.now().Sub(start).Round(time.Millisecond),
	}).Info("✓ Refresh run complete")
}

// RefreshSport recomputes one sport's batch with retries, then stores,
// publishes and broadcasts it. Sink failures are logged and do not fail the
// refresh.
func (o *Orchestrator) RefreshSport(ctx context.Context, sport string) (domain.Batch, error) {
	log := o.log.WithField("sport", sport)

	batch, err := o.predictWithRetry(ctx, sport)
	if err != nil {
		o.recordStatus(sport, domain.Batch{}, err)
		log.WithError(err).Errorf("❌ All %d refresh attempts failed", o.config.MaxRetries)
		return domain.Batch{}, err
	}

	if o.sinks.Store != nil {
		if err := o.sinks.Store.SaveBatch(ctx, batch); err != nil {
			log.WithError(err).Warn("⚠️  Failed to save batch")
		}
	}
	if o.sinks.Publisher != nil {
		if _, err := o.sinks.Publisher.PublishBatch(ctx, batch); err != nil {
			log.WithError(err).Warn("⚠️  Failed to publish batch")
		}
	}
	if o.sinks.Broadcaster != nil {
		o.sinks.Broadcaster.Broadcast(batch)
	}

	o.recordStatus(sport, batch, nil)
	log.WithFields(logrus.Fields{
		"batch_id": batch.ID,
		"games":    len(batch.Predictions),
	}).Info("✓ Sport refreshed")
	return batch, nil
}

func (o *Orchestrator) predictWithRetry(ctx context.Context, sport string) (domain.Batch, error) {
	var err error
	for attempt := 1; attempt <= o.config.MaxRetries; attempt++ {
		var batch domain.Batch
		batch, err = o.predictor.Current(ctx, sport, true)
		if err == nil {
			return batch, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return domain.Batch{}, err
		}

		o.log.WithField("sport", sport).WithError(err).
			Warnf("⚠️  Refresh attempt %d/%d failed", attempt, o.config.MaxRetries)

		if attempt < o.config.MaxRetries {
			select {
			case <-ctx.Done():
				return domain.Batch{}, ctx.Err()
			case <-time.After(o.config.RetryDelay):
			}
		}
	}
	return domain.Batch{}, err
}

func (o *Orchestrator) prune(ctx context.Context) {
	cutoff := o.now().Add(-o.config.Retention)
	removed, err := o.sinks.Store.Prune(ctx, cutoff)
	if err != nil {
		o.log.WithError(err).Warn("⚠️  Failed to prune stored batches")
		return
	}
	o.log.WithField("removed", removed).Infof("✓ Pruned batches older than %s", cutoff.Format(time.RFC3339))
}

func (o *Orchestrator) recordStatus(sport string, batch domain.Batch, err error) {
	o.statusMu.Lock()
	defer o.statusMu.Unlock()

	st := o.status[sport]
	st.LastRun = o.now().UTC()
	if err != nil {
		st.LastError = err.Error()
		st.ConsecutiveErrors++
	} else {
		st.LastError = ""
		st.ConsecutiveErrors = 0
		st.LastBatch = batch.ID.String()
		st.Games = len(batch.Predictions)
	}
	o.status[sport] = st
}

// Status returns the latest refresh outcome per sport
func (o *Orchestrator) Status() map[string]SportStatus {
	o.statusMu.RLock()
	defer o.statusMu.RUnlock()

	out := make(map[string]SportStatus, len(o.status))
	for k, v := range o.status {
		out[k] = v
	}
	return out
}
