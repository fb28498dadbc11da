// Package workers provides background job processors for the orderpad service.
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"orderpad-service/internal/orderentry"
	"orderpad-service/internal/services"
)

const (
	// DefaultSweepInterval is the default interval between draft sweeps
	DefaultSweepInterval = 1 * time.Hour

	// DefaultDraftMaxAge is how long an untouched draft survives
	DefaultDraftMaxAge = 7 * 24 * time.Hour

	// sweepScanCount is the SCAN page size per iteration
	sweepScanCount = 100
)

// DraftExpirationWorker periodically deletes drafts whose SavedAt stamp is
// older than the configured age. Drafts carry no redis TTL of their own so
// a device that keeps autosaving keeps its draft indefinitely.
type DraftExpirationWorker struct {
	redis    *redis.Client
	logger   *logrus.Logger
	interval time.Duration
	maxAge   time.Duration

	stopChan chan struct{}
	doneChan chan struct{}
	mu       sync.Mutex
	running  bool
	lastRun  time.Time
	lastErr  error
	stats    SweepStats
}

// SweepStats tracks cleanup statistics.
type SweepStats struct {
	DraftsScanned   int64     `json:"draftsScanned"`
	DraftsDeleted   int64     `json:"draftsDeleted"`
	LastRunAt       time.Time `json:"lastRunAt,omitempty"`
	LastRunDuration string    `json:"lastRunDuration,omitempty"`
}

// NewDraftExpirationWorker creates a new draft expiration worker.
func NewDraftExpirationWorker(redisClient *redis.Client, interval, maxAge time.Duration, logger *logrus.Logger) *DraftExpirationWorker {
	if interval == 0 {
		interval = DefaultSweepInterval
	}
	if maxAge == 0 {
		maxAge = DefaultDraftMaxAge
	}
	return &DraftExpirationWorker{
		redis:    redisClient,
		logger:   logger,
		interval: interval,
		maxAge:   maxAge,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start begins the sweep loop.
func (w *DraftExpirationWorker) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	go w.run()
	w.logger.WithField("interval", w.interval.String()).Info("Draft expiration worker started")
}

// Stop stops the sweep loop and waits for the current sweep to finish.
func (w *DraftExpirationWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopChan)
	<-w.doneChan
	w.logger.Info("Draft expiration worker stopped")
}

// ForceRun triggers an immediate sweep.
func (w *DraftExpirationWorker) ForceRun(ctx context.Context) error {
	return w.sweep(ctx)
}

// IsRunning returns whether the worker is running.
func (w *DraftExpirationWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Stats returns the current sweep statistics.
func (w *DraftExpirationWorker) Stats() SweepStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *DraftExpirationWorker) run() {
	defer close(w.doneChan)

	ctx := context.Background()
	if err := w.sweep(ctx); err != nil {
		w.logger.WithError(err).Warn("Initial draft sweep failed")
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			if err := w.sweep(context.Background()); err != nil {
				w.logger.WithError(err).Warn("Draft sweep failed")
				w.mu.Lock()
				w.lastErr = err
				w.mu.Unlock()
			}
		}
	}
}

// sweep scans all draft keys and deletes stale and undecodable documents.
func (w *DraftExpirationWorker) sweep(ctx context.Context) error {
	startTime := time.Now()
	cutoff := startTime.Add(-w.maxAge)

	var scanned, deleted int64
	var cursor uint64
	for {
		keys, next, err := w.redis.Scan(ctx, cursor, services.DraftKeyPrefix+"*", sweepScanCount).Result()
		if err != nil {
			return err
		}

		for _, key := range keys {
			scanned++
			val, err := w.redis.Get(ctx, key).Result()
			if err != nil {
				continue
			}
			draft, err := orderentry.DecodeDraft([]byte(val))
			if err != nil || draft.SavedAt.Before(cutoff) {
				if delErr := w.redis.Del(ctx, key).Err(); delErr == nil {
					deleted++
				}
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	duration := time.Since(startTime)
	w.mu.Lock()
	w.lastRun = startTime
	w.lastErr = nil
	w.stats = SweepStats{
		DraftsScanned:   scanned,
		DraftsDeleted:   deleted,
		LastRunAt:       startTime,
		LastRunDuration: duration.String(),
	}
	w.mu.Unlock()

	if deleted > 0 {
		w.logger.WithFields(logrus.Fields{
			"scanned": scanned,
			"deleted": deleted,
			"took":    duration.String(),
		}).Info("Draft sweep completed")
	}
	return nil
}
