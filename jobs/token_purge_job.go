// File: /jobs/token_purge_job.go
package jobs

import (
	"log/slog"
	"sync"
	"time"

	"photogram-api/metrics"
)

// Purger drops revocation entries whose tokens have expired.
type Purger interface {
	Purge() int
}

// TokenPurgeJob periodically frees the memory held by expired token revocations
type TokenPurgeJob struct {
	store    Purger
	interval time.Duration
	log      *slog.Logger
	ticker   *time.Ticker
	done     chan bool
	stopOnce sync.Once
}

// NewTokenPurgeJob creates a new token purge job
func NewTokenPurgeJob(store Purger, interval time.Duration, log *slog.Logger) *TokenPurgeJob {
	return &TokenPurgeJob{
		store:    store,
		interval: interval,
		log:      log,
		done:     make(chan bool),
	}
}

// Start begins the purge job
func (j *TokenPurgeJob) Start() {
	j.ticker = time.NewTicker(j.interval)
	j.log.Info("token purge job started", slog.Duration("interval", j.interval))

	go func() {
		// Run immediately on start
		j.purge()

		for {
			select {
			case <-j.ticker.C:
				j.purge()
			case <-j.done:
				j.log.Info("token purge job stopped")
				return
			}
		}
	}()
}

// Stop stops the purge job. It is safe to call more than once.
func (j *TokenPurgeJob) Stop() {
	j.stopOnce.Do(func() {
		if j.ticker != nil {
			j.ticker.Stop()
		}
		close(j.done)
	})
}

func (j *TokenPurgeJob) purge() {
	removed := j.store.Purge()
	metrics.RevokedTokensPurgedTotal.Add(float64(removed))
	if removed > 0 {
		j.log.Debug("expired token revocations purged", slog.Int("count", removed))
	}
}
