package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photogram-api/cache"
	"photogram-api/logger"
)

type countingPurger struct {
	calls atomic.Int32
}

func (p *countingPurger) Purge() int {
	p.calls.Add(1)
	return 0
}

func TestTokenPurgeJob_RunsImmediatelyAndOnSchedule(t *testing.T) {
	purger := &countingPurger{}
	job := NewTokenPurgeJob(purger, 10*time.Millisecond, logger.Discard())

	job.Start()
	assert.Eventually(t, func() bool { return purger.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	job.Stop()
	job.Stop()
}

func TestTokenPurgeJob_KeepsLiveRevocations(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryTokenStore()
	require.NoError(t, store.Revoke(ctx, "short", 20*time.Millisecond))
	require.NoError(t, store.Revoke(ctx, "long", time.Hour))

	job := NewTokenPurgeJob(store, 10*time.Millisecond, logger.Discard())
	job.Start()
	defer job.Stop()

	// once "short" has been purged only "long" is left
	assert.Eventually(t, func() bool { return store.Len() == 1 }, time.Second, 10*time.Millisecond)

	revoked, err := store.IsRevoked(ctx, "long")
	require.NoError(t, err)
	assert.True(t, revoked)
}
