package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingEvicter struct {
	calls atomic.Int32
	ttl   atomic.Int64
}

func (c *countingEvicter) EvictIdle(ttl time.Duration) int {
	c.calls.Add(1)
	c.ttl.Store(int64(ttl))
	return 1
}

type countingPruner struct {
	calls atomic.Int32
}

func (c *countingPruner) Prune() int {
	c.calls.Add(1)
	return 0
}

func TestReaperWorkerRunsUntilCancelled(t *testing.T) {
	evicter := &countingEvicter{}
	pruner := &countingPruner{}
	w := NewReaperWorker(evicter, pruner, time.Hour, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return evicter.calls.Load() >= 2 && pruner.calls.Load() >= 2
	}, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
	assert.Equal(t, int64(time.Hour), evicter.ttl.Load())
}

func TestReaperWorkerDisabled(t *testing.T) {
	evicter := &countingEvicter{}
	done := make(chan struct{})
	go func() {
		NewReaperWorker(evicter, nil, time.Hour, 0).Start(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled worker blocked")
	}
	assert.Zero(t, evicter.calls.Load())
}
