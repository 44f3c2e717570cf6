package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// WorkspaceEvicter drops workspaces idle for longer than ttl.
type WorkspaceEvicter interface {
	EvictIdle(ttl time.Duration) int
}

// Pruner drops expired bookkeeping entries.
type Pruner interface {
	Prune() int
}

// ReaperWorker periodically evicts idle workspaces and prunes the failed
// login counters.
type ReaperWorker struct {
	workspaces WorkspaceEvicter
	limiter    Pruner
	idleTTL    time.Duration
	interval   time.Duration
}

// NewReaperWorker constructs a ReaperWorker. limiter may be nil.
func NewReaperWorker(workspaces WorkspaceEvicter, limiter Pruner, idleTTL, interval time.Duration) *ReaperWorker {
	return &ReaperWorker{
		workspaces: workspaces,
		limiter:    limiter,
		idleTTL:    idleTTL,
		interval:   interval,
	}
}

// Start begins the periodic reap loop and listens for context cancellation.
func (w *ReaperWorker) Start(ctx context.Context) {
	if w.interval <= 0 || w.idleTTL <= 0 {
		log.Info().Msg("Reaper worker disabled")
		return
	}
	log.Info().Dur("interval", w.interval).Dur("idle_ttl", w.idleTTL).Msg("Starting reaper worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run()
		case <-ctx.Done():
			log.Info().Msg("Reaper worker stopped")
			return
		}
	}
}

func (w *ReaperWorker) run() {
	evicted := w.workspaces.EvictIdle(w.idleTTL)
	pruned := 0
	if w.limiter != nil {
		pruned = w.limiter.Prune()
	}
	if evicted > 0 || pruned > 0 {
		log.Info().Int("workspaces", evicted).Int("login_counters", pruned).Msg("Reaped idle state")
	}
}
