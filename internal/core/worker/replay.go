package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/jacolabs/eventflow/internal/core/domain"
	"github.com/jacolabs/eventflow/internal/infra/cache"
	"github.com/jacolabs/eventflow/internal/infra/connectivity"
	"github.com/jacolabs/eventflow/internal/metrics"
)

// Replayer is the orchestrator surface the worker needs.
type Replayer interface {
	Replay(ctx context.Context, req *domain.CachedRequest) (*domain.Outcome, error)
}

// ReplayWorker periodically drains the request cache once the network is
// back. Entries are replayed one at a time, each awaited before the next, to
// avoid bursting the remote service. Cancelling the worker loses nothing:
// queued entries stay in the cache for the next run.
type ReplayWorker struct {
	cache    cache.RequestCache
	replayer Replayer
	probe    connectivity.Probe
	interval time.Duration
	now      func() time.Time
	log      *slog.Logger
}

// NewReplayWorker creates a replay worker polling at the given interval.
func NewReplayWorker(
	requestCache cache.RequestCache,
	replayer Replayer,
	probe connectivity.Probe,
	interval time.Duration,
) *ReplayWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ReplayWorker{
		cache:    requestCache,
		replayer: replayer,
		probe:    probe,
		interval: interval,
		now:      time.Now,
		log:      slog.Default(),
	}
}

// Start runs the replay loop until the context is cancelled.
func (w *ReplayWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

// drain replays every due entry sequentially.
func (w *ReplayWorker) drain(ctx context.Context) {
	if !w.probe.Available(ctx) {
		return
	}

	due, err := w.cache.DueForRetry(ctx, w.now())
	if err != nil {
		w.log.Warn("failed to scan replay queue", "error", err)
		return
	}

	for _, req := range due {
		if ctx.Err() != nil {
			return
		}

		outcome, err := w.replayer.Replay(ctx, req)
		if err != nil {
			metrics.ReplaysTotal.WithLabelValues("failure").Inc()
			w.log.Debug("replay failed, re-queueing", "id", req.ID, "attempts", req.AttemptCount+1, "error", err)

			// Re-enqueue with an incremented attempt count, subject to the
			// same capacity and expiration rules as any entry.
			if rmErr := w.cache.Remove(ctx, req.ID); rmErr != nil {
				w.log.Warn("failed to remove replayed request", "id", req.ID, "error", rmErr)
				continue
			}
			req.AttemptCount++
			if qErr := w.cache.Enqueue(ctx, req); qErr != nil {
				w.log.Warn("failed to re-queue request", "id", req.ID, "error", qErr)
			}
			continue
		}

		metrics.ReplaysTotal.WithLabelValues("success").Inc()
		w.log.Info("replayed queued request", "id", req.ID, "strategy", outcome.Strategy)
		if err := w.cache.Remove(ctx, req.ID); err != nil {
			w.log.Warn("failed to remove replayed request", "id", req.ID, "error", err)
		}
	}

	if n, err := w.cache.Count(ctx); err == nil {
		metrics.CachedRequests.Set(float64(n))
	}
}
