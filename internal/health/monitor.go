package health

import (
	"context"
	"sync"
	"time"

	"github.com/jacolabs/eventflow/internal/infra/cache"
	"github.com/jacolabs/eventflow/internal/infra/connectivity"
	"github.com/jacolabs/eventflow/internal/recovery"
)

// Monitor aggregates health status from the recovery layer.
type Monitor struct {
	stats      *recovery.Stats
	queue      cache.RequestCache
	probe      connectivity.Probe
	mu         sync.Mutex
	lastCheck  time.Time
	lastReport Report
}

// NewMonitor creates a health monitor.
func NewMonitor(stats *recovery.Stats, queue cache.RequestCache, probe connectivity.Probe) *Monitor {
	return &Monitor{
		stats: stats,
		queue: queue,
		probe: probe,
	}
}

// CheckHealth builds a health report. Checks are rate limited so probing
// never amplifies request load.
func (m *Monitor) CheckHealth(ctx context.Context) Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	if time.Since(m.lastCheck) < 10*time.Second && !m.lastCheck.IsZero() {
		return m.lastReport
	}

	requests, successes, errCounts, stratCounts := m.stats.Snapshot()

	report := Report{
		Status:           StatusHealthy,
		NetworkAvailable: m.probe.Available(ctx),
		RequestsTotal:    requests,
		SuccessesTotal:   successes,
		ErrorCounts:      make(map[string]int, len(errCounts)),
		StrategyCounts:   make(map[string]int, len(stratCounts)),
	}
	for k, v := range errCounts {
		report.ErrorCounts[string(k)] = v
	}
	for k, v := range stratCounts {
		report.StrategyCounts[string(k)] = v
	}

	if n, err := m.queue.Count(ctx); err == nil {
		report.QueuedRequests = n
	}

	if !report.NetworkAvailable || report.QueuedRequests > 25 {
		report.Status = StatusDegraded
	}
	if report.QueuedRequests >= 50 {
		report.Status = StatusCritical
	}

	m.lastCheck = time.Now()
	m.lastReport = report
	return report
}
