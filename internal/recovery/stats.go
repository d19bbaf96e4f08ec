package recovery

import (
	"sync"

	"github.com/jacolabs/eventflow/internal/core/domain"
)

// Stats is the shared error-statistics counter. Safe under concurrent
// Process calls.
type Stats struct {
	mu         sync.Mutex
	errors     map[domain.ErrorType]int
	strategies map[domain.RecoveryStrategy]int
	requests   int
	successes  int
}

// NewStats creates an empty statistics counter.
func NewStats() *Stats {
	return &Stats{
		errors:     make(map[domain.ErrorType]int),
		strategies: make(map[domain.RecoveryStrategy]int),
	}
}

// RecordRequest counts one processed request and its outcome.
func (s *Stats) RecordRequest(success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
	if success {
		s.successes++
	}
}

// RecordError counts one classified failure.
func (s *Stats) RecordError(t domain.ErrorType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors[t]++
}

// RecordStrategy counts one chosen recovery strategy.
func (s *Stats) RecordStrategy(strategy domain.RecoveryStrategy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strategies[strategy]++
}

// Snapshot returns a copy of the counters for health reporting.
func (s *Stats) Snapshot() (requests, successes int, errors map[domain.ErrorType]int, strategies map[domain.RecoveryStrategy]int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	errors = make(map[domain.ErrorType]int, len(s.errors))
	for k, v := range s.errors {
		errors[k] = v
	}
	strategies = make(map[domain.RecoveryStrategy]int, len(s.strategies))
	for k, v := range s.strategies {
		strategies[k] = v
	}
	return s.requests, s.successes, errors, strategies
}
