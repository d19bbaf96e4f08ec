package recovery

import (
	"math"
	"time"
)

// ExponentialBackoff implements a standard capped backoff.
type ExponentialBackoff struct {
	InitialDelay time.Duration
	MaxDelay     time.Duration
	MaxAttempts  int
}

// NewBackoff builds a backoff strategy from millisecond tunables.
func NewBackoff(baseMs, maxMs, maxAttempts int) *ExponentialBackoff {
	if baseMs <= 0 {
		baseMs = 1000
	}
	if maxMs <= 0 {
		maxMs = 30000
	}
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &ExponentialBackoff{
		InitialDelay: time.Duration(baseMs) * time.Millisecond,
		MaxDelay:     time.Duration(maxMs) * time.Millisecond,
		MaxAttempts:  maxAttempts,
	}
}

// GetDelay calculates delay: InitialDelay * 2^attempt, capped at MaxDelay.
// The sequence is monotonically non-decreasing within one failure episode.
func (s *ExponentialBackoff) GetDelay(attempt int) time.Duration {
	delay := float64(s.InitialDelay) * math.Pow(2, float64(attempt))
	if delay > float64(s.MaxDelay) {
		return s.MaxDelay
	}
	return time.Duration(delay)
}

// ShouldRetry checks whether another attempt is allowed.
func (s *ExponentialBackoff) ShouldRetry(attempt int) bool {
	return attempt < s.MaxAttempts
}
