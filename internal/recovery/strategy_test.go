package recovery

import (
	"testing"
	"time"

	"github.com/jacolabs/eventflow/internal/core/domain"
)

func TestBackoff_Delay(t *testing.T) {
	strategy := NewBackoff(1000, 30000, 3)

	// Attempt 0: 1000 * 2^0 = 1s
	if d := strategy.GetDelay(0); d != 1*time.Second {
		t.Errorf("expected 1s, got %v", d)
	}

	// Attempt 1: 1000 * 2^1 = 2s
	if d := strategy.GetDelay(1); d != 2*time.Second {
		t.Errorf("expected 2s, got %v", d)
	}

	// Attempt 2: 1000 * 2^2 = 4s
	if d := strategy.GetDelay(2); d != 4*time.Second {
		t.Errorf("expected 4s, got %v", d)
	}

	// Attempt 10: cap at MaxDelay (30s)
	if d := strategy.GetDelay(10); d != 30*time.Second {
		t.Errorf("expected 30s, got %v", d)
	}
}

func TestBackoff_Monotonic(t *testing.T) {
	strategy := NewBackoff(500, 8000, 10)

	prev := time.Duration(0)
	for attempt := 0; attempt < 10; attempt++ {
		d := strategy.GetDelay(attempt)
		if d < prev {
			t.Fatalf("delay decreased at attempt %d: %v < %v", attempt, d, prev)
		}
		prev = d
	}
}

func TestBackoff_ShouldRetry(t *testing.T) {
	strategy := NewBackoff(1000, 30000, 3)

	if !strategy.ShouldRetry(0) {
		t.Error("should retry attempt 0")
	}
	if !strategy.ShouldRetry(2) {
		t.Error("should retry attempt 2")
	}
	if strategy.ShouldRetry(3) {
		t.Error("should NOT retry attempt 3 (max reached)")
	}
}

func TestSelectStrategy_Table(t *testing.T) {
	tests := []struct {
		name string
		ctx  domain.ErrorContext
		want domain.RecoveryStrategy
	}{
		{
			name: "transient with retries left",
			ctx:  domain.ErrorContext{Type: domain.ErrorTimeout, RetryCount: 0, NetworkAvailable: true},
			want: domain.StrategyRetryWithBackoff,
		},
		{
			name: "network unavailable",
			ctx:  domain.ErrorContext{Type: domain.ErrorNetwork, RetryCount: 0, NetworkAvailable: false},
			want: domain.StrategyOfflineMode,
		},
		{
			name: "retries exhausted, network up",
			ctx:  domain.ErrorContext{Type: domain.ErrorServer, RetryCount: 3, NetworkAvailable: true},
			want: domain.StrategyFallbackCreation,
		},
		{
			name: "low confidence",
			ctx:  domain.ErrorContext{Type: domain.ErrorLowConfidence, NetworkAvailable: true},
			want: domain.StrategyUserConfirmation,
		},
		{
			name: "insufficient data",
			ctx:  domain.ErrorContext{Type: domain.ErrorInsufficientData, NetworkAvailable: true},
			want: domain.StrategyManualInput,
		},
		{
			name: "calendar launch failure",
			ctx:  domain.ErrorContext{Type: domain.ErrorCalendarLaunch, NetworkAvailable: true},
			want: domain.StrategyAlternativeLaunch,
		},
		{
			name: "validation rejected",
			ctx:  domain.ErrorContext{Type: domain.ErrorValidationReject, NetworkAvailable: true},
			want: domain.StrategyFallbackCreation,
		},
		{
			name: "unexpected",
			ctx:  domain.ErrorContext{Type: domain.ErrorUnexpected, NetworkAvailable: true},
			want: domain.StrategyBlock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectStrategy(&tt.ctx, 3)
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
