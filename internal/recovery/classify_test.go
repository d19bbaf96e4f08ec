package recovery

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jacolabs/eventflow/internal/core/domain"
	"github.com/jacolabs/eventflow/internal/infra/parser"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.ErrorType
	}{
		{"nil", nil, ""},
		{"cancelled", context.Canceled, domain.ErrorCancelled},
		{"deadline", context.DeadlineExceeded, domain.ErrorTimeout},
		{"rate limited", fmt.Errorf("call: %w", parser.ErrRateLimited), domain.ErrorRateLimited},
		{"validation", fmt.Errorf("call: %w", parser.ErrValidationReject), domain.ErrorValidationReject},
		{"server", fmt.Errorf("call: %w", parser.ErrServer), domain.ErrorServer},
		{"refused string", errors.New("dial tcp: connection refused"), domain.ErrorNetwork},
		{"no host string", errors.New("dial tcp: lookup api.example.com: no such host"), domain.ErrorNetwork},
		{"timeout string", errors.New("context deadline exceeded (Client.Timeout exceeded)"), domain.ErrorTimeout},
		{"429 string", errors.New("unexpected http 429: slow down"), domain.ErrorRateLimited},
		{"unknown", errors.New("something odd"), domain.ErrorUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %s, want %s", tt.err, got, tt.want)
			}
		})
	}
}

func TestErrorType_Transient(t *testing.T) {
	transient := []domain.ErrorType{
		domain.ErrorNetwork, domain.ErrorTimeout, domain.ErrorRateLimited, domain.ErrorServer,
	}
	for _, et := range transient {
		if !et.Transient() {
			t.Errorf("%s should be transient", et)
		}
	}

	terminal := []domain.ErrorType{
		domain.ErrorValidationReject, domain.ErrorLowConfidence, domain.ErrorInsufficientData,
		domain.ErrorCalendarLaunch, domain.ErrorConfiguration, domain.ErrorUnexpected,
	}
	for _, et := range terminal {
		if et.Transient() {
			t.Errorf("%s should NOT be transient", et)
		}
	}
}
