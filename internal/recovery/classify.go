// Package recovery classifies failures, decides a recovery strategy, and
// drives bounded retry with backoff around the remote parser.
package recovery

import (
	"context"
	"errors"
	"net"
	"os"
	"strings"

	"github.com/jacolabs/eventflow/internal/core/domain"
	"github.com/jacolabs/eventflow/internal/infra/parser"
)

// Classify maps an error from the parser boundary onto the failure taxonomy.
func Classify(err error) domain.ErrorType {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, context.Canceled):
		return domain.ErrorCancelled
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, os.ErrDeadlineExceeded):
		return domain.ErrorTimeout
	case errors.Is(err, parser.ErrRateLimited):
		return domain.ErrorRateLimited
	case errors.Is(err, parser.ErrValidationReject):
		return domain.ErrorValidationReject
	case errors.Is(err, parser.ErrServer):
		return domain.ErrorServer
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return domain.ErrorTimeout
		}
		return domain.ErrorNetwork
	}

	// Transport errors wrapped by net/http lose their type; fall back to
	// string matching like any retry layer ends up doing.
	s := strings.ToLower(err.Error())
	switch {
	case strings.Contains(s, "timeout") || strings.Contains(s, "deadline exceeded"):
		return domain.ErrorTimeout
	case strings.Contains(s, "connection refused"),
		strings.Contains(s, "no such host"),
		strings.Contains(s, "network is unreachable"),
		strings.Contains(s, "connection reset"),
		strings.Contains(s, "broken pipe"):
		return domain.ErrorNetwork
	case strings.Contains(s, "429") || strings.Contains(s, "too many requests") ||
		strings.Contains(s, "rate limit"):
		return domain.ErrorRateLimited
	case strings.Contains(s, "http 5"):
		return domain.ErrorServer
	}

	return domain.ErrorUnexpected
}

// SelectStrategy applies the failure-to-strategy decision table in order.
func SelectStrategy(errCtx *domain.ErrorContext, maxRetries int) domain.RecoveryStrategy {
	switch {
	case errCtx.Type.Transient() && errCtx.RetryCount < maxRetries && errCtx.NetworkAvailable:
		return domain.StrategyRetryWithBackoff
	case !errCtx.NetworkAvailable:
		return domain.StrategyOfflineMode
	case errCtx.Type.Transient():
		// Retries exhausted but the network is up.
		return domain.StrategyFallbackCreation
	case errCtx.Type == domain.ErrorLowConfidence:
		return domain.StrategyUserConfirmation
	case errCtx.Type == domain.ErrorInsufficientData:
		return domain.StrategyManualInput
	case errCtx.Type == domain.ErrorCalendarLaunch:
		return domain.StrategyAlternativeLaunch
	case errCtx.Type == domain.ErrorValidationReject:
		return domain.StrategyFallbackCreation
	default:
		return domain.StrategyBlock
	}
}
