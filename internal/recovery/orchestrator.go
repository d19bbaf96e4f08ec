package recovery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jacolabs/eventflow/internal/assess"
	"github.com/jacolabs/eventflow/internal/core/config"
	"github.com/jacolabs/eventflow/internal/core/domain"
	"github.com/jacolabs/eventflow/internal/infra/cache"
	"github.com/jacolabs/eventflow/internal/infra/connectivity"
	"github.com/jacolabs/eventflow/internal/metrics"
	"github.com/jacolabs/eventflow/internal/synthesize"
)

// Parser is the remote parsing boundary.
type Parser interface {
	Parse(ctx context.Context, text string, now time.Time) (*domain.ParseResult, error)
}

// Orchestrator drives the full lifecycle of one parse request: remote call,
// failure classification, bounded retry with backoff, offline queuing,
// confidence assessment, and fallback synthesis. It is reentrant across
// concurrent Process calls; the request cache and statistics counter are the
// only shared state.
type Orchestrator struct {
	parser   Parser
	cache    cache.RequestCache
	synth    *synthesize.Synthesizer
	assessor *assess.Assessor
	probe    connectivity.Probe
	backoff  *ExponentialBackoff
	cfg      config.RecoveryConfig
	timezone string
	locale   string
	stats    *Stats
	now      func() time.Time
	log      *slog.Logger
}

// NewOrchestrator wires an orchestrator from its collaborators.
func NewOrchestrator(
	p Parser,
	requestCache cache.RequestCache,
	synth *synthesize.Synthesizer,
	assessor *assess.Assessor,
	probe connectivity.Probe,
	cfg config.RecoveryConfig,
	timezone, locale string,
) *Orchestrator {
	return &Orchestrator{
		parser:   p,
		cache:    requestCache,
		synth:    synth,
		assessor: assessor,
		probe:    probe,
		backoff:  NewBackoff(cfg.BaseRetryDelayMs, cfg.MaxRetryDelayMs, cfg.MaxRetryAttempts),
		cfg:      cfg,
		timezone: timezone,
		locale:   locale,
		stats:    NewStats(),
		now:      time.Now,
		log:      slog.Default(),
	}
}

// SetClock overrides the clock, for tests.
func (o *Orchestrator) SetClock(now func() time.Time) {
	o.now = now
	o.synth.Now = now
}

// Stats exposes the shared statistics counter.
func (o *Orchestrator) Stats() *Stats {
	return o.stats
}

// Process turns free text into a ParseResult wrapped in the uniform Outcome
// envelope. It never returns a raw transient error: every terminal state is
// a well-formed Outcome.
func (o *Orchestrator) Process(ctx context.Context, text string) *domain.Outcome {
	if !o.probe.Available(ctx) {
		return o.finish(o.goOffline(ctx, text, 0))
	}

	var lastErr error
	attempt := 0
	for {
		result, err := o.callParser(ctx, text)
		if err == nil {
			return o.finish(o.handleParsed(result, text, attempt))
		}
		lastErr = err

		errType := Classify(err)
		o.stats.RecordError(errType)
		metrics.ParseErrorsTotal.WithLabelValues(string(errType)).Inc()

		if errType == domain.ErrorCancelled {
			return o.finish(cancelledOutcome(attempt))
		}

		errCtx := &domain.ErrorContext{
			Type:             errType,
			OriginalText:     text,
			Cause:            err,
			RetryCount:       attempt,
			NetworkAvailable: o.probe.Available(ctx),
		}
		strategy := SelectStrategy(errCtx, o.backoff.MaxAttempts)
		o.log.Debug("parse attempt failed",
			"error_type", errType, "attempt", attempt, "strategy", strategy)

		switch strategy {
		case domain.StrategyRetryWithBackoff:
			if !o.wait(ctx, o.backoff.GetDelay(attempt)) {
				return o.finish(cancelledOutcome(attempt))
			}
			attempt++

		case domain.StrategyOfflineMode:
			return o.finish(o.goOffline(ctx, text, attempt))

		case domain.StrategyFallbackCreation:
			return o.finish(o.fallback(text, errCtx, lastErr))

		default:
			return o.finish(&domain.Outcome{
				Success:        false,
				Strategy:       domain.StrategyBlock,
				Message:        fmt.Sprintf("Could not process the text: %v.", lastErr),
				RequiredAction: domain.ActionManualEntry,
				Analytics: domain.Analytics{
					RetryCount: attempt,
					ErrorType:  errType,
				},
			})
		}
	}
}

// Replay retries one cached request with a single attempt, for the
// background replay worker. The worker owns removal and re-enqueueing.
func (o *Orchestrator) Replay(ctx context.Context, req *domain.CachedRequest) (*domain.Outcome, error) {
	result, err := o.callParser(ctx, req.Text)
	if err != nil {
		errType := Classify(err)
		o.stats.RecordError(errType)
		metrics.ParseErrorsTotal.WithLabelValues(string(errType)).Inc()
		return nil, err
	}
	return o.finish(o.handleParsed(result, req.Text, req.AttemptCount)), nil
}

// RecoverLaunchFailure maps a calendar-launch failure (post-parse) onto the
// alternative-launch strategy. The parse result itself stays trusted.
func (o *Orchestrator) RecoverLaunchFailure(result *domain.ParseResult, launchErr string) *domain.Outcome {
	o.stats.RecordError(domain.ErrorCalendarLaunch)
	return o.finish(&domain.Outcome{
		Success:        false,
		Strategy:       domain.StrategyAlternativeLaunch,
		Result:         result,
		Message:        fmt.Sprintf("The calendar app could not be opened (%s); try one of the remaining options.", launchErr),
		RequiredAction: domain.ActionRetryLater,
		Analytics: domain.Analytics{
			ErrorType: domain.ErrorCalendarLaunch,
		},
	})
}

func (o *Orchestrator) callParser(ctx context.Context, text string) (*domain.ParseResult, error) {
	start := o.now()
	result, err := o.parser.Parse(ctx, text, start)
	metrics.ParseLatency.Observe(time.Since(start).Seconds())
	return result, err
}

// handleParsed assesses an upstream result and branches on the band.
func (o *Orchestrator) handleParsed(result *domain.ParseResult, text string, retries int) *domain.Outcome {
	assessment := o.assessor.Assess(result, text)
	analytics := domain.Analytics{
		ConfidenceBand:  assessment.Recommendation,
		FieldsPopulated: populatedFields(result),
		RetryCount:      retries,
	}

	// The configured threshold is a trust floor on top of the bands: an
	// upstream result below it is never accepted as-is, even when its band
	// would proceed. It goes through local synthesis instead.
	rec := assessment.Recommendation
	if rec.ShouldProceed() && assessment.Overall < o.cfg.ConfidenceThreshold {
		rec = domain.SuggestImprovements
	}

	switch rec {
	case domain.ProceedConfidently:
		return &domain.Outcome{
			Success:    true,
			Strategy:   domain.StrategyNone,
			Result:     result,
			Assessment: &assessment,
			Analytics:  analytics,
		}

	case domain.ProceedWithCaution:
		return &domain.Outcome{
			Success:        true,
			Strategy:       domain.StrategyUserConfirmation,
			Result:         result,
			Assessment:     &assessment,
			Message:        assessment.WarningMessage,
			RequiredAction: domain.ActionConfirm,
			Analytics:      analytics,
		}

	case domain.SuggestImprovements:
		// Weak but present data: let the synthesizer fill the gaps and hand
		// back an improved, clearly-flagged result.
		improved := o.synth.ToCanonical(o.synth.Synthesize(text, result), text)
		improvedAssessment := o.assessor.Assess(&improved, text)
		analytics.ConfidenceBand = improvedAssessment.Recommendation
		o.stats.RecordError(domain.ErrorLowConfidence)
		return &domain.Outcome{
			Success:        true,
			Strategy:       domain.StrategyFallbackCreation,
			Result:         &improved,
			Assessment:     &improvedAssessment,
			Message:        "Some details were guessed from the text; review them before saving.",
			RequiredAction: domain.ActionReviewEdit,
			Analytics:      analytics,
		}

	case domain.RecommendManualEntry:
		o.stats.RecordError(domain.ErrorInsufficientData)
		return &domain.Outcome{
			Success:        false,
			Strategy:       domain.StrategyManualInput,
			Result:         result,
			Assessment:     &assessment,
			Message:        assessment.WarningMessage,
			RequiredAction: domain.ActionManualEntry,
			Analytics:      analytics,
		}

	default: // BlockCreation
		o.stats.RecordError(domain.ErrorInsufficientData)
		return &domain.Outcome{
			Success:        false,
			Strategy:       domain.StrategyBlock,
			Assessment:     &assessment,
			Message:        assessment.WarningMessage,
			RequiredAction: domain.ActionManualEntry,
			Analytics:      analytics,
		}
	}
}

// goOffline queues the request for later replay and returns a synthesized
// result immediately. No retry attempts are consumed.
func (o *Orchestrator) goOffline(ctx context.Context, text string, retries int) *domain.Outcome {
	queued := false
	if o.cfg.EnableOfflineMode {
		req := &domain.CachedRequest{
			ID:          uuid.New().String(),
			Text:        text,
			Timezone:    o.timezone,
			Locale:      o.locale,
			SubmittedAt: o.now(),
		}
		if err := o.cache.Enqueue(ctx, req); err != nil {
			o.log.Warn("failed to queue request for replay", "error", err)
		} else {
			queued = true
			if n, err := o.cache.Count(ctx); err == nil {
				metrics.CachedRequests.Set(float64(n))
			}
		}
	}

	synthesized := o.synth.ToCanonical(o.synth.Synthesize(text, nil), text)
	synthesized.ErrorRecoveryInfo = "network unavailable; queued for replay"
	assessment := o.assessor.Assess(&synthesized, text)

	msg := "No network connection; a draft event was built locally."
	if queued {
		msg += " The text will be re-parsed automatically once you are back online."
	}

	return &domain.Outcome{
		Success:        true,
		Strategy:       domain.StrategyOfflineMode,
		Result:         &synthesized,
		Assessment:     &assessment,
		Message:        msg,
		RequiredAction: domain.ActionReviewEdit,
		Analytics: domain.Analytics{
			ConfidenceBand:  assessment.Recommendation,
			FieldsPopulated: populatedFields(&synthesized),
			RetryCount:      retries,
			ErrorType:       domain.ErrorNetwork,
			Queued:          queued,
		},
	}
}

// fallback synthesizes an event after retries are exhausted.
func (o *Orchestrator) fallback(text string, errCtx *domain.ErrorContext, cause error) *domain.Outcome {
	if !o.cfg.EnableFallbackCreation {
		return &domain.Outcome{
			Success:        false,
			Strategy:       domain.StrategyManualInput,
			Message:        "The parsing service is unavailable; please enter the event manually.",
			RequiredAction: domain.ActionManualEntry,
			Analytics: domain.Analytics{
				RetryCount: errCtx.RetryCount,
				ErrorType:  errCtx.Type,
			},
		}
	}

	synthesized := o.synth.ToCanonical(o.synth.Synthesize(text, nil), text)
	synthesized.ErrorRecoveryInfo = fmt.Sprintf("remote parse failed after %d retries: %v", errCtx.RetryCount, cause)
	assessment := o.assessor.Assess(&synthesized, text)

	return &domain.Outcome{
		Success:        true,
		Strategy:       domain.StrategyFallbackCreation,
		Result:         &synthesized,
		Assessment:     &assessment,
		Message:        "The parsing service was unreachable; a draft event was built from the text. Review it before saving.",
		RequiredAction: domain.ActionReviewEdit,
		Analytics: domain.Analytics{
			ConfidenceBand:  assessment.Recommendation,
			FieldsPopulated: populatedFields(&synthesized),
			RetryCount:      errCtx.RetryCount,
			ErrorType:       errCtx.Type,
		},
	}
}

// wait blocks for the backoff delay, returning false if the context is
// cancelled first.
func (o *Orchestrator) wait(ctx context.Context, delay time.Duration) bool {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// finish records terminal bookkeeping shared by every exit path.
func (o *Orchestrator) finish(out *domain.Outcome) *domain.Outcome {
	o.stats.RecordRequest(out.Success)
	o.stats.RecordStrategy(out.Strategy)
	outcome := "failure"
	if out.Success {
		outcome = "success"
	}
	metrics.ParseRequestsTotal.WithLabelValues(outcome).Inc()
	metrics.RecoveriesTotal.WithLabelValues(string(out.Strategy)).Inc()
	return out
}

func cancelledOutcome(retries int) *domain.Outcome {
	return &domain.Outcome{
		Success:  false,
		Strategy: domain.StrategyNone,
		Message:  "The request was cancelled.",
		Analytics: domain.Analytics{
			RetryCount: retries,
			ErrorType:  domain.ErrorCancelled,
		},
	}
}

func populatedFields(r *domain.ParseResult) []string {
	var fields []string
	if r.Title != "" {
		fields = append(fields, "title")
	}
	if r.StartDateTime != "" {
		fields = append(fields, "start_datetime")
	}
	if r.EndDateTime != "" {
		fields = append(fields, "end_datetime")
	}
	if r.Location != "" {
		fields = append(fields, "location")
	}
	if r.Description != "" {
		fields = append(fields, "description")
	}
	return fields
}
