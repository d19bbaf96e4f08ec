// Package launch realizes a trusted parse result as a calendar event by
// walking an ordered sequence of invocation strategies until one succeeds.
package launch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jacolabs/eventflow/internal/core/config"
	"github.com/jacolabs/eventflow/internal/core/domain"
	"github.com/jacolabs/eventflow/internal/infra/calendar"
	"github.com/jacolabs/eventflow/internal/metrics"
)

// Dispatcher attempts launch strategies in order. Attempts are sequential,
// never concurrent: two calendar integrations at once could double-launch an
// external app.
type Dispatcher struct {
	cfg       config.LaunchConfig
	inserter  calendar.Inserter
	apps      calendar.AppLauncher
	files     calendar.FileOpener
	urls      calendar.URLOpener
	clipboard calendar.Clipboard
	catalog   []string
	log       *slog.Logger
}

// NewDispatcher wires a dispatcher from its invocation mechanisms.
func NewDispatcher(
	cfg config.LaunchConfig,
	inserter calendar.Inserter,
	apps calendar.AppLauncher,
	files calendar.FileOpener,
	urls calendar.URLOpener,
	clipboard calendar.Clipboard,
) *Dispatcher {
	return &Dispatcher{
		cfg:       cfg,
		inserter:  inserter,
		apps:      apps,
		files:     files,
		urls:      urls,
		clipboard: clipboard,
		catalog:   knownApps,
		log:       slog.Default(),
	}
}

// NewDefaultDispatcher builds a dispatcher driving real desktop commands.
func NewDefaultDispatcher(cfg config.LaunchConfig) *Dispatcher {
	inv := calendar.NewExecInvoker()
	return NewDispatcher(cfg, inv, inv, inv, inv, inv)
}

// SetCatalog overrides the known-app catalog, for tests.
func (d *Dispatcher) SetCatalog(apps []string) {
	d.catalog = apps
}

// Launch attempts the given strategies in order (default order if none are
// given). Each strategy is attempted exactly once; the first success
// terminates the sequence, with the untried strategies reported as
// alternatives for a user-facing retry.
func (d *Dispatcher) Launch(ctx context.Context, result *domain.ParseResult, strategies ...domain.LaunchStrategy) domain.LaunchResult {
	if len(strategies) == 0 {
		strategies = domain.DefaultStrategyOrder()
	}

	ev := toEventRequest(result)
	var failures []string

	for i, strategy := range strategies {
		if !d.enabled(strategy) {
			continue
		}

		appUsed, err := d.attempt(ctx, strategy, ev)
		if err != nil {
			// A strategy failure never escapes its boundary; record and
			// advance to the next distinct strategy.
			failures = append(failures, fmt.Sprintf("%s: %v", strategy, err))
			metrics.LaunchAttemptsTotal.WithLabelValues(string(strategy), "failure").Inc()
			d.log.Debug("launch strategy failed", "strategy", strategy, "error", err)
			continue
		}

		metrics.LaunchAttemptsTotal.WithLabelValues(string(strategy), "success").Inc()
		return domain.LaunchResult{
			Success:               true,
			Strategy:              strategy,
			AppUsed:               appUsed,
			AlternativesAvailable: d.remaining(strategies[i+1:]),
		}
	}

	return domain.LaunchResult{
		Success:      false,
		ErrorMessage: strings.Join(failures, "; "),
	}
}

// enabled applies the configuration gates per strategy.
func (d *Dispatcher) enabled(s domain.LaunchStrategy) bool {
	switch s {
	case domain.StrategyNativeDefault:
		return d.cfg.EnableNativeDefault
	case domain.StrategySpecificApp:
		return d.cfg.EnableSpecificApps
	case domain.StrategyGenericHandler:
		return d.cfg.EnableGenericHandler
	case domain.StrategyWebCalendar:
		return d.cfg.EnableWebFallback
	case domain.StrategyClipboardCopy:
		return d.cfg.EnableClipboardFallback
	default:
		return false
	}
}

func (d *Dispatcher) remaining(rest []domain.LaunchStrategy) []domain.LaunchStrategy {
	var out []domain.LaunchStrategy
	for _, s := range rest {
		if d.enabled(s) {
			out = append(out, s)
		}
	}
	return out
}

// attempt runs one strategy. Returns the application or provider used on
// success.
func (d *Dispatcher) attempt(ctx context.Context, strategy domain.LaunchStrategy, ev calendar.EventRequest) (string, error) {
	switch strategy {
	case domain.StrategyNativeDefault:
		return "", d.inserter.Insert(ctx, ev)

	case domain.StrategySpecificApp:
		return d.attemptKnownApps(ctx, ev)

	case domain.StrategyGenericHandler:
		path, err := calendar.WriteTempICS(ev)
		if err != nil {
			return "", err
		}
		return "", d.files.OpenFile(ctx, path)

	case domain.StrategyWebCalendar:
		return d.attemptWebProviders(ctx, ev)

	case domain.StrategyClipboardCopy:
		// Terminal strategy: formats a summary and reports success
		// regardless of what the user does with it afterwards.
		if err := d.clipboard.Copy(ctx, FormatSummary(ev)); err != nil {
			return "", err
		}
		return "clipboard", nil

	default:
		return "", fmt.Errorf("unknown strategy %q", strategy)
	}
}

// attemptKnownApps walks the priority-ordered catalog, skipping absent apps,
// until one accepts the event.
func (d *Dispatcher) attemptKnownApps(ctx context.Context, ev calendar.EventRequest) (string, error) {
	var lastErr error
	tried := 0
	for _, id := range d.catalog {
		if !d.apps.HasApp(id) {
			continue
		}
		tried++
		if err := d.apps.Launch(ctx, id, ev); err != nil {
			lastErr = err
			continue
		}
		return id, nil
	}
	if tried == 0 {
		return "", fmt.Errorf("no known calendar app installed")
	}
	return "", fmt.Errorf("all %d installed calendar apps declined: %w", tried, lastErr)
}

// attemptWebProviders tries the provider URLs in priority order.
func (d *Dispatcher) attemptWebProviders(ctx context.Context, ev calendar.EventRequest) (string, error) {
	var lastErr error
	for _, p := range webProviders {
		if err := d.urls.OpenURL(ctx, p.build(ev)); err != nil {
			lastErr = err
			continue
		}
		return p.name, nil
	}
	return "", fmt.Errorf("no web calendar provider reachable: %w", lastErr)
}

// FormatSummary renders a human-readable event summary for the clipboard.
func FormatSummary(ev calendar.EventRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Event: %s\n", ev.Title)
	if ev.AllDay {
		fmt.Fprintf(&b, "Date: %s (all day)\n", ev.Start.Format("Mon, 2 Jan 2006"))
	} else {
		fmt.Fprintf(&b, "Start: %s\n", ev.Start.Format("Mon, 2 Jan 2006 15:04"))
		if !ev.End.IsZero() {
			fmt.Fprintf(&b, "End: %s\n", ev.End.Format("Mon, 2 Jan 2006 15:04"))
		}
	}
	if ev.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", ev.Location)
	}
	if ev.Description != "" {
		fmt.Fprintf(&b, "Notes: %s\n", ev.Description)
	}
	return b.String()
}

func toEventRequest(r *domain.ParseResult) calendar.EventRequest {
	return calendar.EventRequest{
		Title:       r.Title,
		Start:       r.Start(),
		End:         r.End(),
		Location:    r.Location,
		Description: r.Description,
		AllDay:      r.AllDay,
	}
}
