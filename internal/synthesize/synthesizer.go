// Package synthesize builds a plausible, low-confidence parse result from raw
// text when the upstream parser failed or produced a weak result. It never
// fails: every input yields a usable event skeleton.
package synthesize

import (
	"strings"
	"time"

	"github.com/jacolabs/eventflow/internal/core/domain"
)

// Confidence assigned to synthesized results. Always strictly below the
// proceed-confidently floor so downstream assessment stays conservative.
const (
	baseConfidence    = 0.35
	genericTitleScore = 0.25
	minConfidence     = 0.10
)

// DefaultHour is the start hour used when no time signal is found.
const DefaultHour = 9

// Synthesizer derives event skeletons from free text. The clock and timezone
// are injected so synthesis is deterministic under test.
type Synthesizer struct {
	Now      func() time.Time
	Location *time.Location
}

// New creates a Synthesizer for the given IANA timezone. Falls back to UTC if
// the zone cannot be loaded.
func New(timezone string) *Synthesizer {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return &Synthesizer{
		Now:      time.Now,
		Location: loc,
	}
}

// Synthesize builds a ParseResult from text, keeping any usable fields of the
// optional partial upstream result. First match wins per field: a populated
// partial field is never overwritten by a heuristic.
func (s *Synthesizer) Synthesize(text string, partial *domain.ParseResult) domain.ParseResult {
	now := s.Now().In(s.Location)

	result := domain.ParseResult{
		Timezone:     s.Location.String(),
		OriginalText: text,
	}
	if partial != nil {
		result.Title = partial.Title
		result.StartDateTime = partial.StartDateTime
		result.EndDateTime = partial.EndDateTime
		result.Location = partial.Location
		result.Description = partial.Description
		result.AllDay = partial.AllDay
	}

	confidence := baseConfidence

	if result.Title == "" {
		title := extractTitle(text)
		if title == genericTitle {
			confidence = genericTitleScore
		}
		result.Title = title
	}

	allDay := result.AllDay || hasAllDayCue(text)
	if result.StartDateTime == "" {
		start, explicit := extractStart(text, now)
		if allDay {
			start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, s.Location)
		} else if !explicit {
			confidence -= 0.05
		}
		result.StartDateTime = start.Format(time.RFC3339)
	}
	result.AllDay = allDay

	if result.EndDateTime == "" {
		start := result.Start()
		dur := extractDuration(text)
		if allDay {
			dur = 24 * time.Hour
		}
		result.EndDateTime = start.Add(dur).Format(time.RFC3339)
	}

	if confidence < minConfidence {
		confidence = minConfidence
	}
	result.Confidence = confidence
	return result
}

// ToCanonical stamps a synthesized result with its provenance before handing
// it back to the rest of the pipeline.
func (s *Synthesizer) ToCanonical(synthesized domain.ParseResult, text string) domain.ParseResult {
	synthesized.OriginalText = text
	synthesized.FallbackApplied = true
	if synthesized.ErrorRecoveryInfo == "" {
		synthesized.ErrorRecoveryInfo = "event synthesized locally from text heuristics"
	}
	return synthesized
}

// hasAllDayCue detects phrases that imply a full-day event.
func hasAllDayCue(text string) bool {
	lower := strings.ToLower(text)
	for _, cue := range []string{"all day", "all-day", "conference", "holiday", "offsite", "workshop day"} {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}
