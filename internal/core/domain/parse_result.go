package domain

import (
	"fmt"
	"time"
)

// ParseResult is the structured interpretation of a free-form text, either
// returned by the remote parsing service or synthesized locally. Values are
// never mutated in place; corrections produce a new ParseResult.
type ParseResult struct {
	Title         string  `json:"title,omitempty"`
	StartDateTime string  `json:"start_datetime,omitempty"` // ISO-8601 (RFC 3339)
	EndDateTime   string  `json:"end_datetime,omitempty"`
	Location      string  `json:"location,omitempty"`
	Description   string  `json:"description,omitempty"`
	Confidence    float64 `json:"confidence_score"`
	AllDay        bool    `json:"all_day"`
	Timezone      string  `json:"timezone,omitempty"` // IANA id

	// Provenance
	OriginalText      string `json:"original_text,omitempty"`
	FallbackApplied   bool   `json:"fallback_applied,omitempty"`
	ErrorRecoveryInfo string `json:"error_recovery_info,omitempty"`
}

// Validate rejects results that violate boundary invariants.
func (r *ParseResult) Validate() error {
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("confidence score %.3f outside [0,1]", r.Confidence)
	}
	if r.StartDateTime != "" {
		if _, err := time.Parse(time.RFC3339, r.StartDateTime); err != nil {
			return fmt.Errorf("invalid start datetime %q: %w", r.StartDateTime, err)
		}
	}
	if r.EndDateTime != "" {
		if _, err := time.Parse(time.RFC3339, r.EndDateTime); err != nil {
			return fmt.Errorf("invalid end datetime %q: %w", r.EndDateTime, err)
		}
	}
	return nil
}

// HasTitle reports whether a usable title is present.
func (r *ParseResult) HasTitle() bool {
	return r.Title != ""
}

// HasStart reports whether a usable start time is present.
func (r *ParseResult) HasStart() bool {
	return r.StartDateTime != ""
}

// Start parses the start datetime. Returns zero time if absent or malformed.
func (r *ParseResult) Start() time.Time {
	t, _ := time.Parse(time.RFC3339, r.StartDateTime)
	return t
}

// End parses the end datetime. Returns zero time if absent or malformed.
func (r *ParseResult) End() time.Time {
	t, _ := time.Parse(time.RFC3339, r.EndDateTime)
	return t
}

// TimesConsistent reports whether end >= start when both are present.
// A result with only one of the two is considered consistent.
func (r *ParseResult) TimesConsistent() bool {
	if !r.HasStart() || r.EndDateTime == "" {
		return true
	}
	return !r.End().Before(r.Start())
}

// WithConfidence returns a copy with the confidence score replaced.
func (r ParseResult) WithConfidence(score float64) ParseResult {
	r.Confidence = score
	return r
}
