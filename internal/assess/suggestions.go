package assess

import (
	"regexp"
	"strings"

	"github.com/jacolabs/eventflow/internal/core/domain"
)

// maxSuggestions caps how many hints are surfaced to the user.
const maxSuggestions = 3

var ambiguousTimeRe = regexp.MustCompile(`(?i)\b(morning|afternoon|evening|noon|lunch|tonight|later|sometime|soon)\b`)

// suggestions generates rule-based improvement hints, ordered by priority and
// capped at maxSuggestions.
func (a *Assessor) suggestions(result *domain.ParseResult, originalText string) []domain.Suggestion {
	var out []domain.Suggestion

	if !result.HasTitle() {
		out = append(out, domain.Suggestion{
			Type:     domain.SuggestAddTitle,
			Message:  "Say what the event is, e.g. \"Dentist appointment\".",
			Priority: 1,
		})
	}
	if !result.HasStart() {
		out = append(out, domain.Suggestion{
			Type:     domain.SuggestAddDate,
			Message:  "Add a date, e.g. \"on March 5\" or \"next Tuesday\".",
			Priority: 1,
		})
		out = append(out, domain.Suggestion{
			Type:     domain.SuggestAddTime,
			Message:  "Add a time, e.g. \"at 2 PM\".",
			Priority: 2,
		})
	} else if ambiguousTimeRe.MatchString(originalText) {
		out = append(out, domain.Suggestion{
			Type:     domain.SuggestClarifyTime,
			Message:  "Use a standard time format like \"2:30 PM\" instead of a vague phrase.",
			Priority: 2,
		})
	}
	if result.Location == "" && mentionsPlace(originalText) {
		out = append(out, domain.Suggestion{
			Type:     domain.SuggestAddLocation,
			Message:  "Name the location explicitly, e.g. \"at the main office\".",
			Priority: 3,
		})
	}
	if result.Confidence < domain.BandImprove && len(out) == 0 {
		out = append(out, domain.Suggestion{
			Type:     domain.SuggestRewriteText,
			Message:  "Rephrase with the essentials first: what, when, where.",
			Priority: 3,
		})
	}

	sortSuggestions(out)
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

func mentionsPlace(text string) bool {
	lower := strings.ToLower(text)
	for _, cue := range []string{" at the ", " in the ", " room ", " office", " building"} {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}
