// Package assess scores a parse result field-by-field and maps the aggregate
// onto a discrete recommendation band.
package assess

import (
	"fmt"
	"sort"

	"github.com/jacolabs/eventflow/internal/core/domain"
)

// Field names used throughout the assessment.
const (
	FieldTitle       = "title"
	FieldStart       = "start_datetime"
	FieldEnd         = "end_datetime"
	FieldLocation    = "location"
	FieldDescription = "description"
)

// Penalties applied to the upstream confidence when required fields are
// missing. The result is clamped to [0,1].
const (
	missingTitlePenalty = 0.25
	missingStartPenalty = 0.30
	inconsistentPenalty = 0.20
)

// Assessor evaluates parse results. It is stateless; Assess is a pure,
// deterministic function of its inputs.
type Assessor struct{}

// New creates an Assessor.
func New() *Assessor {
	return &Assessor{}
}

// Assess scores the result and produces the full verdict.
func (a *Assessor) Assess(result *domain.ParseResult, originalText string) domain.ConfidenceAssessment {
	fields := a.fieldConfidences(result)

	overall := result.Confidence
	if !result.HasTitle() {
		overall -= missingTitlePenalty
	}
	if !result.HasStart() {
		overall -= missingStartPenalty
	}
	if !result.TimesConsistent() {
		overall -= inconsistentPenalty
	}
	overall = clamp01(overall)

	// The upstream score is the ceiling: completeness never raises it.
	if overall > result.Confidence {
		overall = result.Confidence
	}

	rec := domain.RecommendFor(overall, result.HasTitle(), result.HasStart())

	var missing, low []string
	for _, f := range fields {
		if f.Required && f.Value == "" {
			missing = append(missing, f.Field)
		}
		if f.Value != "" && f.Confidence < domain.BandCaution {
			low = append(low, f.Field)
		}
	}

	assessment := domain.ConfidenceAssessment{
		Overall:               overall,
		Recommendation:        rec,
		Fields:                fields,
		MissingCriticalFields: missing,
		LowConfidenceFields:   low,
		Suggestions:           a.suggestions(result, originalText),
		DataQuality:           dataQuality(fields),
		ShouldProceed:         rec.ShouldProceed(),
	}
	assessment.WarningMessage = warningFor(rec, missing)
	return assessment
}

func (a *Assessor) fieldConfidences(result *domain.ParseResult) []domain.FieldConfidence {
	source := domain.SourceUpstream
	if result.FallbackApplied {
		source = domain.SourceSynthesized
	}

	mk := func(name, value string, required bool) domain.FieldConfidence {
		fc := domain.FieldConfidence{
			Field:    name,
			Value:    value,
			Source:   source,
			Required: required,
		}
		if value == "" {
			// Absent fields contribute nothing.
			fc.Confidence = 0
			fc.Quality = 0
			if required {
				fc.Issues = append(fc.Issues, "missing")
			}
			return fc
		}
		fc.Confidence = result.Confidence
		fc.Quality = result.Confidence
		return fc
	}

	fields := []domain.FieldConfidence{
		mk(FieldTitle, result.Title, true),
		mk(FieldStart, result.StartDateTime, true),
		mk(FieldEnd, result.EndDateTime, false),
		mk(FieldLocation, result.Location, false),
		mk(FieldDescription, result.Description, false),
	}

	if !result.TimesConsistent() {
		for i := range fields {
			if fields[i].Field == FieldEnd {
				fields[i].Issues = append(fields[i].Issues, "end_before_start")
				fields[i].Quality = 0
			}
		}
	}
	return fields
}

func dataQuality(fields []domain.FieldConfidence) float64 {
	var sum, weight float64
	for _, f := range fields {
		w := 1.0
		if f.Required {
			w = 2.0
		}
		sum += f.Quality * w
		weight += w
	}
	if weight == 0 {
		return 0
	}
	return sum / weight
}

func warningFor(rec domain.Recommendation, missing []string) string {
	switch rec {
	case domain.ProceedWithCaution:
		return "Some details were uncertain; review the event before saving."
	case domain.SuggestImprovements:
		return "The text was hard to interpret; consider rephrasing or filling in details."
	case domain.RecommendManualEntry:
		return "Too little was understood reliably; entering the event manually is safer."
	case domain.BlockCreation:
		if len(missing) > 0 {
			return fmt.Sprintf("Cannot create an event: missing %v.", missing)
		}
		return "Cannot create an event from this text."
	default:
		return ""
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// sortSuggestions orders by priority then type for a stable surface.
func sortSuggestions(s []domain.Suggestion) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Priority != s[j].Priority {
			return s[i].Priority < s[j].Priority
		}
		return s[i].Type < s[j].Type
	})
}
