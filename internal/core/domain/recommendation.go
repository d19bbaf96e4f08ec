package domain

// Recommendation is the discrete action band derived from confidence and
// field completeness.
type Recommendation string

const (
	ProceedConfidently   Recommendation = "proceed_confidently"
	ProceedWithCaution   Recommendation = "proceed_with_caution"
	SuggestImprovements  Recommendation = "suggest_improvements"
	RecommendManualEntry Recommendation = "recommend_manual_entry"
	BlockCreation        Recommendation = "block_creation"
)

// Band cut points. These are the single source of truth for every component
// that maps a confidence score to an action.
const (
	BandProceed float64 = 0.70
	BandCaution float64 = 0.40
	BandImprove float64 = 0.30
	BandManual  float64 = 0.15
)

// RecommendFor maps an overall confidence and required-field completeness to
// a recommendation band. Bands are contiguous and exhaustive over [0,1].
func RecommendFor(confidence float64, hasTitle, hasStart bool) Recommendation {
	if !hasTitle && !hasStart {
		return BlockCreation
	}
	requiredPresent := hasTitle && hasStart

	switch {
	case confidence >= BandProceed && requiredPresent:
		return ProceedConfidently
	case confidence >= BandCaution && requiredPresent:
		return ProceedWithCaution
	case confidence >= BandImprove && requiredPresent:
		return SuggestImprovements
	case confidence >= BandManual:
		return RecommendManualEntry
	default:
		return BlockCreation
	}
}

// ShouldProceed reports whether the band allows creating the event without
// further user intervention.
func (r Recommendation) ShouldProceed() bool {
	return r == ProceedConfidently || r == ProceedWithCaution
}
