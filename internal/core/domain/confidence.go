package domain

// FieldSource records where a field value came from.
type FieldSource string

const (
	SourceUpstream    FieldSource = "upstream"
	SourceSynthesized FieldSource = "synthesized"
	SourceDefault     FieldSource = "default"
)

// FieldConfidence scores one field of a ParseResult.
type FieldConfidence struct {
	Field      string      `json:"field"`
	Value      string      `json:"value,omitempty"`
	Confidence float64     `json:"confidence"`
	Quality    float64     `json:"quality"`
	Source     FieldSource `json:"source"`
	Required   bool        `json:"required"`
	Issues     []string    `json:"issues,omitempty"`
}

// SuggestionType categorizes an improvement suggestion.
type SuggestionType string

const (
	SuggestAddDate     SuggestionType = "add_date"
	SuggestAddTime     SuggestionType = "add_time"
	SuggestAddTitle    SuggestionType = "add_title"
	SuggestClarifyTime SuggestionType = "clarify_time"
	SuggestAddLocation SuggestionType = "add_location"
	SuggestRewriteText SuggestionType = "rewrite_text"
)

// Suggestion is one typed, prioritized improvement hint. Lower priority
// value means more important.
type Suggestion struct {
	Type     SuggestionType `json:"type"`
	Message  string         `json:"message"`
	Priority int            `json:"priority"`
}

// ConfidenceAssessment is the full verdict on one ParseResult.
type ConfidenceAssessment struct {
	Overall               float64           `json:"overall_confidence"`
	Recommendation        Recommendation    `json:"recommendation"`
	WarningMessage        string            `json:"warning_message,omitempty"`
	Fields                []FieldConfidence `json:"fields"`
	MissingCriticalFields []string          `json:"missing_critical_fields,omitempty"`
	LowConfidenceFields   []string          `json:"low_confidence_fields,omitempty"`
	Suggestions           []Suggestion      `json:"improvement_suggestions,omitempty"`
	DataQuality           float64           `json:"data_quality_score"`
	ShouldProceed         bool              `json:"should_proceed"`
}
