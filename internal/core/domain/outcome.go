package domain

// RecoveryStrategy is the remediation chosen for a failed or weak request.
type RecoveryStrategy string

const (
	StrategyRetryWithBackoff  RecoveryStrategy = "retry_with_backoff"
	StrategyOfflineMode       RecoveryStrategy = "offline_mode"
	StrategyFallbackCreation  RecoveryStrategy = "fallback_event_creation"
	StrategyUserConfirmation  RecoveryStrategy = "user_confirmation_required"
	StrategyManualInput       RecoveryStrategy = "manual_input_suggestion"
	StrategyBlock             RecoveryStrategy = "block"
	StrategyAlternativeLaunch RecoveryStrategy = "alternative_calendar_launch"
	StrategyNone              RecoveryStrategy = "none"
)

// UserAction is what the caller should ask of the user, if anything.
type UserAction string

const (
	ActionNone        UserAction = ""
	ActionConfirm     UserAction = "confirm"
	ActionReviewEdit  UserAction = "review_and_edit"
	ActionManualEntry UserAction = "manual_entry"
	ActionRetryLater  UserAction = "retry_later"
)

// Analytics carries the structured measurement fields of one Outcome.
type Analytics struct {
	ConfidenceBand  Recommendation `json:"confidence_band,omitempty"`
	FieldsPopulated []string       `json:"fields_populated,omitempty"`
	RetryCount      int            `json:"retry_count"`
	ErrorType       ErrorType      `json:"error_type,omitempty"`
	Queued          bool           `json:"queued,omitempty"`
}

// Outcome is the uniform envelope every caller consumes: success, degraded
// success, or hard failure all arrive through this one type. Callers never
// need to distinguish "exception" from "well-formed failure".
type Outcome struct {
	Success        bool                  `json:"success"`
	Strategy       RecoveryStrategy      `json:"strategy"`
	Result         *ParseResult          `json:"result,omitempty"`
	Assessment     *ConfidenceAssessment `json:"assessment,omitempty"`
	Message        string                `json:"message,omitempty"`
	RequiredAction UserAction            `json:"required_action,omitempty"`
	Analytics      Analytics             `json:"analytics"`
}
