package domain

// ErrorType is the failure taxonomy at the parse/launch boundaries.
type ErrorType string

const (
	ErrorNetwork          ErrorType = "network"
	ErrorTimeout          ErrorType = "timeout"
	ErrorRateLimited      ErrorType = "rate_limited"
	ErrorServer           ErrorType = "server"
	ErrorValidationReject ErrorType = "validation_rejected"
	ErrorLowConfidence    ErrorType = "low_confidence"
	ErrorInsufficientData ErrorType = "insufficient_data"
	ErrorCalendarLaunch   ErrorType = "calendar_launch"
	ErrorConfiguration    ErrorType = "configuration"
	ErrorCancelled        ErrorType = "cancelled"
	ErrorUnexpected       ErrorType = "unexpected"
)

// Transient reports whether the error type is worth retrying locally.
func (t ErrorType) Transient() bool {
	switch t {
	case ErrorNetwork, ErrorTimeout, ErrorRateLimited, ErrorServer:
		return true
	default:
		return false
	}
}

// ErrorContext describes one failure occurrence. Created fresh per failure;
// never persisted beyond the current attempt except when folded into a
// CachedRequest.
type ErrorContext struct {
	Type             ErrorType
	OriginalText     string
	APIResponse      string
	Cause            error
	RetryCount       int
	Confidence       float64
	HasConfidence    bool
	NetworkAvailable bool
}
