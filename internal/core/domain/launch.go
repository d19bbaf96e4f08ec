package domain

// LaunchStrategy is one mechanism for invoking the external calendar
// application. The zero-based order of the constants is the default attempt
// order.
type LaunchStrategy string

const (
	StrategyNativeDefault  LaunchStrategy = "native_default"
	StrategySpecificApp    LaunchStrategy = "specific_app"
	StrategyGenericHandler LaunchStrategy = "generic_handler"
	StrategyWebCalendar    LaunchStrategy = "web_calendar"
	StrategyClipboardCopy  LaunchStrategy = "clipboard_copy"
)

// DefaultStrategyOrder returns the fixed priority order of launch strategies.
func DefaultStrategyOrder() []LaunchStrategy {
	return []LaunchStrategy{
		StrategyNativeDefault,
		StrategySpecificApp,
		StrategyGenericHandler,
		StrategyWebCalendar,
		StrategyClipboardCopy,
	}
}

// LaunchResult is the outcome of one Launch call.
type LaunchResult struct {
	Success               bool             `json:"success"`
	Strategy              LaunchStrategy   `json:"strategy,omitempty"`
	ErrorMessage          string           `json:"error_message,omitempty"`
	AppUsed               string           `json:"app_used,omitempty"`
	AlternativesAvailable []LaunchStrategy `json:"alternatives_available,omitempty"`
}
