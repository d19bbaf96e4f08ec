package health

// Status summarizes overall service condition.
type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusDegraded Status = "degraded"
	StatusCritical Status = "critical"
)

// Report is the aggregated health snapshot served over HTTP.
type Report struct {
	Status           Status         `json:"status"`
	NetworkAvailable bool           `json:"network_available"`
	QueuedRequests   int            `json:"queued_requests"`
	RequestsTotal    int            `json:"requests_total"`
	SuccessesTotal   int            `json:"successes_total"`
	ErrorCounts      map[string]int `json:"error_counts,omitempty"`
	StrategyCounts   map[string]int `json:"strategy_counts,omitempty"`
}
