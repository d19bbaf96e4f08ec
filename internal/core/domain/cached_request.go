package domain

import "time"

// CachedRequest is a parse request waiting for replay after a failure.
type CachedRequest struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	Timezone     string    `json:"timezone"`
	Locale       string    `json:"locale"`
	SubmittedAt  time.Time `json:"submitted_at"`
	AttemptCount int       `json:"attempt_count"`
}

// Expired reports whether the request is older than maxAge at time now.
func (r *CachedRequest) Expired(now time.Time, maxAge time.Duration) bool {
	return now.Sub(r.SubmittedAt) > maxAge
}
