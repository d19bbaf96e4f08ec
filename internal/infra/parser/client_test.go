package parser

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func serve(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "UTC", "en-US", 5*time.Second)
}

func TestParse_Success(t *testing.T) {
	var gotReq Request
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]any{
			"title":            "Team meeting",
			"start_datetime":   "2026-09-02T14:00:00Z",
			"end_datetime":     "2026-09-02T15:00:00Z",
			"confidence_score": 0.8,
		})
	})

	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	result, err := c.Parse(context.Background(), "Team meeting tomorrow at 2 PM", now)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Title != "Team meeting" || result.Confidence != 0.8 {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.OriginalText != "Team meeting tomorrow at 2 PM" {
		t.Errorf("original text must be backfilled, got %q", result.OriginalText)
	}
	if result.Timezone != "UTC" {
		t.Errorf("timezone must be backfilled, got %q", result.Timezone)
	}

	if gotReq.Text != "Team meeting tomorrow at 2 PM" || gotReq.Timezone != "UTC" {
		t.Errorf("unexpected wire request: %+v", gotReq)
	}
	if gotReq.Now != now.Format(time.RFC3339) {
		t.Errorf("now anchor missing from wire request: %+v", gotReq)
	}
}

func TestParse_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"bad request", http.StatusBadRequest, ErrValidationReject},
		{"unprocessable", http.StatusUnprocessableEntity, ErrValidationReject},
		{"server error", http.StatusInternalServerError, ErrServer},
		{"bad gateway", http.StatusBadGateway, ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := serve(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := c.Parse(context.Background(), "x", time.Now())
			if !errors.Is(err, tt.want) {
				t.Errorf("status %d: expected %v, got %v", tt.status, tt.want, err)
			}
		})
	}
}

func TestParse_RejectsOutOfRangeConfidence(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"title":            "x",
			"confidence_score": 1.7,
		})
	})

	_, err := c.Parse(context.Background(), "x", time.Now())
	if !errors.Is(err, ErrValidationReject) {
		t.Errorf("out-of-range confidence must be a validation failure, got %v", err)
	}
}

func TestParse_ContextCancellation(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server starts its background read and can
		// observe the client disconnect; otherwise r.Context() is never
		// cancelled and srv.Close deadlocks in t.Cleanup.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.Parse(ctx, "x", time.Now()); err == nil {
		t.Fatal("expected error after context expiry")
	}
}
