// Package parser is the HTTP client to the remote text-parsing service. The
// service itself is an external collaborator; this package only owns the
// wire format and the typed failure surface.
package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jacolabs/eventflow/internal/core/domain"
)

// Sentinel errors classified by the recovery layer.
var (
	ErrRateLimited      = errors.New("parser rate limited")
	ErrValidationReject = errors.New("parser rejected text")
	ErrServer           = errors.New("parser server error")
)

// Request is the wire request to the parsing service.
type Request struct {
	Text     string `json:"text"`
	Timezone string `json:"timezone"`
	Locale   string `json:"locale"`
	Now      string `json:"now"` // RFC 3339, anchors relative dates
}

// Client talks to the remote parsing service.
type Client struct {
	endpoint   string
	timezone   string
	locale     string
	httpClient *http.Client
}

// NewClient creates a parser client.
func NewClient(endpoint, timezone, locale string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		timezone: timezone,
		locale:   locale,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Parse sends text to the remote service and returns the structured result.
// Failures are typed: ErrRateLimited, ErrValidationReject, ErrServer, or a
// wrapped transport error.
func (c *Client) Parse(ctx context.Context, text string, now time.Time) (*domain.ParseResult, error) {
	reqBody := Request{
		Text:     text,
		Timezone: c.timezone,
		Locale:   c.locale,
		Now:      now.Format(time.RFC3339),
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("parse call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, fmt.Errorf("%w (retry after: %s)", ErrRateLimited, retryAfter)
	case resp.StatusCode == http.StatusUnprocessableEntity || resp.StatusCode == http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s", ErrValidationReject, string(body))
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: http %d: %s", ErrServer, resp.StatusCode, string(body))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected http %d: %s", resp.StatusCode, string(body))
	}

	var result domain.ParseResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationReject, err)
	}
	if result.OriginalText == "" {
		result.OriginalText = text
	}
	if result.Timezone == "" {
		result.Timezone = c.timezone
	}

	return &result, nil
}

// Endpoint returns the configured service URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}
