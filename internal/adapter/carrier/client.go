// Package carrier integrates with the carrier tracking system, the external
// source of truth for a return once items are in physical handling.
package carrier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/returnhelper/returnsvc/internal/domain/model"
)

// ErrNotTracked indicates the carrier has no record for the return yet.
var ErrNotTracked = errors.New("return not tracked by carrier")

// TooManyRequestsError represents a rate limiting signal from the carrier.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes operations to query the carrier tracking system.
type Client interface {
	Track(ctx context.Context, returnID string) (*model.TrackingEvent, error)
}

// HTTPClient implements Client via the carrier's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// response mirrors the carrier's JSON payload.
type response struct {
	ReturnID  string    `json:"returnId"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

// NewHTTPClient creates an HTTP carrier client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse carrier url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("carrier url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Track queries the carrier for the latest status report on a return. Unknown
// status values are rejected here so they never reach the state machine.
func (c *HTTPClient) Track(ctx context.Context, returnID string) (*model.TrackingEvent, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/tracking/", returnID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data response
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		status, err := model.ParseReturnStatus(data.Status)
		if err != nil {
			return nil, err
		}
		return &model.TrackingEvent{
			ReturnID:  data.ReturnID,
			Status:    status,
			Timestamp: data.Timestamp,
			Notes:     data.Notes,
		}, nil
	case http.StatusNoContent, http.StatusNotFound:
		return nil, ErrNotTracked
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("carrier request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("carrier error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
