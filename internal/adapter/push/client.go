// Package push delivers status-change notifications to the mobile client via
// the Expo push gateway. Delivery is best effort; failures never block a
// status transition.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Message is one push notification addressed to a set of device tokens.
type Message struct {
	To    []string          `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// Client sends push notifications.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// HTTPClient posts messages to an Expo-compatible push endpoint.
type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates a push client targeting the given endpoint.
func NewHTTPClient(endpoint string, logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send delivers one message. Messages without recipients are dropped silently.
func (c *HTTPClient) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode push message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("push delivery failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return fmt.Errorf("push error: %s", resp.Status)
	}
	return nil
}
