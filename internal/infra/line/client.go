// internal/infra/line/client.go
package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mental_screening_service/internal/domain/notification"
)

// DefaultPushEndpoint is the LINE Messaging API push endpoint.
const DefaultPushEndpoint = "https://api.line.me/v2/bot/message/push"

const maxErrorBodyBytes = 4 << 10

// Client pushes text messages through the LINE Messaging API.
// It implements notification.Pusher.
type Client struct {
	httpClient  *http.Client
	accessToken string
	endpoint    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithEndpoint overrides the push endpoint, mainly for tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

func NewClient(accessToken string, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		accessToken: accessToken,
		endpoint:    DefaultPushEndpoint,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether the channel access token is present.
func (c *Client) Configured() error {
	if c.accessToken == "" {
		return &notification.MissingConfigError{What: "LINE_CHANNEL_ACCESS_TOKEN"}
	}
	return nil
}

type pushRequest struct {
	To       string        `json:"to"`
	Messages []textMessage `json:"messages"`
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Push sends text to the given user, group or room ID. A non-2xx response is
// returned as a *notification.DeliveryError carrying the status and body.
func (c *Client) Push(ctx context.Context, to, text string) error {
	payload := pushRequest{
		To:       to,
		Messages: []textMessage{{Type: "text", Text: text}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling LINE push request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building LINE push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending LINE push request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return &notification.DeliveryError{StatusCode: resp.StatusCode, Body: string(errBody)}
	}
	return nil
}
