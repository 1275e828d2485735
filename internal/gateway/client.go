package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/kdsprimark-ship-it/shipdesk/internal/config"
	"github.com/kdsprimark-ship-it/shipdesk/internal/domain"
	"github.com/kdsprimark-ship-it/shipdesk/internal/logger"
	"github.com/kdsprimark-ship-it/shipdesk/internal/port"
)

const statusSuccess = "success"

// requestBody is the uniform envelope sent to the remote store.
type requestBody struct {
	Action  string `json:"action"`
	Payload any    `json:"payload,omitempty"`
}

// responseBody is the uniform envelope the remote store answers with.
type responseBody struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Client implements port.RemoteGateway against a single POST endpoint.
type Client struct {
	endpoint string
	client   *http.Client
	log      zerolog.Logger
}

// NewClient creates a gateway client from config.
func NewClient(cfg *config.RemoteConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: timeout},
		log:      logger.WithComponent("gateway"),
	}
}

// NewClientWithEndpoint creates a client pointing at a custom endpoint (for testing).
func NewClientWithEndpoint(endpoint string, timeout time.Duration) *Client {
	return NewClient(&config.RemoteConfig{Endpoint: endpoint, Timeout: timeout})
}

var _ port.RemoteGateway = (*Client)(nil)

// Request sends {action, payload} and returns the response data document.
// Every failure mode — transport, decode, non-success status — comes back as
// a *domain.RemoteError.
func (c *Client) Request(ctx context.Context, action string, payload any) (json.RawMessage, error) {
	bodyBytes, err := json.Marshal(requestBody{Action: action, Payload: payload})
	if err != nil {
		return nil, domain.NewRemoteError(action, fmt.Errorf("marshaling request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, domain.NewRemoteError(action, fmt.Errorf("creating request: %w", err))
	}
	// The Apps Script endpoint rejects preflighted content types.
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domain.NewRemoteError(action, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewRemoteError(action, fmt.Errorf("reading response: %w", err))
	}

	var body responseBody
	if err := json.Unmarshal(respBytes, &body); err != nil {
		return nil, domain.NewRemoteError(action, fmt.Errorf("malformed response: %w", err))
	}

	if body.Status != statusSuccess {
		msg := body.Message
		if msg == "" {
			msg = fmt.Sprintf("action %q failed", action)
		}
		return nil, domain.NewRemoteError(action, fmt.Errorf("%s", msg))
	}

	c.log.Debug().
		Str("action", action).
		Dur("latency", time.Since(start)).
		Msg("remote request ok")

	return body.Data, nil
}
