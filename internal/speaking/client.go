package speaking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/meetingbaas/meeting-mcp/internal/baas"
	"github.com/meetingbaas/meeting-mcp/internal/logging"
)

const maxResponseSize = 1 << 20

// BaseURL returns the speaking API root for a base domain. An empty domain
// falls back to baas.DefaultDomain.
func BaseURL(domain string) string {
	if domain == "" {
		domain = baas.DefaultDomain
	}
	return "https://speaking." + domain
}

// JoinRequest is the body of POST /bots. Optional fields are omitted when
// unset; a non-nil empty Personas is sent as [].
type JoinRequest struct {
	MeetingURL   string         `json:"meeting_url"`
	BotName      string         `json:"bot_name,omitempty"`
	Personas     []string       `json:"personas,omitzero"`
	BotImage     string         `json:"bot_image,omitempty"`
	EntryMessage string         `json:"entry_message,omitempty"`
	EnableTools  *bool          `json:"enable_tools,omitempty"`
	Extra        map[string]any `json:"extra,omitempty"`
}

// JoinResponse is returned by POST /bots
type JoinResponse struct {
	BotID string `json:"bot_id"`
}

// LeaveRequest is the body of DELETE /bots/{id}
type LeaveRequest struct {
	BotID string `json:"bot_id"`
}

// Client calls the speaking-bot API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the API root
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets the HTTP client used for requests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger for request diagnostics
func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a speaking API client
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    BaseURL(""),
		httpClient: baas.NewHTTPClient(),
		logger:     logging.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BotsURL is the endpoint that creates speaking bots
func (c *Client) BotsURL() string {
	return c.baseURL + "/bots"
}

// BotURL is the endpoint of one speaking bot
func (c *Client) BotURL(botID string) string {
	return c.baseURL + "/bots/" + url.PathEscape(botID)
}

// Join sends a speaking bot to a meeting
func (c *Client) Join(ctx context.Context, apiKey string, req JoinRequest) (*JoinResponse, error) {
	var resp JoinResponse
	if err := c.do(ctx, apiKey, http.MethodPost, c.BotsURL(), req, &resp); err != nil {
		return nil, err
	}
	if resp.BotID == "" {
		return nil, ErrNoBotID
	}
	return &resp, nil
}

// Leave removes a speaking bot from its meeting
func (c *Client) Leave(ctx context.Context, apiKey, botID string) error {
	return c.do(ctx, apiKey, http.MethodDelete, c.BotURL(botID), LeaveRequest{BotID: botID}, nil)
}

func (c *Client) do(ctx context.Context, apiKey, method, endpoint string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(baas.APIKeyHeader, apiKey)

	c.logger.Debug("speaking api request",
		"method", method,
		"url", endpoint,
		logging.KeyAPIKey, logging.MaskAPIKey(apiKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, Body: respBody}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
