package baas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/meetingbaas/meeting-mcp/internal/logging"
)

const (
	// DefaultDomain is the base domain used when BAAS_URL is not set
	DefaultDomain = "meetingbaas.com"

	// PreProdEnvironment selects the pre-production API host
	PreProdEnvironment = "pre-prod-"

	// APIKeyHeader carries the account API key on every request
	APIKeyHeader = "x-meeting-baas-api-key"

	// DefaultTimeout bounds a single API round trip
	DefaultTimeout = 60 * time.Second

	// maxResponseSize caps how much of a response body is read
	maxResponseSize = 10 << 20
)

// APIBaseURL returns the API root for a base domain and environment.
// An empty domain falls back to DefaultDomain. Only PreProdEnvironment
// changes the host; any other environment value is ignored.
func APIBaseURL(domain, environment string) string {
	if domain == "" {
		domain = DefaultDomain
	}
	if environment == PreProdEnvironment {
		return "https://api." + environment + domain
	}
	return "https://api." + domain
}

// NewHTTPClient returns an HTTP client with OpenTelemetry instrumentation
// and the default timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout:   DefaultTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// Client is a Meeting BaaS API client bound to one API key
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the API root (e.g. for tests or self-hosted setups)
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

// NewClient creates a client for the given API key
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    APIBaseURL("", ""),
		httpClient: NewHTTPClient(),
		logger:     logging.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do performs a request and decodes a successful JSON response into out.
// out may be nil, a *json.RawMessage, or any decodable value.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(APIKeyHeader, c.apiKey)

	c.logger.Debug("meeting baas request",
		logging.Operation(op),
		"method", method,
		"path", path,
		logging.APIKey(c.apiKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%s: failed to read response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(op, resp.StatusCode, data)
		c.logger.Warn("meeting baas request rejected",
			logging.Operation(op),
			logging.StatusCode(resp.StatusCode),
			logging.Err(apiErr))
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], data...)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, op, method, path string, query url.Values, body any) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, op, method, path, query, body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func occurrencesQuery(allOccurrences bool) url.Values {
	v := url.Values{}
	v.Set("all_occurrences", strconv.FormatBool(allOccurrences))
	return v
}
