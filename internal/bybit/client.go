package bybit

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/avasilyev/bybit-listings/internal/auth"
)

// Client provides access to the Bybit v5 REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	creds      *auth.Credentials
	recvWindow int

	maxRetries   int
	retryBackoff time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new REST API client.
// Credentials are optional; the market endpoints are public.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:       slog.Default(),
		recvWindow:   5000,
		maxRetries:   3,
		retryBackoff: time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries sets the retry configuration.
func WithRetries(max int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = max
		c.retryBackoff = backoff
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCredentials attaches signing credentials. Requests are then sent
// with X-BAPI-* authentication headers.
func WithCredentials(creds *auth.Credentials, recvWindow int) ClientOption {
	return func(c *Client) {
		c.creds = creds
		if recvWindow > 0 {
			c.recvWindow = recvWindow
		}
	}
}
