package bybit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"time"
)

// Bybit v5 retCode values the client cares about.
const (
	retCodeOK            = 0
	retCodeInvalidAPIKey = 10003
	retCodeBadSignature  = 10004
	retCodePermission    = 10005
	retCodeRateLimit     = 10006
	retCodeKeyExpired    = 10010
	retCodeServerBusy    = 10016
	retCodeKeyBanned     = 33004
)

// APIError represents an error from the Bybit API, either at the HTTP
// layer (StatusCode >= 400) or inside the envelope (RetCode != 0).
type APIError struct {
	StatusCode int
	RetCode    int
	RetMsg     string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.RetCode != 0 {
		return fmt.Sprintf("bybit api error retCode=%d: %s", e.RetCode, e.RetMsg)
	}
	return fmt.Sprintf("bybit api error %d: %s", e.StatusCode, e.RetMsg)
}

// IsRetryable returns true if the error should trigger a retry.
func (e *APIError) IsRetryable() bool {
	if e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return e.RetCode == retCodeRateLimit || e.RetCode == retCodeServerBusy
}

// IsAuthErr returns true if the error indicates a bad or revoked key pair.
// These are not recoverable by retrying.
func (e *APIError) IsAuthErr() bool {
	switch e.RetCode {
	case retCodeInvalidAPIKey, retCodeBadSignature, retCodePermission, retCodeKeyExpired, retCodeKeyBanned:
		return true
	}
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsAuthError reports whether err wraps a non-recoverable credential error.
func IsAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsAuthErr()
}

// restResponse is the common Bybit v5 response envelope.
type restResponse struct {
	RetCode int             `json:"retCode"`
	RetMsg  string          `json:"retMsg"`
	Result  json.RawMessage `json:"result"`
	Time    int64           `json:"time"`
}

// doRequest performs an HTTP request and unwraps the response envelope.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values) (json.RawMessage, error) {
	fullURL := c.baseURL + path
	encoded := query.Encode()
	if encoded != "" {
		fullURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.creds != nil {
		for k, v := range c.creds.SignRequest(c.recvWindow, encoded) {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			RetMsg:     http.StatusText(resp.StatusCode),
			Body:       body,
		}
	}

	var envelope restResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}

	if envelope.RetCode != retCodeOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			RetCode:    envelope.RetCode,
			RetMsg:     envelope.RetMsg,
			Body:       body,
		}
	}

	return envelope.Result, nil
}

// doWithRetry performs a request with exponential backoff retry.
func (c *Client) doWithRetry(ctx context.Context, method, path string, query url.Values) (json.RawMessage, error) {
	var lastErr error
	backoff := c.retryBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Add jitter: backoff * (0.5 to 1.5)
			jitter := backoff/2 + time.Duration(rand.Int64N(int64(backoff)))
			c.logger.Debug("retrying request",
				"attempt", attempt,
				"backoff", jitter,
				"path", path,
			)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(jitter):
			}

			backoff *= 2
		}

		result, err := c.doRequest(ctx, method, path, query)
		if err == nil {
			return result, nil
		}

		lastErr = err

		// Check if error is retryable
		apiErr, ok := err.(*APIError)
		if !ok || !apiErr.IsRetryable() {
			return nil, err
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// get performs a GET request with retries and decodes the result payload.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	raw, err := c.doWithRetry(ctx, http.MethodGet, path, query)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("unmarshal result: %w", err)
	}

	return nil
}
