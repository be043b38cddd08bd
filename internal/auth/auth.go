// Package auth provides Bybit v5 API authentication using HMAC-SHA256 signatures.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"
)

// Credentials holds the API key pair for signing requests.
type Credentials struct {
	APIKey    string // API key from the Bybit dashboard
	APISecret string // API secret paired with the key
}

// NewCredentials builds credentials, requiring both halves of the key pair.
func NewCredentials(apiKey, apiSecret string) (*Credentials, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}
	if apiSecret == "" {
		return nil, errors.New("API secret is required")
	}
	return &Credentials{APIKey: apiKey, APISecret: apiSecret}, nil
}

// SignRequest generates authentication headers for a Bybit v5 API request.
// For GET requests, payload is the raw query string; for POST, the JSON body.
func (c *Credentials) SignRequest(recvWindow int, payload string) map[string]string {
	timestampMs := time.Now().UnixMilli()
	return c.signAt(timestampMs, recvWindow, payload)
}

// signAt produces headers for a fixed timestamp.
// Message format: timestamp_ms + api_key + recv_window + payload
func (c *Credentials) signAt(timestampMs int64, recvWindow int, payload string) map[string]string {
	ts := strconv.FormatInt(timestampMs, 10)
	window := strconv.Itoa(recvWindow)

	mac := hmac.New(sha256.New, []byte(c.APISecret))
	mac.Write([]byte(ts + c.APIKey + window + payload))
	signature := hex.EncodeToString(mac.Sum(nil))

	return map[string]string{
		"X-BAPI-API-KEY":     c.APIKey,
		"X-BAPI-TIMESTAMP":   ts,
		"X-BAPI-RECV-WINDOW": window,
		"X-BAPI-SIGN":        signature,
	}
}
