package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avasilyev/bybit-listings/internal/model"
)

// Webhook delivers listing events as JSON POSTs to a single URL.
type Webhook struct {
	url        string
	httpClient *http.Client
}

// webhookPayload is the wire format posted to the webhook URL.
type webhookPayload struct {
	EventID    string `json:"event_id"`
	Symbol     string `json:"symbol"`
	BaseCoin   string `json:"base_coin,omitempty"`
	QuoteCoin  string `json:"quote_coin,omitempty"`
	Source     string `json:"source"`
	DetectedAt string `json:"detected_at"` // RFC 3339
}

// NewWebhook creates a webhook sink with a bounded per-delivery timeout.
func NewWebhook(url string, timeout time.Duration) *Webhook {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Webhook{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Notify posts the event. Non-2xx responses are returned as errors so the
// caller can log the failed delivery; deliveries are not retried.
func (w *Webhook) Notify(ctx context.Context, ev model.ListingEvent) error {
	payload := webhookPayload{
		EventID:    ev.ID.String(),
		Symbol:     ev.Symbol,
		BaseCoin:   ev.BaseCoin,
		QuoteCoin:  ev.QuoteCoin,
		Source:     ev.Source,
		DetectedAt: ev.DetectedAt.Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
