package bybit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avasilyev/bybit-listings/internal/auth"
)

// TestNewClient tests client construction with various options.
func TestNewClient(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := NewClient("https://api.bybit.com")

		if c.baseURL != "https://api.bybit.com" {
			t.Errorf("baseURL = %q, want %q", c.baseURL, "https://api.bybit.com")
		}
		if c.httpClient.Timeout != 10*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 10*time.Second)
		}
		if c.maxRetries != 3 {
			t.Errorf("maxRetries = %d, want %d", c.maxRetries, 3)
		}
		if c.recvWindow != 5000 {
			t.Errorf("recvWindow = %d, want %d", c.recvWindow, 5000)
		}
		if c.logger == nil {
			t.Error("logger should not be nil")
		}
	})

	t.Run("with timeout option", func(t *testing.T) {
		c := NewClient("https://api.bybit.com", WithTimeout(5*time.Second))
		if c.httpClient.Timeout != 5*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 5*time.Second)
		}
	})

	t.Run("with retries option", func(t *testing.T) {
		c := NewClient("https://api.bybit.com", WithRetries(5, 2*time.Second))
		if c.maxRetries != 5 {
			t.Errorf("maxRetries = %d, want %d", c.maxRetries, 5)
		}
		if c.retryBackoff != 2*time.Second {
			t.Errorf("retryBackoff = %v, want %v", c.retryBackoff, 2*time.Second)
		}
	})

	t.Run("with logger option", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		c := NewClient("https://api.bybit.com", WithLogger(logger))
		if c.logger != logger {
			t.Error("logger not set correctly")
		}
	})

	t.Run("with credentials option", func(t *testing.T) {
		creds := &auth.Credentials{APIKey: "k", APISecret: "s"}
		c := NewClient("https://api.bybit.com", WithCredentials(creds, 10000))
		if c.creds != creds {
			t.Error("credentials not set")
		}
		if c.recvWindow != 10000 {
			t.Errorf("recvWindow = %d, want %d", c.recvWindow, 10000)
		}
	})
}

// envelope wraps a result payload in the standard Bybit response.
func envelope(t *testing.T, result any) []byte {
	t.Helper()
	raw, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	body, err := json.Marshal(map[string]any{
		"retCode": 0,
		"retMsg":  "OK",
		"result":  json.RawMessage(raw),
		"time":    time.Now().UnixMilli(),
	})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return body
}

func TestGetInstruments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v5/market/instruments-info" {
			t.Errorf("path = %q, want /v5/market/instruments-info", r.URL.Path)
		}
		if got := r.URL.Query().Get("category"); got != "spot" {
			t.Errorf("category = %q, want spot", got)
		}
		w.Write(envelope(t, InstrumentsResult{
			Category: "spot",
			List: []APIInstrument{
				{Symbol: "BTCUSDT", BaseCoin: "BTC", QuoteCoin: "USDT", Status: "Trading"},
				{Symbol: "ETHUSDT", BaseCoin: "ETH", QuoteCoin: "USDT", Status: "Trading"},
			},
		}))
	}))
	defer server.Close()

	c := NewClient(server.URL)

	result, err := c.GetInstruments(context.Background(), GetInstrumentsOptions{})
	if err != nil {
		t.Fatalf("GetInstruments failed: %v", err)
	}

	if len(result.List) != 2 {
		t.Fatalf("len(List) = %d, want 2", len(result.List))
	}
	if result.List[0].Symbol != "BTCUSDT" {
		t.Errorf("List[0].Symbol = %q, want BTCUSDT", result.List[0].Symbol)
	}
}

func TestGetAllInstrumentsPagination(t *testing.T) {
	var page atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch page.Add(1) {
		case 1:
			if got := r.URL.Query().Get("cursor"); got != "" {
				t.Errorf("first page cursor = %q, want empty", got)
			}
			w.Write(envelope(t, InstrumentsResult{
				List:           []APIInstrument{{Symbol: "BTCUSDT"}},
				NextPageCursor: "page-2",
			}))
		case 2:
			if got := r.URL.Query().Get("cursor"); got != "page-2" {
				t.Errorf("second page cursor = %q, want page-2", got)
			}
			w.Write(envelope(t, InstrumentsResult{
				List: []APIInstrument{{Symbol: "ETHUSDT"}},
			}))
		default:
			t.Error("unexpected extra page request")
		}
	}))
	defer server.Close()

	c := NewClient(server.URL)

	all, err := c.GetAllInstruments(context.Background())
	if err != nil {
		t.Fatalf("GetAllInstruments failed: %v", err)
	}

	if len(all) != 2 {
		t.Fatalf("len(all) = %d, want 2", len(all))
	}
	if all[0].Symbol != "BTCUSDT" || all[1].Symbol != "ETHUSDT" {
		t.Errorf("all = %v, want BTCUSDT then ETHUSDT", all)
	}
}

func TestRetCodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"retCode": 10001,
			"retMsg":  "params error",
			"result":  map[string]any{},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL)

	_, err := c.GetInstruments(context.Background(), GetInstrumentsOptions{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.RetCode != 10001 {
		t.Errorf("RetCode = %d, want 10001", apiErr.RetCode)
	}
	if apiErr.IsRetryable() {
		t.Error("params error should not be retryable")
	}
	if apiErr.IsAuthErr() {
		t.Error("params error should not be an auth error")
	}
}

func TestRetryOnServerError(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write(envelope(t, InstrumentsResult{List: []APIInstrument{{Symbol: "BTCUSDT"}}}))
	}))
	defer server.Close()

	c := NewClient(server.URL, WithRetries(2, 10*time.Millisecond))

	result, err := c.GetInstruments(context.Background(), GetInstrumentsOptions{})
	if err != nil {
		t.Fatalf("GetInstruments failed: %v", err)
	}
	if len(result.List) != 1 {
		t.Errorf("len(List) = %d, want 1", len(result.List))
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestNoRetryOnAuthError(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"retCode": 10003,
			"retMsg":  "API key is invalid",
			"result":  map[string]any{},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, WithRetries(3, 10*time.Millisecond))

	_, err := c.GetInstruments(context.Background(), GetInstrumentsOptions{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !IsAuthError(err) {
		t.Errorf("IsAuthError = false, want true for %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1 (auth errors must not be retried)", got)
	}
}

func TestIsAuthErrorOnWrappedError(t *testing.T) {
	err := fmt.Errorf("tick failed: %w", &APIError{RetCode: 10004, RetMsg: "invalid sign"})
	if !IsAuthError(err) {
		t.Error("IsAuthError should unwrap nested errors")
	}

	if IsAuthError(errors.New("plain network error")) {
		t.Error("IsAuthError = true for a non-API error")
	}
}

func TestSignedRequestHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, h := range []string{"X-BAPI-API-KEY", "X-BAPI-TIMESTAMP", "X-BAPI-RECV-WINDOW", "X-BAPI-SIGN"} {
			if r.Header.Get(h) == "" {
				t.Errorf("missing header %s", h)
			}
		}
		if got := r.Header.Get("X-BAPI-API-KEY"); got != "test-key" {
			t.Errorf("X-BAPI-API-KEY = %q, want test-key", got)
		}
		w.Write(envelope(t, TickersResult{}))
	}))
	defer server.Close()

	creds := &auth.Credentials{APIKey: "test-key", APISecret: "test-secret"}
	c := NewClient(server.URL, WithCredentials(creds, 5000))

	if _, err := c.GetTickers(context.Background(), ""); err != nil {
		t.Fatalf("GetTickers failed: %v", err)
	}
}

func TestGetServerTime(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(envelope(t, ServerTimeResult{TimeSecond: "1700000000", TimeNano: "1700000000123456789"}))
	}))
	defer server.Close()

	c := NewClient(server.URL)

	sec, err := c.GetServerTime(context.Background())
	if err != nil {
		t.Fatalf("GetServerTime failed: %v", err)
	}
	if sec != 1700000000 {
		t.Errorf("server time = %d, want 1700000000", sec)
	}
}

func TestGetAnnouncementsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("locale"); got != "en-US" {
			t.Errorf("locale = %q, want en-US", got)
		}
		if got := q.Get("type"); got != "new_crypto" {
			t.Errorf("type = %q, want new_crypto", got)
		}
		if got := q.Get("limit"); got != "50" {
			t.Errorf("limit = %q, want 50", got)
		}
		w.Write(envelope(t, AnnouncementsResult{
			Total: 1,
			List: []APIAnnouncement{{
				Title:         "New Listing: NEWCOINUSDT Now Available for Spot Trading",
				URL:           "https://announcements.bybit.com/article/1",
				DateTimestamp: 1700000000000,
			}},
		}))
	}))
	defer server.Close()

	c := NewClient(server.URL)

	result, err := c.GetAnnouncements(context.Background(), GetAnnouncementsOptions{
		Type:  "new_crypto",
		Limit: 50,
	})
	if err != nil {
		t.Fatalf("GetAnnouncements failed: %v", err)
	}
	if result.Total != 1 || len(result.List) != 1 {
		t.Fatalf("result = %+v, want one announcement", result)
	}
}
