package notify

import (
	"context"
	"log/slog"

	"github.com/avasilyev/bybit-listings/internal/model"
)

// Log writes listing events to a structured logger. It is the default
// sink and has no other side effect.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a logging sink.
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

// Notify logs the event.
func (l *Log) Notify(ctx context.Context, ev model.ListingEvent) error {
	l.logger.Info("new spot listing",
		"symbol", ev.Symbol,
		"base_coin", ev.BaseCoin,
		"quote_coin", ev.QuoteCoin,
		"source", ev.Source,
		"detected_at", ev.DetectedAt,
		"event_id", ev.ID,
	)
	return nil
}
