// Package recorder persists detected listing events to Postgres.
//
// Recording is write-only bookkeeping for operators; the watcher never
// reads past events back, and a restart always re-fetches its baseline
// from the exchange.
package recorder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avasilyev/bybit-listings/internal/model"
)

// DB is the subset of pgxpool.Pool the recorder needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS listing_events (
	event_id    UUID PRIMARY KEY,
	symbol      TEXT NOT NULL,
	base_coin   TEXT NOT NULL DEFAULT '',
	quote_coin  TEXT NOT NULL DEFAULT '',
	source      TEXT NOT NULL,
	detected_at TIMESTAMPTZ NOT NULL
)`

const insertEventSQL = `
INSERT INTO listing_events (event_id, symbol, base_coin, quote_coin, source, detected_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (event_id) DO NOTHING`

// Recorder is a notification sink that inserts one row per listing event.
type Recorder struct {
	db     DB
	logger *slog.Logger
}

// New creates a recorder on top of an existing connection pool.
func New(db DB, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{db: db, logger: logger}
}

// EnsureSchema creates the listing_events table if it does not exist.
func (r *Recorder) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create listing_events table: %w", err)
	}
	return nil
}

// Notify inserts the event. Duplicate event IDs are ignored.
func (r *Recorder) Notify(ctx context.Context, ev model.ListingEvent) error {
	_, err := r.db.Exec(ctx, insertEventSQL,
		ev.ID,
		ev.Symbol,
		ev.BaseCoin,
		ev.QuoteCoin,
		ev.Source,
		ev.DetectedAt,
	)
	if err != nil {
		return fmt.Errorf("insert listing event %s: %w", ev.Symbol, err)
	}

	r.logger.Debug("listing event recorded", "symbol", ev.Symbol, "event_id", ev.ID)
	return nil
}
