// Package announce watches Bybit's announcement feed for upcoming spot
// listings. Announcements usually land before a pair starts trading, so
// this monitor complements the instrument poller with earlier, less
// precise signals.
package announce

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/avasilyev/bybit-listings/internal/bybit"
	"github.com/avasilyev/bybit-listings/internal/model"
)

// announcementType is the feed category carrying new-coin announcements.
const announcementType = "new_crypto"

// Source provides announcement pages.
type Source interface {
	GetAnnouncements(ctx context.Context, opts bybit.GetAnnouncementsOptions) (*bybit.AnnouncementsResult, error)
}

// Notifier receives listing events extracted from announcements.
type Notifier interface {
	Notify(ctx context.Context, ev model.ListingEvent) error
}

// Config holds announcement monitor configuration.
type Config struct {
	Interval  time.Duration // Poll period (default: 1s)
	Timeout   time.Duration // Per-fetch timeout (default: 10s)
	Limit     int           // Announcements per page (default: 50)
	QuoteCoin string        // Quote coin to scan titles for (default: USDT)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval:  time.Second,
		Timeout:   10 * time.Second,
		Limit:     50,
		QuoteCoin: "USDT",
	}
}

// Monitor polls the announcement feed and fires the notifier for symbols
// mentioned in previously unseen listing announcements.
type Monitor struct {
	cfg      Config
	source   Source
	notifier Notifier
	logger   *slog.Logger

	mu       sync.Mutex
	seen     map[string]struct{} // announcement URLs already processed
	notified map[string]struct{} // symbols already fired

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new announcement Monitor.
func New(cfg Config, source Source, notifier Notifier, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		cfg:      cfg,
		source:   source,
		notifier: notifier,
		logger:   logger,
		seen:     make(map[string]struct{}),
		notified: make(map[string]struct{}),
	}
}

// Start seeds the seen-set from the current feed (blocking, no
// notifications) and begins polling in the background.
func (m *Monitor) Start(ctx context.Context) error {
	m.ctx, m.cancel = context.WithCancel(ctx)

	fetchCtx, cancel := context.WithTimeout(m.ctx, m.cfg.Timeout)
	defer cancel()

	initial, err := m.fetch(fetchCtx)
	if err != nil {
		m.cancel()
		return fmt.Errorf("initial announcement fetch: %w", err)
	}

	m.mu.Lock()
	for _, a := range initial {
		m.seen[a.URL] = struct{}{}
	}
	m.mu.Unlock()

	m.wg.Add(1)
	go m.run()

	m.logger.Info("announcement monitor started",
		"seeded", len(initial),
		"interval", m.cfg.Interval,
	)

	return nil
}

// Stop gracefully shuts down the monitor.
func (m *Monitor) Stop(ctx context.Context) error {
	if m.cancel != nil {
		m.cancel()
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("announcement monitor stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the polling loop.
func (m *Monitor) run() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.poll()
		}
	}
}

// poll fetches the current page and processes unseen announcements.
// Fetch failures are logged and skipped; the feed is public, so there is
// no credential failure mode here.
func (m *Monitor) poll() {
	fetchCtx, cancel := context.WithTimeout(m.ctx, m.cfg.Timeout)
	defer cancel()

	announcements, err := m.fetch(fetchCtx)
	if err != nil {
		m.logger.Warn("announcement fetch failed, skipping poll", "err", err)
		return
	}

	for _, a := range announcements {
		m.process(a)
	}
}

// process fires notifications for one previously unseen announcement.
func (m *Monitor) process(a bybit.APIAnnouncement) {
	m.mu.Lock()
	if _, ok := m.seen[a.URL]; ok {
		m.mu.Unlock()
		return
	}
	m.seen[a.URL] = struct{}{}
	m.mu.Unlock()

	if !IsListingTitle(a.Title, m.cfg.QuoteCoin) {
		return
	}

	for _, symbol := range ExtractSymbols(a.Title, m.cfg.QuoteCoin) {
		m.mu.Lock()
		if _, ok := m.notified[symbol]; ok {
			m.mu.Unlock()
			continue
		}
		m.notified[symbol] = struct{}{}
		m.mu.Unlock()

		ev := model.NewListingEvent(model.Instrument{
			Symbol:    symbol,
			BaseCoin:  symbol[:len(symbol)-len(m.cfg.QuoteCoin)],
			QuoteCoin: m.cfg.QuoteCoin,
		}, "announcement")

		m.logger.Info("listing announcement detected",
			"symbol", symbol,
			"title", a.Title,
			"url", a.URL,
		)

		if err := m.notifier.Notify(m.ctx, ev); err != nil {
			m.logger.Warn("notify failed", "symbol", symbol, "err", err)
		}
	}
}

// fetch retrieves one page of new-coin announcements.
func (m *Monitor) fetch(ctx context.Context) ([]bybit.APIAnnouncement, error) {
	result, err := m.source.GetAnnouncements(ctx, bybit.GetAnnouncementsOptions{
		Type:  announcementType,
		Page:  1,
		Limit: m.cfg.Limit,
	})
	if err != nil {
		return nil, err
	}
	return result.List, nil
}
