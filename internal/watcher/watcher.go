package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/avasilyev/bybit-listings/internal/bybit"
	"github.com/avasilyev/bybit-listings/internal/model"
)

// InstrumentSource lists the current spot instruments.
type InstrumentSource interface {
	GetAllInstruments(ctx context.Context) ([]bybit.APIInstrument, error)
}

// Notifier receives newly detected listings.
type Notifier interface {
	Notify(ctx context.Context, ev model.ListingEvent) error
}

// NotifierFunc is a function adapter for Notifier.
type NotifierFunc func(ctx context.Context, ev model.ListingEvent) error

func (f NotifierFunc) Notify(ctx context.Context, ev model.ListingEvent) error {
	return f(ctx, ev)
}

// State describes the watcher lifecycle.
type State int32

const (
	StateUninitialized State = iota // No baseline snapshot yet
	StateRunning                    // Baseline present, ticking on a timer
	StateStopped                    // Loop cancelled
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// Config holds watcher configuration.
type Config struct {
	Interval   time.Duration // Fixed tick period (default: 1s)
	Timeout    time.Duration // Per-fetch timeout (default: 10s)
	QuoteCoins []string      // Only watch pairs quoted in these coins; empty = all
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: time.Second,
		Timeout:  10 * time.Second,
	}
}

// Watcher polls the spot instrument list and detects new pairs.
type Watcher struct {
	cfg      Config
	source   InstrumentSource
	notifier Notifier
	logger   *slog.Logger
	quotes   map[string]struct{}

	mu       sync.RWMutex
	state    State
	snapshot model.Snapshot

	fatal chan error

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Watcher.
func New(cfg Config, source InstrumentSource, notifier Notifier, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}

	var quotes map[string]struct{}
	if len(cfg.QuoteCoins) > 0 {
		quotes = make(map[string]struct{}, len(cfg.QuoteCoins))
		for _, q := range cfg.QuoteCoins {
			quotes[q] = struct{}{}
		}
	}

	return &Watcher{
		cfg:      cfg,
		source:   source,
		notifier: notifier,
		logger:   logger,
		quotes:   quotes,
		fatal:    make(chan error, 1),
	}
}

// Start fetches the baseline snapshot (blocking) and begins the polling
// loop. No notifications fire for pairs present in the baseline. A failed
// baseline fetch is fatal: the error is returned and the watcher stays
// uninitialized.
func (w *Watcher) Start(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)

	fetchCtx, cancel := context.WithTimeout(w.ctx, w.cfg.Timeout)
	defer cancel()

	baseline, _, err := w.fetch(fetchCtx)
	if err != nil {
		w.cancel()
		return fmt.Errorf("baseline fetch: %w", err)
	}

	w.mu.Lock()
	w.snapshot = baseline
	w.state = StateRunning
	w.mu.Unlock()

	w.wg.Add(1)
	go w.run()

	w.logger.Info("listing watcher started",
		"baseline_symbols", baseline.Len(),
		"interval", w.cfg.Interval,
	)

	return nil
}

// Stop gracefully shuts down the watcher.
func (w *Watcher) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.cancel()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("listing watcher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Fatal exposes non-recoverable errors detected during ticks, such as a
// revoked API key. At most one error is ever sent.
func (w *Watcher) Fatal() <-chan error {
	return w.fatal
}

// State returns the current lifecycle state.
func (w *Watcher) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// Symbols returns the symbols in the current snapshot, in unspecified order.
func (w *Watcher) Symbols() []model.Symbol {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshot.Symbols()
}

// SnapshotSize returns the number of symbols in the current snapshot.
func (w *Watcher) SnapshotSize() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshot.Len()
}

// run is the main polling loop.
func (w *Watcher) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			w.mu.Lock()
			w.state = StateStopped
			w.mu.Unlock()
			return
		case <-ticker.C:
			w.tick()
		}
	}
}

// tick performs one fetch-diff-notify-replace cycle. A transient fetch
// failure skips the tick and leaves the snapshot untouched; a credential
// error terminates the loop via the fatal channel.
func (w *Watcher) tick() {
	fetchCtx, cancel := context.WithTimeout(w.ctx, w.cfg.Timeout)
	defer cancel()

	current, instruments, err := w.fetch(fetchCtx)
	if err != nil {
		if bybit.IsAuthError(err) {
			w.logger.Error("credential error, stopping watcher", "err", err)
			select {
			case w.fatal <- err:
			default:
			}
			w.cancel()
			return
		}
		w.logger.Warn("fetch failed, skipping tick", "err", err)
		return
	}

	w.mu.RLock()
	added := w.snapshot.Diff(current)
	w.mu.RUnlock()

	for _, sym := range added {
		ev := model.NewListingEvent(instruments[sym], "instruments")
		w.logger.Info("new listing detected",
			"symbol", ev.Symbol,
			"base_coin", ev.BaseCoin,
			"quote_coin", ev.QuoteCoin,
			"event_id", ev.ID,
		)
		if err := w.notifier.Notify(w.ctx, ev); err != nil {
			w.logger.Warn("notify failed", "symbol", ev.Symbol, "err", err)
		}
	}

	// Replace the snapshot wholesale, even when nothing changed, so
	// delisted pairs fall out of the set.
	w.mu.Lock()
	w.snapshot = current
	w.mu.Unlock()
}

// fetch lists the current tradable instruments, applying the quote-coin
// filter, and returns the snapshot plus per-symbol instrument details.
func (w *Watcher) fetch(ctx context.Context) (model.Snapshot, map[model.Symbol]model.Instrument, error) {
	all, err := w.source.GetAllInstruments(ctx)
	if err != nil {
		return nil, nil, err
	}

	snapshot := make(model.Snapshot, len(all))
	instruments := make(map[model.Symbol]model.Instrument, len(all))

	for _, inst := range all {
		if !inst.IsTrading() {
			continue
		}
		if w.quotes != nil {
			if _, ok := w.quotes[inst.QuoteCoin]; !ok {
				continue
			}
		}
		snapshot[inst.Symbol] = struct{}{}
		instruments[inst.Symbol] = inst.ToModel()
	}

	return snapshot, instruments, nil
}
