package model

import (
	"time"

	"github.com/google/uuid"
)

// Symbol identifies a tradable spot pair on the exchange (e.g., "BTCUSDT").
type Symbol = string

// Instrument represents a spot trading pair as reported by the exchange.
type Instrument struct {
	Symbol    string // Pair name (e.g., "BTCUSDT")
	BaseCoin  string // Base asset (e.g., "BTC")
	QuoteCoin string // Quote asset (e.g., "USDT")
	Status    string // Exchange status (e.g., "Trading")
}

// Snapshot is the full set of symbols observed at the most recent
// successful fetch. It is replaced wholesale after each tick, never
// mutated incrementally.
type Snapshot map[Symbol]struct{}

// NewSnapshot builds a Snapshot from a list of symbols.
func NewSnapshot(symbols []Symbol) Snapshot {
	s := make(Snapshot, len(symbols))
	for _, sym := range symbols {
		s[sym] = struct{}{}
	}
	return s
}

// Has reports whether the symbol is present.
func (s Snapshot) Has(sym Symbol) bool {
	_, ok := s[sym]
	return ok
}

// Len returns the number of symbols in the snapshot.
func (s Snapshot) Len() int {
	return len(s)
}

// Symbols returns all symbols in unspecified order.
func (s Snapshot) Symbols() []Symbol {
	result := make([]Symbol, 0, len(s))
	for sym := range s {
		result = append(result, sym)
	}
	return result
}

// Diff returns the symbols present in current but absent from s.
// Symbols that disappeared are not reported; removals are silent.
func (s Snapshot) Diff(current Snapshot) []Symbol {
	var added []Symbol
	for sym := range current {
		if _, ok := s[sym]; !ok {
			added = append(added, sym)
		}
	}
	return added
}

// ListingEvent describes one newly detected spot pair.
type ListingEvent struct {
	ID         uuid.UUID // Unique event ID, assigned at detection time
	Symbol     string    // Pair name (e.g., "NEWCOINUSDT")
	BaseCoin   string    // Base asset, if known
	QuoteCoin  string    // Quote asset, if known
	Source     string    // "instruments" or "announcement"
	DetectedAt time.Time // When the watcher first saw the symbol (UTC)
}

// NewListingEvent creates an event for a freshly detected instrument.
func NewListingEvent(inst Instrument, source string) ListingEvent {
	return ListingEvent{
		ID:         uuid.New(),
		Symbol:     inst.Symbol,
		BaseCoin:   inst.BaseCoin,
		QuoteCoin:  inst.QuoteCoin,
		Source:     source,
		DetectedAt: time.Now().UTC(),
	}
}
