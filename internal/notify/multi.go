package notify

import (
	"context"
	"errors"

	"github.com/avasilyev/bybit-listings/internal/model"
)

// Multi fans an event out to several sinks. Every sink sees every event;
// failures are collected rather than short-circuiting delivery.
type Multi struct {
	sinks []Sink
}

// Sink matches the watcher's Notifier interface without importing it.
type Sink interface {
	Notify(ctx context.Context, ev model.ListingEvent) error
}

// NewMulti creates a fan-out sink.
func NewMulti(sinks ...Sink) *Multi {
	return &Multi{sinks: sinks}
}

// Notify delivers the event to all sinks and joins their errors.
func (m *Multi) Notify(ctx context.Context, ev model.ListingEvent) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
