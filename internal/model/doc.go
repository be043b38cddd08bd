// Package model defines shared data types for the listing watcher.
//
// Conventions:
//   - Symbols: exchange-assigned pair names (e.g., "BTCUSDT")
//   - Timestamps: time.Time in UTC
//   - IDs: uuid.UUID for listing events
package model
