// Package watcher implements the spot listing watcher.
//
// The watcher:
//   - Fetches the full spot instrument list once at startup (baseline)
//   - Polls the same endpoint on a fixed interval
//   - Diffs each fetch against the previous snapshot
//   - Notifies sinks about symbols not seen before
//   - Replaces the snapshot wholesale after every successful fetch
//
// Pairs that disappear from the exchange are dropped silently. A failed
// fetch skips the tick and leaves the snapshot untouched.
package watcher
