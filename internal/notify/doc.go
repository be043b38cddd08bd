// Package notify provides notification sinks for listing events.
//
// Sinks implement the watcher's Notifier interface:
//   - Log: structured log line (the default action)
//   - Webhook: HTTP POST of the event as JSON
//   - Hub: broadcast to connected WebSocket clients
//   - Multi: fan-out to several sinks
package notify
