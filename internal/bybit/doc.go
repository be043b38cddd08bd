// Package bybit implements a client for the Bybit v5 REST API.
//
// The watcher consumes only public market-data endpoints:
//   - GET /v5/market/instruments-info (spot instrument list, cursor paginated)
//   - GET /v5/market/tickers (spot ticker snapshot)
//   - GET /v5/market/time (server time)
//   - GET /v5/announcements/index (new-listing announcements)
//
// Every response carries the common envelope {retCode, retMsg, result};
// a non-zero retCode is surfaced as an *APIError.
package bybit
