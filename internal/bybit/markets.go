package bybit

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GetInstruments fetches a page of spot instruments.
func (c *Client) GetInstruments(ctx context.Context, opts GetInstrumentsOptions) (*InstrumentsResult, error) {
	query := url.Values{}
	query.Set("category", CategorySpot)

	if opts.Symbol != "" {
		query.Set("symbol", opts.Symbol)
	}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Cursor != "" {
		query.Set("cursor", opts.Cursor)
	}

	var result InstrumentsResult
	if err := c.get(ctx, "/v5/market/instruments-info", query, &result); err != nil {
		return nil, fmt.Errorf("get instruments: %w", err)
	}

	return &result, nil
}

// GetAllInstruments fetches all spot instruments by paginating through results.
func (c *Client) GetAllInstruments(ctx context.Context) ([]APIInstrument, error) {
	return c.GetAllInstrumentsWithOptions(ctx, GetInstrumentsOptions{})
}

// GetAllInstrumentsWithOptions fetches all spot instruments matching the given options.
func (c *Client) GetAllInstrumentsWithOptions(ctx context.Context, opts GetInstrumentsOptions) ([]APIInstrument, error) {
	var all []APIInstrument
	opts.Limit = 1000 // Max page size

	for {
		result, err := c.GetInstruments(ctx, opts)
		if err != nil {
			return nil, err
		}

		all = append(all, result.List...)

		if result.NextPageCursor == "" {
			break
		}
		opts.Cursor = result.NextPageCursor
	}

	return all, nil
}

// GetTickers fetches ticker snapshots for all spot pairs, or a single
// pair when symbol is non-empty.
func (c *Client) GetTickers(ctx context.Context, symbol string) (*TickersResult, error) {
	query := url.Values{}
	query.Set("category", CategorySpot)
	if symbol != "" {
		query.Set("symbol", symbol)
	}

	var result TickersResult
	if err := c.get(ctx, "/v5/market/tickers", query, &result); err != nil {
		return nil, fmt.Errorf("get tickers: %w", err)
	}

	return &result, nil
}

// GetServerTime fetches the exchange server time in seconds since epoch.
func (c *Client) GetServerTime(ctx context.Context) (int64, error) {
	var result ServerTimeResult
	if err := c.get(ctx, "/v5/market/time", nil, &result); err != nil {
		return 0, fmt.Errorf("get server time: %w", err)
	}

	sec, err := strconv.ParseInt(result.TimeSecond, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse server time %q: %w", result.TimeSecond, err)
	}

	return sec, nil
}
