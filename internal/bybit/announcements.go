package bybit

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GetAnnouncements fetches a page of exchange announcements.
func (c *Client) GetAnnouncements(ctx context.Context, opts GetAnnouncementsOptions) (*AnnouncementsResult, error) {
	query := url.Values{}

	locale := opts.Locale
	if locale == "" {
		locale = "en-US"
	}
	query.Set("locale", locale)

	if opts.Type != "" {
		query.Set("type", opts.Type)
	}
	if opts.Tag != "" {
		query.Set("tag", opts.Tag)
	}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	var result AnnouncementsResult
	if err := c.get(ctx, "/v5/announcements/index", query, &result); err != nil {
		return nil, fmt.Errorf("get announcements: %w", err)
	}

	return &result, nil
}
