package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultMainnetURL       = "https://api.bybit.com"
	DefaultTestnetURL       = "https://api-testnet.bybit.com"
	DefaultAPITimeout       = 10 * time.Second
	DefaultMaxRetries       = 3
	DefaultRecvWindow       = 5000
	DefaultPollInterval     = 1 * time.Second
	DefaultAnnounceInterval = 1 * time.Second
	DefaultAnnounceLimit    = 50
	DefaultWebhookTimeout   = 5 * time.Second
	DefaultDBPort           = 5432
	DefaultDBSSLMode        = "prefer"
	DefaultMaxConns         = 10
	DefaultMinConns         = 2
	DefaultHealthPort       = 8080
)

func (c *WatcherConfig) applyDefaults() {
	// API defaults
	if c.API.RestURL == "" {
		if c.API.Testnet {
			c.API.RestURL = DefaultTestnetURL
		} else {
			c.API.RestURL = DefaultMainnetURL
		}
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}
	if c.API.RecvWindow == 0 {
		c.API.RecvWindow = DefaultRecvWindow
	}

	// Watcher defaults
	if c.Watcher.Interval == 0 {
		c.Watcher.Interval = DefaultPollInterval
	}

	// Announcement defaults
	if c.Announcements.Interval == 0 {
		c.Announcements.Interval = DefaultAnnounceInterval
	}
	if c.Announcements.Limit == 0 {
		c.Announcements.Limit = DefaultAnnounceLimit
	}

	// Notify defaults
	if c.Notify.WebhookTimeout == 0 {
		c.Notify.WebhookTimeout = DefaultWebhookTimeout
	}

	// Database defaults
	if c.Database.Enabled {
		applyDBDefaults(&c.Database.Postgres)
	}

	// Health defaults
	if c.Health.Port == 0 {
		c.Health.Port = DefaultHealthPort
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
