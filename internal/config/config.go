package config

import "time"

// WatcherConfig is the root configuration for a watcher instance.
type WatcherConfig struct {
	Instance      InstanceConfig      `yaml:"instance"`
	API           APIConfig           `yaml:"api"`
	Watcher       PollConfig          `yaml:"watcher"`
	Announcements AnnouncementsConfig `yaml:"announcements"`
	Notify        NotifyConfig        `yaml:"notify"`
	Database      DatabaseConfig      `yaml:"database"`
	Health        HealthConfig        `yaml:"health"`
}

// InstanceConfig identifies this watcher.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// APIConfig holds Bybit API settings.
type APIConfig struct {
	RestURL    string        `yaml:"rest_url"`    // Overrides the testnet/mainnet default when set
	APIKey     string        `yaml:"api_key"`     // Optional; public market endpoints need no auth
	APISecret  string        `yaml:"api_secret"`  // Optional; paired with api_key
	Testnet    bool          `yaml:"testnet"`     // Selects api-testnet.bybit.com when rest_url is empty
	Timeout    time.Duration `yaml:"timeout"`     // Per-request HTTP timeout
	MaxRetries int           `yaml:"max_retries"` // Retries for transient API errors
	RecvWindow int           `yaml:"recv_window"` // Signed-request receive window (ms)
}

// PollConfig holds listing poller settings.
type PollConfig struct {
	Interval   time.Duration `yaml:"interval"`    // Fixed tick period
	QuoteCoins []string      `yaml:"quote_coins"` // Only watch pairs quoted in these coins; empty = all
}

// AnnouncementsConfig holds new-listing announcement monitor settings.
type AnnouncementsConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
	Limit    int           `yaml:"limit"` // Announcements fetched per poll
}

// NotifyConfig holds notification sink settings.
type NotifyConfig struct {
	WebhookURL     string        `yaml:"webhook_url"`     // POST listing events here when set
	WebhookTimeout time.Duration `yaml:"webhook_timeout"` // Per-delivery timeout
	Websocket      bool          `yaml:"websocket"`       // Serve /ws broadcast on the health port
}

// DatabaseConfig holds the optional Postgres listing-event recorder.
type DatabaseConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Postgres DBConfig `yaml:"postgres"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// HealthConfig holds the health/debug HTTP server settings.
type HealthConfig struct {
	Port int `yaml:"port"`
}
