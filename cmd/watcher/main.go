package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avasilyev/bybit-listings/internal/announce"
	"github.com/avasilyev/bybit-listings/internal/auth"
	"github.com/avasilyev/bybit-listings/internal/bybit"
	"github.com/avasilyev/bybit-listings/internal/config"
	"github.com/avasilyev/bybit-listings/internal/database"
	"github.com/avasilyev/bybit-listings/internal/notify"
	"github.com/avasilyev/bybit-listings/internal/recorder"
	"github.com/avasilyev/bybit-listings/internal/version"
	"github.com/avasilyev/bybit-listings/internal/watcher"
)

func main() {
	configPath := flag.String("config", "configs/watcher.local.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting watcher",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"api_url", cfg.API.RestURL,
		"interval", cfg.Watcher.Interval,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Create API client; credentials are optional for the public market
	// endpoints.
	clientOpts := []bybit.ClientOption{
		bybit.WithLogger(logger),
		bybit.WithTimeout(cfg.API.Timeout),
		bybit.WithRetries(cfg.API.MaxRetries, time.Second),
	}
	if cfg.API.APIKey != "" {
		creds, err := auth.NewCredentials(cfg.API.APIKey, cfg.API.APISecret)
		if err != nil {
			logger.Error("failed to load API credentials", "error", err)
			os.Exit(1)
		}
		clientOpts = append(clientOpts, bybit.WithCredentials(creds, cfg.API.RecvWindow))
		logger.Info("loaded API credentials", "api_key", cfg.API.APIKey)
	}
	apiClient := bybit.NewClient(cfg.API.RestURL, clientOpts...)

	// Check exchange reachability
	logger.Info("checking exchange connectivity")
	serverTime, err := apiClient.GetServerTime(ctx)
	if err != nil {
		logger.Error("failed to get server time", "error", err)
		os.Exit(1)
	}
	logger.Info("exchange reachable", "server_time", time.Unix(serverTime, 0).UTC())

	// Connect to database (optional listing-event recorder)
	var pool *pgxpool.Pool
	sinks := []notify.Sink{notify.NewLog(logger)}

	if cfg.Database.Enabled {
		logger.Info("connecting to database",
			"host", cfg.Database.Postgres.Host,
			"port", cfg.Database.Postgres.Port,
			"database", cfg.Database.Postgres.Name,
		)

		pool, err = database.Connect(ctx, cfg.Database.Postgres)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		rec := recorder.New(pool, logger)
		if err := rec.EnsureSchema(ctx); err != nil {
			logger.Error("failed to ensure schema", "error", err)
			os.Exit(1)
		}
		sinks = append(sinks, rec)

		logger.Info("database connected")
	}

	if cfg.Notify.WebhookURL != "" {
		sinks = append(sinks, notify.NewWebhook(cfg.Notify.WebhookURL, cfg.Notify.WebhookTimeout))
		logger.Info("webhook notifications enabled", "url", cfg.Notify.WebhookURL)
	}

	var hub *notify.Hub
	if cfg.Notify.Websocket {
		hub = notify.NewHub(logger)
		defer hub.Close()
		sinks = append(sinks, hub)
		logger.Info("websocket notifications enabled", "path", "/ws")
	}

	var notifier watcher.Notifier = sinks[0]
	if len(sinks) > 1 {
		notifier = notify.NewMulti(sinks...)
	}

	// Create and start the listing watcher (blocking baseline fetch)
	watcherCfg := watcher.Config{
		Interval:   cfg.Watcher.Interval,
		Timeout:    cfg.API.Timeout,
		QuoteCoins: cfg.Watcher.QuoteCoins,
	}
	w := watcher.New(watcherCfg, apiClient, notifier, logger)

	logger.Info("starting listing watcher (baseline fetch)...")
	if err := w.Start(ctx); err != nil {
		logger.Error("failed to start listing watcher", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		w.Stop(shutdownCtx)
	}()

	logger.Info("listing watcher started", "baseline_symbols", w.SnapshotSize())

	// Start the announcement monitor (optional, earlier signals)
	if cfg.Announcements.Enabled {
		announceCfg := announce.DefaultConfig()
		announceCfg.Interval = cfg.Announcements.Interval
		announceCfg.Timeout = cfg.API.Timeout
		announceCfg.Limit = cfg.Announcements.Limit
		if len(cfg.Watcher.QuoteCoins) > 0 {
			announceCfg.QuoteCoin = cfg.Watcher.QuoteCoins[0]
		}

		monitor := announce.New(announceCfg, apiClient, notifier, logger)
		if err := monitor.Start(ctx); err != nil {
			logger.Error("failed to start announcement monitor", "error", err)
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			monitor.Stop(shutdownCtx)
		}()
	}

	// Start health server
	healthServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Health.Port),
		Handler: createHealthHandler(w, pool, hub),
	}
	go func() {
		logger.Info("starting health server", "port", cfg.Health.Port)
		if err := healthServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("health server error", "error", err)
		}
	}()

	logger.Info("watcher running",
		"instance_id", cfg.Instance.ID,
		"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Health.Port),
	)

	// Wait for shutdown or a fatal watcher error
	exitCode := 0
	select {
	case <-ctx.Done():
	case err := <-w.Fatal():
		logger.Error("fatal watcher error", "error", err)
		cancel()
		exitCode = 1
	}

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	healthServer.Shutdown(shutdownCtx)

	logger.Info("watcher stopped")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// createHealthHandler creates the HTTP handler for health checks and
// debug endpoints.
func createHealthHandler(w *watcher.Watcher, pool *pgxpool.Pool, hub *notify.Hub) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := struct {
			Status     string         `json:"status"`
			Components map[string]any `json:"components"`
		}{
			Status:     "healthy",
			Components: make(map[string]any),
		}

		// Check watcher
		state := w.State()
		health.Components["watcher"] = map[string]any{
			"state":   state.String(),
			"symbols": w.SnapshotSize(),
		}
		if state != watcher.StateRunning {
			health.Status = "unhealthy"
		}

		// Check database
		if pool != nil {
			if err := pool.Ping(ctx); err != nil {
				health.Status = "unhealthy"
				health.Components["postgres"] = map[string]string{
					"status": "disconnected",
					"error":  err.Error(),
				}
			} else {
				health.Components["postgres"] = "connected"
			}
		}

		if hub != nil {
			health.Components["websocket_clients"] = hub.ClientCount()
		}

		rw.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			rw.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(rw).Encode(health)
	})

	mux.HandleFunc("/debug/symbols", func(rw http.ResponseWriter, r *http.Request) {
		symbols := w.Symbols()

		// Limit to first 100 for debugging
		limit := 100
		shown := symbols
		if len(shown) > limit {
			shown = shown[:limit]
		}

		rw.Header().Set("Content-Type", "application/json")
		json.NewEncoder(rw).Encode(map[string]any{
			"count":   len(symbols),
			"showing": len(shown),
			"symbols": shown,
		})
	})

	if hub != nil {
		mux.Handle("/ws", hub)
	}

	return mux
}
