// Command api is the EPL 2024/25 player stats API server.
//
// Usage:
//
//	epl-api
//	EPL_DATA_PATH=data/epl_player_stats_24_25.csv API_PORT=8080 epl-api

// @title EPL 2024/25 Player Stats API
// @version 1.0.0
// @description Premier League 2024/25 player analytics: per-90 rates, role scores, normalized metrics, team and position aggregates. The season table is loaded once at startup and enriched in memory.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/josm18/EPL-2024-2025/internal/api"
	"github.com/josm18/EPL-2024-2025/internal/api/handler"
	"github.com/josm18/EPL-2024-2025/internal/cache"
	"github.com/josm18/EPL-2024-2025/internal/config"
	"github.com/josm18/EPL-2024-2025/internal/dataset"
	"github.com/josm18/EPL-2024-2025/internal/listener"

	_ "github.com/josm18/EPL-2024-2025/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Load and enrich the season table
	src, pool, closeSource, err := dataset.SourceFromConfig(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open stats source", "error", err)
		os.Exit(1)
	}
	defer closeSource()

	table, result, err := dataset.Load(ctx, src, logger)
	if err != nil {
		logger.Error("Failed to load season stats", "error", err)
		os.Exit(1)
	}

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	defer appCache.Close()
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled, "ttl", cfg.CacheTTL)

	// Create router
	h := handler.New(table, result, pool, appCache, cfg, logger)
	router := api.NewRouter(h, cfg, logger)

	// Reload the table when Postgres announces new stats
	if pool != nil && cfg.ReloadOnNotify {
		go listener.Start(ctx, cfg.DatabaseURL, cfg.Season, cfg.LeagueID, func(ctx context.Context) {
			table, result, err := dataset.Load(ctx, src, logger)
			if err != nil {
				logger.Error("Reload failed, keeping current table", "error", err)
				return
			}
			h.Swap(table, result)
		}, logger)
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting EPL stats API",
			"addr", addr,
			"environment", cfg.Environment,
			"season", config.CurrentSeason.Name,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
