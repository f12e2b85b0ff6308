// Package handler provides HTTP handlers for all API endpoints.
// The season table is loaded once at startup; handlers build dashboard views
// from it and cache the rendered JSON with an ETag.
package handler

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/josm18/EPL-2024-2025/internal/api/respond"
	"github.com/josm18/EPL-2024-2025/internal/cache"
	"github.com/josm18/EPL-2024-2025/internal/config"
	"github.com/josm18/EPL-2024-2025/internal/dataset"
	"github.com/josm18/EPL-2024-2025/internal/db"
	"github.com/josm18/EPL-2024-2025/internal/metrics"
)

// snapshot is the enriched table a request is served from. gen increases
// with every Swap.
type snapshot struct {
	gen   uint64
	table *metrics.Table
	load  dataset.LoadResult
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	current atomic.Pointer[snapshot]
	pool    *db.Pool // nil when stats come from the CSV file
	cache   *cache.Cache
	cfg     *config.Config
	logger  *slog.Logger
}

// New creates a Handler over an enriched season table.
func New(table *metrics.Table, load dataset.LoadResult, pool *db.Pool, c *cache.Cache, cfg *config.Config, logger *slog.Logger) *Handler {
	h := &Handler{
		pool:   pool,
		cache:  c,
		cfg:    cfg,
		logger: logger,
	}
	h.current.Store(&snapshot{table: table, load: load})
	return h
}

// Swap replaces the season table and drops every cached response.
func (h *Handler) Swap(table *metrics.Table, load dataset.LoadResult) {
	for {
		old := h.current.Load()
		if h.current.CompareAndSwap(old, &snapshot{gen: old.gen + 1, table: table, load: load}) {
			break
		}
	}
	h.cache.Purge()
	h.logger.Info("Season table swapped", "summary", load.Summary())
}

func (h *Handler) data() *snapshot { return h.current.Load() }

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status and the loaded dataset summary.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "EPL 2024/25 Player Stats API",
		"version": "1.0.0",
		"status":  "running",
		"season":  config.CurrentSeason.Name,
		"docs":    "/docs/index.html",
		"dataset": h.data().load.Summary(),
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"players":   h.data().table.Len(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity when Postgres is the source.
// @Summary Database health check
// @Description Verifies Postgres connectivity. Reports not_configured when stats come from CSV.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if h.pool == nil {
		respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"database":  "not_configured",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	if err := h.pool.HealthCheck(r.Context()); err != nil {
		h.logger.Warn("Database health check failed", "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (keys, hits, misses).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
