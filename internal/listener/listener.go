// Package listener provides a Postgres LISTEN/NOTIFY consumer that reloads
// the season table when player stats change. It holds a dedicated pgx
// connection (not from the pool) listening on the `player_stats_updated`
// channel.
//
// A loader or trigger publishes with:
//
//	SELECT pg_notify('player_stats_updated', '{"season":2024,"league_id":8}');
package listener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

const (
	Channel          = "player_stats_updated"
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second

	// Notifications arriving within this window of each other trigger a
	// single reload.
	settleWindow = 2 * time.Second
)

// UpdateEvent is the JSON payload from pg_notify('player_stats_updated', ...).
// Zero fields act as wildcards.
type UpdateEvent struct {
	Season    int   `json:"season"`
	LeagueID  int   `json:"league_id"`
	Timestamp int64 `json:"ts"`
}

// Matches reports whether the event concerns the given season and league.
func (e UpdateEvent) Matches(season, leagueID int) bool {
	return (e.Season == 0 || e.Season == season) &&
		(e.LeagueID == 0 || e.LeagueID == leagueID)
}

// ParseEvent decodes a notification payload. An empty payload is a
// wildcard event.
func ParseEvent(payload string) (UpdateEvent, error) {
	var e UpdateEvent
	if payload == "" {
		return e, nil
	}
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		return e, fmt.Errorf("parse %s payload: %w", Channel, err)
	}
	return e, nil
}

// Start opens a dedicated connection and listens on the player_stats_updated
// channel, calling reload once per burst of matching events. It reconnects
// automatically on connection loss. Blocks until ctx is cancelled. Intended
// to be called with `go`.
func Start(ctx context.Context, dbURL string, season, leagueID int, reload func(context.Context), logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, season, leagueID, reload, logger)
		if ctx.Err() != nil {
			logger.Info("Stats listener stopped (context cancelled)")
			return
		}

		logger.Error("Stats listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection drops
// or the context is cancelled.
func listenLoop(ctx context.Context, dbURL string, season, leagueID int, reload func(context.Context), logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(ctx, "LISTEN "+Channel)
	if err != nil {
		return fmt.Errorf("LISTEN %s: %w", Channel, err)
	}
	logger.Info("Stats listener connected", "channel", Channel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		pending := accept(notification.Payload, season, leagueID, logger)

		// Coalesce the rest of the burst.
		for {
			settleCtx, cancel := context.WithTimeout(ctx, settleWindow)
			notification, err = conn.WaitForNotification(settleCtx)
			cancel()
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if errors.Is(err, context.DeadlineExceeded) {
					break
				}
				return fmt.Errorf("wait for notification: %w", err)
			}
			if accept(notification.Payload, season, leagueID, logger) {
				pending = true
			}
		}

		if pending {
			logger.Info("Player stats updated, reloading", "season", season, "league_id", leagueID)
			reload(ctx)
		}
	}
}

func accept(payload string, season, leagueID int, logger *slog.Logger) bool {
	event, err := ParseEvent(payload)
	if err != nil {
		logger.Warn("Failed to parse stats update event", "payload", payload, "error", err)
		return false
	}
	if !event.Matches(season, leagueID) {
		logger.Debug("Ignoring stats update for another season",
			"season", event.Season, "league_id", event.LeagueID)
		return false
	}
	return true
}
