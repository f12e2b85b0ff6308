package handler

import (
	"errors"
	"net/http"

	"github.com/josm18/EPL-2024-2025/internal/cache"
	"github.com/josm18/EPL-2024-2025/internal/config"
	"github.com/josm18/EPL-2024-2025/internal/dashboard"
	"github.com/josm18/EPL-2024-2025/internal/metrics"
)

const (
	defaultLeaders = 10
	maxLeaders     = 100
	maxPlayers     = 1000
)

// GetOverview returns league totals, position distribution and team tables.
// @Summary League overview
// @Description Totals and per-player means, position distribution, team performance and build-up tables for the filtered players.
// @Tags dashboard
// @Produce json
// @Param club query []string false "Club filter (repeatable or comma-separated)"
// @Param position query []string false "Position filter (GKP, DEF, MID, FWD)"
// @Param min_minutes query number false "Minimum minutes played"
// @Success 200 {object} dashboard.Overview
// @Failure 400 {object} respond.ErrorResponse
// @Router /overview [get]
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.cfg.CacheTTL, func(s *snapshot) (interface{}, error) {
		f, err := h.parseFilter(r)
		if err != nil {
			return nil, err
		}
		return dashboard.BuildOverview(f.Apply(s.table)), nil
	})
}

// GetPlayers returns the filtered player rows with every enriched column.
// @Summary Player list
// @Description Filtered player rows including derived, score and _norm columns. Optionally sorted by a numeric column.
// @Tags dashboard
// @Produce json
// @Param club query []string false "Club filter"
// @Param position query []string false "Position filter"
// @Param min_minutes query number false "Minimum minutes played"
// @Param sort query string false "Numeric column to sort by"
// @Param order query string false "Sort order" Enums(asc, desc)
// @Param limit query int false "Maximum rows (1-1000)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /players [get]
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.cfg.CacheTTL, func(s *snapshot) (interface{}, error) {
		f, err := h.parseFilter(r)
		if err != nil {
			return nil, err
		}
		limit, err := parseLimit(r, "limit", maxPlayers, maxPlayers)
		if err != nil {
			return nil, err
		}
		asc, err := parseOrder(r)
		if err != nil {
			return nil, err
		}

		filtered := f.Apply(s.table)
		rows := filtered.Rows()
		if col := r.URL.Query().Get("sort"); col != "" {
			if !filtered.HasColumn(col) {
				return nil, invalid("INVALID_SORT", "unknown column %q", col)
			}
			rows = metrics.TopN(filtered, col, limit, asc)
		} else if len(rows) > limit {
			rows = rows[:limit]
		}
		return map[string]interface{}{
			"filter":  f,
			"total":   filtered.Len(),
			"count":   len(rows),
			"players": rows,
		}, nil
	})
}

// ComparePlayers returns radar and detail data for up to five players.
// @Summary Compare players
// @Description Radar values (raw and league-relative) and detail statistics for 1-5 players.
// @Tags dashboard
// @Produce json
// @Param player query []string true "Player names (1-5)"
// @Param set query string false "Metric set" Enums(offensive, defensive, possession)
// @Success 200 {object} dashboard.Comparison
// @Failure 400 {object} respond.ErrorResponse
// @Router /players/compare [get]
func (h *Handler) ComparePlayers(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.cfg.CacheTTL, func(s *snapshot) (interface{}, error) {
		set, err := dashboard.ParseMetricSet(r.URL.Query().Get("set"))
		if err != nil {
			return nil, invalid("INVALID_SET", "%s", err.Error())
		}
		cmp, err := dashboard.PlayerComparison(s.table, r.URL.Query()["player"], set)
		switch {
		case errors.Is(err, dashboard.ErrNoPlayers):
			return nil, invalid("MISSING_PLAYER", "at least one player query parameter is required")
		case errors.Is(err, dashboard.ErrTooManyPlayers):
			return nil, invalid("TOO_MANY_PLAYERS", "%s", err.Error())
		case err != nil:
			return nil, err
		}
		return cmp, nil
	})
}

// GetLeaders ranks the filtered players by a numeric column.
// @Summary Leaders
// @Description Top players by any numeric column (raw, derived, score or _norm).
// @Tags dashboard
// @Produce json
// @Param by query string false "Column to rank by" default(Forward_Score)
// @Param n query int false "Number of players (1-100)" default(10)
// @Param order query string false "Sort order" Enums(asc, desc)
// @Param club query []string false "Club filter"
// @Param position query []string false "Position filter"
// @Param min_minutes query number false "Minimum minutes played"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /leaders [get]
func (h *Handler) GetLeaders(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.cfg.CacheTTL, func(s *snapshot) (interface{}, error) {
		f, err := h.parseFilter(r)
		if err != nil {
			return nil, err
		}
		n, err := parseLimit(r, "n", defaultLeaders, maxLeaders)
		if err != nil {
			return nil, err
		}
		asc, err := parseOrder(r)
		if err != nil {
			return nil, err
		}
		by := r.URL.Query().Get("by")
		if by == "" {
			by = metrics.ColForwardScore
		}
		leaders, err := dashboard.Leaders(f.Apply(s.table), by, n, asc)
		if err != nil {
			return nil, invalid("INVALID_COLUMN", "%s", err.Error())
		}
		return map[string]interface{}{"by": by, "leaders": leaders}, nil
	})
}

// GetTeams returns the team analysis for one to five clubs.
// @Summary Team analysis
// @Description Squad overview, top performers, comparison blocks and detailed statistics for 1-5 clubs.
// @Tags dashboard
// @Produce json
// @Param club query []string true "Clubs (1-5)"
// @Param position query []string false "Position filter"
// @Param min_minutes query number false "Minimum minutes played"
// @Success 200 {object} dashboard.TeamReport
// @Failure 400 {object} respond.ErrorResponse
// @Router /teams [get]
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.cfg.CacheTTL, func(s *snapshot) (interface{}, error) {
		f, err := h.parseFilter(r)
		if err != nil {
			return nil, err
		}
		rep, err := dashboard.BuildTeamReport(s.table, f)
		if err != nil {
			return nil, invalid("INVALID_CLUBS", "%s", err.Error())
		}
		return rep, nil
	})
}

// GetPositions returns per-position averages and the offensive correlation matrix.
// @Summary Position analysis
// @Tags dashboard
// @Produce json
// @Param club query []string false "Club filter"
// @Param min_minutes query number false "Minimum minutes played"
// @Success 200 {object} dashboard.PositionBreakdown
// @Router /positions [get]
func (h *Handler) GetPositions(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.cfg.CacheTTL, func(s *snapshot) (interface{}, error) {
		f, err := h.parseFilter(r)
		if err != nil {
			return nil, err
		}
		return dashboard.BuildPositionBreakdown(f.Apply(s.table)), nil
	})
}

// GetAdvanced returns correlations, performance indices and team styles.
// @Summary Advanced metrics
// @Tags dashboard
// @Produce json
// @Param club query []string false "Club filter"
// @Param position query []string false "Position filter"
// @Param min_minutes query number false "Minimum minutes played"
// @Success 200 {object} dashboard.Advanced
// @Router /advanced [get]
func (h *Handler) GetAdvanced(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.cfg.CacheTTL, func(s *snapshot) (interface{}, error) {
		f, err := h.parseFilter(r)
		if err != nil {
			return nil, err
		}
		return dashboard.BuildAdvanced(f.Apply(s.table)), nil
	})
}

// GetColumns lists the numeric and text columns of the enriched table.
// @Summary Column listing
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /meta/columns [get]
func (h *Handler) GetColumns(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, cache.TTLMeta, func(s *snapshot) (interface{}, error) {
		t := s.table
		var raw, derived, norm []string
		features := map[string]bool{}
		for _, c := range metrics.FeatureColumns {
			features[c] = true
		}
		for _, role := range metrics.DefaultRoles() {
			features[role.Column] = true
		}
		for _, c := range t.Columns() {
			switch {
			case metrics.IsNormColumn(c):
				norm = append(norm, c)
			case features[c]:
				derived = append(derived, c)
			default:
				raw = append(raw, c)
			}
		}
		return map[string]interface{}{
			"identity": []string{metrics.ColPlayerName, metrics.ColClub, metrics.ColPosition},
			"raw":      raw,
			"derived":  derived,
			"norm":     norm,
			"text":     t.TextColumns(),
		}, nil
	})
}

type clubInfo struct {
	Club    string `json:"club"`
	Color   string `json:"color"`
	Players int    `json:"players"`
}

// GetClubs lists the clubs in the dataset with their colours.
// @Summary Club listing
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /meta/clubs [get]
func (h *Handler) GetClubs(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, cache.TTLMeta, func(s *snapshot) (interface{}, error) {
		t := s.table
		counts := map[string]int{}
		for _, rec := range t.Rows() {
			counts[rec.Club]++
		}
		clubs := t.Distinct(metrics.ColClub)
		out := make([]clubInfo, len(clubs))
		for i, c := range clubs {
			color, _ := config.ClubColor(c)
			out[i] = clubInfo{Club: c, Color: color, Players: counts[c]}
		}
		return map[string]interface{}{
			"clubs":     out,
			"positions": t.Distinct(metrics.ColPosition),
		}, nil
	})
}

// GetDataset reports how the season table was loaded.
// @Summary Dataset load summary
// @Tags meta
// @Produce json
// @Success 200 {object} dataset.LoadResult
// @Router /meta/dataset [get]
func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, cache.TTLMeta, func(s *snapshot) (interface{}, error) {
		return s.load, nil
	})
}
