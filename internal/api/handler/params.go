package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/josm18/EPL-2024-2025/internal/api/respond"
	"github.com/josm18/EPL-2024-2025/internal/dashboard"
	"github.com/josm18/EPL-2024-2025/internal/provider"
)

// badRequest is returned by view builders to produce a 400.
type badRequest struct {
	code    string
	message string
}

func (e *badRequest) Error() string { return e.message }

func invalid(code, format string, args ...interface{}) error {
	return &badRequest{code: code, message: fmt.Sprintf(format, args...)}
}

// serve answers from the cache when possible. Otherwise it calls build on
// the current snapshot, marshals the result and caches it under the
// snapshot generation, request path and query. A build that straddles a
// Swap lands under the old generation and is never served again.
func (h *Handler) serve(w http.ResponseWriter, r *http.Request, ttl time.Duration, build func(s *snapshot) (interface{}, error)) {
	s := h.data()
	key := cacheKey(s.gen, r)

	data, etag, hit, err := h.cache.GetOrBuild(key, ttl, func() ([]byte, error) {
		v, err := build(s)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	})
	if err != nil {
		var br *badRequest
		if errors.As(err, &br) {
			respond.WriteError(w, http.StatusBadRequest, br.code, br.message)
			return
		}
		h.logger.Error("Failed to build response", "path", r.URL.Path, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, respond.CodeInternal, "Failed to build response")
		return
	}
	respond.WriteCached(w, r, data, etag, ttl, hit)
}

func cacheKey(gen uint64, r *http.Request) string {
	return fmt.Sprintf("%d:%s?%s", gen, r.URL.Path, r.URL.Query().Encode())
}

// list reads a repeatable, comma-separated query parameter.
func list(r *http.Request, name string) []string {
	var out []string
	for _, raw := range r.URL.Query()[name] {
		for _, part := range strings.Split(raw, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// parseFilter reads club, position and min_minutes. Club names are
// canonicalized so short names like "Brighton" match.
func (h *Handler) parseFilter(r *http.Request) (dashboard.Filter, error) {
	f := dashboard.Filter{MinMinutes: h.cfg.DefaultMinMinutes}
	for _, c := range list(r, "club") {
		f.Clubs = append(f.Clubs, provider.CanonicalClub(c))
	}
	for _, p := range list(r, "position") {
		f.Positions = append(f.Positions, provider.CanonicalPosition(p))
	}
	if s := r.URL.Query().Get("min_minutes"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return f, invalid("INVALID_MIN_MINUTES", "min_minutes must be a non-negative number")
		}
		f.MinMinutes = v
	}
	return f, nil
}

// parseLimit reads an integer parameter within [1, upper].
func parseLimit(r *http.Request, name string, def, upper int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > upper {
		return 0, invalid("INVALID_LIMIT", "%s must be an integer between 1 and %d", name, upper)
	}
	return n, nil
}

// parseOrder reads order=asc|desc; desc is the default.
func parseOrder(r *http.Request) (ascending bool, err error) {
	switch strings.ToLower(r.URL.Query().Get("order")) {
	case "", "desc":
		return false, nil
	case "asc":
		return true, nil
	default:
		return false, invalid("INVALID_ORDER", "order must be 'asc' or 'desc'")
	}
}
