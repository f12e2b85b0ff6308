package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josm18/EPL-2024-2025/internal/cache"
)

func TestWriteCached(t *testing.T) {
	body := []byte(`{"ok":true}`)
	etag := cache.ComputeETag(body)

	rec := httptest.NewRecorder()
	WriteCached(rec, httptest.NewRequest(http.MethodGet, "/", nil), body, etag, time.Hour, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, etag, rec.Header().Get("ETag"))
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, "public, max-age=3600, stale-while-revalidate=1800", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, string(body), rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	WriteCached(rec, req, body, etag, time.Hour, true)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestWriteErrorDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErrorDetail(rec, http.StatusBadRequest, CodeBadRequest, "bad min_minutes", "must be >= 0")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, CodeBadRequest, resp.Error.Code)
	assert.Equal(t, "bad min_minutes", resp.Error.Message)
	assert.Equal(t, "must be >= 0", resp.Error.Detail)
	assert.Contains(t, rec.Header().Get("Cache-Control"), "no-store")
}
