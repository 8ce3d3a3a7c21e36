package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h http.Handler) (int, Report) {
	t.Helper()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, Path, nil))

	var report Report
	require.NoError(t, json.NewDecoder(w.Body).Decode(&report))
	return w.Code, report
}

func TestHandler_NoChecks(t *testing.T) {
	code, report := serve(t, NewHandler())

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", report.Status)
}

func TestHandler_FailingCheck(t *testing.T) {
	h := NewHandler()
	h.Add("discord", func(context.Context) error { return nil })
	h.Add("redis", func(context.Context) error { return errors.New("connection refused") })

	code, report := serve(t, h)

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unavailable", report.Status)
	assert.Equal(t, map[string]string{"discord": "ok", "redis": "connection refused"}, report.Checks)
}

func TestNewServer_MountsPath(t *testing.T) {
	srv := NewServer(":0", NewHandler())

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/other", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
