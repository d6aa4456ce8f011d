package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func quietApp() *App {
	return &App{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// TestWatchState validates the publish/snapshot handoff between the reload
// loop and the HTTP server.
func TestWatchState(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	state := newWatchState()
	require.Nil(t, state.snapshot())

	// --- Act ---
	state.publish([]byte(`{"training":{"epoch":1}}`))

	// --- Assert ---
	require.JSONEq(t, `{"training":{"epoch":1}}`, string(state.snapshot()))
}

// TestHealthHandler validates the liveness endpoint.
func TestHealthHandler(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	a := quietApp()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	// --- Act ---
	a.healthHandler(rec, req)

	// --- Assert ---
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK\n", rec.Body.String())
}

// TestConfigEndpoint validates the /config responses before and after the
// first successful resolve.
func TestConfigEndpoint(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	state := newWatchState()
	mux := quietApp().configMux(state)

	// --- Act / Assert ---
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/config", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	state.publish([]byte(`{"loss":{"lpips":1}}`))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/config", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"loss":{"lpips":1}}`, rec.Body.String())
}
