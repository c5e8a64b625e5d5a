package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"videotube-server/internal/metrics"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	registry := prometheus.NewRegistry()

	router := chi.NewRouter()
	router.Use(metrics.Middleware(registry))
	router.Get("/videos/{videoId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	router.Method(http.MethodGet, "/metrics", metrics.Handler(registry))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/videos/5a8c1f5e-3b7d-4f0a-9d7e-2c1b0a9f8e7d", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_request_duration_seconds_count{method="GET",path="/videos/{videoId}",status="404"} 1`)
	assert.NotContains(t, string(body), "5a8c1f5e")
}

func TestMiddleware_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.Middleware(prometheus.NewRegistry())
		metrics.Middleware(prometheus.NewRegistry())
	})
}
