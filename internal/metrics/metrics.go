package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func newRequestDuration() *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "http",
		Name:      "request_duration_seconds",
		Help:      "A histogram of duration, in seconds, handling HTTP requests.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 15),
	}, []string{"method", "path", "status"})
}

// Middleware регистрирует метрики в promRegistry и возвращает middleware,
// который пишет request_duration_seconds на каждый запрос.
//
// В реестр попадают:
//   - стандартные метрики процесса
//   - стандартные метрики go runtime
//   - request_duration_seconds
//
// path берется из шаблона маршрута chi, чтобы UUID в пути не раздували кардинальность.
func Middleware(promRegistry prometheus.Registerer) func(http.Handler) http.Handler {
	requestDuration := newRequestDuration()
	promRegistry.MustRegister(requestDuration)
	promRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promRegistry.MustRegister(collectors.NewGoCollector())

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			requestDuration.With(prometheus.Labels{
				"method": r.Method,
				"path":   routePattern(r),
				"status": strconv.Itoa(status),
			}).Observe(time.Since(start).Seconds())
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// Handler : GET /metrics из promRegistry
func Handler(promRegistry *prometheus.Registry) http.Handler {
	return promhttp.InstrumentMetricHandler(
		promRegistry,
		promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}),
	)
}
