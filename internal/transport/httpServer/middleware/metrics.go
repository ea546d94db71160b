package middleware

import (
	"net/http"
	"strconv"
	"time"

	"eventsMap/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Metrics считает запросы и их длительность по шаблону маршрута,
// чтобы /events/{id} не плодил отдельную серию на каждый id.
func Metrics(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := routePattern(r)
		metrics.HttpRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		metrics.HttpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status(ww))).Inc()
	}

	return http.HandlerFunc(fn)
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return "unmatched"
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return "unmatched"
}
