package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type requestObserver interface {
	ObserveRequest(handler string, status int, elapsed time.Duration)
}

// Metrics records request count and latency labelled by chi route pattern,
// so path parameters never explode label cardinality.
func Metrics(observer requestObserver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			pattern := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				pattern = rctx.RoutePattern()
			}
			observer.ObserveRequest(pattern, ww.statusCode, time.Since(start))
		})
	}
}
