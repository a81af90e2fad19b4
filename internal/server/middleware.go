package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"

	"readiness-service/internal/common/metrics"
)

// requestLogger logs one structured line per request with latency and status.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.deps.Log.Info("request handled", map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"durationMs": time.Since(start).Milliseconds(),
			"requestId":  middleware.GetReqID(r.Context()),
		})
	})
}

// requestMetrics records the duration histogram and opens a request span.
func (s *Server) requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		ctx := r.Context()
		if s.deps.Tracing != nil {
			spanCtx, span := s.deps.Tracing.StartSpan(ctx, "http "+r.Method+" "+r.URL.Path,
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			)
			ctx = spanCtx
			defer span.End()
		}

		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.RequestDuration.
			WithLabelValues(r.URL.Path, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
