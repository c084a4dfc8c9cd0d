package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yaklabco/gotexlint/internal/logging"
)

// requestLogger logs each request once it completes and attaches the logger
// to the request context.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			ctx, reqLogger := logging.With(logging.WithLogger(r.Context(), logger),
				logging.FieldRequestID, middleware.GetReqID(r.Context()))
			next.ServeHTTP(ww, r.WithContext(ctx))

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			reqLogger.Info("request",
				logging.FieldMethod, r.Method,
				logging.FieldRoute, route,
				logging.FieldStatus, status,
				logging.FieldBytes, ww.BytesWritten(),
				logging.FieldDuration, time.Since(start),
			)
		})
	}
}
