// Package middleware holds Connect interceptors and HTTP middleware shared
// by the transports.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// It logs the procedure name, duration, and any error codes/messages.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			duration := time.Since(start).Milliseconds()
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal {
					logger.Warn("RPC error",
						"procedure", procedure,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"duration_ms", duration,
					)
				} else {
					logger.Error("RPC error",
						"procedure", procedure,
						"error", err,
						"duration_ms", duration,
					)
				}
			} else {
				logger.Info("RPC ok",
					"procedure", procedure,
					"duration_ms", duration,
				)
			}

			return resp, err
		}
	}
}

// RequestLogger logs every HTTP request with its status and duration.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("Request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"remote_addr", r.RemoteAddr,
				"request_id", chimw.GetReqID(r.Context()),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
