package middleware

import (
	"context"
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"signup-web/pkg/logger"
)

// ContextKey represents keys used in request context
type ContextKey string

const (
	// RequestIDContextKey is the key for request ID in context
	RequestIDContextKey ContextKey = "request_id"
	// SessionContextKey is the key for the browser session in context
	SessionContextKey ContextKey = "session"
)

// RequestIDHeader carries the request ID on responses, and on requests when
// a proxy already assigned one
const RequestIDHeader = "X-Request-ID"

// RequestID creates a middleware that adds a unique request ID to each request
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request ID stored by RequestID
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDContextKey).(string)
	return id
}

// AccessLog logs one line per request once it has been served
func AccessLog(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			entry := log.WithFields(map[string]interface{}{
				"request_id": GetRequestID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     status,
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start),
				"remote_ip":  r.RemoteAddr,
			})
			switch {
			case status >= http.StatusInternalServerError:
				entry.Error("Request failed")
			case status >= http.StatusBadRequest:
				entry.Warn("Request rejected")
			default:
				entry.Info("Request served")
			}
		})
	}
}
