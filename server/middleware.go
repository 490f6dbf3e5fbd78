package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pillsync/pillsync-api/config"
	"github.com/pillsync/pillsync-api/handlers"
	"github.com/pillsync/pillsync-api/logging"
)

// RealIPMiddleware extracts the real IP from the X-Forwarded-For header.
func RealIPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			// Take the first IP from the comma-separated list
			if idx := strings.Index(xff, ","); idx != -1 {
				xff = xff[:idx]
			}
			r.RemoteAddr = strings.TrimSpace(xff)
		}
		next.ServeHTTP(w, r)
	})
}

// RequestSizeMiddleware rejects oversized request bodies before any handler
// reads them, and caps reads for requests without a Content-Length.
func RequestSizeMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if contentLength := r.Header.Get("Content-Length"); contentLength != "" {
				if length, err := strconv.ParseInt(contentLength, 10, 64); err == nil && length > cfg.MaxRequestBody {
					logging.Warn("Request body too large",
						"content_length", length,
						"max_allowed", cfg.MaxRequestBody,
						"remote_addr", r.RemoteAddr)

					handlers.RespondWithError(w, http.StatusRequestEntityTooLarge,
						"Request body too large", map[string]int64{"max_bytes": cfg.MaxRequestBody})
					return
				}
			}

			r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxRequestBody)
			next.ServeHTTP(w, r)
		})
	}
}
