package logging

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// responseWriterWrapper captures the status code and bytes written.
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriterWrapper) Write(data []byte) (int, error) {
	n, err := w.ResponseWriter.Write(data)
	w.bytesWritten += n
	return n, err
}

// Middleware logs HTTP requests with structured attributes. Health and
// metrics probes are skipped to keep the logs readable.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ww := &responseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(ww, r)
		duration := time.Since(start)

		requestID, ok := r.Context().Value(middleware.RequestIDKey).(string)
		if !ok || requestID == "" {
			requestID = "unknown"
		}

		Info("HTTP request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"status_code", ww.statusCode,
			"bytes_written", ww.bytesWritten,
			"duration_ms", duration.Milliseconds(),
		)
	})
}
