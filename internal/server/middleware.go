package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rewired-gh/launchdash/internal/logger"
)

// RequestIDHeader carries the per-request identifier
const RequestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withRequestID tags every response with a request ID and logs the request.
// An incoming ID that parses as a UUID is kept.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.Debug("request_id=%s method=%s path=%s query=%q status=%d duration=%v",
			id, r.Method, r.URL.Path, r.URL.RawQuery, rec.status, time.Since(start))
	})
}
