package app

import (
	"net/http"
	"time"

	"github.com/klabast/wb-services/transit-dashboard/internal/logx"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

// logRequests logs one line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		s.log.Info("request",
			logx.String("method", r.Method),
			logx.String("path", r.URL.Path),
			logx.Int("status", rec.status),
			logx.Int("bytes", rec.bytes),
			logx.Duration("took", time.Since(start)))
	})
}

// limit rejects requests over the configured rate with 429.
func (s *Server) limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.currentLimiter().Allow() {
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusTooManyRequests, apiError{
				Status:    http.StatusTooManyRequests,
				Message:   "rate limit exceeded",
				Retryable: true,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// guard wraps write endpoints: auth first, then the rate limit.
func (s *Server) guard(h http.HandlerFunc) http.Handler {
	return s.auth.Require(s.limit(h))
}
