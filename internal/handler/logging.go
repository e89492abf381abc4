package handler

import (
	"context"
	"log"
	"net/http"
	"static-server/internal/models"
	"time"
)

// statusRecorder captures the status code and body size of a response
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// LogRequests logs each request and hands an access record to recorder
func LogRequests(next http.Handler, recorder Recorder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(sr, r)

		if sr.status == 0 {
			sr.status = http.StatusOK
		}
		elapsed := time.Since(start)
		log.Printf("%s %s %d %dB %s", r.Method, r.URL.Path, sr.status, sr.bytes, elapsed)

		if recorder == nil {
			return
		}
		rec := &models.AccessRecord{
			Method:     r.Method,
			Path:       r.URL.Path,
			Status:     sr.status,
			Bytes:      sr.bytes,
			Duration:   elapsed,
			RemoteAddr: r.RemoteAddr,
			UserAgent:  r.UserAgent(),
			Time:       start,
		}
		// The response is already sent; a client hanging up must not drop the record.
		_ = recorder.Record(context.WithoutCancel(r.Context()), rec)
	})
}
