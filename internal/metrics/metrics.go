package metrics

import (
	"sync"
)

// Metrics tracks served request counters
type Metrics struct {
	mu sync.RWMutex

	totalRequests int64
	success       int64
	redirects     int64
	clientErrors  int64
	serverErrors  int64
	bytesServed   int64
}

// NewMetrics creates a new metrics instance
func NewMetrics() *Metrics {
	return &Metrics{}
}

// ObserveResponse counts one response with its status code and body size
func (m *Metrics) ObserveResponse(status int, bytes int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalRequests++
	m.bytesServed += bytes
	switch {
	case status >= 500:
		m.serverErrors++
	case status >= 400:
		m.clientErrors++
	case status >= 300:
		m.redirects++
	case status >= 200:
		m.success++
	}
}

// TotalRequests returns the number of observed responses
func (m *Metrics) TotalRequests() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalRequests
}

// GetSnapshot returns a snapshot of all metrics
func (m *Metrics) GetSnapshot() map[string]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]int64{
		"total_requests": m.totalRequests,
		"status_2xx":     m.success,
		"status_3xx":     m.redirects,
		"status_4xx":     m.clientErrors,
		"status_5xx":     m.serverErrors,
		"bytes_served":   m.bytesServed,
	}
}
