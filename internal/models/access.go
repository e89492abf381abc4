package models

import "time"

// AccessRecord represents a single served request
type AccessRecord struct {
	ID         string        `json:"id"`
	Method     string        `json:"method"`
	Path       string        `json:"path"`
	Status     int           `json:"status"`
	Bytes      int64         `json:"bytes"`
	Duration   time.Duration `json:"duration"`
	RemoteAddr string        `json:"remote_addr"`
	UserAgent  string        `json:"user_agent,omitempty"`
	Time       time.Time     `json:"time"`
}
