package service

import (
	"context"
	"fmt"
	"log"
	"static-server/internal/metrics"
	"static-server/internal/models"
	"static-server/internal/repository"

	"github.com/google/uuid"
)

// AccessLogService counts served requests and optionally persists them
type AccessLogService struct {
	repo    repository.AccessLogRepository
	metrics *metrics.Metrics
}

// NewAccessLogService creates a new access log service. repo may be nil,
// in which case records are only counted.
func NewAccessLogService(repo repository.AccessLogRepository, metrics *metrics.Metrics) *AccessLogService {
	return &AccessLogService{
		repo:    repo,
		metrics: metrics,
	}
}

// Record counts the request and stores it when persistence is enabled
func (s *AccessLogService) Record(ctx context.Context, rec *models.AccessRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	s.metrics.ObserveResponse(rec.Status, rec.Bytes)

	if s.repo == nil {
		return nil
	}

	if err := s.repo.InsertRecord(ctx, rec); err != nil {
		log.Printf("request_id=%s: failed to persist access record: %v", rec.ID, err)
		return fmt.Errorf("failed to record access: %w", err)
	}

	return nil
}

// Recent returns the newest persisted records, or nil when persistence is off
func (s *AccessLogService) Recent(ctx context.Context, limit int) ([]*models.AccessRecord, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.ListRecent(ctx, limit)
}

// CountByStatus returns how many persisted records have status, or 0 when
// persistence is off
func (s *AccessLogService) CountByStatus(ctx context.Context, status int) (int, error) {
	if s.repo == nil {
		return 0, nil
	}
	return s.repo.CountByStatus(ctx, status)
}

// TotalRequests returns the number of requests counted since start
func (s *AccessLogService) TotalRequests() int64 {
	return s.metrics.TotalRequests()
}

// Snapshot returns the current request counters
func (s *AccessLogService) Snapshot() map[string]int64 {
	return s.metrics.GetSnapshot()
}
