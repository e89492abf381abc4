package repository

import (
	"context"
	"static-server/internal/models"
)

// AccessLogRepository defines the interface for access log persistence
type AccessLogRepository interface {
	InsertRecord(ctx context.Context, rec *models.AccessRecord) error
	ListRecent(ctx context.Context, limit int) ([]*models.AccessRecord, error)
	CountByStatus(ctx context.Context, status int) (int, error)
	Close() error
}
