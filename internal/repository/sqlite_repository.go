package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"static-server/internal/models"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrInvalidRecord is returned when a record is missing its ID
var ErrInvalidRecord = errors.New("access record has no id")

// SQLiteRepository implements AccessLogRepository using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite repository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := &SQLiteRepository{db: db}
	if err := repo.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return repo, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS access_log (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		method TEXT NOT NULL,
		path TEXT NOT NULL,
		status INTEGER NOT NULL,
		bytes INTEGER NOT NULL DEFAULT 0,
		duration_us INTEGER NOT NULL DEFAULT 0,
		remote_addr TEXT NOT NULL,
		user_agent TEXT,
		requested_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_access_log_status ON access_log(status);
	CREATE INDEX IF NOT EXISTS idx_access_log_requested_at ON access_log(requested_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// InsertRecord stores one access record
func (r *SQLiteRepository) InsertRecord(ctx context.Context, rec *models.AccessRecord) error {
	if rec.ID == "" {
		return ErrInvalidRecord
	}

	query := `
		INSERT INTO access_log (id, method, path, status, bytes, duration_us, remote_addr, user_agent, requested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if rec.Time.IsZero() {
		rec.Time = time.Now()
	}

	// Store NULL rather than an empty user agent
	var userAgent interface{}
	if rec.UserAgent != "" {
		userAgent = rec.UserAgent
	}

	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.Method,
		rec.Path,
		rec.Status,
		rec.Bytes,
		rec.Duration.Microseconds(),
		rec.RemoteAddr,
		userAgent,
		rec.Time.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert access record: %w", err)
	}

	return nil
}

// ListRecent returns up to limit records, newest first
func (r *SQLiteRepository) ListRecent(ctx context.Context, limit int) ([]*models.AccessRecord, error) {
	query := `
		SELECT id, method, path, status, bytes, duration_us, remote_addr, user_agent, requested_at
		FROM access_log
		ORDER BY seq DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query access log: %w", err)
	}
	defer rows.Close()

	var records []*models.AccessRecord
	for rows.Next() {
		var rec models.AccessRecord
		var userAgent sql.NullString
		var durationUS, requestedAt int64

		err := rows.Scan(
			&rec.ID,
			&rec.Method,
			&rec.Path,
			&rec.Status,
			&rec.Bytes,
			&durationUS,
			&rec.RemoteAddr,
			&userAgent,
			&requestedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan access record: %w", err)
		}

		if userAgent.Valid {
			rec.UserAgent = userAgent.String
		}
		rec.Duration = time.Duration(durationUS) * time.Microsecond
		rec.Time = time.Unix(0, requestedAt)

		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate access log: %w", err)
	}

	return records, nil
}

// CountByStatus returns how many records have the given status code
func (r *SQLiteRepository) CountByStatus(ctx context.Context, status int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM access_log WHERE status = ?", status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count access records: %w", err)
	}
	return count, nil
}
