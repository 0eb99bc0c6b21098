package history

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, rec models.HistoryRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO history (id, action, method, endpoint, status_code, error, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Action, rec.Method, rec.Endpoint, rec.StatusCode, rec.Error,
		rec.StartedAt.UnixNano(), rec.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to add history[%s]: %w", rec.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	if limit <= 0 {
		return []models.HistoryRecord{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, action, method, endpoint, status_code, error, started_at, duration_ms
		FROM history ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	result := make([]models.HistoryRecord, 0, limit)
	for rows.Next() {
		var (
			rec        models.HistoryRecord
			startedAt  int64
			durationMs int64
		)
		if err := rows.Scan(&rec.ID, &rec.Action, &rec.Method, &rec.Endpoint, &rec.StatusCode, &rec.Error, &startedAt, &durationMs); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		rec.StartedAt = time.Unix(0, startedAt).UTC()
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		result = append(result, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM history`)
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
