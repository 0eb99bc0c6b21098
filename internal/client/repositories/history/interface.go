// Package history keeps a local log of the requests the CLI has completed.
package history

import (
	"context"

	"github.com/dmitrijs2005/authdemo/internal/client/models"
)

type Repository interface {
	Add(ctx context.Context, r models.HistoryRecord) error
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]models.HistoryRecord, error)
	Clear(ctx context.Context) error
}
