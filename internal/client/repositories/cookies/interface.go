// Package cookies persists the HTTP cookies the auth API sets, so that a
// session survives restarts of the CLI the way it survives a page reload.
package cookies

import (
	"context"
	"time"

	"github.com/dmitrijs2005/authdemo/internal/client/models"
)

type Repository interface {
	// Upsert stores c, replacing any cookie with the same host, name and path.
	Upsert(ctx context.Context, c models.StoredCookie) error
	Delete(ctx context.Context, host, name, path string) error
	List(ctx context.Context) ([]models.StoredCookie, error)
	// DeleteExpired removes cookies whose expiry is at or before now and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	// Clear removes every stored cookie.
	Clear(ctx context.Context) error
}

// Batcher is implemented by repositories that can apply several writes
// all-or-nothing. fn receives a repository bound to the batch.
type Batcher interface {
	Batch(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}
