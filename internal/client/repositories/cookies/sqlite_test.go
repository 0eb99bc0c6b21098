package cookies

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/authdemo/internal/client/client"
	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sessionCookie(value string) models.StoredCookie {
	return models.StoredCookie{
		Host:     "api.example.com",
		Name:     "session",
		Path:     "/",
		Value:    value,
		HttpOnly: true,
		Secure:   true,
	}
}

func TestUpsert_InsertThenList(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	c := sessionCookie("abc")
	c.Expires = time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, r.Upsert(ctx, c))

	got, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, c, got[0])
}

func TestUpsert_OverwritesValue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, sessionCookie("old")))
	require.NoError(t, r.Upsert(ctx, sessionCookie("new")))

	got, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Value)
	assert.True(t, got[0].Expires.IsZero(), "session cookie keeps a zero expiry")
}

func TestDelete_RemovesOnlyMatchingCookie(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	other := sessionCookie("x")
	other.Name = "theme"
	require.NoError(t, r.Upsert(ctx, sessionCookie("abc")))
	require.NoError(t, r.Upsert(ctx, other))

	require.NoError(t, r.Delete(ctx, "api.example.com", "session", "/"))
	require.NoError(t, r.Delete(ctx, "api.example.com", "session", "/"), "delete is idempotent")

	got, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "theme", got[0].Name)
}

func TestDeleteExpired(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	stale := sessionCookie("stale")
	stale.Name = "stale"
	stale.Expires = now.Add(-time.Minute)

	fresh := sessionCookie("fresh")
	fresh.Name = "fresh"
	fresh.Expires = now.Add(time.Hour)

	require.NoError(t, r.Upsert(ctx, stale))
	require.NoError(t, r.Upsert(ctx, fresh))
	require.NoError(t, r.Upsert(ctx, sessionCookie("forever")))

	n, err := r.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, sessionCookie("abc")))
	require.NoError(t, r.Clear(ctx))

	got, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestErrorsAreWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := NewSQLiteRepository(db)
	ctx := context.Background()
	boom := errors.New("boom")

	mock.ExpectExec(`INSERT INTO cookies`).WillReturnError(boom)
	err = r.Upsert(ctx, sessionCookie("v"))
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "failed to upsert cookie[session]")

	mock.ExpectExec(`DELETE FROM cookies WHERE host`).WillReturnError(boom)
	require.ErrorContains(t, r.Delete(ctx, "h", "session", "/"), "failed to delete cookie[session]")

	mock.ExpectQuery(`SELECT host, name, path`).WillReturnError(boom)
	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list cookies")

	mock.ExpectExec(`DELETE FROM cookies WHERE expires`).WillReturnError(boom)
	_, err = r.DeleteExpired(ctx, time.Now())
	require.ErrorContains(t, err, "failed to delete expired cookies")

	mock.ExpectExec(`DELETE FROM cookies`).WillReturnError(boom)
	require.ErrorContains(t, r.Clear(ctx), "failed to clear cookies")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBatch_CommitsAllWrites(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	err := r.Batch(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.Upsert(ctx, sessionCookie("abc")); err != nil {
			return err
		}
		c := sessionCookie("x")
		c.Name = "csrf"
		return repo.Upsert(ctx, c)
	})
	require.NoError(t, err)

	got, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestBatch_RollsBackOnError(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	require.NoError(t, r.Upsert(ctx, sessionCookie("old")))

	boom := errors.New("boom")
	err := r.Batch(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.Upsert(ctx, sessionCookie("new")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "old", got[0].Value)
}

func TestBatch_UsesTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO cookies`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = NewSQLiteRepository(db).Batch(context.Background(), func(ctx context.Context, repo Repository) error {
		return repo.Upsert(ctx, sessionCookie("v"))
	})
	require.ErrorContains(t, err, "failed to upsert cookie[session]")
	require.NoError(t, mock.ExpectationsWereMet())
}
