// Package users stores the development server's user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/authdemo/internal/server/models"
)

type Repository interface {
	// Create assigns the next id and stores u. Emails are unique.
	Create(ctx context.Context, u *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// List returns users in id order, optionally only those with email.
	List(ctx context.Context, email string) ([]*models.User, error)
	UpdateEmail(ctx context.Context, id int64, email string) (*models.User, error)
	Delete(ctx context.Context, id int64) (*models.User, error)
}
