// Package sessions stores the development server's cookie sessions.
package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/authdemo/internal/common"
	"github.com/dmitrijs2005/authdemo/internal/server/models"
	"github.com/google/uuid"
)

type Repository interface {
	// Create starts a session for userID that ends at expires.
	Create(ctx context.Context, userID int64, expires time.Time) (*models.Session, error)
	// Find returns the session for token. Expired sessions are not found.
	Find(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID int64) error
}

type MemoryRepository struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	now      func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{sessions: make(map[string]models.Session), now: time.Now}
}

func (r *MemoryRepository) Create(ctx context.Context, userID int64, expires time.Time) (*models.Session, error) {
	s := models.Session{Token: uuid.NewString(), UserID: userID, Expires: expires}

	r.mu.Lock()
	r.sessions[s.Token] = s
	r.mu.Unlock()

	return &s, nil
}

func (r *MemoryRepository) Find(ctx context.Context, token string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if !ok {
		return nil, common.ErrNotFound
	}
	if !s.Expires.After(r.now()) {
		delete(r.sessions, token)
		return nil, common.ErrNotFound
	}
	return &s, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) DeleteByUser(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for token, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, token)
		}
	}
	return nil
}
