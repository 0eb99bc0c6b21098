package users

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrijs2005/authdemo/internal/common"
	"github.com/dmitrijs2005/authdemo/internal/server/models"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1, byID: make(map[int64]*models.User)}
}

func sameEmail(a, b string) bool { return strings.EqualFold(a, b) }

// copyUser keeps callers from mutating stored records.
func copyUser(u *models.User) *models.User {
	c := *u
	c.PasswordHash = append([]byte(nil), u.PasswordHash...)
	return &c
}

func (r *MemoryRepository) emailTaken(email string, except int64) bool {
	for id, u := range r.byID {
		if id != except && sameEmail(u.Email, email) {
			return true
		}
	}
	return false
}

func (r *MemoryRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(u.Email, 0) {
		return nil, common.ErrEmailInUse
	}

	stored := copyUser(u)
	stored.ID = r.nextID
	r.nextID++
	r.byID[stored.ID] = stored

	return copyUser(stored), nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return copyUser(u), nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if sameEmail(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *MemoryRepository) List(ctx context.Context, email string) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*models.User, 0, len(r.byID))
	for _, u := range r.byID {
		if email != "" && !sameEmail(u.Email, email) {
			continue
		}
		res = append(res, copyUser(u))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (r *MemoryRepository) UpdateEmail(ctx context.Context, id int64, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if r.emailTaken(email, id) {
		return nil, common.ErrEmailInUse
	}
	u.Email = email
	return copyUser(u), nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	delete(r.byID, id)
	return u, nil
}
