// Package services contains the development server's business logic. This
// file implements UserService, which handles accounts and cookie sessions.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/authdemo/internal/common"
	"github.com/dmitrijs2005/authdemo/internal/server/config"
	"github.com/dmitrijs2005/authdemo/internal/server/models"
	"github.com/dmitrijs2005/authdemo/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/authdemo/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidInput is returned when email or password is empty.
var ErrInvalidInput = errors.New("email and password are required")

// UserService provides the operations behind the auth routes:
//   - Signup / Signin: verify credentials and start a session
//   - Signout / CurrentUser: end or resolve a session
//   - Get / List / UpdateEmail / Delete: plain account management
type UserService struct {
	users      users.Repository
	sessions   sessions.Repository
	sessionTTL time.Duration
	bcryptCost int
	now        func() time.Time
}

func NewUserService(u users.Repository, s sessions.Repository, cfg *config.Config) *UserService {
	return &UserService{
		users:      u,
		sessions:   s,
		sessionTTL: cfg.SessionTTL,
		bcryptCost: cfg.BcryptCost,
		now:        time.Now,
	}
}

// Signup creates a user and a session for it.
func (s *UserService) Signup(ctx context.Context, email, password string) (*models.User, *models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, nil, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.users.Create(ctx, &models.User{Email: email, PasswordHash: hash, CreatedAt: s.now()})
	if err != nil {
		return nil, nil, err
	}

	sess, err := s.startSession(ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}
	return u, sess, nil
}

// Signin checks the password and starts a session. Unknown emails and
// wrong passwords both yield common.ErrInvalidCredentials.
func (s *UserService) Signin(ctx context.Context, email, password string) (*models.User, *models.Session, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, nil, common.ErrInvalidCredentials
	}

	sess, err := s.startSession(ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}
	return u, sess, nil
}

func (s *UserService) Signout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// CurrentUser resolves a session token to its user.
func (s *UserService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrNotAuthenticated
	}
	sess, err := s.sessions.Find(ctx, token)
	if err != nil {
		return nil, common.ErrNotAuthenticated
	}
	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, common.ErrNotAuthenticated
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	return u, notFound(err)
}

func (s *UserService) List(ctx context.Context, email string) ([]*models.User, error) {
	return s.users.List(ctx, email)
}

func (s *UserService) UpdateEmail(ctx context.Context, id int64, email string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrInvalidInput
	}
	u, err := s.users.UpdateEmail(ctx, id, email)
	return u, notFound(err)
}

// Delete removes the user and every session it holds.
func (s *UserService) Delete(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.users.Delete(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if err := s.sessions.DeleteByUser(ctx, id); err != nil {
		return nil, fmt.Errorf("delete sessions: %w", err)
	}
	return u, nil
}

func (s *UserService) startSession(ctx context.Context, userID int64) (*models.Session, error) {
	sess, err := s.sessions.Create(ctx, userID, s.now().Add(s.sessionTTL))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

func notFound(err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return common.ErrUserNotFound
	}
	return err
}
