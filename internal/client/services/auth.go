// Package services contains the authdemo client's application services.
// This file defines AuthService, the controller behind the REPL: each
// method is one button of the demo page.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/authdemo/internal/client/client"
	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/client/repositories/history"
	"github.com/dmitrijs2005/authdemo/internal/client/state"
	"github.com/dmitrijs2005/authdemo/internal/logging"
	"github.com/google/uuid"
)

// Endpoints, relative to the configured base URL.
const (
	EndpointSignup  = "/signup"
	EndpointSignin  = "/signin"
	EndpointSignout = "/signout"
	EndpointWhoAmI  = "/whoami"
	EndpointUsers   = ""
)

// ApplicationError is a 2xx response whose body carries a truthy "error"
// member. Only CreateUser, SignIn and WhoAmI look for it, and only to decide
// whether to touch the session; the body is still the last response.
type ApplicationError struct {
	Message string
}

func (e *ApplicationError) Error() string { return e.Message }

// AuthService defines the actions of the auth demo.
//
// Contract:
//   - Every request action leaves exactly one of State.Response/State.Err
//     set when it returns.
//   - The returned error describes the failure for logging; the Store is
//     the source of truth for what the user sees.
//   - Actions read the form from the Store at call time.
//
// All methods are safe for concurrent use and honor ctx cancellation.
type AuthService interface {
	// Mount runs the startup WhoAmI probe. Only the first call does anything.
	Mount(ctx context.Context) error
	CreateUser(ctx context.Context) error
	SignIn(ctx context.Context) error
	SignOut(ctx context.Context) error
	GetUser(ctx context.Context) error
	GetAllUsers(ctx context.Context) error
	RemoveUser(ctx context.Context) error
	UpdateUser(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	// History returns up to limit completed requests, newest first.
	History(ctx context.Context, limit int) ([]models.HistoryRecord, error)
}

type authService struct {
	client  client.Client
	store   *state.Store
	history history.Repository
	log     logging.Logger
	now     func() time.Time

	mountOnce sync.Once
	mountErr  error
}

// NewAuthService constructs an AuthService. hist may be nil, in which case
// nothing is recorded and History returns an empty list.
func NewAuthService(c client.Client, store *state.Store, hist history.Repository, log logging.Logger) AuthService {
	return &authService{client: c, store: store, history: hist, log: log, now: time.Now}
}

// call describes one request and the session effects tied to its outcome.
// The effects are dispatched in the same batch as the outcome.
type call struct {
	action   string
	method   string
	endpoint string
	body     any

	onSuccess func(models.Payload) []state.Action
	onFailure []state.Action
}

// do is the shared request path: send, classify, record, dispatch.
func (s *authService) do(ctx context.Context, c call) (models.Payload, error) {
	s.store.Dispatch(state.RequestStarted{})

	started := s.now()
	resp, err := s.client.Do(ctx, c.method, c.endpoint, c.body)

	rec := models.HistoryRecord{
		ID:        uuid.NewString(),
		Action:    c.action,
		Method:    c.method,
		Endpoint:  c.endpoint,
		StartedAt: started,
		Duration:  s.now().Sub(started),
	}

	if err != nil {
		rec.StatusCode = client.StatusCode(err)
		rec.Error = err.Error()
		s.record(ctx, rec)

		s.store.Dispatch(append([]state.Action{state.RequestFailed{Message: err.Error()}}, c.onFailure...)...)
		return models.Payload{}, err
	}

	rec.StatusCode = resp.StatusCode
	s.record(ctx, rec)

	actions := []state.Action{state.RequestSucceeded{Payload: resp.Payload}}
	if c.onSuccess != nil {
		actions = append(actions, c.onSuccess(resp.Payload)...)
	}
	s.store.Dispatch(actions...)
	return resp.Payload, nil
}

func (s *authService) record(ctx context.Context, rec models.HistoryRecord) {
	if s.history == nil {
		return
	}
	if err := s.history.Add(context.WithoutCancel(ctx), rec); err != nil {
		s.log.Warn(ctx, "history not recorded", "action", rec.Action, "error", err)
	}
}

// establishUnlessError is the session rule shared by signup and signin: a
// truthy body without a truthy "error" becomes the current user.
func establishUnlessError(p models.Payload) []state.Action {
	if !p.Truthy() {
		return nil
	}
	if _, bad := p.ErrorField(); bad {
		return nil
	}
	return []state.Action{state.SessionEstablished{User: p.User()}}
}

// applicationError reports the body's "error" member as an error.
func applicationError(p models.Payload) error {
	if msg, bad := p.ErrorField(); bad {
		return &ApplicationError{Message: msg}
	}
	return nil
}

func (s *authService) credentials() models.Credentials {
	f := s.store.Snapshot().Form
	return models.Credentials{Email: f.Email, Password: f.Password}
}

func (s *authService) userEndpoint() string {
	return "/" + s.store.Snapshot().Form.TargetUserID
}

func (s *authService) Mount(ctx context.Context) error {
	s.mountOnce.Do(func() {
		s.log.Debug(ctx, "probing session on mount")
		s.mountErr = s.WhoAmI(ctx)
	})
	return s.mountErr
}

func (s *authService) CreateUser(ctx context.Context) error {
	p, err := s.do(ctx, call{
		action:    "createUser",
		method:    http.MethodPost,
		endpoint:  EndpointSignup,
		body:      s.credentials(),
		onSuccess: establishUnlessError,
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return applicationError(p)
}

// SignIn posts the credentials and, when the server accepts them, runs
// WhoAmI before returning. The probe is part of the operation: callers
// observe /signin then /whoami, never the other order.
func (s *authService) SignIn(ctx context.Context) error {
	p, err := s.do(ctx, call{
		action:    "signIn",
		method:    http.MethodPost,
		endpoint:  EndpointSignin,
		body:      s.credentials(),
		onSuccess: establishUnlessError,
	})
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	if !p.Truthy() {
		return nil
	}
	if err := applicationError(p); err != nil {
		return err
	}
	return s.WhoAmI(ctx)
}

// SignOut ends the session. The local session is cleared whatever the
// server answers.
func (s *authService) SignOut(ctx context.Context) error {
	cleared := []state.Action{state.SessionCleared{}}
	_, err := s.do(ctx, call{
		action:    "signOut",
		method:    http.MethodPost,
		endpoint:  EndpointSignout,
		onSuccess: func(models.Payload) []state.Action { return cleared },
		onFailure: cleared,
	})
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// GetUser, GetAllUsers, RemoveUser and UpdateUser display whatever a 2xx
// body contains, including {"error": ...}; they never touch the session.

func (s *authService) GetUser(ctx context.Context) error {
	_, err := s.do(ctx, call{action: "getUser", method: http.MethodGet, endpoint: s.userEndpoint()})
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	return nil
}

func (s *authService) GetAllUsers(ctx context.Context) error {
	_, err := s.do(ctx, call{action: "getAllUsers", method: http.MethodGet, endpoint: EndpointUsers})
	if err != nil {
		return fmt.Errorf("get all users: %w", err)
	}
	return nil
}

func (s *authService) RemoveUser(ctx context.Context) error {
	_, err := s.do(ctx, call{action: "removeUser", method: http.MethodDelete, endpoint: s.userEndpoint()})
	if err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	return nil
}

func (s *authService) UpdateUser(ctx context.Context) error {
	_, err := s.do(ctx, call{
		action:   "updateUser",
		method:   http.MethodPatch,
		endpoint: s.userEndpoint(),
		body:     models.EmailUpdate{Email: s.store.Snapshot().Form.Email},
	})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// WhoAmI refreshes the session from the server: a truthy body without a
// truthy "error" is the current user; anything else, failures included,
// means anonymous.
func (s *authService) WhoAmI(ctx context.Context) error {
	cleared := []state.Action{state.SessionCleared{}}
	p, err := s.do(ctx, call{
		action:   "whoAmI",
		method:   http.MethodGet,
		endpoint: EndpointWhoAmI,
		onSuccess: func(p models.Payload) []state.Action {
			if established := establishUnlessError(p); established != nil {
				return established
			}
			return cleared
		},
		onFailure: cleared,
	})
	if err != nil {
		return fmt.Errorf("who am i: %w", err)
	}
	return applicationError(p)
}

func (s *authService) History(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	if s.history == nil {
		return []models.HistoryRecord{}, nil
	}
	records, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return records, nil
}

// IsApplicationError reports whether err carries a body-level "error".
func IsApplicationError(err error) bool {
	var ae *ApplicationError
	return errors.As(err, &ae)
}
