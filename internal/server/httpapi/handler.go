package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/authdemo/internal/common"
	"github.com/dmitrijs2005/authdemo/internal/logging"
	"github.com/dmitrijs2005/authdemo/internal/server/models"
	"github.com/dmitrijs2005/authdemo/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// SessionCookie names the cookie carrying the session token.
const SessionCookie = "session"

// UserService is the part of services.UserService the handlers need.
type UserService interface {
	Signup(ctx context.Context, email, password string) (*models.User, *models.Session, error)
	Signin(ctx context.Context, email, password string) (*models.User, *models.Session, error)
	Signout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, email string) ([]*models.User, error)
	UpdateEmail(ctx context.Context, id int64, email string) (*models.User, error)
	Delete(ctx context.Context, id int64) (*models.User, error)
}

type Handler struct {
	users UserService
	log   logging.Logger
}

func NewHandler(us UserService, l logging.Logger) *Handler {
	return &Handler{users: us, log: l.With("module", "httpapi")}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateRequest struct {
	Email string `json:"email"`
}

// RegisterRoutes mounts the auth routes on r. The collection route is the
// mount point itself, so r is expected to be mounted at the API prefix.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Post("/signin", h.signin)
	r.Post("/signout", h.signout)
	r.Get("/whoami", h.whoami)

	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	u, sess, err := h.users.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.setSession(w, sess)
	JSON(w, http.StatusCreated, u.View())
}

func (h *Handler) signin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	u, sess, err := h.users.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.setSession(w, sess)
	JSON(w, http.StatusOK, u.View())
}

func (h *Handler) signout(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Signout(r.Context(), sessionToken(r)); err != nil {
		h.fail(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	JSON(w, http.StatusOK, struct{}{})
}

// whoami answers 200 even when nobody is signed in; the body says so.
func (h *Handler) whoami(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.CurrentUser(r.Context(), sessionToken(r))
	if err != nil {
		if errors.Is(err, common.ErrNotAuthenticated) {
			Error(w, http.StatusOK, err.Error())
			return
		}
		h.fail(w, r, err)
		return
	}
	JSON(w, http.StatusOK, u.View())
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.users.List(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	views := make([]models.UserView, 0, len(list))
	for _, u := range list {
		views = append(views, u.View())
	}
	JSON(w, http.StatusOK, views)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	u, err := h.users.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	JSON(w, http.StatusOK, u.View())
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	var req updateRequest
	if err := decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := h.users.UpdateEmail(r.Context(), id, req.Email)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	JSON(w, http.StatusOK, u.View())
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	u, err := h.users.Delete(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	JSON(w, http.StatusOK, u.View())
}

// fail maps service errors onto status codes.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, common.ErrEmailInUse),
		errors.Is(err, common.ErrInvalidCredentials):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrUserNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrNotAuthenticated):
		Error(w, http.StatusUnauthorized, err.Error())
	default:
		h.log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		Error(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) setSession(w http.ResponseWriter, s *models.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    s.Token,
		Path:     "/",
		Expires:  s.Expires.UTC().Truncate(time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func sessionToken(r *http.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	return id, true
}
