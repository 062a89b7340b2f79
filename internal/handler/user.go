package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog-api/internal/config"
	"github.com/iliyamo/movie-catalog-api/internal/repository"
	"github.com/iliyamo/movie-catalog-api/internal/utils"
	"github.com/iliyamo/movie-catalog-api/internal/validator"
)

// UserStore is the slice of the user repository the handlers need.
type UserStore interface {
	Create(ctx context.Context, username, email, password string, cost int) (*repository.User, error)
	GetByID(ctx context.Context, id uint64) (*repository.User, error)
	GetByEmail(ctx context.Context, email string) (*repository.User, error)
	ListAll(ctx context.Context) ([]repository.User, error)
	ListWithWatched(ctx context.Context) ([]repository.UserWithWatched, error)
}

// UserHandler bundles dependencies for the user endpoints.
type UserHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewUserHandler(cfg config.Config, users UserStore) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users}
}

// Create registers a new user and returns it together with a signed
// token. Email uniqueness is checked before the insert so a duplicate is
// a clean 409 instead of a constraint error.
func (h *UserHandler) Create(c echo.Context) error {
	var p validator.UserPayload
	if err := c.Bind(&p); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if errs := p.Validate(); len(errs) > 0 {
		return failValidation(c, errs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByEmail(ctx, p.Email); err == nil {
		return fail(c, http.StatusConflict, "User already exists with this email")
	} else if err != repository.ErrUserNotFound {
		return fail(c, http.StatusInternalServerError, "Failed to create user")
	}

	user, err := h.Users.Create(ctx, p.Username, p.Email, p.Password, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return fail(c, http.StatusConflict, "User already exists with this email")
		}
		return fail(c, http.StatusInternalServerError, "Failed to create user")
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, user.ID, user.Email, h.Cfg.TokenTTLMin)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to issue token")
	}

	return success(c, http.StatusCreated, "User created successfully", echo.Map{
		"user":  user,
		"token": token.Token,
	})
}

// List returns every user's public fields, newest first.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.ListAll(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to retrieve users")
	}
	return success(c, http.StatusOK, "Users retrieved successfully", users)
}

// ListWithWatched returns every user with their watched movies nested.
// Users who have watched nothing are included with an empty list.
func (h *UserHandler) ListWithWatched(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.ListWithWatched(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to retrieve users with watched movies")
	}
	return success(c, http.StatusOK, "Users with watched movies retrieved successfully", users)
}
