package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog-api/internal/repository"
)

// CategoryStore is the slice of the category repository the handlers need.
type CategoryStore interface {
	ListAll(ctx context.Context) ([]repository.Category, error)
	GetByID(ctx context.Context, id uint64) (*repository.Category, error)
}

// CategoryHandler serves the read-only category endpoints.
type CategoryHandler struct {
	Categories CategoryStore
}

func NewCategoryHandler(categories CategoryStore) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

// List returns all categories ordered by name.
func (h *CategoryHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cats, err := h.Categories.ListAll(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to retrieve categories")
	}
	return success(c, http.StatusOK, "Categories retrieved successfully", cats)
}
