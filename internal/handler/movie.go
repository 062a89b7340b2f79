package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog-api/internal/queue"
	"github.com/iliyamo/movie-catalog-api/internal/repository"
	"github.com/iliyamo/movie-catalog-api/internal/validator"
)

// MovieStore is the slice of the movie repository the handlers need.
type MovieStore interface {
	Create(ctx context.Context, in repository.NewMovie) (*repository.Movie, error)
	GetByID(ctx context.Context, id uint64) (*repository.Movie, error)
	List(ctx context.Context, q repository.MovieListQuery) ([]repository.Movie, int64, error)
	ListNovelties(ctx context.Context, now time.Time) ([]repository.Movie, error)
	MarkWatched(ctx context.Context, userID, movieID uint64) (bool, error)
}

// UserFinder is the part of the user repository mark-as-watched needs for
// its existence pre-check.
type UserFinder interface {
	GetByID(ctx context.Context, id uint64) (*repository.User, error)
}

// WatchedPublisher pushes a movie.watched event to the broker after a
// successful mark. Publishing is fire-and-forget; a nil publisher disables
// it entirely.
type WatchedPublisher func(ctx context.Context, ev queue.MovieWatchedEvent) error

// MovieHandler bundles dependencies for the movie endpoints.
type MovieHandler struct {
	Movies         MovieStore
	Categories     CategoryStore
	Users          UserFinder
	PublishWatched WatchedPublisher
}

func NewMovieHandler(movies MovieStore, categories CategoryStore, users UserFinder) *MovieHandler {
	return &MovieHandler{Movies: movies, Categories: categories, Users: users}
}

// Pagination is the metadata block returned alongside each movie page.
type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// newPagination derives the metadata for a page. A page past the end is
// not an error; it simply has no next page.
func newPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// Create inserts a new movie. The referenced category is checked first so
// a missing category is a clean 404 instead of a constraint error.
func (h *MovieHandler) Create(c echo.Context) error {
	if c.Request().ContentLength == 0 {
		return fail(c, http.StatusBadRequest, "Request body is empty. Make sure to set Content-Type: application/json")
	}
	var p validator.MoviePayload
	if err := c.Bind(&p); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if errs := p.Validate(); len(errs) > 0 {
		return failValidation(c, errs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Categories.GetByID(ctx, uint64(p.CategoryID)); err != nil {
		if err == repository.ErrCategoryNotFound {
			return fail(c, http.StatusNotFound, fmt.Sprintf("Category with ID %d not found", p.CategoryID))
		}
		return fail(c, http.StatusInternalServerError, "Failed to create movie")
	}

	movie, err := h.Movies.Create(ctx, repository.NewMovie{
		Title:       p.Title,
		Description: p.Description,
		ReleaseDate: p.ReleaseDate,
		CategoryID:  uint64(p.CategoryID),
	})
	if err != nil {
		if err == repository.ErrCategoryNotFound {
			return fail(c, http.StatusNotFound, fmt.Sprintf("Category with ID %d not found", p.CategoryID))
		}
		return fail(c, http.StatusInternalServerError, "Failed to create movie")
	}
	return success(c, http.StatusCreated, "Movie created successfully", movie)
}

// List returns a filtered, paginated page of movies ordered by release
// date descending.
func (h *MovieHandler) List(c echo.Context) error {
	q := repository.MovieListQuery{
		Title:    strings.TrimSpace(c.QueryParam("title")),
		Category: strings.TrimSpace(c.QueryParam("category")),
	}
	q.Page, _ = strconv.Atoi(c.QueryParam("page"))
	q.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	q.Normalize()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movies, total, err := h.Movies.List(ctx, q)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to retrieve movies")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":     "success",
		"message":    "Movies retrieved successfully",
		"data":       movies,
		"pagination": newPagination(q.Page, q.Limit, total),
		"filters_applied": echo.Map{
			"title":    nilIfEmpty(q.Title),
			"category": nilIfEmpty(q.Category),
			"page":     q.Page,
			"limit":    q.Limit,
		},
		"count": len(movies),
	})
}

// Novelties returns every movie released within the last three weeks.
// One timestamp drives both the query and the metadata so the reported
// cutoff always matches the one the store filtered on.
func (h *MovieHandler) Novelties(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	movies, err := h.Movies.ListNovelties(ctx, now)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to retrieve novelties")
	}
	cutoff := repository.NoveltyCutoff(now)
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Movie novelties retrieved successfully",
		"data":    movies,
		"metadata": echo.Map{
			"criteria": fmt.Sprintf("Movies released after %s", cutoff),
			"cutoff":   cutoff,
			"count":    len(movies),
		},
	})
}

// MarkWatched records that a user watched a movie. Movie and user are
// checked first so missing references are clean 404s; a duplicate pair is
// an expected outcome reported as 409, never a raw store error.
func (h *MovieHandler) MarkWatched(c echo.Context) error {
	movieID, err := strconv.ParseUint(c.Param("movieId"), 10, 64)
	if err != nil || movieID == 0 {
		return fail(c, http.StatusBadRequest, "Invalid movie ID")
	}
	var p validator.WatchedPayload
	if err := c.Bind(&p); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if errs := p.Validate(); len(errs) > 0 {
		return failValidation(c, errs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movie, err := h.Movies.GetByID(ctx, movieID)
	if err != nil {
		if err == repository.ErrMovieNotFound {
			return fail(c, http.StatusNotFound, fmt.Sprintf("Movie with ID %d not found", movieID))
		}
		return fail(c, http.StatusInternalServerError, "Failed to mark movie as watched")
	}
	user, err := h.Users.GetByID(ctx, uint64(p.UserID))
	if err != nil {
		if err == repository.ErrUserNotFound {
			return fail(c, http.StatusNotFound, fmt.Sprintf("User with ID %d not found", p.UserID))
		}
		return fail(c, http.StatusInternalServerError, "Failed to mark movie as watched")
	}

	created, err := h.Movies.MarkWatched(ctx, user.ID, movie.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to mark movie as watched")
	}
	if !created {
		return fail(c, http.StatusConflict, "Movie already marked as watched by this user")
	}

	watchedAt := time.Now().UTC()
	if h.PublishWatched != nil {
		ev := queue.MovieWatchedEvent{
			UserID:     user.ID,
			Username:   user.Username,
			MovieID:    movie.ID,
			MovieTitle: movie.Title,
			Category:   movie.CategoryName,
			WatchedAt:  watchedAt.Format(time.RFC3339),
		}
		go func() { _ = h.PublishWatched(context.Background(), ev) }()
	}

	return success(c, http.StatusOK, "Movie marked as watched successfully", echo.Map{
		"user":       echo.Map{"id": user.ID, "username": user.Username},
		"movie":      echo.Map{"id": movie.ID, "title": movie.Title, "category": movie.CategoryName},
		"watched_at": watchedAt.Format(time.RFC3339),
	})
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
