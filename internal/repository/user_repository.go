package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/movie-catalog-api/internal/utils"
)

// User mirrors the `users` table. PasswordHash never leaves the process:
// the json tag hides it and the public read paths do not select it.
type User struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// WatchedMovie is one entry in a user's watched list, joined with the
// movie title and category name.
type WatchedMovie struct {
	MovieID   uint64    `json:"movie_id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	WatchedAt time.Time `json:"watched_at"`
}

// UserWithWatched aggregates a user with every movie they have marked as
// watched. Users who have watched nothing appear with an empty list.
type UserWithWatched struct {
	UserID        uint64         `json:"user_id"`
	Username      string         `json:"username"`
	Email         string         `json:"email"`
	CreatedAt     time.Time      `json:"created_at"`
	WatchedCount  int            `json:"watched_count"`
	WatchedMovies []WatchedMovie `json:"watched_movies"`
}

// UserRepo encapsulates all database queries related to users.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the provided DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create hashes the password and inserts a new user. The caller pre-checks
// email uniqueness via GetByEmail; if a concurrent writer still wins the
// race, the store's unique constraint surfaces as ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, username, email, password string, cost int) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return nil, err
	}
	const q = `INSERT INTO users (username, email, password) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, username, email, hash)
	if err != nil {
		if isMySQLErr(err, mysqlErrDupEntry) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a user's public fields by id. Returns ErrUserNotFound
// when absent.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*User, error) {
	const q = `SELECT id, username, email, created_at FROM users WHERE id = ?`
	var u User
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail fetches the full user record including the password hash.
// Used for the uniqueness pre-check on registration. Returns
// ErrUserNotFound when absent.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `SELECT id, username, email, password, created_at FROM users WHERE email = ? LIMIT 1`
	var u User
	if err := r.db.QueryRowContext(ctx, q, email).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ListAll returns every user's public fields ordered by creation time
// descending.
func (r *UserRepo) ListAll(ctx context.Context) ([]User, error) {
	const q = `SELECT id, username, email, created_at FROM users ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListWithWatched returns every user together with the movies they marked
// as watched. The LEFT JOIN keeps users with zero watched movies in the
// result; their list is an empty slice. Rows are grouped in Go rather than
// with GROUP_CONCAT so no JSON is assembled inside the database.
func (r *UserRepo) ListWithWatched(ctx context.Context) ([]UserWithWatched, error) {
	const q = `SELECT
		u.id, u.username, u.email, u.created_at,
		m.id, m.title, c.name, uwm.watched_at
	FROM users u
	LEFT JOIN user_watched_movies uwm ON uwm.user_id = u.id
	LEFT JOIN movies m ON m.id = uwm.movie_id
	LEFT JOIN categories c ON c.id = m.category_id
	ORDER BY u.created_at DESC, u.id ASC, uwm.watched_at ASC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		out  []UserWithWatched
		last *UserWithWatched
	)
	for rows.Next() {
		var (
			u         UserWithWatched
			movieID   sql.NullInt64
			title     sql.NullString
			category  sql.NullString
			watchedAt sql.NullTime
		)
		if err := rows.Scan(
			&u.UserID, &u.Username, &u.Email, &u.CreatedAt,
			&movieID, &title, &category, &watchedAt,
		); err != nil {
			return nil, err
		}
		if last == nil || last.UserID != u.UserID {
			u.WatchedMovies = []WatchedMovie{}
			out = append(out, u)
			last = &out[len(out)-1]
		}
		if movieID.Valid {
			last.WatchedMovies = append(last.WatchedMovies, WatchedMovie{
				MovieID:   uint64(movieID.Int64),
				Title:     title.String,
				Category:  category.String,
				WatchedAt: watchedAt.Time,
			})
			last.WatchedCount = len(last.WatchedMovies)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
