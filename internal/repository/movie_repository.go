package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// Movie represents a row in the `movies` table joined with its category
// name. Every read path returns the join so API responses always carry
// category_name alongside the raw category_id.
type Movie struct {
	ID           uint64    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ReleaseDate  string    `json:"release_date"`
	CategoryID   uint64    `json:"category_id"`
	CategoryName string    `json:"category_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewMovie carries the validated fields for an insert. ReleaseDate is an
// ISO calendar date (YYYY-MM-DD); validation upstream guarantees the format.
type NewMovie struct {
	Title       string
	Description string
	ReleaseDate string
	CategoryID  uint64
}

// MovieListQuery defines filters & pagination for listing movies. Title is
// a case-insensitive substring match, Category an exact match on the
// category name. Both are optional and combine with AND semantics.
type MovieListQuery struct {
	Title    string
	Category string
	Page     int
	Limit    int
}

// Normalize clamps pagination to safe bounds: page >= 1, limit in [1,100]
// with a default of 10 when unset.
func (q *MovieListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
}

// noveltyWindowDays is the fixed recency window for ListNovelties.
const noveltyWindowDays = 21

// NoveltyCutoff returns the oldest release date (inclusive) that still
// counts as a novelty relative to now. Exported so the handler can echo
// the exact cutoff the query ran with in its response metadata.
func NoveltyCutoff(now time.Time) string {
	return now.UTC().AddDate(0, 0, -noveltyWindowDays).Format("2006-01-02")
}

// movieColumns is the shared select list for movie reads. release_date is
// formatted in SQL so the API always emits plain calendar dates.
const movieColumns = `
	m.id,
	m.title,
	m.description,
	DATE_FORMAT(m.release_date, '%Y-%m-%d') AS release_date,
	m.category_id,
	c.name AS category_name,
	m.created_at,
	m.updated_at`

// MovieRepo encapsulates all database queries related to movies and the
// user_watched_movies join table.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the provided DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// Create inserts a new movie and returns the stored row joined with its
// category name. The handler pre-checks that the category exists; if a
// concurrent delete still trips the foreign key, the violation is
// translated to ErrCategoryNotFound.
func (r *MovieRepo) Create(ctx context.Context, in NewMovie) (*Movie, error) {
	const q = `INSERT INTO movies (title, description, release_date, category_id) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, in.Title, in.Description, in.ReleaseDate, in.CategoryID)
	if err != nil {
		if isMySQLErr(err, mysqlErrNoReferencedRow) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a movie joined with its category name. Returns
// ErrMovieNotFound when absent.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*Movie, error) {
	q := `SELECT` + movieColumns + `
	FROM movies m
	JOIN categories c ON c.id = m.category_id
	WHERE m.id = ?`
	var m Movie
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.Title, &m.Description, &m.ReleaseDate,
		&m.CategoryID, &m.CategoryName, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns the requested page of movies matching the query filters
// plus the total number of matches before pagination. Results are ordered
// by release date descending with id as the tie-break, so browsing is
// always most-recent-first and stable.
func (r *MovieRepo) List(ctx context.Context, q MovieListQuery) ([]Movie, int64, error) {
	q.Normalize()

	where := []string{}
	args := []any{}

	if q.Title != "" {
		where = append(where, "LOWER(m.title) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Title)+"%")
	}
	if q.Category != "" {
		where = append(where, "c.name = ?")
		args = append(args, q.Category)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	// Count reflects the filtered set, pre-pagination.
	countSQL := `SELECT COUNT(*)
		FROM movies m
		JOIN categories c ON c.id = m.category_id
		WHERE ` + cond
	var total int64
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.Limit
	offset := (q.Page - 1) * q.Limit

	dataSQL := `SELECT` + movieColumns + `
		FROM movies m
		JOIN categories c ON c.id = m.category_id
		WHERE ` + cond + `
		ORDER BY m.release_date DESC, m.id ASC
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Movie, 0, limit)
	for rows.Next() {
		var m Movie
		if err := rows.Scan(
			&m.ID, &m.Title, &m.Description, &m.ReleaseDate,
			&m.CategoryID, &m.CategoryName, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListNovelties returns every movie released within the 21 days before
// now, most recent first. A movie released exactly 21 days ago is
// included. The caller supplies now so the cutoff it reports and the
// cutoff the query uses cannot drift across a date boundary.
func (r *MovieRepo) ListNovelties(ctx context.Context, now time.Time) ([]Movie, error) {
	q := `SELECT` + movieColumns + `
	FROM movies m
	JOIN categories c ON c.id = m.category_id
	WHERE m.release_date >= ?
	ORDER BY m.release_date DESC, m.id ASC`

	rows, err := r.db.QueryContext(ctx, q, NoveltyCutoff(now))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Movie
	for rows.Next() {
		var m Movie
		if err := rows.Scan(
			&m.ID, &m.Title, &m.Description, &m.ReleaseDate,
			&m.CategoryID, &m.CategoryName, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkWatched records that a user has watched a movie. The (user, movie)
// pair is unique at the store level; a duplicate insert is an expected
// outcome, not an error, so it is reported as created=false and the
// handler turns it into a 409.
func (r *MovieRepo) MarkWatched(ctx context.Context, userID, movieID uint64) (bool, error) {
	const q = `INSERT INTO user_watched_movies (user_id, movie_id) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, q, userID, movieID); err != nil {
		if isMySQLErr(err, mysqlErrDupEntry) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
