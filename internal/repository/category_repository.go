package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Category represents a row in the `categories` table. Categories are a
// small reference table, created by the seeder and read-only from the API.
type Category struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// CategoryRepo encapsulates all database queries related to categories.
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo constructs a CategoryRepo with the provided DB handle.
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// ListAll returns every category ordered by name ascending. The table is
// bounded and small, so no pagination is applied.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]Category, error) {
	const q = `SELECT id, name FROM categories ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0, 8)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a category by its ID. It returns ErrCategoryNotFound if
// no row is found.
func (r *CategoryRepo) GetByID(ctx context.Context, id uint64) (*Category, error) {
	const q = `SELECT id, name FROM categories WHERE id = ?`
	var c Category
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetByName fetches a category by exact name match. Returns
// ErrCategoryNotFound when absent.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*Category, error) {
	const q = `SELECT id, name FROM categories WHERE name = ?`
	var c Category
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}
