package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepoListAllOrdersByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM categories ORDER BY name")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(uint64(4), "Comedia").
			AddRow(uint64(3), "Drama").
			AddRow(uint64(2), "Suspenso").
			AddRow(uint64(1), "Terror"))

	repo := NewCategoryRepo(db)
	cats, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 4)
	assert.Equal(t, "Comedia", cats[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM categories WHERE id = ?")).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	repo := NewCategoryRepo(db)
	_, err = repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryRepoGetByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM categories WHERE name = ?")).
		WithArgs("Terror").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(uint64(1), "Terror"))

	repo := NewCategoryRepo(db)
	c, err := repo.GetByName(context.Background(), "Terror")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), c.ID)
}
