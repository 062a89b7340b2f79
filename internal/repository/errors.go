// Package repository contains the data access layer for the movie catalog.
// Each entity (category, movie, user) gets its own repository struct bound
// to a shared *sql.DB pool. Sentinel errors defined here let handlers map
// store failures to HTTP statuses without inspecting driver internals.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrCategoryNotFound is returned when a category lookup matches no row.
var ErrCategoryNotFound = errors.New("category not found")

// ErrMovieNotFound is returned when a movie lookup matches no row.
var ErrMovieNotFound = errors.New("movie not found")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when inserting a user whose email is already
// taken. Handlers translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// MySQL server error numbers the repositories care about.
const (
	mysqlErrDupEntry        = 1062 // unique constraint violation
	mysqlErrNoReferencedRow = 1452 // foreign key constraint violation
)

// isMySQLErr reports whether err is a MySQL server error with the given
// number. Constraint violations surface this way when a pre-check raced
// with a concurrent writer.
func isMySQLErr(err error, number uint16) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == number
}
