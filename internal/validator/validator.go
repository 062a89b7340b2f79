// Package validator holds the declarative payload schemas for the write
// endpoints. Validation is pure (no I/O), runs against the whole payload
// at once, and collects one message per invalid field instead of stopping
// at the first failure.
package validator

import (
	"regexp"
	"time"
	"unicode/utf8"
)

// FieldError pairs an invalid field with a human-readable message. The
// slice of collected errors is returned verbatim in 400 responses.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	alphanumRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// MoviePayload is the request body for creating a movie. Description is
// optional and defaults to empty.
type MoviePayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ReleaseDate string `json:"release_date"`
	CategoryID  int64  `json:"category_id"`
}

// Validate checks every field and returns the collected errors. An empty
// slice means the payload is valid. Length limits count characters, not
// bytes, so multi-byte titles are measured as readers see them.
func (p MoviePayload) Validate() []FieldError {
	var errs []FieldError
	if p.Title == "" {
		errs = append(errs, FieldError{"title", "Title is required"})
	} else if utf8.RuneCountInString(p.Title) > 200 {
		errs = append(errs, FieldError{"title", "Title must have at most 200 characters"})
	}
	if p.ReleaseDate == "" {
		errs = append(errs, FieldError{"release_date", "Release date is required"})
	} else if _, err := time.Parse("2006-01-02", p.ReleaseDate); err != nil {
		errs = append(errs, FieldError{"release_date", "Please provide a valid release date (YYYY-MM-DD)"})
	}
	if p.CategoryID <= 0 {
		errs = append(errs, FieldError{"category_id", "Category ID must be a positive integer"})
	}
	return errs
}

// UserPayload is the request body for creating a user. The password is
// plaintext at this layer; hashing happens in the repository.
type UserPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks every field and returns the collected errors.
func (p UserPayload) Validate() []FieldError {
	var errs []FieldError
	switch {
	case p.Username == "":
		errs = append(errs, FieldError{"username", "Username is required"})
	case utf8.RuneCountInString(p.Username) < 3:
		errs = append(errs, FieldError{"username", "Username must have at least 3 characters"})
	case utf8.RuneCountInString(p.Username) > 50:
		errs = append(errs, FieldError{"username", "Username must have at most 50 characters"})
	case !alphanumRe.MatchString(p.Username):
		errs = append(errs, FieldError{"username", "Username must contain only alphanumeric characters"})
	}
	switch {
	case p.Email == "":
		errs = append(errs, FieldError{"email", "Email is required"})
	case !emailRe.MatchString(p.Email):
		errs = append(errs, FieldError{"email", "Please provide a valid email address"})
	}
	switch {
	case p.Password == "":
		errs = append(errs, FieldError{"password", "Password is required"})
	case utf8.RuneCountInString(p.Password) < 6:
		errs = append(errs, FieldError{"password", "Password must have at least 6 characters"})
	}
	return errs
}

// WatchedPayload is the request body for marking a movie as watched.
type WatchedPayload struct {
	UserID int64 `json:"userId"`
}

// Validate checks that userId is present and positive.
func (p WatchedPayload) Validate() []FieldError {
	if p.UserID <= 0 {
		return []FieldError{{"userId", "userId must be a positive integer"}}
	}
	return nil
}
