package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog-api/internal/validator"
)

// envelope is the uniform response wrapper used across all endpoints.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// validationEnvelope extends the envelope with per-field messages for 400
// responses.
type validationEnvelope struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message"`
	Details []validator.FieldError `json:"details"`
}

func success(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, envelope{Status: "success", Message: message, Data: data})
}

func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, envelope{Status: "error", Message: message})
}

func failValidation(c echo.Context, details []validator.FieldError) error {
	return c.JSON(http.StatusBadRequest, validationEnvelope{
		Status:  "error",
		Message: "Validation error",
		Details: details,
	})
}

// NewHTTPErrorHandler returns the boundary error translator installed on
// the Echo instance. Handlers classify their own failures; what reaches
// this point is unmatched routes, method mismatches and stray errors.
// Unclassified errors become a plain 500 envelope; the underlying detail
// is only echoed back when debug is on.
func NewHTTPErrorHandler(debug bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		msg := "Internal server error"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if s, ok := he.Message.(string); ok {
				msg = s
			}
			if code == http.StatusNotFound {
				msg = "Endpoint not found"
			}
		}
		if code == http.StatusInternalServerError {
			c.Logger().Error(err)
			if debug {
				msg = err.Error()
			}
		}
		_ = c.JSON(code, envelope{Status: "error", Message: msg})
	}
}
