package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestHTTPErrorHandlerUnmatchedRoute(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(false)

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Endpoint not found", body["message"])
}

func TestHTTPErrorHandlerHidesDetailUnlessDebug(t *testing.T) {
	boom := func(echo.Context) error { return errors.New("boom: secret detail") }

	t.Run("production", func(t *testing.T) {
		e := echo.New()
		e.HTTPErrorHandler = NewHTTPErrorHandler(false)
		e.GET("/fail", boom)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal server error", decodeBody(t, rec)["message"])
	})

	t.Run("debug", func(t *testing.T) {
		e := echo.New()
		e.HTTPErrorHandler = NewHTTPErrorHandler(true)
		e.GET("/fail", boom)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, decodeBody(t, rec)["message"], "boom")
	})
}
