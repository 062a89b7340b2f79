// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog-api/internal/handler"
)

// Register mounts every endpoint under the /api prefix. The cache
// middleware is applied per-route to the read-only list endpoints; write
// endpoints always hit the database.
func Register(e *echo.Echo, ch *handler.CategoryHandler, mh *handler.MovieHandler, uh *handler.UserHandler, cache echo.MiddlewareFunc) {
	api := e.Group("/api")

	api.GET("/health", handler.Health)

	api.GET("/categories", ch.List, cache)

	api.POST("/users", uh.Create)
	api.GET("/users", uh.List)
	api.GET("/users/watched-movies", uh.ListWithWatched)

	api.POST("/movies", mh.Create)
	api.GET("/movies", mh.List, cache)
	api.GET("/movies/novelties", mh.Novelties, cache)
	api.POST("/movies/:movieId/watched", mh.MarkWatched)
}
