package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/movie-catalog-api/internal/config"
	"github.com/iliyamo/movie-catalog-api/internal/database"
	"github.com/iliyamo/movie-catalog-api/internal/handler"
	"github.com/iliyamo/movie-catalog-api/internal/middleware"
	"github.com/iliyamo/movie-catalog-api/internal/queue"
	"github.com/iliyamo/movie-catalog-api/internal/repository"
	"github.com/iliyamo/movie-catalog-api/internal/router"
	queue_publisher "github.com/iliyamo/movie-catalog-api/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DB.User, cfg.DB.Pass, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name, cfg.DB.PoolSize)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	categories := repository.NewCategoryRepo(db)
	movies := repository.NewMovieRepo(db)
	users := repository.NewUserRepo(db)

	ch := handler.NewCategoryHandler(categories)
	mh := handler.NewMovieHandler(movies, categories, users)
	mh.PublishWatched = queue_publisher.PublishMovieWatched
	uh := handler.NewUserHandler(cfg, users)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(cfg.Env != "production")
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.Secure())

	cacheCfg := config.LoadCacheConfig()
	rdb := config.NewRedisClient()
	if cacheCfg.Enabled && rdb == nil {
		log.Println("redis unavailable, response cache disabled")
	}
	cache := middleware.NewRedisCache(cacheCfg, rdb)

	router.Register(e, ch, mh, uh, cache)

	// Broker-side audit trail for watched marks. Runs until process exit.
	go func() {
		if err := queue.StartWatchedConsumer(); err != nil {
			log.Printf("watched-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
