// Command seed creates the movie catalog schema and loads the reference
// data: the four fixed categories plus a handful of sample movies. It is
// idempotent; tables that already contain rows are left untouched.
package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/movie-catalog-api/internal/config"
	"github.com/iliyamo/movie-catalog-api/internal/database"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(100) NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_categories_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS movies (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT,
		title VARCHAR(200) NOT NULL,
		description TEXT,
		release_date DATE NOT NULL,
		category_id INT UNSIGNED NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_movies_release_date (release_date),
		CONSTRAINT fk_movies_category FOREIGN KEY (category_id) REFERENCES categories (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS users (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT,
		username VARCHAR(50) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS user_watched_movies (
		user_id INT UNSIGNED NOT NULL,
		movie_id INT UNSIGNED NOT NULL,
		watched_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, movie_id),
		CONSTRAINT fk_uwm_user FOREIGN KEY (user_id) REFERENCES users (id),
		CONSTRAINT fk_uwm_movie FOREIGN KEY (movie_id) REFERENCES movies (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

func main() {
	_ = godotenv.Load()
	cfg := config.LoadDB()

	db, err := database.Open(cfg.User, cfg.Pass, cfg.Host, cfg.Port, cfg.Name, cfg.PoolSize)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Fatalf("schema: %v", err)
		}
	}
	log.Println("schema ready")

	if err := seedCategories(ctx, db); err != nil {
		log.Fatalf("seed categories: %v", err)
	}
	if err := seedMovies(ctx, db); err != nil {
		log.Fatalf("seed movies: %v", err)
	}
	log.Println("seeding completed")
}

func seedCategories(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		log.Println("categories already exist, skipping")
		return nil
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO categories (name) VALUES ('Terror'), ('Suspenso'), ('Drama'), ('Comedia')`)
	if err == nil {
		log.Println("categories seeded")
	}
	return err
}

func seedMovies(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		log.Println("movies already exist, skipping")
		return nil
	}
	_, err := db.ExecContext(ctx, `INSERT INTO movies (title, description, release_date, category_id) VALUES
		('El Conjuro', 'Una familia se muda a una casa embrujada', '2023-10-01', 1),
		('Hereditary', 'Horror psicológico sobre una familia disfuncional', '2023-11-15', 1),
		('Shutter Island', 'Un detective investiga en un hospital psiquiátrico', '2023-09-20', 2),
		('Gone Girl', 'Un hombre busca a su esposa desaparecida', '2023-12-01', 2),
		('Parasite', 'Drama sobre desigualdad social', '2023-08-10', 3),
		('The Pursuit of Happyness', 'Un padre lucha por salir adelante', '2023-07-15', 3),
		('Superbad', 'Comedia sobre adolescentes en su último año', '2023-12-10', 4),
		('The Grand Budapest Hotel', 'Comedia sobre un hotel europeo', '2023-11-30', 4)`)
	if err == nil {
		log.Println("sample movies seeded")
	}
	return err
}
