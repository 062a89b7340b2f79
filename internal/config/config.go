package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// DBConfig holds the MySQL connection parameters. It is loaded separately
// from the full Config so the seeder can run without the server-only
// variables.
type DBConfig struct {
	User     string // database username
	Pass     string // database password (optional)
	Host     string // database host address
	Port     string // database port number
	Name     string // database name
	PoolSize int    // max open/idle connections in the pool
}

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Defaults match the reference deployment so the
// API can be started locally with nothing but JWT_SECRET set.
type Config struct {
	Env         string   // application environment (e.g. "development", "production")
	Port        string   // HTTP port to listen on
	DB          DBConfig // database connection parameters
	JWTSecret   string   // secret used to sign JWTs
	TokenTTLMin int      // issued token time-to-live in minutes
	BcryptCost  int      // bcrypt cost for password hashing
}

// LoadDB reads the database connection parameters from the environment.
func LoadDB() DBConfig {
	return DBConfig{
		User:     getenv("DB_USER", "root"),
		Pass:     os.Getenv("DB_PASS"), // empty allowed
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "3306"),
		Name:     getenv("DB_NAME", "movies_kubo"),
		PoolSize: atoiDefault("DB_POOL_SIZE", 10),
	}
}

// Load reads configuration values from environment variables and returns a
// Config. JWT_SECRET is the only required variable; everything else falls
// back to a documented default.
func Load() Config {
	return Config{
		Env:         getenv("APP_ENV", "development"),
		Port:        getenv("APP_PORT", "3360"),
		DB:          LoadDB(),
		JWTSecret:   must("JWT_SECRET"),
		TokenTTLMin: atoiDefault("TOKEN_TTL_MIN", 1440), // 24h
		BcryptCost:  atoiDefault("BCRYPT_COST", 10),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// atoiDefault reads an integer environment variable, falling back to def
// when the variable is unset or not a valid integer.
func atoiDefault(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
