package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath  string
	Env           string
	Debug         bool
	SQLMigrations bool
}

// Load reads configuration from the environment with sensible defaults.
// Precedence: explicit env var > .env file > default.
func Load() Config {
	_ = godotenv.Load()
	cfg := Config{}
	cfg.DatabasePath = getEnv("DATABASE_PATH", "tu-inventario.db")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.Debug = ParseBool("DB_DEBUG", false)
	cfg.SQLMigrations = ParseBool("MIGRATIONS", false)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
