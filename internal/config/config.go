package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	AllowedOrigin string
	// Flat-file store location; used unless DatabaseURL is set.
	DataFile string
	// Optional YAML catalog; the built-in catalog is used when empty.
	CatalogFile string
	// PostgreSQL
	DatabaseURL   string
	MigrationsDir string
}

func Load() Config {
	_ = godotenv.Load()
	return Config{
		Port:          getEnvDefault("PORT", "8080"),
		AllowedOrigin: getEnvDefault("ALLOWED_ORIGIN", "*"),
		DataFile:      getEnvDefault("DATA_FILE", "data/sessions.json"),
		CatalogFile:   os.Getenv("CATALOG_FILE"),
		DatabaseURL:   os.Getenv("DB_URL"),
		MigrationsDir: getEnvDefault("MIGRATIONS_DIR", "migrations"),
	}
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
