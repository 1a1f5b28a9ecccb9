package movie

import (
	"log"
	"os"
	"time"
)

// Config holds the catalog module settings.
type Config struct {
	DBPath    string
	RedisAddr string // empty disables caching
	CacheTTL  time.Duration
}

// LoadConfig reads the catalog configuration from environment variables.
func LoadConfig() Config {
	return Config{
		DBPath:    getEnv("MOVIE_DB_PATH", "movies.db"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
		CacheTTL:  getEnvDuration("CACHE_TTL", 5*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[movie] Warning: invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return d
}
