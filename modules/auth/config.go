package auth

import (
	"log"
	"os"
	"strconv"
	"time"
)

// DefaultSecretKey is only suitable for local development.
const DefaultSecretKey = "movie-catalog-dev-secret-change-me"

// Config holds the auth module configuration.
type Config struct {
	DBPath        string
	BcryptCost    int
	JWT           JWTConfig
	AdminEmail    string
	AdminPassword string
}

// LoadConfig loads the auth configuration from environment variables,
// falling back to defaults for anything unset or unparsable.
func LoadConfig() Config {
	jwtConfig := DefaultJWTConfig()

	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		jwtConfig.SecretKey = secret
	} else {
		log.Println("[auth] Warning: JWT_SECRET_KEY not set, using development secret")
	}

	if issuer := os.Getenv("JWT_ISSUER"); issuer != "" {
		jwtConfig.Issuer = issuer
	}

	jwtConfig.AccessTokenDuration = getEnvDuration("JWT_ACCESS_TTL", jwtConfig.AccessTokenDuration)
	jwtConfig.RefreshTokenDuration = getEnvDuration("JWT_REFRESH_TTL", jwtConfig.RefreshTokenDuration)

	return Config{
		DBPath:        getEnv("AUTH_DB_PATH", "auth.db"),
		BcryptCost:    getEnvInt("BCRYPT_COST", DefaultBcryptCost),
		JWT:           jwtConfig,
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("[auth] Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("[auth] Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
