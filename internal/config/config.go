package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config carries everything the server reads from the environment.
type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	DataBackend string

	JWTSecret  string
	TokenTTL   time.Duration
	CORSOrigin string

	AuthRateMax    int
	AuthRateWindow time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         strings.ToLower(getEnv("ENV", "development")),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DataBackend: strings.ToLower(getEnv("DATA_BACKEND", BackendPostgres)),

		JWTSecret:  getEnv("JWT_SECRET", ""),
		TokenTTL:   getEnvDuration("TOKEN_TTL", 24*time.Hour),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),

		AuthRateMax:    getEnvInt("AUTH_RATE_MAX", 10),
		AuthRateWindow: getEnvDuration("AUTH_RATE_WINDOW", time.Minute),
	}
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required when DATA_BACKEND is postgres")
		}
	case BackendMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid data backend %q: must be postgres or memory", c.DataBackend))
	}

	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	}

	if c.TokenTTL < time.Minute {
		problems = append(problems, fmt.Sprintf("invalid token ttl %v: must be at least 1 minute", c.TokenTTL))
	}

	if c.AuthRateMax < 1 {
		problems = append(problems, fmt.Sprintf("invalid auth rate limit %d: must be at least 1", c.AuthRateMax))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// Production reports whether the server runs with production hardening
// (secure cookies, generic error bodies).
func (c *Config) Production() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
