package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIBaseURL is used when API_BASE_URL is not set; the console and
// the release backend are then expected to share a host.
const DefaultAPIBaseURL = "http://127.0.0.1:8000"

// Config aggregates runtime configuration for the console.
type Config struct {
	App      AppConfig
	API      APIConfig
	Session  SessionConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// APIConfig points the console at the release backend.
type APIConfig struct {
	BaseURL        string
	Prefix         string
	TimeoutSeconds int
}

// SessionConfig controls how the bearer token cookies are written.
type SessionConfig struct {
	CookieSecure bool
	CookieDomain string
	RememberDays int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	baseURL := strings.TrimRight(getEnv("API_BASE_URL", DefaultAPIBaseURL), "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("invalid API_BASE_URL %q: scheme required", baseURL)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "nmt-release-console"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		API: APIConfig{
			BaseURL:        baseURL,
			Prefix:         normalizePrefix(getEnv("API_PREFIX", "/api/v1")),
			TimeoutSeconds: getEnvAsInt("API_TIMEOUT_SECONDS", 0),
		},
		Session: SessionConfig{
			CookieSecure: getEnvAsBool("SESSION_COOKIE_SECURE", false),
			CookieDomain: os.Getenv("SESSION_COOKIE_DOMAIN"),
			RememberDays: getEnvAsInt("SESSION_REMEMBER_DAYS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 5)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 1)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Endpoint joins the base URL and the versioned prefix.
func (a APIConfig) Endpoint() string {
	return a.BaseURL + a.Prefix
}

// Timeout returns the outbound timeout; zero leaves the client default in place.
func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// RememberFor is the lifetime of the durable token cookie.
func (s SessionConfig) RememberFor() time.Duration {
	if s.RememberDays <= 0 {
		return 30 * 24 * time.Hour
	}
	return time.Duration(s.RememberDays) * 24 * time.Hour
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
