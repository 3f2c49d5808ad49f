package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Session configuration
	Session SessionConfig

	// Owner credential configuration
	Owner OwnerConfig

	// Listing cache configuration
	Cache CacheConfig

	// Rate limiting configuration
	RateLimit RateLimitConfig

	// Logging configuration
	Logging LoggingConfig

	// Application metadata
	App AppConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	MigrationsPath  string
	RunMigrations   bool
}

// SessionConfig holds session token configuration
type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
}

// OwnerConfig is the single identity allowed to sign in. The password value
// may be either a bcrypt hash or plaintext; plaintext is tolerated for local
// development only and triggers a loud startup warning.
type OwnerConfig struct {
	Email    string
	Password string
}

// PasswordIsHashed reports whether the configured owner password looks like
// a bcrypt hash.
func (o OwnerConfig) PasswordIsHashed() bool {
	return strings.HasPrefix(o.Password, "$2a$") ||
		strings.HasPrefix(o.Password, "$2b$") ||
		strings.HasPrefix(o.Password, "$2y$")
}

// CacheConfig holds listing cache configuration
type CacheConfig struct {
	Enabled   bool
	RedisAddr string
	RedisDB   int
	TTL       time.Duration
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	LoginRPS          float64 // Stricter limit for the login endpoint
	LoginBurst        int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("SERVER_PORT", ":8080"),
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getDurationOrDefault("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntOrDefault("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationOrDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			ConnMaxIdleTime: getDurationOrDefault("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
			MigrationsPath:  getEnvOrDefault("DB_MIGRATIONS_PATH", "migrations"),
			RunMigrations:   getBoolOrDefault("DB_RUN_MIGRATIONS", true),
		},
		Session: SessionConfig{
			Secret:     os.Getenv("AUTH_SECRET"),
			TTL:        getDurationOrDefault("SESSION_TTL", 24*time.Hour),
			CookieName: getEnvOrDefault("SESSION_COOKIE_NAME", "dashboard_session"),
		},
		Owner: OwnerConfig{
			Email:    os.Getenv("AUTH_USER_EMAIL"),
			Password: os.Getenv("AUTH_USER_PASSWORD"),
		},
		Cache: CacheConfig{
			Enabled:   getBoolOrDefault("CACHE_ENABLED", os.Getenv("REDIS_ADDR") != ""),
			RedisAddr: getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			RedisDB:   getIntOrDefault("REDIS_DB", 0),
			TTL:       getDurationOrDefault("CACHE_TTL", 5*time.Minute),
		},
		RateLimit: RateLimitConfig{
			Enabled:           getBoolOrDefault("RATE_LIMIT_ENABLED", true),
			RequestsPerSecond: getFloatOrDefault("RATE_LIMIT_RPS", 10),
			BurstSize:         getIntOrDefault("RATE_LIMIT_BURST", 20),
			LoginRPS:          getFloatOrDefault("RATE_LIMIT_LOGIN_RPS", 1),
			LoginBurst:        getIntOrDefault("RATE_LIMIT_LOGIN_BURST", 5),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
		App: AppConfig{
			Name:        getEnvOrDefault("APP_NAME", "owner-dashboard"),
			Version:     getEnvOrDefault("APP_VERSION", "dev"),
			Environment: getEnvOrDefault("APP_ENV", "development"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []string

	// Required fields
	if c.Database.URL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}

	if c.Session.Secret == "" {
		errs = append(errs, "AUTH_SECRET is required")
	}

	if c.Owner.Email == "" {
		errs = append(errs, "AUTH_USER_EMAIL is required")
	}

	if c.Owner.Password == "" {
		errs = append(errs, "AUTH_USER_PASSWORD is required")
	}

	// Security validations
	if c.App.Environment == "production" {
		if len(c.Session.Secret) < 32 {
			errs = append(errs, "AUTH_SECRET must be at least 32 characters in production")
		}

		if c.Owner.Password != "" && !c.Owner.PasswordIsHashed() {
			errs = append(errs, "AUTH_USER_PASSWORD must be a bcrypt hash in production")
		}
	}

	// Logical validations
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, "DB_MAX_IDLE_CONNS cannot be greater than DB_MAX_OPEN_CONNS")
	}

	if len(errs) > 0 {
		return errors.New("configuration errors:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// String returns a redacted string representation of the config (safe for logging)
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Server: %s, DB: %s, Owner: %s, Session: [REDACTED], Cache: %v, Environment: %s}",
		c.Server.Port,
		redactURL(c.Database.URL),
		c.Owner.Email,
		c.Cache.Enabled,
		c.App.Environment,
	)
}

// redactURL redacts sensitive parts of a database URL
func redactURL(url string) string {
	if url == "" {
		return ""
	}
	if idx := strings.Index(url, "@"); idx > 0 {
		return "[REDACTED]" + url[idx:]
	}
	return "[REDACTED]"
}
