package config

import (
	"fmt"
	"net"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWTSecret verifies the identity provider's access tokens
	JWTSecret string

	// SiteURL is the public base URL used in share links and canonical tags
	SiteURL     string
	CORSOrigins []string

	LogLevel string
	LogFile  string

	MutationRateLimit int
	ClickRateLimit    int
	RateLimitWindow   time.Duration
	PublicCacheTTL    time.Duration
	ShutdownTimeout   time.Duration
}

const DefaultSiteURL = "https://bion.vercel.app"

// LoadConfig creates a new Config instance with values from environment
// variables or secrets. A .env file in the working directory is read first
// when present; variables already set win.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	env := GetEnvironment()
	cfg := defaults(env)

	// CI reads ONLY environment variables; everywhere else Docker secrets
	// back them up
	l := &loader{get: lookup}
	if env == CI {
		l.get = getenv
	}
	apply(cfg, l)

	if err := ValidateConfig(cfg, l.errs...); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func defaults(env Environment) *Config {
	cfg := &Config{
		Environment:       env,
		ServerPort:        "8080",
		ServerHost:        "0.0.0.0",
		DBSSLMode:         "disable",
		RedisPort:         "6379",
		SiteURL:           DefaultSiteURL,
		LogLevel:          "info",
		MutationRateLimit: 60,
		ClickRateLimit:    120,
		RateLimitWindow:   time.Minute,
		PublicCacheTTL:    5 * time.Minute,
		ShutdownTimeout:   10 * time.Second,
	}
	if env != Production {
		cfg.DBHost = "localhost"
		cfg.DBPort = "5432"
		cfg.DBUser = "postgres"
		cfg.DBName = "bion"
		cfg.RedisHost = "localhost"
		cfg.LogLevel = "debug"
	}
	return cfg
}

func apply(cfg *Config, l *loader) {
	l.str(&cfg.ServerPort, "SERVER_PORT")
	l.str(&cfg.ServerHost, "SERVER_HOST")
	l.str(&cfg.DBHost, "DB_HOST")
	l.str(&cfg.DBPort, "DB_PORT")
	l.str(&cfg.DBUser, "DB_USER")
	l.str(&cfg.DBPassword, "DB_PASSWORD")
	l.str(&cfg.DBName, "DB_NAME")
	l.str(&cfg.DBSSLMode, "DB_SSL_MODE")
	l.str(&cfg.RedisHost, "REDIS_HOST")
	l.str(&cfg.RedisPort, "REDIS_PORT")
	l.str(&cfg.RedisPassword, "REDIS_PASSWORD")
	l.str(&cfg.RedisURL, "REDIS_URL")
	l.integer(&cfg.RedisDB, "REDIS_DB")
	l.str(&cfg.JWTSecret, "JWT_SECRET")
	l.str(&cfg.SiteURL, "SITE_URL")
	l.list(&cfg.CORSOrigins, "CORS_ORIGINS")
	l.str(&cfg.LogLevel, "LOG_LEVEL")
	l.str(&cfg.LogFile, "LOG_FILE")
	l.integer(&cfg.MutationRateLimit, "RATE_LIMIT_MUTATIONS")
	l.integer(&cfg.ClickRateLimit, "RATE_LIMIT_CLICKS")
	l.duration(&cfg.RateLimitWindow, "RATE_LIMIT_WINDOW")
	l.duration(&cfg.PublicCacheTTL, "PUBLIC_CACHE_TTL")
	l.duration(&cfg.ShutdownTimeout, "SHUTDOWN_TIMEOUT")
}

// Addr is the listen address of the HTTP server
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ServerHost, c.ServerPort)
}

// DSN is the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// DatabaseURL is the PostgreSQL URL form used by the migration runner
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, net.JoinHostPort(c.DBHost, c.DBPort), c.DBName, c.DBSSLMode)
}
