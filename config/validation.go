package config

import (
	"errors"
	"fmt"
	"net/url"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// requiredFields lists the settings without a usable default in each
// environment
var requiredFields = map[Environment][]string{
	Development: {"JWT_SECRET"},
	Test:        {"JWT_SECRET"},
	CI:          {"DB_PASSWORD", "JWT_SECRET"},
	Production:  {"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "REDIS_HOST", "JWT_SECRET", "SITE_URL"},
}

// ValidateConfig checks if the configuration meets the requirements of its
// environment. Earlier parse failures are reported with the rest.
func ValidateConfig(cfg *Config, parseErrs ...ValidationError) error {
	var errs []error
	for _, e := range parseErrs {
		errs = append(errs, e)
	}

	values := map[string]string{
		"DB_HOST":     cfg.DBHost,
		"DB_PORT":     cfg.DBPort,
		"DB_USER":     cfg.DBUser,
		"DB_PASSWORD": cfg.DBPassword,
		"DB_NAME":     cfg.DBName,
		"REDIS_HOST":  cfg.RedisHost,
		"JWT_SECRET":  cfg.JWTSecret,
		"SITE_URL":    cfg.SiteURL,
	}
	for _, field := range requiredFields[cfg.Environment] {
		if values[field] == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"})
		}
	}

	if u, err := url.Parse(cfg.SiteURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{Field: "SITE_URL", Message: "must be an absolute http(s) URL"})
	}
	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: "is required"})
	}
	if cfg.MutationRateLimit < 0 || cfg.ClickRateLimit < 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT", Message: "must not be negative"})
	}
	if cfg.RateLimitWindow <= 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_WINDOW", Message: "must be positive"})
	}
	if cfg.PublicCacheTTL < 0 {
		errs = append(errs, ValidationError{Field: "PUBLIC_CACHE_TTL", Message: "must not be negative"})
	}

	return errors.Join(errs...)
}
