package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment
func GetEnvironment() Environment {
	// CI environment is automatically detected
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch env := os.Getenv("ENV"); env {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// IsProduction returns true if the current environment is production
func IsProduction() bool {
	return GetEnvironment() == Production
}

func getenv(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

// lookup returns the environment variable name, or the Docker secret of the
// same name in lower case
func lookup(name string) string {
	if v := getenv(name); v != "" {
		return v
	}
	return readSecret(strings.ToLower(name))
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// loader copies set values over the defaults and remembers values it could
// not parse
type loader struct {
	get  func(string) string
	errs []ValidationError
}

func (l *loader) str(dst *string, name string) {
	if v := l.get(name); v != "" {
		*dst = v
	}
}

func (l *loader) integer(dst *int, name string) {
	v := l.get(name)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		l.errs = append(l.errs, ValidationError{Field: name, Message: "must be a whole number"})
		return
	}
	*dst = n
}

func (l *loader) duration(dst *time.Duration, name string) {
	v := l.get(name)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		l.errs = append(l.errs, ValidationError{Field: name, Message: "must be a duration such as 30s or 5m"})
		return
	}
	*dst = d
}

func (l *loader) list(dst *[]string, name string) {
	v := l.get(name)
	if v == "" {
		return
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*dst = out
}
