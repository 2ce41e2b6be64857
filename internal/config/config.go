package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the regform host process.
type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	Logger LoggerConfig
}

// AppConfig controls process level behavior.
type AppConfig struct {
	Name   string
	Env    string
	Layout string
}

// HTTPConfig configures the submit boundary server.
type HTTPConfig struct {
	Addr                  string
	AllowedOrigins        []string
	ShutdownGraceSeconds  int
	RequestTimeoutSeconds int
	MaxBodyBytes          int64
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
	Env   string
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	env := getEnv("REGFORM_ENV", "development")
	cfg := &Config{
		App: AppConfig{
			Name:   getEnv("REGFORM_APP_NAME", "regform"),
			Env:    env,
			Layout: os.Getenv("REGFORM_LAYOUT"),
		},
		HTTP: HTTPConfig{
			Addr:                  getEnv("REGFORM_ADDR", ":8080"),
			AllowedOrigins:        getEnvAsList("REGFORM_ALLOWED_ORIGINS", []string{"http://localhost:8080"}),
			ShutdownGraceSeconds:  getEnvAsInt("REGFORM_SHUTDOWN_GRACE_SECONDS", 10),
			RequestTimeoutSeconds: getEnvAsInt("REGFORM_REQUEST_TIMEOUT_SECONDS", 15),
			MaxBodyBytes:          int64(getEnvAsInt("REGFORM_MAX_BODY_BYTES", 64<<10)),
		},
		Logger: LoggerConfig{
			Level: getEnv("REGFORM_LOG_LEVEL", "info"),
			Env:   env,
		},
	}

	if cfg.HTTP.ShutdownGraceSeconds < 0 {
		return nil, fmt.Errorf("invalid REGFORM_SHUTDOWN_GRACE_SECONDS: %d", cfg.HTTP.ShutdownGraceSeconds)
	}
	if cfg.HTTP.MaxBodyBytes <= 0 {
		return nil, fmt.Errorf("invalid REGFORM_MAX_BODY_BYTES: %d", cfg.HTTP.MaxBodyBytes)
	}

	return cfg, nil
}

// Production reports whether the process runs in the production environment.
func (a AppConfig) Production() bool {
	return strings.EqualFold(a.Env, "production")
}

// ShutdownGrace returns the time allowed for in-flight requests on shutdown.
func (h HTTPConfig) ShutdownGrace() time.Duration {
	return time.Duration(h.ShutdownGraceSeconds) * time.Second
}

// RequestTimeout returns the configured request timeout duration.
func (h HTTPConfig) RequestTimeout() time.Duration {
	if h.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(h.RequestTimeoutSeconds) * time.Second
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

func getEnvAsList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
