// Package config provides application configuration management with environment
// variable loading, validation, and sensible defaults. It supports .env files
// for local development and validates all settings on load to prevent runtime
// configuration errors.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	client := api.New(cfg.API, store)
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultBaseURL is the production SwiftCare backend origin.
const DefaultBaseURL = "https://swiftcare.up.railway.app"

// Config aggregates all configuration sections for the CLI, the SDK and the
// local mock backend.
type Config struct {
	API         APIConfig
	Credentials CredentialsConfig
	Redis       RedisConfig
	Google      GoogleConfig
	Mock        MockConfig
}

// APIConfig holds settings for the HTTP client that talks to the backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration // Per-request timeout (transport-level)
}

// CredentialsConfig selects where the access token and identity snapshot are
// persisted between runs.
type CredentialsConfig struct {
	Backend string // "file", "memory" or "redis"
	Path    string // Credentials file location for the file backend
}

// RedisConfig holds connection settings for the shared credential store used
// by server-side deployments of the client.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	PoolSize int
}

// GoogleConfig holds the OAuth client used by the CLI's Google sign-in flow.
// The resulting ID token is exchanged with the backend's /auth/google
// endpoint; the backend never sees these credentials.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// MockConfig holds settings for the local mock of the SwiftCare backend.
type MockConfig struct {
	Port           string
	Environment    string
	JWTSecret      []byte
	AccessExpiry   time.Duration
	RefreshExpiry  time.Duration
	AllowedOrigins []string
}

// Load reads and validates configuration from environment variables.
// It attempts to load a .env file if present (for local development) but
// doesn't fail if the file is missing.
//
// All variables have defaults; nothing is required for the common case of
// the CLI talking to the production backend with a file credential store.
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		API: APIConfig{
			BaseURL: getEnv("SWIFTCARE_API_URL", DefaultBaseURL),
			Timeout: getEnvAsDuration("SWIFTCARE_TIMEOUT", 30*time.Second),
		},
		Credentials: CredentialsConfig{
			Backend: getEnv("SWIFTCARE_CREDENTIALS_BACKEND", "file"),
			Path:    getEnv("SWIFTCARE_CREDENTIALS_FILE", defaultCredentialsPath()),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			PoolSize: getEnvAsInt("REDIS_POOL_SIZE", 10),
		},
		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8910/callback"),
		},
		Mock: MockConfig{
			Port:           getEnv("MOCK_PORT", "8080"),
			Environment:    getEnv("ENV", "development"),
			JWTSecret:      []byte(getEnv("MOCK_JWT_SECRET", "swiftcare-mock-backend-development-secret")),
			AccessExpiry:   getEnvAsDuration("MOCK_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry:  getEnvAsDuration("MOCK_REFRESH_EXPIRY", 720*time.Hour),
			AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks that all configuration is usable. Called automatically by
// Load but exported for tests that construct Config by hand.
func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return fmt.Errorf("invalid API base URL: %w", err)
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("API timeout must be positive")
	}

	switch c.Credentials.Backend {
	case "file", "memory", "redis":
	default:
		return fmt.Errorf("unknown credentials backend %q", c.Credentials.Backend)
	}

	if c.Credentials.Backend == "file" && c.Credentials.Path == "" {
		return fmt.Errorf("credentials file path is required for the file backend")
	}

	if c.Credentials.Backend == "redis" {
		if _, err := strconv.Atoi(c.Redis.Port); err != nil {
			return fmt.Errorf("redis port must be a valid integer: %w", err)
		}
	}

	if _, err := strconv.Atoi(c.Mock.Port); err != nil {
		return fmt.Errorf("mock server port must be a valid integer: %w", err)
	}

	if len(c.Mock.JWTSecret) == 0 {
		return fmt.Errorf("mock JWT secret must not be empty")
	}

	return nil
}

// Address returns the Redis server address in "host:port" format.
func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Configured reports whether the Google OAuth client is set up. The CLI uses
// this to fail fast with a helpful message before opening a browser.
func (c *GoogleConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// defaultCredentialsPath places the credentials file under the user config
// directory, falling back to the working directory when it is unavailable.
func defaultCredentialsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "swiftcare_credentials.json"
	}
	return filepath.Join(dir, "swiftcare", "credentials.json")
}

// Helper functions for environment variable parsing

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer with a default
// fallback. Unset or unparseable values yield the default.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration retrieves an environment variable as a time.Duration with
// a default fallback. Supports Go duration format: "300ms", "1.5h", "2h45m".
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice retrieves a comma-separated environment variable as a string
// slice with a default fallback.
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var result []string
	current := ""
	for _, char := range valueStr {
		if char == ',' {
			if current != "" {
				result = append(result, current)
				current = ""
			}
		} else {
			current += string(char)
		}
	}
	if current != "" {
		result = append(result, current)
	}
	return result
}
