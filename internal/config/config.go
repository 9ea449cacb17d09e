package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultTimeout = 30 * time.Second

// Config holds the settings shared by httperr commands
type Config struct {
	// BaseURL is joined with relative request URLs
	BaseURL string

	// LogLevel controls logging verbosity (debug, info, warn, error)
	LogLevel string

	// Timeout bounds each request
	Timeout time.Duration

	// UserAgent overrides the client's default User-Agent
	UserAgent string

	// MessagePaths are dotted paths tried in order to find the server message
	MessagePaths []string

	// Output selects how failures are rendered
	Output Output

	invalid []string
}

// Load creates a Config by reading from environment variables
// and applying defaults where values are not set
func Load() *Config {
	cfg := &Config{
		BaseURL:      getEnvOrDefault("HTTPERR_BASE_URL", ""),
		LogLevel:     getEnvOrDefault("HTTPERR_LOG_LEVEL", "info"),
		Timeout:      defaultTimeout,
		UserAgent:    getEnvOrDefault("HTTPERR_USER_AGENT", ""),
		MessagePaths: splitList(os.Getenv("HTTPERR_MESSAGE_PATHS")),
		Output:       Output(strings.ToLower(getEnvOrDefault("HTTPERR_OUTPUT", string(OutputTable)))),
	}

	if raw := os.Getenv("HTTPERR_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			cfg.invalid = append(cfg.invalid, fmt.Sprintf("HTTPERR_TIMEOUT=%q", raw))
		} else {
			cfg.Timeout = timeout
		}
	}

	return cfg
}

// LoadWithEnvFile seeds the environment from envFile, when it exists, and then
// calls Load. Variables already set in the environment win over the file.
func LoadWithEnvFile(envFile string) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
			}
		}
	}
	return Load(), nil
}

// Validate checks that configuration values are usable
func (c *Config) Validate() error {
	invalid := append([]string(nil), c.invalid...)

	if c.Timeout <= 0 {
		invalid = append(invalid, fmt.Sprintf("timeout %s must be positive", c.Timeout))
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			invalid = append(invalid, fmt.Sprintf("HTTPERR_BASE_URL=%q is not an http(s) URL", c.BaseURL))
		}
	}
	if !c.Output.IsValid() {
		invalid = append(invalid, fmt.Sprintf("HTTPERR_OUTPUT=%q", c.Output))
	}

	if len(invalid) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(invalid, ", "))
	}

	return nil
}

// getEnvOrDefault retrieves an environment variable or returns a default value
func getEnvOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
