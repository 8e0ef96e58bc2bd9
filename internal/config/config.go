package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Modes the client can run in. Development enables per-request
// diagnostics in the API client; production silences them.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// DefaultBaseURL is used when no base address is configured, the
// local-backend analog of the dev-server "/api" proxy prefix.
const DefaultBaseURL = "http://localhost:5014/api/v1"

// Config structure represents the client configuration
type Config struct {
	API struct {
		BaseURL string `yaml:"base_url" env:"LMS_API_BASE_URL"`
		Timeout string `yaml:"timeout" env:"LMS_API_TIMEOUT"`
	} `yaml:"api"`

	Client struct {
		Mode string `yaml:"mode" env:"LMS_CLIENT_MODE"`
	} `yaml:"client"`

	Storage struct {
		Path string `yaml:"path" env:"LMS_STORAGE_PATH"`
	} `yaml:"storage"`

	Logging struct {
		Level  string `yaml:"level" env:"LMS_LOG_LEVEL"`
		Format string `yaml:"format" env:"LMS_LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Config file is optional; env vars alone are enough to run
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.API.BaseURL = DefaultBaseURL
	config.API.Timeout = "30s"

	config.Client.Mode = ModeDevelopment

	config.Storage.Path = defaultStoragePath()

	config.Logging.Level = "info"
	config.Logging.Format = "text"
}

// defaultStoragePath places the state database under the user config
// directory, falling back to the working directory when unavailable.
func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "lms-state.db"
	}
	return filepath.Join(dir, "lms", "state.db")
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	parsed, err := url.Parse(config.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid API base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("API base URL must be http or https, got %q", config.API.BaseURL)
	}

	if _, err := time.ParseDuration(config.API.Timeout); err != nil {
		return fmt.Errorf("invalid API timeout format: %w", err)
	}

	mode := strings.ToLower(config.Client.Mode)
	if mode != ModeDevelopment && mode != ModeProduction {
		return fmt.Errorf("client mode must be %q or %q, got %q", ModeDevelopment, ModeProduction, config.Client.Mode)
	}

	if config.Storage.Path == "" {
		return fmt.Errorf("storage path is required")
	}

	return nil
}

// APITimeout returns the parsed per-request timeout
func (c *Config) APITimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// IsDevelopment reports whether the client runs in development mode
func (c *Config) IsDevelopment() bool {
	return strings.ToLower(c.Client.Mode) == ModeDevelopment
}
