package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default configuration values
const (
	DefaultAPIBaseURL    = "https://mxpertztestapi.onrender.com"
	DefaultPageSize      = 8
	DefaultTheme         = "catppuccin"
	DefaultLogLevel      = "info"
	DefaultWatchDebounce = 300 * time.Millisecond
	DefaultServeAddr     = ":8080"

	// EnvPrefix is prepended to every environment variable name
	EnvPrefix = "SCIFI_"
)

// Config holds all application configuration
type Config struct {
	// Remote API
	APIBaseURL     string        `yaml:"api_base_url" env:"API_BASE_URL" validate:"required,url"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT" validate:"gte=0"`

	// List settings
	PageSize int `yaml:"page_size" env:"PAGE_SIZE" validate:"gte=1,lte=100"`

	// UI settings
	Theme            string        `yaml:"theme" env:"THEME" validate:"oneof=catppuccin dracula nord"`
	ThemeFile        string        `yaml:"theme_file" env:"THEME_FILE"`
	WatchTheme       bool          `yaml:"watch_theme" env:"WATCH_THEME"`
	WatchDebounce    time.Duration `yaml:"watch_debounce" env:"WATCH_DEBOUNCE" validate:"gte=0"`
	StarfieldEnabled bool          `yaml:"starfield" env:"STARFIELD"`

	// Logging
	LogFile  string `yaml:"log_file" env:"LOG_FILE"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`

	// Fixture server
	ServeAddr string `yaml:"serve_addr" env:"SERVE_ADDR" validate:"required"`
}

// New creates a new Config with default values
func New() *Config {
	return &Config{
		APIBaseURL:       DefaultAPIBaseURL,
		PageSize:         DefaultPageSize,
		Theme:            DefaultTheme,
		WatchDebounce:    DefaultWatchDebounce,
		StarfieldEnabled: true,
		LogFile:          filepath.Join(os.TempDir(), "scifi-stories.log"),
		LogLevel:         DefaultLogLevel,
		ServeAddr:        DefaultServeAddr,
	}
}

// DefaultPath returns the config file looked up when none is given
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "scifi-stories", "config.yaml")
}

// Load builds a Config from defaults, the YAML file at path, a .env file in
// the working directory and SCIFI_* environment variables, in that order.
// A missing file is not an error; an explicitly named one must exist.
func Load(path string) (*Config, error) {
	cfg := New()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q (value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
