package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Server      ServerConfig  `toml:"server"`
	Logging     LoggingConfig `toml:"logging"`
	Sources     SourcesConfig `toml:"sources"`
	Browser     BrowserConfig `toml:"browser"`
	Health      HealthConfig  `toml:"health"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port" validate:"min=0,max=65535"`
	// AllowedOrigins feeds the CORS middleware. "*" allows any origin.
	AllowedOrigins []string `toml:"allowed_origins" validate:"min=1"`
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=trace debug info warn error"`
	Output []string `toml:"output"` // "stdout", "file"
}

// SourcesConfig holds settings shared by every upstream legal database client.
type SourcesConfig struct {
	RequestTimeout time.Duration `toml:"request_timeout"`
	RateLimit      float64       `toml:"rate_limit" validate:"gt=0"` // requests per second per source
	UserAgent      string        `toml:"user_agent" validate:"required"`
}

// BrowserConfig controls the headless Chrome driver used by the
// procurement-authority client.
type BrowserConfig struct {
	Headless   bool          `toml:"headless"`
	Timeout    time.Duration `toml:"timeout"` // per browser operation
	ChromePath string        `toml:"chrome_path"`
}

// HealthConfig controls the scheduled upstream reachability monitor.
type HealthConfig struct {
	Enabled  bool          `toml:"enabled"`
	Schedule string        `toml:"schedule"` // cron spec, e.g. "@every 5m"
	Timeout  time.Duration `toml:"timeout"`  // per probe
}

// NewDefaultConfig returns the default configuration
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:           "127.0.0.1",
			Port:           8000,
			AllowedOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Sources: SourcesConfig{
			RequestTimeout: 60 * time.Second,
			RateLimit:      5, // 5 req/s keeps load on the court sites polite
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		},
		Browser: BrowserConfig{
			Headless: true,
			Timeout:  60 * time.Second,
		},
		Health: HealthConfig{
			Enabled:  true,
			Schedule: "@every 5m",
			Timeout:  10 * time.Second,
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env -> CLI
func LoadFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
// HOST, PORT, LOG_LEVEL and ALLOWED_ORIGINS keep their historical names;
// everything else is namespaced under YARGI_.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("YARGI_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = strings.ToLower(level)
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
		if len(cleaned) > 0 {
			config.Server.AllowedOrigins = cleaned
		}
	}
	if output := os.Getenv("YARGI_LOG_OUTPUT"); output != "" {
		parts := strings.Split(output, ",")
		outputs := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	if timeout := os.Getenv("YARGI_SOURCES_REQUEST_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Sources.RequestTimeout = d
		}
	}
	if rateLimit := os.Getenv("YARGI_SOURCES_RATE_LIMIT"); rateLimit != "" {
		if r, err := strconv.ParseFloat(rateLimit, 64); err == nil {
			config.Sources.RateLimit = r
		}
	}
	if userAgent := os.Getenv("YARGI_SOURCES_USER_AGENT"); userAgent != "" {
		config.Sources.UserAgent = userAgent
	}

	if headless := os.Getenv("YARGI_BROWSER_HEADLESS"); headless != "" {
		if b, err := strconv.ParseBool(headless); err == nil {
			config.Browser.Headless = b
		}
	}
	if timeout := os.Getenv("YARGI_BROWSER_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Browser.Timeout = d
		}
	}
	if chromePath := os.Getenv("YARGI_BROWSER_CHROME_PATH"); chromePath != "" {
		config.Browser.ChromePath = chromePath
	}

	if enabled := os.Getenv("YARGI_HEALTH_ENABLED"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			config.Health.Enabled = b
		}
	}
	if schedule := os.Getenv("YARGI_HEALTH_SCHEDULE"); schedule != "" {
		config.Health.Schedule = schedule
	}
	if timeout := os.Getenv("YARGI_HEALTH_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Health.Timeout = d
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks the configuration against its struct constraints
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Sources.RequestTimeout <= 0 {
		return fmt.Errorf("invalid configuration: sources.request_timeout must be positive")
	}
	if c.Browser.Timeout <= 0 {
		return fmt.Errorf("invalid configuration: browser.timeout must be positive")
	}
	return nil
}
