package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config is the application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logging  LoggingConfig  `toml:"logging"`
	Registry RegistryConfig `toml:"registry"`
	CSV      CSVConfig      `toml:"csv"`
}

type ServerConfig struct {
	Host        string `toml:"host" validate:"required"`
	Port        int    `toml:"port" validate:"min=1,max=65535"`
	BodyLimitMB int    `toml:"body_limit_mb" validate:"min=1,max=512"` // upload size limit per request
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=debug info warn error"`
	Output []string `toml:"output" validate:"min=1,dive,oneof=stdout console file"`
	File   string   `toml:"file" validate:"required_if=HasFileOutput true"`
	// HasFileOutput is derived from Output before validation.
	HasFileOutput bool `toml:"-"`
}

type RegistryConfig struct {
	Path string `toml:"path"` // empty uses the embedded mappings
}

type CSVConfig struct {
	FallbackCharset string `toml:"fallback_charset"` // IANA name, e.g. "windows-1252"
}

// NewDefaultConfig returns the configuration used when no file is given.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "localhost",
			Port:        8080,
			BodyLimitMB: 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
			File:   "logs/kpi-extractor.log",
		},
		CSV: CSVConfig{
			FallbackCharset: "windows-1252",
		},
	}
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
// An empty path skips the file.
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

// Validate checks the configuration values.
func (c *Config) Validate() error {
	c.Logging.HasFileOutput = false
	for _, o := range c.Logging.Output {
		if o == "file" {
			c.Logging.HasFileOutput = true
		}
	}
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyEnvOverrides applies KPI_* environment variables to config.
func applyEnvOverrides(config *Config) {
	// Server configuration
	if host := os.Getenv("KPI_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("KPI_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if limit := os.Getenv("KPI_BODY_LIMIT_MB"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			config.Server.BodyLimitMB = l
		}
	}

	// Logging configuration
	if level := os.Getenv("KPI_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("KPI_LOG_OUTPUT"); output != "" {
		var outputs []string
		for _, o := range strings.Split(output, ",") {
			if o = strings.TrimSpace(o); o != "" {
				outputs = append(outputs, o)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}
	if file := os.Getenv("KPI_LOG_FILE"); file != "" {
		config.Logging.File = file
	}

	if path := os.Getenv("KPI_REGISTRY_PATH"); path != "" {
		config.Registry.Path = path
	}
	if charset := os.Getenv("KPI_CSV_FALLBACK_CHARSET"); charset != "" {
		config.CSV.FallbackCharset = charset
	}
}
