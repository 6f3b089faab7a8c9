package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the server configuration.
type Config struct {
	Transport   string   `yaml:"transport"`
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	DBPath      string   `yaml:"db_path"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Transport:   "http",
		Host:        "0.0.0.0",
		Port:        8011,
		DBPath:      "/data/meal-plan.db",
		CORSOrigins: []string{"*"},
	}
}

// Load builds a Config from defaults, an optional YAML file and the
// environment, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("MEAL_PLAN_TRANSPORT"); v != "" {
		c.Transport = v
	}
	if v := os.Getenv("MEAL_PLAN_HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("MEAL_PLAN_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return ValidationError{Field: "MEAL_PLAN_PORT", Message: fmt.Sprintf("invalid port %q", v)}
		}
		c.Port = port
	}
	if v := os.Getenv("MEAL_PLAN_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("MEAL_PLAN_CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORSOrigins = origins
	}
	return nil
}

// Validate checks that the configuration can start a server.
func (c *Config) Validate() error {
	if c.Transport != "http" {
		return ValidationError{Field: "transport", Message: fmt.Sprintf("unsupported transport %q", c.Transport)}
	}
	if c.Port <= 0 || c.Port > 65535 {
		return ValidationError{Field: "port", Message: fmt.Sprintf("port %d out of range", c.Port)}
	}
	if c.DBPath == "" {
		return ValidationError{Field: "db_path", Message: "database path is required"}
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
