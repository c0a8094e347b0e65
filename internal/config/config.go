package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/clinifin/grdload/internal/model"
)

// Config holds all runtime configuration for a grdload run.
type Config struct {
	DSN       string
	FilePath  string
	OutPath   string
	LogFormat string // "text" or "json"

	Force       bool
	KeepStaging bool
	SkipRecalc  bool
	Progress    bool

	Conventions []string `yaml:"conventions"` // subset of AllConventions to recalculate
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	Conventions []string `yaml:"conventions"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	c.Conventions = yc.Conventions
	return c.validateConventions()
}

// validateConventions checks that every entry in Conventions is a known
// convention code. If Conventions is empty, it defaults to all of them.
func (c *Config) validateConventions() error {
	if len(c.Conventions) == 0 {
		c.Conventions = model.ConventionCodes()
		return nil
	}
	for _, code := range c.Conventions {
		if _, ok := model.ConventionByCode(code); !ok {
			return fmt.Errorf("unknown convention %q in config", code)
		}
	}
	return nil
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	return nil
}

// ValidateWithDSN checks both file and DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or GRDLOAD_DB_URL is required")
	}
	return nil
}

// ConventionFilter returns the convention codes to recalculate, defaulting
// to all known codes when none were configured.
func (c *Config) ConventionFilter() []string {
	if len(c.Conventions) == 0 {
		return model.ConventionCodes()
	}
	return c.Conventions
}
