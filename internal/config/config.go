// Package config loads the jobledger YAML configuration. Everything has a
// working default, so a missing config file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvDBPath overrides the configured database path when set.
const EnvDBPath = "JOBLEDGER_DB"

type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Company   CompanyConfig   `yaml:"company"`
	Documents DocumentsConfig `yaml:"documents"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// CompanyConfig is the business identity printed on document headers and
// exports.
type CompanyConfig struct {
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
	Address string `yaml:"address"`
	License string `yaml:"license"`
}

// DocumentsConfig carries the defaults applied to new documents.
type DocumentsConfig struct {
	DefaultTaxRate      float64 `yaml:"default_tax_rate"` // percentage, 8.25 = 8.25%
	DefaultPaymentTerms string  `yaml:"default_payment_terms"`
	DefaultDueDays      int     `yaml:"default_due_days"`
	EstimateValidDays   int     `yaml:"estimate_valid_days"`
	ExportDir           string  `yaml:"export_dir"`
}

// DefaultConfigPath returns ~/.config/jobledger/config.yaml.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "jobledger", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "jobledger", "config.yaml")
}

// DefaultConfig returns a config with working defaults.
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(homeDir, ".config", "jobledger", "jobledger.db"),
		},
		Documents: DocumentsConfig{
			DefaultTaxRate:      0,
			DefaultPaymentTerms: "Net 30",
			DefaultDueDays:      30,
			EstimateValidDays:   30,
			ExportDir:           ".",
		},
	}
}

// Load reads the config at path, layering it over the defaults. A missing
// file returns the defaults. The JOBLEDGER_DB environment variable wins over
// the configured database path either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if env := os.Getenv(EnvDBPath); env != "" {
		cfg.Database.Path = env
	}
	return cfg, nil
}

// LoadDefault loads from the default config path.
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to path, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
