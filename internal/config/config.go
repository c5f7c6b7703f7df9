package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the construction-time parameters for the Sigma and Libertas
// schemes plus the ambient logging configuration, loaded from a YAML file.
type Config struct {
	Sigma struct {
		FPRate               float64 `yaml:"fp_rate"`                // Bloom filter false-positive rate
		AverageKeywordLength int     `yaml:"average_keyword_length"` // used to size the Bloom filter
		SecurityParameter    int     `yaml:"security_parameter"`     // bits, for k_h/k_g
	} `yaml:"sigma"`
	Libertas struct {
		SecurityParameter int `yaml:"security_parameter"` // bits, for k_L
	} `yaml:"libertas"`
	Logging struct {
		Level string `yaml:"level"` // debug, info, warn, error
		File  string `yaml:"file"`  // log file path (empty for stdout)
	} `yaml:"logging"`
}

// SetDefaults fills in the reasonable defaults the end-to-end scenarios in
// spec.md §8 use: p=0.01, L=10, Sigma security parameter 2048 bits, Libertas
// security parameter 256 bits.
func (c *Config) SetDefaults() {
	if c.Sigma.FPRate == 0 {
		c.Sigma.FPRate = 0.01
	}
	if c.Sigma.AverageKeywordLength == 0 {
		c.Sigma.AverageKeywordLength = 10
	}
	if c.Sigma.SecurityParameter == 0 {
		c.Sigma.SecurityParameter = 2048
	}
	if c.Libertas.SecurityParameter == 0 {
		c.Libertas.SecurityParameter = 256
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks that the loaded parameters are usable by the schemes:
// a false-positive rate in (0,1), a positive average keyword length, and
// security parameters that are positive multiples of 8.
func (c *Config) Validate() error {
	if c.Sigma.FPRate <= 0 || c.Sigma.FPRate >= 1 {
		return fmt.Errorf("config: sigma.fp_rate must be in (0,1), got %v", c.Sigma.FPRate)
	}
	if c.Sigma.AverageKeywordLength <= 0 {
		return fmt.Errorf("config: sigma.average_keyword_length must be positive, got %d", c.Sigma.AverageKeywordLength)
	}
	if c.Sigma.SecurityParameter <= 0 || c.Sigma.SecurityParameter%8 != 0 {
		return fmt.Errorf("config: sigma.security_parameter must be a positive multiple of 8, got %d", c.Sigma.SecurityParameter)
	}
	if c.Libertas.SecurityParameter <= 0 || c.Libertas.SecurityParameter%8 != 0 {
		return fmt.Errorf("config: libertas.security_parameter must be a positive multiple of 8, got %d", c.Libertas.SecurityParameter)
	}
	return nil
}

// Load reads a YAML configuration file, applies defaults to any field left
// unset, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
