package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		URI string `yaml:"uri"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Voting struct {
		// SweepIntervalSeconds controls how often the closer worker scans
		// for lapsed voting windows.
		SweepIntervalSeconds int `yaml:"sweepIntervalSeconds"`
	} `yaml:"voting"`

	SeedTestUsers bool `yaml:"seedTestUsers"`
}

// LoadConfig reads the configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if cfg.Voting.SweepIntervalSeconds <= 0 {
		cfg.Voting.SweepIntervalSeconds = 60
	}

	return &cfg, nil
}
