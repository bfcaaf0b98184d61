package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// StoreConfig points at the cache file written by the external ingestion service
type StoreConfig struct {
	Path      string `toml:"Path"`
	TableName string `toml:"TableName"`
}

// VerifierConfig holds the knobs for the diagnostic report
type VerifierConfig struct {
	RecencyWindowSeconds uint32 `toml:"RecencyWindowSeconds"`
	TopTags              int    `toml:"TopTags"`
	SampleRows           int    `toml:"SampleRows"`
}

// MonitorConfig holds the poll session parameters
type MonitorConfig struct {
	SessionSeconds      uint32 `toml:"SessionSeconds"`
	PollIntervalSeconds uint32 `toml:"PollIntervalSeconds"`
}

// Config maps to the config.toml file
type Config struct {
	Store    StoreConfig    `toml:"Store"`
	Verifier VerifierConfig `toml:"Verifier"`
	Monitor  MonitorConfig  `toml:"Monitor"`
}

// LoadConfig parses a TOML file into the Config struct
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filepath, err)
	}

	var cfg Config
	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the loaded values can actually drive the components
func (cfg *Config) Validate() error {
	if len(cfg.Store.Path) == 0 {
		return errors.New("Store.Path can not be empty")
	}
	if len(cfg.Store.TableName) == 0 {
		return errors.New("Store.TableName can not be empty")
	}
	if cfg.Monitor.SessionSeconds == 0 {
		return errors.New("Monitor.SessionSeconds must be greater than 0")
	}
	if cfg.Monitor.PollIntervalSeconds == 0 {
		return errors.New("Monitor.PollIntervalSeconds must be greater than 0")
	}
	if cfg.Verifier.TopTags <= 0 {
		return errors.New("Verifier.TopTags must be greater than 0")
	}
	if cfg.Verifier.SampleRows <= 0 {
		return errors.New("Verifier.SampleRows must be greater than 0")
	}

	return nil
}
