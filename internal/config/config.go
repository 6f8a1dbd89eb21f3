// Package config loads the optional user configuration controlling merge
// behavior and CLI defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/duramato/guessit/internal/guess"
	"github.com/duramato/guessit/internal/matcher"
)

// Config holds the tunable knobs of the parsing pipeline.
type Config struct {
	// AppendProperties are accumulated into lists instead of being
	// reconciled to a single value.
	AppendProperties []string `json:"append_properties"`

	// NoiseThreshold is the confidence below which a property is dropped
	// from the final result.
	NoiseThreshold float64 `json:"noise_threshold"`

	// ExcludeProperties are removed from every result.
	ExcludeProperties []string `json:"exclude_properties"`

	// CacheTTLMinutes bounds how long parse results are reused for
	// identical inputs. Zero disables expiry.
	CacheTTLMinutes int `json:"cache_ttl_minutes"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		AppendProperties: []string{
			matcher.PropEpisode,
			matcher.PropLanguage,
			matcher.PropSubtitleLanguage,
			matcher.PropOther,
		},
		NoiseThreshold:  guess.DefaultNoiseThreshold,
		CacheTTLMinutes: 30,
		LogLevel:        "warn",
	}
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".guessit", "config.json"), nil
}

// Load reads the configuration from disk, falling back to defaults when no
// config file exists. Missing fields are filled in with defaults.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaults := DefaultConfig()
	if cfg.AppendProperties == nil {
		cfg.AppendProperties = defaults.AppendProperties
	}
	if cfg.NoiseThreshold == 0 {
		cfg.NoiseThreshold = defaults.NoiseThreshold
	}
	if cfg.CacheTTLMinutes == 0 {
		cfg.CacheTTLMinutes = defaults.CacheTTLMinutes
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}

	return &cfg, nil
}

// Save writes the configuration to disk.
func (cfg *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
