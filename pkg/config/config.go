// pkg/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file
const (
	EnvArch      = "LIBARCH_ARCH"
	EnvCachePath = "LIBARCH_CACHE_PATH"
)

// DefaultSourceExtensions are the file extensions compiled by the Arduino builder
var DefaultSourceExtensions = []string{".c", ".cpp", ".cc", ".cxx", ".S", ".s"}

// Config holds libarch configuration
type Config struct {
	Arch             string   `yaml:"arch,omitempty"`
	Registry         string   `yaml:"registry,omitempty"`
	CachePath        string   `yaml:"cache_path,omitempty"`
	SourceExtensions []string `yaml:"source_extensions,omitempty"`
	Debug            bool     `yaml:"debug,omitempty"`
	LogLevel         string   `yaml:"log_level,omitempty"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Arch:             os.Getenv(EnvArch),
		CachePath:        getDefaultCachePath(),
		SourceExtensions: append([]string(nil), DefaultSourceExtensions...),
		LogLevel:         "info",
	}
}

// DefaultPath returns $HOME/.config/libarch/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "libarch", "config.yaml"), nil
}

// LoadConfig loads configuration from file. A missing file yields the
// defaults. Environment variables win over file values.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if arch := os.Getenv(EnvArch); arch != "" {
		cfg.Arch = arch
	}
	if cache := os.Getenv(EnvCachePath); cache != "" {
		cfg.CachePath = cache
	}
	if len(cfg.SourceExtensions) == 0 {
		cfg.SourceExtensions = append([]string(nil), DefaultSourceExtensions...)
	}

	return cfg, nil
}

// LoadFile reads only what the file at path contains: no defaults and no
// environment overrides. A missing file yields an empty Config. Use it to
// edit a config file without baking computed values into it.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func getDefaultCachePath() string {
	if path := os.Getenv(EnvCachePath); path != "" {
		return path
	}

	cache, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "libarch")
	}

	return filepath.Join(cache, "libarch")
}
