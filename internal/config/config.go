// Package config loads the optional user configuration consulted when
// rendering integration scripts and resolving the state store location.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aether-sh/aether/internal/shell"
	"github.com/aether-sh/aether/internal/store"
)

type Config struct {
	// StoreDir overrides the state store location. AETHER_STATE_DIR still
	// wins over this value.
	StoreDir      string `yaml:"store_dir"`
	Keybinding    string `yaml:"keybinding"`
	PipeAlias     string `yaml:"pipe_alias"`
	SentinelAlias string `yaml:"sentinel_alias"`
}

func Default() Config {
	return Config{
		Keybinding:    shell.DefaultKeybinding,
		PipeAlias:     shell.DefaultPipeAlias,
		SentinelAlias: shell.DefaultSentinelAlias,
	}
}

// DefaultPath resolves ~/.config/aether/config.yaml (or the platform
// equivalent via os.UserConfigDir).
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, "aether", "config.yaml"), nil
}

// Load reads the config file at path. An absent file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Keybinding == "" {
		c.Keybinding = shell.DefaultKeybinding
	}
	if c.PipeAlias == "" {
		c.PipeAlias = shell.DefaultPipeAlias
	}
	if c.SentinelAlias == "" {
		c.SentinelAlias = shell.DefaultSentinelAlias
	}
}

// StoreRoot resolves the state store directory: environment override first,
// then the configured directory, then the shared temporary-directory default.
func (c Config) StoreRoot() string {
	if override := os.Getenv("AETHER_STATE_DIR"); override != "" {
		return override
	}
	if c.StoreDir != "" {
		return c.StoreDir
	}
	return store.DefaultRootDir()
}

// ScriptOptions maps the config onto script rendering options.
func (c Config) ScriptOptions() shell.Options {
	return shell.Options{
		Keybinding:    c.Keybinding,
		PipeAlias:     c.PipeAlias,
		SentinelAlias: c.SentinelAlias,
	}
}
