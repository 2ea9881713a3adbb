// Package config loads the config file of the shell.
//
// The file is optional. YAML and TOML are both accepted, chosen by the
// extension of the file; fields missing from the file keep their defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"src.treesh.dev/pkg/env"
	"src.treesh.dev/pkg/logutil"
	"src.treesh.dev/pkg/output"
)

var logger = logutil.GetLogger("config")

// Config is the configuration of the shell.
type Config struct {
	// Prompt format. "{file}" is replaced with the base name of the store
	// file and "{group}" with the working group.
	Prompt  string        `yaml:"prompt" toml:"prompt"`
	Color   string        `yaml:"color" toml:"color"`
	History HistoryConfig `yaml:"history" toml:"history"`
	Cat     CatConfig     `yaml:"cat" toml:"cat"`
	Ls      LsConfig      `yaml:"ls" toml:"ls"`
}

// HistoryConfig configures the command history.
type HistoryConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`
	// Number of commands loaded into the editor at startup.
	Limit int `yaml:"limit" toml:"limit"`
}

// CatConfig configures the cat command.
type CatConfig struct {
	MaxBytes int `yaml:"max_bytes" toml:"max_bytes"`
}

// LsConfig configures the ls command.
type LsConfig struct {
	Long bool `yaml:"long" toml:"long"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Prompt: "{file}:{group}> ",
		Color:  output.ColorAuto,
		History: HistoryConfig{
			Enabled: true,
			Limit:   1000,
		},
		Cat: CatConfig{MaxBytes: 64 * 1024},
	}
}

// Load reads the config file at path, overlaying it onto the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("%s: unsupported config format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values of the configuration.
func (c *Config) Validate() error {
	switch c.Color {
	case output.ColorAuto, output.ColorAlways, output.ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q", c.Color)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("history.limit must not be negative, got %d", c.History.Limit)
	}
	if c.Cat.MaxBytes < 0 {
		return fmt.Errorf("cat.max_bytes must not be negative, got %d", c.Cat.MaxBytes)
	}
	return nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Paths returns the paths searched for a config file, in order.
func Paths() []string {
	dir := os.Getenv(env.XDG_CONFIG_HOME)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		dir = filepath.Join(home, ".config")
	}
	return []string{
		filepath.Join(dir, "treesh", "config.yaml"),
		filepath.Join(dir, "treesh", "config.toml"),
	}
}

// LoadOrDefault loads the config file at path if it is not empty. Otherwise
// it loads the first file among Paths that exists, or returns the defaults
// when none exists.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	for _, p := range Paths() {
		cfg, err := Load(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err == nil {
			logger.Debug("loaded config", "path", p)
		}
		return cfg, err
	}
	logger.Debug("no config file, using defaults")
	return Default(), nil
}

// FormatPrompt expands the placeholders of the prompt format.
func (c *Config) FormatPrompt(file, group string) string {
	return strings.NewReplacer("{file}", filepath.Base(file), "{group}", group).Replace(c.Prompt)
}
