// Package config loads git-release-name settings from YAML and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/git-release-name/internal/phrase"
)

const (
	// AppDir is the directory name used under the user config and home dirs.
	AppDir = "git-release-name"
	// FileName is the config file name inside AppDir.
	FileName = "config.yaml"
	// DefaultListen matches the port the web API has always used.
	DefaultListen = "0.0.0.0:6767"
)

// Environment variables that override file settings.
const (
	EnvFormat = "GIT_RELEASE_NAME_FORMAT"
	EnvWords  = "GIT_RELEASE_NAME_WORDS"
	EnvDB     = "GIT_RELEASE_NAME_DB"
	EnvListen = "GIT_RELEASE_NAME_LISTEN"
)

// ErrInvalidLogLevel is returned when log_level is not a zap level.
var ErrInvalidLogLevel = errors.New("invalid log level")

// Config holds all settings.
type Config struct {
	// Format is the default case token applied when none is given.
	Format string `yaml:"format"`
	// DictionaryDir points at external word lists. Empty uses the built-in lists.
	DictionaryDir string `yaml:"dictionary_dir"`
	// DB is the release registry path.
	DB string `yaml:"db"`
	// Listen is the HTTP listen address for serve.
	Listen string `yaml:"listen"`
	// LogLevel is a zap level name.
	LogLevel string `yaml:"log_level"`
}

// Default returns a Config with defaults filled in.
func Default() *Config {
	return &Config{
		Format:   phrase.Lower.String(),
		DB:       defaultDBPath(),
		Listen:   DefaultListen,
		LogLevel: "info",
	}
}

// Path returns the default config file location.
func Path() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppDir, FileName)
}

func defaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "."+AppDir, "names.db")
}

// Load builds the effective config: defaults, then the file at path (a
// missing file is ignored), then environment overrides. An empty path uses
// Path().
func Load(path string, logger *zap.Logger) (*Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path == "" {
		path = Path()
	}

	cfg := Default()
	if path != "" {
		fileCfg, err := LoadFromFile(path)
		switch {
		case err == nil:
			logger.Debug("Loaded config", zap.String("path", path))
			cfg.Merge(fileCfg)
		case errors.Is(err, os.ErrNotExist):
			logger.Debug("No config file", zap.String("path", path))
		default:
			return nil, err
		}
	}

	cfg.ApplyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile parses a YAML config file. Unset fields stay empty.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// SaveToFile writes c as YAML, creating parent directories.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Merge copies the non-empty fields of other into c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Format != "" {
		c.Format = other.Format
	}
	if other.DictionaryDir != "" {
		c.DictionaryDir = other.DictionaryDir
	}
	if other.DB != "" {
		c.DB = other.DB
	}
	if other.Listen != "" {
		c.Listen = other.Listen
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	c.Merge(&Config{
		Format:        getenv(EnvFormat),
		DictionaryDir: getenv(EnvWords),
		DB:            getenv(EnvDB),
		Listen:        getenv(EnvListen),
	})
}

// Validate checks the format token and log level.
func (c *Config) Validate() error {
	if _, err := c.Case(); err != nil {
		return fmt.Errorf("config format: %w", err)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Case parses the configured default format.
func (c *Config) Case() (phrase.Case, error) {
	if c.Format == "" {
		return phrase.Lower, nil
	}
	return phrase.ParseCase(c.Format)
}

// Level parses the configured log level.
func (c *Config) Level() (zapcore.Level, error) {
	if c.LogLevel == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return lvl, nil
}
