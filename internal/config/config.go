// Package config handles global configuration and environment defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvFile is the environment variable naming the default database file.
// It is also honored from a .env file in the working directory.
const EnvFile = "JDB_FILE"

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "jdb"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
)

// Global represents configuration stored in ~/.config/jdb/config.yml.
type Global struct {
	DefaultFile string `yaml:"default_file,omitempty"`
	Pretty      *bool  `yaml:"pretty,omitempty"`
}

// globalCache caches the loaded global config.
var globalCache *Global

// Path returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/jdb/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load reads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func Load() (*Global, error) {
	if globalCache != nil {
		return globalCache, nil
	}

	path := Path()
	if path == "" {
		return &Global{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Global{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Global
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.DefaultFile != "" {
		cfg.DefaultFile = ExpandTilde(cfg.DefaultFile)
	}

	globalCache = &cfg
	return &cfg, nil
}

// Save writes the global configuration file, creating its directory.
func Save(cfg *Global) error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	globalCache = nil
	return nil
}

// ResetCache clears the cached global config. Useful for testing.
func ResetCache() {
	globalCache = nil
}

// ResolveDatabasePath picks the database file: the flag value if given,
// then the JDB_FILE environment variable, then the configured default.
func ResolveDatabasePath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(EnvFile); env != "" {
		return env, nil
	}
	cfg, _ := Load()
	if cfg.DefaultFile != "" {
		return cfg.DefaultFile, nil
	}
	return "", fmt.Errorf("no database file: pass --file, set %s, or set default_file in %s", EnvFile, Path())
}

// DefaultPretty returns the configured pretty default, true if unset.
func DefaultPretty() bool {
	cfg, _ := Load()
	if cfg.Pretty != nil {
		return *cfg.Pretty
	}
	return true
}

// ExpandTilde expands a leading ~ to the user's home directory.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
