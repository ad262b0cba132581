// Package config loads the optional TOML configuration file for the
// cmd/josedb CLI front end. It configures that front end only — default
// database file path, REPL prompt text, whether auto-save is enabled —
// never the core engine, which always takes its file path as an explicit
// constructor argument.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultConfigPath is the conventional config file name the CLI looks for
// when no --config flag is given.
const DefaultConfigPath = ".josedb.toml"

// Config is the top-level TOML document.
type Config struct {
	Database databaseConfig `toml:"database"`
	Shell    shellConfig    `toml:"shell"`
}

type databaseConfig struct {
	Path     string `toml:"path"`
	AutoSave bool   `toml:"auto_save"`
}

type shellConfig struct {
	Prompt string `toml:"prompt"`
}

// Default returns the configuration used when no config file is present.
func Default() Config {
	return Config{
		Database: databaseConfig{Path: "josedb.josedb", AutoSave: true},
		Shell:    shellConfig{Prompt: "josedb> "},
	}
}

// Load reads and decodes the TOML file at path, filling in defaults for any
// field the file leaves unset. A missing file is not an error: it yields
// Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: stat %q: %w", path, err)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %q: %w", path, err)
	}
	return cfg, nil
}

// DatabasePath returns the configured database file, or "" if auto-save is
// disabled (the CLI then opens an in-memory-only Executor).
func (c Config) DatabasePath() string {
	if !c.Database.AutoSave {
		return ""
	}
	return c.Database.Path
}

// Prompt returns the configured REPL prompt string.
func (c Config) Prompt() string {
	if c.Shell.Prompt == "" {
		return "josedb> "
	}
	return c.Shell.Prompt
}
