// Package config holds the session configuration record: key-binding
// mode, color suppression, and the history file location.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultHistoryName is the history file created under the user's home
// directory when no --history flag is given.
const DefaultHistoryName = ".starsh_history"

// Config is the resolved session configuration. Fields are immutable
// once the launcher has finished parsing.
type Config struct {
	// ViMode selects Vi-style key bindings instead of Emacs.
	ViMode bool
	// NoColors suppresses ANSI color output.
	NoColors bool
	// HistoryFile is the path where line history is persisted.
	HistoryFile string
}

// Default returns the built-in configuration: Emacs bindings, colors
// on, history under the home directory.
func Default() Config {
	return Config{HistoryFile: DefaultHistoryPath()}
}

// DefaultHistoryPath resolves ~/.starsh_history against the current
// user's home directory. If the home directory cannot be determined,
// the unexpanded name is returned and history lands in the working
// directory.
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultHistoryName
	}
	return filepath.Join(home, DefaultHistoryName)
}

// ExpandHome expands a leading ~ or ~/ to the user's home directory.
// Paths without the shorthand are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// fileConfig mirrors the optional defaults file. All keys are
// optional; absent keys leave the built-in default in place.
type fileConfig struct {
	Vi       *bool  `yaml:"vi"`
	NoColors *bool  `yaml:"no-colors"`
	History  string `yaml:"history"`
}

// FilePath returns the location of the optional defaults file,
// ~/.config/starsh/config.yaml.
func FilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "starsh", "config.yaml")
}

// Load returns the default configuration overlaid with the defaults
// file at path, if it exists. A missing file is not an error; a
// malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if fc.Vi != nil {
		cfg.ViMode = *fc.Vi
	}
	if fc.NoColors != nil {
		cfg.NoColors = *fc.NoColors
	}
	if strings.TrimSpace(fc.History) != "" {
		cfg.HistoryFile = ExpandHome(strings.TrimSpace(fc.History))
	}

	return cfg, nil
}
