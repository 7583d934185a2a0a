package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ProjectConfig represents an effc.toml project configuration file.
type ProjectConfig struct {
	// Backend names the target back end. Only "ml" is implemented.
	Backend string `toml:"backend,omitempty"`
	// OutDir is the directory emitted .sml files are written into.
	OutDir string `toml:"out,omitempty"`
	// KOutput selects how diagnostics are rendered: "text" or "yaml".
	KOutput string `toml:"output,omitempty"`
}

// LoadProjectConfig loads an effc.toml file from the given path.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	var config ProjectConfig
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &config, nil
}

// FindProjectConfig searches for an effc.toml file starting from dir and
// walking up to parent directories. Returns ("", nil, nil) if not found.
func FindProjectConfig(dir string) (string, *ProjectConfig, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		path := filepath.Join(dir, "effc.toml")
		if _, err := os.Stat(path); err == nil {
			config, err := LoadProjectConfig(path)
			if err != nil {
				return "", nil, err
			}
			return path, config, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}
