// Package config loads the optional per-project configuration file.
//
// The file lets a project pin the flags its developers would otherwise pass
// on every run. CLI flags append to the file's list values and override its
// scalar values; environment variables sit between the two.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up in the project
// directory.
const FileName = ".conan-vscode.yaml"

// Config holds per-project defaults for a generation run.
type Config struct {
	// Extra include directories, merged ahead of dependency include paths.
	Includes []string `yaml:"includes"`

	// Extra preprocessor definitions in NAME or NAME=VALUE form. Applied
	// after dependency defines, overwriting without error.
	Defines []string `yaml:"defines"`

	// Macro names to remove after all defines are applied.
	Undefines []string `yaml:"undefines"`

	// Path to an existing clang-format binary. Empty means install one
	// through conan.
	ClangFormat string `yaml:"clang_format"`

	// Arguments forwarded verbatim to conan install.
	InstallArgs []string `yaml:"install_args"`

	// Conan binary name or path.
	Conan string `yaml:"conan"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{Conan: "conan"}
}

// Load reads the project config from dir. A missing file is not an error;
// defaults plus environment overrides are returned.
func Load(dir string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	if cfg.Conan == "" {
		cfg.Conan = "conan"
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CONAN_VSCODE_CONAN"); v != "" {
		c.Conan = v
	}
	if v := os.Getenv("CONAN_VSCODE_CLANG_FORMAT"); v != "" {
		c.ClangFormat = v
	}
}
