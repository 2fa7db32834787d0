// Package config loads the shell's ambient settings: whether debug logging
// is on, extra PATH directories, and overrides for the history file and size that HISTFILE doesn't
// already cover. It follows the teacher's core/config.go shape, a
// validated struct loaded through an afero.Fs so tests can inject an
// in-memory filesystem, generalized from the honeypot's session-recording
// options to the handful of knobs a local shell actually needs.
package config

import (
	"os"
	"path/filepath"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// Config holds the shell's ambient configuration. HistFile only applies
// when the HISTFILE environment variable is unset, since HISTFILE always
// takes precedence per spec.md §6.
type Config struct {
	HistFile  string   `yaml:"hist_file"`
	HistSize  int      `yaml:"hist_size" validate:"gte=0"`
	ExtraPath []string `yaml:"extra_path"`
	Debug     bool     `yaml:"debug"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{HistSize: 1000}
}

// Load reads and validates the YAML config at path using fs. A missing
// file is not an error: Default is returned instead, the same tolerant
// treatment history.Load gives a missing HISTFILE.
func Load(fs afero.Fs, path string) (*Config, error) {
	cfg := Default()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns the config file basicshell looks for at startup,
// under the user's config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "basicshell", "config.yaml")
}

// ResolveHistFile returns the history file the driver should use: the
// HISTFILE environment variable if set, else the config's HistFile.
func (c *Config) ResolveHistFile(getenv func(string) string) string {
	if v := getenv("HISTFILE"); v != "" {
		return v
	}
	return c.HistFile
}

// ResolvePath returns the PATH the path resolver and completer should
// search: the process's own PATH with the config's ExtraPath directories
// appended, so a user can widen lookup/completion without touching their
// shell's environment.
func (c *Config) ResolvePath(getenv func(string) string) string {
	path := getenv("PATH")
	if len(c.ExtraPath) == 0 {
		return path
	}
	extra := strings.Join(c.ExtraPath, ":")
	if path == "" {
		return extra
	}
	return path + ":" + extra
}
