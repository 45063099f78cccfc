// Package config loads persistent CLI defaults from a YAML file.
//
// Lookup order: explicit path (--config), $VARBIN_CONFIG, then
// <UserConfigDir>/varbin/config.yaml. A missing default file is not an
// error; a missing explicit file is. Flags set on the command line always
// win over values from the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable holding a config file path.
const EnvPath = "VARBIN_CONFIG"

// Config holds defaults for the binning command.
type Config struct {
	BinSize         uint32 `yaml:"bin_size"`
	Output          string `yaml:"output"`
	MaxBins         int    `yaml:"max_bins"`
	Threads         int    `yaml:"threads"`
	MaxBars         int    `yaml:"max_bars"`
	LogLevel        string `yaml:"log_level"`
	NoMatchExitCode int    `yaml:"no_match_exit_code"`
}

// Defaults are the built-in values used when no file overrides them.
var Defaults = Config{
	BinSize:         1_000_000,
	Output:          "text",
	MaxBins:         0,
	Threads:         0,
	MaxBars:         0,
	LogLevel:        "info",
	NoMatchExitCode: 1,
}

// DefaultPath returns <UserConfigDir>/varbin/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "varbin", "config.yaml"), nil
}

// Resolve picks the config path to read and whether it must exist.
func Resolve(explicit string) (path string, required bool) {
	if explicit != "" {
		return explicit, true
	}
	if p := os.Getenv(EnvPath); p != "" {
		return p, true
	}
	p, err := DefaultPath()
	if err != nil {
		return "", false
	}
	return p, false
}

// Load reads the config file chosen by Resolve(explicit), overlaid on Defaults.
// It also returns the path actually read ("" when defaults were used).
func Load(explicit string) (Config, string, error) {
	path, required := Resolve(explicit)
	if path == "" {
		return Defaults, "", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return Defaults, "", nil
		}
		return Defaults, "", fmt.Errorf("config: %w", err)
	}
	c, err := Parse(b)
	if err != nil {
		return Defaults, "", fmt.Errorf("config %s: %w", path, err)
	}
	return c, path, nil
}

// Parse decodes YAML over Defaults. Unknown keys are rejected.
func Parse(b []byte) (Config, error) {
	c := Defaults
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Defaults, err
	}
	if err := c.Validate(); err != nil {
		return Defaults, err
	}
	return c, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.BinSize == 0 {
		return errors.New("bin_size must be > 0")
	}
	if c.MaxBins < 0 {
		return errors.New("max_bins must be ≥ 0")
	}
	if c.Threads < 0 {
		return errors.New("threads must be ≥ 0")
	}
	if c.MaxBars < 0 {
		return errors.New("max_bars must be ≥ 0")
	}
	if c.NoMatchExitCode < 0 || c.NoMatchExitCode > 255 {
		return errors.New("no_match_exit_code must be between 0 and 255")
	}
	return nil
}

// Marshal renders c as YAML (used by `varbin config`).
func Marshal(c Config) ([]byte, error) {
	return yaml.Marshal(c)
}
