// Package config loads the daemon's configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"deedles.dev/wlpaperd/output"
	"gopkg.in/yaml.v3"
)

// DefaultSection is the name of the section that applies to outputs
// without a section of their own.
const DefaultSection = "default"

// ErrNoPath is returned when an output has no path configured, neither
// in its own section nor in the default one.
var ErrNoPath = errors.New("no path configured")

// Section configures a single output. A nil Duration is inherited
// from the default section, while an explicit 0 turns rotation off.
type Section struct {
	Path     string         `yaml:"path"`
	Duration *time.Duration `yaml:"duration"`
}

// Config maps output names to their configuration.
type Config map[string]Section

// DefaultPath returns the location of the configuration file when none
// is given explicitly.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("find config directory: %w", err)
	}
	return filepath.Join(dir, "wlpaperd", "config.yaml"), nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}
	return c, nil
}

// Parse parses configuration data.
func Parse(data []byte) (Config, error) {
	var c Config
	err := yaml.Unmarshal(data, &c)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = make(Config)
	}

	for name, s := range c {
		if (s.Duration != nil) && (*s.Duration < 0) {
			return nil, fmt.Errorf("%v: negative duration %v", name, *s.Duration)
		}
	}

	return c, nil
}

// Output returns the output record for the output with the given
// name. Fields missing from the output's own section are taken from
// the default section.
func (c Config) Output(name string) (*output.Output, error) {
	s := c[DefaultSection]
	if over, ok := c[name]; ok && name != "" {
		if over.Path != "" {
			s.Path = over.Path
		}
		if over.Duration != nil {
			s.Duration = over.Duration
		}
	}

	if s.Path == "" {
		return nil, fmt.Errorf("output %q: %w", name, ErrNoPath)
	}

	path, err := expand(s.Path)
	if err != nil {
		return nil, fmt.Errorf("output %q: %w", name, err)
	}

	var d time.Duration
	if s.Duration != nil {
		d = *s.Duration
	}

	return &output.Output{
		Path:     path,
		Duration: d,
	}, nil
}

func expand(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", path, err)
	}
	return filepath.Join(home, path[1:]), nil
}
