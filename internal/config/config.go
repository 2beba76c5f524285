// Package config holds the fixed names and runtime constants the folder
// depends on, and the optional logifold.yaml settings that override them.
//
// A configuration file looks like:
//
//	version: 1.0.0
//	default_real_kind: 4
//	default_logical_kind: 4
//	iostat_end: -1
//	iostat_eor: -2
//	color: auto
//
// Every setting can also be overridden from the environment
// (LOGIFOLD_DEFAULT_REAL_KIND, LOGIFOLD_DEFAULT_LOGICAL_KIND,
// LOGIFOLD_IOSTAT_END, LOGIFOLD_IOSTAT_EOR, LOGIFOLD_COLOR).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/logifold/internal/diagnostics"
	"github.com/funvibe/logifold/internal/typesystem"
)

// Color modes for diagnostics output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the logifold.yaml configuration.
type Config struct {
	// Version is the configuration schema version (semver).
	Version string `yaml:"version"`

	// DefaultRealKind is the precision used by the IEEE classification
	// intrinsics.
	DefaultRealKind int `yaml:"default_real_kind,omitempty"`

	// DefaultLogicalKind is the kind of relational results and of
	// LOGICAL() without KIND=.
	DefaultLogicalKind int `yaml:"default_logical_kind,omitempty"`

	// IostatEnd and IostatEor are the runtime's end-of-file and
	// end-of-record status codes.
	IostatEnd int64 `yaml:"iostat_end,omitempty"`
	IostatEor int64 `yaml:"iostat_eor,omitempty"`

	// Color is auto, always or never.
	Color string `yaml:"color,omitempty"`

	// path is where the configuration was read from, for messages.
	path string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Version:            "1.0.0",
		DefaultRealKind:    DefaultRealKind,
		DefaultLogicalKind: DefaultLogicalKind,
		IostatEnd:          IostatEnd,
		IostatEor:          IostatEor,
		Color:              ColorAuto,
	}
}

// LoadConfig reads and validates a configuration file. Environment
// overrides are applied after the file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, diagnostics.NewError(diagnostics.ErrC001, path, err.Error())
	}
	cfg, err := ParseConfig(data, path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseConfig decodes configuration data on top of the defaults. Unknown
// keys are rejected.
func ParseConfig(data []byte, path string) (*Config, error) {
	cfg := Default()
	cfg.path = path
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, diagnostics.NewError(diagnostics.ErrC001, path, err.Error())
	}
	if err := cfg.checkVersion(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) checkVersion() error {
	v, err := semver.NewVersion(c.Version)
	if err != nil {
		return diagnostics.NewError(diagnostics.ErrC003, c.path, "version", err.Error())
	}
	constraint, err := semver.NewConstraint(SupportedConfigVersions)
	if err != nil {
		return fmt.Errorf("bad version constraint %q: %w", SupportedConfigVersions, err)
	}
	if !constraint.Check(v) {
		return diagnostics.NewError(diagnostics.ErrC002, c.path, v.String(), SupportedConfigVersions)
	}
	return nil
}

// ApplyEnv overrides settings from LOGIFOLD_* environment variables.
func (c *Config) ApplyEnv() {
	c.DefaultRealKind = env.Int("LOGIFOLD_DEFAULT_REAL_KIND", c.DefaultRealKind)
	c.DefaultLogicalKind = env.Int("LOGIFOLD_DEFAULT_LOGICAL_KIND", c.DefaultLogicalKind)
	c.IostatEnd = int64(env.Int("LOGIFOLD_IOSTAT_END", int(c.IostatEnd)))
	c.IostatEor = int64(env.Int("LOGIFOLD_IOSTAT_EOR", int(c.IostatEor)))
	c.Color = env.Str("LOGIFOLD_COLOR", c.Color)
}

// Validate checks kinds, status codes and the color mode.
func (c *Config) Validate() error {
	if !typesystem.IsValidKind(typesystem.Real, c.DefaultRealKind) {
		return diagnostics.NewError(diagnostics.ErrC003, c.path, "default_real_kind",
			fmt.Sprintf("REAL(%d) is not supported", c.DefaultRealKind))
	}
	if !typesystem.IsValidKind(typesystem.Logical, c.DefaultLogicalKind) {
		return diagnostics.NewError(diagnostics.ErrC003, c.path, "default_logical_kind",
			fmt.Sprintf("LOGICAL(%d) is not supported", c.DefaultLogicalKind))
	}
	if c.IostatEnd == c.IostatEor {
		return diagnostics.NewError(diagnostics.ErrC003, c.path, "iostat_eor",
			"must differ from iostat_end")
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return diagnostics.NewError(diagnostics.ErrC003, c.path, "color",
			fmt.Sprintf("%q is not one of auto, always, never", c.Color))
	}
	return nil
}

// Path returns the file the configuration was loaded from, if any.
func (c *Config) Path() string { return c.path }
