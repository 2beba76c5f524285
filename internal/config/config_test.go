package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/logifold/internal/diagnostics"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func expectCode(t *testing.T, err error, code diagnostics.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %s, got none", code)
	}
	de, ok := err.(*diagnostics.DiagnosticError)
	if !ok {
		t.Fatalf("expected *diagnostics.DiagnosticError, got %T: %v", err, err)
	}
	if de.Code != code {
		t.Fatalf("expected error %s, got %s: %v", code, de.Code, err)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
version: 1.2.0
default_real_kind: 8
iostat_end: -10
iostat_eor: -20
color: never
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DefaultRealKind != 8 {
		t.Errorf("DefaultRealKind = %d, want 8", cfg.DefaultRealKind)
	}
	if cfg.DefaultLogicalKind != DefaultLogicalKind {
		t.Errorf("DefaultLogicalKind = %d, want default", cfg.DefaultLogicalKind)
	}
	if cfg.IostatEnd != -10 || cfg.IostatEor != -20 {
		t.Errorf("iostat = %d/%d", cfg.IostatEnd, cfg.IostatEor)
	}
	if cfg.Path() != path {
		t.Errorf("Path = %s", cfg.Path())
	}
}

func TestConfigVersionConstraint(t *testing.T) {
	_, err := ParseConfig([]byte("version: 2.0.0\n"), "x.yaml")
	expectCode(t, err, diagnostics.ErrC002)

	_, err = ParseConfig([]byte("version: banana\n"), "x.yaml")
	expectCode(t, err, diagnostics.ErrC003)
}

func TestConfigRejectsUnknownKeys(t *testing.T) {
	_, err := ParseConfig([]byte("version: 1.0.0\nfold_everything: true\n"), "x.yaml")
	expectCode(t, err, diagnostics.ErrC001)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		setting string
	}{
		{"real kind", func(c *Config) { c.DefaultRealKind = 16 }, "default_real_kind"},
		{"logical kind", func(c *Config) { c.DefaultLogicalKind = 3 }, "default_logical_kind"},
		{"same sentinels", func(c *Config) { c.IostatEor = c.IostatEnd }, "iostat_eor"},
		{"color", func(c *Config) { c.Color = "sometimes" }, "color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			expectCode(t, err, diagnostics.ErrC003)
			if !strings.Contains(err.Error(), tt.setting) {
				t.Errorf("error %q does not name %s", err.Error(), tt.setting)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LOGIFOLD_DEFAULT_LOGICAL_KIND", "8")
	t.Setenv("LOGIFOLD_COLOR", "always")
	cfg := Default()
	cfg.ApplyEnv()
	if cfg.DefaultLogicalKind != 8 {
		t.Errorf("DefaultLogicalKind = %d, want 8", cfg.DefaultLogicalKind)
	}
	if cfg.Color != ColorAlways {
		t.Errorf("Color = %s, want always", cfg.Color)
	}
	if cfg.DefaultRealKind != DefaultRealKind {
		t.Errorf("unset variable changed DefaultRealKind to %d", cfg.DefaultRealKind)
	}
}
