package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Output.Dir != "generated" {
		t.Errorf("expected default output dir generated, got %s", cfg.Output.Dir)
	}
	if cfg.Output.Base != "inv_cal_const" {
		t.Errorf("expected default output base inv_cal_const, got %s", cfg.Output.Base)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Log.Level)
	}
	if cfg.Watch.Enabled {
		t.Error("expected watch mode disabled by default")
	}
	if len(cfg.Dataset.Patterns) != 0 {
		t.Error("expected embedded dataset by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing output dir",
			modify:  func(c *Config) { c.Output.Dir = "" },
			wantErr: true,
		},
		{
			name:    "missing output base",
			modify:  func(c *Config) { c.Output.Base = "" },
			wantErr: true,
		},
		{
			name:    "unknown output format",
			modify:  func(c *Config) { c.Output.Formats = []string{"xml"} },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "bad debounce delay",
			modify:  func(c *Config) { c.Watch.DebounceDelay = "soon" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temp file with config
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "calres.yaml")

	content := `
dataset:
  patterns:
    - "cal/**/*.yaml"
context:
  gate-ic-type: type7
  power-module-type: case
output:
  dir: "out"
  base: "inv_cal_const"
  formats: [c, yaml]
watch:
  enabled: true
  debounce_delay: 2s
log:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if len(cfg.Dataset.Patterns) != 1 || cfg.Dataset.Patterns[0] != "cal/**/*.yaml" {
		t.Errorf("expected one dataset pattern, got %v", cfg.Dataset.Patterns)
	}
	if cfg.Context["gate-ic-type"] != "type7" {
		t.Errorf("expected gate-ic-type type7, got %s", cfg.Context["gate-ic-type"])
	}
	if cfg.Output.Dir != "out" {
		t.Errorf("expected output dir out, got %s", cfg.Output.Dir)
	}
	if len(cfg.Output.Formats) != 2 {
		t.Errorf("expected 2 output formats, got %d", len(cfg.Output.Formats))
	}
	if !cfg.Watch.Enabled {
		t.Error("expected watch mode enabled")
	}
	if cfg.Watch.GetDebounceDelay() != 2*time.Second {
		t.Errorf("expected 2s debounce, got %v", cfg.Watch.GetDebounceDelay())
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Log.Level)
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	base.Context["gate-ic-type"] = "type2"
	override := &Config{
		Context: map[string]string{
			"gate-ic-type":      "type7",
			"power-module-type": "case",
		},
		Output: OutputConfig{
			Dir: "/override/out",
		},
	}

	base.Merge(override)

	if base.Context["gate-ic-type"] != "type7" {
		t.Errorf("expected overridden gate-ic-type type7, got %s", base.Context["gate-ic-type"])
	}
	if base.Context["power-module-type"] != "case" {
		t.Errorf("expected merged power-module-type case, got %s", base.Context["power-module-type"])
	}
	if base.Output.Dir != "/override/out" {
		t.Errorf("expected output dir /override/out, got %s", base.Output.Dir)
	}
	// Base should remain where override didn't set it
	if base.Output.Base != "inv_cal_const" {
		t.Errorf("expected output base to remain default, got %s", base.Output.Base)
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "calres.yaml")

	cfg := DefaultConfig()
	cfg.Output.Base = "saved_base"

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	// Verify file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	// Load and verify
	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Output.Base != "saved_base" {
		t.Errorf("expected output base saved_base, got %s", loaded.Output.Base)
	}
}
