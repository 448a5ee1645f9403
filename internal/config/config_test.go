package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.IVP.Problem != "ivp1" {
		t.Errorf("expected problem ivp1, got %s", cfg.IVP.Problem)
	}
	if cfg.IVP.StepSize <= 0 {
		t.Error("step size should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown method", func(c *Config) { c.IVP.Method = "rk45" }},
		{"zero step", func(c *Config) { c.IVP.StepSize = 0 }},
		{"negative step list", func(c *Config) { c.IVP.StepSizes = []float64{0.1, -0.05} }},
		{"negative tf", func(c *Config) { c.IVP.Tf = -1 }},
		{"unknown solver", func(c *Config) { c.Spline.Solver = "qr" }},
		{"zero nodes", func(c *Config) { c.Spline.Nodes = []int{0} }},
		{"one point", func(c *Config) { c.Spline.Points = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.IVP.Problem = "ivp2"
	cfg.IVP.Method = "euler"
	cfg.IVP.StepSize = 0.05
	cfg.Spline.Solver = "dense"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.IVP.Problem != "ivp2" || loaded.IVP.Method != "euler" || loaded.IVP.StepSize != 0.05 {
		t.Errorf("ivp section not round-tripped: %+v", loaded.IVP)
	}
	if loaded.Spline.Solver != "dense" {
		t.Errorf("solver = %s, want dense", loaded.Spline.Solver)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("ivp:\n  method: euler\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.IVP.Method != "euler" {
		t.Errorf("method = %s, want euler", cfg.IVP.Method)
	}
	if cfg.IVP.StepSize != DefaultStepSize {
		t.Errorf("step size = %v, want default %v", cfg.IVP.StepSize, DefaultStepSize)
	}
	if cfg.Spline.Points != DefaultPoints {
		t.Errorf("points = %d, want default %d", cfg.Spline.Points, DefaultPoints)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("ivp:\n  step_size: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for negative step size")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("ivp1", "fine")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.IVP.StepSize != 0.01 || cfg.IVP.Method != "rk4" {
		t.Errorf("unexpected preset values: %+v", cfg.IVP)
	}
	if cfg.Spline.Points != DefaultPoints {
		t.Error("preset should keep defaults for unset sections")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset invalid: %v", err)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("ivp1", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "fine"); cfg != nil {
		t.Error("expected nil for nonexistent group")
	}
}

func TestPresetsValid(t *testing.T) {
	for group := range Presets {
		for _, name := range ListPresets(group) {
			if err := GetPreset(group, name).Validate(); err != nil {
				t.Errorf("preset %s/%s invalid: %v", group, name, err)
			}
		}
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("ivp1")
	if len(presets) != 3 || presets[0] != "coarse" {
		t.Errorf("unexpected presets: %v", presets)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent group")
	}
}
