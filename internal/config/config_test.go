package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Toy.DebounceSeconds != 0.3 {
		t.Errorf("expected debounce 0.3, got %f", cfg.Toy.DebounceSeconds)
	}
	if cfg.Toy.EnergyInterval != 1.0 {
		t.Errorf("expected energy interval 1.0, got %f", cfg.Toy.EnergyInterval)
	}
	if cfg.Toy.InitialShapes != 5 {
		t.Errorf("expected 5 initial shapes, got %d", cfg.Toy.InitialShapes)
	}
	if !cfg.Display.Fullscreen {
		t.Error("expected fullscreen by default")
	}
	if cfg.Display.FPS != 60 {
		t.Errorf("expected 60 fps, got %d", cfg.Display.FPS)
	}
}

func TestParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Toy.InitialShapes = 9
	cfg.Toy.TwitchChance = 0.7

	p := cfg.Params()
	if p.InitialShapes != 9 {
		t.Errorf("expected 9 initial shapes, got %d", p.InitialShapes)
	}
	if p.TwitchChance != 0.7 {
		t.Errorf("expected twitch chance 0.7, got %f", p.TwitchChance)
	}
	if p.MinSize != 15 {
		t.Errorf("expected untouched min size 15, got %f", p.MinSize)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fps", func(c *Config) { c.Display.FPS = 0 }},
		{"windowed without size", func(c *Config) { c.Display.Fullscreen = false; c.Display.Width = 0 }},
		{"negative shapes", func(c *Config) { c.Toy.InitialShapes = -1 }},
		{"negative debounce", func(c *Config) { c.Toy.DebounceSeconds = -0.1 }},
		{"zero energy interval", func(c *Config) { c.Toy.EnergyInterval = 0 }},
		{"zero activity divisor", func(c *Config) { c.Toy.ActivityPerEnergy = 0 }},
		{"twitch chance above one", func(c *Config) { c.Toy.TwitchChance = 1.5 }},
		{"negative spike chance", func(c *Config) { c.Toy.SpikeChance = -0.5 }},
		{"zero cell", func(c *Config) { c.Terminal.CellWidth = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toy.yaml")
	data := []byte("seed: 42\ndisplay:\n  fullscreen: false\ntoy:\n  initial_shapes: 8\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Seed)
	}
	if cfg.Display.Fullscreen {
		t.Error("expected windowed display")
	}
	if cfg.Toy.InitialShapes != 8 {
		t.Errorf("expected 8 shapes, got %d", cfg.Toy.InitialShapes)
	}
	if cfg.Toy.DebounceSeconds != DefaultDebounce {
		t.Errorf("unset field should keep default, got %f", cfg.Toy.DebounceSeconds)
	}
}

func TestLoadInto_KeepsPresetValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toy.yaml")
	if err := os.WriteFile(path, []byte("seed: 9\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadInto(GetPreset("frantic"), path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Seed != 9 {
		t.Errorf("expected seed 9 from file, got %d", cfg.Seed)
	}
	if cfg.Toy.InitialShapes != 12 || cfg.Toy.DebounceSeconds != 0.1 {
		t.Errorf("expected frantic values to survive, got %+v", cfg.Toy)
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("toy:\n  energy_interval: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("frantic")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", *loaded, *cfg)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("calm")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Toy.InitialShapes != 3 {
		t.Errorf("expected 3 shapes, got %d", cfg.Toy.InitialShapes)
	}

	cfg.Toy.InitialShapes = 99
	if GetPreset("calm").Toy.InitialShapes != 3 {
		t.Error("preset mutated through returned config")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		cfg := GetPreset(name)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestLoopOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Toy.DebounceSeconds = 0.5
	cfg.Toy.EnergyInterval = 2

	opts := cfg.LoopOptions()
	if opts.Debounce != 0.5 || opts.EnergyInterval != 2 {
		t.Errorf("unexpected loop options %+v", opts)
	}
}
