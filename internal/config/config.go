package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pettoy/internal/loop"
	"github.com/san-kum/pettoy/internal/sim"
)

const (
	DefaultFPS             = 60
	DefaultTitle           = "Cat Playtime"
	DefaultDebounce        = 0.3
	DefaultEnergyInterval  = 1.0
	DefaultInitialShapes   = 5
	DefaultTwitchChance    = 0.4
	DefaultSpikeChance     = 0.1
	DefaultActivityDivisor = 5.0
	DefaultCellWidth       = 8
	DefaultCellHeight      = 16
	DefaultWindowWidth     = 1280
	DefaultWindowHeight    = 720
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Seed     int64          `yaml:"seed"`
	Display  DisplayConfig  `yaml:"display"`
	Toy      ToyConfig      `yaml:"toy"`
	Terminal TerminalConfig `yaml:"terminal"`
}

type DisplayConfig struct {
	Fullscreen bool   `yaml:"fullscreen"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	FPS        int    `yaml:"fps"`
	Title      string `yaml:"title"`
}

type ToyConfig struct {
	InitialShapes     int     `yaml:"initial_shapes"`
	DebounceSeconds   float64 `yaml:"debounce_seconds"`
	EnergyInterval    float64 `yaml:"energy_interval"`
	TwitchChance      float64 `yaml:"twitch_chance"`
	SpikeChance       float64 `yaml:"spike_chance"`
	ActivityPerEnergy float64 `yaml:"activity_per_energy"`
}

// TerminalConfig sizes the virtual pixel area one terminal cell covers.
type TerminalConfig struct {
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
}

func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Fullscreen: true,
			Width:      DefaultWindowWidth,
			Height:     DefaultWindowHeight,
			FPS:        DefaultFPS,
			Title:      DefaultTitle,
		},
		Toy: ToyConfig{
			InitialShapes:     DefaultInitialShapes,
			DebounceSeconds:   DefaultDebounce,
			EnergyInterval:    DefaultEnergyInterval,
			TwitchChance:      DefaultTwitchChance,
			SpikeChance:       DefaultSpikeChance,
			ActivityPerEnergy: DefaultActivityDivisor,
		},
		Terminal: TerminalConfig{
			CellWidth:  DefaultCellWidth,
			CellHeight: DefaultCellHeight,
		},
	}
}

// Load reads a YAML file on top of DefaultConfig and validates the result.
func Load(path string) (*Config, error) {
	return LoadInto(DefaultConfig(), path)
}

// LoadInto overlays the YAML file at path onto cfg, so keys missing from
// the file keep cfg's values, and validates the result.
func LoadInto(cfg *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Display.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.Display.FPS)
	case !c.Display.Fullscreen && (c.Display.Width <= 0 || c.Display.Height <= 0):
		return fmt.Errorf("%w: windowed size must be positive, got %dx%d", ErrInvalidConfig, c.Display.Width, c.Display.Height)
	case c.Toy.InitialShapes < 0:
		return fmt.Errorf("%w: initial_shapes must not be negative, got %d", ErrInvalidConfig, c.Toy.InitialShapes)
	case c.Toy.DebounceSeconds < 0:
		return fmt.Errorf("%w: debounce_seconds must not be negative, got %f", ErrInvalidConfig, c.Toy.DebounceSeconds)
	case c.Toy.EnergyInterval <= 0:
		return fmt.Errorf("%w: energy_interval must be positive, got %f", ErrInvalidConfig, c.Toy.EnergyInterval)
	case c.Toy.ActivityPerEnergy <= 0:
		return fmt.Errorf("%w: activity_per_energy must be positive, got %f", ErrInvalidConfig, c.Toy.ActivityPerEnergy)
	case !unit(c.Toy.TwitchChance):
		return fmt.Errorf("%w: twitch_chance must be within [0, 1], got %f", ErrInvalidConfig, c.Toy.TwitchChance)
	case !unit(c.Toy.SpikeChance):
		return fmt.Errorf("%w: spike_chance must be within [0, 1], got %f", ErrInvalidConfig, c.Toy.SpikeChance)
	case c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0:
		return fmt.Errorf("%w: terminal cell size must be positive", ErrInvalidConfig)
	}
	return nil
}

// Params maps the toy section onto simulation tunables; everything the
// config does not expose keeps its default.
func (c *Config) Params() sim.Params {
	p := sim.DefaultParams()
	p.InitialShapes = c.Toy.InitialShapes
	p.TwitchChance = c.Toy.TwitchChance
	p.SpikeChance = c.Toy.SpikeChance
	p.ActivityPerEnergy = c.Toy.ActivityPerEnergy
	return p
}

func (c *Config) LoopOptions() loop.Options {
	return loop.Options{
		Debounce:       c.Toy.DebounceSeconds,
		EnergyInterval: c.Toy.EnergyInterval,
	}
}

func unit(v float64) bool { return v >= 0 && v <= 1 }
