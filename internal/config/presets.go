package config

import "sort"

var Presets = map[string]func() *Config{
	"default": DefaultConfig,
	"calm": func() *Config {
		cfg := DefaultConfig()
		cfg.Toy.InitialShapes = 3
		cfg.Toy.DebounceSeconds = 1.0
		cfg.Toy.TwitchChance = 0.15
		cfg.Toy.SpikeChance = 0.02
		cfg.Toy.ActivityPerEnergy = 10
		return cfg
	},
	"frantic": func() *Config {
		cfg := DefaultConfig()
		cfg.Toy.InitialShapes = 12
		cfg.Toy.DebounceSeconds = 0.1
		cfg.Toy.TwitchChance = 0.8
		cfg.Toy.SpikeChance = 0.25
		cfg.Toy.ActivityPerEnergy = 2
		return cfg
	},
	"windowed": func() *Config {
		cfg := DefaultConfig()
		cfg.Display.Fullscreen = false
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
