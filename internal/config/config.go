// Package config loads the top-level scenario a simulation run or a fleet
// of demo nodes is built from: which vehicles to simulate, at what step
// size, for how long, and which directory endpoint their nodes should
// register with.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mvsim/internal/vehicle"
)

const (
	DefaultDt                = 0.01
	DefaultDuration          = 10.0
	DefaultDirectoryEndpoint = "tcp://127.0.0.1:9999"
)

// VehicleSpec names one vehicle in a scenario and how to build it: either
// a named preset (see presets.go) or a path to a YAML vehicle.Config, not
// both.
type VehicleSpec struct {
	Name       string `yaml:"name"`
	Preset     string `yaml:"preset"`
	ConfigPath string `yaml:"config_path"`
}

// Config is a scenario: a set of vehicles plus the simulation and
// messaging-fabric parameters shared by all of them.
type Config struct {
	Dt                float64       `yaml:"dt"`
	Duration          float64       `yaml:"duration"`
	DirectoryEndpoint string        `yaml:"directory_endpoint"`
	Vehicles          []VehicleSpec `yaml:"vehicles"`
}

// DefaultConfig is a single-vehicle scenario using the "default" preset.
func DefaultConfig() *Config {
	return &Config{
		Dt:                DefaultDt,
		Duration:          DefaultDuration,
		DirectoryEndpoint: DefaultDirectoryEndpoint,
		Vehicles: []VehicleSpec{
			{Name: "car0", Preset: "default"},
		},
	}
}

// Load reads a scenario from a YAML file, starting from DefaultConfig so
// unspecified fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg back out as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildVehicle resolves one VehicleSpec into a vehicle.Config, by preset
// name or by loading ConfigPath. Exactly one of Preset/ConfigPath should
// be set; Preset wins if both are.
func (v VehicleSpec) BuildVehicle() (*vehicle.Config, error) {
	if v.Preset != "" {
		cfg := GetPreset(v.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("config: unknown vehicle preset %q (available: %v)", v.Preset, ListPresets())
		}
		return cfg, nil
	}
	if v.ConfigPath != "" {
		return vehicle.LoadConfig(v.ConfigPath)
	}
	return vehicle.DefaultConfig(), nil
}
