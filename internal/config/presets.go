package config

import "github.com/san-kum/mvsim/internal/vehicle"

// Presets holds named vehicle.Config values a VehicleSpec can select by
// name instead of pointing at a YAML file on disk.
var Presets = map[string]*vehicle.Config{
	"default": vehicle.DefaultConfig(),

	"narrow_track": {
		Chassis:     vehicle.ChassisConfig{Mass: 420.0, ZMin: 0.18, ZMax: 1.20, Color: "#2060e8"},
		RLWheel:     vehicle.WheelConfig{X: 0, Y: -0.55, Mass: 8, Width: 0.16, Diameter: 0.34},
		RRWheel:     vehicle.WheelConfig{X: 0, Y: 0.55, Mass: 8, Width: 0.16, Diameter: 0.34},
		FWheelsX:    1.05,
		FWheelsD:    1.2,
		FWheelMass:  8,
		FWheelW:     0.16,
		FWheelDiam:  0.34,
		MaxSteerDeg: 35.0,
		Controller:  vehicle.ControllerConfig{Class: "raw"},
	},

	"speed_pid": {
		Chassis:     vehicle.ChassisConfig{Mass: 650.0, ZMin: 0.22, ZMax: 1.55, Color: "#30b050"},
		RLWheel:     vehicle.WheelConfig{X: 0, Y: -0.95, Mass: 14, Width: 0.22, Diameter: 0.45},
		RRWheel:     vehicle.WheelConfig{X: 0, Y: 0.95, Mass: 14, Width: 0.22, Diameter: 0.45},
		FWheelsX:    1.45,
		FWheelsD:    2.1,
		FWheelMass:  14,
		FWheelW:     0.22,
		FWheelDiam:  0.45,
		MaxSteerDeg: 28.0,
		Controller:  vehicle.ControllerConfig{Class: "twist_front_steer_pid", Kp: 80, Ki: 4, Kd: 2, MaxTorque: 400},
	},

	"front_steer_pid": {
		Chassis:     vehicle.ChassisConfig{Mass: 500.0, ZMin: 0.20, ZMax: 1.40, Color: "#e8a000"},
		RLWheel:     vehicle.WheelConfig{X: 0, Y: -0.9, Mass: 10, Width: 0.2, Diameter: 0.4},
		RRWheel:     vehicle.WheelConfig{X: 0, Y: 0.9, Mass: 10, Width: 0.2, Diameter: 0.4},
		FWheelsX:    1.3,
		FWheelsD:    2.0,
		FWheelMass:  10,
		FWheelW:     0.2,
		FWheelDiam:  0.4,
		MaxSteerDeg: 30.0,
		Controller:  vehicle.ControllerConfig{Class: "front_steer_speed_pid", Kp: 60, Ki: 2, Kd: 1, MaxTorque: 350},
	},
}

// GetPreset returns the named preset, or nil if it does not exist.
func GetPreset(name string) *vehicle.Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

// ListPresets returns every known preset name.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
