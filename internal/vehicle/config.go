package vehicle

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mvsim/internal/wire"
)

// Config is the convenience loader's parsed shape; it exists outside the
// core vehicle model because configuration loading (XML in the original,
// YAML here) is an external collaborator. Building a VehicleAckermann from
// a Config is the only place this package depends on an on-disk format.
type Config struct {
	Chassis     ChassisConfig    `yaml:"chassis"`
	RLWheel     WheelConfig      `yaml:"rl_wheel"`
	RRWheel     WheelConfig      `yaml:"rr_wheel"`
	FWheelsX    float64          `yaml:"f_wheels_x"`
	FWheelsD    float64          `yaml:"f_wheels_d"`
	FWheelMass  float64          `yaml:"f_wheel_mass"`
	FWheelW     float64          `yaml:"f_wheel_width"`
	FWheelDiam  float64          `yaml:"f_wheel_diameter"`
	MaxSteerDeg float64          `yaml:"max_steer_ang_deg"`
	Controller  ControllerConfig `yaml:"controller"`
}

type ChassisConfig struct {
	Mass  float64 `yaml:"mass"`
	ZMin  float64 `yaml:"zmin"`
	ZMax  float64 `yaml:"zmax"`
	Color string  `yaml:"color"`
}

type WheelConfig struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Mass     float64 `yaml:"mass"`
	Width    float64 `yaml:"width"`
	Diameter float64 `yaml:"diameter"`
}

// ControllerConfig selects and parameterizes one of the three controller
// classes: "raw", "front_steer_speed_pid", or "twist_front_steer_pid".
type ControllerConfig struct {
	Class     string  `yaml:"class"`
	Kp        float64 `yaml:"kp"`
	Ki        float64 `yaml:"ki"`
	Kd        float64 `yaml:"kd"`
	MaxTorque float64 `yaml:"max_torque"`
}

// DefaultConfig mirrors libmvsim's built-in Ackermann defaults: 1.3m front
// axle offset, 2.0m front track, 30deg max steer, raw-forces controller.
func DefaultConfig() *Config {
	return &Config{
		Chassis: ChassisConfig{
			Mass:  500.0,
			ZMin:  0.20,
			ZMax:  1.40,
			Color: "#e83000",
		},
		RLWheel:     WheelConfig{X: 0, Y: -0.9, Mass: 10, Width: 0.2, Diameter: 0.4},
		RRWheel:     WheelConfig{X: 0, Y: 0.9, Mass: 10, Width: 0.2, Diameter: 0.4},
		FWheelsX:    1.3,
		FWheelsD:    2.0,
		FWheelMass:  10,
		FWheelW:     0.2,
		FWheelDiam:  0.4,
		MaxSteerDeg: 30.0,
		Controller:  ControllerConfig{Class: "raw"},
	}
}

// LoadConfig reads a YAML file into a Config, starting from DefaultConfig
// so unspecified fields keep libmvsim's defaults.
func LoadConfig(path string) (*Config, error) {
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

// SaveConfig writes cfg back out as YAML.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// VehicleState converts the parsed Config into the state a
// VehicleAckermann is built from, deriving front wheel positions from
// FWheelsX/FWheelsD the same way the original XML loader does.
func (c *Config) VehicleState() VehicleState {
	halfD := 0.5 * c.FWheelsD
	return VehicleState{
		Wheels: [4]Wheel{
			{X: c.RLWheel.X, Y: c.RLWheel.Y, Mass: c.RLWheel.Mass, Width: c.RLWheel.Width, Diameter: c.RLWheel.Diameter},
			{X: c.RRWheel.X, Y: c.RRWheel.Y, Mass: c.RRWheel.Mass, Width: c.RRWheel.Width, Diameter: c.RRWheel.Diameter},
			{X: c.FWheelsX, Y: -halfD, Mass: c.FWheelMass, Width: c.FWheelW, Diameter: c.FWheelDiam},
			{X: c.FWheelsX, Y: halfD, Mass: c.FWheelMass, Width: c.FWheelW, Diameter: c.FWheelDiam},
		},
		ChassisPoly:   DefaultChassisPoly(),
		ChassisMass:   c.Chassis.Mass,
		ChassisZMin:   c.Chassis.ZMin,
		ChassisZMax:   c.Chassis.ZMax,
		ChassisColor:  c.Chassis.Color,
		MaxSteerAngle: c.MaxSteerDeg * 3.141592653589793 / 180.0,
	}
}

// BuildVehicle constructs a VehicleAckermann from the config and installs
// the controller named by Controller.Class, defaulting to RawForces when
// the class is empty or unset, matching the "default controller" fallback
// the original loader applies when no <controller> node is present.
func (c *Config) BuildVehicle() (*VehicleAckermann, error) {
	v, err := NewVehicleAckermann(c.VehicleState())
	if err != nil {
		return nil, err
	}

	switch c.Controller.Class {
	case "", "raw":
		v.SetController(NewRawForcesController())
	case "front_steer_speed_pid":
		v.SetController(NewFrontSteerSpeedPID(v, c.Controller.Kp, c.Controller.Ki, c.Controller.Kd, c.Controller.MaxTorque))
	case "twist_front_steer_pid":
		v.SetController(NewTwistFrontSteerPID(v, c.Controller.Kp, c.Controller.Ki, c.Controller.Kd, c.Controller.MaxTorque))
	default:
		return nil, fmt.Errorf("%w: unknown controller class %q", wire.ErrConfigError, c.Controller.Class)
	}

	return v, nil
}
