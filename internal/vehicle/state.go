package vehicle

import (
	"fmt"
	"math"
)

// Point2D is a single vertex of the chassis outline.
type Point2D struct {
	X, Y float64
}

// VehicleState is the static (configuration-time) shape of a four-wheel
// Ackermann vehicle: its four wheels in fixed {RL, RR, FL, FR} order, its
// chassis outline, and the limits the dynamics step must respect.
type VehicleState struct {
	Wheels [4]Wheel

	ChassisPoly []Point2D
	ChassisMass float64
	ChassisZMin float64
	ChassisZMax float64
	ChassisColor string // "#rrggbb", display-only

	MaxSteerAngle float64 // δ_max, radians, must be in (0, π/2)
}

// DefaultChassisPoly mirrors libmvsim's built-in six-point outline.
func DefaultChassisPoly() []Point2D {
	return []Point2D{
		{-0.8, -1.0},
		{-0.8, 1.0},
		{1.5, 0.9},
		{1.8, 0.8},
		{1.8, -0.8},
		{1.5, -0.9},
	}
}

// DefaultVehicleState returns a VehicleState sized like libmvsim's stock
// Ackermann vehicle: wheelbase 1.3m, front track 2.0m, rear track 1.8m,
// 30deg max steer.
func DefaultVehicleState() VehicleState {
	const frontX = 1.3
	const frontTrack = 2.0

	wheels := [4]Wheel{
		DefaultWheel(0, -0.9),             // RL
		DefaultWheel(0, 0.9),              // RR
		DefaultWheel(frontX, -0.5*frontTrack), // FL
		DefaultWheel(frontX, 0.5*frontTrack),  // FR
	}

	return VehicleState{
		Wheels:        wheels,
		ChassisPoly:   DefaultChassisPoly(),
		ChassisMass:   500.0,
		ChassisZMin:   0.20,
		ChassisZMax:   1.40,
		ChassisColor:  "#e83000",
		MaxSteerAngle: 30.0 * math.Pi / 180.0,
	}
}

// Wheelbase returns l, the longitudinal distance between the front and
// rear axles, derived from wheel positions rather than stored separately.
func (v VehicleState) Wheelbase() float64 {
	return v.Wheels[FL].X - v.Wheels[RL].X
}

// TrackWidth returns w, the lateral distance between the two front wheels.
func (v VehicleState) TrackWidth() float64 {
	return v.Wheels[FR].Y - v.Wheels[FL].Y
}

// Validate checks the invariants called out for a VehicleState: positive
// wheelbase and track, a max steer angle strictly inside (0, π/2), and
// well-formed wheels.
func (v VehicleState) Validate() error {
	for i, wh := range v.Wheels {
		if err := wh.Validate(); err != nil {
			return fmt.Errorf("vehicle: wheel %d: %w", i, err)
		}
	}
	if v.Wheelbase() <= 0 {
		return fmt.Errorf("vehicle: non-positive wheelbase %g (FL.x=%g RL.x=%g)", v.Wheelbase(), v.Wheels[FL].X, v.Wheels[RL].X)
	}
	if v.TrackWidth() <= 0 {
		return fmt.Errorf("vehicle: non-positive track width %g (FR.y=%g FL.y=%g)", v.TrackWidth(), v.Wheels[FR].Y, v.Wheels[FL].Y)
	}
	if v.MaxSteerAngle <= 0 || v.MaxSteerAngle >= math.Pi/2 {
		return fmt.Errorf("vehicle: max steer angle %g must be in (0, pi/2)", v.MaxSteerAngle)
	}
	return nil
}

// Geometry returns the SteeringGeometry the Ackermann resolver needs,
// derived from the current wheel layout and max steer angle.
func (v VehicleState) Geometry() SteeringGeometry {
	return SteeringGeometry{
		Wheelbase:  v.Wheelbase(),
		TrackWidth: v.TrackWidth(),
		MaxSteer:   v.MaxSteerAngle,
	}
}
