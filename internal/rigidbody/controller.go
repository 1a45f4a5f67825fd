package rigidbody

import (
	"github.com/san-kum/mvsim/internal/dynamo"
	"github.com/san-kum/mvsim/internal/vehicle"
)

// VehicleController adapts a vehicle.VehicleAckermann's per-step torque
// output into a dynamo.Control vector, letting the generic Simulator drive
// the vehicle's own controller pipeline each tick. Compute's t argument
// comes from the Simulator's clock; Dt is fixed at construction since
// dynamo.Controller.Compute does not carry a step size.
type VehicleController struct {
	vehicle *vehicle.VehicleAckermann
	dt      float64

	lastErr error
}

// NewVehicleController wires a vehicle into the dynamo.Controller
// interface with a fixed step size, matching the Dt the Simulator will be
// run with.
func NewVehicleController(v *vehicle.VehicleAckermann, dt float64) *VehicleController {
	return &VehicleController{vehicle: v, dt: dt}
}

// Compute advances the wrapped vehicle by one step and returns its
// per-wheel torque vector in {RL, RR, FL, FR} order. A geometry failure
// inside the vehicle step is recorded and surfaced via LastError rather
// than panicking, since dynamo.Controller.Compute has no error return;
// the returned Control is all-zero in that case.
func (c *VehicleController) Compute(x dynamo.State, t float64) dynamo.Control {
	torques, err := c.vehicle.Step(vehicle.Context{Time: t, Dt: c.dt})
	c.lastErr = err
	if err != nil {
		return dynamo.Control{0, 0, 0, 0}
	}
	return dynamo.Control{torques[0], torques[1], torques[2], torques[3]}
}

// LastError reports the error from the most recent Compute call, or nil.
// Callers driving the Simulator directly (rather than through Run, which
// has no per-step error hook) should check this after each step they
// care about, per the fatal-at-the-step-boundary contract on vehicle
// steering failures.
func (c *VehicleController) LastError() error {
	return c.lastErr
}
