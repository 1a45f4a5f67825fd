package vehicle

import "fmt"

// VehicleAckermann owns a VehicleState and the single controller driving
// it. A controller that needs odometry, such as [TwistFrontSteerPID],
// holds a non-owning back-reference to this vehicle, passed to its
// constructor (e.g. [NewTwistFrontSteerPID]), so that it can
// read current wheel speeds without the vehicle depending on them.
type VehicleAckermann struct {
	state      VehicleState
	controller Controller
	setpoint   Setpoint
}

// NewVehicleAckermann builds a vehicle from the given state. If no
// controller is installed with [VehicleAckermann.SetController], Step
// returns all-zero torques rather than failing, per the safety default.
func NewVehicleAckermann(state VehicleState) (*VehicleAckermann, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}
	return &VehicleAckermann{state: state}, nil
}

// State returns the vehicle's current configuration, including live wheel
// yaw/angular-velocity mutated by Step.
func (v *VehicleAckermann) State() VehicleState {
	return v.state
}

// SetController installs the controller that will be invoked on every
// subsequent Step. Passing nil reverts to the all-zero-torque safety
// default described in the vehicle step's failure semantics.
func (v *VehicleAckermann) SetController(c Controller) {
	v.controller = c
}

// Controller returns the currently installed controller, or nil.
func (v *VehicleAckermann) Controller() Controller {
	return v.controller
}

// SetSetpoint replaces the command the controller will read on the next
// Step. It is the caller's responsibility to serialize calls to
// SetSetpoint against concurrent Step calls from a simulation thread.
func (v *VehicleAckermann) SetSetpoint(sp Setpoint) {
	v.setpoint = sp
}

// WheelAngularVelocity returns the current spin rate of the given wheel,
// the odometry estimate speed-tracking controllers read to close their
// loop.
func (v *VehicleAckermann) WheelAngularVelocity(idx int) (float64, error) {
	if idx < 0 || idx > 3 {
		return 0, ErrUnknownWheel
	}
	return v.state.Wheels[idx].AngularVelocity, nil
}

// SetWheelAngularVelocity overwrites the stored spin rate of the given
// wheel, the odometry estimate WheelAngularVelocity returns. Step never
// changes it and package rigidbody does not call this method, so the
// estimate holds whatever was last set here (zero by default).
func (v *VehicleAckermann) SetWheelAngularVelocity(idx int, omega float64) error {
	if idx < 0 || idx > 3 {
		return ErrUnknownWheel
	}
	v.state.Wheels[idx].AngularVelocity = omega
	return nil
}

// Step advances the vehicle's controller and kinematic steering resolver
// by one tick. It returns the four per-wheel torques in {RL, RR, FL, FR}
// order; wheel yaws are updated on v.state as a side effect.
//
// A missing controller yields all-zero torques. A geometry failure in the
// steering resolver is returned as-is and must be treated as fatal by the
// caller, per the vehicle step's failure semantics.
func (v *VehicleAckermann) Step(ctx Context) ([4]float64, error) {
	if v.controller == nil {
		return [4]float64{}, nil
	}

	out := v.controller.Step(ctx, v.setpoint)
	torques := out.TorqueVector()

	resolved, err := ResolveAckermann(v.state.Geometry(), out.SteerAng)
	if err != nil {
		return [4]float64{}, fmt.Errorf("vehicle: step at t=%g: %w", ctx.Time, err)
	}

	v.state.Wheels[FL].Yaw = resolved.Left
	v.state.Wheels[FR].Yaw = resolved.Right
	v.state.Wheels[RL].Yaw = 0
	v.state.Wheels[RR].Yaw = 0

	return torques, nil
}
