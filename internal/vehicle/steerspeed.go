package vehicle

import "math"

// minSpeedEps avoids dividing by zero when recovering an equivalent
// steering angle from a near-stationary twist command.
const minSpeedEps = 1e-3

// TwistFrontSteerPID drives the two front wheels to match the linear speed
// implied by a desired forward velocity and yaw rate, using one clamped
// PID per front wheel. Rear wheels are left unactuated (zero torque); only
// the front wheels carry torque in this controller, matching the
// bicycle-model assumption that steering and traction are both handled at
// the front axle.
//
// It holds a non-owning back-reference to the vehicle it drives, acquired
// at construction, so it can read each front wheel's current angular
// velocity as its odometry estimate.
type TwistFrontSteerPID struct {
	vehicle *VehicleAckermann

	flPID *clampedPID
	frPID *clampedPID

	twistVx    float64
	twistOmega float64
	useTwist   bool
}

// NewTwistFrontSteerPID builds the controller with one PID per front wheel,
// sharing gains and torque ceiling.
func NewTwistFrontSteerPID(v *VehicleAckermann, kp, ki, kd, tauMax float64) *TwistFrontSteerPID {
	return &TwistFrontSteerPID{
		vehicle: v,
		flPID:   newClampedPID(kp, ki, kd, tauMax),
		frPID:   newClampedPID(kp, ki, kd, tauMax),
	}
}

func (c *TwistFrontSteerPID) ClassName() string {
	return "twist_front_steer_pid"
}

// SetTwistCommand overrides the setpoint read by Step with a direct
// forward-speed/yaw-rate command, the teleop-style entry point.
func (c *TwistFrontSteerPID) SetTwistCommand(vx, omega float64) {
	c.twistVx = vx
	c.twistOmega = omega
	c.useTwist = true
}

func (c *TwistFrontSteerPID) Step(ctx Context, sp Setpoint) Output {
	vx, omega := sp.Vx, sp.Omega
	if c.useTwist {
		vx, omega = c.twistVx, c.twistOmega
	}

	st := c.vehicle.state
	l := st.Wheelbase()
	w := st.TrackWidth()
	r := st.Wheels[FL].Radius()
	if r == 0 {
		r = st.Wheels[FR].Radius()
	}

	// Target linear speed at each front wheel from rigid-body kinematics:
	// each wheel's speed is the body speed at that wheel's lateral offset.
	targetFL := vx - omega*0.5*w
	targetFR := vx + omega*0.5*w

	curFLOmega, _ := c.vehicle.WheelAngularVelocity(FL)
	curFROmega, _ := c.vehicle.WheelAngularVelocity(FR)
	curFL := curFLOmega * r
	curFR := curFROmega * r

	flTorque := c.flPID.update(targetFL-curFL, ctx.Dt)
	frTorque := c.frPID.update(targetFR-curFR, ctx.Dt)

	steer := 0.0
	if l > 0 {
		steer = math.Atan(omega * l / math.Max(math.Abs(vx), minSpeedEps))
	}

	return Output{
		RLTorque: 0,
		RRTorque: 0,
		FLTorque: flTorque,
		FRTorque: frTorque,
		SteerAng: steer,
	}
}

// FrontSteerSpeedPID takes a desired forward speed and centerline steer
// angle and delegates to an embedded TwistFrontSteerPID, converting the
// steer angle into the equivalent yaw rate via the bicycle model:
// ω_z = v_x * tan(δ) / l.
type FrontSteerSpeedPID struct {
	inner *TwistFrontSteerPID
}

// NewFrontSteerSpeedPID builds the controller around the same vehicle and
// gains used by the delegate TwistFrontSteerPID.
func NewFrontSteerSpeedPID(v *VehicleAckermann, kp, ki, kd, tauMax float64) *FrontSteerSpeedPID {
	return &FrontSteerSpeedPID{inner: NewTwistFrontSteerPID(v, kp, ki, kd, tauMax)}
}

func (c *FrontSteerSpeedPID) ClassName() string {
	return "front_steer_speed_pid"
}

func (c *FrontSteerSpeedPID) Step(ctx Context, sp Setpoint) Output {
	l := c.inner.vehicle.state.Wheelbase()
	omega := 0.0
	if l > 0 {
		omega = sp.Vx * math.Tan(sp.Delta) / l
	}
	return c.inner.Step(ctx, TwistSetpoint(sp.Vx, omega))
}
