package vehicle

// RawForcesController is the stateless pass-through controller: it simply
// relays the left/right torque split and steering angle given in the
// setpoint. Left wheels (RL, FL) receive the left torque, right wheels
// (RR, FR) receive the right torque.
type RawForcesController struct{}

// NewRawForcesController returns a RawForcesController. It carries no
// configuration of its own; everything comes from the setpoint each step.
func NewRawForcesController() *RawForcesController {
	return &RawForcesController{}
}

func (c *RawForcesController) ClassName() string {
	return "raw"
}

func (c *RawForcesController) Step(_ Context, sp Setpoint) Output {
	return Output{
		RLTorque: sp.LeftTorque,
		RRTorque: sp.RightTorque,
		FLTorque: sp.LeftTorque,
		FRTorque: sp.RightTorque,
		SteerAng: sp.SteerAngle,
	}
}
