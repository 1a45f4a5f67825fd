package vehicle

// Wheel indices within a VehicleState, fixed by construction order.
const (
	RL = 0
	RR = 1
	FL = 2
	FR = 3
)

// Controller is the capability every motor controller implements: advance
// one step given the current setpoint and simulation clock, and report its
// own class name for config/diagnostic purposes. Controllers that accept
// live twist commands also implement [TwistCommandable]; this is checked
// with a type assertion rather than forcing every controller to carry an
// unused method.
type Controller interface {
	Step(ctx Context, sp Setpoint) Output
	ClassName() string
}

// TwistCommandable is implemented by controllers that can be driven
// directly by a forward-speed/yaw-rate command outside of the normal
// Setpoint channel, mirroring the libmvsim teleop interface.
type TwistCommandable interface {
	SetTwistCommand(vx, omega float64)
}
