package vehicle

// SetpointKind distinguishes the three shapes a controller setpoint can
// take. Only the fields relevant to Kind are meaningful at any one time.
type SetpointKind int

const (
	SetpointRawTorques SetpointKind = iota
	SetpointTwist
	SetpointSteerSpeed
)

// Setpoint is a tagged union over the three commands external code can
// issue to a vehicle's controller. Which fields are read depends on Kind
// and on which controller is installed; unused fields are ignored rather
// than validated, matching the permissive nature of a live command channel.
type Setpoint struct {
	Kind SetpointKind

	// RawTorques fields, valid when Kind == SetpointRawTorques.
	LeftTorque  float64
	RightTorque float64
	SteerAngle  float64

	// Twist fields, valid when Kind == SetpointTwist.
	Vx    float64
	Omega float64

	// SteerSpeed fields, valid when Kind == SetpointSteerSpeed.
	// Vx is shared with Twist; Delta is the desired centerline steer angle.
	Delta float64
}

// RawTorquesSetpoint builds a Setpoint carrying a raw left/right torque
// split and an explicit centerline steering angle.
func RawTorquesSetpoint(left, right, steer float64) Setpoint {
	return Setpoint{Kind: SetpointRawTorques, LeftTorque: left, RightTorque: right, SteerAngle: steer}
}

// TwistSetpoint builds a Setpoint carrying a desired forward speed and yaw
// rate, the natural command shape for a teleop or navigation stack.
func TwistSetpoint(vx, omega float64) Setpoint {
	return Setpoint{Kind: SetpointTwist, Vx: vx, Omega: omega}
}

// SteerSpeedSetpoint builds a Setpoint carrying a desired forward speed and
// centerline steering angle, the natural command shape for a driver model.
func SteerSpeedSetpoint(vx, delta float64) Setpoint {
	return Setpoint{Kind: SetpointSteerSpeed, Vx: vx, Delta: delta}
}
