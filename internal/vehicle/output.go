package vehicle

// Output is what a controller produces each step: a torque for each of the
// four wheels plus a single equivalent centerline steering angle that the
// Ackermann resolver will split between the two front wheels.
type Output struct {
	RLTorque float64
	RRTorque float64
	FLTorque float64
	FRTorque float64
	SteerAng float64
}

// TorqueVector returns the four torques in {RL, RR, FL, FR} index order,
// matching VehicleState's wheel indexing.
func (o Output) TorqueVector() [4]float64 {
	return [4]float64{o.RLTorque, o.RRTorque, o.FLTorque, o.FRTorque}
}

// Context carries the simulation clock into a controller step. It is
// passed by value: controllers must not retain a reference to it past the
// call that provided it.
type Context struct {
	Time float64 // t, seconds
	Dt   float64 // Δt, seconds
}
