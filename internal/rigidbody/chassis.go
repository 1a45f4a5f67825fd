package rigidbody

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/mvsim/internal/dynamo"
	"github.com/san-kum/mvsim/internal/vehicle"
)

// State layout, matching dynamo.State's plain []float64 convention.
const (
	IdxX = iota
	IdxY
	IdxYaw
	IdxVx
	IdxVy
	IdxOmega
	stateDim = 6
)

// Chassis is a planar rigid body driven by the four wheel torques a
// vehicle.VehicleAckermann produces each step. It implements
// [dynamo.System], turning {x, y, yaw, vx, vy, omega} plus a torque
// vector into body accelerations.
//
// Lateral tire behavior is modeled as simple viscous cornering stiffness
// rather than a full slip-angle tire model; the rest of the system treats
// contact dynamics as out of scope beyond this planar friction term.
type Chassis struct {
	vehicle *vehicle.VehicleAckermann

	mass      float64
	inertiaZ  float64
	corneringStiffness float64
}

// NewChassis builds a Chassis around a vehicle, deriving mass and a
// box-approximation yaw inertia from the vehicle's chassis mass and
// footprint (wheelbase x track width). Only the cornering stiffness can be
// changed afterwards, via SetCorneringStiffness.
func NewChassis(v *vehicle.VehicleAckermann) *Chassis {
	st := v.State()
	l := st.Wheelbase()
	w := st.TrackWidth()
	mass := st.ChassisMass
	if mass <= 0 {
		mass = 1
	}
	inertia := mass * (l*l + w*w) / 12.0

	return &Chassis{
		vehicle:            v,
		mass:               mass,
		inertiaZ:           inertia,
		corneringStiffness: mass * 2.0, // N*s/m, a stiff-enough default to damp lateral drift
	}
}

// SetCorneringStiffness overrides the default lateral friction coefficient.
func (c *Chassis) SetCorneringStiffness(k float64) {
	c.corneringStiffness = k
}

func (c *Chassis) StateDim() int   { return stateDim }
func (c *Chassis) ControlDim() int { return 4 }

// Derive computes body-frame accelerations from the current wheel torques
// (u, in {RL, RR, FL, FR} order) and the wheel yaws the vehicle's own
// Step already resolved for this tick.
func (c *Chassis) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	st := c.vehicle.State()

	var force mgl64.Vec2
	var moment float64
	for i, wh := range st.Wheels {
		if i >= len(u) {
			break
		}
		r := wh.Radius()
		if r <= 0 {
			continue
		}
		mag := u[i] / r
		wheelForce := mgl64.Vec2{math.Cos(wh.Yaw), math.Sin(wh.Yaw)}.Mul(mag)
		force = force.Add(wheelForce)
		moment += wh.X*wheelForce[1] - wh.Y*wheelForce[0]
	}

	vx, vy, omega := x[IdxVx], x[IdxVy], x[IdxOmega]
	yaw := x[IdxYaw]

	fx, fy := force[0], force[1]
	fy -= c.corneringStiffness * vy

	sinYaw, cosYaw := dynamo.FastSinCos(yaw)

	d := make(dynamo.State, stateDim)
	d[IdxX] = vx*cosYaw - vy*sinYaw
	d[IdxY] = vx*sinYaw + vy*cosYaw
	d[IdxYaw] = omega
	d[IdxVx] = fx/c.mass + omega*vy
	d[IdxVy] = fy/c.mass - omega*vx
	d[IdxOmega] = moment / c.inertiaZ
	return d
}

// Energy returns the chassis' kinetic energy, letting the Simulator track
// energy drift the same way it does for conservative models, even though
// a torque-driven vehicle is not itself energy-conserving.
func (c *Chassis) Energy(x dynamo.State) float64 {
	vx, vy, omega := x[IdxVx], x[IdxVy], x[IdxOmega]
	return 0.5*c.mass*(vx*vx+vy*vy) + 0.5*c.inertiaZ*omega*omega
}

// ZeroState returns a fresh six-element state at the origin with zero
// velocity, a convenient x0 for callers driving a Chassis through dynamo.
func ZeroState() dynamo.State {
	return make(dynamo.State, stateDim)
}
