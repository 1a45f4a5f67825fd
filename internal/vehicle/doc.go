// Package vehicle implements the four-wheel Ackermann vehicle model: wheel
// kinematics, the Ackermann steering resolver, the controller pipeline that
// maps high-level setpoints to per-wheel torques, and the per-step dynamics
// that ties them together.
//
// The vehicle does not integrate its own rigid-body pose. Each call to
// [VehicleAckermann.Step] returns a torque vector and updates wheel yaws;
// turning that into chassis motion is the job of package rigidbody, kept
// separate the same way libmvsim keeps DynamicsAckermann and the Box2D
// world apart.
package vehicle
