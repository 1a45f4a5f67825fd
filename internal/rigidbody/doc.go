// Package rigidbody integrates the four-wheel torque vector produced by
// package vehicle into planar chassis motion. It plugs into package
// dynamo the same way any other model does: [Chassis] implements
// [dynamo.System] and [VehicleController] implements [dynamo.Controller],
// so a vehicle.VehicleAckermann can be driven by dynamo's generic
// Simulator, integrators, and metrics without either package knowing
// about the other directly.
package rigidbody
