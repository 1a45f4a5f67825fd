package rigidbody

import (
	"math"
	"testing"

	"github.com/san-kum/mvsim/internal/dynamo"
	"github.com/san-kum/mvsim/internal/vehicle"
)

func newTestVehicle(t *testing.T) *vehicle.VehicleAckermann {
	v, err := vehicle.NewVehicleAckermann(vehicle.DefaultVehicleState())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return v
}

func TestChassis_StraightLineAcceleration(t *testing.T) {
	v := newTestVehicle(t)
	v.SetController(vehicle.NewRawForcesController())
	v.SetSetpoint(vehicle.RawTorquesSetpoint(20, 20, 0))

	chassis := NewChassis(v)
	ctrl := NewVehicleController(v, 0.01)

	x := ZeroState()
	u := ctrl.Compute(x, 0)
	if ctrl.LastError() != nil {
		t.Fatalf("unexpected controller error: %v", ctrl.LastError())
	}

	d := chassis.Derive(x, u, 0)
	if d[IdxVx] <= 0 {
		t.Errorf("vx acceleration should be positive under forward torque, got %g", d[IdxVx])
	}
	if math.Abs(d[IdxOmega]) > 1e-6 {
		t.Errorf("symmetric forward torque should produce no yaw moment, got %g", d[IdxOmega])
	}
}

func TestChassis_SteeringProducesYawMoment(t *testing.T) {
	v := newTestVehicle(t)
	v.SetController(vehicle.NewRawForcesController())
	v.SetSetpoint(vehicle.RawTorquesSetpoint(10, 10, 0.3))

	chassis := NewChassis(v)
	ctrl := NewVehicleController(v, 0.01)

	x := dynamo.State{0, 0, 0, 2.0, 0, 0}
	u := ctrl.Compute(x, 0)
	d := chassis.Derive(x, u, 0)

	if d[IdxOmega] == 0 {
		t.Error("steered front wheels under torque should produce a non-zero yaw moment")
	}
}

func TestVehicleController_NoControllerYieldsZeroControl(t *testing.T) {
	v := newTestVehicle(t) // no controller installed

	ctrl := NewVehicleController(v, 0.01)
	u := ctrl.Compute(ZeroState(), 0)

	if ctrl.LastError() != nil {
		t.Errorf("missing controller should be a safety default, not an error: %v", ctrl.LastError())
	}
	for _, val := range u {
		if val != 0 {
			t.Errorf("control should be all-zero with no controller installed, got %v", u)
		}
	}
}
