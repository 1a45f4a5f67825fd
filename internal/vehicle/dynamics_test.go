package vehicle

import (
	"errors"
	"testing"
)

func TestVehicleAckermann_NoController_ZeroTorques(t *testing.T) {
	v, err := NewVehicleAckermann(DefaultVehicleState())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	torques, err := v.Step(Context{Time: 0, Dt: 0.01})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, tq := range torques {
		if tq != 0 {
			t.Errorf("torque[%d] = %g, want 0 with no controller installed", i, tq)
		}
	}
}

func TestVehicleAckermann_RawForces_Step(t *testing.T) {
	v, err := NewVehicleAckermann(DefaultVehicleState())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v.SetController(NewRawForcesController())
	v.SetSetpoint(RawTorquesSetpoint(5.0, 3.0, 0.3))

	torques, err := v.Step(Context{Time: 0, Dt: 0.01})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if torques[RL] != 5.0 || torques[FL] != 5.0 {
		t.Errorf("left torques = (%g, %g), want (5, 5)", torques[RL], torques[FL])
	}
	if torques[RR] != 3.0 || torques[FR] != 3.0 {
		t.Errorf("right torques = (%g, %g), want (3, 3)", torques[RR], torques[FR])
	}

	st := v.State()
	if st.Wheels[RL].Yaw != 0 || st.Wheels[RR].Yaw != 0 {
		t.Errorf("rear wheels should keep yaw 0, got RL=%g RR=%g", st.Wheels[RL].Yaw, st.Wheels[RR].Yaw)
	}
	if st.Wheels[FL].Yaw <= st.Wheels[FR].Yaw {
		t.Errorf("inner (FL) yaw %g should exceed outer (FR) yaw %g for a left turn", st.Wheels[FL].Yaw, st.Wheels[FR].Yaw)
	}
}

func TestVehicleAckermann_Step_GeometryFailure(t *testing.T) {
	state := DefaultVehicleState()
	v, err := NewVehicleAckermann(state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v.SetController(NewRawForcesController())
	// Bypass the constructor's invariant check to exercise the resolver's
	// own saturation guard directly.
	v.state.MaxSteerAngle = 1.6
	v.SetSetpoint(RawTorquesSetpoint(0, 0, 1.6))

	_, err = v.Step(Context{Time: 1.0, Dt: 0.01})
	if !errors.Is(err, ErrSteeringSaturated) {
		t.Errorf("expected ErrSteeringSaturated, got %v", err)
	}
}

func TestVehicleAckermann_InvalidState(t *testing.T) {
	state := DefaultVehicleState()
	state.Wheels[FL].X = state.Wheels[RL].X // collapse wheelbase to zero
	if _, err := NewVehicleAckermann(state); err == nil {
		t.Error("expected error for zero wheelbase")
	}
}
