package vehicle

import (
	"math"
	"testing"
)

func TestTwistFrontSteerPID_TorqueClamped(t *testing.T) {
	v, err := NewVehicleAckermann(DefaultVehicleState())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	const tauMax = 50.0
	ctrl := NewTwistFrontSteerPID(v, 1000, 0, 0, tauMax)
	v.SetController(ctrl)
	v.SetSetpoint(TwistSetpoint(10, 0))

	torques, err := v.Step(Context{Time: 0, Dt: 0.01})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(torques[FL]) > tauMax+1e-9 {
		t.Errorf("FL torque %g exceeds max %g", torques[FL], tauMax)
	}
	if math.Abs(torques[FR]) > tauMax+1e-9 {
		t.Errorf("FR torque %g exceeds max %g", torques[FR], tauMax)
	}
	if torques[RL] != 0 || torques[RR] != 0 {
		t.Errorf("rear wheels should be unactuated, got RL=%g RR=%g", torques[RL], torques[RR])
	}
}

func TestTwistFrontSteerPID_SteerRecovery(t *testing.T) {
	v, err := NewVehicleAckermann(DefaultVehicleState())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctrl := NewTwistFrontSteerPID(v, 10, 0, 0, 100)

	out := ctrl.Step(Context{Time: 0, Dt: 0.01}, TwistSetpoint(2.0, 1.0))
	l := v.State().Wheelbase()
	want := math.Atan(1.0 * l / 2.0)
	if math.Abs(out.SteerAng-want) > 1e-9 {
		t.Errorf("recovered steer angle = %g, want %g", out.SteerAng, want)
	}
}

func TestFrontSteerSpeedPID_ConvertsToOmega(t *testing.T) {
	v, err := NewVehicleAckermann(DefaultVehicleState())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctrl := NewFrontSteerSpeedPID(v, 10, 0, 0, 100)

	out := ctrl.Step(Context{Time: 0, Dt: 0.01}, SteerSpeedSetpoint(3.0, 0.2))
	if out.SteerAng == 0 {
		t.Error("steer output should not collapse to zero for a non-zero delta command")
	}
}

func TestClampedPID_IntegralWindup(t *testing.T) {
	p := newClampedPID(0, 10, 0, 5.0)
	for i := 0; i < 1000; i++ {
		p.update(100, 0.01)
	}
	out := p.update(100, 0.01)
	if math.Abs(out) > 5.0+1e-9 {
		t.Errorf("output %g exceeds max_torque 5.0 despite long integration", out)
	}
}
