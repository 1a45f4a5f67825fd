package vehicle

import "testing"

func TestConfig_BuildVehicle_DefaultController(t *testing.T) {
	cfg := DefaultConfig()
	v, err := cfg.BuildVehicle()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := v.Controller().(*RawForcesController); !ok {
		t.Errorf("default controller should be RawForcesController, got %T", v.Controller())
	}
}

func TestConfig_BuildVehicle_UnknownController(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Controller.Class = "nonexistent"
	if _, err := cfg.BuildVehicle(); err == nil {
		t.Error("expected error for unknown controller class")
	}
}

func TestConfig_BuildVehicle_PIDController(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Controller = ControllerConfig{Class: "twist_front_steer_pid", Kp: 50, Ki: 5, Kd: 1, MaxTorque: 200}
	v, err := cfg.BuildVehicle()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := v.Controller().(*TwistFrontSteerPID); !ok {
		t.Errorf("expected TwistFrontSteerPID, got %T", v.Controller())
	}
}

func TestConfig_VehicleState_FrontWheelSymmetry(t *testing.T) {
	cfg := DefaultConfig()
	st := cfg.VehicleState()
	if st.Wheels[FL].Y != -st.Wheels[FR].Y {
		t.Errorf("front wheels should be symmetric about centerline: FL.y=%g FR.y=%g", st.Wheels[FL].Y, st.Wheels[FR].Y)
	}
	if err := st.Validate(); err != nil {
		t.Errorf("default config should produce valid state: %v", err)
	}
}
