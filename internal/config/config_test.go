package config

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if len(cfg.Vehicles) != 1 {
		t.Fatalf("expected 1 vehicle, got %d", len(cfg.Vehicles))
	}
	if cfg.Vehicles[0].Preset != "default" {
		t.Errorf("expected default preset, got %q", cfg.Vehicles[0].Preset)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("narrow_track")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.MaxSteerDeg != 35.0 {
		t.Errorf("expected max steer 35, got %f", cfg.MaxSteerDeg)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Error("expected at least one preset")
	}
}

func TestVehicleSpec_BuildVehicle(t *testing.T) {
	spec := VehicleSpec{Name: "car0", Preset: "speed_pid"}
	cfg, err := spec.BuildVehicle()
	if err != nil {
		t.Fatalf("BuildVehicle: %v", err)
	}
	if cfg.Controller.Class != "twist_front_steer_pid" {
		t.Errorf("expected twist_front_steer_pid controller, got %q", cfg.Controller.Class)
	}
}

func TestVehicleSpec_BuildVehicle_UnknownPreset(t *testing.T) {
	spec := VehicleSpec{Name: "car0", Preset: "does-not-exist"}
	if _, err := spec.BuildVehicle(); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestVehicleSpec_BuildVehicle_Default(t *testing.T) {
	spec := VehicleSpec{Name: "car0"}
	cfg, err := spec.BuildVehicle()
	if err != nil {
		t.Fatalf("BuildVehicle: %v", err)
	}
	if cfg.Controller.Class != "raw" {
		t.Errorf("expected raw controller, got %q", cfg.Controller.Class)
	}
}
