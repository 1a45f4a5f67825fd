package vehicle

import (
	"errors"
	"math"
	"testing"
)

func TestResolveAckermann_Basic(t *testing.T) {
	geom := SteeringGeometry{Wheelbase: 1.3, TrackWidth: 1.0, MaxSteer: math.Pi / 2}

	got, err := ResolveAckermann(geom, 0.3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantOuter := 0.26971
	wantInner := 0.33766

	if math.Abs(got.Right-wantOuter) > 1e-3 {
		t.Errorf("outer (FR) angle = %.6f, want ~%.3f", got.Right, wantOuter)
	}
	if math.Abs(got.Left-wantInner) > 1e-3 {
		t.Errorf("inner (FL) angle = %.6f, want ~%.3f", got.Left, wantInner)
	}
	if got.Left <= got.Right {
		t.Errorf("inner angle %.6f should exceed outer angle %.6f", got.Left, got.Right)
	}
}

func TestResolveAckermann_Clamping(t *testing.T) {
	geom := SteeringGeometry{Wheelbase: 1.3, TrackWidth: 1.0, MaxSteer: 0.52}

	got, err := ResolveAckermann(geom, 1.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(got.Left) > 0.52+1e-9 {
		t.Errorf("left angle %.6f exceeds max steer 0.52", got.Left)
	}
	if math.Abs(got.Right) > 0.52+1e-9 {
		t.Errorf("right angle %.6f exceeds max steer 0.52", got.Right)
	}
}

func TestResolveAckermann_Degenerate(t *testing.T) {
	geom := SteeringGeometry{Wheelbase: 1.3, TrackWidth: 1.0, MaxSteer: 0.52}

	got, err := ResolveAckermann(geom, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Left != 0 || got.Right != 0 {
		t.Errorf("zero steer should resolve to (0, 0), got (%g, %g)", got.Left, got.Right)
	}
}

func TestResolveAckermann_SignSymmetry(t *testing.T) {
	geom := SteeringGeometry{Wheelbase: 1.3, TrackWidth: 1.0, MaxSteer: math.Pi / 2}

	left, err := ResolveAckermann(geom, 0.3)
	if err != nil {
		t.Fatal(err)
	}
	right, err := ResolveAckermann(geom, -0.3)
	if err != nil {
		t.Fatal(err)
	}

	// A sign flip mirrors the turn: the inner wheel moves from left to right,
	// so each wheel's angle is the negated angle of the opposite wheel.
	if math.Abs(left.Left+right.Right) > 1e-9 || math.Abs(left.Right+right.Left) > 1e-9 {
		t.Errorf("angles should mirror and negate under sign flip: +0.3 -> (%g,%g), -0.3 -> (%g,%g)",
			left.Left, left.Right, right.Left, right.Right)
	}
}

func TestResolveAckermann_DegenerateGeometry(t *testing.T) {
	geom := SteeringGeometry{Wheelbase: 0, TrackWidth: 1.0}
	_, err := ResolveAckermann(geom, 0.2)
	if !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("expected ErrDegenerateGeometry, got %v", err)
	}
}

func TestResolveAckermann_Saturated(t *testing.T) {
	geom := SteeringGeometry{Wheelbase: 1.3, TrackWidth: 1.0, MaxSteer: math.Pi}
	_, err := ResolveAckermann(geom, math.Pi/2+0.1)
	if !errors.Is(err, ErrSteeringSaturated) {
		t.Errorf("expected ErrSteeringSaturated, got %v", err)
	}
}
