package vehicle

import "errors"

var (
	// ErrDegenerateGeometry is returned when the Ackermann resolver is asked
	// to solve a chassis with a non-positive wheelbase or track width.
	ErrDegenerateGeometry = errors.New("vehicle: wheelbase and track width must be positive")

	// ErrSteeringSaturated is returned when the commanded steering angle,
	// after clamping, still exceeds the physically representable range.
	ErrSteeringSaturated = errors.New("vehicle: steering angle saturated at +/- pi/2")

	// ErrUnknownWheel is returned when a controller references a wheel index
	// outside the chassis' wheel list.
	ErrUnknownWheel = errors.New("vehicle: wheel index out of range")
)

// GeometryError wraps ErrDegenerateGeometry/ErrSteeringSaturated with the
// offending values so callers can log or test against them precisely.
type GeometryError struct {
	Err          error
	Wheelbase    float64
	TrackWidth   float64
	SteerCommand float64
}

func (e *GeometryError) Error() string {
	return e.Err.Error()
}

func (e *GeometryError) Unwrap() error {
	return e.Err
}
