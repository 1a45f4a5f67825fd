package vehicle

import "math"

// clampedPID is a single-axis PID loop with output clamping and integral
// anti-windup, tuned for per-wheel torque control where the output has a
// hard physical limit (motor torque ceiling).
//
// This loop clamps its integral term directly (|Ki*I| <= TauMax) rather than clamping
// only the final output, so the integrator does not keep accumulating once
// it is already saturating the actuator.
type clampedPID struct {
	Kp, Ki, Kd float64
	TauMax     float64

	integral float64
	prevErr  float64
	started  bool
}

func newClampedPID(kp, ki, kd, tauMax float64) *clampedPID {
	return &clampedPID{Kp: kp, Ki: ki, Kd: kd, TauMax: tauMax}
}

// update advances the loop by dt given the current error and returns the
// clamped control output.
func (p *clampedPID) update(err, dt float64) float64 {
	if dt <= 0 {
		return clamp(p.Kp*err, -p.TauMax, p.TauMax)
	}

	p.integral += err * dt

	if p.Ki != 0 && p.TauMax > 0 {
		iMax := p.TauMax / math.Abs(p.Ki)
		p.integral = clamp(p.integral, -iMax, iMax)
	}

	var deriv float64
	if p.started {
		deriv = (err - p.prevErr) / dt
	}
	p.prevErr = err
	p.started = true

	u := p.Kp*err + p.Ki*p.integral + p.Kd*deriv
	return clamp(u, -p.TauMax, p.TauMax)
}

func (p *clampedPID) reset() {
	p.integral = 0
	p.prevErr = 0
	p.started = false
}
