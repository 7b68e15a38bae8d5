// Package trajectory fits time-parameterized quintic polynomials between
// planar boundary states and searches for the shortest duration whose
// dynamics stay within limits.
package trajectory

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidDuration is returned when a trajectory duration is negative.
	ErrInvalidDuration = errors.New("trajectory duration must not be negative")

	// ErrOutOfRange is returned when evaluating a trajectory outside its
	// duration.
	ErrOutOfRange = errors.New("time is outside the trajectory duration")
)

// State is a boundary condition for trajectory fitting: where the vehicle
// is, how fast it moves, and how fast that changes.
type State struct {
	Position     r2.Point
	Velocity     r2.Point
	Acceleration r2.Point
}

// Quintic interpolates between two planar states with one fifth-order
// polynomial per axis. Position, velocity and acceleration are all matched
// at both ends.
type Quintic struct {
	x, y     [6]float64
	duration float64
}

// NewQuintic fits a trajectory from start to end taking duration time
// units. The duration must not be negative.
func NewQuintic(start, end State, duration float64) (*Quintic, error) {
	if duration < 0 {
		return nil, ErrInvalidDuration
	}
	return &Quintic{
		x: quinticCoefficients(
			start.Position.X, start.Velocity.X, start.Acceleration.X,
			end.Position.X, end.Velocity.X, end.Acceleration.X,
			duration,
		),
		y: quinticCoefficients(
			start.Position.Y, start.Velocity.Y, start.Acceleration.Y,
			end.Position.Y, end.Velocity.Y, end.Acceleration.Y,
			duration,
		),
		duration: duration,
	}, nil
}

// quinticCoefficients solves the two-point boundary problem on one axis.
// The first three coefficients restate the start state; the rest come from
// inverting the 3x3 system the end state imposes.
func quinticCoefficients(p0, v0, a0, p1, v1, a1, t float64) [6]float64 {
	invT := 1 / t
	tSq := t * t
	invTSq := 1 / tSq
	halfA0 := 0.5 * a0
	j0 := (p1 - p0 - v0*t - halfA0*tSq) * invTSq * invT
	j1 := (v1 - v0 - a0*t) * invTSq
	j2 := 0.5 * invT * (a1 - a0)
	return [6]float64{
		p0,
		v0,
		halfA0,
		10*j0 - 4*j1 + j2,
		(7*j1 - 15*j0 - 2*j2) * invT,
		(j2 - 3*j1 + 6*j0) * invTSq,
	}
}

// Duration returns the time the trajectory takes.
func (q *Quintic) Duration() float64 {
	return q.duration
}

// Position returns the planar position at time t, which must lie within
// [0, Duration].
func (q *Quintic) Position(t float64) (r2.Point, error) {
	if t < 0 || t > q.duration {
		return r2.Point{}, ErrOutOfRange
	}
	return q.PositionUnchecked(t), nil
}

// PositionUnchecked evaluates the fitted polynomials at any time, even
// outside the trajectory's duration.
func (q *Quintic) PositionUnchecked(t float64) r2.Point {
	return r2.Point{X: polyPos(q.x, t), Y: polyPos(q.y, t)}
}

// Velocity returns the planar velocity at time t.
func (q *Quintic) Velocity(t float64) r2.Point {
	return r2.Point{X: polyVel(q.x, t), Y: polyVel(q.y, t)}
}

// Acceleration returns the planar acceleration at time t.
func (q *Quintic) Acceleration(t float64) r2.Point {
	return r2.Point{X: polyAccel(q.x, t), Y: polyAccel(q.y, t)}
}

// Jerk returns the planar jerk at time t.
func (q *Quintic) Jerk(t float64) r2.Point {
	return r2.Point{X: polyJerk(q.x, t), Y: polyJerk(q.y, t)}
}

func polyPos(c [6]float64, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	t4 := t3 * t
	t5 := t4 * t
	return c[0] + c[1]*t + c[2]*t2 + c[3]*t3 + c[4]*t4 + c[5]*t5
}

func polyVel(c [6]float64, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	t4 := t3 * t
	return c[1] + 2*c[2]*t + 3*c[3]*t2 + 4*c[4]*t3 + 5*c[5]*t4
}

func polyAccel(c [6]float64, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return 2*c[2] + 6*c[3]*t + 12*c[4]*t2 + 20*c[5]*t3
}

func polyJerk(c [6]float64, t float64) float64 {
	return 6*c[3] + 24*c[4]*t + 60*c[5]*t*t
}
