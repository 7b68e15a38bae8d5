package trajectory

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrInvalidTimeStep is returned when the search step is not positive
	// or the time window is reversed.
	ErrInvalidTimeStep = errors.New("time step must be positive and the time window ordered")

	// ErrNoValidTrajectory is returned when no duration in the window
	// passes validation.
	ErrNoValidTrajectory = errors.New("no valid trajectory found in the time window")
)

// Validator reports whether a candidate trajectory is acceptable.
type Validator func(q *Quintic) bool

// FindOptimal returns the shortest-duration trajectory between start and
// end that the validator accepts, scanning durations from minTime to
// maxTime in timeStep increments. The scan never starts below one time
// step, so a zero or negative minTime begins at timeStep.
func FindOptimal(start, end State, minTime, maxTime, timeStep float64, valid Validator) (*Quintic, error) {
	if timeStep <= 0 || maxTime < minTime {
		return nil, ErrInvalidTimeStep
	}
	t := math.Max(minTime, timeStep)
	for ; t <= maxTime; t += timeStep {
		q, err := NewQuintic(start, end, t)
		if err != nil {
			return nil, err
		}
		if valid(q) {
			return q, nil
		}
	}
	return nil, ErrNoValidTrajectory
}

// PeakLimitValidator accepts trajectories whose acceleration and jerk
// magnitudes, sampled every dt over the whole duration, never exceed the
// given limits. The end of the trajectory is always sampled. A dt that is
// not positive rejects every trajectory.
func PeakLimitValidator(maxAccel, maxJerk, dt float64) Validator {
	return func(q *Quintic) bool {
		if !(dt > 0) {
			return false
		}
		var accels, jerks []float64
		for t := 0.0; t <= q.Duration(); t += dt {
			accels = append(accels, q.Acceleration(t).Norm())
			jerks = append(jerks, q.Jerk(t).Norm())
		}
		accels = append(accels, q.Acceleration(q.Duration()).Norm())
		jerks = append(jerks, q.Jerk(q.Duration()).Norm())
		return floats.Max(accels) <= maxAccel && floats.Max(jerks) <= maxJerk
	}
}
