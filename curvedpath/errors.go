package curvedpath

import "github.com/pkg/errors"

var (
	// ErrPathNotFound is returned when no candidate family produces a
	// finite path between the requested poses.
	ErrPathNotFound = errors.New("no valid path found between the given poses")

	// ErrInvalidCurvature is returned when the maximum curvature is not a
	// positive number.
	ErrInvalidCurvature = errors.New("maximum curvature must be positive")

	// ErrNaNInCalculation is returned when a pose contains NaN components.
	ErrNaNInCalculation = errors.New("NaN encountered in path calculation")
)
