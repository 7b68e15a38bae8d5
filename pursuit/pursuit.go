// Package pursuit implements pure pursuit steering. Given a piecewise
// linear path and the vehicle pose, Curvature finds where the path leaves
// the lookahead circle and returns the arc curvature that carries the
// vehicle onto that point.
package pursuit

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/pathplan/spatialmath"
)

var (
	// ErrInvalidLookahead is returned when the squared lookahead distance
	// is not positive.
	ErrInvalidLookahead = errors.New("lookahead distance must be positive")

	// ErrPathTooShort is returned for paths of fewer than two points.
	ErrPathTooShort = errors.New("path needs at least two points")

	// ErrRobotTooFar is returned when no path point lies strictly inside
	// the lookahead circle.
	ErrRobotTooFar = errors.New("no path point within the lookahead radius")

	// ErrWrongOrientation is returned when the goal point falls behind the
	// vehicle's heading.
	ErrWrongOrientation = errors.New("goal point lies behind the vehicle")

	// ErrInvariantViolation is returned when the lookahead geometry
	// degenerates, such as a path segment with no direction.
	ErrInvariantViolation = errors.New("pure pursuit geometry degenerated")
)

// Curvature computes the steering curvature that drives the vehicle at
// pose toward the point where the path exits the lookahead circle of the
// given squared radius. Positive curvature steers right of the heading.
func Curvature(logger golog.Logger, points []r2.Point, pose spatialmath.Pose, lookaheadSq float64) (float64, error) {
	if lookaheadSq <= 0 {
		return 0, ErrInvalidLookahead
	}
	index, err := trackedPathPoint(points, pose.Point, lookaheadSq)
	if err != nil {
		return 0, err
	}

	// Continue along the segment the tracked point begins; at the path's
	// end, extend the final segment instead.
	var dir r2.Point
	if index == len(points)-1 {
		dir = points[index].Sub(points[index-1])
	} else {
		dir = points[index+1].Sub(points[index])
	}

	goal, err := lookaheadIntersection(logger, points[index], dir, pose.Point, lookaheadSq)
	if err != nil {
		return 0, err
	}

	localGoal := pose.ToLocal(spatialmath.Pose{Point: goal}).Point
	if localGoal.X < 0 {
		logger.Warnf("goal point (%f, %f) is behind the vehicle", localGoal.X, localGoal.Y)
		return 0, ErrWrongOrientation
	}
	return 2 * -localGoal.Y / lookaheadSq, nil
}

// trackedPathPoint returns the highest-index path point strictly inside
// the lookahead circle around pos.
func trackedPathPoint(points []r2.Point, pos r2.Point, lookaheadSq float64) (int, error) {
	if len(points) < 2 {
		return 0, ErrPathTooShort
	}
	index := -1
	for i, p := range points {
		d := p.Sub(pos)
		if d.Dot(d) < lookaheadSq {
			index = i
		}
	}
	if index < 0 {
		return 0, ErrRobotTooFar
	}
	return index, nil
}

// lookaheadIntersection finds where the ray from segStart along dir leaves
// the lookahead circle around pos. segStart must lie inside the circle, so
// the ray enters behind the start and exits ahead of it.
func lookaheadIntersection(logger golog.Logger, segStart, dir, pos r2.Point, lookaheadSq float64) (r2.Point, error) {
	oc := segStart.Sub(pos)
	a := dir.Dot(dir)
	if a == 0 {
		logger.Errorf("path segment at (%f, %f) has no direction", segStart.X, segStart.Y)
		return r2.Point{}, ErrInvariantViolation
	}
	b := 2 * oc.Dot(dir)
	c := oc.Dot(oc) - lookaheadSq

	disc := b*b - 4*a*c
	if disc < 0 {
		logger.Errorf("segment does not cross the lookahead circle, discriminant %f", disc)
		return r2.Point{}, ErrInvariantViolation
	}
	sq := math.Sqrt(disc)
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	if t0 > 0 {
		logger.Errorf("circle entry t0 %f ahead of a segment start inside it", t0)
		return r2.Point{}, ErrInvariantViolation
	}
	if t1 <= 0 {
		logger.Errorf("circle exit t1 %f behind the segment start", t1)
		return r2.Point{}, ErrInvariantViolation
	}
	return segStart.Add(dir.Mul(t1)), nil
}
