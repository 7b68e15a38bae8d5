package pursuit

import (
	"math"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"go.viam.com/pathplan/spatialmath"
)

func TestCurvatureTowardOffsetPath(t *testing.T) {
	logger := golog.NewTestLogger(t)
	points := []r2.Point{{X: 0, Y: 0.5}, {X: 2, Y: 0.5}}
	pose := spatialmath.NewPose(0, 0, 0)

	// The path runs parallel half a unit to the left; the goal is the
	// circle exit at (sqrt(3)/2, 0.5) and the turn is a unit arc left.
	curvature, err := Curvature(logger, points, pose, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, curvature, test.ShouldAlmostEqual, -1, 1e-12)
}

func TestCurvatureRotatedVehicle(t *testing.T) {
	logger := golog.NewTestLogger(t)
	// Facing +Y with the path half a unit to the vehicle's right.
	points := []r2.Point{{X: 0.5, Y: 0}, {X: 0.5, Y: 2}}
	pose := spatialmath.NewPose(0, 0, math.Pi/2)

	curvature, err := Curvature(logger, points, pose, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, curvature, test.ShouldAlmostEqual, 1, 1e-10)
}

func TestCurvatureOnPath(t *testing.T) {
	logger := golog.NewTestLogger(t)
	points := []r2.Point{{X: -0.5, Y: 0}, {X: 3, Y: 0}}
	pose := spatialmath.NewPose(0, 0, 0)

	curvature, err := Curvature(logger, points, pose, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, curvature, test.ShouldAlmostEqual, 0, 1e-12)
}

func TestCurvatureTracksFurthestPoint(t *testing.T) {
	logger := golog.NewTestLogger(t)
	// Two points sit inside the circle; steering must follow the segment
	// that begins at the later one, which turns hard left.
	points := []r2.Point{{X: 0.1, Y: 0}, {X: 0.2, Y: 0.1}, {X: 0.2, Y: 5}}
	pose := spatialmath.NewPose(0, 0, 0)

	curvature, err := Curvature(logger, points, pose, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, curvature, test.ShouldAlmostEqual, -2*math.Sqrt(0.96), 1e-9)
}

func TestCurvatureExtendsFinalSegment(t *testing.T) {
	logger := golog.NewTestLogger(t)
	// Only the last path point is inside, so its segment is extended
	// beyond the path end.
	points := []r2.Point{{X: -2, Y: 0.3}, {X: 0.1, Y: 0.3}}
	pose := spatialmath.NewPose(0, 0, 0)

	curvature, err := Curvature(logger, points, pose, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, curvature, test.ShouldAlmostEqual, -0.6, 1e-12)
}

func TestCurvatureRejections(t *testing.T) {
	logger := golog.NewTestLogger(t)
	pose := spatialmath.NewPose(0, 0, 0)
	points := []r2.Point{{X: 0, Y: 0.5}, {X: 2, Y: 0.5}}

	_, err := Curvature(logger, points, pose, 0)
	test.That(t, err, test.ShouldBeError, ErrInvalidLookahead)
	_, err = Curvature(logger, points, pose, -1)
	test.That(t, err, test.ShouldBeError, ErrInvalidLookahead)

	_, err = Curvature(logger, points[:1], pose, 1)
	test.That(t, err, test.ShouldBeError, ErrPathTooShort)

	far := []r2.Point{{X: 10, Y: 0}, {X: 11, Y: 0}}
	_, err = Curvature(logger, far, pose, 1)
	test.That(t, err, test.ShouldBeError, ErrRobotTooFar)

	// A point exactly on the circle does not count as inside.
	boundary := []r2.Point{{X: -1, Y: 0}, {X: 3, Y: 0}}
	_, err = Curvature(logger, boundary, pose, 1)
	test.That(t, err, test.ShouldBeError, ErrRobotTooFar)

	// Facing away from the path puts the goal behind the vehicle.
	behind := spatialmath.NewPose(0, 0, math.Pi)
	_, err = Curvature(logger, points, behind, 1)
	test.That(t, err, test.ShouldBeError, ErrWrongOrientation)

	// Consecutive duplicate points leave the final segment directionless.
	degenerate := []r2.Point{{X: 0.1, Y: 0}, {X: 0.1, Y: 0}}
	_, err = Curvature(logger, degenerate, pose, 1)
	test.That(t, err, test.ShouldBeError, ErrInvariantViolation)
}

func TestLookaheadIntersectionInvariants(t *testing.T) {
	logger := golog.NewTestLogger(t)
	pos := r2.Point{}

	// Segment entirely outside the circle, pointing away.
	_, err := lookaheadIntersection(logger, r2.Point{X: 5, Y: 0}, r2.Point{X: 1, Y: 0}, pos, 1)
	test.That(t, err, test.ShouldBeError, ErrInvariantViolation)

	// Segment start outside with the whole circle still ahead of it.
	_, err = lookaheadIntersection(logger, r2.Point{X: -5, Y: 0}, r2.Point{X: 1, Y: 0}, pos, 1)
	test.That(t, err, test.ShouldBeError, ErrInvariantViolation)

	// Line missing the circle entirely.
	_, err = lookaheadIntersection(logger, r2.Point{X: 0, Y: 5}, r2.Point{X: 1, Y: 0}, pos, 1)
	test.That(t, err, test.ShouldBeError, ErrInvariantViolation)
}

func TestLookaheadIntersectionExitPoint(t *testing.T) {
	logger := golog.NewTestLogger(t)

	// Vehicle at (0, 0.5) tracking the segment from the origin toward
	// (0, 0.6): the ray leaves the circle sqrt(0.6) past the vehicle.
	goal, err := lookaheadIntersection(
		logger, r2.Point{}, r2.Point{X: 0, Y: 0.6}, r2.Point{X: 0, Y: 0.5}, 0.6)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, goal.X, test.ShouldAlmostEqual, 0, 1e-10)
	test.That(t, goal.Y, test.ShouldAlmostEqual, 0.5+math.Sqrt(0.6), 1e-10)
}
