package curvedpath

import (
	"context"
	"math"
	"testing"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/pathplan/spatialmath"
)

func TestBestPathPicksShortest(t *testing.T) {
	logger := golog.NewTestLogger(t)
	start := spatialmath.NewPose(0, 0, 0)
	goals := []spatialmath.Pose{
		spatialmath.NewPose(4, 4, math.Pi),
		spatialmath.NewPose(2, 0, 0),
		spatialmath.NewPose(1e308, 0, 0), // unreachable, silently skipped
	}

	path, goal, err := BestPath(context.Background(), logger, SolveDubins, start, goals, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, goal, test.ShouldEqual, 1)
	test.That(t, path.Length(), test.ShouldAlmostEqual, 2, 1e-9)
	test.That(t, path.End(), test.ShouldResemble, goals[1])
}

func TestBestPathTieKeepsLowestIndex(t *testing.T) {
	logger := golog.NewTestLogger(t)
	start := spatialmath.NewPose(0, 0, 0)
	twin := spatialmath.NewPose(2, 0, 0)
	goals := []spatialmath.Pose{
		spatialmath.NewPose(4, 4, math.Pi),
		twin,
		twin,
	}

	_, goal, err := BestPath(context.Background(), logger, SolveDubins, start, goals, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, goal, test.ShouldEqual, 1)
}

func TestBestPathWithReedsShepp(t *testing.T) {
	logger := golog.NewTestLogger(t)
	start := spatialmath.NewPose(0, 0, 0)
	goals := []spatialmath.Pose{
		spatialmath.NewPose(5, 0, 0),
		spatialmath.NewPose(-1, 0, 0),
	}

	path, goal, err := BestPath(context.Background(), logger, SolveReedsShepp, start, goals, 1)
	test.That(t, err, test.ShouldBeNil)
	// Backing up one unit beats driving five forward.
	test.That(t, goal, test.ShouldEqual, 1)
	test.That(t, path.Length(), test.ShouldAlmostEqual, 1, 1e-9)
}

func TestBestPathNoGoals(t *testing.T) {
	logger := golog.NewTestLogger(t)

	_, _, err := BestPath(context.Background(), logger, SolveDubins, spatialmath.NewPose(0, 0, 0), nil, 1)
	test.That(t, err, test.ShouldBeError, ErrPathNotFound)
}

func TestBestPathInvalidCurvature(t *testing.T) {
	logger := golog.NewTestLogger(t)
	goals := []spatialmath.Pose{spatialmath.NewPose(1, 0, 0)}

	_, _, err := BestPath(context.Background(), logger, SolveDubins, spatialmath.NewPose(0, 0, 0), goals, 0)
	test.That(t, err, test.ShouldBeError, ErrInvalidCurvature)
}

func TestBestPathCancelled(t *testing.T) {
	logger := golog.NewTestLogger(t)
	goals := []spatialmath.Pose{
		spatialmath.NewPose(1, 0, 0),
		spatialmath.NewPose(2, 0, 0),
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := BestPath(ctx, logger, SolveDubins, spatialmath.NewPose(0, 0, 0), goals, 1)
	test.That(t, err, test.ShouldBeError, context.Canceled)
}

func TestBestPathSolverErrors(t *testing.T) {
	logger := golog.NewTestLogger(t)
	start := spatialmath.NewPose(0, 0, 0)

	exploding := func(start, end spatialmath.Pose, maxCurvature float64) (*Path, error) {
		return nil, errors.New("solver exploded")
	}
	goals := []spatialmath.Pose{
		spatialmath.NewPose(1, 0, 0),
		spatialmath.NewPose(2, 0, 0),
	}
	_, _, err := BestPath(context.Background(), logger, exploding, start, goals, 1)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "solver exploded")

	// A failing goal does not mask a solvable one.
	picky := func(start, end spatialmath.Pose, maxCurvature float64) (*Path, error) {
		if end.Point.X < 0 {
			return nil, errors.New("solver exploded")
		}
		return SolveDubins(start, end, maxCurvature)
	}
	mixed := []spatialmath.Pose{
		spatialmath.NewPose(-1, 0, 0),
		spatialmath.NewPose(2, 0, 0),
	}
	path, goal, err := BestPath(context.Background(), logger, picky, start, mixed, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, goal, test.ShouldEqual, 1)
	test.That(t, path.Length(), test.ShouldAlmostEqual, 2, 1e-9)
}
