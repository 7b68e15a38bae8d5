package curvedpath

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"go.viam.com/pathplan/spatialmath"
)

// Solver joins two poses under a curvature bound. SolveDubins and
// SolveReedsShepp both satisfy it.
type Solver func(start, end spatialmath.Pose, maxCurvature float64) (*Path, error)

type goalOption struct {
	path *Path
	goal int
}

type goalOptionList []goalOption

func (list goalOptionList) Len() int {
	return len(list)
}

func (list goalOptionList) Less(i, j int) bool {
	if list[i].path.Length() != list[j].path.Length() {
		return list[i].path.Length() < list[j].path.Length()
	}
	return list[i].goal < list[j].goal
}

func (list goalOptionList) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

// BestPath solves from start to every goal in parallel and returns the
// shortest path found along with the index of the goal it reaches. Goals
// the solver cannot reach are skipped; equal lengths keep the lowest
// index. Other solver failures surface combined once no goal succeeds.
func BestPath(
	ctx context.Context,
	logger golog.Logger,
	solve Solver,
	start spatialmath.Pose,
	goals []spatialmath.Pose,
	maxCurvature float64,
) (*Path, int, error) {
	if maxCurvature <= 0 {
		return nil, 0, ErrInvalidCurvature
	}
	if len(goals) == 0 {
		return nil, 0, ErrPathNotFound
	}

	jobs := make(chan int, len(goals))
	for i := range goals {
		jobs <- i
	}
	close(jobs)

	var (
		mu       sync.Mutex
		options  goalOptionList
		solveErr error
	)
	nWorkers := runtime.GOMAXPROCS(0)
	if nWorkers > len(goals) {
		nWorkers = len(goals)
	}
	var wg sync.WaitGroup
	wg.Add(nWorkers)
	for worker := 0; worker < nWorkers; worker++ {
		utils.PanicCapturingGo(func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					return
				}
				path, err := solve(start, goals[i], maxCurvature)
				if err != nil {
					if errors.Is(err, ErrPathNotFound) {
						continue
					}
					mu.Lock()
					solveErr = multierr.Combine(solveErr, errors.Wrapf(err, "goal %d", i))
					mu.Unlock()
					continue
				}
				mu.Lock()
				options = append(options, goalOption{path: path, goal: i})
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if len(options) == 0 {
		if solveErr != nil {
			return nil, 0, solveErr
		}
		return nil, 0, ErrPathNotFound
	}
	sort.Sort(options)
	best := options[0]
	logger.Debugf("selected goal %d of %d, path length %f", best.goal, len(goals), best.path.Length())
	return best.path, best.goal, nil
}
