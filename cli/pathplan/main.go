// Package main is the CLI command itself.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"go.viam.com/pathplan/curvedpath"
	"go.viam.com/pathplan/pursuit"
	"go.viam.com/pathplan/spatialmath"
	"go.viam.com/pathplan/trajectory"
	"go.viam.com/pathplan/viz"
)

const (
	// Flags.
	planFlagStart     = "start"
	planFlagEnd       = "end"
	planFlagGoals     = "goals"
	planFlagCurvature = "curvature"
	planFlagReverse   = "reverse"
	planFlagStep      = "step"
	planFlagOut       = "out"

	trajFlagFrom     = "from"
	trajFlagTo       = "to"
	trajFlagFromVel  = "from-vel"
	trajFlagToVel    = "to-vel"
	trajFlagMaxAccel = "max-accel"
	trajFlagMaxJerk  = "max-jerk"
	trajFlagMinTime  = "min-time"
	trajFlagMaxTime  = "max-time"
	trajFlagTimeStep = "time-step"

	steerFlagPath      = "path"
	steerFlagPose      = "pose"
	steerFlagLookahead = "lookahead"
)

func main() {
	var logger golog.Logger

	app := &cli.App{
		Name:  "pathplan",
		Usage: "plan curvature-limited paths and trajectories",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				logger = golog.NewDebugLogger("cli")
			} else {
				logger = zap.NewNop().Sugar()
			}

			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "dubins",
				Usage: "solve a forward-only path between two poses",
				Flags: append(solveFlags(),
					&cli.StringFlag{
						Name:     planFlagEnd,
						Required: true,
						Usage:    "goal pose as x,y,theta (theta in radians)",
					},
				),
				Action: func(c *cli.Context) error {
					return solveAndPrint(c, curvedpath.SolveDubins)
				},
			},
			{
				Name:  "reeds-shepp",
				Usage: "solve a path between two poses, reversing where it helps",
				Flags: append(solveFlags(),
					&cli.StringFlag{
						Name:     planFlagEnd,
						Required: true,
						Usage:    "goal pose as x,y,theta (theta in radians)",
					},
				),
				Action: func(c *cli.Context) error {
					return solveAndPrint(c, curvedpath.SolveReedsShepp)
				},
			},
			{
				Name:  "best",
				Usage: "solve to several goals and keep the shortest path",
				Flags: append(solveFlags(),
					&cli.StringFlag{
						Name:     planFlagGoals,
						Required: true,
						Usage:    "goal poses as x,y,theta;x,y,theta;...",
					},
					&cli.BoolFlag{
						Name:  planFlagReverse,
						Usage: "allow reversing (Reeds-Shepp instead of Dubins)",
					},
				),
				Action: func(c *cli.Context) error {
					start, err := parsePose(c.String(planFlagStart))
					if err != nil {
						return err
					}
					goals, err := parsePoseList(c.String(planFlagGoals))
					if err != nil {
						return err
					}

					solve := curvedpath.Solver(curvedpath.SolveDubins)
					if c.Bool(planFlagReverse) {
						solve = curvedpath.SolveReedsShepp
					}

					path, goal, err := curvedpath.BestPath(
						c.Context, logger, solve, start, goals, c.Float64(planFlagCurvature))
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "goal index: %d\n", goal)
					printPath(c, path)
					return saveTraceIfRequested(c, path)
				},
			},
			{
				Name:  "trajectory",
				Usage: "find the shortest feasible quintic trajectory between two states",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  trajFlagFrom,
						Value: "0,0",
						Usage: "start position as x,y",
					},
					&cli.StringFlag{
						Name:     trajFlagTo,
						Required: true,
						Usage:    "goal position as x,y",
					},
					&cli.StringFlag{
						Name:  trajFlagFromVel,
						Value: "0,0",
						Usage: "start velocity as x,y",
					},
					&cli.StringFlag{
						Name:  trajFlagToVel,
						Value: "0,0",
						Usage: "goal velocity as x,y",
					},
					&cli.Float64Flag{
						Name:  trajFlagMaxAccel,
						Value: 2,
						Usage: "acceleration magnitude limit",
					},
					&cli.Float64Flag{
						Name:  trajFlagMaxJerk,
						Value: 10,
						Usage: "jerk magnitude limit",
					},
					&cli.Float64Flag{
						Name:  trajFlagMinTime,
						Value: 0,
						Usage: "shortest duration to consider",
					},
					&cli.Float64Flag{
						Name:  trajFlagMaxTime,
						Value: 30,
						Usage: "longest duration to consider",
					},
					&cli.Float64Flag{
						Name:  trajFlagTimeStep,
						Value: 0.5,
						Usage: "duration search step, also the limit sampling step",
					},
					&cli.PathFlag{
						Name:  planFlagOut,
						Usage: "write a rendering of the trajectory here",
					},
				},
				Action: TrajectoryCommand,
			},
			{
				Name:  "steer",
				Usage: "compute a pure pursuit steering curvature toward a piecewise linear path",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     steerFlagPath,
						Required: true,
						Usage:    "path points as x,y;x,y;...",
					},
					&cli.StringFlag{
						Name:  steerFlagPose,
						Value: "0,0,0",
						Usage: "vehicle pose as x,y,theta (theta in radians)",
					},
					&cli.Float64Flag{
						Name:  steerFlagLookahead,
						Value: 1,
						Usage: "lookahead radius",
					},
				},
				Action: func(c *cli.Context) error {
					points, err := parsePointList(c.String(steerFlagPath))
					if err != nil {
						return err
					}
					pose, err := parsePose(c.String(steerFlagPose))
					if err != nil {
						return err
					}
					lookahead := c.Float64(steerFlagLookahead)
					curvature, err := pursuit.Curvature(logger, points, pose, lookahead*lookahead)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "curvature: %v\n", curvature)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// TrajectoryCommand runs the trajectory duration search and prints the result.
func TrajectoryCommand(c *cli.Context) error {
	from, err := parsePoint(c.String(trajFlagFrom))
	if err != nil {
		return err
	}
	to, err := parsePoint(c.String(trajFlagTo))
	if err != nil {
		return err
	}
	fromVel, err := parsePoint(c.String(trajFlagFromVel))
	if err != nil {
		return err
	}
	toVel, err := parsePoint(c.String(trajFlagToVel))
	if err != nil {
		return err
	}

	timeStep := c.Float64(trajFlagTimeStep)
	valid := trajectory.PeakLimitValidator(
		c.Float64(trajFlagMaxAccel), c.Float64(trajFlagMaxJerk), timeStep)
	q, err := trajectory.FindOptimal(
		trajectory.State{Position: from, Velocity: fromVel},
		trajectory.State{Position: to, Velocity: toVel},
		c.Float64(trajFlagMinTime), c.Float64(trajFlagMaxTime), timeStep, valid)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "duration: %v\n", q.Duration())

	if out := c.Path(planFlagOut); out != "" {
		if err := viz.SaveTrajectory(q, timeStep, out); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "wrote %s\n", out)
	}
	return nil
}

func solveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  planFlagStart,
			Value: "0,0,0",
			Usage: "start pose as x,y,theta (theta in radians)",
		},
		&cli.Float64Flag{
			Name:  planFlagCurvature,
			Value: 1,
			Usage: "maximum path curvature",
		},
		&cli.Float64Flag{
			Name:  planFlagStep,
			Value: 0.1,
			Usage: "trace sampling step",
		},
		&cli.PathFlag{
			Name:  planFlagOut,
			Usage: "write a rendering of the path here",
		},
	}
}

func solveAndPrint(c *cli.Context, solve curvedpath.Solver) error {
	start, err := parsePose(c.String(planFlagStart))
	if err != nil {
		return err
	}
	end, err := parsePose(c.String(planFlagEnd))
	if err != nil {
		return err
	}
	path, err := solve(start, end, c.Float64(planFlagCurvature))
	if err != nil {
		return err
	}
	printPath(c, path)
	return saveTraceIfRequested(c, path)
}

func printPath(c *cli.Context, path *curvedpath.Path) {
	fmt.Fprintf(c.App.Writer, "family: %s\n", path.Family())
	fmt.Fprintf(c.App.Writer, "length: %v\n", path.Length())
	for _, s := range path.Segments() {
		fmt.Fprintf(c.App.Writer, "  %s %v\n", s.Kind, s.Length)
	}
}

func saveTraceIfRequested(c *cli.Context, path *curvedpath.Path) error {
	out := c.Path(planFlagOut)
	if out == "" {
		return nil
	}
	if err := viz.SaveTrace(path, c.Float64(planFlagStep), out); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "wrote %s\n", out)
	return nil
}

func parsePose(s string) (spatialmath.Pose, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return spatialmath.Pose{}, errors.Errorf("expected pose as x,y,theta, got %q", s)
	}
	var vals [3]float64
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return spatialmath.Pose{}, errors.Wrapf(err, "bad pose %q", s)
		}
		vals[i] = v
	}
	return spatialmath.NewPose(vals[0], vals[1], vals[2]), nil
}

func parsePoseList(s string) ([]spatialmath.Pose, error) {
	parts := strings.Split(s, ";")
	poses := make([]spatialmath.Pose, 0, len(parts))
	for _, part := range parts {
		pose, err := parsePose(part)
		if err != nil {
			return nil, err
		}
		poses = append(poses, pose)
	}
	return poses, nil
}

func parsePoint(s string) (r2.Point, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 2 {
		return r2.Point{}, errors.Errorf("expected point as x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return r2.Point{}, errors.Wrapf(err, "bad point %q", s)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return r2.Point{}, errors.Wrapf(err, "bad point %q", s)
	}
	return r2.Point{X: x, Y: y}, nil
}

func parsePointList(s string) ([]r2.Point, error) {
	parts := strings.Split(s, ";")
	points := make([]r2.Point, 0, len(parts))
	for _, part := range parts {
		point, err := parsePoint(part)
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}
	return points, nil
}
