// Package viz renders solved paths and trajectories to image files for
// quick visual inspection.
package viz

import (
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"go.viam.com/pathplan/curvedpath"
	"go.viam.com/pathplan/trajectory"
)

// SaveTrace renders the sampled world-frame track of a path with its
// endpoints marked and writes it to filename. The image format follows
// the file extension.
func SaveTrace(path *curvedpath.Path, stepSize float64, filename string) error {
	trace := path.Sample(stepSize)
	pts := make(plotter.XYs, len(trace))
	for i, tp := range trace {
		pts[i] = plotter.XY{X: tp.Pose.Point.X, Y: tp.Pose.Point.Y}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "cannot plot trace")
	}
	line.Color = color.RGBA{B: 255, A: 255}
	line.Width = vg.Points(1)

	ends, err := plotter.NewScatter(plotter.XYs{
		{X: path.Start().Point.X, Y: path.Start().Point.Y},
		{X: path.End().Point.X, Y: path.End().Point.Y},
	})
	if err != nil {
		return errors.Wrap(err, "cannot plot endpoints")
	}

	p := plot.New()
	p.Title.Text = string(path.Family()) + " path"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(line, ends)
	p.Legend.Add("trace", line)
	p.Legend.Top = true

	return errors.Wrapf(p.Save(6*vg.Inch, 6*vg.Inch, filename), "cannot save %q", filename)
}

// SaveTrajectory renders a trajectory's coordinates along with its speed
// and acceleration magnitudes against time and writes the result to
// filename. A dt that is not positive samples a hundredth of the duration.
func SaveTrajectory(q *trajectory.Quintic, dt float64, filename string) error {
	if !(dt > 0) {
		dt = q.Duration() / 100
	}

	var xs, ys, speeds, accels plotter.XYs
	sample := func(t float64) {
		pos := q.PositionUnchecked(t)
		xs = append(xs, plotter.XY{X: t, Y: pos.X})
		ys = append(ys, plotter.XY{X: t, Y: pos.Y})
		speeds = append(speeds, plotter.XY{X: t, Y: q.Velocity(t).Norm()})
		accels = append(accels, plotter.XY{X: t, Y: q.Acceleration(t).Norm()})
	}
	for t := 0.0; t < q.Duration(); t += dt {
		sample(t)
	}
	sample(q.Duration())

	p := plot.New()
	p.Title.Text = "quintic trajectory"
	p.X.Label.Text = "t"
	series := []struct {
		name string
		pts  plotter.XYs
		col  color.RGBA
	}{
		{"x", xs, color.RGBA{R: 255, A: 255}},
		{"y", ys, color.RGBA{B: 255, A: 255}},
		{"speed", speeds, color.RGBA{G: 160, A: 255}},
		{"accel", accels, color.RGBA{R: 128, B: 128, A: 255}},
	}
	for _, s := range series {
		line, err := plotter.NewLine(s.pts)
		if err != nil {
			return errors.Wrapf(err, "cannot plot %s", s.name)
		}
		line.Color = s.col
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(s.name, line)
	}
	p.Legend.Top = true

	return errors.Wrapf(p.Save(8*vg.Inch, 4*vg.Inch, filename), "cannot save %q", filename)
}
