package curvedpath

import (
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/pathplan/spatialmath"
)

// TracePoint is one sampled pose along a path, labeled with the kind of
// segment that produced it.
type TracePoint struct {
	Pose spatialmath.Pose
	Kind SegmentKind
}

// Trace is a dense sampling of a path in world coordinates.
type Trace []TracePoint

// Points projects the trace onto its positions.
func (tr Trace) Points() []r2.Point {
	pts := make([]r2.Point, len(tr))
	for i, tp := range tr {
		pts[i] = tp.Pose.Point
	}
	return pts
}

// Sample walks the path at the given step and returns the poses visited,
// in world coordinates. The step is curvature-normalized, like segment
// lengths, and is taken in each segment's travel direction. Segment
// boundaries are always emitted, so the first point is the start pose and
// the last reproduces the goal; a step that is not positive yields the
// boundary points only.
func (p *Path) Sample(stepSize float64) Trace {
	if !(stepSize > 0) {
		stepSize = math.Inf(1)
	}
	minRadius := 1 / p.maxCurvature

	trace := Trace{{Pose: spatialmath.Pose{}, Kind: p.segments[0].Kind}}
	for _, s := range p.segments {
		if s.Kind == SegmentNone {
			break
		}
		if s.Length == 0 {
			continue
		}
		origin := trace[len(trace)-1].Pose
		step := math.Copysign(stepSize, s.Length)
		for current := step; math.Abs(current+step) <= math.Abs(s.Length); current += step {
			trace = append(trace, TracePoint{
				Pose: segmentPose(origin, s.Kind, current, minRadius),
				Kind: s.Kind,
			})
		}
		trace = append(trace, TracePoint{
			Pose: segmentPose(origin, s.Kind, s.Length, minRadius),
			Kind: s.Kind,
		})
	}
	for i := range trace {
		trace[i].Pose = p.start.FromLocal(trace[i].Pose)
	}
	return trace
}

// segmentPose is the pose reached after traveling dist along a segment
// starting at origin, in the path's local frame. Arcs sweep dist radians
// at the minimum turn radius; straights cover dist radii of distance.
func segmentPose(origin spatialmath.Pose, kind SegmentKind, dist, minRadius float64) spatialmath.Pose {
	switch kind {
	case SegmentStraight:
		return origin.Translated(origin.Heading().Mul(dist * minRadius))
	case SegmentLeft:
		sin, cos := math.Sincos(dist)
		return origin.FromLocal(spatialmath.Pose{
			Point: r2.Point{X: sin, Y: 1 - cos}.Mul(minRadius),
			Theta: dist,
		})
	case SegmentRight:
		sin, cos := math.Sincos(dist)
		return origin.FromLocal(spatialmath.Pose{
			Point: r2.Point{X: sin, Y: cos - 1}.Mul(minRadius),
			Theta: -dist,
		})
	default:
		return origin
	}
}
