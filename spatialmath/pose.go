// Package spatialmath defines planar poses and the frame math used to move
// between world and body coordinates.
//
// A pose couples a 2D position with a heading. Headings are in radians,
// measured counterclockwise from the positive X axis, and are not reduced to
// any canonical range; callers that need wrapped angles should wrap them.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/num/quat"
)

// Pose is a position and heading in the plane. The zero value is the origin
// facing along the positive X axis.
type Pose struct {
	Point r2.Point
	Theta float64
}

// NewPose returns the pose at (x, y) with the given heading.
func NewPose(x, y, theta float64) Pose {
	return Pose{Point: r2.Point{X: x, Y: y}, Theta: theta}
}

// Translated returns the pose moved by the given offset. Heading is
// unchanged.
func (p Pose) Translated(offset r2.Point) Pose {
	return Pose{Point: p.Point.Add(offset), Theta: p.Theta}
}

// Rotated returns the pose rotated about the world origin by the given
// angle. Both the position and the heading rotate.
func (p Pose) Rotated(angle float64) Pose {
	sin, cos := math.Sincos(angle)
	return Pose{
		Point: r2.Point{
			X: p.Point.X*cos - p.Point.Y*sin,
			Y: p.Point.X*sin + p.Point.Y*cos,
		},
		Theta: p.Theta + angle,
	}
}

// Scaled returns the pose with its position scaled by f. Heading is
// unchanged.
func (p Pose) Scaled(f float64) Pose {
	return Pose{Point: p.Point.Mul(f), Theta: p.Theta}
}

// ToLocal expresses other in the frame anchored at p, so that p itself maps
// to the zero pose. Inverse of FromLocal.
func (p Pose) ToLocal(other Pose) Pose {
	return other.Translated(p.Point.Mul(-1)).Rotated(-p.Theta)
}

// FromLocal maps a pose expressed in the frame anchored at p back into the
// world frame. Inverse of ToLocal.
func (p Pose) FromLocal(other Pose) Pose {
	return other.Rotated(p.Theta).Translated(p.Point)
}

// Heading returns the unit vector along the pose's heading.
func (p Pose) Heading() r2.Point {
	sin, cos := math.Sincos(p.Theta)
	return r2.Point{X: cos, Y: sin}
}

// At returns the point dist ahead of the pose along its heading. Negative
// distances move behind the pose.
func (p Pose) At(dist float64) r2.Point {
	return p.Point.Add(p.Heading().Mul(dist))
}

// Quaternion returns the pose's heading as a rotation about the positive Z
// axis, for interoperating with 3D orientation math.
func (p Pose) Quaternion() quat.Number {
	sin, cos := math.Sincos(p.Theta / 2)
	return quat.Number{Real: cos, Kmag: sin}
}

// AlmostEqual reports whether two poses are within tol of each other in
// position and heading.
func (p Pose) AlmostEqual(other Pose, tol float64) bool {
	return math.Abs(p.Point.X-other.Point.X) <= tol &&
		math.Abs(p.Point.Y-other.Point.Y) <= tol &&
		math.Abs(p.Theta-other.Theta) <= tol
}
