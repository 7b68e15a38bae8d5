// Package curvedpath solves shortest curvature-bounded paths between planar
// poses. SolveDubins finds forward-only paths; SolveReedsShepp also allows
// segments traveled in reverse. Solved paths can be densely sampled into
// pose traces for tracking or rendering.
//
// Segment lengths are stored in curvature-normalized units: a path solved
// for maximum curvature k lives in a frame where the minimum turn radius is
// one, and arc lengths measure swept radians. Physical distances are the
// normalized ones divided by k, and Length reports the physical total.
package curvedpath

import (
	"math"

	"go.viam.com/pathplan/spatialmath"
)

// SegmentKind labels the motion primitives a path is assembled from.
type SegmentKind int

const (
	// SegmentNone marks an unused slot in a path's segment array.
	SegmentNone SegmentKind = iota
	// SegmentLeft is an arc at maximum curvature turning left.
	SegmentLeft
	// SegmentRight is an arc at maximum curvature turning right.
	SegmentRight
	// SegmentStraight is a straight line.
	SegmentStraight
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentLeft:
		return "L"
	case SegmentRight:
		return "R"
	case SegmentStraight:
		return "S"
	default:
		return ""
	}
}

// Segment is one primitive of a curved path. Length is curvature-normalized
// and signed; a negative length means the segment is traveled in reverse.
type Segment struct {
	Kind   SegmentKind
	Length float64
}

// Family names the segment pattern of a solved path, such as "LSL" or
// "LRSL". Zero-length segments still contribute their letter.
type Family string

// The six Dubins families, in the order SolveDubins tries them.
const (
	FamilyRSR Family = "RSR"
	FamilyRSL Family = "RSL"
	FamilyLSR Family = "LSR"
	FamilyLSL Family = "LSL"
	FamilyRLR Family = "RLR"
	FamilyLRL Family = "LRL"
)

// Path is a solved curvature-bounded path between two poses. Paths are
// immutable and constructed only by the solvers.
type Path struct {
	family       Family
	segments     [5]Segment
	length       float64
	maxCurvature float64
	start        spatialmath.Pose
	end          spatialmath.Pose
}

func newPath(start, end spatialmath.Pose, maxCurvature float64, segments [5]Segment, total float64) *Path {
	return &Path{
		family:       familyOf(segments),
		segments:     segments,
		length:       total / maxCurvature,
		maxCurvature: maxCurvature,
		start:        start,
		end:          end,
	}
}

// Family returns the path's segment pattern.
func (p *Path) Family() Family {
	return p.family
}

// Segments returns a copy of the path's segments in travel order.
func (p *Path) Segments() []Segment {
	segments := make([]Segment, 0, len(p.segments))
	for _, s := range p.segments {
		if s.Kind == SegmentNone {
			break
		}
		segments = append(segments, s)
	}
	return segments
}

// Length returns the total distance traveled along the path, counting
// reversed segments by their magnitude.
func (p *Path) Length() float64 {
	return p.length
}

// MaxCurvature returns the curvature bound the path was solved for.
func (p *Path) MaxCurvature() float64 {
	return p.maxCurvature
}

// Start returns the path's start pose.
func (p *Path) Start() spatialmath.Pose {
	return p.start
}

// End returns the path's goal pose.
func (p *Path) End() spatialmath.Pose {
	return p.end
}

func familyOf(segments [5]Segment) Family {
	letters := make([]byte, 0, len(segments))
	for _, s := range segments {
		if s.Kind == SegmentNone {
			break
		}
		letters = append(letters, s.Kind.String()[0])
	}
	return Family(letters)
}

func pathLength(segments [5]Segment) float64 {
	total := 0.0
	for _, s := range segments {
		total += math.Abs(s.Length)
	}
	return total
}
