package curvedpath

import (
	"math"

	"go.viam.com/pathplan/spatialmath"
	"go.viam.com/pathplan/utils"
)

// dubinsInputs holds the quantities shared by all six family solutions:
// d is the curvature-normalized chord length to the goal, alpha and beta
// are the start and goal headings measured from the chord, both wrapped to
// [0, 2pi), and the remaining fields cache their sines and cosines.
type dubinsInputs struct {
	alpha, beta, d float64
	sa, sb         float64
	ca, cb         float64
	cab            float64
}

// dubinsFamily computes one candidate word from the shared inputs. The
// second return is false when the family cannot reach the goal.
type dubinsFamily func(in dubinsInputs) ([3]Segment, bool)

// Candidate order decides ties: equal-length solutions keep the earliest
// family. Matches the declaration order of the Family constants.
var dubinsFamilies = []dubinsFamily{
	dubinsRSR,
	dubinsRSL,
	dubinsLSR,
	dubinsLSL,
	dubinsRLR,
	dubinsLRL,
}

func newDubinsInputs(start, end spatialmath.Pose, maxCurvature float64) dubinsInputs {
	localEnd := start.ToLocal(end)
	d := maxCurvature * localEnd.Point.Norm()
	theta := math.Atan2(localEnd.Point.Y, localEnd.Point.X)
	alpha := utils.WrapTo2Pi(-theta)
	beta := utils.WrapTo2Pi(localEnd.Theta - theta)
	sa, ca := math.Sincos(alpha)
	sb, cb := math.Sincos(beta)
	return dubinsInputs{
		alpha: alpha,
		beta:  beta,
		d:     d,
		sa:    sa,
		sb:    sb,
		ca:    ca,
		cb:    cb,
		cab:   math.Cos(alpha - beta),
	}
}

// SolveDubins returns the shortest path from start to end that drives only
// forward and never exceeds maxCurvature. All six candidate families are
// evaluated and the shortest feasible one wins.
func SolveDubins(start, end spatialmath.Pose, maxCurvature float64) (*Path, error) {
	if maxCurvature <= 0 {
		return nil, ErrInvalidCurvature
	}
	in := newDubinsInputs(start, end, maxCurvature)
	if math.IsNaN(in.d) || math.IsNaN(in.beta) {
		return nil, ErrNaNInCalculation
	}

	var best [5]Segment
	bestTotal := math.Inf(1)
	found := false
	for _, family := range dubinsFamilies {
		word, ok := family(in)
		if !ok {
			continue
		}
		segments := [5]Segment{word[0], word[1], word[2]}
		total := pathLength(segments)
		if math.IsNaN(total) || total >= bestTotal {
			continue
		}
		best = segments
		bestTotal = total
		found = true
	}
	if !found {
		return nil, ErrPathNotFound
	}
	return newPath(start, end, maxCurvature, best, bestTotal), nil
}

func seg(kind SegmentKind, length float64) Segment {
	return Segment{Kind: kind, Length: length}
}

func dubinsRSR(in dubinsInputs) ([3]Segment, bool) {
	pSq := 2 + in.d*in.d - 2*in.cab + 2*in.d*(in.sb-in.sa)
	if pSq < 0 {
		return [3]Segment{}, false
	}
	tmp := math.Atan2(in.ca-in.cb, in.d-in.sa+in.sb)
	return [3]Segment{
		seg(SegmentRight, utils.WrapTo2Pi(in.alpha-tmp)),
		seg(SegmentStraight, math.Sqrt(pSq)),
		seg(SegmentRight, utils.WrapTo2Pi(tmp-in.beta)),
	}, true
}

func dubinsRSL(in dubinsInputs) ([3]Segment, bool) {
	pSq := in.d*in.d - 2 + 2*in.cab - 2*in.d*(in.sa+in.sb)
	if pSq < 0 {
		return [3]Segment{}, false
	}
	p := math.Sqrt(pSq)
	tmp := math.Atan2(in.ca+in.cb, in.d-in.sa-in.sb) - math.Atan2(2, p)
	return [3]Segment{
		seg(SegmentRight, utils.WrapTo2Pi(in.alpha-tmp)),
		seg(SegmentStraight, p),
		seg(SegmentLeft, utils.WrapTo2Pi(in.beta-tmp)),
	}, true
}

func dubinsLSR(in dubinsInputs) ([3]Segment, bool) {
	pSq := -2 + in.d*in.d + 2*in.cab + 2*in.d*(in.sa+in.sb)
	if pSq < 0 {
		return [3]Segment{}, false
	}
	p := math.Sqrt(pSq)
	tmp := math.Atan2(-in.ca-in.cb, in.d+in.sa+in.sb) - math.Atan2(-2, p)
	return [3]Segment{
		seg(SegmentLeft, utils.WrapTo2Pi(tmp-in.alpha)),
		seg(SegmentStraight, p),
		seg(SegmentRight, utils.WrapTo2Pi(tmp-in.beta)),
	}, true
}

func dubinsLSL(in dubinsInputs) ([3]Segment, bool) {
	pSq := 2 + in.d*in.d - 2*in.cab + 2*in.d*(in.sa-in.sb)
	if pSq < 0 {
		return [3]Segment{}, false
	}
	tmp := math.Atan2(in.cb-in.ca, in.d+in.sa-in.sb)
	return [3]Segment{
		seg(SegmentLeft, utils.WrapTo2Pi(tmp-in.alpha)),
		seg(SegmentStraight, math.Sqrt(pSq)),
		seg(SegmentLeft, utils.WrapTo2Pi(in.beta-tmp)),
	}, true
}

func dubinsRLR(in dubinsInputs) ([3]Segment, bool) {
	tmp := (6 - in.d*in.d + 2*in.cab + 2*in.d*(in.sa-in.sb)) * 0.125
	if math.Abs(tmp) > 1 {
		return [3]Segment{}, false
	}
	p := utils.WrapTo2Pi(2*math.Pi - math.Acos(tmp))
	t := utils.WrapTo2Pi(in.alpha - math.Atan2(in.ca-in.cb, in.d-in.sa+in.sb) + p/2)
	return [3]Segment{
		seg(SegmentRight, t),
		seg(SegmentLeft, p),
		seg(SegmentRight, utils.WrapTo2Pi(in.alpha-in.beta-t+p)),
	}, true
}

func dubinsLRL(in dubinsInputs) ([3]Segment, bool) {
	tmp := (6 - in.d*in.d + 2*in.cab + 2*in.d*(in.sb-in.sa)) * 0.125
	if math.Abs(tmp) > 1 {
		return [3]Segment{}, false
	}
	p := utils.WrapTo2Pi(2*math.Pi - math.Acos(tmp))
	t := utils.WrapTo2Pi(-in.alpha - math.Atan2(in.ca-in.cb, in.d+in.sa-in.sb) + p/2)
	return [3]Segment{
		seg(SegmentLeft, t),
		seg(SegmentRight, p),
		seg(SegmentLeft, utils.WrapTo2Pi(in.beta-in.alpha-t+p)),
	}, true
}
