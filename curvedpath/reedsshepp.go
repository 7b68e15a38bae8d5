package curvedpath

import (
	"math"

	"go.viam.com/pathplan/spatialmath"
	"go.viam.com/pathplan/utils"
)

// The candidate words below follow Reeds and Shepp, "Optimal paths for a
// car that goes both forwards and backwards", Pacific J. Math. 145(2),
// 1990. Each function solves one word of the sufficient family in the
// curvature-normalized local frame and is named for its canonical segment
// pattern (p forward, m reverse, u for the equal-arc pairs). The remaining
// members of the family are reached through the timeflip, reflect and
// reversal symmetries rather than solved directly.

// rsWord computes one candidate word for the local goal (x, y, phi),
// returning nil when the word cannot reach it.
type rsWord func(x, y, phi float64) []Segment

type rsCandidate struct {
	word     rsWord
	backward bool
}

// Candidate order decides ties, earliest wins. Backward entries evaluate
// their word against the reversed frame and flip the segment order.
var rsCandidates = []rsCandidate{
	{rsLpSpLp, false},
	{rsLpSpRp, false},
	{rsLpRmL, false},
	{rsLpRmL, true},
	{rsLpRupLumRm, false},
	{rsLpRumLumRp, false},
	{rsLpRmSmLm, false},
	{rsLpRmSmLm, true},
	{rsLpRmSmRm, false},
	{rsLpRmSmRm, true},
	{rsLpRmSLmRp, false},
}

// SolveReedsShepp returns the shortest path from start to end for a vehicle
// that can travel both forward and in reverse while never exceeding
// maxCurvature. Reversed segments carry negative lengths.
func SolveReedsShepp(start, end spatialmath.Pose, maxCurvature float64) (*Path, error) {
	if maxCurvature <= 0 {
		return nil, ErrInvalidCurvature
	}
	localEnd := start.ToLocal(end).Scaled(maxCurvature)
	x, y, phi := localEnd.Point.X, localEnd.Point.Y, localEnd.Theta
	if math.IsNaN(x) || math.IsNaN(y) || math.IsNaN(phi) {
		return nil, ErrNaNInCalculation
	}

	sp, cp := math.Sincos(phi)
	// The goal as seen when driving the path backwards. Words solved in
	// this frame are emitted with their segment order reversed.
	xb := x*cp + y*sp
	yb := x*sp - y*cp

	var best [5]Segment
	bestTotal := math.Inf(1)
	found := false
	for _, c := range rsCandidates {
		cx, cy := x, y
		if c.backward {
			cx, cy = xb, yb
		}
		variants := []struct {
			x, y, phi         float64
			timeflip, reflect bool
		}{
			{cx, cy, phi, false, false},
			{-cx, cy, -phi, true, false},
			{cx, -cy, -phi, false, true},
			{-cx, -cy, phi, true, true},
		}
		for _, v := range variants {
			word := c.word(v.x, v.y, v.phi)
			if word == nil {
				continue
			}
			if c.backward {
				reverseSegments(word)
			}
			if v.timeflip {
				timeflipSegments(word)
			}
			if v.reflect {
				reflectSegments(word)
			}
			var segments [5]Segment
			copy(segments[:], word)
			total := pathLength(segments)
			if math.IsNaN(total) || total >= bestTotal {
				continue
			}
			best = segments
			bestTotal = total
			found = true
		}
	}
	if !found {
		return nil, ErrPathNotFound
	}
	return newPath(start, end, maxCurvature, best, bestTotal), nil
}

func toPolar(x, y float64) (r, theta float64) {
	return math.Sqrt(x*x + y*y), math.Atan2(y, x)
}

// reverseSegments flips travel order, turning a word solved in the
// backward frame into one driven from the true start.
func reverseSegments(segments []Segment) {
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
}

// timeflipSegments swaps forward and reverse travel on every segment.
func timeflipSegments(segments []Segment) {
	for i := range segments {
		segments[i].Length = -segments[i].Length
	}
}

// reflectSegments swaps left and right turns.
func reflectSegments(segments []Segment) {
	for i := range segments {
		switch segments[i].Kind {
		case SegmentLeft:
			segments[i].Kind = SegmentRight
		case SegmentRight:
			segments[i].Kind = SegmentLeft
		}
	}
}

// rsTau solves equation 8.6 for the first turn of the CCCC words. rsOmega
// then yields the final turn.
func rsTau(u, v, xi, eta float64) float64 {
	delta := utils.WrapToPi(u - v)
	a := math.Sin(u) - math.Sin(delta)
	b := math.Cos(u) - math.Cos(delta) - 1
	t1 := math.Atan2(eta*a-xi*b, xi*a+eta*b)
	t2 := 2*(math.Cos(delta)-math.Cos(v)-math.Cos(u)) + 3
	if t2 < 0 {
		return utils.WrapToPi(t1 + math.Pi)
	}
	return utils.WrapToPi(t1)
}

func rsOmega(tau, u, v, phi float64) float64 {
	return utils.WrapToPi(tau - u + v - phi)
}

// 8.1.
func rsLpSpLp(x, y, phi float64) []Segment {
	u, t := toPolar(x-math.Sin(phi), y-1+math.Cos(phi))
	if t < 0 {
		return nil
	}
	v := utils.WrapToPi(phi - t)
	if v < 0 {
		return nil
	}
	return []Segment{seg(SegmentLeft, t), seg(SegmentStraight, u), seg(SegmentLeft, v)}
}

// 8.2. Negative t or v is allowed here; the word then mixes travel
// directions instead of being all-forward.
func rsLpSpRp(x, y, phi float64) []Segment {
	u1, t1 := toPolar(x+math.Sin(phi), y-1-math.Cos(phi))
	uSq := u1*u1 - 4
	if uSq < 0 {
		return nil
	}
	u := math.Sqrt(uSq)
	t := utils.WrapToPi(t1 + math.Atan2(2, u))
	v := utils.WrapToPi(t - phi)
	return []Segment{seg(SegmentLeft, t), seg(SegmentStraight, u), seg(SegmentRight, v)}
}

// 8.3 and 8.4: the middle arc is traveled in reverse.
func rsLpRmL(x, y, phi float64) []Segment {
	xi := x - math.Sin(phi)
	eta := y - 1 + math.Cos(phi)
	u1, theta := toPolar(xi, eta)
	if u1 > 4 {
		return nil
	}
	u := -2 * math.Asin(0.25*u1)
	t := utils.WrapToPi(theta + 0.5*u + math.Pi)
	v := utils.WrapToPi(phi - t + u)
	return []Segment{seg(SegmentLeft, t), seg(SegmentRight, u), seg(SegmentLeft, v)}
}

// 8.7: two equal arcs out, two equal arcs back.
func rsLpRupLumRm(x, y, phi float64) []Segment {
	xi := x + math.Sin(phi)
	eta := y - 1 - math.Cos(phi)
	rho := 0.25 * (2 + math.Sqrt(xi*xi+eta*eta))
	if rho > 1 {
		return nil
	}
	u := math.Acos(rho)
	t := rsTau(u, -u, xi, eta)
	v := rsOmega(t, u, -u, phi)
	if t < 0 || v > 0 {
		return nil
	}
	return []Segment{
		seg(SegmentLeft, t),
		seg(SegmentRight, u),
		seg(SegmentLeft, -u),
		seg(SegmentRight, v),
	}
}

// 8.8: the equal arc pair sits between the direction switches.
func rsLpRumLumRp(x, y, phi float64) []Segment {
	xi := x + math.Sin(phi)
	eta := y - 1 - math.Cos(phi)
	rho := 0.0625 * (20 - xi*xi - eta*eta)
	if rho < 0 || rho >= 1 {
		return nil
	}
	u := -math.Acos(rho)
	if u < -math.Pi/2 {
		return nil
	}
	t := rsTau(u, u, xi, eta)
	v := rsOmega(t, u, u, phi)
	return []Segment{
		seg(SegmentLeft, t),
		seg(SegmentRight, u),
		seg(SegmentLeft, u),
		seg(SegmentRight, v),
	}
}

// 8.9.
func rsLpRmSmLm(x, y, phi float64) []Segment {
	xi := x - math.Sin(phi)
	eta := y - 1 + math.Cos(phi)
	rho, theta := toPolar(xi, eta)
	if rho < 2 {
		return nil
	}
	r := math.Sqrt(rho*rho - 4)
	u := 2 - r
	t := utils.WrapToPi(theta + math.Atan2(r, -2))
	v := utils.WrapToPi(phi - math.Pi/2 - t)
	if t < 0 || u > 0 || v > 0 {
		return nil
	}
	return []Segment{
		seg(SegmentLeft, t),
		seg(SegmentRight, -math.Pi/2),
		seg(SegmentStraight, u),
		seg(SegmentLeft, v),
	}
}

// 8.10.
func rsLpRmSmRm(x, y, phi float64) []Segment {
	xi := x + math.Sin(phi)
	eta := y - 1 - math.Cos(phi)
	rho, theta := toPolar(-eta, xi)
	if rho < 2 {
		return nil
	}
	t := theta
	u := 2 - rho
	v := utils.WrapToPi(t + math.Pi/2 - phi)
	return []Segment{
		seg(SegmentLeft, t),
		seg(SegmentRight, -math.Pi/2),
		seg(SegmentStraight, u),
		seg(SegmentRight, v),
	}
}

// 8.11: the only five-segment word.
func rsLpRmSLmRp(x, y, phi float64) []Segment {
	xi := x + math.Sin(phi)
	eta := y - 1 - math.Cos(phi)
	rho, _ := toPolar(xi, eta)
	if rho < 2 {
		return nil
	}
	u := 4 - math.Sqrt(rho*rho-4)
	if u > 0 {
		return nil
	}
	t := utils.WrapToPi(math.Atan2((4-u)*xi-2*eta, -2*xi+(u-4)*eta))
	v := utils.WrapToPi(t - phi)
	return []Segment{
		seg(SegmentLeft, t),
		seg(SegmentRight, -math.Pi/2),
		seg(SegmentStraight, u),
		seg(SegmentLeft, -math.Pi/2),
		seg(SegmentRight, v),
	}
}
