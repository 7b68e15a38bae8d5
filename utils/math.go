// Package utils contains shared angle and scalar helpers for planar path
// planning.
package utils

import "math"

func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// WrapTo2Pi reduces an angle in radians to the range [0, 2pi).
func WrapTo2Pi(theta float64) float64 {
	wrapped := math.Mod(theta, 2*math.Pi)
	if wrapped < 0 {
		wrapped += 2 * math.Pi
	}
	return wrapped
}

// WrapToPi reduces an angle in radians to the range [-pi, pi].
func WrapToPi(theta float64) float64 {
	wrapped := math.Mod(theta, 2*math.Pi)
	if wrapped > math.Pi {
		wrapped -= 2 * math.Pi
	} else if wrapped < -math.Pi {
		wrapped += 2 * math.Pi
	}
	return wrapped
}

// Math.pow( x, 2 ) is slow, this is faster
func Square(n float64) float64 {
	return n * n
}
