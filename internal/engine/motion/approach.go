// Package motion implements the time-based easing used by the camera and
// the globe: a proportional approach law for positions and a critically
// damped spring for speeds.
package motion

import "math"

// Approach moves a value towards a target with a speed that grows with the
// remaining distance, slowing down inside a final approach band. Rates are
// per second so the result does not depend on the frame rate.
type Approach struct {
	// Base is the minimum rate in units per second.
	Base float64
	// Gain is the extra rate per unit of remaining distance.
	Gain float64
	// Band is the remaining distance below which the rate is divided by Slowdown.
	Band float64
	// Slowdown divides the rate inside Band.
	Slowdown float64
}

// AngleApproach eases angles in degrees.
var AngleApproach = Approach{Base: 34.4, Gain: 2, Band: 4, Slowdown: 5}

// DistanceApproach eases camera distance in sphere radii.
var DistanceApproach = Approach{Base: 0.6, Gain: 2, Band: 0.07, Slowdown: 5}

// Step returns the signed move to apply for a remaining delta after dt
// seconds at the given speed multiplier. The move never overshoots delta.
func (a Approach) Step(delta, dt, speed float64) float64 {
	if delta == 0 || dt <= 0 || speed <= 0 {
		return 0
	}

	dist := math.Abs(delta)
	rate := (a.Base + a.Gain*dist) * speed
	if dist < a.Band && a.Slowdown > 0 {
		rate /= a.Slowdown
	}

	move := rate * dt
	if move > dist {
		move = dist
	}
	return math.Copysign(move, delta)
}
