package motion

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	// SpeedFrequency is the spring's angular frequency; the speed settles
	// in roughly a second.
	SpeedFrequency = 6.0
	// SpeedEpsilon is the snap threshold in units per second.
	SpeedEpsilon = 0.01
)

// Speed is a rate that eases towards its target through a critically damped
// spring, so speed changes never jolt the animation.
type Speed struct {
	value    float64
	velocity float64
	target   float64
}

// NewSpeed returns a settled speed.
func NewSpeed(v float64) Speed {
	return Speed{value: v, target: v}
}

// Value returns the current speed.
func (s *Speed) Value() float64 { return s.value }

// Target returns the requested speed.
func (s *Speed) Target() float64 { return s.target }

// SetTarget replaces the requested speed.
func (s *Speed) SetTarget(v float64) { s.target = v }

// Settled reports whether the speed has reached its target.
func (s *Speed) Settled() bool {
	return s.value == s.target && s.velocity == 0
}

// Update advances the spring by dt seconds.
func (s *Speed) Update(dt float64) {
	if dt <= 0 || s.Settled() {
		return
	}

	spring := harmonica.NewSpring(dt, SpeedFrequency, 1.0)
	s.value, s.velocity = spring.Update(s.value, s.velocity, s.target)

	if math.Abs(s.target-s.value) < SpeedEpsilon && math.Abs(s.velocity) < SpeedEpsilon {
		s.value = s.target
		s.velocity = 0
	}
}
