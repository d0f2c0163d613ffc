// Package camera provides the globe camera: a point of view orbiting the
// sphere, aimed at a focus point, that eases towards requested targets.
package camera

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/globe/internal/engine/motion"
	"github.com/Faultbox/globe/internal/logger"
	gmath "github.com/Faultbox/globe/pkg/math"
)

// ErrInvalidConfig is returned for camera settings that cannot produce a view.
var ErrInvalidConfig = errors.New("invalid camera config")

// State is the camera's interpolation state.
type State int

const (
	// Resting means current values equal their targets.
	Resting State = iota
	// Interpolating means focus, distance or orbit speed is still moving.
	Interpolating
)

func (s State) String() string {
	switch s {
	case Resting:
		return "resting"
	case Interpolating:
		return "interpolating"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

// Normalize clamps the latitude to [-90, 90] and wraps the longitude to [-180, 180).
func (p GeoPoint) Normalize() GeoPoint {
	return GeoPoint{
		Lat: gmath.Clamp(p.Lat, -90, 90),
		Lon: gmath.WrapDegrees(p.Lon),
	}
}

// Config holds camera settings.
type Config struct {
	// Focus is the starting focus point. Default: (0, 0).
	Focus GeoPoint `yaml:"focus"`
	// Distance from the globe center in sphere radii. Default: 1.7.
	Distance float64 `yaml:"distance"`
	// MinDistance must exceed the sphere radius. Default: 1.1.
	MinDistance float64 `yaml:"min_distance"`
	// MaxDistance. Default: 8.
	MaxDistance float64 `yaml:"max_distance"`
	// FocusSpeed multiplies the focus and zoom easing rate. Default: 1.
	FocusSpeed float64 `yaml:"focus_speed"`
	// Orbit is the starting orbit angle in degrees. Default: 0.
	Orbit float64 `yaml:"orbit"`
	// OrbitSpeed in degrees per second. Default: 0.
	OrbitSpeed float64 `yaml:"orbit_speed"`
	// FOV is the vertical field of view in degrees. Default: 90.
	FOV float64 `yaml:"fov"`
	// AngleEpsilon is the snap threshold for focus, in degrees. Default: 0.05.
	AngleEpsilon float64 `yaml:"angle_epsilon"`
	// DistanceEpsilon is the snap threshold for distance. Default: 0.001.
	DistanceEpsilon float64 `yaml:"distance_epsilon"`
}

// DefaultConfig returns the default camera settings.
func DefaultConfig() Config {
	return Config{
		Distance:        1.7,
		MinDistance:     1.1,
		MaxDistance:     8,
		FocusSpeed:      1,
		FOV:             90,
		AngleEpsilon:    0.05,
		DistanceEpsilon: 0.001,
	}
}

// Validate checks the settings against a sphere of the given radius.
func (c Config) Validate(radius float64) error {
	switch {
	case c.MinDistance <= radius:
		return fmt.Errorf("%w: min_distance %v must exceed sphere radius %v", ErrInvalidConfig, c.MinDistance, radius)
	case c.MaxDistance < c.MinDistance:
		return fmt.Errorf("%w: max_distance %v below min_distance %v", ErrInvalidConfig, c.MaxDistance, c.MinDistance)
	case c.FocusSpeed <= 0:
		return fmt.Errorf("%w: focus_speed must be positive, got %v", ErrInvalidConfig, c.FocusSpeed)
	case c.FOV <= 0 || c.FOV >= 180:
		return fmt.Errorf("%w: fov must be in (0, 180), got %v", ErrInvalidConfig, c.FOV)
	case c.AngleEpsilon <= 0 || c.DistanceEpsilon <= 0:
		return fmt.Errorf("%w: epsilons must be positive", ErrInvalidConfig)
	}
	return nil
}

// Camera orbits the globe looking at its center from above the focus point.
type Camera struct {
	cfg Config

	focus  GeoPoint
	target GeoPoint

	distance       float64
	targetDistance float64

	orbit      float64
	orbitSpeed motion.Speed

	state State
	log   *zap.Logger
}

// New creates a camera for a sphere of the given radius. The starting
// distance is clamped into [MinDistance, MaxDistance].
func New(cfg Config, radius float64) (*Camera, error) {
	if err := cfg.Validate(radius); err != nil {
		return nil, err
	}

	focus := cfg.Focus.Normalize()
	distance := gmath.Clamp(cfg.Distance, cfg.MinDistance, cfg.MaxDistance)

	return &Camera{
		cfg:            cfg,
		focus:          focus,
		target:         focus,
		distance:       distance,
		targetDistance: distance,
		orbit:          gmath.WrapDegrees(cfg.Orbit),
		orbitSpeed:     motion.NewSpeed(cfg.OrbitSpeed),
		state:          Resting,
		log:            logger.Named("camera"),
	}, nil
}

// Config returns the settings the camera was built with.
func (c *Camera) Config() Config { return c.cfg }

// Focus returns the current focus point.
func (c *Camera) Focus() GeoPoint { return c.focus }

// Target returns the requested focus point.
func (c *Camera) Target() GeoPoint { return c.target }

// Distance returns the current distance from the globe center.
func (c *Camera) Distance() float64 { return c.distance }

// TargetDistance returns the requested distance.
func (c *Camera) TargetDistance() float64 { return c.targetDistance }

// Orbit returns the orbit angle in degrees, in [-180, 180).
func (c *Camera) Orbit() float64 { return c.orbit }

// OrbitSpeed returns the current orbit speed in degrees per second.
func (c *Camera) OrbitSpeed() float64 { return c.orbitSpeed.Value() }

// OrbitSpeedTarget returns the requested orbit speed.
func (c *Camera) OrbitSpeedTarget() float64 { return c.orbitSpeed.Target() }

// FOV returns the vertical field of view in degrees.
func (c *Camera) FOV() float64 { return c.cfg.FOV }

// State returns the interpolation state.
func (c *Camera) State() State { return c.state }

// Reached reports whether focus and distance equal their targets.
func (c *Camera) Reached() bool {
	return c.focus == c.target && c.distance == c.targetDistance
}

// SetFocusTarget requests a new focus point. It replaces any target still
// in flight. Latitude is clamped to [-90, 90].
func (c *Camera) SetFocusTarget(lat, lon float64) {
	c.target = GeoPoint{Lat: lat, Lon: lon}.Normalize()
	c.wake()
}

// Pan shifts the focus target by the given degrees.
func (c *Camera) Pan(dLat, dLon float64) {
	c.SetFocusTarget(c.target.Lat+dLat, c.target.Lon+dLon)
}

// JumpTo moves the focus immediately, cancelling any focus transition.
func (c *Camera) JumpTo(lat, lon float64) {
	c.focus = GeoPoint{Lat: lat, Lon: lon}.Normalize()
	c.target = c.focus
	c.wake()
}

// Carry shifts the focus and its target by dLon degrees of longitude
// together. The remaining delta and the state are unchanged.
func (c *Camera) Carry(dLon float64) {
	if dLon == 0 {
		return
	}
	c.focus.Lon = gmath.WrapDegrees(c.focus.Lon + dLon)
	c.target.Lon = gmath.WrapDegrees(c.target.Lon + dLon)
}

// SetZoomTarget requests a new distance. Out-of-range requests saturate at
// the configured bounds.
func (c *Camera) SetZoomTarget(d float64) {
	c.targetDistance = gmath.Clamp(d, c.cfg.MinDistance, c.cfg.MaxDistance)
	c.wake()
}

// ZoomBy shifts the requested distance by delta.
func (c *Camera) ZoomBy(delta float64) {
	c.SetZoomTarget(c.targetDistance + delta)
}

// SetOrbitSpeedTarget requests a new orbit speed in degrees per second.
func (c *Camera) SetOrbitSpeedTarget(v float64) {
	c.orbitSpeed.SetTarget(v)
	c.wake()
}

// OrbitSpeedBy shifts the requested orbit speed.
func (c *Camera) OrbitSpeedBy(dv float64) {
	c.SetOrbitSpeedTarget(c.orbitSpeed.Target() + dv)
}

// Advance moves the camera forward by dt seconds: the orbit angle turns at
// the current orbit speed and, while interpolating, focus and distance ease
// towards their targets. Remaining deltas below the epsilons snap.
func (c *Camera) Advance(dt float64) {
	if dt <= 0 {
		return
	}

	c.orbitSpeed.Update(dt)
	c.orbit = gmath.WrapDegrees(c.orbit + c.orbitSpeed.Value()*dt)

	if c.state == Resting {
		return
	}

	speed := c.cfg.FocusSpeed
	dLat := c.target.Lat - c.focus.Lat
	dLon := gmath.ShortestArc(c.focus.Lon, c.target.Lon)
	dDist := c.targetDistance - c.distance

	c.focus.Lat += motion.AngleApproach.Step(dLat, dt, speed)
	c.focus.Lon = gmath.WrapDegrees(c.focus.Lon + motion.AngleApproach.Step(dLon, dt, speed))
	c.distance += motion.DistanceApproach.Step(dDist, dt, speed)

	c.snap()
	if c.Reached() && c.orbitSpeed.Settled() {
		c.state = Resting
		c.log.Debug("camera at rest",
			zap.Float64("lat", c.focus.Lat),
			zap.Float64("lon", c.focus.Lon),
			zap.Float64("distance", c.distance),
		)
	}
}

// snap finishes any component whose remaining delta is under its epsilon.
func (c *Camera) snap() {
	if math.Abs(c.target.Lat-c.focus.Lat) < c.cfg.AngleEpsilon &&
		math.Abs(gmath.ShortestArc(c.focus.Lon, c.target.Lon)) < c.cfg.AngleEpsilon {
		c.focus = c.target
	}
	if math.Abs(c.targetDistance-c.distance) < c.cfg.DistanceEpsilon {
		c.distance = c.targetDistance
	}
}

func (c *Camera) wake() {
	if c.Reached() && c.orbitSpeed.Settled() {
		c.state = Resting
		return
	}
	c.state = Interpolating
}
