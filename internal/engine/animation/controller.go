// Package animation drives the globe and camera over time: per-frame
// advancement, user commands and coordinate playback.
package animation

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/globe/internal/engine/camera"
	"github.com/Faultbox/globe/internal/engine/globe"
	"github.com/Faultbox/globe/internal/logger"
	gmath "github.com/Faultbox/globe/pkg/math"
)

// Config holds controller settings.
type Config struct {
	// Home is the location Home returns to.
	Home Coord `yaml:"home"`
	// Dwell keeps the camera on a reached playback target before moving on.
	Dwell time.Duration `yaml:"dwell"`
}

// Controller owns the per-frame order of updates for one globe and camera.
type Controller struct {
	cfg   Config
	globe *globe.Globe
	cam   *camera.Camera

	geoTarget *Coord
	playback  *Playback

	log *zap.Logger
}

// New creates a controller.
func New(cfg Config, g *globe.Globe, cam *camera.Camera) *Controller {
	return &Controller{
		cfg:   cfg,
		globe: g,
		cam:   cam,
		log:   logger.Named("animation"),
	}
}

// Globe returns the controlled globe.
func (c *Controller) Globe() *globe.Globe { return c.globe }

// Camera returns the controlled camera.
func (c *Controller) Camera() *camera.Camera { return c.cam }

// Apply runs a command. Commands take effect on the next Tick.
func (c *Controller) Apply(cmd Command) {
	cmd.apply(c)
}

// FocusOn starts a flight to a geographic location. The target replaces
// any flight in progress.
func (c *Controller) FocusOn(to Coord) {
	t := to
	c.geoTarget = &t
	c.retarget()
	c.log.Debug("focus target",
		zap.Float64("lat", to.Lat),
		zap.Float64("lon", to.Lon),
	)
}

// JumpTo centers a geographic location immediately.
func (c *Controller) JumpTo(to Coord) {
	c.geoTarget = nil
	c.cam.JumpTo(to.Lat, c.globe.GeoToFocus(to.Lon, c.cam.Orbit()))
}

// Flying reports whether a geographic flight is in progress.
func (c *Controller) Flying() bool { return c.geoTarget != nil }

// Play starts playback of coords, replacing any previous playback. The
// first coordinate becomes the focus target at once.
func (c *Controller) Play(coords []Coord) *Playback {
	c.playback = &Playback{coords: coords, dwell: c.cfg.Dwell.Seconds()}
	c.playback.issue(c)
	return c.playback
}

// Playback returns the active playback, or nil.
func (c *Controller) Playback() *Playback { return c.playback }

// Done reports whether playback has shown every coordinate. Without
// playback it is always true.
func (c *Controller) Done() bool {
	return c.playback == nil || c.playback.Done()
}

// Tick advances everything by dt seconds: the globe spins, the camera
// moves, a geographic flight is carried along with the surface and re-aimed
// at its target, then playback may issue the next target.
func (c *Controller) Tick(dt float64) {
	if dt <= 0 {
		return
	}

	spin, orbit := c.globe.Spin(), c.cam.Orbit()
	c.globe.Advance(dt)
	c.cam.Advance(dt)

	if c.geoTarget != nil {
		// Spin and orbit move the target in the focus frame. Shifting focus
		// and target together leaves only the geographic delta to close.
		drift := gmath.ShortestArc(spin, c.globe.Spin()) - gmath.ShortestArc(orbit, c.cam.Orbit())
		c.cam.Carry(drift)

		if c.cam.Reached() {
			c.log.Debug("focus target reached",
				zap.Float64("lat", c.geoTarget.Lat),
				zap.Float64("lon", c.geoTarget.Lon),
			)
			c.geoTarget = nil
		} else {
			c.retarget()
		}
	}

	if c.playback != nil {
		c.playback.step(c, dt)
	}
}

// retarget points the camera at the geographic target, compensating the
// current spin and orbit.
func (c *Controller) retarget() {
	t := c.geoTarget
	c.cam.SetFocusTarget(t.Lat, c.globe.GeoToFocus(t.Lon, c.cam.Orbit()))
}
