package animation

// Command is a user request applied to the controller between frames.
type Command interface {
	apply(c *Controller)
}

// SpinSpeedDelta changes the globe spin speed target, degrees per second.
type SpinSpeedDelta float64

// OrbitSpeedDelta changes the camera orbit speed target, degrees per second.
type OrbitSpeedDelta float64

// ZoomDelta changes the camera distance target.
type ZoomDelta float64

// Pan shifts the camera focus target in degrees.
type Pan struct {
	DLat, DLon float64
}

// ToggleNight flips the night-side display.
type ToggleNight struct{}

// FocusOn flies the camera to a geographic location.
type FocusOn struct {
	Coord Coord
}

// Home flies back to the configured start location.
type Home struct{}

// NextTarget skips to the next playback coordinate.
type NextTarget struct{}

func (d SpinSpeedDelta) apply(c *Controller)  { c.globe.SpinSpeedBy(float64(d)) }
func (d OrbitSpeedDelta) apply(c *Controller) { c.cam.OrbitSpeedBy(float64(d)) }
func (d ZoomDelta) apply(c *Controller)       { c.cam.ZoomBy(float64(d)) }

func (p Pan) apply(c *Controller) {
	// Manual movement cancels a geographic flight.
	c.geoTarget = nil
	c.cam.Pan(p.DLat, p.DLon)
}

func (ToggleNight) apply(c *Controller) { c.globe.ToggleNight() }
func (f FocusOn) apply(c *Controller)   { c.FocusOn(f.Coord) }
func (Home) apply(c *Controller)        { c.FocusOn(c.cfg.Home) }

func (NextTarget) apply(c *Controller) {
	if c.playback != nil {
		c.playback.skip(c)
	}
}
