// Package globe holds the textured sphere: its textures, its spin and the
// night-side toggle.
package globe

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/globe/internal/engine/motion"
	"github.com/Faultbox/globe/internal/engine/texture"
	"github.com/Faultbox/globe/internal/logger"
	gmath "github.com/Faultbox/globe/pkg/math"
)

// ErrNoTexture is returned when a globe is built without a day texture.
var ErrNoTexture = errors.New("globe has no day texture")

// Config holds globe settings.
type Config struct {
	// Template selects built-in textures. Default: earth.
	Template Template `yaml:"template"`
	// Texture overrides the template's day texture (file path or asset name).
	Texture string `yaml:"texture"`
	// NightTexture overrides the template's night texture.
	NightTexture string `yaml:"night_texture"`
	// Palette interprets character textures from files. Default: Earth palette.
	Palette string `yaml:"palette"`
	// Charset of character texture files, e.g. cp437. Default: UTF-8.
	Charset string `yaml:"charset"`
	// TextureDirs are searched for texture names, last listed first.
	TextureDirs []string `yaml:"texture_dirs"`
	// Radius of the sphere. Default: 1.
	Radius float64 `yaml:"radius"`
	// Spin is the starting spin angle in degrees.
	Spin float64 `yaml:"spin"`
	// SpinSpeed in degrees per second. Default: 0.
	SpinSpeed float64 `yaml:"spin_speed"`
	// Night starts with the night side shown.
	Night bool `yaml:"night"`
}

// DefaultConfig returns the default globe settings.
func DefaultConfig() Config {
	return Config{
		Template: Earth,
		Radius:   1,
	}
}

// Globe is a sphere spinning about its north axis.
type Globe struct {
	sampler   *texture.Sampler
	radius    float64
	spin      float64
	spinSpeed motion.Speed
	nightMode bool
	log       *zap.Logger
}

// New builds a globe from decoded textures. night may be nil. Texture
// problems fail here so that rendering never has to.
func New(cfg Config, day, night *texture.Texture) (*Globe, error) {
	if day == nil {
		return nil, ErrNoTexture
	}
	if cfg.Radius <= 0 {
		return nil, fmt.Errorf("globe radius must be positive, got %v", cfg.Radius)
	}
	sampler, err := texture.NewSampler(day, night)
	if err != nil {
		return nil, fmt.Errorf("creating globe: %w", err)
	}

	g := &Globe{
		sampler:   sampler,
		radius:    cfg.Radius,
		spin:      gmath.WrapDegrees(cfg.Spin),
		spinSpeed: motion.NewSpeed(cfg.SpinSpeed),
		nightMode: cfg.Night,
		log:       logger.Named("globe"),
	}
	g.log.Debug("globe created",
		zap.Int("width", day.Width()),
		zap.Int("height", day.Height()),
		zap.Bool("night_texture", night != nil),
	)
	return g, nil
}

// Sampler returns the texture pair.
func (g *Globe) Sampler() *texture.Sampler { return g.sampler }

// Radius returns the sphere radius.
func (g *Globe) Radius() float64 { return g.radius }

// Spin returns the spin angle in degrees, in [-180, 180).
func (g *Globe) Spin() float64 { return g.spin }

// SpinSpeed returns the current spin speed in degrees per second.
func (g *Globe) SpinSpeed() float64 { return g.spinSpeed.Value() }

// SpinSpeedTarget returns the requested spin speed.
func (g *Globe) SpinSpeedTarget() float64 { return g.spinSpeed.Target() }

// SetSpinSpeedTarget requests a new spin speed; the speed eases towards it.
func (g *Globe) SetSpinSpeedTarget(v float64) { g.spinSpeed.SetTarget(v) }

// SpinSpeedBy shifts the requested spin speed.
func (g *Globe) SpinSpeedBy(dv float64) { g.spinSpeed.SetTarget(g.spinSpeed.Target() + dv) }

// SetSpin sets the spin angle directly.
func (g *Globe) SetSpin(deg float64) { g.spin = gmath.WrapDegrees(deg) }

// NightMode reports whether the night side is shown.
func (g *Globe) NightMode() bool { return g.nightMode }

// SetNightMode shows or hides the night side.
func (g *Globe) SetNightMode(on bool) { g.nightMode = on }

// ToggleNight flips the night-side display.
func (g *Globe) ToggleNight() {
	g.nightMode = !g.nightMode
	g.log.Debug("night mode", zap.Bool("on", g.nightMode))
}

// Advance turns the globe by its spin speed over dt seconds.
func (g *Globe) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	g.spinSpeed.Update(dt)
	g.spin = gmath.WrapDegrees(g.spin + g.spinSpeed.Value()*dt)
}

// GeoToFocus converts a geographic longitude to the camera-frame focus
// longitude that centers it for the given orbit angle.
func (g *Globe) GeoToFocus(lon, orbit float64) float64 {
	return gmath.WrapDegrees(lon + g.spin - orbit)
}

// FocusToGeo is the inverse of GeoToFocus.
func (g *Globe) FocusToGeo(focusLon, orbit float64) float64 {
	return gmath.WrapDegrees(focusLon + orbit - g.spin)
}
