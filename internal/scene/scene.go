// Package scene wires a globe, its camera, the animation controller and a
// renderer together from configuration. Every front end (terminal, SSH,
// single frame) drives one Scene.
package scene

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/globe/internal/assets"
	"github.com/Faultbox/globe/internal/config"
	"github.com/Faultbox/globe/internal/engine/animation"
	"github.com/Faultbox/globe/internal/engine/camera"
	"github.com/Faultbox/globe/internal/engine/canvas"
	"github.com/Faultbox/globe/internal/engine/globe"
	"github.com/Faultbox/globe/internal/engine/lighting"
	"github.com/Faultbox/globe/internal/engine/renderer"
	"github.com/Faultbox/globe/internal/logger"
)

// Scene is one animated globe.
type Scene struct {
	cfg      *config.Config
	ctrl     *animation.Controller
	renderer *renderer.Renderer
	log      *zap.Logger
}

// New builds a scene. Textures are resolved through m.
func New(cfg *config.Config, m *assets.Manager) (*Scene, error) {
	log := logger.Named("scene")

	g, err := globe.Load(cfg.Globe, m)
	if err != nil {
		return nil, fmt.Errorf("creating globe: %w", err)
	}

	cam, err := camera.New(cfg.Camera.Config, g.Radius())
	if err != nil {
		return nil, fmt.Errorf("creating camera: %w", err)
	}

	home, err := cfg.StartLocation()
	if err != nil {
		return nil, fmt.Errorf("start location: %w", err)
	}

	r, err := renderer.New(renderer.Config{
		Workers: cfg.Render.Workers,
		Ramp:    cfg.Render.Ramp,
		Shade:   cfg.Shading,
	})
	if err != nil {
		return nil, err
	}

	ctrl := animation.New(animation.Config{Home: home, Dwell: cfg.Playback.Dwell}, g, cam)
	ctrl.JumpTo(home)

	log.Debug("scene created",
		zap.String("template", string(cfg.Globe.Template)),
		zap.Float64("home_lat", home.Lat),
		zap.Float64("home_lon", home.Lon),
	)
	return &Scene{cfg: cfg, ctrl: ctrl, renderer: r, log: log}, nil
}

// Controller returns the animation controller.
func (s *Scene) Controller() *animation.Controller { return s.ctrl }

// Renderer returns the renderer.
func (s *Scene) Renderer() *renderer.Renderer { return s.renderer }

// Config returns the configuration the scene was built from.
func (s *Scene) Config() *config.Config { return s.cfg }

// Tick advances the scene by dt seconds. With the real sun enabled the
// terminator follows the wall clock now.
func (s *Scene) Tick(dt float64, now time.Time) {
	if s.cfg.Render.RealSun {
		s.renderer.Shader().SetSunLon(lighting.SunAt(now).Lon)
	}
	s.ctrl.Tick(dt)
}

// Draw renders the current state into cv.
func (s *Scene) Draw(cv *canvas.Canvas) {
	s.renderer.Render(cv, s.ctrl.Globe(), s.ctrl.Camera())
}

// Canvas returns a square canvas fitting a cols x rows terminal.
func (s *Scene) Canvas(cols, rows int) (*canvas.Canvas, error) {
	return canvas.Fit(cols, rows, s.cfg.Render.CellSize)
}
