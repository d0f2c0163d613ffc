// Package renderer rasterizes the globe into a character canvas.
package renderer

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/globe/internal/engine/camera"
	"github.com/Faultbox/globe/internal/engine/canvas"
	"github.com/Faultbox/globe/internal/engine/globe"
	"github.com/Faultbox/globe/internal/engine/lighting"
	"github.com/Faultbox/globe/internal/engine/projection"
	"github.com/Faultbox/globe/internal/logger"
)

// statsEvery is how many frames pass between debug frame reports.
const statsEvery = 600

// Config holds renderer configuration.
type Config struct {
	// Workers splits rows across goroutines. Default: 1.
	Workers int `yaml:"workers"`
	// Ramp orders characters darkest first. Default: canvas.DefaultRamp.
	Ramp string `yaml:"ramp"`
	// Shade configures day/night lighting.
	Shade lighting.ShadeConfig `yaml:"shading"`
}

// DefaultConfig returns the default renderer settings.
func DefaultConfig() Config {
	return Config{
		Workers: 1,
		Ramp:    canvas.DefaultRamp,
		Shade:   lighting.DefaultShadeConfig(),
	}
}

// Renderer turns a globe seen through a camera into characters.
type Renderer struct {
	config Config
	ramp   canvas.Ramp
	shader *lighting.Shader

	frames uint64
	log    *zap.Logger
}

// New creates a new renderer.
func New(cfg Config) (*Renderer, error) {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Ramp == "" {
		cfg.Ramp = canvas.DefaultRamp
	}
	ramp, err := canvas.NewRamp(cfg.Ramp)
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	return &Renderer{
		config: cfg,
		ramp:   ramp,
		shader: lighting.NewShader(cfg.Shade),
		log:    logger.Named("renderer"),
	}, nil
}

// Config returns the renderer settings.
func (r *Renderer) Config() Config { return r.config }

// Ramp returns the brightness ramp.
func (r *Renderer) Ramp() canvas.Ramp { return r.ramp }

// Shader returns the day/night shader, e.g. to move the sun.
func (r *Renderer) Shader() *lighting.Shader { return r.shader }

// ViewOf captures the camera and globe state for one frame.
func ViewOf(g *globe.Globe, cam *camera.Camera) projection.View {
	focus := cam.Focus()
	return projection.View{
		FocusLat: focus.Lat,
		FocusLon: focus.Lon,
		Distance: cam.Distance(),
		Orbit:    cam.Orbit(),
		Spin:     g.Spin(),
		FOV:      cam.FOV(),
		Radius:   g.Radius(),
	}
}

// Render clears the canvas and draws one frame of g seen by cam. Every
// cell is written exactly once.
func (r *Renderer) Render(cv *canvas.Canvas, g *globe.Globe, cam *camera.Camera) {
	p := projection.New(ViewOf(g, cam), cv.Width(), cv.Height(), cv.Aspect())
	r.RenderView(cv, g, p)
}

// RenderView draws a frame through a prepared projector.
func (r *Renderer) RenderView(cv *canvas.Canvas, g *globe.Globe, p *projection.Projector) {
	cv.Clear()

	rows := cv.Height()
	workers := r.config.Workers
	if workers > rows {
		workers = rows
	}

	if workers == 1 {
		r.renderRows(cv, g, p, 0, rows)
	} else {
		var wg sync.WaitGroup
		band := (rows + workers - 1) / workers
		for start := 0; start < rows; start += band {
			end := start + band
			if end > rows {
				end = rows
			}
			wg.Add(1)
			go func(start, end int) {
				defer wg.Done()
				r.renderRows(cv, g, p, start, end)
			}(start, end)
		}
		wg.Wait()
	}

	r.frames++
	if r.frames%statsEvery == 0 {
		r.log.Debug("frames rendered",
			zap.Uint64("frames", r.frames),
			zap.Int("cols", cv.Width()),
			zap.Int("rows", rows),
			zap.Int("workers", workers),
		)
	}
}

// renderRows fills rows [start, end). Bands never overlap, so workers
// write disjoint slices of the canvas.
func (r *Renderer) renderRows(cv *canvas.Canvas, g *globe.Globe, p *projection.Projector, start, end int) {
	cols := cv.Width()
	for row := start; row < end; row++ {
		line := cv.RowSlice(row)
		for col := 0; col < cols; col++ {
			line[col] = r.Cell(p, g, col, row)
		}
	}
}

// Cell returns the character for one cell. It reads shared state only and
// is safe to call from several goroutines at once.
func (r *Renderer) Cell(p *projection.Projector, g *globe.Globe, col, row int) rune {
	s := p.Project(col, row)
	if !s.Hit {
		return canvas.Background
	}
	sampler := g.Sampler()
	day, night := sampler.Sample(s.Lat, s.Lon)
	b := r.shader.Shade(s.Lon, day, night, sampler.HasNight(), g.NightMode())
	return r.ramp.Char(b)
}

// Frames returns how many frames have been rendered.
func (r *Renderer) Frames() uint64 { return r.frames }
