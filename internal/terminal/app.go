// Package terminal runs a scene on a tcell screen.
package terminal

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/globe/internal/engine/canvas"
	"github.com/Faultbox/globe/internal/logger"
	"github.com/Faultbox/globe/internal/scene"
)

// ErrScreenTooSmall is returned when the terminal cannot hold a single cell.
var ErrScreenTooSmall = errors.New("terminal too small")

// App drives a scene on a screen.
type App struct {
	screen tcell.Screen
	scene  *scene.Scene
	input  *Input
	style  tcell.Style

	cv         *canvas.Canvas
	offX, offY int

	quit bool
	log  *zap.Logger
}

// New creates an app on an initialized screen.
func New(screen tcell.Screen, sc *scene.Scene, mode Mode) (*App, error) {
	a := &App{
		screen: screen,
		scene:  sc,
		input:  NewInput(mode),
		style:  tcell.StyleDefault,
		log:    logger.Named("terminal"),
	}
	if err := a.Resize(); err != nil {
		return nil, err
	}
	return a, nil
}

// Canvas returns the current canvas.
func (a *App) Canvas() *canvas.Canvas { return a.cv }

// Offset returns the screen position of the canvas' top-left cell.
func (a *App) Offset() (x, y int) { return a.offX, a.offY }

// Quit reports whether the app has been asked to exit.
func (a *App) Quit() bool { return a.quit }

// Resize refits the canvas to the screen and centers it.
func (a *App) Resize() error {
	cols, rows := a.screen.Size()
	cv, err := a.scene.Canvas(cols, rows)
	if err != nil {
		return errors.Join(ErrScreenTooSmall, err)
	}
	a.cv = cv
	a.offX = (cols - cv.Width()) / 2
	a.offY = (rows - cv.Height()) / 2
	a.screen.Clear()
	a.log.Debug("canvas resized",
		zap.Int("cols", cv.Width()),
		zap.Int("rows", cv.Height()),
	)
	return nil
}

// Handle processes one screen event.
func (a *App) Handle(ev tcell.Event) {
	if _, ok := ev.(*tcell.EventResize); ok {
		a.screen.Sync()
		if err := a.Resize(); err != nil {
			a.log.Warn("resize failed", zap.Error(err))
		}
		return
	}

	cmd, quit := a.input.Translate(ev)
	if quit {
		a.quit = true
		return
	}
	if cmd != nil {
		a.scene.Controller().Apply(cmd)
	}
}

// Step advances the scene by dt seconds. In listing mode the app holds on
// the last location and quits once a skip runs past the end.
func (a *App) Step(dt float64, now time.Time) {
	a.scene.Tick(dt, now)
	if a.input.Mode() != Listing {
		return
	}
	if p := a.scene.Controller().Playback(); p == nil || p.Exhausted() {
		a.quit = true
	}
}

// Draw copies the canvas to the screen.
func (a *App) Draw() {
	a.scene.Draw(a.cv)
	for row := 0; row < a.cv.Height(); row++ {
		for col := 0; col < a.cv.Width(); col++ {
			a.screen.SetContent(a.offX+col, a.offY+row, a.cv.At(col, row), nil, a.style)
		}
	}
	a.screen.Show()
}

// Run loops until the app quits or ctx is done. Frames are drawn at the
// configured refresh rate.
func (a *App) Run(ctx context.Context) error {
	a.screen.HideCursor()
	if a.input.Mode() == Interactive {
		a.screen.EnableMouse()
		defer a.screen.DisableMouse()
	}

	events := make(chan tcell.Event, 16)
	stop := make(chan struct{})
	go a.screen.ChannelEvents(events, stop)
	defer close(stop)

	ticker := time.NewTicker(a.scene.Config().FrameInterval())
	defer ticker.Stop()

	a.log.Info("running", zap.Stringer("mode", a.input.Mode()))

	last := time.Now()
	frames := 0
	fpsTimer := last
	a.Draw()

	for !a.quit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			a.Handle(ev)
		case now := <-ticker.C:
			a.Step(now.Sub(last).Seconds(), now)
			last = now
			a.Draw()

			frames++
			if now.Sub(fpsTimer) >= time.Second {
				a.log.Debug("fps", zap.Int("count", frames))
				frames = 0
				fpsTimer = now
			}
		}
	}
	return nil
}
