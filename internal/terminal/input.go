package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/globe/internal/engine/animation"
)

// Mode selects how key and mouse events are interpreted.
type Mode int

const (
	// Interactive maps keys and the mouse to camera and globe commands.
	Interactive Mode = iota
	// Screensaver exits on any key.
	Screensaver
	// Listing advances to the next location on any key; 'c' and 'd' quit.
	Listing
)

func (m Mode) String() string {
	switch m {
	case Interactive:
		return "interactive"
	case Screensaver:
		return "screensaver"
	case Listing:
		return "listing"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Step sizes for interactive commands.
const (
	SpinStep  = 10.0 // degrees per second
	OrbitStep = 10.0 // degrees per second
	PanStep   = 6.0  // degrees
	DragStep  = 6.0  // degrees per cell dragged
	ZoomStep  = 0.1  // sphere radii
)

// Input turns terminal events into animation commands.
type Input struct {
	mode Mode

	dragging     bool
	lastX, lastY int
}

// NewInput creates an event translator for the given mode.
func NewInput(mode Mode) *Input {
	return &Input{mode: mode}
}

// Mode returns the input mode.
func (in *Input) Mode() Mode { return in.mode }

// Translate maps one event to a command. quit reports that the event asks
// the program to exit. Events with no meaning in the current mode return a
// nil command.
func (in *Input) Translate(ev tcell.Event) (cmd animation.Command, quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return in.key(ev)
	case *tcell.EventMouse:
		if in.mode == Interactive {
			return in.mouse(ev), false
		}
	}
	return nil, false
}

func (in *Input) key(ev *tcell.EventKey) (animation.Command, bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return nil, true
	}

	switch in.mode {
	case Screensaver:
		return nil, true
	case Listing:
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'c', 'd', 'q':
				return nil, true
			}
		}
		return animation.NextTarget{}, false
	}

	switch ev.Key() {
	case tcell.KeyUp:
		return animation.Pan{DLat: PanStep}, false
	case tcell.KeyDown:
		return animation.Pan{DLat: -PanStep}, false
	case tcell.KeyLeft:
		return animation.Pan{DLon: PanStep}, false
	case tcell.KeyRight:
		return animation.Pan{DLon: -PanStep}, false
	case tcell.KeyPgUp:
		return animation.ZoomDelta(ZoomStep), false
	case tcell.KeyPgDn:
		return animation.ZoomDelta(-ZoomStep), false
	case tcell.KeyEnter:
		return animation.Home{}, false
	case tcell.KeyRune:
	default:
		return nil, false
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return nil, true
	case '+', '=':
		return animation.SpinSpeedDelta(SpinStep), false
	case '-', '_':
		return animation.SpinSpeedDelta(-SpinStep), false
	case '.', '>':
		return animation.OrbitSpeedDelta(OrbitStep), false
	case ',', '<':
		return animation.OrbitSpeedDelta(-OrbitStep), false
	case 'n', 'N':
		return animation.ToggleNight{}, false
	case 'h':
		return animation.Pan{DLon: PanStep}, false
	case 'l':
		return animation.Pan{DLon: -PanStep}, false
	case 'k':
		return animation.Pan{DLat: PanStep}, false
	case 'j':
		return animation.Pan{DLat: -PanStep}, false
	}
	return nil, false
}

func (in *Input) mouse(ev *tcell.EventMouse) animation.Command {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		return animation.ZoomDelta(-ZoomStep)
	case buttons&tcell.WheelDown != 0:
		return animation.ZoomDelta(ZoomStep)
	case buttons&tcell.Button1 != 0:
		if !in.dragging {
			in.dragging = true
			in.lastX, in.lastY = x, y
			return nil
		}
		dx, dy := x-in.lastX, y-in.lastY
		in.lastX, in.lastY = x, y
		if dx == 0 && dy == 0 {
			return nil
		}
		return animation.Pan{DLat: float64(dy) * DragStep, DLon: float64(dx) * DragStep}
	default:
		in.dragging = false
		return nil
	}
}
