package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/globe/internal/engine/animation"
)

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestInteractiveKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want animation.Command
	}{
		{"spin up", keyRune('+'), animation.SpinSpeedDelta(SpinStep)},
		{"spin down", keyRune('-'), animation.SpinSpeedDelta(-SpinStep)},
		{"orbit up", keyRune('.'), animation.OrbitSpeedDelta(OrbitStep)},
		{"orbit down", keyRune(','), animation.OrbitSpeedDelta(-OrbitStep)},
		{"night", keyRune('n'), animation.ToggleNight{}},
		{"h", keyRune('h'), animation.Pan{DLon: PanStep}},
		{"l", keyRune('l'), animation.Pan{DLon: -PanStep}},
		{"k", keyRune('k'), animation.Pan{DLat: PanStep}},
		{"j", keyRune('j'), animation.Pan{DLat: -PanStep}},
		{"up", key(tcell.KeyUp), animation.Pan{DLat: PanStep}},
		{"down", key(tcell.KeyDown), animation.Pan{DLat: -PanStep}},
		{"left", key(tcell.KeyLeft), animation.Pan{DLon: PanStep}},
		{"right", key(tcell.KeyRight), animation.Pan{DLon: -PanStep}},
		{"page up", key(tcell.KeyPgUp), animation.ZoomDelta(ZoomStep)},
		{"page down", key(tcell.KeyPgDn), animation.ZoomDelta(-ZoomStep)},
		{"enter", key(tcell.KeyEnter), animation.Home{}},
		{"unbound", keyRune('z'), nil},
	}

	in := NewInput(Interactive)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quit := in.Translate(tt.ev)
			if quit {
				t.Fatal("unexpected quit")
			}
			if got != tt.want {
				t.Errorf("Translate() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestQuitKeys(t *testing.T) {
	for _, mode := range []Mode{Interactive, Screensaver, Listing} {
		in := NewInput(mode)
		for _, ev := range []tcell.Event{key(tcell.KeyEscape), key(tcell.KeyCtrlC), keyRune('q')} {
			if _, quit := in.Translate(ev); !quit {
				t.Errorf("%v: %v did not quit", mode, ev.(*tcell.EventKey).Name())
			}
		}
	}
}

func TestScreensaverAnyKeyQuits(t *testing.T) {
	in := NewInput(Screensaver)
	if _, quit := in.Translate(keyRune('x')); !quit {
		t.Error("screensaver should exit on any key")
	}
	if cmd, quit := in.Translate(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone)); quit || cmd != nil {
		t.Error("screensaver should ignore the mouse")
	}
}

func TestListingKeys(t *testing.T) {
	in := NewInput(Listing)
	for _, r := range []rune{'c', 'd'} {
		if _, quit := in.Translate(keyRune(r)); !quit {
			t.Errorf("%q should quit listing", r)
		}
	}
	cmd, quit := in.Translate(keyRune(' '))
	if quit || cmd != (animation.NextTarget{}) {
		t.Errorf("space = (%v, %v), want NextTarget", cmd, quit)
	}
	cmd, _ = in.Translate(key(tcell.KeyRight))
	if cmd != (animation.NextTarget{}) {
		t.Errorf("right = %v, want NextTarget", cmd)
	}
}

func TestMouse(t *testing.T) {
	in := NewInput(Interactive)

	if cmd, _ := in.Translate(tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone)); cmd != animation.ZoomDelta(-ZoomStep) {
		t.Errorf("wheel up = %v", cmd)
	}
	if cmd, _ := in.Translate(tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone)); cmd != animation.ZoomDelta(ZoomStep) {
		t.Errorf("wheel down = %v", cmd)
	}

	// Press starts a drag without moving.
	if cmd, _ := in.Translate(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone)); cmd != nil {
		t.Errorf("press = %v, want nil", cmd)
	}
	cmd, _ := in.Translate(tcell.NewEventMouse(12, 4, tcell.Button1, tcell.ModNone))
	want := animation.Pan{DLat: -DragStep, DLon: 2 * DragStep}
	if cmd != want {
		t.Errorf("drag = %#v, want %#v", cmd, want)
	}

	// Release ends the drag; the next press starts over.
	in.Translate(tcell.NewEventMouse(12, 4, tcell.ButtonNone, tcell.ModNone))
	if cmd, _ := in.Translate(tcell.NewEventMouse(30, 20, tcell.Button1, tcell.ModNone)); cmd != nil {
		t.Errorf("press after release = %v, want nil", cmd)
	}
}
