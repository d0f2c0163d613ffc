package canvas

import (
	"fmt"
	"math"
)

// DefaultRamp orders characters from darkest to brightest.
const DefaultRamp = " .:;',wioOgLXHWYV@"

// Ramp maps brightness in [0, 1] to characters.
type Ramp []rune

// NewRamp builds a ramp from a string, darkest first. It needs at least
// two characters.
func NewRamp(s string) (Ramp, error) {
	r := Ramp(s)
	if len(r) < 2 {
		return nil, fmt.Errorf("ramp %q needs at least two characters", s)
	}
	return r, nil
}

// Char returns the character for a brightness. Values outside [0, 1]
// saturate.
func (r Ramp) Char(b float64) rune {
	if b <= 0 || math.IsNaN(b) {
		return r[0]
	}
	if b >= 1 {
		return r[len(r)-1]
	}
	return r[int(math.Round(b*float64(len(r)-1)))]
}

// Level returns the brightness a character stands for, or -1 when the
// character is not on the ramp.
func (r Ramp) Level(c rune) float64 {
	for i, rc := range r {
		if rc == c {
			return float64(i) / float64(len(r)-1)
		}
	}
	return -1
}
