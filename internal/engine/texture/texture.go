// Package texture provides brightness textures and equirectangular sampling
// for globe rendering.
package texture

import (
	"errors"
	"fmt"
	"math"

	gmath "github.com/Faultbox/globe/pkg/math"
)

var (
	// ErrEmptyTexture is returned when a texture has no pixels.
	ErrEmptyTexture = errors.New("texture has zero dimensions")

	// ErrSizeMismatch is returned when day and night textures differ in size.
	ErrSizeMismatch = errors.New("day and night textures differ in size")
)

// Texture is an immutable grid of brightness samples in [0, 1].
// Row 0 is the northernmost row, column 0 is longitude -180.
type Texture struct {
	width   int
	height  int
	samples []float64
}

// New creates a texture from row-major samples. Values are clamped to [0, 1].
func New(width, height int, samples []float64) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyTexture, width, height)
	}
	if len(samples) != width*height {
		return nil, fmt.Errorf("sample count mismatch: expected %d, got %d", width*height, len(samples))
	}

	t := &Texture{
		width:   width,
		height:  height,
		samples: make([]float64, len(samples)),
	}
	for i, s := range samples {
		t.samples[i] = gmath.Clamp(s, 0, 1)
	}
	return t, nil
}

// Uniform creates a texture where every pixel has the same brightness.
func Uniform(width, height int, value float64) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyTexture, width, height)
	}
	samples := make([]float64, width*height)
	for i := range samples {
		samples[i] = value
	}
	return New(width, height, samples)
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// At returns the sample at pixel (x, y). Out-of-range coordinates return 0.
func (t *Texture) At(x, y int) float64 {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return 0
	}
	return t.samples[y*t.width+x]
}

// Index maps a latitude/longitude in degrees to a pixel. Longitude wraps
// around the texture horizontally, latitude clamps to the first and last
// rows so each pole is a single row.
func (t *Texture) Index(lat, lon float64) (x, y int) {
	u := (gmath.WrapDegrees(lon) + 180) / 360
	x = int(math.Floor(u*float64(t.width))) % t.width
	if x < 0 {
		x += t.width
	}

	v := (90 - gmath.Clamp(lat, -90, 90)) / 180
	y = int(math.Floor(v * float64(t.height)))
	if y < 0 {
		y = 0
	}
	if y >= t.height {
		y = t.height - 1
	}
	return x, y
}

// Sample returns the brightness at a latitude/longitude in degrees.
func (t *Texture) Sample(lat, lon float64) float64 {
	x, y := t.Index(lat, lon)
	return t.samples[y*t.width+x]
}
