package texture

import "fmt"

// Sampler pairs a day texture with an optional night texture of the same size.
type Sampler struct {
	day   *Texture
	night *Texture
}

// NewSampler validates the texture pair. night may be nil.
func NewSampler(day, night *Texture) (*Sampler, error) {
	if day == nil {
		return nil, fmt.Errorf("day texture: %w", ErrEmptyTexture)
	}
	if night != nil && (night.width != day.width || night.height != day.height) {
		return nil, fmt.Errorf("%w: day %dx%d, night %dx%d",
			ErrSizeMismatch, day.width, day.height, night.width, night.height)
	}
	return &Sampler{day: day, night: night}, nil
}

// Day returns the day texture.
func (s *Sampler) Day() *Texture { return s.day }

// Night returns the night texture, or nil.
func (s *Sampler) Night() *Texture { return s.night }

// HasNight reports whether a night texture is present.
func (s *Sampler) HasNight() bool { return s.night != nil }

// Sample returns the day and night brightness at a latitude/longitude in
// degrees. Both textures share dimensions, so one pixel lookup serves both.
// night is 0 when there is no night texture.
func (s *Sampler) Sample(lat, lon float64) (day, night float64) {
	x, y := s.day.Index(lat, lon)
	i := y*s.day.width + x
	day = s.day.samples[i]
	if s.night != nil {
		night = s.night.samples[i]
	}
	return day, night
}
