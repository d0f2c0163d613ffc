package lighting

import gmath "github.com/Faultbox/globe/pkg/math"

// DefaultAmbientFloor is the minimum light on the unlit day side when night
// mode is off.
const DefaultAmbientFloor = 0.25

// ShadeConfig selects how day and night samples combine.
type ShadeConfig struct {
	// Lighting enables the day/night terminator. Default: true.
	Lighting bool `yaml:"lighting"`
	// AmbientFloor keeps the unlit day texture visible. Default: 0.25.
	AmbientFloor float64 `yaml:"ambient_floor"`
	// SunLon is the subsolar longitude in degrees. Default: 0.
	SunLon float64 `yaml:"sun_lon"`
}

// DefaultShadeConfig returns the default shading settings.
func DefaultShadeConfig() ShadeConfig {
	return ShadeConfig{
		Lighting:     true,
		AmbientFloor: DefaultAmbientFloor,
	}
}

// Shader resolves the final brightness of a surface point.
type Shader struct {
	cfg ShadeConfig
}

// NewShader creates a shader. The ambient floor is clamped to [0, 1].
func NewShader(cfg ShadeConfig) *Shader {
	cfg.AmbientFloor = gmath.Clamp(cfg.AmbientFloor, 0, 1)
	return &Shader{cfg: cfg}
}

// Config returns the shader settings.
func (s *Shader) Config() ShadeConfig { return s.cfg }

// SetSunLon moves the subsolar meridian.
func (s *Shader) SetSunLon(lon float64) {
	s.cfg.SunLon = gmath.WrapDegrees(lon)
}

// Shade combines the day and night samples at texture longitude lon.
//
// With lighting off the day sample is returned unchanged. In night mode the
// night texture (or black, without one) fills the dark side. Otherwise the
// day texture is dimmed but never below the ambient floor.
func (s *Shader) Shade(lon, day, night float64, hasNight, nightMode bool) float64 {
	if !s.cfg.Lighting {
		return day
	}

	i := Illumination(lon, s.cfg.SunLon)
	switch {
	case nightMode && hasNight:
		return gmath.Clamp(day*i+night*(1-i), 0, 1)
	case nightMode:
		return gmath.Clamp(day*i, 0, 1)
	default:
		if i < s.cfg.AmbientFloor {
			i = s.cfg.AmbientFloor
		}
		return gmath.Clamp(day*i, 0, 1)
	}
}
