package lighting

import (
	"math"
	"testing"
	"time"
)

func TestIlluminationEndpoints(t *testing.T) {
	if got := Illumination(30, 30); got != 1 {
		t.Errorf("Illumination at subsolar = %v, want 1", got)
	}
	if got := Illumination(-150, 30); math.Abs(got) > 1e-12 {
		t.Errorf("Illumination at antisolar = %v, want 0", got)
	}
	if got := Illumination(120, 30); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Illumination at terminator = %v, want 0.5", got)
	}
}

func TestIlluminationMonotonic(t *testing.T) {
	prev := 2.0
	for d := 0.0; d <= 180; d += 1 {
		got := Illumination(d, 0)
		if got > prev {
			t.Fatalf("Illumination increased at %v degrees: %v > %v", d, got, prev)
		}
		if sym := Illumination(-d, 0); math.Abs(sym-got) > 1e-12 {
			t.Fatalf("Illumination not symmetric at %v: %v vs %v", d, got, sym)
		}
		prev = got
	}
}

func TestIlluminationWrapsAcrossAntimeridian(t *testing.T) {
	a := Illumination(179, -179)
	b := Illumination(-179, 179)
	if math.Abs(a-b) > 1e-12 || a < 0.99 {
		t.Errorf("Illumination across antimeridian = %v, %v, want equal and near 1", a, b)
	}
}

func TestShade(t *testing.T) {
	cfg := DefaultShadeConfig()
	cfg.SunLon = 0
	s := NewShader(cfg)

	tests := []struct {
		name      string
		lon       float64
		day       float64
		night     float64
		hasNight  bool
		nightMode bool
		want      float64
	}{
		{"subsolar full day", 0, 0.8, 0.1, true, true, 0.8},
		{"antisolar full night", 180, 0.8, 0.1, true, true, 0.1},
		{"night mode without night texture is black", 180, 0.8, 0, false, true, 0},
		{"ambient floor at antisolar", 180, 0.8, 0.1, true, false, 0.8 * DefaultAmbientFloor},
		{"ambient floor ignores night texture", 180, 1, 1, true, false, DefaultAmbientFloor},
		{"subsolar without night mode", 0, 0.6, 0, false, false, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Shade(tt.lon, tt.day, tt.night, tt.hasNight, tt.nightMode)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Shade() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShadeLightingOff(t *testing.T) {
	s := NewShader(ShadeConfig{Lighting: false})
	if got := s.Shade(180, 0.7, 0, false, true); got != 0.7 {
		t.Errorf("Shade() with lighting off = %v, want 0.7", got)
	}
}

func TestSetSunLonWraps(t *testing.T) {
	s := NewShader(DefaultShadeConfig())
	s.SetSunLon(200)
	if got := s.Config().SunLon; got != -160 {
		t.Errorf("SunLon = %v, want -160", got)
	}
}

func TestSunAtSolstice(t *testing.T) {
	// June solstice 2024 was 2024-06-20 20:51 UTC; the sun stands over the
	// Tropic of Cancer and, near 12:00 UTC, close to the Greenwich meridian.
	sun := SunAt(time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC))
	if math.Abs(sun.Lat-23.44) > 0.1 {
		t.Errorf("subsolar latitude = %v, want ~23.44", sun.Lat)
	}
	if math.Abs(sun.Lon) > 3 {
		t.Errorf("subsolar longitude at noon UTC = %v, want near 0", sun.Lon)
	}

	later := SunAt(time.Date(2024, 6, 20, 18, 0, 0, 0, time.UTC))
	// The sun moves west about 15 degrees per hour.
	if d := later.Lon - sun.Lon; math.Abs(d+90) > 2 {
		t.Errorf("six hours moved subsolar longitude by %v, want ~-90", d)
	}
}

func TestSunDirection(t *testing.T) {
	d := Sun{Lat: 0, Lon: 90}.Direction()
	if math.Abs(d.Y-1) > 1e-12 {
		t.Errorf("Direction() = %v, want +Y", d)
	}
}
