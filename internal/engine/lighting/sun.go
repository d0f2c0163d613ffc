// Package lighting provides the sun model and day/night shading for the globe.
package lighting

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"

	gmath "github.com/Faultbox/globe/pkg/math"
)

// Sun is the subsolar point: the latitude and longitude in degrees where the
// sun is directly overhead.
type Sun struct {
	Lat float64
	Lon float64
}

// Direction returns the unit vector from the globe center towards the sun.
func (s Sun) Direction() gmath.Vec3 {
	return gmath.FromLatLon(s.Lat, s.Lon)
}

// SunAt computes the subsolar point for the given instant from the sun's
// apparent equatorial coordinates and Greenwich apparent sidereal time.
func SunAt(t time.Time) Sun {
	jd := julian.TimeToJD(t.UTC())

	ra, dec := solar.ApparentEquatorial(jd)
	gast := sidereal.Apparent(jd)

	// Hour angle at Greenwich is GAST - RA; the subsolar meridian is where
	// the local hour angle is zero.
	lon := gmath.Degrees(ra.Rad() - gast.Rad())
	return Sun{
		Lat: gmath.Degrees(dec.Rad()),
		Lon: gmath.WrapDegrees(lon),
	}
}

// Illumination returns how lit a point at longitude lon is for a sun over
// sunLon, both in degrees: 1 at the subsolar meridian, 0 at the antisolar
// one, following a raised cosine in between so there is no hard terminator.
func Illumination(lon, sunLon float64) float64 {
	delta := gmath.Radians(gmath.ShortestArc(sunLon, lon))
	return gmath.Clamp(0.5+0.5*math.Cos(delta), 0, 1)
}
