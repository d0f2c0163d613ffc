package math

import (
	"math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 12}.Normalize()
	if l := n.Length(); math.Abs(l-1) > 1e-12 {
		t.Errorf("Vec3.Normalize().Length() = %v, want 1", l)
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero vector Normalize() = %v, want zero", z)
	}
}

func TestFromLatLonRoundTrip(t *testing.T) {
	tests := []struct {
		lat, lon float64
	}{
		{0, 0},
		{45, 90},
		{-30, -120},
		{10, 179.5},
		{89.9, 45},
	}
	for _, tt := range tests {
		lat, lon := FromLatLon(tt.lat, tt.lon).LatLon()
		if math.Abs(lat-tt.lat) > 1e-9 || math.Abs(ShortestArc(lon, tt.lon)) > 1e-9 {
			t.Errorf("round trip (%v, %v) = (%v, %v)", tt.lat, tt.lon, lat, lon)
		}
	}
}

func TestFromLatLonAxes(t *testing.T) {
	north := FromLatLon(90, 0)
	if math.Abs(north.Z-1) > 1e-12 {
		t.Errorf("north pole = %v, want +Z", north)
	}
	east := FromLatLon(0, 90)
	if math.Abs(east.Y-1) > 1e-12 {
		t.Errorf("lon 90 = %v, want +Y", east)
	}
}
