// Package math provides vector and angle helpers for sphere rendering.
package math

import "math"

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns a unit vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float64 {
	return v.Sub(other).Length()
}

// FromLatLon returns the unit vector pointing at the given latitude and
// longitude in degrees. +Z is north, longitude 0 lies on +X and 90 on +Y.
func FromLatLon(lat, lon float64) Vec3 {
	phi := Radians(lat)
	lambda := Radians(lon)
	cosPhi := math.Cos(phi)
	return Vec3{
		X: cosPhi * math.Cos(lambda),
		Y: cosPhi * math.Sin(lambda),
		Z: math.Sin(phi),
	}
}

// LatLon returns the latitude and longitude in degrees of the direction v.
// The zero vector maps to (0, 0).
func (v Vec3) LatLon() (lat, lon float64) {
	l := v.Length()
	if l == 0 {
		return 0, 0
	}
	z := Clamp(v.Z/l, -1, 1)
	lat = Degrees(math.Asin(z))
	lon = Degrees(math.Atan2(v.Y, v.X))
	return lat, WrapDegrees(lon)
}
