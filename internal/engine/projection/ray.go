package projection

import (
	"math"

	gmath "github.com/Faultbox/globe/pkg/math"
)

// TangentEpsilon is the discriminant below which a ray counts as grazing
// the sphere and misses.
const TangentEpsilon = 1e-9

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    gmath.Vec3
	Direction gmath.Vec3 // Normalized direction
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) gmath.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectSphere intersects the ray with a sphere of the given radius
// centered at the origin and returns the nearest positive hit distance.
// Origins on or inside the sphere, grazing rays and hits behind the origin
// all miss.
func (r Ray) IntersectSphere(radius float64) (t float64, ok bool) {
	// |O + tD|^2 = R^2 with |D| = 1: t^2 + 2bt + c = 0
	b := r.Origin.Dot(r.Direction)
	c := r.Origin.Dot(r.Origin) - radius*radius
	if c <= 0 {
		return 0, false
	}

	disc := b*b - c
	if disc <= TangentEpsilon {
		return 0, false
	}

	t = -b - math.Sqrt(disc)
	if t <= 0 {
		return 0, false
	}
	return t, true
}
