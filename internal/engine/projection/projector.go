// Package projection casts one ray per character cell from the camera into
// the scene and resolves which point of the globe, if any, each cell shows.
package projection

import (
	"math"

	gmath "github.com/Faultbox/globe/pkg/math"
)

// View is everything the projector needs to know about a frame.
type View struct {
	FocusLat float64 // degrees
	FocusLon float64 // degrees, camera frame
	Distance float64 // from the globe center
	Orbit    float64 // camera orbit angle, degrees
	Spin     float64 // globe spin angle, degrees
	FOV      float64 // vertical field of view, degrees
	Radius   float64 // sphere radius
}

// Sample is the result of projecting one cell.
type Sample struct {
	Hit    bool
	Lat    float64    // texture latitude, degrees
	Lon    float64    // texture longitude, degrees, in [-180, 180)
	Normal gmath.Vec3 // outward unit normal at the hit point
}

// Projector maps cells of a cols x rows grid to sphere samples for one View.
// It holds no mutable state, so Project may be called concurrently.
type Projector struct {
	view   View
	cols   int
	rows   int
	halfH  float64 // tan(fov/2)
	halfW  float64 // halfH * aspect
	toView gmath.Mat4
}

// New prepares a projector for a grid of cols x rows cells whose cells
// cover aspect times more width than height in total, i.e. aspect is the
// canvas pixel width over its pixel height.
func New(view View, cols, rows int, aspect float64) *Projector {
	lat := gmath.Clamp(view.FocusLat, -90, 90)
	lon := gmath.WrapDegrees(view.FocusLon + view.Orbit)

	out := gmath.FromLatLon(lat, lon)
	east, north := basis(lat, lon)
	eye := out.Scale(view.Distance)

	halfH := math.Tan(gmath.Radians(view.FOV) / 2)
	return &Projector{
		view:   view,
		cols:   cols,
		rows:   rows,
		halfH:  halfH,
		halfW:  halfH * aspect,
		toView: gmath.FromBasis(east, north, out, eye),
	}
}

// basis returns the east and north unit vectors at a point. Built from the
// angles directly, they stay orthonormal at the poles.
func basis(lat, lon float64) (east, north gmath.Vec3) {
	phi, lambda := gmath.Radians(lat), gmath.Radians(lon)
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	sinLam, cosLam := math.Sin(lambda), math.Cos(lambda)
	east = gmath.Vec3{X: -sinLam, Y: cosLam}
	north = gmath.Vec3{X: -sinPhi * cosLam, Y: -sinPhi * sinLam, Z: cosPhi}
	return east, north
}

// View returns the view the projector was built for.
func (p *Projector) View() View { return p.view }

// Eye returns the camera position in world space.
func (p *Projector) Eye() gmath.Vec3 { return p.toView.Origin() }

// CellRay returns the world-space ray through the center of a cell.
func (p *Projector) CellRay(col, row int) Ray {
	sx := (2*(float64(col)+0.5)/float64(p.cols) - 1) * p.halfW
	sy := (1 - 2*(float64(row)+0.5)/float64(p.rows)) * p.halfH
	dir := p.toView.TransformDirection(gmath.Vec3{X: sx, Y: sy, Z: -1}).Normalize()
	return Ray{Origin: p.toView.Origin(), Direction: dir}
}

// Project resolves the sphere point seen through a cell. Cells whose ray
// misses the sphere return a Sample with Hit false.
func (p *Projector) Project(col, row int) Sample {
	ray := p.CellRay(col, row)
	t, ok := ray.IntersectSphere(p.view.Radius)
	if !ok {
		return Sample{}
	}

	normal := ray.At(t).Scale(1 / p.view.Radius)
	lat, lon := normal.LatLon()
	return Sample{
		Hit:    true,
		Lat:    lat,
		Lon:    gmath.WrapDegrees(lon - p.view.Spin),
		Normal: normal,
	}
}

// AngularRadius returns the half-angle in degrees the sphere subtends from
// the camera, or 180 when the camera is inside it.
func AngularRadius(radius, distance float64) float64 {
	if distance <= radius {
		return 180
	}
	return gmath.Degrees(math.Asin(radius / distance))
}
