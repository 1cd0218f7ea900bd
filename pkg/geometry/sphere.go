package geometry

import (
	"github.com/df07/go-spectral-raytracer/pkg/core"
)

// RaySphereIntersection reports whether a ray passes within radius of center
// in front of its origin. It is a broad-phase check for bounding spheres, so it
// returns no hit point.
func RaySphereIntersection(ray core.Ray, center core.Vec3, radius float32) bool {
	direction := ray.Direction.Normalize()
	oc := center.To(ray.Origin)

	// Closest approach behind the origin
	l := ray.Origin.To(center)
	tca := l.Dot(direction)
	if tca < 0 {
		return false
	}

	// Closest approach outside the sphere
	d2 := l.Dot(l) - tca*tca
	if d2 > radius*radius {
		return false
	}

	b := 2 * direction.Dot(oc)
	c := oc.Dot(oc) - radius*radius
	return b*b-4*c >= 0
}
