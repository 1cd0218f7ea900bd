package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-spectral-raytracer/pkg/core"
)

// parallelEpsilon is the smallest |dot(direction, normal)| treated as non-parallel
const parallelEpsilon = 1e-4

// Polygon is a single triangle with counter-clockwise winding
type Polygon struct {
	A, B, C Vertex
}

// NewPolygon creates a polygon from three positions
func NewPolygon(a, b, c core.Vec3) Polygon {
	return Polygon{
		A: Vertex{Position: a},
		B: Vertex{Position: b},
		C: Vertex{Position: c},
	}
}

// Normal returns the unit normal (B-A)×(C-A).
// Degenerate triangles yield NaN components.
func (p Polygon) Normal() core.Vec3 {
	edge1 := p.B.Position.Subtract(p.A.Position)
	edge2 := p.C.Position.Subtract(p.A.Position)
	return edge1.Cross(edge2).Normalize()
}

// Centroid returns the average of the three vertex positions
func (p Polygon) Centroid() core.Vec3 {
	return p.A.Position.Add(p.B.Position).Add(p.C.Position).Multiply(1.0 / 3.0)
}

// ProbeRayPolygon intersects a ray with the front face of a polygon.
// It returns whether the ray hits, the intersection point and the distance along the ray.
func ProbeRayPolygon(ray core.Ray, p Polygon) (bool, core.Vec3, float32) {
	normal := p.Normal()

	// Reject backfaces and rays running along the plane
	denominator := ray.Direction.Dot(normal)
	if denominator > 0 || math32.Abs(denominator) <= parallelEpsilon {
		return false, core.Vec3{}, 0
	}

	k := ray.Origin.To(p.A.Position).Dot(normal) / denominator
	if k <= 0 {
		return false, core.Vec3{}, 0
	}

	point := ray.Origin.Add(ray.Direction.Multiply(k))
	if point.IsOrigin() {
		return false, core.Vec3{}, 0
	}

	if !contains(p, point) {
		return false, core.Vec3{}, 0
	}

	return true, point, k
}

// contains reports whether a point already on the polygon's plane lies inside it.
// For each vertex it takes the component of the edge leaving that vertex which is
// perpendicular to the opposite edge, and measures how far the point sits along it.
func contains(p Polygon, point core.Vec3) bool {
	a, b, c := p.A.Position, p.B.Position, p.C.Position

	coefficients := [3]float32{
		coefficient(a, b, c, point),
		coefficient(b, c, a, point),
		coefficient(c, a, b, point),
	}
	for _, k := range coefficients {
		if k < 0 || k > 1 {
			return false
		}
	}
	return true
}

// coefficient is the barycentric weight of from: 1 at the vertex, 0 on the opposite edge
func coefficient(from, next, opposite, point core.Vec3) float32 {
	edge := from.To(next)
	oppositeEdge := opposite.To(next)
	perpendicular := edge.Subtract(project(oppositeEdge, edge))
	return 1 - perpendicular.Dot(from.To(point))/perpendicular.Dot(edge)
}

// project returns the projection of b onto a
func project(a, b core.Vec3) core.Vec3 {
	return a.Multiply(a.Dot(b) / a.Dot(a))
}
