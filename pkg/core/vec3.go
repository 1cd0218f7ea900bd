package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 represents a 3D vector in single precision
type Vec3 struct {
	X, Y, Z float32
}

// Origin is the zero vector
var Origin = Vec3{}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float32) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to NaN components.
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	return Vec3{v.X / length, v.Y / length, v.Z / length}
}

// To returns the vector pointing from v to head
func (v Vec3) To(head Vec3) Vec3 {
	return head.Subtract(v)
}

// IsOrigin reports whether every component is exactly zero
func (v Vec3) IsOrigin() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Homogeneous returns the point as a homogeneous 4-vector with w = 1
func (v Vec3) Homogeneous() mgl32.Vec4 {
	return mgl32.Vec4{v.X, v.Y, v.Z, 1}
}

// Vec3FromHomogeneous divides the first three components by w
func Vec3FromHomogeneous(h mgl32.Vec4) Vec3 {
	w := h[3]
	return Vec3{h[0] / w, h[1] / w, h[2] / w}
}

// ApproxEqual reports whether each component differs by at most tolerance
func (v Vec3) ApproxEqual(other Vec3, tolerance float32) bool {
	return math32.Abs(v.X-other.X) <= tolerance &&
		math32.Abs(v.Y-other.Y) <= tolerance &&
		math32.Abs(v.Z-other.Z) <= tolerance
}

// Ray represents a ray with an origin and a unit direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray, normalizing the direction
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Orientation is a rotation of Angle radians about Axis
type Orientation struct {
	Axis  Vec3
	Angle float32
}

// IsIdentity reports whether the orientation leaves points unrotated
func (o Orientation) IsIdentity() bool {
	return o.Angle == 0 || o.Axis.IsOrigin()
}
