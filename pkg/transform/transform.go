package transform

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-spectral-raytracer/pkg/core"
)

// Transform is a 4x4 matrix acting on homogeneous coordinates (x, y, z, 1)
type Transform struct {
	Matrix mgl32.Mat4
}

// Identity returns the transform that leaves every point in place
func Identity() Transform {
	return Transform{Matrix: mgl32.Ident4()}
}

// Translation returns a transform offsetting points by v
func Translation(v core.Vec3) Transform {
	return Transform{Matrix: mgl32.Translate3D(v.X, v.Y, v.Z)}
}

// Scale returns a transform scaling each axis by the matching component of v
func Scale(v core.Vec3) Transform {
	return Transform{Matrix: mgl32.Scale3D(v.X, v.Y, v.Z)}
}

// RotationX rotates by theta radians about the x axis
func RotationX(theta float32) Transform {
	c, s := math32.Cos(theta), math32.Sin(theta)
	return fromRows(
		mgl32.Vec4{1, 0, 0, 0},
		mgl32.Vec4{0, c, -s, 0},
		mgl32.Vec4{0, s, c, 0},
		mgl32.Vec4{0, 0, 0, 1},
	)
}

// RotationY rotates by theta radians about the y axis
func RotationY(theta float32) Transform {
	c, s := math32.Cos(theta), math32.Sin(theta)
	return fromRows(
		mgl32.Vec4{c, 0, s, 0},
		mgl32.Vec4{0, 1, 0, 0},
		mgl32.Vec4{-s, 0, c, 0},
		mgl32.Vec4{0, 0, 0, 1},
	)
}

// RotationZ rotates by theta radians about the z axis
func RotationZ(theta float32) Transform {
	c, s := math32.Cos(theta), math32.Sin(theta)
	return fromRows(
		mgl32.Vec4{c, -s, 0, 0},
		mgl32.Vec4{s, c, 0, 0},
		mgl32.Vec4{0, 0, 1, 0},
		mgl32.Vec4{0, 0, 0, 1},
	)
}

// Rotation rotates by theta radians about an arbitrary axis.
// The matrix is built from the unit quaternion q0 = cos(θ/2), (q1, q2, q3) = axis·sin(θ/2).
func Rotation(theta float32, axis core.Vec3) Transform {
	axis = axis.Normalize()
	q0 := math32.Cos(theta / 2)
	factor := math32.Sin(theta / 2)
	q1 := axis.X * factor
	q2 := axis.Y * factor
	q3 := axis.Z * factor

	return fromRows(
		mgl32.Vec4{
			q0*q0 + q1*q1 - q2*q2 - q3*q3,
			2*q1*q2 - 2*q0*q3,
			2*q1*q3 + 2*q0*q2,
			0,
		},
		mgl32.Vec4{
			2*q1*q2 + 2*q0*q3,
			q0*q0 - q1*q1 + q2*q2 - q3*q3,
			2*q2*q3 - 2*q0*q1,
			0,
		},
		mgl32.Vec4{
			2*q1*q3 - 2*q0*q2,
			2*q2*q3 + 2*q0*q1,
			q0*q0 - q1*q1 - q2*q2 + q3*q3,
			0,
		},
		mgl32.Vec4{0, 0, 0, 1},
	)
}

// Orient returns the rotation described by o, or the identity when o is unrotated
func Orient(o core.Orientation) Transform {
	if o.IsIdentity() {
		return Identity()
	}
	return Rotation(o.Angle, o.Axis)
}

// Projection stores hfov/90 in the w row so the perspective divide scales
// x and y by distance. hfovDegrees is the horizontal field of view.
func Projection(hfovDegrees float32) Transform {
	hfactor := hfovDegrees / 90
	return fromRows(
		mgl32.Vec4{1, 0, 0, 0},
		mgl32.Vec4{0, 1, 0, 0},
		mgl32.Vec4{0, 0, 1, 0},
		mgl32.Vec4{0, 0, hfactor, 0},
	)
}

// Display maps normalized device coordinates to pixel coordinates.
// It corrects for the aspect ratio, flips the horizontal axis, re-centres
// [-1, 1] into [0, 1] and scales to the resolution.
func Display(aspectRatio float32, hres, vres int) Transform {
	return Compile([]Transform{
		Scale(core.NewVec3(1, aspectRatio, 1)),
		Scale(core.NewVec3(-1, 1, 0)),
		Translation(core.NewVec3(1, 1, 0)),
		Scale(core.NewVec3(0.5, 0.5, 1)),
		Scale(core.NewVec3(float32(hres), float32(vres), 1)),
	})
}

// Compile folds an ordered list of transforms into one matrix.
// The first transform in the list is the first one applied to a point:
// the result is T_last · … · T_first.
func Compile(transforms []Transform) Transform {
	composed := mgl32.Ident4()
	for i := len(transforms) - 1; i >= 0; i-- {
		composed = composed.Mul4(transforms[i].Matrix)
	}
	return Transform{Matrix: composed}
}

// Apply transforms a point and re-normalizes it by the resulting w
func (t Transform) Apply(v core.Vec3) core.Vec3 {
	return core.Vec3FromHomogeneous(t.Matrix.Mul4x1(v.Homogeneous()))
}

// ApproxEqual reports whether every matrix element differs by at most threshold.
// The comparison is absolute so elements near zero compare sensibly.
func (t Transform) ApproxEqual(other Transform, threshold float32) bool {
	for i := range t.Matrix {
		if math32.Abs(t.Matrix[i]-other.Matrix[i]) > threshold {
			return false
		}
	}
	return true
}

func fromRows(r0, r1, r2, r3 mgl32.Vec4) Transform {
	return Transform{Matrix: mgl32.Mat4FromRows(r0, r1, r2, r3)}
}
