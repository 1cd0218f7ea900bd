package scene

import (
	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/geometry"
	"github.com/df07/go-spectral-raytracer/pkg/material"
	"github.com/df07/go-spectral-raytracer/pkg/transform"
)

// ObjectID is a handle into a scene's object arena
type ObjectID int

// Bounds is a bounding sphere in world space
type Bounds struct {
	Center core.Vec3
	Radius float32
}

// Object places one or more meshes in the world.
// Each object must own its meshes; two objects sharing a *Mesh would
// overwrite each other's output vertices.
type Object struct {
	Position    core.Vec3
	Orientation core.Orientation
	Scale       core.Vec3
	Material    material.Material
	Meshes      []*geometry.Mesh
	Children    []ObjectID

	parent ObjectID // id+1 of the parent, 0 for a root object
	bounds Bounds
}

// DefaultObject returns an unscaled, unrotated object at the origin with a white PBR material
func DefaultObject() Object {
	return Object{
		Scale:    core.NewVec3(1, 1, 1),
		Material: material.NewPBR(0, 1),
	}
}

// NewObject returns the default object placed at position with the given meshes
func NewObject(position core.Vec3, meshes ...*geometry.Mesh) Object {
	o := DefaultObject()
	o.Position = position
	o.Meshes = meshes
	return o
}

// Parent returns the parent handle, if any
func (o *Object) Parent() (ObjectID, bool) {
	if o.parent == 0 {
		return 0, false
	}
	return o.parent - 1, true
}

// LocalTransforms returns the object's own placement in application order:
// scale, then rotation, then translation
func (o *Object) LocalTransforms() []transform.Transform {
	return []transform.Transform{
		transform.Scale(o.Scale),
		transform.Orient(o.Orientation),
		transform.Translation(o.Position),
	}
}

// Bounds returns the bounding sphere computed by the last ApplyTransforms
func (o *Object) Bounds() Bounds {
	return o.bounds
}

// RayIntercept reports whether ray passes through the bounding sphere
func (o *Object) RayIntercept(ray core.Ray) bool {
	return geometry.RaySphereIntersection(ray, o.bounds.Center, o.bounds.Radius)
}

// PolygonCount returns the number of triangles across all meshes
func (o *Object) PolygonCount() int {
	count := 0
	for _, mesh := range o.Meshes {
		count += mesh.PolygonCount()
	}
	return count
}

// computeBounds centres the sphere on the transformed local origin and grows it
// to reach the farthest transformed vertex
func (o *Object) computeBounds(world transform.Transform) {
	center := world.Apply(core.Origin)
	var radius float32
	for _, mesh := range o.Meshes {
		for _, v := range mesh.Vertices {
			if d := world.Apply(v.Position).Subtract(center).Length(); d > radius {
				radius = d
			}
		}
	}
	o.bounds = Bounds{Center: center, Radius: radius}
}
