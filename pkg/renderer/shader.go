package renderer

import (
	"image/color"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/geometry"
	"github.com/df07/go-spectral-raytracer/pkg/material"
	"github.com/df07/go-spectral-raytracer/pkg/scene"
	"github.com/df07/go-spectral-raytracer/pkg/spectra"
)

const (
	maxHitDistance = 1e6  // nothing farther than this is ever hit
	surfaceOffset  = 1e-5 // shadow rays start this far off the surface
)

// Shader computes the display colour of pixel (x, y)
type Shader func(x, y int, s *scene.Scene) color.RGBA

// Hit describes the closest intersection along a ray
type Hit struct {
	Object   scene.ObjectID
	Point    core.Vec3 // offset slightly off the surface along Normal
	Normal   core.Vec3
	ToCamera core.Vec3 // from Point back to the ray origin
	Distance float32
}

// ShaderFor returns the shader selected by mode
func ShaderFor(mode scene.ShaderMode) Shader {
	switch mode {
	case scene.Solid:
		return SolidShader
	case scene.BVH:
		return BVHShader
	default:
		return LitShader
	}
}

// ShootRay returns the closest front-facing triangle hit by ray.
// Output vertices must already be in world space.
func ShootRay(ray core.Ray, s *scene.Scene) (Hit, bool) {
	best := Hit{Distance: maxHitDistance}
	found := false

	objects := s.Objects()
	for i := range objects {
		o := &objects[i]
		if s.BroadPhase && !o.RayIntercept(ray) {
			continue
		}
		for _, mesh := range o.Meshes {
			for p := 0; p < mesh.PolygonCount(); p++ {
				polygon := mesh.Polygon(p)
				hit, point, distance := geometry.ProbeRayPolygon(ray, polygon)
				if !hit || distance >= best.Distance {
					continue
				}
				normal := polygon.Normal()
				best = Hit{
					Object:   scene.ObjectID(i),
					Point:    point.Add(normal.Multiply(surfaceOffset)),
					Normal:   normal,
					ToCamera: ray.Direction.Multiply(-distance),
					Distance: distance,
				}
				found = true
			}
		}
	}
	return best, found
}

// ComputeLight sums the direct contribution of every light visible from hit.
// Any geometry along the shadow ray blocks the light, wherever it lies.
func ComputeLight(hit Hit, m material.Material, s *scene.Scene) spectra.Spectra {
	total := spectra.Black(spectra.Radiance)
	for _, light := range s.Lights {
		toLight := hit.Point.To(light.Location())
		shadow := core.NewRay(hit.Point, toLight)
		if _, blocked := ShootRay(shadow, s); blocked {
			continue
		}
		radiance := m.RenderingEquation(hit.Point, toLight, hit.ToCamera, hit.Normal, light.RadiantIntensity(hit.Point))
		total = total.Add(radiance)
	}
	return total
}

// LitShader shades the closest hit with direct spectral lighting
func LitShader(x, y int, s *scene.Scene) color.RGBA {
	hit, ok := ShootRay(s.Camera.PixelToRay(x, y), s)
	if !ok {
		return spectra.ToDisplay(s.Background)
	}
	light := ComputeLight(hit, s.Object(hit.Object).Material, s)
	return spectra.ToDisplay(light.Scale(s.Camera.ExposureTime * s.Camera.Sensor.PixelArea()))
}

// SolidShader paints every covered pixel white
func SolidShader(x, y int, s *scene.Scene) color.RGBA {
	if _, ok := ShootRay(s.Camera.PixelToRay(x, y), s); ok {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return spectra.ToDisplay(s.Background)
}

// BVHShader paints pixels whose ray crosses any bounding sphere white
func BVHShader(x, y int, s *scene.Scene) color.RGBA {
	ray := s.Camera.PixelToRay(x, y)
	objects := s.Objects()
	for i := range objects {
		if objects[i].RayIntercept(ray) {
			return color.RGBA{R: 255, G: 255, B: 255, A: 255}
		}
	}
	return spectra.ToDisplay(s.Background)
}
