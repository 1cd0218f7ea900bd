package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/transform"
)

// Lens models the optics in front of the sensor
type Lens struct {
	Aperture      float32 // f-number, currently unused
	FocalLength   float32 // mm
	FocusDistance float32 // m, currently unused
}

// DefaultLens returns a 50mm lens
func DefaultLens() Lens {
	return Lens{
		Aperture:      12,
		FocalLength:   50,
		FocusDistance: 20,
	}
}

// Sensor models the image plane
type Sensor struct {
	Width         float32 // mm
	HorizontalRes int
	VerticalRes   int
}

// DefaultSensor returns a full-frame 36mm sensor at 1500x1000
func DefaultSensor() Sensor {
	return Sensor{
		Width:         36,
		HorizontalRes: 1500,
		VerticalRes:   1000,
	}
}

// Height returns the sensor height in mm implied by the resolution
func (s Sensor) Height() float32 {
	return float32(s.VerticalRes) / float32(s.HorizontalRes) * s.Width
}

// AspectRatio returns width over height
func (s Sensor) AspectRatio() float32 {
	return s.Width / s.Height()
}

// Pixels returns the number of photosites
func (s Sensor) Pixels() int {
	return s.HorizontalRes * s.VerticalRes
}

// Area returns the sensor area in mm²
func (s Sensor) Area() float32 {
	return s.Width * s.Height()
}

// PixelArea returns the area of one pixel in mm²
func (s Sensor) PixelArea() float32 {
	return s.Area() / float32(s.Pixels())
}

// Camera is a pinhole camera looking down -z
type Camera struct {
	Position     core.Vec3
	Lens         Lens
	Sensor       Sensor
	Near         float32
	Far          float32
	ExposureTime float32 // seconds
}

// DefaultCamera returns a camera at the origin with the default lens and sensor
func DefaultCamera() Camera {
	return NewCamera(core.Origin, DefaultLens(), DefaultSensor())
}

// NewCamera creates a camera with default clipping planes and a one second exposure
func NewCamera(position core.Vec3, lens Lens, sensor Sensor) Camera {
	return Camera{
		Position:     position,
		Lens:         lens,
		Sensor:       sensor,
		Near:         0.1,
		Far:          1e6,
		ExposureTime: 1,
	}
}

// HorizontalFOV returns the horizontal field of view in degrees
func (c Camera) HorizontalFOV() float32 {
	return mgl32.RadToDeg(2 * math32.Atan(c.Sensor.Width/(2*c.Lens.FocalLength)))
}

// VerticalFOV returns the vertical field of view in degrees
func (c Camera) VerticalFOV() float32 {
	return mgl32.RadToDeg(2 * math32.Atan(c.Sensor.Height()/(2*c.Lens.FocalLength)))
}

// FrustumSolidAngle returns the solid angle seen through the lens in steradians,
// treating the frustum as a rectangular pyramid with its apex at the pinhole
func (c Camera) FrustumSolidAngle() float32 {
	a := c.Sensor.Width
	b := c.Sensor.Height()
	h := c.Lens.FocalLength
	return 4 * math32.Asin(a*b/math32.Sqrt((a*a+4*h*h)*(b*b+4*h*h)))
}

// PixelSolidAngle returns the average solid angle subtended by one pixel.
// Pixels near the edge subtend less; this ignores that.
func (c Camera) PixelSolidAngle() float32 {
	return c.FrustumSolidAngle() / float32(c.Sensor.Pixels())
}

// PixelToRay returns the primary ray through the centre of pixel (x, y).
// Row 0 is the top of the image.
func (c Camera) PixelToRay(x, y int) core.Ray {
	horizontal := (float32(x)+0.5)/float32(c.Sensor.HorizontalRes) - 0.5
	vertical := (float32(y)+0.5)/float32(c.Sensor.VerticalRes) - 0.5

	// Image rows grow downward, camera space grows upward
	vertical *= -1
	vertical /= c.Sensor.AspectRatio()

	direction := core.NewVec3(horizontal, vertical, -c.Lens.FocalLength/c.Sensor.Width)
	return core.NewRay(c.Position, direction)
}

// WorldToCamera moves world space so the camera sits at the origin
func (c Camera) WorldToCamera() transform.Transform {
	return transform.Translation(c.Position.Negate())
}

// CameraToScreen projects camera space onto pixel coordinates
func (c Camera) CameraToScreen() transform.Transform {
	return transform.Compile([]transform.Transform{
		transform.Projection(c.HorizontalFOV()),
		transform.Display(c.Sensor.AspectRatio(), c.Sensor.HorizontalRes, c.Sensor.VerticalRes),
	})
}

// ViewTransforms returns the ordered world-to-screen chain
func (c Camera) ViewTransforms() []transform.Transform {
	return []transform.Transform{
		c.WorldToCamera(),
		transform.Projection(c.HorizontalFOV()),
		transform.Display(c.Sensor.AspectRatio(), c.Sensor.HorizontalRes, c.Sensor.VerticalRes),
	}
}
