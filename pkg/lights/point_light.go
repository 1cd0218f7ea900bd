package lights

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/spectra"
)

// LightType identifies a light implementation
type LightType string

const (
	LightTypePoint LightType = "point"
)

// Light interface for sources used in direct lighting
type Light interface {
	Type() LightType

	// Location returns the world position of the light
	Location() core.Vec3

	// RadiantIntensity returns the intensity emitted toward apex, in W/sr
	RadiantIntensity(apex core.Vec3) spectra.Spectra
}

// PointLight radiates its flux uniformly in every direction
type PointLight struct {
	Position    core.Vec3
	Orientation core.Orientation
	RadiantFlux spectra.Spectra
}

// NewPointLight creates a point light emitting flux from position
func NewPointLight(position core.Vec3, flux spectra.Spectra) *PointLight {
	return &PointLight{
		Position:    position,
		RadiantFlux: flux,
	}
}

// Type implements the Light interface
func (p *PointLight) Type() LightType {
	return LightTypePoint
}

// Location implements the Light interface
func (p *PointLight) Location() core.Vec3 {
	return p.Position
}

// RadiantIntensity returns flux/4π regardless of apex. Scaling keeps the
// flux's unit tag.
func (p *PointLight) RadiantIntensity(apex core.Vec3) spectra.Spectra {
	return p.RadiantFlux.Scale(1 / (4 * math32.Pi))
}
