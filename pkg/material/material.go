package material

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/spectra"
)

// Kind selects how a material scatters incoming light
type Kind int

const (
	// PBR reflects albedo·intensity with inverse-square and cosine falloff
	PBR Kind = iota
	// Lambert is an ideal diffuse reflector with BRDF albedo/π
	Lambert
)

// String returns the lower-case kind name
func (k Kind) String() string {
	switch k {
	case PBR:
		return "pbr"
	case Lambert:
		return "lambert"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts a kind name back to a Kind
func ParseKind(name string) (Kind, error) {
	switch name {
	case "", "pbr":
		return PBR, nil
	case "lambert":
		return Lambert, nil
	default:
		return PBR, fmt.Errorf("unknown material kind %q", name)
	}
}

// Material describes the surface response of an object.
// Metallic and Roughness are carried for PBR surfaces but do not yet
// change the direct-lighting result.
type Material struct {
	Kind      Kind
	Metallic  float32
	Roughness float32
	Albedo    spectra.Spectra
}

// NewPBR creates a physically based material with a white albedo
func NewPBR(metallic, roughness float32) Material {
	return NewPBRWithAlbedo(metallic, roughness, spectra.Constant(1, spectra.Flux))
}

// NewPBRWithAlbedo creates a physically based material with an explicit albedo
func NewPBRWithAlbedo(metallic, roughness float32, albedo spectra.Spectra) Material {
	return Material{
		Kind:      PBR,
		Metallic:  metallic,
		Roughness: roughness,
		Albedo:    albedo,
	}
}

// NewLambert creates a diffuse material
func NewLambert(albedo spectra.Spectra) Material {
	return Material{Kind: Lambert, Albedo: albedo}
}

// CosTheta returns the cosine of the angle between omega and normal.
// Neither vector has to be normalized.
func CosTheta(omega, normal core.Vec3) float32 {
	return omega.Dot(normal) / (omega.Length() * normal.Length())
}

// RenderingEquation returns the light leaving point toward the viewer due to a
// single light with the given radiant intensity. toLight runs from the surface
// point to the light and its length is the light distance.
//
// A light behind the surface contributes a black spectrum.
func (m Material) RenderingEquation(point, toLight, toViewer, normal core.Vec3, intensity spectra.Spectra) spectra.Spectra {
	cos := CosTheta(toLight, normal)
	if cos < 0 {
		return spectra.Black(intensity.Unit)
	}

	albedo := m.Albedo
	if m.Kind == Lambert {
		albedo = albedo.Scale(1 / math32.Pi)
	}

	attenuation := cos / toLight.LengthSquared()
	return albedo.Mul(intensity).Scale(attenuation)
}
