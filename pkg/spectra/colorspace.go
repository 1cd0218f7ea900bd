package spectra

import (
	"image/color"

	"github.com/chewxy/math32"
)

// OutOfGamut is the display colour for spectra whose linear sRGB has a negative channel
var OutOfGamut = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// XYZ is a CIE 1931 tristimulus value
type XYZ struct {
	X, Y, Z float32
}

// XyY is a chromaticity plus luminance
type XyY struct {
	X, Y, Luminance float32
}

// LinearSRGB is an sRGB triple before the transfer curve. Channels may be negative.
type LinearSRGB struct {
	R, G, B float32
}

// ToXYZ integrates a spectrum against the colour matching functions
func ToXYZ(s Spectra) XYZ {
	return XYZ{
		X: weightedSum(s, &cieX),
		Y: weightedSum(s, &cieY),
		Z: weightedSum(s, &cieZ),
	}
}

// Chromaticity projects the tristimulus value onto the x+y+z=1 plane.
// Black has no chromaticity and yields NaN coordinates.
func (c XYZ) Chromaticity() XyY {
	sum := c.X + c.Y + c.Z
	return XyY{X: c.X / sum, Y: c.Y / sum, Luminance: c.Y}
}

// LinearSRGB converts to linear sRGB (D65) scaled by luminance
func (c XyY) LinearSRGB() LinearSRGB {
	x, y := c.X, c.Y
	z := 1 - x - y

	return LinearSRGB{
		R: (3.2404542*x - 1.5371385*y - 0.4985314*z) * c.Luminance,
		G: (-0.9692660*x + 1.8760108*y + 0.0415560*z) * c.Luminance,
		B: (0.0556434*x - 0.2040259*y + 1.0572252*z) * c.Luminance,
	}
}

// InGamut reports whether every channel is non-negative
func (c LinearSRGB) InGamut() bool {
	return !(c.R < 0 || c.G < 0 || c.B < 0)
}

// Display gamma-encodes and quantizes to 8 bits.
// Any negative channel produces OutOfGamut instead of a clamped colour.
func (c LinearSRGB) Display() color.RGBA {
	if !c.InGamut() {
		return OutOfGamut
	}
	return color.RGBA{
		R: quantize(Gamma(c.R)),
		G: quantize(Gamma(c.G)),
		B: quantize(Gamma(c.B)),
		A: 255,
	}
}

// Gamma applies the sRGB transfer curve
func Gamma(v float32) float32 {
	if v <= 0.0031308 {
		return 12.92 * v
	}
	return 1.055*math32.Pow(v, 1/2.4) - 0.055
}

// quantize maps [0, 1] to [0, 255], saturating above and sending NaN to 0
func quantize(v float32) uint8 {
	if math32.IsNaN(v) || v <= 0 {
		return 0
	}
	scaled := 255 * v
	if scaled >= 255 {
		return 255
	}
	return uint8(scaled)
}

// ToSRGB runs a spectrum through XYZ and xyY to linear sRGB
func ToSRGB(s Spectra) LinearSRGB {
	return ToXYZ(s).Chromaticity().LinearSRGB()
}

// ToDisplay converts a spectrum to an 8-bit display colour
func ToDisplay(s Spectra) color.RGBA {
	return ToSRGB(s).Display()
}

// BlackBodyChromaticity returns the xyY coordinates of a normalized blackbody
func BlackBodyChromaticity(temperature float32) XyY {
	return ToXYZ(NormalizedBlackBody(temperature)).Chromaticity()
}

// BlackBodySRGB returns the linear sRGB of a normalized blackbody
func BlackBodySRGB(temperature float32) LinearSRGB {
	return ToSRGB(NormalizedBlackBody(temperature))
}
