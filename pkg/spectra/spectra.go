package spectra

import (
	"fmt"
	"strings"
)

// Sampling of the visible range
const (
	MinWavelength = 380 // nm, first sample
	MaxWavelength = 780 // nm, exclusive
	SampleStep    = 10  // nm between samples
	SampleCount   = (MaxWavelength - MinWavelength) / SampleStep
)

// RadiometricUnit tags what a spectrum measures
type RadiometricUnit int

const (
	Flux       RadiometricUnit = iota // W
	Intensity                         // W/sr
	Irradiance                        // W/m²
	Radiance                          // W/sr/m²
)

// String returns the lower-case unit name
func (u RadiometricUnit) String() string {
	switch u {
	case Flux:
		return "flux"
	case Intensity:
		return "intensity"
	case Irradiance:
		return "irradiance"
	case Radiance:
		return "radiance"
	default:
		return fmt.Sprintf("RadiometricUnit(%d)", int(u))
	}
}

// ParseUnit converts a unit name back to a RadiometricUnit
func ParseUnit(name string) (RadiometricUnit, error) {
	switch strings.ToLower(name) {
	case "", "flux":
		return Flux, nil
	case "intensity":
		return Intensity, nil
	case "irradiance":
		return Irradiance, nil
	case "radiance":
		return Radiance, nil
	default:
		return Flux, fmt.Errorf("unknown radiometric unit %q", name)
	}
}

// Spectra is a power distribution sampled every 10nm from 380nm to 770nm
type Spectra struct {
	Samples [SampleCount]float32
	Unit    RadiometricUnit
}

// Index returns the sample index holding wavelength nm.
// It panics when the wavelength lies outside the sampled range.
func Index(wavelength float32) int {
	if wavelength < MinWavelength || wavelength >= MaxWavelength {
		panic(fmt.Sprintf("wavelength %vnm outside sampled range [%d, %d)", wavelength, MinWavelength, MaxWavelength))
	}
	return (int(wavelength) - MinWavelength) / SampleStep
}

// Wavelength returns the wavelength in nm of sample i
func Wavelength(i int) float32 {
	return float32(MinWavelength + i*SampleStep)
}

// Black returns a spectrum with every sample zero
func Black(unit RadiometricUnit) Spectra {
	return Spectra{Unit: unit}
}

// Constant returns a spectrum with every sample set to value
func Constant(value float32, unit RadiometricUnit) Spectra {
	s := Spectra{Unit: unit}
	for i := range s.Samples {
		s.Samples[i] = value
	}
	return s
}

// Monochromatic returns a spectrum that is zero except at one wavelength
func Monochromatic(wavelength, value float32, unit RadiometricUnit) Spectra {
	s := Black(unit)
	s.SetFromWavelength(wavelength, value)
	return s
}

// FromWavelength returns the sample covering wavelength
func (s Spectra) FromWavelength(wavelength float32) float32 {
	return s.Samples[Index(wavelength)]
}

// SetFromWavelength overwrites the sample covering wavelength
func (s *Spectra) SetFromWavelength(wavelength, value float32) {
	s.Samples[Index(wavelength)] = value
}

// SampleWidth returns the band of wavelengths in nm that a single sample covers
func (s Spectra) SampleWidth() float32 {
	return SampleStep
}

// Total returns the sum of all samples
func (s Spectra) Total() float32 {
	var total float32
	for _, v := range s.Samples {
		total += v
	}
	return total
}

// Luminance weights the samples by the luminous efficiency curve normalized to 1 at 555nm
func (s Spectra) Luminance() float32 {
	return weightedSum(s, &luminousEfficiency)
}

// Photopic weights the samples by the photopic luminous efficacy in lm/W
func (s Spectra) Photopic() float32 {
	return weightedSum(s, &photopicConversion)
}

// IsBlack reports whether every sample is zero
func (s Spectra) IsBlack() bool {
	for _, v := range s.Samples {
		if v != 0 {
			return false
		}
	}
	return true
}

// Scale multiplies every sample by f, keeping the receiver's unit
func (s Spectra) Scale(f float32) Spectra {
	for i := range s.Samples {
		s.Samples[i] *= f
	}
	return s
}

// Mul multiplies sample by sample. The result carries rhs's unit.
func (s Spectra) Mul(rhs Spectra) Spectra {
	out := Spectra{Unit: rhs.Unit}
	for i := range out.Samples {
		out.Samples[i] = rhs.Samples[i] * s.Samples[i]
	}
	return out
}

// Add sums sample by sample. The result carries rhs's unit.
func (s Spectra) Add(rhs Spectra) Spectra {
	out := Spectra{Unit: rhs.Unit}
	for i := range out.Samples {
		out.Samples[i] = rhs.Samples[i] + s.Samples[i]
	}
	return out
}

func weightedSum(s Spectra, weights *[SampleCount]float32) float32 {
	var sum float32
	for i, w := range weights {
		sum += w * s.Samples[i]
	}
	return sum
}
