package spectra

import "github.com/chewxy/math32"

// Physical constants in SI units
const (
	Planck       float32 = 6.62607015e-34 // J·s
	SpeedOfLight float32 = 299792458      // m/s
	Boltzmann    float32 = 1.380649e-23   // J/K
	Wien         float32 = 2.897771955e-3 // m·K
)

// PlancksLaw returns the spectral radiance of a blackbody at temperature
// kelvin for a wavelength in nm. The result is scaled by 1e-6 to keep
// visible-range values in a comfortable single-precision range.
func PlancksLaw(wavelength, temperature float32) float32 {
	lambda := wavelength * 1e-9
	lambda5 := lambda * lambda * lambda * lambda * lambda

	numerator := 2 * Planck * SpeedOfLight * SpeedOfLight / lambda5
	exponent := Planck * SpeedOfLight / (lambda * Boltzmann * temperature)

	return numerator * (1 / (math32.Exp(exponent) - 1)) * 1e-6
}

// PeakWavelength returns the wavelength in nm at which a blackbody at temperature peaks
func PeakWavelength(temperature float32) float32 {
	return Wien / temperature * 1e9
}

// BlackBody samples Planck's law at every wavelength
func BlackBody(temperature float32, unit RadiometricUnit) Spectra {
	s := Spectra{Unit: unit}
	for i := range s.Samples {
		s.Samples[i] = PlancksLaw(Wavelength(i), temperature)
	}
	return s
}

// NormalizedBlackBody returns a blackbody flux spectrum scaled so its samples sum to 1
func NormalizedBlackBody(temperature float32) Spectra {
	s := BlackBody(temperature, Flux)
	return s.Scale(1 / s.Total())
}
