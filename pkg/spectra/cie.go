package spectra

// CIE 1931 2° standard observer colour matching functions, 380nm to 770nm
var (
	cieX = [SampleCount]float32{
		0.001368, 0.004243, 0.014310, 0.043510, 0.134380, 0.283900, 0.348280, 0.336200,
		0.290800, 0.195360, 0.095640, 0.032010, 0.004900, 0.009300, 0.063270, 0.165500,
		0.290400, 0.433450, 0.594500, 0.762100, 0.916300, 1.026300, 1.062200, 1.002600,
		0.854450, 0.642400, 0.447900, 0.283500, 0.164900, 0.087400, 0.046770, 0.022700,
		0.011359, 0.005790, 0.002899, 0.001440, 0.000690, 0.000332, 0.000166, 0.000083,
	}
	cieY = [SampleCount]float32{
		0.000039, 0.000120, 0.000396, 0.001210, 0.004000, 0.011600, 0.023000, 0.038000,
		0.060000, 0.090980, 0.139020, 0.208020, 0.323000, 0.503000, 0.710000, 0.862000,
		0.954000, 0.994950, 0.995000, 0.952000, 0.870000, 0.757000, 0.631000, 0.503000,
		0.381000, 0.265000, 0.175000, 0.107000, 0.061000, 0.032000, 0.017000, 0.008210,
		0.004102, 0.002091, 0.001047, 0.000520, 0.000249, 0.000120, 0.000060, 0.000030,
	}
	cieZ = [SampleCount]float32{
		0.006450, 0.020050, 0.067850, 0.207400, 0.645600, 1.385600, 1.747060, 1.772110,
		1.669200, 1.287640, 0.812950, 0.465180, 0.272000, 0.158200, 0.078250, 0.042160,
		0.020300, 0.008750, 0.003900, 0.002100, 0.001650, 0.001100, 0.000800, 0.000340,
		0.000190, 0.000050, 0.000020, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// Photopic luminous efficacy in lm/W
var photopicConversion = [SampleCount]float32{
	0.027, 0.082, 0.270, 0.826, 2.732, 7.923, 15.709, 25.954,
	40.980, 62.139, 94.951, 142.078, 220.609, 343.549, 484.930, 588.746,
	651.582, 679.551, 679.585, 650.216, 594.210, 517.031, 430.973, 343.549,
	260.223, 180.995, 119.525, 73.081, 41.663, 21.856, 11.611, 5.607,
	2.802, 1.428, 0.715, 0.355, 0.170, 0.082, 0.041, 0.020,
}

// Luminous efficiency, the photopic curve normalized to 1 at 555nm.
// It coincides with the CIE ȳ function.
var luminousEfficiency = cieY
