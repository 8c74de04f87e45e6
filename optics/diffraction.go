package optics

import (
	"math"

	"rayx/rng"
)

// sincHalfMaxX is where sinc(x)^2 = 0.5 (the half-power point of sin(x)/x),
// used to convert the sinc^2 diffraction lobe into a physical FWHM.
const sincHalfMaxX = 1.39155737

// RectFWHM returns the full width at half maximum, in radians, of the
// single-slit Fraunhofer diffraction pattern produced by a rectangular
// aperture edge of the given physical width (same length unit as
// wavelengthNM), following the standard small-angle sinc^2 envelope
// I(theta) ~ sinc^2(pi*width*sin(theta)/lambda) (§4.D.3, §8 scenario 2).
func RectFWHM(wavelengthNM, widthNM float64) float64 {
	if widthNM <= 0 {
		return 0
	}
	return 2 * sincHalfMaxX / math.Pi * wavelengthNM / widthNM
}

// SampleRectDiffraction draws one axis's Fraunhofer single-slit angular
// perturbation (radians) for a rectangular opening edge of the given
// physical width, via rng.Counter.SincSquared.
func SampleRectDiffraction(ctr *rng.Counter, wavelengthNM, widthNM float64) float64 {
	if widthNM <= 0 || wavelengthNM <= 0 {
		return 0
	}
	x := ctr.SincSquared(4)
	return x * wavelengthNM / (math.Pi * widthNM)
}

// SampleEllipticalDiffraction draws the 2-D Fraunhofer angular perturbation
// (dPhi, dPsi, radians) for an elliptical opening with the given physical
// diameters, via rng.Counter.AiryRadius for the radial component and a
// uniform azimuth, scaling the circular Airy pattern independently along
// each axis to approximate the elliptical aperture (§4.D.3, §4.F).
func SampleEllipticalDiffraction(ctr *rng.Counter, wavelengthNM, diameterXNM, diameterZNM float64) (dPhi, dPsi float64) {
	if wavelengthNM <= 0 {
		return 0, 0
	}
	radius := ctr.AiryRadius()
	azimuth := ctr.Uniform() * 2 * math.Pi
	cosA, sinA := math.Cos(azimuth), math.Sin(azimuth)
	radialToAngle := wavelengthNM / math.Pi
	if diameterXNM > 0 {
		dPhi = radius * cosA * radialToAngle / diameterXNM
	}
	if diameterZNM > 0 {
		dPsi = radius * sinA * radialToAngle / diameterZNM
	}
	return dPhi, dPsi
}
