package optics

import (
	"math"
	"math/cmplx"
)

// FoilTransmittance returns the s- and p-polarised complex transmittance
// amplitudes for a thin film of the given complex refractive index and
// thickness, at the given incidence angle cosine and wavelength, per
// §4.D.7. It composes Snell's law and the Fresnel transmission amplitudes
// (1+r) at normal incidence into the film, ignoring multiple internal
// reflections (thin-film single-pass approximation).
func FoilTransmittance(cosIncidence float64, index complex128, thicknessNM, wavelengthNM float64) (ts, tp complex128) {
	n1 := complex(1, 0)
	n2 := index
	ci := complex(cosIncidence, 0)
	ct := Snell(ci, n1, n2)
	rs, rp := Fresnel(ci, ct, n1, n2)
	ts = complex(1, 0) + rs
	tp = complex(1, 0) + rp

	k0 := 2 * math.Pi / wavelengthNM
	phase := cmplx.Exp(complex(0, 1) * n2 * ct * complex(k0*thicknessNM, 0))
	return ts * phase, tp * phase
}
