package optics

import "math/cmplx"

// Snell returns the complex transmission angle cosine for light travelling
// from a medium of index n1 into one of index n2, given the cosine of the
// incidence angle, via the complex form of Snell's law. Ported from
// Efficiency.cpp's snell.
func Snell(cosIncidence complex128, n1, n2 complex128) complex128 {
	sinIncidence := cmplx.Sqrt(1 - cosIncidence*cosIncidence)
	sinTrans := (n1 / n2) * sinIncidence
	return cmplx.Sqrt(1 - sinTrans*sinTrans)
}

// Fresnel returns the complex s- and p-polarised reflection amplitudes for
// an interface between n1 and n2, given the cosines of the incidence and
// transmission angles. Ported from Efficiency.cpp's fresnel.
func Fresnel(cosI, cosT complex128, n1, n2 complex128) (rs, rp complex128) {
	rs = (n1*cosI - n2*cosT) / (n1*cosI + n2*cosT)
	rp = (n2*cosI - n1*cosT) / (n2*cosI + n1*cosT)
	return rs, rp
}

// ReflectAmplitudes computes the s/p reflection amplitudes for a ray hitting
// a surface with the given complex refractive index (vacuum to material),
// at incidence angle cosine cosIncidence.
func ReflectAmplitudes(cosIncidence float64, index complex128) (rs, rp complex128) {
	n1 := complex(1, 0)
	n2 := index
	ci := complex(cosIncidence, 0)
	ct := Snell(ci, n1, n2)
	return Fresnel(ci, ct, n1, n2)
}

// PhaseDifference returns the phase difference (in radians) between the s
// and p reflection amplitudes, ported from Efficiency.cpp's
// phase_difference.
func PhaseDifference(rs, rp complex128) float64 {
	return cmplx.Phase(rp) - cmplx.Phase(rs)
}
