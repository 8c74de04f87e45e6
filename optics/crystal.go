package optics

import (
	"math"
	"math/cmplx"

	"rayx/lin"
)

// Theta returns the angle of incidence measured from the crystal planes
// (not from the surface normal), derived from the ray direction and surface
// normal plus a fixed offset angle, ported from Crystal.h's getTheta.
func Theta(dir, normal *lin.V3, offsetAngle float64) float64 {
	cosAngle := dir.Dot(normal)
	return math.Acos(lin.Clamp(cosAngle, -1, 1)) - math.Pi/2 + offsetAngle
}

// BraggAngle returns asin(order*wavelength/(2*dSpacing)), or -1 if the
// Bragg condition is not physically realisable (argument outside [-1,1]),
// ported from Crystal.h's getBraggAngle. Callers apply the configured
// CrystalBraggPolicy when this returns -1.
func BraggAngle(order int, wavelengthNM, dSpacing2NM float64) float64 {
	arg := float64(order) * wavelengthNM / dSpacing2NM
	if arg < -1 || arg > 1 {
		return -1
	}
	return math.Asin(arg)
}

// AsymmetryFactor returns sin(bragg-alpha)/sin(bragg+alpha), ported from
// Crystal.h's getAsymmetryFactor.
func AsymmetryFactor(bragg, alpha float64) float64 {
	return math.Sin(bragg-alpha) / math.Sin(bragg+alpha)
}

// DiffractionPrefactor returns r_e*lambda^2/(pi*unitCellVolume), ported from
// Crystal.h's getDiffractionPrefactor.
func DiffractionPrefactor(wavelengthNM, unitCellVolumeNM3 float64) float64 {
	return ElectronRadiusNM * wavelengthNM * wavelengthNM / (math.Pi * unitCellVolumeNM3)
}

// ComputeEta computes the complex deviation parameter eta following
// Batterman & Cole eq. 32, ported from Crystal.h's computeEta. F0, FH, FHC
// are the structure factors (F0, F_H, F_H-bar) carried on a Crystal
// behaviour.
func ComputeEta(theta, bragg float64, prefactor, b complex128, F0, FH, FHC complex128) complex128 {
	deltaTheta := complex(theta-bragg, 0)
	sinTwoTheta := complex(math.Sin(2*bragg), 0)
	numerator := b*deltaTheta*sinTwoTheta + prefactor*F0*(complex(1, 0)-b)/2
	denominator := cmplx.Sqrt(b) * prefactor * cmplx.Sqrt(FH*FHC)
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// ComputeR computes the complex reflection coefficient from eta, following
// Batterman & Cole eq. 103, ported from Crystal.h's computeR. The branch on
// sign of Re(eta) selects which root keeps |R| <= 1.
func ComputeR(eta complex128, b, FH, FHC complex128) complex128 {
	root := cmplx.Sqrt(eta*eta - 1)
	var sel complex128
	if real(eta) >= 0 {
		sel = eta - root
	} else {
		sel = eta + root
	}
	ratio := cmplx.Sqrt(FH / FHC)
	bRatio := cmplx.Sqrt(complex(1, 0) / b)
	return sel * ratio * bRatio
}
