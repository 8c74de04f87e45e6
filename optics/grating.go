package optics

import (
	"math"

	"rayx/lin"
)

// VLSCoeffs are the six variable-line-spacing polynomial coefficients
// (§3.2's VLS[6]) describing how line density varies with z across a
// grating surface.
type VLSCoeffs [6]float64

// LineDensity returns the effective line density N(z) at hit position z on a
// grating with design line density n0 and VLS coefficients vls, given the
// angle delta derived from the surface normal (cos(delta) factor), ported
// from LineDensity.cpp's vlsGrating.
func LineDensity(n0 float64, vls VLSCoeffs, z, delta float64) float64 {
	sum := 0.0
	zPow := 1.0
	for i := 0; i < 6; i++ {
		zPow *= z
		sum += float64(i+1) * vls[i] * zPow
	}
	return n0 * (1 + sum) * math.Cos(delta)
}

// Refract2D rotates direction into the local frame implied by normal, adds
// the tangential diffraction kick dz (line-density * wavelength * order
// scaled by 1e-6), and rotates back out, flagging beyondHorizon if the
// resulting direction cannot be normalised (y^2 < 0 in the local frame).
// Ported from Refrac.cpp's refrac2D, used by both Grating and RZP
// behaviours.
func Refract2D(dir, normal *lin.V3, dx, dz float64) (out lin.V3, beyondHorizon bool) {
	eps1 := math.Atan2(normal.X, normal.Y)
	del1 := math.Atan2(normal.Z, normal.Y)

	// rotate direction into the surface-aligned frame.
	x1 := dir.X*math.Cos(eps1) - dir.Y*math.Sin(eps1)
	y1 := dir.X*math.Sin(eps1) + dir.Y*math.Cos(eps1)
	z1 := dir.Z

	z2 := z1*math.Cos(del1) - y1*math.Sin(del1)

	xOut := x1 + dx
	zOut := z2 + dz
	ySq := 1 - xOut*xOut - zOut*zOut
	if ySq < 0 {
		return lin.V3{}, true
	}
	yOut := math.Sqrt(ySq)

	// rotate back out of the surface-aligned frame.
	z3 := zOut*math.Cos(-del1) - yOut*math.Sin(-del1)
	y3 := zOut*math.Sin(-del1) + yOut*math.Cos(-del1)

	x4 := xOut*math.Cos(-eps1) - y3*math.Sin(-eps1)
	y4 := xOut*math.Sin(-eps1) + y3*math.Cos(-eps1)

	out = lin.V3{X: x4, Y: y4, Z: z3}
	out.Unit()
	return out, false
}

// GratingDiffractionKick returns the tangential direction perturbation for a
// ray of the given wavelength diffracted at order into a grating of the
// given local line density, per §4.D.2: lambda*N*order*1e-6.
func GratingDiffractionKick(wavelengthNM, lineDensity float64, order int) float64 {
	return wavelengthNM * lineDensity * float64(order) * 1e-6
}

// ImageType enumerates the RZP imaging configurations of §4.D.4.
type ImageType int

const (
	Point2Point ImageType = iota
	Astigmatic2Astigmatic
	Point2HorizontalLine
	Point2HorizontalDivergentLine
)

// RZPParams are the design parameters of a Reflection Zone Plate element.
type RZPParams struct {
	Image               ImageType
	DesignWavelengthNM  float64
	Alpha, Beta         float64
	ArmLengthIn, ArmOut float64
	Order               int
	FresnelZOffset      float64
	AdditionalOrder     bool
}

// RZPLineDensity computes the local line densities Dx, Dz at hit position
// (x,z) on an RZP, following the image-type-dependent formula set ported
// from LineDensity.cpp's RZPLineDensity. The point-to-point geometry (common
// to all four image types, differing only in how the imaging foci are
// placed) is used as the base computation; the astigmatic/horizontal-line
// variants are expressed by substituting the relevant arm lengths, matching
// the structure of the original's branching.
func RZPLineDensity(p RZPParams, x, z float64) (dx, dz float64) {
	r1, r2 := p.ArmLengthIn, p.ArmOut
	switch p.Image {
	case Point2HorizontalLine, Point2HorizontalDivergentLine:
		r2 = math.Inf(1) // horizontal-line image: effectively infinite exit arm.
	case Astigmatic2Astigmatic:
		// both arms already carry independent sagittal/meridional radii in
		// ArmLengthIn/ArmOut for this configuration.
	case Point2Point:
	}

	zi := r1*math.Sin(p.Alpha) - z
	xi := x
	ziSq := r1*r1 - 2*r1*z*math.Sin(p.Alpha) + z*z
	var zm, xm, zmSq float64
	if math.IsInf(r2, 1) {
		zm = -z
		zmSq = z * z
	} else {
		zm = r2*math.Sin(p.Beta) - z
		zmSq = r2*r2 - 2*r2*z*math.Sin(p.Beta) + z*z
	}
	xm = x

	k := 1 / p.DesignWavelengthNM
	dz = k * (zi/math.Sqrt(ziSq+xi*xi) + zm/math.Sqrt(zmSq+xm*xm))
	dx = k * (xi/math.Sqrt(ziSq+xi*xi) + xm/math.Sqrt(zmSq+xm*xm))
	return dx, dz
}
