package collide

import (
	"math"

	"rayx/lin"
	"rayx/rng"
)

// SlopeError holds six real slope-error parameters (§3.2): sagittal and
// meridional sigmas, one thermal amplitude and one thermal sigma, and a
// cylindrical bowing amplitude and radius, plus a Cylindrical flag. There
// is no second thermal sigma. Apply reads neither ThermalAmp nor
// CylindricalAmp. A zero-value SlopeError applies no perturbation.
type SlopeError struct {
	SagittalSigma   float64
	MeridionalSigma float64
	ThermalAmp      float64
	ThermalSigma    float64
	CylindricalAmp    float64
	CylindricalRadius float64
	Cylindrical       bool
}

// arcsecToRad converts an angle in arc-seconds to radians, matching
// ApplySlopeError.cpp's deg2rad(arcsec/3600).
func arcsecToRad(arcsec float64) float64 {
	return lin.Rad(arcsec / 3600)
}

// Apply perturbs normal by drawing two normal-distributed angles from the
// slope error's sagittal and meridional sigmas (plus thermal contribution)
// and rotating normal by them, ported from ApplySlopeError.cpp. If e is the
// zero value the normal is returned unchanged.
func (e *SlopeError) Apply(normal *lin.V3, ctr *rng.Counter) lin.V3 {
	if e == nil || (e.SagittalSigma == 0 && e.MeridionalSigma == 0 && e.ThermalSigma == 0) {
		return *normal
	}
	sigX := math.Sqrt(e.MeridionalSigma*e.MeridionalSigma + e.ThermalSigma*e.ThermalSigma)
	sigZ := e.SagittalSigma
	xArcsec := ctr.Normal(0, sigX)
	zArcsec := ctr.Normal(0, sigZ)
	xRad := arcsecToRad(xArcsec)
	zRad := arcsecToRad(zArcsec)
	if e.Cylindrical {
		return normalCylindrical(normal, xRad, zRad, e.CylindricalRadius)
	}
	return normalCartesian(normal, xRad, zRad)
}

// normalCartesian rotates normal by x_rad about Z and z_rad about X, the
// flat-slope-error case in ApplySlopeError.cpp.
func normalCartesian(n *lin.V3, xRad, zRad float64) lin.V3 {
	cx, sx := math.Cos(xRad), math.Sin(xRad)
	cz, sz := math.Cos(zRad), math.Sin(zRad)
	// rotate about Z by xRad
	x1 := n.X*cx - n.Y*sx
	y1 := n.X*sx + n.Y*cx
	z1 := n.Z
	// rotate about X by zRad
	y2 := y1*cz - z1*sz
	z2 := y1*sz + z1*cz
	r := lin.V3{X: x1, Y: y2, Z: z2}
	r.Unit()
	return r
}

// normalCylindrical applies the same two rotations after accounting for the
// cylindrical bowing radius, matching ApplySlopeError.cpp's cylindrical case.
func normalCylindrical(n *lin.V3, xRad, zRad, radius float64) lin.V3 {
	if radius == 0 {
		return normalCartesian(n, xRad, zRad)
	}
	bow := 1 / radius
	return normalCartesian(n, xRad+bow, zRad)
}
