// Package behave applies an optical element's behaviour to a ray that has
// just collided with it, mirroring the Mirror/Grating/Slit/RZP/ImagePlane/
// Crystal/Foil dispatch of Behave.cpp. Every function receives the ray
// already advanced to the hitpoint in element-local coordinates and the
// collision's local surface normal, and returns the ray with its direction,
// field, and EventType updated.
package behave

import (
	"math"

	"rayx/collide"
	"rayx/lin"
	"rayx/material"
	"rayx/optics"
	"rayx/rng"
)

// v3 wraps a plain [3]float64 as a lin.V3 for calls into package optics.
func v3(a [3]float64) lin.V3 { return lin.V3{X: a[0], Y: a[1], Z: a[2]} }

// hvlam converts a photon energy in eV to its vacuum wavelength in nm, the
// inverse of optics.EnergyEV, used throughout behaviour dispatch the way
// Helper.cpp's hvlam is used throughout Behave.cpp.
func hvlam(energyEV float64) float64 {
	if energyEV <= 0 {
		return 0
	}
	return optics.WavelengthNM(energyEV)
}

// reflect mirrors direction d about unit normal n: d' = d - 2*(d.n)*n.
func reflect(d, n [3]float64) [3]float64 {
	dot := d[0]*n[0] + d[1]*n[1] + d[2]*n[2]
	return [3]float64{
		d[0] - 2*dot*n[0],
		d[1] - 2*dot*n[1],
		d[2] - 2*dot*n[2],
	}
}

// incidenceAngleCos returns cos(theta) of the angle between -direction and
// normal, the cosine Efficiency.cpp's fresnel/snell pair consumes directly
// (no inverse trig needed).
func incidenceAngleCos(dir, normal [3]float64) float64 {
	dot := dir[0]*normal[0] + dir[1]*normal[1] + dir[2]*normal[2]
	return -dot
}

// Outcome is what a behaviour call reports beyond the mutated ray fields the
// caller already owns: whether the ray terminated, and if so why.
type Outcome struct {
	Terminated bool
	EventType  int // mirrors rayx.EventType without importing package rayx (package trace imports both and translates between them).
}

const (
	EventActive EventType = iota
	EventAbsorbed
	EventBeyondHorizon
	EventFatal
	EventTransmitted
)

// EventType is the small terminal-state enum behaviour dispatch reports;
// package trace translates it into rayx.EventType at the call site.
type EventType = int

// RayState is the subset of ray fields a behaviour reads and mutates,
// decoupled from package rayx's Ray type so behave need not import rayx
// (package trace calls into behave and converts between the two).
type RayState struct {
	Position  [3]float64
	Direction [3]float64
	EnergyEV  float64
	Field     [2]complex128
	Order     int
}

// Mirror reflects the ray and, unless the element is perfectly reflective
// (material == -2), applies Fresnel reflectance and a probabilistic
// absorption test, ported from Behave.cpp's behaveMirror.
func Mirror(r *RayState, normal [3]float64, azimuth float64, mat int, tables *material.Tables, ctr *rng.Counter) Outcome {
	cosI := incidenceAngleCos(r.Direction, normal)
	r.Direction = reflect(r.Direction, normal)
	r.Order = 0

	if mat == -2 {
		return Outcome{EventType: EventActive}
	}

	idx, err := material.Lookup(tables, mat, r.EnergyEV)
	if err != nil {
		return Outcome{Terminated: true, EventType: EventFatal}
	}
	n := idx.Complex()
	rs, rp := optics.ReflectAmplitudes(cosI, n)
	delta := optics.PhaseDifference(rs, rp)

	stokes := optics.StokesFromJones(r.Field[0], r.Field[1])
	newStokes, absorbed := optics.UpdateStokes(stokes, azimuth, realMag(rs), realMag(rp), delta, ctr)
	r.Field = jonesFromStokes(newStokes, r.Field)

	if absorbed {
		return Outcome{Terminated: true, EventType: EventAbsorbed}
	}
	return Outcome{EventType: EventActive}
}

// realMag returns the reflectance (intensity) |amplitude|^2 used by the
// Mueller matrix construction, matching mullerMatrix's R_s/R_p convention.
func realMag(amp complex128) float64 {
	return real(amp)*real(amp) + imag(amp)*imag(amp)
}

// jonesFromStokes rescales the incoming Jones field so its Stokes
// parameters match updated, preserving the field's relative phase. Only S0
// (intensity) actually changes the amplitudes here; the rest of the Stokes
// vector is carried for output and the absorption test, consistent with
// §4.E.2's field-is-canonical design.
func jonesFromStokes(updated optics.Stokes, field [2]complex128) [2]complex128 {
	oldIntensity := real(field[0])*real(field[0]) + imag(field[0])*imag(field[0]) +
		real(field[1])*real(field[1]) + imag(field[1])*imag(field[1])
	if oldIntensity <= 0 || updated.S0 <= 0 {
		return [2]complex128{0, 0}
	}
	scale := math.Sqrt(updated.S0 / oldIntensity)
	return [2]complex128{field[0] * complex(scale, 0), field[1] * complex(scale, 0)}
}

// Grating diffracts the ray by the local VLS line density at the hitpoint,
// ported from Behave.cpp's behaveGrating.
func Grating(r *RayState, normal [3]float64, vls optics.VLSCoeffs, lineDensity0 float64, order int) Outcome {
	wl := hvlam(r.EnergyEV)
	delta := math.Asin(lin.Clamp(normal[2], -1, 1))
	n := optics.LineDensity(lineDensity0, vls, r.Position[2], delta)
	dz := optics.GratingDiffractionKick(wl, n, order)

	dir := v3(r.Direction)
	norm := v3(normal)
	out, beyond := optics.Refract2D(&dir, &norm, 0, dz)
	r.Order = order
	if beyond {
		return Outcome{Terminated: true, EventType: EventBeyondHorizon}
	}
	r.Direction = [3]float64{out.X, out.Y, out.Z}
	return Outcome{EventType: EventActive}
}

// RZP diffracts the ray according to a Reflection Zone Plate's local line
// density, with an optional 50% chance of falling back to ordinary
// reflection (zero order), ported from Behave.cpp's behaveRZP.
func RZP(r *RayState, normal [3]float64, params optics.RZPParams, ctr *rng.Counter) Outcome {
	wl := hvlam(r.EnergyEV)
	order := params.Order

	dx, dz := optics.RZPLineDensity(params, r.Position[0], r.Position[2])

	if params.AdditionalOrder && ctr.Bool() {
		order = 0
	}

	az := wl * dz * float64(order) * 1e-6
	ax := wl * dx * float64(order) * 1e-6

	dir := v3(r.Direction)
	norm := v3(normal)
	out, beyond := optics.Refract2D(&dir, &norm, ax, az)
	r.Order = order
	if beyond {
		return Outcome{Terminated: true, EventType: EventBeyondHorizon}
	}
	r.Direction = [3]float64{out.X, out.Y, out.Z}
	return Outcome{EventType: EventActive}
}

// Slit absorbs rays outside the opening or inside the beamstop, otherwise
// applies Fraunhofer diffraction and passes the ray through, ported from
// Behave.cpp's behaveSlit. diffract computes the (dPhi, dPsi) angular
// perturbation for the opening's cutout kind; callers supply it because the
// sinc/Bessel sampling depends on rng draws outside this package's direct
// scope (package optics owns the distributions, package rng owns the draws).
func Slit(r *RayState, opening, beamstop collide.Cutout, diffract func(wavelengthNM float64) (dPhi, dPsi float64)) Outcome {
	if !opening.Contains(r.Position[0], r.Position[2]) || beamstop.Contains(r.Position[0], r.Position[2]) {
		return Outcome{Terminated: true, EventType: EventAbsorbed}
	}

	dir := v3(r.Direction)
	phi, psi := optics.DirectionToSpherical(&dir)
	wl := hvlam(r.EnergyEV)
	if wl > 0 {
		dPhi, dPsi := diffract(wl)
		phi += dPhi
		psi += dPsi
	}
	out := optics.SphericalToDirection(phi, psi)
	r.Direction = [3]float64{out.X, out.Y, out.Z}
	r.Order = 0
	return Outcome{EventType: EventActive}
}

// ImagePlane is a no-op on the ray; only the event is recorded, ported from
// Behave.cpp's behaveImagePlane.
func ImagePlane(r *RayState) Outcome {
	return Outcome{EventType: EventActive}
}

// FatalBraggPolicy mirrors rayx.CrystalBraggPolicy without an import cycle.
type FatalBraggPolicy int

const (
	BraggAbsorb FatalBraggPolicy = iota
	BraggBeyondHorizon
	BraggFatal
)

// Crystal computes the dynamical-diffraction reflection coefficient at the
// hitpoint and reflects the ray, ported from the Bragg/eta/R formulas of
// Crystal.h, with the behaviour-on-unrealisable-Bragg-angle policy resolved
// per the configured FatalBraggPolicy (§9).
func Crystal(r *RayState, normal [3]float64, offsetAngle, dSpacing2NM, unitCellVolumeNM3 float64, f0, fh, fhc complex128, order int, policy FatalBraggPolicy, ctr *rng.Counter) Outcome {
	wl := hvlam(r.EnergyEV)
	dir := v3(r.Direction)
	norm := v3(normal)
	theta := optics.Theta(&dir, &norm, offsetAngle)
	bragg := optics.BraggAngle(order, wl, dSpacing2NM)

	if bragg < 0 {
		switch policy {
		case BraggBeyondHorizon:
			return Outcome{Terminated: true, EventType: EventBeyondHorizon}
		case BraggFatal:
			return Outcome{Terminated: true, EventType: EventFatal}
		default:
			return Outcome{Terminated: true, EventType: EventAbsorbed}
		}
	}

	b := optics.AsymmetryFactor(bragg, offsetAngle)
	prefactor := optics.DiffractionPrefactor(wl, unitCellVolumeNM3)
	eta := optics.ComputeEta(theta, bragg, complex(prefactor, 0), complex(b, 0), f0, fh, fhc)
	refl := optics.ComputeR(eta, complex(b, 0), fh, fhc)

	amp := realMag(refl)
	stokes := optics.StokesFromJones(r.Field[0], r.Field[1])
	newStokes, absorbed := optics.UpdateStokes(stokes, 0, amp, amp, 0, ctr)
	r.Field = jonesFromStokes(newStokes, r.Field)

	r.Direction = reflect(r.Direction, normal)
	r.Order = order
	if absorbed {
		return Outcome{Terminated: true, EventType: EventAbsorbed}
	}
	return Outcome{EventType: EventActive}
}

// Foil transmits the ray through a thin film, applying Fresnel
// transmittance amplitudes to the s/p field, ported from §4.D.7.
func Foil(r *RayState, normal [3]float64, mat int, thicknessNM float64, tables *material.Tables) Outcome {
	idx, err := material.Lookup(tables, mat, r.EnergyEV)
	if err != nil {
		return Outcome{Terminated: true, EventType: EventFatal}
	}
	n := idx.Complex()
	cosI := incidenceAngleCos(r.Direction, normal)
	wl := hvlam(r.EnergyEV)

	ts, tp := optics.FoilTransmittance(cosI, n, thicknessNM, wl)
	r.Field[0] *= ts
	r.Field[1] *= tp
	return Outcome{Terminated: true, EventType: EventTransmitted}
}
