package source

import (
	"math"

	"rayx/lin"
	"rayx/optics"
	"rayx/rayx"
	"rayx/rng"
)

// electronRestMassEV is the electron rest energy, used to convert the
// storage ring's electron energy into a Lorentz factor.
const electronRestMassEV = 510998.95

// Dipole is a bending-magnet source: a Schwinger-spectrum energy
// distribution (drawn from Energy, typically centred on CriticalEnergyEV)
// combined with the analytic Schwinger vertical angular density, evaluated
// via the modified Bessel functions K_{1/3} and K_{2/3}, ported from the
// "Dipole source" entry of §4.G.
type Dipole struct {
	SourceWidth, SourceHeight, SourceDepth float64
	HorDivergence                          float64 // horizontal acceptance, radians, hard-edge

	ElectronEnergyGeV float64
	CriticalEnergyEV  float64

	Energy       EnergySpec
	Polarization optics.Stokes
}

// schwingerAngular returns the (unnormalised) Schwinger vertical angular
// flux density at photon-energy ratio y = E/Ec and vertical angle psi
// (radians), following the standard bending-magnet formula:
//
//	d2F/dOmega ~ y^2 * (1+(gamma*psi)^2)^2 *
//	             [K_2/3(xi)^2 + (gamma*psi)^2/(1+(gamma*psi)^2) * K_1/3(xi)^2]
//	xi = (y/2) * (1+(gamma*psi)^2)^(3/2)
func schwingerAngular(y, gammaPsi float64) float64 {
	gp2 := gammaPsi * gammaPsi
	base := 1 + gp2
	xi := (y / 2) * math.Pow(base, 1.5)
	k23 := besselK(2.0/3.0, xi)
	k13 := besselK(1.0/3.0, xi)
	return y * y * base * base * (k23*k23 + gp2/base*k13*k13)
}

// samplePsi draws a vertical emission angle by rejection sampling against
// the Schwinger angular density, whose peak sits at psi=0.
func samplePsi(ctr *rng.Counter, y, gamma float64) float64 {
	if gamma <= 0 {
		return 0
	}
	maxPsi := 5 / gamma
	peak := schwingerAngular(y, 0)
	if peak <= 0 {
		return 0
	}
	for i := 0; i < 64; i++ {
		psi := (ctr.Uniform()*2 - 1) * maxPsi
		density := schwingerAngular(y, gamma*psi)
		if ctr.Uniform()*peak <= density {
			return psi
		}
	}
	return 0
}

// New wires g into a rayx.Source with the given id and ray count.
func (g Dipole) New(id, numRays int) rayx.Source {
	pol := g.Polarization
	if pol == (optics.Stokes{}) {
		pol = linearHorizontal
	}
	gamma := g.ElectronEnergyGeV * 1e9 / electronRestMassEV
	return rayx.Source{
		ID:      id,
		NumRays: numRays,
		Emit: func(pathIndex uint64, seed int64) rayx.Ray {
			r := baseRay(pathIndex, id, pol)
			ctr := rng.NewCounter(pathIndex, seed)

			r.Position = lin.V3{
				X: gaussianOrUniform(&ctr, g.SourceWidth, false),
				Y: gaussianOrUniform(&ctr, g.SourceHeight, false),
				Z: gaussianOrUniform(&ctr, g.SourceDepth, false),
			}

			energy := g.Energy.Sample(&ctr)
			y := 0.0
			if g.CriticalEnergyEV > 0 {
				y = energy / g.CriticalEnergyEV
			}
			psi := samplePsi(&ctr, y, gamma)
			phi := (ctr.Uniform() - 0.5) * g.HorDivergence
			r.Direction = optics.SphericalToDirection(phi, psi)

			r.EnergyEV = energy
			r.RNGCounter = uint64(ctr)
			return r
		},
	}
}
