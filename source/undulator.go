package source

import (
	"math"

	"rayx/lin"
	"rayx/optics"
	"rayx/rayx"
	"rayx/rng"
)

// Undulator is a simple undulator source whose spatial and angular spread
// is a Gaussian envelope convolved from the electron beam's own sigma and
// the diffraction-limited photon beam sigma, ported from the "Simple
// undulator source" entry of §4.G. The diffraction sigmas follow the usual
// synchrotron-radiation estimate (Kim 1986):
//
//	sigma_r       = sqrt(2*lambda*Length) / (2*pi)
//	sigma_r_prime = sqrt(lambda / (2*Length))
type Undulator struct {
	ElectronSigmaX, ElectronSigmaY            float64 // m
	ElectronSigmaXPrime, ElectronSigmaYPrime  float64 // rad
	Length                                    float64 // undulator length, m
	WavelengthNM                              float64 // fundamental wavelength

	Energy       EnergySpec
	Polarization optics.Stokes
}

func quadSum(a, b float64) float64 { return math.Sqrt(a*a + b*b) }

// New wires g into a rayx.Source with the given id and ray count.
func (g Undulator) New(id, numRays int) rayx.Source {
	pol := g.Polarization
	if pol == (optics.Stokes{}) {
		pol = linearHorizontal
	}
	lambdaM := g.WavelengthNM * 1e-9
	sigmaR := math.Sqrt(2*lambdaM*g.Length) / (2 * math.Pi)
	sigmaRPrime := math.Sqrt(lambdaM / (2 * g.Length))

	sigmaX := quadSum(g.ElectronSigmaX, sigmaR)
	sigmaY := quadSum(g.ElectronSigmaY, sigmaR)
	sigmaXPrime := quadSum(g.ElectronSigmaXPrime, sigmaRPrime)
	sigmaYPrime := quadSum(g.ElectronSigmaYPrime, sigmaRPrime)

	return rayx.Source{
		ID:      id,
		NumRays: numRays,
		Emit: func(pathIndex uint64, seed int64) rayx.Ray {
			r := baseRay(pathIndex, id, pol)
			ctr := rng.NewCounter(pathIndex, seed)

			r.Position = lin.V3{X: ctr.Normal(0, sigmaX) * 1e3, Y: ctr.Normal(0, sigmaY) * 1e3, Z: 0}

			phi := ctr.Normal(0, sigmaXPrime)
			psi := ctr.Normal(0, sigmaYPrime)
			r.Direction = optics.SphericalToDirection(phi, psi)

			r.EnergyEV = g.Energy.Sample(&ctr)
			r.RNGCounter = uint64(ctr)
			return r
		},
	}
}
