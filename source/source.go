// Package source generates the initial rays at the head of a beamline
// (§4.G): Point, Matrix, Dipole, Pixel, Circle and simple Undulator
// sources. Every generator is a plain struct whose New method wires it into
// a rayx.Source, whose Emit closure produces one rayx.Ray per path index.
package source

import (
	"math"

	"rayx/optics"
	"rayx/rayx"
	"rayx/rng"
)

// EnergySpec picks a photon energy per ray according to one of the four
// distributions named in §4.G.
type EnergySpec struct {
	Distribution rayx.EnergyDistribution

	// HardEdge: uniform in [CenterEV-LineWidthEV/2, CenterEV+LineWidthEV/2].
	// SoftEdge: Gaussian with mean CenterEV, sigma LineWidthEV.
	CenterEV    float64
	LineWidthEV float64

	// SeparateEnergies / ListFromFile: a discrete set, drawn uniformly.
	Energies []float64
}

// Sample draws one photon energy, advancing ctr.
func (e EnergySpec) Sample(ctr *rng.Counter) float64 {
	switch e.Distribution {
	case rayx.SoftEdge:
		return ctr.Normal(e.CenterEV, e.LineWidthEV)
	case rayx.SeparateEnergies, rayx.ListFromFile:
		if len(e.Energies) == 0 {
			return e.CenterEV
		}
		i := int(ctr.Uniform() * float64(len(e.Energies)))
		if i >= len(e.Energies) {
			i = len(e.Energies) - 1
		}
		return e.Energies[i]
	default: // HardEdge
		return e.CenterEV + (ctr.Uniform()-0.5)*e.LineWidthEV
	}
}

// linearHorizontal is the default design polarisation most light sources
// start fully polarised along the horizontal (s) axis.
var linearHorizontal = optics.Stokes{S0: 1, S1: 1, S2: 0, S3: 0}

// seedField returns the initial Jones field for a ray, fully polarised per
// pol (S0 is normalised to 1 since only the field's orientation matters at
// emission; intensity bookkeeping happens via Stokes derived downstream).
func seedField(pol optics.Stokes) [2]complex128 {
	if pol.S0 > 0 {
		pol = optics.Stokes{S0: 1, S1: pol.S1 / pol.S0, S2: pol.S2 / pol.S0, S3: pol.S3 / pol.S0}
	}
	ex, ey := optics.JonesFromStokes(pol)
	return [2]complex128{ex, ey}
}

// gaussianOrUniform draws a spatial/angular offset from either a Gaussian
// (hard==false) or a uniform (hard==true) distribution over [-extent/2,
// extent/2] / sigma=extent, matching the point source's per-axis switch.
func gaussianOrUniform(ctr *rng.Counter, extent float64, hard bool) float64 {
	if extent == 0 {
		return 0
	}
	if hard {
		return (ctr.Uniform() - 0.5) * extent
	}
	return ctr.Normal(0, extent)
}

// baseRay fills the fields every generator shares; callers set Position,
// Direction and EnergyEV from ctr afterward and store ctr back on return.
func baseRay(pathIndex uint64, sourceID int, pol optics.Stokes) rayx.Ray {
	return rayx.Ray{
		Field:     seedField(pol),
		PathID:    pathIndex,
		SourceID:  sourceID,
		EventType: rayx.Emitted,
	}
}
