package source

import (
	"rayx/lin"
	"rayx/optics"
	"rayx/rayx"
	"rayx/rng"
)

// Point is a point source with independent per-axis spatial and angular
// distributions, each either Gaussian or hard-edge, ported from
// PointSource's field layout (m_sourceWidth/Height/Depth,
// m_horDivergence/m_verDivergence).
type Point struct {
	SourceWidth, SourceHeight, SourceDepth float64
	HardEdgeSpace                          bool // true: uniform; false: Gaussian

	HorDivergence, VerDivergence float64 // radians
	HardEdgeAngle                bool

	Energy       EnergySpec
	Polarization optics.Stokes
}

// New wires g into a rayx.Source with the given id and ray count.
func (g Point) New(id, numRays int) rayx.Source {
	pol := g.Polarization
	if pol == (optics.Stokes{}) {
		pol = linearHorizontal
	}
	return rayx.Source{
		ID:      id,
		NumRays: numRays,
		Emit: func(pathIndex uint64, seed int64) rayx.Ray {
			r := baseRay(pathIndex, id, pol)
			ctr := rng.NewCounter(pathIndex, seed)

			x := gaussianOrUniform(&ctr, g.SourceWidth, g.HardEdgeSpace)
			y := gaussianOrUniform(&ctr, g.SourceHeight, g.HardEdgeSpace)
			z := gaussianOrUniform(&ctr, g.SourceDepth, g.HardEdgeSpace)
			r.Position = lin.V3{X: x, Y: y, Z: z}

			phi := gaussianOrUniform(&ctr, g.HorDivergence, g.HardEdgeAngle)
			psi := gaussianOrUniform(&ctr, g.VerDivergence, g.HardEdgeAngle)
			r.Direction = optics.SphericalToDirection(phi, psi)

			r.EnergyEV = g.Energy.Sample(&ctr)
			r.RNGCounter = uint64(ctr)
			return r
		},
	}
}
