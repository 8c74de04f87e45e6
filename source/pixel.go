package source

import (
	"rayx/lin"
	"rayx/optics"
	"rayx/rayx"
	"rayx/rng"
)

// Pixel tiles the source plane into a PixelsX x PixelsZ grid and draws a
// uniformly random ray within a single pixel per path (the pixel selected
// cycling deterministically by path index, the position within it random),
// ported from the pixelated spatial distribution named in §4.G.
type Pixel struct {
	SourceWidth, SourceDepth float64
	PixelsX, PixelsZ         int

	HorDivergence, VerDivergence float64
	HardEdgeAngle                bool

	Energy       EnergySpec
	Polarization optics.Stokes
}

// New wires g into a rayx.Source with the given id and ray count.
func (g Pixel) New(id, numRays int) rayx.Source {
	pol := g.Polarization
	if pol == (optics.Stokes{}) {
		pol = linearHorizontal
	}
	px, pz := max1(g.PixelsX), max1(g.PixelsZ)
	pixelW, pixelD := g.SourceWidth/float64(px), g.SourceDepth/float64(pz)
	return rayx.Source{
		ID:      id,
		NumRays: numRays,
		Emit: func(pathIndex uint64, seed int64) rayx.Ray {
			r := baseRay(pathIndex, id, pol)
			ctr := rng.NewCounter(pathIndex, seed)

			idx := pathIndex % uint64(px*pz)
			ix := int(idx % uint64(px))
			iz := int(idx / uint64(px))

			x0 := -g.SourceWidth/2 + float64(ix)*pixelW
			z0 := -g.SourceDepth/2 + float64(iz)*pixelD
			r.Position = lin.V3{X: x0 + ctr.Uniform()*pixelW, Y: 0, Z: z0 + ctr.Uniform()*pixelD}

			phi := gaussianOrUniform(&ctr, g.HorDivergence, g.HardEdgeAngle)
			psi := gaussianOrUniform(&ctr, g.VerDivergence, g.HardEdgeAngle)
			r.Direction = optics.SphericalToDirection(phi, psi)

			r.EnergyEV = g.Energy.Sample(&ctr)
			r.RNGCounter = uint64(ctr)
			return r
		},
	}
}
