package source

import (
	"math"

	"rayx/lin"
	"rayx/optics"
	"rayx/rayx"
	"rayx/rng"
)

// Circle emits rays on concentric rings in direction space, the rings
// equally spaced in opening angle between MinOpeningAngle and
// MaxOpeningAngle, ported from CircleSource's field layout (m_numOfCircles,
// m_maxOpeningAngle, m_minOpeningAngle, m_deltaOpeningAngle).
type Circle struct {
	SourceWidth, SourceHeight, SourceDepth float64

	NumCircles                       int
	MinOpeningAngle, MaxOpeningAngle float64 // radians

	Energy       EnergySpec
	Polarization optics.Stokes
}

// New wires g into a rayx.Source with the given id and ray count.
func (g Circle) New(id, numRays int) rayx.Source {
	pol := g.Polarization
	if pol == (optics.Stokes{}) {
		pol = linearHorizontal
	}
	n := max1(g.NumCircles)
	delta := (g.MaxOpeningAngle - g.MinOpeningAngle) / float64(n)
	return rayx.Source{
		ID:      id,
		NumRays: numRays,
		Emit: func(pathIndex uint64, seed int64) rayx.Ray {
			r := baseRay(pathIndex, id, pol)
			ctr := rng.NewCounter(pathIndex, seed)

			ring := int(pathIndex) % n
			opening := g.MinOpeningAngle + float64(ring)*delta
			azimuth := ctr.Uniform() * 2 * math.Pi

			r.Position = lin.V3{
				X: gaussianOrUniform(&ctr, g.SourceWidth, false),
				Y: gaussianOrUniform(&ctr, g.SourceHeight, false),
				Z: gaussianOrUniform(&ctr, g.SourceDepth, false),
			}

			phi := opening * math.Cos(azimuth)
			psi := opening * math.Sin(azimuth)
			r.Direction = optics.SphericalToDirection(phi, psi)

			r.EnergyEV = g.Energy.Sample(&ctr)
			r.RNGCounter = uint64(ctr)
			return r
		},
	}
}
