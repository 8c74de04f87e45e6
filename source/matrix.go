package source

import (
	"rayx/lin"
	"rayx/optics"
	"rayx/rayx"
	"rayx/rng"
)

// Matrix is a deterministic 4-D grid source (x, z, phi, psi), producing an
// even sampling rather than a random one, ported from MatrixSource's field
// layout (m_sourceWidth/Depth, m_horDivergence/m_verDivergence).
type Matrix struct {
	SourceWidth, SourceDepth     float64
	HorDivergence, VerDivergence float64 // radians, full range

	// GridX, GridZ, GridPhi, GridPsi are the per-axis sample counts. The
	// product need not equal NumRays exactly; the grid simply repeats
	// (wraps) once path_index exceeds one full pass.
	GridX, GridZ, GridPhi, GridPsi int

	Energy       EnergySpec
	Polarization optics.Stokes
}

// axisValue maps a 0-based grid index i of n evenly spaced samples across
// [-extent/2, extent/2] (n==1 maps to the centre).
func axisValue(i, n int, extent float64) float64 {
	if n <= 1 {
		return 0
	}
	step := extent / float64(n-1)
	return -extent/2 + float64(i)*step
}

// New wires g into a rayx.Source with the given id and ray count.
func (g Matrix) New(id, numRays int) rayx.Source {
	pol := g.Polarization
	if pol == (optics.Stokes{}) {
		pol = linearHorizontal
	}
	nx, nz, nphi, npsi := max1(g.GridX), max1(g.GridZ), max1(g.GridPhi), max1(g.GridPsi)
	return rayx.Source{
		ID:      id,
		NumRays: numRays,
		Emit: func(pathIndex uint64, seed int64) rayx.Ray {
			r := baseRay(pathIndex, id, pol)

			idx := pathIndex % uint64(nx*nz*nphi*npsi)
			ix := int(idx % uint64(nx))
			idx /= uint64(nx)
			iz := int(idx % uint64(nz))
			idx /= uint64(nz)
			iphi := int(idx % uint64(nphi))
			idx /= uint64(nphi)
			ipsi := int(idx % uint64(npsi))

			x := axisValue(ix, nx, g.SourceWidth)
			z := axisValue(iz, nz, g.SourceDepth)
			r.Position = lin.V3{X: x, Y: 0, Z: z}

			phi := axisValue(iphi, nphi, g.HorDivergence)
			psi := axisValue(ipsi, npsi, g.VerDivergence)
			r.Direction = optics.SphericalToDirection(phi, psi)

			ctr := rng.NewCounter(pathIndex, seed)
			r.EnergyEV = g.Energy.Sample(&ctr)
			r.RNGCounter = uint64(ctr)
			return r
		},
	}
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
