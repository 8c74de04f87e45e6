package optics

import (
	"math"

	"rayx/lin"
)

// DirectionToSpherical converts a unit direction vector to (phi, psi)
// spherical angles, ported from SphericalCoords.cpp's
// directionToSphericalCoords.
func DirectionToSpherical(d *lin.V3) (phi, psi float64) {
	psi = math.Asin(lin.Clamp(d.Y, -1, 1))
	phi = math.Atan2(d.X, d.Z)
	return phi, psi
}

// SphericalToDirection is the inverse of DirectionToSpherical, ported from
// sphericalCoordsToDirection.
func SphericalToDirection(phi, psi float64) lin.V3 {
	cp := math.Cos(psi)
	return lin.V3{
		X: math.Sin(phi) * cp,
		Y: math.Sin(psi),
		Z: math.Cos(phi) * cp,
	}
}
