package optics

import (
	"math"

	"rayx/rng"
)

// Stokes is a Stokes polarisation vector (S0,S1,S2,S3), derived from a Ray's
// Jones-style electric field rather than carried as its own ray field (the
// original carries a dedicated Stokes vector on Ray; this port derives it on
// demand from the complex field, per the Ray data model's preference for the
// Jones representation as canonical state).
type Stokes struct {
	S0, S1, S2, S3 float64
}

// StokesFromJones computes the Stokes parameters of a 2-component Jones
// field (Ex, Ey) in the local s/p basis.
func StokesFromJones(ex, ey complex128) Stokes {
	exc, eyc := real(ex)*real(ex)+imag(ex)*imag(ex), real(ey)*real(ey)+imag(ey)*imag(ey)
	cross := ex * cmplxConj(ey)
	return Stokes{
		S0: exc + eyc,
		S1: exc - eyc,
		S2: 2 * real(cross),
		S3: -2 * imag(cross),
	}
}

func cmplxConj(c complex128) complex128 { return complex(real(c), -imag(c)) }

// JonesFromStokes constructs a fully-polarised Jones field whose Stokes
// parameters equal s, the inverse of StokesFromJones. Used by package
// source to seed a ray's initial polarisation from a design Stokes vector
// (typically fully linear horizontal: S1=S0, S2=S3=0).
func JonesFromStokes(s Stokes) (ex, ey complex128) {
	a, b := (s.S0+s.S1)/2, (s.S0-s.S1)/2
	if a < 0 {
		a = 0
	}
	if b < 0 {
		b = 0
	}
	phi := 0.0
	if s.S2 != 0 || s.S3 != 0 {
		phi = math.Atan2(s.S3, s.S2)
	}
	ex = complex(math.Sqrt(a), 0)
	ey = complex(math.Sqrt(b)*math.Cos(phi), math.Sqrt(b)*math.Sin(phi))
	return ex, ey
}

// MuellerMatrix builds the 4x4 Müller matrix for a reflection with s/p
// intensity reflectances Rs, Rp (|r|^2) and phase difference delta, following
// Schäfers (2007) p.32, ported from UpdateStokes.cpp's mullerMatrix.
func MuellerMatrix(Rs, Rp, delta float64) [4][4]float64 {
	a := (Rs + Rp) / 2
	b := (Rs - Rp) / 2
	c := math.Sqrt(Rs*Rp) * math.Cos(delta)
	d := math.Sqrt(Rs*Rp) * math.Sin(delta)
	return [4][4]float64{
		{a, b, 0, 0},
		{b, a, 0, 0},
		{0, 0, c, d},
		{0, 0, -d, c},
	}
}

func mulM4Vec(m [4][4]float64, v [4]float64) [4]float64 {
	var out [4]float64
	for i := 0; i < 4; i++ {
		s := 0.0
		for j := 0; j < 4; j++ {
			s += m[i][j] * v[j]
		}
		out[i] = s
	}
	return out
}

// rotateStokes rotates a Stokes vector about the propagation axis by angle
// chi (forward when inverse is false, by -chi when inverse is true), the
// rot/inv_rot step of UpdateStokes.cpp's updateStokes.
func rotateStokes(s Stokes, chi float64, inverse bool) Stokes {
	if inverse {
		chi = -chi
	}
	c, si := math.Cos(chi), math.Sin(chi)
	return Stokes{
		S0: s.S0,
		S1: s.S1*c - s.S2*si,
		S2: s.S1*si + s.S2*c,
		S3: s.S3,
	}
}

// UpdateStokes rotates the incoming Stokes vector into the element's
// azimuthal frame, applies the reflection's Müller matrix, rotates back out,
// and probabilistically decides whether the ray should be considered
// absorbed based on the resulting intensity ratio S0'/S0, ported from
// UpdateStokes.cpp's updateStokes. absorbed is true when the draw falls
// outside the surviving intensity fraction.
func UpdateStokes(s Stokes, azimuth float64, Rs, Rp, delta float64, ctr *rng.Counter) (out Stokes, absorbed bool) {
	rotated := rotateStokes(s, azimuth, false)
	m := MuellerMatrix(Rs, Rp, delta)
	v := mulM4Vec(m, [4]float64{rotated.S0, rotated.S1, rotated.S2, rotated.S3})
	out = rotateStokes(Stokes{S0: v[0], S1: v[1], S2: v[2], S3: v[3]}, azimuth, true)
	if s.S0 <= 0 {
		return out, true
	}
	survival := out.S0 / s.S0
	if survival >= 1 {
		return out, false
	}
	return out, ctr.Uniform() > survival
}
