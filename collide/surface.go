// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package collide finds the point where a ray meets an optical element's
// surface, in the element's local coordinate frame. It is separate from
// behaviour dispatch: collide only answers "where, and along which normal."
package collide

import (
	"math"

	"rayx/lin"
)

// Surface is a tagged union of the four surface shapes an element can
// carry. Exactly one of the embedded pointers is non-nil.
type Surface struct {
	Plane   *Plane
	Quadric *Quadric
	Toroid  *Toroid
	Cubic   *Cubic
}

// Plane is the trivial surface: the element's local XZ plane (y=0).
type Plane struct{}

// Quadric carries the icurv sign and the ten general quadric coefficients
// a11..a44 (Ax2+By2+Cz2+Dxy+Eyz+Fxz+Gx+Hy+Iz+J = 0 in the naming below).
type Quadric struct {
	Icurv                               float64
	A11, A12, A13, A14                  float64
	A22, A23, A24                       float64
	A33, A34                            float64
	A44                                 float64
}

// Toroid is a torus surface with long and short radii. Convex sets the sign
// of the normal returned when the hit lies on the torus axis (x=z=0); the
// Newton iteration always starts at s=0 and does not choose between roots.
type Toroid struct {
	LongRadius  float64
	ShortRadius float64
	Convex      bool
}

// Cubic is a Quadric pre-rotated by Psi radians in the YZ plane, plus six
// cubic coefficients b1..b6 (only the quadric term is solved for the
// collision point; the cubic term is reserved for future refinement, as in
// the original RAY-UI derivation this was ported from).
type Cubic struct {
	Quadric
	B1, B2, B3, B4, B5, B6 float64
	Psi                    float64
}

const newtonTolerance = 0.0001
const newtonMaxIterations = 50

// intersect finds the nearest forward intersection of ray (pos,dir) with
// the surface, in element-local coordinates. ok is false on a miss.
func (s *Surface) intersect(pos, dir *lin.V3) (hit, normal lin.V3, ok bool) {
	switch {
	case s.Plane != nil:
		return intersectPlane(pos, dir)
	case s.Quadric != nil:
		return intersectQuadric(s.Quadric, pos, dir)
	case s.Toroid != nil:
		return intersectToroid(s.Toroid, pos, dir)
	case s.Cubic != nil:
		return intersectCubic(s.Cubic, pos, dir)
	}
	return hit, normal, false
}

// intersectPlane intersects with the element-local XZ plane (y=0).
// Grounded on the ray-plane algorithm in caster.go's castRayPlane, adapted
// to a fixed axis-aligned plane instead of an arbitrary world-transformed
// one, matching the original's findCollisionInElementCoords plane case.
func intersectPlane(pos, dir *lin.V3) (hit, normal lin.V3, ok bool) {
	if lin.AeqZ(dir.Y) {
		return hit, normal, false
	}
	t := -pos.Y / dir.Y
	if t < 0 {
		return hit, normal, false
	}
	hit = lin.V3{X: pos.X + dir.X*t, Y: 0, Z: pos.Z + dir.Z*t}
	sign := 1.0
	if dir.Y > 0 {
		sign = -1.0
	}
	normal = lin.V3{X: 0, Y: sign, Z: 0}
	return hit, normal, true
}

// intersectQuadric solves the general quadric directly for the ray parameter
// s, then picks the icurv-selected root. No coordinate axis is selected: the
// quadratic is always formed in s, whatever the direction's largest
// component. Ported from getQuadricCollision.
func intersectQuadric(q *Quadric, pos, dir *lin.V3) (hit, normal lin.V3, ok bool) {
	a, b, c := quadricCoeffs(q, pos, dir)
	disc := b*b - a*c
	if disc < 0 {
		return hit, normal, false
	}
	sq := math.Sqrt(disc)
	var s float64
	if a == 0 {
		if b == 0 {
			return hit, normal, false
		}
		s = -c / (2 * b)
	} else if q.Icurv > 0 {
		s = (-b + sq) / a
	} else {
		s = (-b - sq) / a
	}
	if s < 0 {
		return hit, normal, false
	}
	hit = lin.V3{X: pos.X + dir.X*s, Y: pos.Y + dir.Y*s, Z: pos.Z + dir.Z*s}
	normal = quadricGradient(q, &hit)
	return hit, normal, true
}

// quadricCoeffs expands the general quadric F(p+s*d)=0 into a*s^2+2*b*s+c=0.
func quadricCoeffs(q *Quadric, p, d *lin.V3) (a, b, c float64) {
	a = q.A11*d.X*d.X + q.A22*d.Y*d.Y + q.A33*d.Z*d.Z +
		2*(q.A12*d.X*d.Y+q.A13*d.X*d.Z+q.A23*d.Y*d.Z)
	b = q.A11*p.X*d.X + q.A22*p.Y*d.Y + q.A33*p.Z*d.Z +
		q.A12*(p.X*d.Y+p.Y*d.X) + q.A13*(p.X*d.Z+p.Z*d.X) + q.A23*(p.Y*d.Z+p.Z*d.Y) +
		q.A14*d.X + q.A24*d.Y + q.A34*d.Z
	c = q.A11*p.X*p.X + q.A22*p.Y*p.Y + q.A33*p.Z*p.Z +
		2*(q.A12*p.X*p.Y+q.A13*p.X*p.Z+q.A23*p.Y*p.Z) +
		2*(q.A14*p.X+q.A24*p.Y+q.A34*p.Z) + q.A44
	return a, b, c
}

// quadricGradient returns the (unnormalised-then-normalised) gradient of F
// at the hitpoint, which is the surface normal.
func quadricGradient(q *Quadric, hit *lin.V3) lin.V3 {
	gx := 2*(q.A11*hit.X+q.A12*hit.Y+q.A13*hit.Z) + 2*q.A14
	gy := 2*(q.A12*hit.X+q.A22*hit.Y+q.A23*hit.Z) + 2*q.A24
	gz := 2*(q.A13*hit.X+q.A23*hit.Y+q.A33*hit.Z) + 2*q.A34
	n := lin.V3{X: gx, Y: gy, Z: gz}
	n.Unit()
	return n
}

// intersectToroid uses Newton's method to find the ray parameter where the
// ray meets the torus, ported from getToroidCollision.
func intersectToroid(tor *Toroid, pos, dir *lin.V3) (hit, normal lin.V3, ok bool) {
	sign := 1.0
	if !tor.Convex {
		sign = -1.0
	}
	R, r := tor.LongRadius, tor.ShortRadius

	f := func(p *lin.V3) float64 {
		w := math.Sqrt(p.X*p.X+p.Z*p.Z) - R
		return w*w + p.Y*p.Y - r*r
	}
	s := 0.0
	for i := 0; i < newtonMaxIterations; i++ {
		p := lin.V3{X: pos.X + dir.X*s, Y: pos.Y + dir.Y*s, Z: pos.Z + dir.Z*s}
		fv := f(&p)
		if math.Abs(fv) < newtonTolerance {
			if s < 0 {
				return hit, normal, false
			}
			hit = p
			normal = toroidGradient(R, r, sign, &hit)
			return hit, normal, true
		}
		// numerical derivative of f along the ray direction.
		const h = 1e-6
		p2 := lin.V3{X: pos.X + dir.X*(s+h), Y: pos.Y + dir.Y*(s+h), Z: pos.Z + dir.Z*(s+h)}
		deriv := (f(&p2) - fv) / h
		if deriv == 0 {
			return hit, normal, false
		}
		s -= fv / deriv
	}
	return hit, normal, false
}

func toroidGradient(R, r, sign float64, hit *lin.V3) lin.V3 {
	w := math.Sqrt(hit.X*hit.X + hit.Z*hit.Z)
	if w == 0 {
		return lin.V3{X: 0, Y: sign, Z: 0}
	}
	k := 2 * (w - R) / w
	n := lin.V3{X: k * hit.X, Y: 2 * hit.Y, Z: k * hit.Z}
	n.Unit()
	return n
}

// intersectCubic pre-rotates position and direction by Psi in the YZ plane
// (ported from Cubic.cpp's cubicPosition/cubicDirection) and then solves the
// embedded quadric.
func intersectCubic(cb *Cubic, pos, dir *lin.V3) (hit, normal lin.V3, ok bool) {
	rp := cubicRotate(pos, cb.Psi)
	rd := cubicRotate(dir, cb.Psi)
	hit, normal, ok = intersectQuadric(&cb.Quadric, &rp, &rd)
	if !ok {
		return hit, normal, false
	}
	hit = cubicRotate(&hit, -cb.Psi)
	normal = cubicRotate(&normal, -cb.Psi)
	return hit, normal, true
}

// cubicRotate rotates a vector by angle alpha in the YZ plane, "taken from
// RAY-UI" per the original Cubic.cpp comment.
func cubicRotate(v *lin.V3, alpha float64) lin.V3 {
	c, s := math.Cos(alpha), math.Sin(alpha)
	return lin.V3{
		X: v.X,
		Y: v.Y*c - v.Z*s,
		Z: v.Y*s + v.Z*c,
	}
}
