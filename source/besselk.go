package source

import "math"

// besselK evaluates the modified Bessel function of the second kind K_nu(x)
// for x > 0 via its integral representation
//
//	K_nu(x) = integral_0^inf exp(-x*cosh(t)) * cosh(nu*t) dt
//
// using Simpson's rule. No special-function library is available in the
// retrieval pack (see DESIGN.md), so the dipole source's Schwinger vertical
// divergence, which needs K_{1/3} and K_{2/3}, is evaluated numerically
// rather than via a rational/asymptotic approximation.
func besselK(nu, x float64) float64 {
	if x <= 0 {
		return math.Inf(1)
	}
	// cosh(t) grows exponentially, so exp(-x*cosh(t)) is negligible well
	// before t reaches a modest multiple of 1/x for small x, or ~10 for x>=1.
	upper := 10.0 + 20.0/x
	const n = 400 // even, for Simpson's rule
	h := upper / n
	integrand := func(t float64) float64 {
		return math.Exp(-x*math.Cosh(t)) * math.Cosh(nu*t)
	}
	sum := integrand(0) + integrand(upper)
	for i := 1; i < n; i++ {
		t := float64(i) * h
		weight := 4.0
		if i%2 == 0 {
			weight = 2.0
		}
		sum += weight * integrand(t)
	}
	return sum * h / 3
}
