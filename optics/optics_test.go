package optics

import (
	"math"
	"testing"

	"rayx/lin"
	"rayx/rng"
)

func TestWavelengthEnergyRoundTrip(t *testing.T) {
	e := 1000.0
	w := WavelengthNM(e)
	got := EnergyEV(w)
	if math.Abs(got-e) > 1e-9 {
		t.Errorf("expected round-trip energy %v, got %v", e, got)
	}
}

func TestFresnelNormalIncidence(t *testing.T) {
	rs, rp := ReflectAmplitudes(1, complex(0.9, 0.01))
	if math.Abs(math.Hypot(real(rs), imag(rs))-math.Hypot(real(rp), imag(rp))) > 1e-9 {
		t.Errorf("expected |rs| and |rp| to agree at normal incidence: rs=%v rp=%v", rs, rp)
	}
}

func TestStokesFromJonesEqualAmplitudes(t *testing.T) {
	s := StokesFromJones(complex(1, 0), complex(1, 0))
	if s.S0 != 2 {
		t.Errorf("expected S0=2 for equal Ex,Ey amplitude, got %v", s.S0)
	}
}

func TestUpdateStokesAbsorptionNeverOnGain(t *testing.T) {
	ctr := rng.NewCounter(0, 1)
	s := Stokes{S0: 1, S1: 0, S2: 0, S3: 0}
	_, absorbed := UpdateStokes(s, 0, 1, 1, 0, &ctr)
	if absorbed {
		t.Error("expected no absorption when reflectance does not reduce intensity")
	}
}

func TestDirectionSphericalRoundTrip(t *testing.T) {
	d := lin.V3{X: 0.3, Y: 0.9, Z: 0.3}
	d.Unit()
	phi, psi := DirectionToSpherical(&d)
	back := SphericalToDirection(phi, psi)
	if !d.Aeq(&back) {
		t.Errorf("expected spherical round trip, got %+v want %+v", back, d)
	}
}

func TestBraggAngleUnrealisable(t *testing.T) {
	if got := BraggAngle(5, 100, 1); got != -1 {
		t.Errorf("expected unrealisable Bragg angle to return -1, got %v", got)
	}
}

func TestBraggAngleRealisable(t *testing.T) {
	got := BraggAngle(1, 0.1, 0.4)
	if got == -1 {
		t.Error("expected a realisable Bragg angle")
	}
}

func TestRectFWHMDecreasesWithWidth(t *testing.T) {
	narrow := RectFWHM(500, 0.1)
	wide := RectFWHM(500, 1.0)
	if !(narrow > wide) {
		t.Errorf("expected a narrower slit to diffract more widely, got narrow=%v wide=%v", narrow, wide)
	}
}

func TestRectFWHMZeroWidth(t *testing.T) {
	if got := RectFWHM(500, 0); got != 0 {
		t.Errorf("expected zero FWHM for a zero-width opening, got %v", got)
	}
}

func TestSampleRectDiffractionWithinTruncationBound(t *testing.T) {
	ctr := rng.NewCounter(0, 3)
	wavelengthNM, widthNM := 500.0, 0.05
	bound := 4 * math.Pi * wavelengthNM / (math.Pi * widthNM) // SincSquared(4) keeps |x| <= 4*pi
	for i := 0; i < 500; i++ {
		angle := SampleRectDiffraction(&ctr, wavelengthNM, widthNM)
		if math.Abs(angle) > bound {
			t.Fatalf("perturbation %v exceeds the sinc truncation bound %v", angle, bound)
		}
	}
}

func TestSampleRectDiffractionZeroWidth(t *testing.T) {
	ctr := rng.NewCounter(0, 3)
	if got := SampleRectDiffraction(&ctr, 500, 0); got != 0 {
		t.Errorf("expected zero perturbation for a zero-width opening, got %v", got)
	}
}

func TestSampleRectDiffractionDeterministic(t *testing.T) {
	c1 := rng.NewCounter(1, 9)
	c2 := rng.NewCounter(1, 9)
	for i := 0; i < 10; i++ {
		a := SampleRectDiffraction(&c1, 500, 0.05)
		b := SampleRectDiffraction(&c2, 500, 0.05)
		if a != b {
			t.Fatal("counters with identical seed diverged on SampleRectDiffraction")
		}
	}
}

func TestSampleEllipticalDiffractionFinite(t *testing.T) {
	ctr := rng.NewCounter(2, 4)
	for i := 0; i < 200; i++ {
		dPhi, dPsi := SampleEllipticalDiffraction(&ctr, 500, 0.05, 0.05)
		if math.IsNaN(dPhi) || math.IsNaN(dPsi) || math.IsInf(dPhi, 0) || math.IsInf(dPsi, 0) {
			t.Fatalf("expected finite perturbations, got dPhi=%v dPsi=%v", dPhi, dPsi)
		}
	}
}

func TestSampleEllipticalDiffractionZeroDiameterAxisStaysZero(t *testing.T) {
	ctr := rng.NewCounter(2, 4)
	for i := 0; i < 50; i++ {
		dPhi, dPsi := SampleEllipticalDiffraction(&ctr, 500, 0, 0.05)
		if dPhi != 0 {
			t.Fatalf("expected no perturbation along a zero-diameter axis, got %v", dPhi)
		}
		_ = dPsi
	}
}
