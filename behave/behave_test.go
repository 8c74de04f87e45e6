package behave

import (
	"math"
	"testing"

	"rayx/collide"
	"rayx/material"
	"rayx/optics"
	"rayx/rng"
)

func TestMirrorPerfectlyReflectiveStaysActive(t *testing.T) {
	r := &RayState{
		Direction: [3]float64{0, -1, 0},
		EnergyEV:  1000,
		Field:     [2]complex128{1, 0},
	}
	out := Mirror(r, [3]float64{0, 1, 0}, 0, -2, nil, nil)
	if out.Terminated {
		t.Fatal("perfectly reflective mirror should never terminate the ray")
	}
	if r.Direction != [3]float64{0, 1, 0} {
		t.Errorf("expected reflection to flip Y, got %v", r.Direction)
	}
}

func TestMirrorUnknownMaterialIsFatal(t *testing.T) {
	tables := &material.Tables{Offsets: map[int][4]int{}}
	ctr := rng.NewCounter(0, 1)
	r := &RayState{Direction: [3]float64{0, -1, 0}, EnergyEV: 1000, Field: [2]complex128{1, 0}}
	out := Mirror(r, [3]float64{0, 1, 0}, 0, 79, tables, &ctr)
	if !out.Terminated || out.EventType != EventFatal {
		t.Fatalf("expected fatal event for unresolvable material, got %+v", out)
	}
}

func TestGratingBeyondHorizonOnGrazingDivergence(t *testing.T) {
	r := &RayState{
		Position:  [3]float64{0, 0, 0},
		Direction: [3]float64{0.999, 0.001, 0},
		EnergyEV:  1000,
	}
	vls := optics.VLSCoeffs{}
	out := Grating(r, [3]float64{0, 1, 0}, vls, 5000, 50)
	if !out.Terminated || out.EventType != EventBeyondHorizon {
		t.Fatalf("expected beyond-horizon for a wildly excessive diffraction order, got %+v", out)
	}
}

func TestGratingZeroOrderPassesThrough(t *testing.T) {
	r := &RayState{
		Position:  [3]float64{0, 0, 0},
		Direction: [3]float64{0, 1, 0},
		EnergyEV:  1000,
	}
	vls := optics.VLSCoeffs{}
	out := Grating(r, [3]float64{0, 1, 0}, vls, 1200, 0)
	if out.Terminated {
		t.Fatalf("order 0 grating should never go beyond horizon, got %+v", out)
	}
	if math.Abs(r.Direction[1]-1) > 1e-6 {
		t.Errorf("expected near-unchanged direction for order 0, got %v", r.Direction)
	}
}

func TestSlitAbsorbsOutsideOpening(t *testing.T) {
	opening := collide.Cutout{Rect: &collide.Rect{Width: 2, Length: 2}}
	var beamstop collide.Cutout
	r := &RayState{Position: [3]float64{10, 0, 10}, Direction: [3]float64{0, 1, 0}, EnergyEV: 1000}
	out := Slit(r, opening, beamstop, func(float64) (float64, float64) { return 0, 0 })
	if !out.Terminated || out.EventType != EventAbsorbed {
		t.Fatalf("expected absorption outside the opening, got %+v", out)
	}
}

func TestSlitPassesThroughOpening(t *testing.T) {
	opening := collide.Cutout{Rect: &collide.Rect{Width: 10, Length: 10}}
	var beamstop collide.Cutout
	r := &RayState{Position: [3]float64{0, 0, 0}, Direction: [3]float64{0, 1, 0}, EnergyEV: 1000}
	out := Slit(r, opening, beamstop, func(float64) (float64, float64) { return 0, 0 })
	if out.Terminated {
		t.Fatalf("expected ray inside opening to pass through, got %+v", out)
	}
}

func TestSlitAppliesDiffractionPerturbation(t *testing.T) {
	opening := collide.Cutout{Rect: &collide.Rect{Width: 10, Length: 10}}
	var beamstop collide.Cutout
	r := &RayState{Position: [3]float64{0, 0, 0}, Direction: [3]float64{0, 1, 0}, EnergyEV: 1000}
	const dPhi, dPsi = 0.01, -0.02
	out := Slit(r, opening, beamstop, func(float64) (float64, float64) { return dPhi, dPsi })
	if out.Terminated {
		t.Fatalf("expected ray inside opening to pass through, got %+v", out)
	}
	if r.Direction == ([3]float64{0, 1, 0}) {
		t.Fatal("expected a nonzero diffraction callback to perturb the ray's direction")
	}
}

func TestImagePlaneIsNoOp(t *testing.T) {
	r := &RayState{Direction: [3]float64{0, 1, 0}}
	out := ImagePlane(r)
	if out.Terminated {
		t.Fatal("ImagePlane should never terminate the ray")
	}
	if r.Direction != [3]float64{0, 1, 0} {
		t.Errorf("ImagePlane must not change direction, got %v", r.Direction)
	}
}

func TestFoilAlwaysTransmits(t *testing.T) {
	tables := &material.Tables{
		Offsets: map[int][4]int{14: {0, 0, 0, 2}},
		Rows:    []material.Row{{Energy: 100, A: 0.01, B: 0.002}, {Energy: 10000, A: 0.02, B: 0.003}},
	}
	r := &RayState{Direction: [3]float64{0, -1, 0}, EnergyEV: 1000, Field: [2]complex128{1, 0}}
	out := Foil(r, [3]float64{0, 1, 0}, 14, 100, tables)
	if !out.Terminated || out.EventType != EventTransmitted {
		t.Fatalf("expected Foil to always transmit, got %+v", out)
	}
}

func TestCrystalUnrealisableBraggAbsorbsByDefault(t *testing.T) {
	r := &RayState{Direction: [3]float64{0, -1, 0}, EnergyEV: 10, Field: [2]complex128{1, 0}}
	ctr := rng.NewCounter(0, 1)
	out := Crystal(r, [3]float64{0, 1, 0}, 0, 0.3, 45, complex(1, 0), complex(1, 0), complex(1, 0), 1, BraggAbsorb, &ctr)
	if !out.Terminated || out.EventType != EventAbsorbed {
		t.Fatalf("expected absorption for an unrealisable Bragg angle, got %+v", out)
	}
}

func TestRZPAdditionalOrderSplitsToZero(t *testing.T) {
	r := &RayState{
		Position:  [3]float64{1, 0, 1},
		Direction: [3]float64{0, 1, 0},
		EnergyEV:  1000,
	}
	params := optics.RZPParams{
		Image:              optics.Point2Point,
		DesignWavelengthNM: 1.0,
		Alpha:              0.1,
		Beta:               0.1,
		ArmLengthIn:        100,
		ArmOut:             100,
		Order:              1,
		AdditionalOrder:    true,
	}
	ctr := rng.NewCounter(0, 1)
	out := RZP(r, [3]float64{0, 1, 0}, params, &ctr)
	if out.Terminated && out.EventType != EventBeyondHorizon {
		t.Fatalf("unexpected terminal event from RZP: %+v", out)
	}
	if r.Order != 0 && r.Order != 1 {
		t.Errorf("RZP with additional_order enabled should resolve to order 0 or 1, got %d", r.Order)
	}
}
