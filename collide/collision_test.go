package collide

import (
	"testing"

	"rayx/lin"
	"rayx/rng"
)

func TestIntersectPlane(t *testing.T) {
	pos := &lin.V3{X: 0, Y: 5, Z: 0}
	dir := &lin.V3{X: 0, Y: -1, Z: 0}
	hit, normal, ok := intersectPlane(pos, dir)
	if !ok {
		t.Fatal("expected plane hit")
	}
	if !lin.Aeq(hit.Y, 0) {
		t.Errorf("expected hit at y=0, got %v", hit.Y)
	}
	if !lin.Aeq(normal.Y, 1) {
		t.Errorf("expected normal +Y facing the ray, got %v", normal.Y)
	}
}

func TestIntersectPlaneMiss(t *testing.T) {
	pos := &lin.V3{X: 0, Y: 5, Z: 0}
	dir := &lin.V3{X: 0, Y: 1, Z: 0}
	_, _, ok := intersectPlane(pos, dir)
	if ok {
		t.Error("expected a miss moving away from the plane")
	}
}

func TestRectCutout(t *testing.T) {
	c := Cutout{Rect: &Rect{Width: 10, Length: 20}}
	if !c.Contains(4, 9) {
		t.Error("expected point inside rect cutout")
	}
	if c.Contains(6, 0) {
		t.Error("expected point outside rect cutout")
	}
}

func TestEllipticalCutout(t *testing.T) {
	c := Cutout{Elliptical: &Elliptical{DiameterX: 10, DiameterZ: 10}}
	if !c.Contains(0, 0) {
		t.Error("expected centre inside ellipse")
	}
	if c.Contains(10, 10) {
		t.Error("expected far corner outside ellipse")
	}
}

func TestFindLocalPlaneWithCutout(t *testing.T) {
	e := &Element{
		Surface:    Surface{Plane: &Plane{}},
		Cutout:     Cutout{Rect: &Rect{Width: 10, Length: 10}},
		SlopeError: SlopeError{},
	}
	ctr := rng.NewCounter(0, 1)
	pos := &lin.V3{X: 0, Y: 5, Z: 0}
	dir := &lin.V3{X: 0, Y: -1, Z: 0}
	col := FindLocal(pos, dir, e, &ctr)
	if !col.Found {
		t.Fatal("expected collision within cutout bounds")
	}
}

func TestFindLocalOutsideCutoutMisses(t *testing.T) {
	e := &Element{
		Surface: Surface{Plane: &Plane{}},
		Cutout:  Cutout{Rect: &Rect{Width: 2, Length: 2}},
	}
	ctr := rng.NewCounter(0, 1)
	pos := &lin.V3{X: 5, Y: 5, Z: 0}
	dir := &lin.V3{X: 0, Y: -1, Z: 0}
	col := FindLocal(pos, dir, e, &ctr)
	if col.Found {
		t.Fatal("expected miss outside cutout bounds")
	}
}

func TestFindWithIdentityTransform(t *testing.T) {
	e := &Element{
		InTrans:  lin.NewM4I(),
		OutTrans: lin.NewM4I(),
		Surface:  Surface{Plane: &Plane{}},
		Cutout:   Cutout{Unlimited: &Unlimited{}},
	}
	ctr := rng.NewCounter(0, 1)
	worldPos := &lin.V3{X: 0, Y: 10, Z: 0}
	worldDir := &lin.V3{X: 0, Y: -1, Z: 0}
	col, hit, dist, ok := FindWith(worldPos, worldDir, e, &ctr)
	if !ok || !col.Found {
		t.Fatal("expected collision with identity transform")
	}
	if !lin.Aeq(dist, 10) {
		t.Errorf("expected distance 10, got %v", dist)
	}
	if !lin.Aeq(hit.Y, 0) {
		t.Errorf("expected world hit at y=0, got %v", hit.Y)
	}
}

func TestFindNonSequentialPicksNearest(t *testing.T) {
	// plane at world y=0 (identity transform): distance 20 from worldPos below.
	atOrigin := &Element{
		InTrans:  lin.NewM4I(),
		OutTrans: lin.NewM4I(),
		Surface:  Surface{Plane: &Plane{}},
		Cutout:   Cutout{Unlimited: &Unlimited{}},
	}
	// plane at world y=15 (InTrans shifts world into local so local y=0
	// corresponds to world y=15): distance 5, should win.
	in := lin.NewM4I().TranslateTM(0, -15, 0)
	out := lin.NewM4().Invert(in)
	nearer := &Element{
		InTrans:  in,
		OutTrans: out,
		Surface:  Surface{Plane: &Plane{}},
		Cutout:   Cutout{Unlimited: &Unlimited{}},
	}
	ctr := rng.NewCounter(0, 1)
	worldPos := &lin.V3{X: 0, Y: 20, Z: 0}
	worldDir := &lin.V3{X: 0, Y: -1, Z: 0}
	idx, col, _, ok := FindNonSequential(worldPos, worldDir, []*Element{atOrigin, nearer}, &ctr)
	if !ok || !col.Found {
		t.Fatal("expected a non-sequential hit")
	}
	if idx != 1 {
		t.Errorf("expected nearer element (index 1) to win, got %d", idx)
	}
}
