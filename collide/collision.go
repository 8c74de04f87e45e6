package collide

import (
	"rayx/lin"
	"rayx/rng"
)

// CollisionEpsilonMM is the forward nudge applied before a non-sequential
// collision search so that a ray does not immediately re-hit the surface it
// just left. Expressed in the beamline's length unit, millimetres.
const CollisionEpsilonMM = 1e-6

// Collision is the result of a successful surface intersection: the
// hitpoint and surface normal in element-local coordinates.
type Collision struct {
	Hitpoint lin.V3
	Normal   lin.V3
	Found    bool
}

// Element is the subset of an optical element's compiled data that the
// collision finder needs: its local surface/cutout geometry, its slope
// error, and the transforms between world and element-local space.
type Element struct {
	InTrans, OutTrans *lin.M4
	Surface           Surface
	Cutout            Cutout
	SlopeError        SlopeError
}

// FindLocal finds the collision of a ray (already in element-local
// coordinates) with element e: intersect the surface, reject hits outside
// the cutout, orient the normal to face the incoming ray, then perturb the
// normal by the slope error. Ported from findCollisionInElementCoords.
func FindLocal(pos, dir *lin.V3, e *Element, ctr *rng.Counter) Collision {
	hit, normal, ok := e.Surface.intersect(pos, dir)
	if !ok {
		return Collision{}
	}
	if !e.Cutout.Contains(hit.X, hit.Z) {
		return Collision{}
	}
	if dir.Dot(&normal) > 0 {
		normal.Neg(&normal)
	}
	normal = e.SlopeError.Apply(&normal, ctr)
	return Collision{Hitpoint: hit, Normal: normal, Found: true}
}

// FindWith transforms a world-space ray into element e's local frame via
// e.InTrans, finds the local collision, and reports the hitpoint distance
// in world space (|OutTrans*hit - worldPos|). Ported from findCollisionWith.
func FindWith(worldPos, worldDir *lin.V3, e *Element, ctr *rng.Counter) (col Collision, worldHit lin.V3, dist float64, ok bool) {
	var localPos, localDir lin.V3
	localPos.AppM4Pos(e.InTrans, worldPos)
	localDir.AppM4Dir(e.InTrans, worldDir)
	localDir.Unit()

	col = FindLocal(&localPos, &localDir, e, ctr)
	if !col.Found {
		return Collision{}, lin.V3{}, 0, false
	}
	worldHit.AppM4Pos(e.OutTrans, &col.Hitpoint)
	diff := lin.V3{}
	diff.Sub(&worldHit, worldPos)
	dist = diff.Len()
	return col, worldHit, dist, true
}

// FindSequential finds the collision of a ray against exactly one element,
// the next element in beamline order, matching the sequential-mode branch
// of §4.B: there is no element search, only a single FindWith call.
func FindSequential(worldPos, worldDir *lin.V3, e *Element, ctr *rng.Counter) (col Collision, worldHit lin.V3, ok bool) {
	col, worldHit, _, ok = FindWith(worldPos, worldDir, e, ctr)
	return col, worldHit, ok
}

// FindNonSequential searches every element for the nearest positive-distance
// collision after nudging the ray forward by CollisionEpsilonMM, ported from
// findCollision's non-sequential branch. Ties are broken by the smaller
// element index.
func FindNonSequential(worldPos, worldDir *lin.V3, elements []*Element, ctr *rng.Counter) (elementIndex int, col Collision, worldHit lin.V3, ok bool) {
	step := lin.V3{}
	step.Scale(worldDir, CollisionEpsilonMM)
	nudged := lin.V3{}
	nudged.Add(worldPos, &step)

	bestDist := -1.0
	bestIndex := -1
	var bestCol Collision
	var bestHit lin.V3
	for i, e := range elements {
		c, wh, dist, found := FindWith(&nudged, worldDir, e, ctr)
		if !found || dist <= 0 {
			continue
		}
		if bestIndex == -1 || dist < bestDist {
			bestDist = dist
			bestIndex = i
			bestCol = c
			bestHit = wh
		}
	}
	if bestIndex == -1 {
		return -1, Collision{}, lin.V3{}, false
	}
	return bestIndex, bestCol, bestHit, true
}
