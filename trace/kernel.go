package trace

import (
	"rayx/behave"
	"rayx/collide"
	"rayx/lin"
	"rayx/material"
	"rayx/optics"
	"rayx/rayx"
	"rayx/rng"
)

// sourceObjectID is the reserved ObjectID of a path's Emitted event: it did
// not originate from any beamline element, and is never masked out by the
// per-object record mask.
const sourceObjectID = -1

// kernelArgs is the read-only state tracePath needs beyond the ray itself,
// the Go analogue of §9's PushConstants/InvocationState: one value, shared
// by every worker, built once per Trace call.
type kernelArgs struct {
	elements   []*collide.Element
	behaviours []*rayx.OpticalElement
	materials  *material.Tables
	cfg        *rayx.TraceConfig
}

// tracePath runs the dynamic-element kernel (§4.B) for one ray path to
// completion and returns its recorded events, capped at
// cfg.MaxEventsPerPath(); the last slot is overwritten with TooManyEvents if
// the path was still active when the cap was reached.
func tracePath(ray rayx.Ray, args *kernelArgs) (events []rayx.Event, tooMany bool) {
	maxEvents := args.cfg.MaxEventsPerPath()
	events = make([]rayx.Event, 0, maxEvents)
	ctr := rng.Counter(ray.RNGCounter)

	record := func(objectID int) (stop bool) {
		ray.ObjectID = objectID
		if len(events) >= maxEvents {
			if len(events) > 0 {
				events[len(events)-1].EventType = rayx.TooManyEvents
			}
			tooMany = true
			return true
		}
		if objectID == sourceObjectID || maskAllows(args.cfg, objectID) {
			events = append(events, rayx.FromRay(&ray).MaskAttrs(args.cfg.RecordMaskAttrs()))
		}
		ray.PathEventID++
		return false
	}

	ray.EventType = rayx.Emitted
	if record(sourceObjectID) {
		return events, tooMany
	}

	if args.cfg.Sequential() {
		tracePathSequential(&ray, &ctr, args, record)
	} else {
		tracePathNonSequential(&ray, &ctr, args, record)
	}
	return events, tooMany
}

// maskAllows reports whether objectID passes the per-object record mask.
// Object ids outside the 64-bit mask's range always pass: RecordAll (every
// bit set) is the default, and a beamline with more than 64 elements cannot
// be selectively masked by a single uint64 without a richer mask type.
func maskAllows(cfg *rayx.TraceConfig, objectID int) bool {
	if objectID < 0 || objectID >= 64 {
		return true
	}
	return cfg.RecordMaskObjects()&(1<<uint(objectID)) != 0
}

func tracePathSequential(ray *rayx.Ray, ctr *rng.Counter, args *kernelArgs, record func(int) bool) {
	for idx, el := range args.behaviours {
		if !ray.EventType.Active() {
			return
		}
		ce := args.elements[idx]
		col, worldHit, ok := collide.FindSequential(&ray.Position, &ray.Direction, ce, ctr)
		if !ok {
			return
		}
		if !advanceAndDispatch(ray, idx, el, col, worldHit, args.materials, args.cfg.BraggPolicy(), ctr) {
			record(idx)
			return
		}
		record(idx)
	}
}

func tracePathNonSequential(ray *rayx.Ray, ctr *rng.Counter, args *kernelArgs, record func(int) bool) {
	maxHits := args.cfg.MaxEventsPerPath()
	for hit := 0; hit < maxHits; hit++ {
		if !ray.EventType.Active() {
			return
		}
		idx, col, worldHit, ok := collide.FindNonSequential(&ray.Position, &ray.Direction, args.elements, ctr)
		if !ok {
			return
		}
		el := args.behaviours[idx]
		active := advanceAndDispatch(ray, idx, el, col, worldHit, args.materials, args.cfg.BraggPolicy(), ctr)
		if record(idx) {
			return
		}
		if !active {
			return
		}
	}
}

// advanceAndDispatch advances ray to the collision's world hitpoint,
// propagates its optical path length and field phase, dispatches the
// element's behaviour in element-local coordinates, and writes the result
// back onto ray in world coordinates. Returns false if the ray terminated.
func advanceAndDispatch(ray *rayx.Ray, objectID int, el *rayx.OpticalElement, col collide.Collision, worldHit lin.V3, tables *material.Tables, braggPolicy rayx.CrystalBraggPolicy, ctr *rng.Counter) bool {
	dist := worldHit.Dist(&ray.Position)
	wavelengthNM := optics.WavelengthNM(ray.EnergyEV)
	ray.Advance(dist, wavelengthNM)
	ray.Position = worldHit

	var localDir lin.V3
	localDir.AppM4Dir(el.InTrans, &ray.Direction)
	localDir.Unit()

	state := behave.RayState{
		Position:  [3]float64{col.Hitpoint.X, col.Hitpoint.Y, col.Hitpoint.Z},
		Direction: [3]float64{localDir.X, localDir.Y, localDir.Z},
		EnergyEV:  ray.EnergyEV,
		Field:     ray.Field,
		Order:     ray.Order,
	}
	normal := [3]float64{col.Normal.X, col.Normal.Y, col.Normal.Z}

	outcome := dispatch(&state, el, normal, tables, braggPolicy, ctr)

	ray.Field = state.Field
	ray.Order = state.Order
	var localDirOut, worldDirOut lin.V3
	localDirOut = lin.V3{X: state.Direction[0], Y: state.Direction[1], Z: state.Direction[2]}
	worldDirOut.AppM4Dir(el.OutTrans, &localDirOut)
	worldDirOut.Unit()
	ray.Direction = worldDirOut
	ray.EventType = mapEventType(outcome)
	return !outcome.Terminated
}

// dispatch switches on el.Behaviour's tagged union and calls the matching
// package behave function, ported from Behave.cpp's top-level behaviour
// switch.
func dispatch(state *behave.RayState, el *rayx.OpticalElement, normal [3]float64, tables *material.Tables, braggPolicy rayx.CrystalBraggPolicy, ctr *rng.Counter) behave.Outcome {
	b := el.Behaviour
	switch {
	case b.Mirror != nil:
		return behave.Mirror(state, normal, el.AzimuthAngle, el.Material, tables, ctr)
	case b.Grating != nil:
		return behave.Grating(state, normal, b.Grating.VLS, b.Grating.LineDensity, b.Grating.Order)
	case b.Slit != nil:
		return behave.Slit(state, b.Slit.Opening, b.Slit.Beamstop, slitDiffraction(b.Slit.Opening, ctr))
	case b.RZP != nil:
		return behave.RZP(state, normal, optics.RZPParams{
			Image:              optics.ImageType(b.RZP.Image),
			DesignWavelengthNM: b.RZP.DesignWavelengthNM,
			Alpha:              b.RZP.Alpha,
			Beta:               b.RZP.Beta,
			ArmLengthIn:        b.RZP.ArmIn,
			ArmOut:             b.RZP.ArmOut,
			Order:              b.RZP.Order,
			FresnelZOffset:     b.RZP.FresnelZOffset,
			AdditionalOrder:    b.RZP.AdditionalOrder,
		}, ctr)
	case b.ImagePlane != nil:
		return behave.ImagePlane(state)
	case b.Crystal != nil:
		return behave.Crystal(state, normal, b.Crystal.OffsetAngle, b.Crystal.DSpacing2NM, b.Crystal.UnitCellVolumeNM3,
			b.Crystal.F0, b.Crystal.FH, b.Crystal.FHC, b.Crystal.Order, behave.FatalBraggPolicy(braggPolicy), ctr)
	case b.Foil != nil:
		return behave.Foil(state, normal, el.Material, b.Foil.ThicknessNM, tables)
	default:
		return behave.Outcome{Terminated: true, EventType: behave.EventFatal}
	}
}

// slitDiffraction returns the Fraunhofer diffraction callback for a slit's
// opening cutout: sinc^2 (§4.D.3) for a rectangular opening, Airy/Bessel-J1
// (§4.F) for an elliptical one. Trapezoid and Unlimited openings have no
// diffraction model named by the spec and fall back to noDiffraction (see
// DESIGN.md).
func slitDiffraction(opening collide.Cutout, ctr *rng.Counter) func(wavelengthNM float64) (dPhi, dPsi float64) {
	switch {
	case opening.Rect != nil:
		width, length := opening.Rect.Width, opening.Rect.Length
		return func(wavelengthNM float64) (float64, float64) {
			return optics.SampleRectDiffraction(ctr, wavelengthNM, width),
				optics.SampleRectDiffraction(ctr, wavelengthNM, length)
		}
	case opening.Elliptical != nil:
		diameterX, diameterZ := opening.Elliptical.DiameterX, opening.Elliptical.DiameterZ
		return func(wavelengthNM float64) (float64, float64) {
			return optics.SampleEllipticalDiffraction(ctr, wavelengthNM, diameterX, diameterZ)
		}
	default:
		return noDiffraction
	}
}

// noDiffraction is the Slit diffraction callback for cutout kinds with no
// diffraction model (Unlimited, Trapezoid); it returns no angular
// perturbation.
func noDiffraction(wavelengthNM float64) (dPhi, dPsi float64) { return 0, 0 }

func mapEventType(o behave.Outcome) rayx.EventType {
	if !o.Terminated {
		return rayx.HitElement
	}
	switch o.EventType {
	case behave.EventAbsorbed:
		return rayx.Absorbed
	case behave.EventBeyondHorizon:
		return rayx.BeyondHorizon
	case behave.EventTransmitted:
		return rayx.Transmitted
	default:
		return rayx.FatalError
	}
}
