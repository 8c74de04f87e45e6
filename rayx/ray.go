// Package rayx holds the core data model shared across the tracer:
// rays, optical elements, beamlines, events, and the error taxonomy.
package rayx

import (
	"math"

	"rayx/lin"
)

// EventType classifies the state of a Ray at a point in its trace.
type EventType int

const (
	Uninitialized EventType = iota
	Emitted
	HitElement
	Transmitted
	Absorbed
	BeyondHorizon
	TooManyEvents
	FatalError
)

// Active reports whether a ray in this state may continue tracing.
func (e EventType) Active() bool {
	return e == Emitted || e == HitElement || e == Transmitted
}

func (e EventType) String() string {
	switch e {
	case Emitted:
		return "Emitted"
	case HitElement:
		return "HitElement"
	case Transmitted:
		return "Transmitted"
	case Absorbed:
		return "Absorbed"
	case BeyondHorizon:
		return "BeyondHorizon"
	case TooManyEvents:
		return "TooManyEvents"
	case FatalError:
		return "FatalError"
	default:
		return "Uninitialized"
	}
}

// Ray is a photon in flight, or a recorded snapshot of one at a surface
// interaction or emission (§3.1).
type Ray struct {
	Position  lin.V3
	Direction lin.V3

	EnergyEV float64
	PathLen  float64

	// Field is the Jones-like complex electric field the ray carries.
	// Canonical per-ray polarisation state; Stokes parameters (used for
	// absorption tests and output) are derived from it on demand.
	Field [2]complex128

	RNGCounter uint64

	PathID      uint64
	PathEventID uint32
	Order       int
	ObjectID    int
	SourceID    int

	EventType EventType
}

// Advance moves the ray's position by distance along its direction,
// accumulates path length, and applies the field phase advance
// exp(i*2*pi*distance/wavelength), per §4.E.3.
func (r *Ray) Advance(distance, wavelengthNM float64) {
	step := lin.V3{}
	step.Scale(&r.Direction, distance)
	r.Position.Add(&r.Position, &step)
	r.PathLen += distance

	phase := 2 * math.Pi * distance / wavelengthNM
	shift := complex(math.Cos(phase), math.Sin(phase))
	r.Field[0] *= shift
	r.Field[1] *= shift
}
