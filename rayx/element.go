package rayx

import (
	"rayx/collide"
	"rayx/lin"
)

// Behaviour is a tagged union of the physical interaction an element
// performs at a hit, mirroring §3.2's behaviour union. Exactly one field is
// non-nil.
type Behaviour struct {
	Mirror     *MirrorBehaviour
	Grating    *GratingBehaviour
	Slit       *SlitBehaviour
	RZP        *RZPBehaviour
	ImagePlane *ImagePlaneBehaviour
	Crystal    *CrystalBehaviour
	Foil       *FoilBehaviour
}

// MirrorBehaviour has no parameters of its own; the element's Material and
// Surface drive its Fresnel response.
type MirrorBehaviour struct{}

// GratingBehaviour carries a variable-line-spacing grating's design line
// density and diffraction order.
type GratingBehaviour struct {
	VLS         [6]float64
	LineDensity float64
	Order       int
}

// SlitBehaviour carries the opening and beamstop cutouts, both evaluated in
// the slit's design XZ plane.
type SlitBehaviour struct {
	Opening  collide.Cutout
	Beamstop collide.Cutout
}

// RZPBehaviour carries a Reflection Zone Plate's imaging configuration.
type RZPBehaviour struct {
	Image              int
	DesignWavelengthNM float64
	Alpha, Beta        float64
	ArmIn, ArmOut      float64
	Order              int
	FresnelZOffset     float64
	AdditionalOrder    bool
}

// ImagePlaneBehaviour has no parameters; it only records the event.
type ImagePlaneBehaviour struct{}

// CrystalBehaviour carries the dynamical-diffraction parameters of §3.2.
type CrystalBehaviour struct {
	DSpacing2NM       float64
	UnitCellVolumeNM3 float64
	OffsetAngle       float64
	Order             int
	F0, FH, FHC       complex128
}

// FoilBehaviour carries a thin-film's thickness and roughness.
type FoilBehaviour struct {
	ThicknessNM float64
	RoughnessNM float64
}

// OpticalElement is one compiled, immutable beamline element (§3.2).
type OpticalElement struct {
	Name string

	InTrans, OutTrans *lin.M4

	Surface collide.Surface
	Cutout  collide.Cutout

	Behaviour Behaviour

	SlopeError collide.SlopeError

	AzimuthAngle float64

	// Material: -1 vacuum, -2 perfectly reflective, 1..92 atomic number.
	Material int
}

// AsCollideElement narrows an OpticalElement to the subset of fields the
// collide package needs to find a collision against it.
func (e *OpticalElement) AsCollideElement() *collide.Element {
	return &collide.Element{
		InTrans:    e.InTrans,
		OutTrans:   e.OutTrans,
		Surface:    e.Surface,
		Cutout:     e.Cutout,
		SlopeError: e.SlopeError,
	}
}
