package config

import (
	"github.com/pkg/errors"

	"rayx/collide"
	"rayx/lin"
	"rayx/rayx"
	"rayx/source"
)

// Beamline is the fixture's source+element list. It is deliberately a small
// subset of a real RML beamline: one source kind (point) and one surface
// kind (a plane, unlimited or rectangular extent, behaving as a mirror or an
// image plane), enough to
// exercise Trace end to end without an RML importer.
type Beamline struct {
	Sources  []SourceSpec  `yaml:"sources"`
	Elements []ElementSpec `yaml:"elements"`
}

// SourceSpec is a fixture-format rayx.Source: currently only the Point
// generator (source.Point) is supported.
type SourceSpec struct {
	ID      int `yaml:"id"`
	NumRays int `yaml:"num_rays"`

	SourceWidth  float64 `yaml:"source_width"`
	SourceHeight float64 `yaml:"source_height"`
	SourceDepth  float64 `yaml:"source_depth"`

	HorDivergence float64 `yaml:"hor_divergence"`
	VerDivergence float64 `yaml:"ver_divergence"`

	CenterEV    float64 `yaml:"center_ev"`
	LineWidthEV float64 `yaml:"line_width_ev"`
}

// ElementSpec is a fixture-format rayx.OpticalElement: a plane surface,
// placed by a cumulative Z offset from the previous element, unlimited or
// rectangular in extent, behaving either as a mirror or an image plane.
type ElementSpec struct {
	Name string `yaml:"name"`

	// DistanceMM is the element's distance along +Z from the previous
	// element (or the source, for the first element).
	DistanceMM float64 `yaml:"distance_mm"`

	// GrazingAngleDeg rotates the element about X so its surface intercepts
	// the beam at the given grazing angle.
	GrazingAngleDeg float64 `yaml:"grazing_angle_deg"`

	// Width/Length: a Rect cutout; zero Width or Length means Unlimited.
	Width  float64 `yaml:"width"`
	Length float64 `yaml:"length"`

	// Behaviour: "mirror" or "image_plane".
	Behaviour string `yaml:"behaviour"`

	// Material: -1 vacuum, -2 perfectly reflective, 1..92 atomic number.
	Material int `yaml:"material"`
}

// BuildBeamline converts the fixture's SourceSpecs and ElementSpecs into a
// *rayx.Beamline, chaining element placement along +Z with a grazing-angle
// tilt about X, ported from the teacher's use of lin.M4.TranslateTM/SetAa
// for successive local-frame transforms.
func (b Beamline) BuildBeamline() (*rayx.Beamline, error) {
	bl := &rayx.Beamline{}

	for _, s := range b.Sources {
		gen := source.Point{
			SourceWidth:   s.SourceWidth,
			SourceHeight:  s.SourceHeight,
			SourceDepth:   s.SourceDepth,
			HorDivergence: s.HorDivergence,
			VerDivergence: s.VerDivergence,
			Energy: source.EnergySpec{
				Distribution: rayx.HardEdge,
				CenterEV:     s.CenterEV,
				LineWidthEV:  s.LineWidthEV,
			},
		}
		bl.Sources = append(bl.Sources, gen.New(s.ID, s.NumRays))
	}

	distanceMM := 0.0
	for _, e := range b.Elements {
		distanceMM += e.DistanceMM
		el, err := e.buildElement(distanceMM)
		if err != nil {
			return nil, err
		}
		bl.Elements = append(bl.Elements, el)
	}
	return bl, nil
}

func (e ElementSpec) buildElement(distanceMM float64) (*rayx.OpticalElement, error) {
	inTrans := lin.NewM4I()
	inTrans.TranslateTM(0, 0, -distanceMM)
	if e.GrazingAngleDeg != 0 {
		var rot lin.M3
		rot.SetAa(1, 0, 0, e.GrazingAngleDeg*degToRad)
		inTrans = rotateM4(&rot, inTrans)
	}
	outTrans := lin.NewM4().Invert(inTrans)

	cutout := collide.Cutout{Unlimited: &collide.Unlimited{}}
	if e.Width != 0 && e.Length != 0 {
		cutout = collide.Cutout{Rect: &collide.Rect{Width: e.Width, Length: e.Length}}
	}

	var behaviour rayx.Behaviour
	switch e.Behaviour {
	case "", "mirror":
		behaviour = rayx.Behaviour{Mirror: &rayx.MirrorBehaviour{}}
	case "image_plane":
		behaviour = rayx.Behaviour{ImagePlane: &rayx.ImagePlaneBehaviour{}}
	default:
		return nil, errors.Errorf("config: unknown element behaviour %q", e.Behaviour)
	}

	material := e.Material
	if material == 0 {
		material = -2
	}

	return &rayx.OpticalElement{
		Name:      e.Name,
		InTrans:   inTrans,
		OutTrans:  outTrans,
		Surface:   collide.Surface{Plane: &collide.Plane{}},
		Cutout:    cutout,
		Behaviour: behaviour,
		Material:  material,
	}, nil
}

const degToRad = 3.14159265358979323846 / 180

// rotateM4 left-multiplies base by rot's 3x3 block expanded to a 4x4
// rotation, keeping base's translation row, mirroring how the teacher
// composes a local rotation into an existing placement matrix.
func rotateM4(rot *lin.M3, base *lin.M4) *lin.M4 {
	var m lin.M4
	m.Xx, m.Xy, m.Xz = rot.Xx, rot.Xy, rot.Xz
	m.Yx, m.Yy, m.Yz = rot.Yx, rot.Yy, rot.Yz
	m.Zx, m.Zy, m.Zz = rot.Zx, rot.Zy, rot.Zz
	m.Ww = 1
	out := lin.NewM4()
	out.Mult(&m, base)
	return out
}
