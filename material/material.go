// Package material looks up complex refractive indices for beamline optical
// elements from the flat Palik/NFF tables supplied with a beamline (§4.E.1,
// §6.1). Perfectly-reflective mirrors (material -2) are filtered out by
// behave.Mirror before lookup; vacuum (material -1) is handled by Lookup
// itself, which returns (1, 0) for it.
package material

import (
	"github.com/pkg/errors"
)

// Index is a complex refractive index, n - i*k.
type Index struct {
	N float64
	K float64
}

// Tables holds the flat arrays a beamline carries for material lookup
// (§6.1): material_index offsets into material_table, one pair of sections
// (Palik, NFF) per atomic number Z in [1,92].
type Tables struct {
	// Offsets holds, for each material Z (1-indexed: Offsets[0] is unused),
	// the [palikStart, palikEnd, nffStart, nffEnd) row ranges into Rows.
	Offsets map[int][4]int
	// Rows are (energy, a, b) triples: (energy, n, k) in the Palik range,
	// (energy, f1, f2) in the NFF range.
	Rows []Row
}

// Row is one entry of the flat material table.
type Row struct {
	Energy float64
	A, B   float64
}

// vacuumIndex is returned for material == -1.
var vacuumIndex = Index{N: 1, K: 0}

// Lookup returns the complex refractive index for the given material key at
// the given photon energy (eV), per §4.E.1:
//   - material == -1 (vacuum) returns (1, 0) without consulting tables.
//   - material outside [1, 92] is a fatal configuration error.
//   - Palik section is searched first; a hit returns its (n, k) directly,
//     with NO interpolation between table rows (matches RefractiveIndex.cpp:
//     the lower bin is used as-is).
//   - otherwise NFF is searched and (n, k) are derived analytically from the
//     bracketing (f1, f2) using the atomic mass and density of the element.
func Lookup(t *Tables, material int, energy float64) (Index, error) {
	if material == -1 {
		return vacuumIndex, nil
	}
	if material < 1 || material > 92 {
		return Index{}, errors.Errorf("material: index %d outside [1,92]", material)
	}
	rng, ok := t.Offsets[material]
	if !ok {
		return Index{}, errors.Errorf("material: no table entry for Z=%d", material)
	}
	palikStart, palikEnd, nffStart, nffEnd := rng[0], rng[1], rng[2], rng[3]

	if row, ok := lowerBin(t.Rows, palikStart, palikEnd, energy); ok {
		return Index{N: row.A, K: row.B}, nil
	}
	row, ok := lowerBin(t.Rows, nffStart, nffEnd, energy)
	if !ok {
		return Index{}, errors.Errorf("material: energy %.3f eV out of range for Z=%d", energy, material)
	}
	massRho, ok := AtomicMassRho[material]
	if !ok {
		return Index{}, errors.Errorf("material: no atomic mass/density for Z=%d", material)
	}
	mass, rho := massRho[0], massRho[1]
	return nffIndex(row, rho, mass, energy), nil
}

// lowerBin binary-searches rows[start:end] (ascending by Energy) for the
// bin containing energy, returning the LOWER-bounding row with no
// interpolation, matching getPalikEntry/getNffEntry.
func lowerBin(rows []Row, start, end int, energy float64) (Row, bool) {
	if start >= end {
		return Row{}, false
	}
	section := rows[start:end]
	if energy < section[0].Energy || energy > section[len(section)-1].Energy {
		return Row{}, false
	}
	lo, hi := 0, len(section)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if section[mid].Energy <= energy {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return section[lo], true
}

// analyticIndexFactor is 415.252, the constant from
// n = 1 - 415.252*rho*f1/(E^2*mass), ported from getRefractiveIndex's NFF
// branch in RefractiveIndex.cpp.
const analyticIndexFactor = 415.252

// nffIndex derives (n,k) analytically from a bracketing (energy,f1,f2) row.
func nffIndex(row Row, rho, mass, energy float64) Index {
	e2 := energy * energy
	n := 1 - analyticIndexFactor*rho*row.A/(e2*mass)
	k := analyticIndexFactor * rho * row.B / (e2 * mass)
	return Index{N: n, K: k}
}

// Complex returns n - i*k as a complex128, the form used
// throughout the optics package's Fresnel and dynamical-diffraction math.
func (ix Index) Complex() complex128 {
	return complex(ix.N, -ix.K)
}
