package rayx

import "rayx/material"

// EnergyDistribution enumerates how a source assigns photon energies to
// emitted rays (§4.G).
type EnergyDistribution int

const (
	HardEdge EnergyDistribution = iota
	SoftEdge
	SeparateEnergies
	ListFromFile
)

// Source emits rays at the head of a beamline. The concrete generation
// parameters live in package source; Beamline only needs enough to drive
// the tracer's batching loop (§4.A step 2: total ray count).
type Source struct {
	ID      int
	NumRays int
	Emit    func(pathIndex uint64, rngSeed int64) Ray
}

// Beamline is an ordered list of sources followed by an ordered list of
// elements, plus the material tables consulted during behaviour dispatch
// (§3.3).
type Beamline struct {
	Sources  []Source
	Elements []*OpticalElement
	Material *material.Tables
}

// TotalRays returns the sum of every source's requested ray count.
func (b *Beamline) TotalRays() int {
	total := 0
	for _, s := range b.Sources {
		total += s.NumRays
	}
	return total
}
