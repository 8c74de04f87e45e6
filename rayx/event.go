package rayx

// Event is a snapshot of a Ray at a surface interaction or emission,
// belonging to a path by PathID and ordered within that path by
// PathEventID (§3.4).
type Event struct {
	PathID      uint64
	PathEventID uint32
	ObjectID    int
	SourceID    int
	EventType   EventType

	Position  [3]float64
	Direction [3]float64
	EnergyEV  float64
	PathLen   float64
	Field     [2]complex128
	Order     int
}

// FromRay snapshots ray r into an Event.
func FromRay(r *Ray) Event {
	return Event{
		PathID:      r.PathID,
		PathEventID: r.PathEventID,
		ObjectID:    r.ObjectID,
		SourceID:    r.SourceID,
		EventType:   r.EventType,
		Position:    [3]float64{r.Position.X, r.Position.Y, r.Position.Z},
		Direction:   [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z},
		EnergyEV:    r.EnergyEV,
		PathLen:     r.PathLen,
		Field:       r.Field,
		Order:       r.Order,
	}
}

// MaskAttrs zeroes e's columns not selected by mask (§6.4). PathID,
// PathEventID, ObjectID, SourceID, and EventType are never gated: they
// identify the event rather than describe the ray's physical state.
func (e Event) MaskAttrs(mask RecordMask) Event {
	if mask&AttrPosition == 0 {
		e.Position = [3]float64{}
	}
	if mask&AttrDirection == 0 {
		e.Direction = [3]float64{}
	}
	if mask&AttrEnergy == 0 {
		e.EnergyEV = 0
	}
	if mask&AttrPathLen == 0 {
		e.PathLen = 0
	}
	if mask&AttrField == 0 {
		e.Field = [2]complex128{}
	}
	if mask&AttrOrder == 0 {
		e.Order = 0
	}
	return e
}

// EventsSoA is the struct-of-arrays output of a trace call (§6.3). Every
// slice has the same length: the total recorded event count.
type EventsSoA struct {
	PathID      []uint64
	PathEventID []uint32
	ObjectID    []int
	SourceID    []int
	EventType   []EventType

	PositionX, PositionY, PositionZ    []float64
	DirectionX, DirectionY, DirectionZ []float64
	EnergyEV                           []float64
	PathLen                            []float64
	FieldX, FieldY                     []complex128
	Order                              []int

	TotalEvents   int
	NonEmptyPaths int
	TooManyEvents bool
}

// Append adds event e's columns to the SoA.
func (s *EventsSoA) Append(e Event) {
	s.PathID = append(s.PathID, e.PathID)
	s.PathEventID = append(s.PathEventID, e.PathEventID)
	s.ObjectID = append(s.ObjectID, e.ObjectID)
	s.SourceID = append(s.SourceID, e.SourceID)
	s.EventType = append(s.EventType, e.EventType)
	s.PositionX = append(s.PositionX, e.Position[0])
	s.PositionY = append(s.PositionY, e.Position[1])
	s.PositionZ = append(s.PositionZ, e.Position[2])
	s.DirectionX = append(s.DirectionX, e.Direction[0])
	s.DirectionY = append(s.DirectionY, e.Direction[1])
	s.DirectionZ = append(s.DirectionZ, e.Direction[2])
	s.EnergyEV = append(s.EnergyEV, e.EnergyEV)
	s.PathLen = append(s.PathLen, e.PathLen)
	s.FieldX = append(s.FieldX, e.Field[0])
	s.FieldY = append(s.FieldY, e.Field[1])
	s.Order = append(s.Order, e.Order)
	s.TotalEvents++
}
