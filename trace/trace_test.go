package trace

import (
	"testing"

	"rayx/collide"
	"rayx/lin"
	"rayx/rayx"
)

func straightDownSource(id, numRays int) rayx.Source {
	return rayx.Source{
		ID:      id,
		NumRays: numRays,
		Emit: func(pathIndex uint64, seed int64) rayx.Ray {
			return rayx.Ray{
				Position:  lin.V3{X: 0, Y: 5, Z: 0},
				Direction: lin.V3{X: 0, Y: -1, Z: 0},
				EnergyEV:  1000,
				Field:     [2]complex128{1, 0},
				PathID:    pathIndex,
				SourceID:  id,
				EventType: rayx.Emitted,
			}
		},
	}
}

func mirrorElement() *rayx.OpticalElement {
	return &rayx.OpticalElement{
		Name:         "M1",
		InTrans:      lin.NewM4I(),
		OutTrans:     lin.NewM4I(),
		Surface:      collide.Surface{Plane: &collide.Plane{}},
		Cutout:       collide.Cutout{Unlimited: &collide.Unlimited{}},
		Behaviour:    rayx.Behaviour{Mirror: &rayx.MirrorBehaviour{}},
		AzimuthAngle: 0,
		Material:     -2,
	}
}

func TestTraceEmptyBeamlineOnlyRecordsEmitted(t *testing.T) {
	bl := &rayx.Beamline{Sources: []rayx.Source{straightDownSource(0, 3)}}
	cfg := rayx.NewConfig()
	out, err := Trace(bl, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.TotalEvents != 3 {
		t.Fatalf("expected 3 Emitted events, got %d", out.TotalEvents)
	}
	for _, et := range out.EventType {
		if et != rayx.Emitted {
			t.Errorf("expected only Emitted events, got %v", et)
		}
	}
}

func TestTraceSequentialMirrorReflects(t *testing.T) {
	bl := &rayx.Beamline{
		Sources:  []rayx.Source{straightDownSource(0, 2)},
		Elements: []*rayx.OpticalElement{mirrorElement()},
	}
	cfg := rayx.NewConfig(rayx.Sequential(true))
	out, err := Trace(bl, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Each path: Emitted + HitElement = 2 events.
	if out.TotalEvents != 4 {
		t.Fatalf("expected 4 events (2 per path), got %d", out.TotalEvents)
	}
	if out.NonEmptyPaths != 2 {
		t.Fatalf("expected 2 non-empty paths, got %d", out.NonEmptyPaths)
	}
	hits := 0
	for _, et := range out.EventType {
		if et == rayx.HitElement {
			hits++
		}
	}
	if hits != 2 {
		t.Errorf("expected 2 HitElement events, got %d", hits)
	}
}

func TestTraceRejectsZeroMaxEvents(t *testing.T) {
	bl := &rayx.Beamline{Sources: []rayx.Source{straightDownSource(0, 1)}}
	cfg := rayx.NewConfig(rayx.MaxEventsPerPath(0))
	if _, err := Trace(bl, cfg); err == nil {
		t.Fatal("expected ConfigError for max_events_per_path=0")
	}
}
