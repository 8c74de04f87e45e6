// Package trace is the tracer driver (§4.A) and dynamic-element kernel
// (§4.B): it turns a compiled beamline and a TraceConfig into the
// struct-of-arrays of recorded events, batching rays across a bounded
// worker pool rather than a literal GPU kernel grid, ported from the
// goroutine/WaitGroup batching pattern of
// lixenwraith-vi-fighter/engine/clock_scheduler.go and the chunked
// go-per-batch loader pattern of gazed-vu's loader.go.
package trace

import (
	"context"
	"runtime"
	"sync"

	"rayx/collide"
	"rayx/internal/rayxlog"
	"rayx/rayx"
)

// Backend dispatches a batch of ray paths to completion, the seam named in
// §9 ("thin trait Backend{dispatch(kernel, grid, args)}"). CPUBackend is the
// only implementation shipped; a GPU backend is out of scope (§7).
type Backend interface {
	Dispatch(ctx context.Context, rays []rayx.Ray, args *kernelArgs) ([]rayx.Event, bool)
}

// CPUBackend runs tracePath for every ray in a batch across a bounded pool
// of goroutines, one path per worker at a time, mirroring the "one worker
// per ray path for the duration of a batch" model of §5.
type CPUBackend struct {
	// Workers is the number of concurrent goroutines; 0 means
	// runtime.GOMAXPROCS(0).
	Workers int
}

func (c CPUBackend) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Dispatch runs the kernel over every ray in rays, returning the batch's
// events grouped contiguously by path in ray layout order (§5 ordering
// guarantee) and whether any path hit the per-path event cap.
func (c CPUBackend) Dispatch(ctx context.Context, rays []rayx.Ray, args *kernelArgs) ([]rayx.Event, bool) {
	perPath := make([][]rayx.Event, len(rays))
	tooMany := make([]bool, len(rays))

	n := c.workers()
	if n > len(rays) {
		n = len(rays)
	}
	if n < 1 {
		n = 1
	}

	var wg sync.WaitGroup
	chunk := (len(rays) + n - 1) / n
	for w := 0; w < n; w++ {
		start := w * chunk
		end := start + chunk
		if start >= len(rays) {
			break
		}
		if end > len(rays) {
			end = len(rays)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				perPath[i], tooMany[i] = tracePath(rays[i], args)
			}
		}(start, end)
	}
	wg.Wait()

	total := 0
	anyTooMany := false
	for i := range perPath {
		total += len(perPath[i])
		anyTooMany = anyTooMany || tooMany[i]
	}
	events := make([]rayx.Event, 0, total)
	for _, p := range perPath {
		events = append(events, p...)
	}
	return events, anyTooMany
}

// Trace runs every source's rays through the beamline in batches of at most
// cfg.MaxBatchSize(), returning the concatenated, compacted event
// struct-of-arrays (§4.A).
func Trace(beamline *rayx.Beamline, cfg rayx.TraceConfig) (rayx.EventsSoA, error) {
	return TraceWith(context.Background(), beamline, cfg, CPUBackend{})
}

// TraceWith is Trace with an explicit context and Backend, for callers that
// want to bound wall-clock time or swap in a different dispatch strategy.
func TraceWith(ctx context.Context, beamline *rayx.Beamline, cfg rayx.TraceConfig, backend Backend) (rayx.EventsSoA, error) {
	if err := cfg.Validate(); err != nil {
		return rayx.EventsSoA{}, err
	}
	if len(beamline.Sources) == 0 {
		return rayx.EventsSoA{}, rayx.NewConfigError("beamline has no sources")
	}

	elements := make([]*collide.Element, len(beamline.Elements))
	for i, el := range beamline.Elements {
		elements[i] = el.AsCollideElement()
	}
	args := &kernelArgs{
		elements:   elements,
		behaviours: beamline.Elements,
		materials:  beamline.Material,
		cfg:        &cfg,
	}

	var out rayx.EventsSoA
	batchSize := cfg.MaxBatchSize()
	batchNum := 0
	pathIndex := uint64(0)

	for _, src := range beamline.Sources {
		remaining := src.NumRays
		for remaining > 0 {
			n := batchSize
			if n > remaining {
				n = remaining
			}
			rays := make([]rayx.Ray, n)
			for i := 0; i < n; i++ {
				rays[i] = src.Emit(pathIndex, cfg.Seed())
				pathIndex++
			}

			rayxlog.Debugf("trace: dispatching batch %d (%d rays, source %d)", batchNum, n, src.ID)
			events, tooMany := backend.Dispatch(ctx, rays, args)
			if tooMany {
				out.TooManyEvents = true
				rayxlog.Warnf("trace: batch %d hit max_events_per_path on at least one path", batchNum)
			}
			appendBatch(&out, events)

			remaining -= n
			batchNum++
		}
	}
	return out, nil
}

// appendBatch transposes a batch's AoS events into the accumulating SoA and
// updates the non-empty-path count, grouping by path in the order events
// were produced (already path-contiguous per CPUBackend.Dispatch).
func appendBatch(out *rayx.EventsSoA, events []rayx.Event) {
	var lastPath uint64
	sawPath := false
	for _, e := range events {
		if !sawPath || e.PathID != lastPath {
			out.NonEmptyPaths++
			lastPath = e.PathID
			sawPath = true
		}
		out.Append(e)
	}
}

