package rayx

// config.go reduces the Trace API footprint using functional options.
// See: http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis

// CrystalBraggPolicy decides what happens to a ray when a Crystal
// behaviour's Bragg angle is not physically realisable (§4.D.6, §9).
type CrystalBraggPolicy int

const (
	// BraggAbsorb terminates only the offending ray with Absorbed. Default:
	// the least destructive choice, consistent with the other probabilistic
	// absorption paths in Mirror/Crystal.
	BraggAbsorb CrystalBraggPolicy = iota
	BraggBeyondHorizon
	BraggFatal
)

// RecordMask selects which ray attributes (or which object ids) are
// materialised in a batch's output SoA (§3.5).
type RecordMask uint64

const RecordAll RecordMask = ^RecordMask(0)

// Attribute bits recordMaskAttrs gates (§6.4): an Event's columns outside the
// selected set are zeroed before being appended to the output SoA, rather
// than omitted, since EventsSoA's parallel slices must stay equal length.
const (
	AttrPosition RecordMask = 1 << iota
	AttrDirection
	AttrEnergy
	AttrPathLen
	AttrField
	AttrOrder
)

// TraceConfig holds the options that can be set before calling Trace.
type TraceConfig struct {
	sequential        bool
	maxEventsPerPath  int
	maxBatchSize      int
	seed              int64
	recordMaskAttrs   RecordMask
	recordMaskObjects RecordMask
	braggPolicy       CrystalBraggPolicy
}

// configDefaults provides reasonable defaults so Trace runs even if no
// configuration attributes are set.
var configDefaults = TraceConfig{
	sequential:        true,
	maxEventsPerPath:  100,
	maxBatchSize:      4096,
	seed:              0,
	recordMaskAttrs:   RecordAll,
	recordMaskObjects: RecordAll,
	braggPolicy:       BraggAbsorb,
}

// Attr defines optional TraceConfig attributes.
//
//	cfg := rayx.NewConfig(
//	   rayx.Sequential(false),
//	   rayx.MaxEventsPerPath(64),
//	   rayx.Seed(1234),
//	)
type Attr func(*TraceConfig)

// NewConfig builds a TraceConfig from the defaults plus the given
// overrides, applied in order.
func NewConfig(attrs ...Attr) TraceConfig {
	c := configDefaults
	for _, a := range attrs {
		a(&c)
	}
	return c
}

// Sequential controls whether tracing follows beamline order (true) or
// searches all elements for the nearest hit each step (false).
func Sequential(yes bool) Attr {
	return func(c *TraceConfig) { c.sequential = yes }
}

// MaxEventsPerPath sets the hard per-path event cap. Must be >= 1.
func MaxEventsPerPath(n int) Attr {
	return func(c *TraceConfig) { c.maxEventsPerPath = n }
}

// MaxBatchSize sets the hard per-dispatch ray cap. Must be >= 1.
func MaxBatchSize(n int) Attr {
	return func(c *TraceConfig) { c.maxBatchSize = n }
}

// Seed sets the 64-bit value that drives all per-path RNG.
func Seed(seed int64) Attr {
	return func(c *TraceConfig) { c.seed = seed }
}

// RecordMaskAttrs selects which ray attributes are materialised in output.
func RecordMaskAttrs(mask RecordMask) Attr {
	return func(c *TraceConfig) { c.recordMaskAttrs = mask }
}

// RecordMaskObjects selects which object ids emit events.
func RecordMaskObjects(mask RecordMask) Attr {
	return func(c *TraceConfig) { c.recordMaskObjects = mask }
}

// BraggPolicy sets the Crystal unrealisable-Bragg-angle policy.
func BraggPolicy(p CrystalBraggPolicy) Attr {
	return func(c *TraceConfig) { c.braggPolicy = p }
}

// Validate returns a ConfigError if the configuration cannot drive a trace.
func (c *TraceConfig) Validate() error {
	if c.maxEventsPerPath < 1 {
		return NewConfigError("max_events_per_path must be >= 1")
	}
	if c.maxBatchSize < 1 {
		return NewConfigError("max_batch_size must be >= 1")
	}
	return nil
}

func (c *TraceConfig) Sequential() bool                 { return c.sequential }
func (c *TraceConfig) MaxEventsPerPath() int            { return c.maxEventsPerPath }
func (c *TraceConfig) MaxBatchSize() int                { return c.maxBatchSize }
func (c *TraceConfig) Seed() int64                      { return c.seed }
func (c *TraceConfig) RecordMaskAttrs() RecordMask      { return c.recordMaskAttrs }
func (c *TraceConfig) RecordMaskObjects() RecordMask    { return c.recordMaskObjects }
func (c *TraceConfig) BraggPolicy() CrystalBraggPolicy  { return c.braggPolicy }
