// Package config loads a TraceConfig plus a minimal fixture beamline from
// YAML (§1.3). This is NOT an RML importer — RML parsing is explicitly out
// of scope — it is a convenience fixture format for cmd/rayxtrace and this
// package's own tests, standing in for "an adapter already produced the
// compiled OpticalElement array."
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"rayx/rayx"
)

// TraceConfig mirrors rayx.TraceConfig's functional-option fields as plain
// YAML-tagged data.
type TraceConfig struct {
	Sequential       bool   `yaml:"sequential"`
	MaxEventsPerPath int    `yaml:"max_events_per_path"`
	MaxBatchSize     int    `yaml:"max_batch_size"`
	Seed             int64  `yaml:"seed"`
	BraggPolicy      string `yaml:"bragg_policy"` // "absorb" | "beyond_horizon" | "fatal"
}

// File is the top-level fixture document: a TraceConfig plus a Beamline.
type File struct {
	Trace    TraceConfig `yaml:"trace"`
	Beamline Beamline    `yaml:"beamline"`
}

// Load reads and parses a fixture YAML document from path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, errors.Wrapf(err, "config: reading %s", path)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, errors.Wrapf(err, "config: parsing %s", path)
	}
	return f, nil
}

// braggPolicies maps the fixture's human-readable policy names to
// rayx.CrystalBraggPolicy.
var braggPolicies = map[string]rayx.CrystalBraggPolicy{
	"":               rayx.BraggAbsorb,
	"absorb":         rayx.BraggAbsorb,
	"beyond_horizon": rayx.BraggBeyondHorizon,
	"fatal":          rayx.BraggFatal,
}

// BuildTraceConfig turns the fixture's TraceConfig into a rayx.TraceConfig,
// falling back to rayx's own defaults for zero fields.
func (t TraceConfig) BuildTraceConfig() (rayx.TraceConfig, error) {
	policy, ok := braggPolicies[t.BraggPolicy]
	if !ok {
		return rayx.TraceConfig{}, errors.Errorf("config: unknown bragg_policy %q", t.BraggPolicy)
	}
	attrs := []rayx.Attr{
		rayx.Sequential(t.Sequential),
		rayx.Seed(t.Seed),
		rayx.BraggPolicy(policy),
	}
	if t.MaxEventsPerPath > 0 {
		attrs = append(attrs, rayx.MaxEventsPerPath(t.MaxEventsPerPath))
	}
	if t.MaxBatchSize > 0 {
		attrs = append(attrs, rayx.MaxBatchSize(t.MaxBatchSize))
	}
	cfg := rayx.NewConfig(attrs...)
	if err := cfg.Validate(); err != nil {
		return rayx.TraceConfig{}, err
	}
	return cfg, nil
}
