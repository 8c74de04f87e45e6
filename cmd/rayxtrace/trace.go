package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rayx/config"
	"rayx/rayx"
	"rayx/trace"
)

var traceCmd = &cobra.Command{
	Use:   "trace <beamline.yaml>",
	Short: "Run the rays in a fixture beamline YAML file through the tracer",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrace,
}

func runTrace(cmd *cobra.Command, args []string) error {
	f, err := config.Load(args[0])
	if err != nil {
		return err
	}
	cfg, err := f.Trace.BuildTraceConfig()
	if err != nil {
		return err
	}
	beamline, err := f.Beamline.BuildBeamline()
	if err != nil {
		return err
	}

	out, err := trace.Trace(beamline, cfg)
	if err != nil {
		return err
	}
	printSummary(cmd, out)
	return nil
}

func printSummary(cmd *cobra.Command, out rayx.EventsSoA) {
	fmt.Fprintf(cmd.OutOrStdout(), "paths: %d non-empty, %d total events\n", out.NonEmptyPaths, out.TotalEvents)
	if out.TooManyEvents {
		fmt.Fprintln(cmd.OutOrStdout(), "warning: at least one path hit max_events_per_path")
	}
	counts := map[rayx.EventType]int{}
	for _, et := range out.EventType {
		counts[et]++
	}
	for et, n := range counts {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-16s %d\n", et, n)
	}
}
