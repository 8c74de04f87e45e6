package main

import (
	"github.com/spf13/cobra"

	"rayx/internal/rayxlog"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "rayxtrace",
	Short:         "Trace a beamline fixture and summarise the resulting events",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable development logging")
	cobra.OnInitialize(func() {
		if verbose {
			rayxlog.Development()
		}
	})
	rootCmd.AddCommand(traceCmd)
}
