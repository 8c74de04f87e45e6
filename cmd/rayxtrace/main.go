// Command rayxtrace runs a beamline fixture file through the tracer and
// prints a summary of the resulting events.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
