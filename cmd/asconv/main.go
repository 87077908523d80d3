// Command asconv converts airspace lists into files for onboard flight
// computers.
package main

import (
	"fmt"
	"os"
)

var (
	// Version of the build. This is injected at build-time.
	buildString = "unknown"
)

func main() {
	ko, args, err := initConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	lo := initLogger(ko)
	lo.Debug("starting asconv", "version", buildString)

	if err := run(ko, args, lo); err != nil {
		lo.Fatal("conversion failed", "error", err)
	}
}
