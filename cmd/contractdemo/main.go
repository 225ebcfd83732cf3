// Package main implements the contractdemo CLI tool.
//
// contractdemo runs the bundled contract scenarios: small guarded types whose
// calls are expected to pass or to raise a specific violation. It prints
// every step with its expected and observed outcome, and the formatted
// report of each violation.
//
// Usage:
//
//	contractdemo list                 # List scenarios
//	contractdemo run                  # Run every scenario
//	contractdemo run ctor loop        # Run selected scenarios
//	contractdemo run --metrics        # Also print violation counters
//	contractdemo version              # Show version information
//
// The exit status is 1 if any step's outcome differs from its expectation.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
