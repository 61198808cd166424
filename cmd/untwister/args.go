// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

package main

import (
	"fmt"
	"math"
	"os"
)

// Arguments is the struct DocOpt binds our command line into.
type Arguments struct {
	// Command selection bools
	Bruteforce bool
	Infer      bool
	Sample     bool
	Seed       bool
	State      bool
	List       bool
	Verbose    bool

	// Common options
	Prng         string
	Observations string

	// Bruteforce options
	Lo            int
	Hi            int
	Threads       int
	MinConfidence float64
	Depth         int

	// Infer options
	MaxSeedTries int

	// Sample options
	SeedValue int
}

// usage returns the DocOpt usage string describing this tool's command
// line surface.
func usage() string {
	return `Untwister PRNG Recovery Tool.
Usage:
  untwister bruteforce --prng NAME --observations FILE [--lo N] [--hi N] [--threads N] [--min-confidence C] [--depth N] [-v]
  untwister infer      --prng NAME --observations FILE [--max-seed-tries N] [-v]
  untwister sample seed  --prng NAME --seed-value N [-v]
  untwister sample state --prng NAME --observations FILE [-v]
  untwister list
  untwister -h | --help

Options:
  -h, --help                      Show full usage
  -v, --verbose                   Turn on debug output.
  --prng NAME                     The PRNG variant to target (see 'untwister list').
  --observations FILE             File holding a JSON array of observed outputs.
  --lo N                          Low end of the seed range to search, inclusive.             [default: 0]
  --hi N                          High end of the seed range to search, exclusive.            [default: 4294967295]
  --threads N                     Number of workers to split the seed range across.           [default: 4]
  --min-confidence C              Minimum subsequence-match percentage to report a candidate. [default: 100.0]
  --depth N                       Outputs to draw per candidate seed before giving up on it.  [default: 1000]
  --max-seed-tries N               Seeds to try when reversing an inferred state to a seed.    [default: 1000000]
  --seed-value N                  Seed to sample from.
`
}

// validateArguments checks constraints DocOpt itself can't express.
func validateArguments(args *Arguments) error {
	if args.Lo < 0 || args.Hi < 0 {
		return fmt.Errorf("seed range bounds must be non-negative")
	}
	if args.Hi <= args.Lo {
		return fmt.Errorf("--hi must be greater than --lo (the range [lo, hi) is half-open)")
	}
	if args.Hi > math.MaxUint32 {
		return fmt.Errorf("--hi exceeds the range of a uint32 seed: %v", args.Hi)
	}
	if args.Threads <= 0 {
		return fmt.Errorf("--threads must be positive")
	}
	if args.MinConfidence < 0 || args.MinConfidence > 100 {
		return fmt.Errorf("--min-confidence must be between 0 and 100")
	}
	if args.Depth <= 0 {
		return fmt.Errorf("--depth must be positive")
	}
	return nil
}

// dieOnError prints a formatted message followed by the error and exits
// with a non-zero status, the same shape the teacher's CLI error
// handling uses throughout.
func dieOnError(err error, format string, a ...interface{}) {
	if err != nil {
		fmt.Printf(format, a...)
		fmt.Printf(": %v\n", err)
		os.Exit(1)
	}
}
