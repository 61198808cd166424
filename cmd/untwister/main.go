// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

package main

import (
	"fmt"

	"github.com/docopt/docopt-go"

	"github.com/sibench-labs/untwister"
	"github.com/sibench-labs/untwister/internal/logger"
)

func main() {
	// Error should never happen outside of development, since docopt is
	// complaining that our usage string has bad syntax.
	opts, err := docopt.ParseDoc(usage())
	dieOnError(err, "Error parsing arguments")

	var args Arguments
	err = opts.Bind(&args)
	dieOnError(err, "Failure binding arguments")

	err = validateArguments(&args)
	dieOnError(err, "Failure validating arguments")

	if args.Verbose {
		fmt.Printf("%v\n", prettyPrint(args))
		logger.SetLevel(logger.Debug)
	}

	switch {
	case args.List:
		runList()
	case args.Bruteforce:
		runBruteforce(&args)
	case args.Infer:
		runInfer(&args)
	case args.Sample && args.Seed:
		runSampleFromSeed(&args)
	case args.Sample && args.State:
		runSampleFromState(&args)
	}
}

func runList() {
	for _, name := range untwister.SupportedPRNGs() {
		fmt.Println(name)
	}
}

func runBruteforce(args *Arguments) {
	observations, err := loadObservations(args.Observations)
	dieOnError(err, "Failure loading observations")

	s := untwister.NewSession()
	err = s.SetGenerator(args.Prng)
	dieOnError(err, "Failure selecting generator")

	s.SetObservations(observations)
	err = s.SetThreads(uint32(args.Threads))
	dieOnError(err, "Failure setting thread count")
	err = s.SetMinConfidence(args.MinConfidence)
	dieOnError(err, "Failure setting minimum confidence")
	err = s.SetDepth(uint32(args.Depth))
	dieOnError(err, "Failure setting search depth")

	logger.Infof("Searching seeds %d..%d across %d workers\n", args.Lo, args.Hi, args.Threads)

	matches, err := s.Bruteforce(uint32(args.Lo), uint32(args.Hi))
	dieOnError(err, "Failure running bruteforce search")

	reportBruteforce(matches, s.TriedCount())
}

func runInfer(args *Arguments) {
	observations, err := loadObservations(args.Observations)
	dieOnError(err, "Failure loading observations")

	s := untwister.NewSession()
	err = s.SetGenerator(args.Prng)
	dieOnError(err, "Failure selecting generator")

	s.SetObservations(observations)

	if !s.CanInferState() {
		size, _ := s.StateSize()
		dieOnError(fmt.Errorf("need at least %d observations, have %d", size, len(observations)),
			"Failure running state inference")
	}

	result, err := s.InferState(uint32(args.MaxSeedTries))
	dieOnError(err, "Failure running state inference")

	reportInfer(result)
}

func runSampleFromSeed(args *Arguments) {
	s := untwister.NewSession()
	err := s.SetGenerator(args.Prng)
	dieOnError(err, "Failure selecting generator")

	sample, err := s.GenerateSampleFromSeed(uint32(args.SeedValue))
	dieOnError(err, "Failure generating sample")

	reportSample(sample)
}

func runSampleFromState(args *Arguments) {
	observations, err := loadObservations(args.Observations)
	dieOnError(err, "Failure loading observations")

	s := untwister.NewSession()
	err = s.SetGenerator(args.Prng)
	dieOnError(err, "Failure selecting generator")

	size, err := s.StateSize()
	dieOnError(err, "Failure reading state size")
	if len(observations) < size {
		dieOnError(fmt.Errorf("need at least %d observations, have %d", size, len(observations)),
			"Failure generating sample")
	}

	sample, err := s.GenerateSampleFromState(observations[:size])
	dieOnError(err, "Failure generating sample")

	reportSample(sample)
}
