// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

// Package prng implements the set of pseudo-random number generators that
// the bruteforce and inference engines can target: one Generator per
// language/runtime whose rand() or Random class has a known, reversible
// internal state.
package prng

import "fmt"

// Generator is the abstraction both the bruteforce and state-inference
// engines drive. A Generator knows how to seed itself, produce the next
// output in its stream, and (where the underlying algorithm allows it)
// expose and reinstall its internal state so that callers can predict
// future or past outputs without re-deriving the seed.
//
// Not every method is meaningful for every variant: SupportsBackward and
// SupportsReversal let a caller ask before it invests in a prediction or
// reversal it has no hope of completing.
type Generator interface {
	// Name is the registry key this generator was constructed under.
	Name() string

	// Seed resets the generator to the stream produced by seed.
	Seed(seed uint32)

	// Next returns the next output in the stream and advances state.
	Next() uint32

	// StateSize is the number of uint32 words SetState/GetState operate on.
	StateSize() int

	// GetState returns a copy of the generator's internal state, expressed
	// as a window of StateSize() consecutive outputs of this generator's
	// own stream (i.e. in the same units a caller observes via Next()).
	GetState() []uint32

	// SetState installs state as the generator's internal state, as
	// captured by GetState (or by an equal-length window of observed
	// outputs believed to be state-aligned). After SetState, Next()
	// continues the stream from that point.
	SetState(state []uint32)

	// PredictForward returns the next n outputs that would follow the
	// current state, without disturbing the generator's actual position.
	PredictForward(n int) []uint32

	// PredictBackward returns the n outputs that would have preceded the
	// current state, oldest first, without disturbing the generator's
	// actual position. Returns nil if SupportsBackward is false.
	PredictBackward(n int) []uint32

	// SetEvidence gives the generator a chance to narrow its search space
	// using additional observed outputs surrounding the candidate state.
	// Every current variant ignores this (each embeds noEvidence).
	SetEvidence(observations []uint32)

	// Tune lets a generator refine a candidate state against forward and
	// backward evidence gathered by the caller. Returns true if it
	// adjusted its internal state.
	Tune(forwardEvidence, backwardEvidence []uint32) bool

	// SupportsBackward reports whether PredictBackward produces real
	// predictions instead of an empty slice.
	SupportsBackward() bool

	// SupportsReversal reports whether ReverseToSeed can ever succeed.
	SupportsReversal() bool

	// ReverseToSeed searches seeds in [0, maxTries) for one that
	// reproduces the generator's current state, returning the seed and
	// true on success.
	ReverseToSeed(maxTries uint32) (uint32, bool)
}

// Factory constructs a named Generator.
type Factory func() Generator

// noEvidence is embedded by variants that have no use for SetEvidence or
// Tune, so they satisfy the Generator interface without repeating two
// trivial no-op method bodies in every file.
type noEvidence struct{}

func (noEvidence) SetEvidence(observations []uint32) {}

func (noEvidence) Tune(forwardEvidence, backwardEvidence []uint32) bool { return false }

// errUnknown formats the error returned when a name isn't in the registry.
func errUnknown(name string) error {
	return fmt.Errorf("prng: unknown generator %q", name)
}
