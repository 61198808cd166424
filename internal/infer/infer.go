// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

// Package infer recovers a generator's internal state - and, where
// possible, its seed - from a run of already-observed outputs, without
// searching a seed space at all. It slides a state-sized window across
// the observations, installs each window as a candidate state, and
// checks how well that candidate predicts everything outside the
// window.
package infer

import (
	"fmt"

	"github.com/sibench-labs/untwister/internal/prng"
)

// Result is the best candidate state found across every window offset
// tried, plus the seed if the candidate's predictions matched every
// surrounding observation exactly and the generator supports reversal.
type Result struct {
	State      []uint32
	Offset     int
	Confidence float64
	Seed       uint32
	SeedFound  bool
}

// Infer slides a state-sized window across observations and returns the
// offset whose installed state best predicts the rest of the sequence.
// Ties go to the lowest offset, since an earlier window implies a
// shorter burn-in before the generator's state became observable.
func Infer(generatorName string, observations []uint32, maxSeedTries uint32) (Result, error) {
	if !prng.IsSupported(generatorName) {
		return Result{}, fmt.Errorf("infer: unknown generator %q", generatorName)
	}

	probe, err := prng.New(generatorName)
	if err != nil {
		return Result{}, err
	}
	stateSize := probe.StateSize()
	if len(observations) < stateSize {
		return Result{}, fmt.Errorf("infer: %q needs at least %d observations, got %d", generatorName, stateSize, len(observations))
	}

	var best Result
	found := false

	for offset := 0; offset+stateSize <= len(observations); offset++ {
		gen, err := prng.New(generatorName)
		if err != nil {
			return Result{}, err
		}

		window := observations[offset : offset+stateSize]
		gen.SetState(window)
		gen.SetEvidence(observations)

		tail := observations[offset+stateSize:]
		forward := gen.PredictForward(len(tail))
		matched, total := countMatches(forward, tail, false)

		head := observations[:offset]
		var backward []uint32
		if gen.SupportsBackward() && len(head) > 0 {
			backward = gen.PredictBackward(len(head))
			m, t := countMatches(backward, head, true)
			matched += m
			total += t
		}

		// Give the generator a chance to refine the candidate against
		// both directions of evidence before scoring; every current
		// variant declines (window alignment with no rotation
		// ambiguity leaves nothing to tune).
		if gen.Tune(forward, backward) {
			forward = gen.PredictForward(len(tail))
			matched, total = countMatches(forward, tail, false)
			if gen.SupportsBackward() && len(head) > 0 {
				backward = gen.PredictBackward(len(head))
				m, t := countMatches(backward, head, true)
				matched += m
				total += t
			}
		}

		confidence := 100.0
		if total > 0 {
			confidence = 100 * float64(matched) / float64(total)
		}

		if !found || confidence > best.Confidence {
			found = true
			best = Result{
				State:      append([]uint32(nil), window...),
				Offset:     offset,
				Confidence: confidence,
			}
		}
	}

	if found && best.Confidence >= 100 {
		gen, err := prng.New(generatorName)
		if err == nil && gen.SupportsReversal() {
			gen.SetState(best.State)
			if seed, ok := gen.ReverseToSeed(maxSeedTries); ok {
				best.Seed = seed
				best.SeedFound = true
			}
		}
	}

	return best, nil
}

// countMatches scores actual as a subsequence of predicted: each
// predicted value is consumed in turn, and the next actual value is
// consumed and counted only when it equals it, so gaps in actual are
// tolerated. With fromEnd set, both slices are walked from their last
// element backward, outward from a window that follows them. Returns
// (matched, len(actual)).
func countMatches(predicted, actual []uint32, fromEnd bool) (int, int) {
	matched := 0
	for k := 0; k < len(predicted) && matched < len(actual); k++ {
		p, a := predicted[k], actual[matched]
		if fromEnd {
			p, a = predicted[len(predicted)-1-k], actual[len(actual)-1-matched]
		}
		if p == a {
			matched++
		}
	}
	return matched, len(actual)
}
