// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

// Package bruteforce searches a seed range for a generator whose output
// reproduces a set of observed values, splitting the range across a
// worker pool in the same way the teacher's benchmark splits an object
// range across its worker pool: divide the interval as evenly as
// possible and let each worker own a contiguous slice of it.
package bruteforce

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sibench-labs/untwister/internal/prng"
)

// Match is a seed whose stream matched the observations with at least
// the caller's required confidence, expressed as a percentage in [0,100].
type Match struct {
	Seed       uint32
	Confidence float64
}

// Range is one worker's share of the seed space: the half-open interval
// [Start, End). A worker tries Start, Start+1, ..., End-1.
type Range struct {
	Start, End uint32
}

// Partition divides the half-open interval [lo, hi) into at most threads
// contiguous ranges of (hi-lo)/threads seeds each, with the first
// (hi-lo)%threads ranges getting one extra seed so the whole interval is
// covered exactly once with no overlap. An empty or inverted interval
// (hi <= lo) yields no ranges at all.
func Partition(lo, hi uint32, threads uint32) []Range {
	if threads == 0 {
		threads = 1
	}
	if hi <= lo {
		return nil
	}

	total := uint64(hi) - uint64(lo)
	t := uint64(threads)
	if t > total {
		t = total
	}
	base := total / t
	extra := total % t

	ranges := make([]Range, 0, t)
	cursor := uint64(lo)
	for i := uint64(0); i < t; i++ {
		size := base
		if i < extra {
			size++
		}
		start := cursor
		end := start + size
		ranges = append(ranges, Range{Start: uint32(start), End: uint32(end)})
		cursor = end
	}
	return ranges
}

// Bruteforcer owns the target generator and the observations every
// candidate seed is scored against.
type Bruteforcer struct {
	generatorName string
	observations  []uint32
	minConfidence float64 // percentage in [0,100]
	depth         int     // draws per candidate seed before giving up on it

	mu       sync.Mutex
	progress []uint32 // atomic per-worker counters of the most recent (or in-flight) Run

	cancelled int32 // atomic bool: set by Cancel, or by finding a perfect match, to stop early
}

// New constructs a Bruteforcer targeting generatorName, requiring at
// least minConfidence (a percentage in [0,100]) to report a seed as a
// match, and drawing up to depth outputs per candidate seed while
// looking for the observations as a subsequence.
func New(generatorName string, observations []uint32, minConfidence float64, depth int) (*Bruteforcer, error) {
	if !prng.IsSupported(generatorName) {
		return nil, fmt.Errorf("bruteforce: unknown generator %q", generatorName)
	}
	if len(observations) == 0 {
		return nil, fmt.Errorf("bruteforce: at least one observation is required")
	}
	if depth < len(observations) {
		return nil, fmt.Errorf("bruteforce: depth %d is less than %d observations", depth, len(observations))
	}
	return &Bruteforcer{
		generatorName: generatorName,
		observations:  observations,
		minConfidence: minConfidence,
		depth:         depth,
	}, nil
}

// Progress returns each worker's seed-tried count from the most recent
// (or in-flight) Run, one entry per partition, in partition order.
func (b *Bruteforcer) Progress() []uint32 {
	b.mu.Lock()
	progress := b.progress
	b.mu.Unlock()

	out := make([]uint32, len(progress))
	for i := range progress {
		out[i] = atomic.LoadUint32(&progress[i])
	}
	return out
}

// Cancel asks any in-flight Run to stop as soon as each worker notices,
// without waiting for its range to finish.
func (b *Bruteforcer) Cancel() {
	atomic.StoreInt32(&b.cancelled, 1)
}

func (b *Bruteforcer) isCancelled() bool {
	return atomic.LoadInt32(&b.cancelled) != 0
}

// Run searches [lo, hi) using threads goroutines, one per partition, and
// returns every matching seed found, ordered by partition then by seed
// within a partition.
func (b *Bruteforcer) Run(lo, hi uint32, threads uint32) []Match {
	atomic.StoreInt32(&b.cancelled, 0)

	ranges := Partition(lo, hi, threads)
	progress := make([]uint32, len(ranges))

	b.mu.Lock()
	b.progress = progress
	b.mu.Unlock()

	results := make([][]Match, len(ranges))
	var wg sync.WaitGroup
	for i, r := range ranges {
		wg.Add(1)
		go func(i int, r Range) {
			defer wg.Done()
			results[i] = b.search(r, &progress[i])
		}(i, r)
	}
	wg.Wait()

	var all []Match
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}

func (b *Bruteforcer) search(r Range, progress *uint32) []Match {
	gen, err := prng.New(b.generatorName)
	if err != nil {
		return nil
	}

	var matches []Match
	for seed := r.Start; seed < r.End; seed++ {
		if b.isCancelled() {
			break
		}

		gen.Seed(seed)
		confidence := matchConfidence(gen, b.observations, b.depth)
		atomic.AddUint32(progress, 1)

		if confidence >= b.minConfidence {
			matches = append(matches, Match{Seed: seed, Confidence: confidence})
		}
		if confidence >= 100 {
			// A perfect match: every other worker can stop too.
			atomic.StoreInt32(&b.cancelled, 1)
		}
	}
	return matches
}

// matchConfidence scores how much of observations appears, in order, as
// a subsequence of up to depth draws of gen's output - not necessarily
// contiguous, since the samples being matched against may themselves
// have been taken with gaps between draws. The percentage of
// observations matched, in [0,100], is the confidence.
func matchConfidence(gen prng.Generator, observations []uint32, depth int) float64 {
	if len(observations) == 0 {
		return 0
	}

	matched := 0
	for i := 0; i < depth && matched < len(observations); i++ {
		if gen.Next() == observations[matched] {
			matched++
		}
	}
	return 100 * float64(matched) / float64(len(observations))
}
