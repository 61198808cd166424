// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

package bruteforce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sibench-labs/untwister/internal/prng"
)

func TestPartitionCoversRangeExactly(t *testing.T) {
	ranges := Partition(0, 1000, 7)
	require.Len(t, ranges, 7)

	var total uint64
	for i, r := range ranges {
		total += uint64(r.End) - uint64(r.Start)
		if i > 0 {
			assert.Equal(t, ranges[i-1].End, r.Start, "ranges must be contiguous")
		}
	}
	assert.Equal(t, uint64(1000), total)
	assert.Equal(t, uint32(0), ranges[0].Start)
	assert.Equal(t, uint32(1000), ranges[len(ranges)-1].End)
}

func TestPartitionGivesRemainderToFirstChunks(t *testing.T) {
	// 9 seeds over 3 threads: base 3, remainder 0 -> sizes 3,3,3.
	// 10 seeds over 3 threads: base 3, remainder 1 -> sizes 4,3,3.
	ranges := Partition(0, 10, 3)
	require.Len(t, ranges, 3)
	assert.Equal(t, uint32(4), ranges[0].End-ranges[0].Start)
	assert.Equal(t, uint32(3), ranges[1].End-ranges[1].Start)
	assert.Equal(t, uint32(3), ranges[2].End-ranges[2].Start)
}

func TestPartitionThreadsExceedingRangeSize(t *testing.T) {
	ranges := Partition(5, 8, 16)
	assert.Len(t, ranges, 3) // never more partitions than seeds available
}

func TestPartitionSingleThread(t *testing.T) {
	ranges := Partition(100, 200, 1)
	require.Len(t, ranges, 1)
	assert.Equal(t, uint32(100), ranges[0].Start)
	assert.Equal(t, uint32(200), ranges[0].End)
}

func TestPartitionEmptyAndInvertedIntervalsYieldNoRanges(t *testing.T) {
	assert.Nil(t, Partition(5, 5, 4))
	assert.Nil(t, Partition(5, 4, 4))
}

func TestBruteforcerFindsExactSeed(t *testing.T) {
	const seed = uint32(1)
	gen, err := prng.New("mt19937")
	require.NoError(t, err)
	gen.Seed(seed)
	observations := gen.PredictForward(5)

	bf, err := New("mt19937", observations, 100.0, 1000)
	require.NoError(t, err)

	matches := bf.Run(0, 200, 4)
	require.NotEmpty(t, matches)

	found := false
	for _, m := range matches {
		if m.Seed == seed {
			found = true
			assert.Equal(t, 100.0, m.Confidence)
		}
	}
	assert.True(t, found)
}

func TestBruteforcerRespectsMinConfidence(t *testing.T) {
	gen, err := prng.New("mt19937")
	require.NoError(t, err)
	gen.Seed(0xDEADBEEF % 50)
	observations := gen.PredictForward(4)

	bf, err := New("mt19937", observations, 100.0, 1000)
	require.NoError(t, err)

	matches := bf.Run(0, 50, 4)
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.Confidence, 100.0)
	}
}

func TestNewRejectsUnknownGenerator(t *testing.T) {
	_, err := New("not-a-generator", []uint32{1}, 100.0, 1000)
	assert.Error(t, err)
}

func TestNewRejectsEmptyObservations(t *testing.T) {
	_, err := New("mt19937", nil, 100.0, 1000)
	assert.Error(t, err)
}

func TestNewRejectsDepthBelowObservationCount(t *testing.T) {
	_, err := New("mt19937", []uint32{1, 2, 3}, 100.0, 2)
	assert.Error(t, err)
}

func TestCancelStopsSearchEarly(t *testing.T) {
	gen, err := prng.New("mt19937")
	require.NoError(t, err)
	gen.Seed(4000000000)
	observations := gen.PredictForward(5)

	bf, err := New("mt19937", observations, 100.0, 1000)
	require.NoError(t, err)
	bf.Cancel()

	matches := bf.Run(0, 1000, 1)
	assert.Empty(t, matches)
}

func TestSearchStopsSiblingWorkersOnPerfectMatch(t *testing.T) {
	const seed = uint32(7)
	gen, err := prng.New("mt19937")
	require.NoError(t, err)
	gen.Seed(seed)
	observations := gen.PredictForward(5)

	bf, err := New("mt19937", observations, 100.0, 1000)
	require.NoError(t, err)

	matches := bf.Run(0, 1_000_000, 8)
	require.NotEmpty(t, matches)
	assert.True(t, bf.isCancelled(), "finding a perfect match should flip the shared cancelled flag")
}
