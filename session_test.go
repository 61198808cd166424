// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

package untwister

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sibench-labs/untwister/internal/prng"
)

func observationsForSeed(t *testing.T, generator string, seed uint32, n int) []uint32 {
	t.Helper()
	gen, err := prng.New(generator)
	require.NoError(t, err)
	gen.Seed(seed)
	out := make([]uint32, n)
	for i := range out {
		out[i] = gen.Next()
	}
	return out
}

func TestSessionBruteforceRecoversSmallSeed(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.SetGenerator("mt19937"))
	require.NoError(t, s.SetMinConfidence(100.0))
	require.NoError(t, s.SetThreads(1))
	s.SetObservations(observationsForSeed(t, "mt19937", 1, 5))

	matches, err := s.Bruteforce(0, 100)
	require.NoError(t, err)

	found := false
	for _, m := range matches {
		if m.Seed == 1 {
			found = true
		}
	}
	assert.True(t, found)
	assert.True(t, s.IsCompleted())
}

func TestSessionBruteforceParallelRecoversSeed(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.SetGenerator("mt19937"))
	require.NoError(t, s.SetThreads(4))
	const seed = uint32(0xDEADBEEF) % 2000
	s.SetObservations(observationsForSeed(t, "mt19937", seed, 6))

	matches, err := s.Bruteforce(0, 2000)
	require.NoError(t, err)

	found := false
	for _, m := range matches {
		if m.Seed == seed {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSessionBruteforceRejectsEmptyObservations(t *testing.T) {
	s := NewSession()
	_, err := s.Bruteforce(0, 100)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestSessionBruteforceRejectsZeroThreads(t *testing.T) {
	s := NewSession()
	assert.ErrorIs(t, s.SetThreads(0), ErrInvalidConfiguration)
}

func TestSessionSetMinConfidenceRejectsOutOfRange(t *testing.T) {
	s := NewSession()
	assert.ErrorIs(t, s.SetMinConfidence(-1), ErrInvalidConfiguration)
	assert.ErrorIs(t, s.SetMinConfidence(101), ErrInvalidConfiguration)
}

func TestSessionBruteforceRejectsDepthBelowObservationCount(t *testing.T) {
	s := NewSession()
	s.SetObservations([]uint32{1, 2, 3, 4, 5})
	require.NoError(t, s.SetDepth(2))
	_, err := s.Bruteforce(0, 100)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestSessionBruteforceRejectsEqualBounds(t *testing.T) {
	s := NewSession()
	s.SetObservations([]uint32{1, 2, 3})
	_, err := s.Bruteforce(10, 10)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestSessionGetStatusRequiresRunning(t *testing.T) {
	s := NewSession()
	_, err := s.GetStatus()
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestSessionBruteforceRejectsInvertedRange(t *testing.T) {
	s := NewSession()
	s.SetObservations([]uint32{1, 2, 3})
	_, err := s.Bruteforce(100, 0)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestSessionSetGeneratorRejectsUnknown(t *testing.T) {
	s := NewSession()
	err := s.SetGenerator("commodore-basic-rnd")
	assert.ErrorIs(t, err, ErrUnknownGenerator)
}

func TestSessionInferStateGLIBC(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.SetGenerator("glibc"))
	s.SetObservations(observationsForSeed(t, "glibc", 9001, 400))

	result, err := s.InferState(1 << 16)
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Confidence)
	assert.True(t, result.SeedFound)
	assert.Equal(t, uint32(9001), result.Seed)
	assert.True(t, s.IsCompleted())
}

func TestSessionInferStateJavaTruncatedSeed(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.SetGenerator("java"))
	s.SetObservations(observationsForSeed(t, "java", 555, 10))

	result, err := s.InferState(0)
	require.NoError(t, err)
	assert.True(t, result.SeedFound)
	assert.Equal(t, uint32(555), result.Seed)
}

func TestSessionCanInferState(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.SetGenerator("mt19937"))
	assert.False(t, s.CanInferState())

	size, err := s.StateSize()
	require.NoError(t, err)
	s.SetObservations(make([]uint32, size))
	assert.True(t, s.CanInferState())
}

func TestSessionGenerateSampleFromSeedReturnsTen(t *testing.T) {
	s := NewSession()
	sample, err := s.GenerateSampleFromSeed(42)
	require.NoError(t, err)
	assert.Len(t, sample, 10)
}

func TestSessionGenerateSampleFromStateMatchesPrediction(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.SetGenerator("mt19937"))

	gen, err := prng.New("mt19937")
	require.NoError(t, err)
	gen.Seed(123)
	state := gen.GetState()
	want := gen.PredictForward(10)

	got, err := s.GenerateSampleFromState(state)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSessionRejectsDoubleRun(t *testing.T) {
	s := NewSession()
	s.SetObservations([]uint32{1, 2, 3})

	require.NoError(t, s.start())
	_, err := s.Bruteforce(0, 10)
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	s.finish()
}

func TestSupportedPRNGsListsAllVariants(t *testing.T) {
	names := SupportedPRNGs()
	for _, want := range []string{"mt19937", "glibc", "php", "java", "ruby", "python", "wordpress"} {
		assert.Contains(t, names, want)
		assert.True(t, IsSupported(want))
	}
}
