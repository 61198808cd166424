// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

// Package untwister recovers the seed or internal state of a PRNG from
// its observed output, either by brute-forcing a seed range or by
// inferring state directly from a long enough run of observations.
package untwister

import (
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/sibench-labs/untwister/internal/bruteforce"
	"github.com/sibench-labs/untwister/internal/infer"
	"github.com/sibench-labs/untwister/internal/prng"
)

// defaultDepth is how many outputs Bruteforce draws per candidate seed
// before giving up on it, absent a caller-supplied SetDepth.
const defaultDepth = 1000

// RunState is the session's lifecycle, advanced only by Bruteforce and
// InferState and observable via RunState/IsRunning/IsCompleted.
type RunState int32

const (
	StateIdle RunState = iota
	StateStarting
	StateRunning
	StateCompleted
)

// Session is the single entry point this module exposes: configure a
// target generator, feed it observations, then either brute-force a
// seed range or infer state directly.
type Session struct {
	mu sync.Mutex

	generatorName string
	minConfidence float64 // percentage in [0,100]
	threads       uint32
	depth         uint32
	observations  []uint32
	lastTried     uint64 // seeds tried across all workers of the most recently completed Bruteforce

	bf *bruteforce.Bruteforcer // non-nil only while a Bruteforce call is in flight

	state int32 // atomic RunState
}

// NewSession returns a Session defaulting to mt19937 with an exact
// (100.0%) confidence requirement, a single worker, and a depth of 1000
// draws per candidate seed.
func NewSession() *Session {
	return &Session{
		generatorName: "mt19937",
		minConfidence: 100.0,
		threads:       1,
		depth:         defaultDepth,
		state:         int32(StateIdle),
	}
}

// SetGenerator points the session at a registered PRNG by name.
func (s *Session) SetGenerator(name string) error {
	if !prng.IsSupported(name) {
		return ErrUnknownGenerator
	}
	s.mu.Lock()
	s.generatorName = name
	s.mu.Unlock()
	return nil
}

func (s *Session) Generator() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generatorName
}

// SetThreads sets how many workers Bruteforce splits its range across.
// Zero is not a valid worker count.
func (s *Session) SetThreads(n uint32) error {
	if n == 0 {
		return ErrInvalidConfiguration
	}
	s.mu.Lock()
	s.threads = n
	s.mu.Unlock()
	return nil
}

func (s *Session) Threads() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.threads
}

// SetDepth sets how many outputs Bruteforce draws per candidate seed
// before giving up on it. Bruteforce itself rejects a depth narrower
// than the observation count it would need to match against.
func (s *Session) SetDepth(depth uint32) error {
	s.mu.Lock()
	s.depth = depth
	s.mu.Unlock()
	return nil
}

func (s *Session) Depth() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.depth
}

// SetMinConfidence sets the subsequence-match percentage, in [0,100], a
// candidate seed must clear for Bruteforce to report it. InferState does
// not use it.
func (s *Session) SetMinConfidence(confidence float64) error {
	if confidence < 0 || confidence > 100 {
		return ErrInvalidConfiguration
	}
	s.mu.Lock()
	s.minConfidence = confidence
	s.mu.Unlock()
	return nil
}

func (s *Session) MinConfidence() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minConfidence
}

// AddObservation appends one observed output to the session's evidence.
func (s *Session) AddObservation(value uint32) {
	s.mu.Lock()
	s.observations = append(s.observations, value)
	s.mu.Unlock()
}

// SetObservations replaces the session's evidence wholesale, e.g. after
// loading a file of previously captured outputs.
func (s *Session) SetObservations(values []uint32) {
	s.mu.Lock()
	s.observations = append([]uint32(nil), values...)
	s.mu.Unlock()
}

func (s *Session) Observations() []uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uint32(nil), s.observations...)
}

// StateSize returns the current generator's internal state width in
// uint32 words - the minimum number of observations InferState needs.
func (s *Session) StateSize() (int, error) {
	gen, err := prng.New(s.Generator())
	if err != nil {
		return 0, err
	}
	return gen.StateSize(), nil
}

// RunState reports the session's current lifecycle stage.
func (s *Session) RunState() RunState { return RunState(atomic.LoadInt32(&s.state)) }
func (s *Session) IsRunning() bool    { return s.RunState() == StateRunning }
func (s *Session) IsCompleted() bool  { return s.RunState() == StateCompleted }

// start performs the idle->starting->running transition, the same
// single-winner CAS the original tool used to guard its bruteforce()
// entry point against being called twice concurrently.
func (s *Session) start() error {
	if !atomic.CompareAndSwapInt32(&s.state, int32(StateIdle), int32(StateStarting)) {
		return ErrAlreadyRunning
	}
	atomic.StoreInt32(&s.state, int32(StateRunning))
	return nil
}

func (s *Session) finish() {
	atomic.StoreInt32(&s.state, int32(StateCompleted))
}

// Reset returns a completed session to idle so it can run again.
func (s *Session) Reset() {
	atomic.StoreInt32(&s.state, int32(StateIdle))
}

// Bruteforce searches the half-open seed range [lo, hi) for a seed whose
// output matches the session's observations with at least its
// configured confidence.
func (s *Session) Bruteforce(lo, hi uint32) ([]bruteforce.Match, error) {
	if hi <= lo {
		return nil, ErrInvalidRange
	}

	s.mu.Lock()
	name := s.generatorName
	minConfidence := s.minConfidence
	threads := s.threads
	depth := s.depth
	observations := append([]uint32(nil), s.observations...)
	s.mu.Unlock()

	if len(observations) == 0 {
		return nil, ErrInvalidConfiguration
	}
	if int(depth) < len(observations) {
		return nil, ErrInvalidConfiguration
	}

	if err := s.start(); err != nil {
		return nil, err
	}
	defer s.finish()

	bf, err := bruteforce.New(name, observations, minConfidence, int(depth))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.bf = bf
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.bf = nil
		s.mu.Unlock()
	}()

	matches := bf.Run(lo, hi, threads)

	var tried uint64
	for _, n := range bf.Progress() {
		tried += uint64(n)
	}
	s.mu.Lock()
	s.lastTried = tried
	s.mu.Unlock()

	return matches, nil
}

// GetStatus returns each worker's seed-tried count for the in-flight
// Bruteforce, one entry per partition. It errors with ErrNotRunning if
// called while the session is idle or completed.
func (s *Session) GetStatus() ([]uint32, error) {
	if !s.IsRunning() {
		return nil, ErrNotRunning
	}
	s.mu.Lock()
	bf := s.bf
	s.mu.Unlock()
	if bf == nil {
		return nil, ErrNotRunning
	}
	return bf.Progress(), nil
}

// TriedCount reports the total number of seeds tried across all workers
// of the most recently completed Bruteforce.
func (s *Session) TriedCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTried
}

// Cancel asks an in-flight Bruteforce to stop early.
func (s *Session) Cancel() error {
	s.mu.Lock()
	bf := s.bf
	s.mu.Unlock()
	if bf == nil {
		return ErrNotRunning
	}
	bf.Cancel()
	return nil
}

// CanInferState reports whether enough observations have been collected
// to install a full state window for the current generator.
func (s *Session) CanInferState() bool {
	size, err := s.StateSize()
	if err != nil {
		return false
	}
	return len(s.Observations()) >= size
}

// InferState slides a state-sized window across the session's
// observations and returns the best-matching candidate state, including
// a recovered seed when the match is exact and the generator supports
// reversal.
func (s *Session) InferState(maxSeedTries uint32) (infer.Result, error) {
	s.mu.Lock()
	name := s.generatorName
	observations := append([]uint32(nil), s.observations...)
	s.mu.Unlock()

	if len(observations) == 0 {
		return infer.Result{}, ErrInsufficientObservations
	}

	if err := s.start(); err != nil {
		return infer.Result{}, err
	}
	defer s.finish()

	return infer.Infer(name, observations, maxSeedTries)
}

// GenerateSampleFromSeed seeds a fresh generator, burns a random number
// of outputs to land past any initial transient the way a caller
// sampling a live system would, and returns exactly ten outputs.
func (s *Session) GenerateSampleFromSeed(seed uint32) ([]uint32, error) {
	gen, err := prng.New(s.Generator())
	if err != nil {
		return nil, err
	}

	gen.Seed(seed)
	for i, burn := 0, rand.Intn(100); i < burn; i++ {
		gen.Next()
	}

	sample := make([]uint32, 10)
	for i := range sample {
		sample[i] = gen.Next()
	}
	return sample, nil
}

// GenerateSampleFromState installs state on a fresh generator and
// returns the ten outputs that would follow it.
func (s *Session) GenerateSampleFromState(state []uint32) ([]uint32, error) {
	gen, err := prng.New(s.Generator())
	if err != nil {
		return nil, err
	}
	gen.SetState(state)
	return gen.PredictForward(10), nil
}

// SupportedPRNGs lists every registered generator name.
func SupportedPRNGs() []string { return prng.Names() }

// IsSupported reports whether name is a registered generator.
func IsSupported(name string) bool { return prng.IsSupported(name) }
