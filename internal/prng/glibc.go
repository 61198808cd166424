// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

package prng

// GLIBC reproduces the TYPE_3 additive lagged-Fibonacci generator behind
// glibc's rand()/random(): degree 31, separation 3, seeded by a Lehmer
// LCG and run through a warm-up before any output is exposed.
//
// Unlike glibc's actual random(), this generator exposes the full 32-bit
// accumulator word as its output rather than right-shifting away the low
// bit. That shift is not reversible (the low bit it discards can't be
// recovered from later output alone), so a from-scratch reimplementation
// built for exact state prediction keeps the full word - the recurrence
// that makes forward and backward prediction possible depends on it.
type GLIBC struct {
	noEvidence
	core glibcCore
	seed uint32
}

const (
	glibcDegree     = 31
	glibcSeparation = 3
	glibcStateSize  = 344 // 10*degree + degree + separation
	glibcWarmup     = glibcStateSize - glibcDegree
)

type glibcCore struct {
	tape []uint32
}

func lehmerNext(prev uint32) uint32 {
	return uint32((uint64(prev) * 16807) % 2147483647)
}

func (c *glibcCore) seed(seed uint32) {
	if seed == 0 {
		seed = 1
	}
	c.tape = make([]uint32, glibcDegree, glibcStateSize+64)
	c.tape[0] = seed
	for i := 1; i < glibcDegree; i++ {
		c.tape[i] = lehmerNext(c.tape[i-1])
	}
	for i := 0; i < glibcWarmup; i++ {
		c.extend()
	}
}

// extend appends the next raw word via the recurrence tape[i] =
// tape[i-3] + tape[i-31] (mod 2^32) and returns it.
func (c *glibcCore) extend() uint32 {
	n := len(c.tape)
	v := c.tape[n-glibcSeparation] + c.tape[n-glibcDegree]
	c.tape = append(c.tape, v)
	return v
}

func (c *glibcCore) next() uint32 { return c.extend() }

func (c *glibcCore) getState() []uint32 {
	n := len(c.tape)
	start := n - glibcStateSize
	if start < 0 {
		start = 0
	}
	out := make([]uint32, n-start)
	copy(out, c.tape[start:])
	return out
}

func (c *glibcCore) setState(state []uint32) {
	n := len(state)
	if n > glibcStateSize {
		state = state[n-glibcStateSize:]
	}
	c.tape = append([]uint32(nil), state...)
}

func (c *glibcCore) predictForward(n int) []uint32 {
	snapshot := append([]uint32(nil), c.tape...)
	out := make([]uint32, n)
	for i := range out {
		out[i] = c.extend()
	}
	c.tape = snapshot
	return out
}

// predictBackward inverts the recurrence (tape[j] = tape[j+31] -
// tape[j+28]) to walk backward from the front of the installed window.
func (c *glibcCore) predictBackward(n int) []uint32 {
	if len(c.tape) < glibcDegree+glibcSeparation+1 {
		return nil
	}
	buf := append([]uint32(nil), c.tape...)
	out := make([]uint32, n)
	for k := 0; k < n; k++ {
		v := buf[glibcDegree-1] - buf[glibcDegree-1-glibcSeparation]
		out[n-1-k] = v
		buf = append([]uint32{v}, buf...)
	}
	return out
}

func newGLIBC() Generator { return &GLIBC{} }

func init() { register("glibc", newGLIBC) }

func (g *GLIBC) Name() string { return "glibc" }

func (g *GLIBC) Seed(seed uint32) {
	g.seed = seed
	g.core.seed(seed)
}

func (g *GLIBC) Next() uint32 { return g.core.next() }

func (g *GLIBC) StateSize() int { return glibcStateSize }

func (g *GLIBC) GetState() []uint32 { return g.core.getState() }

func (g *GLIBC) SetState(state []uint32) { g.core.setState(state) }

func (g *GLIBC) PredictForward(n int) []uint32 { return g.core.predictForward(n) }

func (g *GLIBC) PredictBackward(n int) []uint32 { return g.core.predictBackward(n) }

func (g *GLIBC) SupportsBackward() bool { return true }

func (g *GLIBC) SupportsReversal() bool { return true }

// ReverseToSeed tries seeds in [0, maxTries). The installed state is a
// window of observed outputs, so each candidate is compared by the first
// StateSize() outputs it produces after its warm-up, not by the seed and
// warm-up words themselves.
func (g *GLIBC) ReverseToSeed(maxTries uint32) (uint32, bool) {
	want := g.core.getState()
	for seed := uint32(0); seed < maxTries; seed++ {
		var c glibcCore
		c.seed(seed)
		for i := 0; i < glibcStateSize; i++ {
			c.extend()
		}
		got := c.getState()
		if equalWords(got, want) {
			return seed, true
		}
	}
	return 0, false
}
