// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

package prng

const mtDegree = 624

// mtCore is the shared Mersenne Twister engine (state array, twist and
// temper/untemper) underneath MT19937, PHP, Ruby, Python and WordPress -
// they differ only in how they turn a seed into the initial mt array.
type mtCore struct {
	mt    [mtDegree]uint32
	index int // 0..mtDegree; mtDegree means "twist before the next read"
}

func (c *mtCore) seedStandard(seed uint32) {
	c.mt[0] = seed
	for i := 1; i < mtDegree; i++ {
		prev := c.mt[i-1]
		c.mt[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	c.index = mtDegree
}

// seedLegacy reproduces the pre-1999 sgenrand() seeding that PHP's
// mt_rand() still uses: a plain linear congruential fill instead of
// init_genrand's tempered-multiplier recurrence.
func (c *mtCore) seedLegacy(seed uint32) {
	for i := 0; i < mtDegree; i++ {
		c.mt[i] = seed
		seed = seed*69069 + 1
	}
	c.index = mtDegree
}

// seedByArray is the init_by_array keying used by Ruby's and Python's
// Random, which first runs seedStandard(19650218) and then folds in an
// arbitrary-length key.
func (c *mtCore) seedByArray(key []uint32) {
	c.seedStandard(19650218)
	i, j := 1, 0
	k := mtDegree
	if len(key) > k {
		k = len(key)
	}
	for ; k > 0; k-- {
		prev := c.mt[i-1]
		c.mt[i] = (c.mt[i] ^ ((prev ^ (prev >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= mtDegree {
			c.mt[0] = c.mt[mtDegree-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = mtDegree - 1; k > 0; k-- {
		prev := c.mt[i-1]
		c.mt[i] = (c.mt[i] ^ ((prev ^ (prev >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= mtDegree {
			c.mt[0] = c.mt[mtDegree-1]
			i = 1
		}
	}
	c.mt[0] = 0x80000000
	c.index = mtDegree
}

func (c *mtCore) twist() {
	const matrixA = 0x9908b0df
	const upperMask = 0x80000000
	const lowerMask = 0x7fffffff
	for i := 0; i < mtDegree; i++ {
		y := (c.mt[i] & upperMask) | (c.mt[(i+1)%mtDegree] & lowerMask)
		c.mt[i] = c.mt[(i+397)%mtDegree] ^ (y >> 1)
		if y&1 != 0 {
			c.mt[i] ^= matrixA
		}
	}
	c.index = 0
}

func temper(y uint32) uint32 {
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

func untemper(y uint32) uint32 {
	y = undoRightShiftXor(y, 18)
	y = undoLeftShiftXorMask(y, 15, 0xefc60000)
	y = undoLeftShiftXorMask(y, 7, 0x9d2c5680)
	y = undoRightShiftXor(y, 11)
	return y
}

// undoRightShiftXor inverts y = x ^ (x >> shift) for x.
func undoRightShiftXor(y uint32, shift uint) uint32 {
	x := y
	for i := shift; i < 32; i += shift {
		x = y ^ (x >> shift)
	}
	return x
}

// undoLeftShiftXorMask inverts y = x ^ ((x << shift) & mask) for x.
func undoLeftShiftXorMask(y uint32, shift uint, mask uint32) uint32 {
	x := y
	for i := shift; i < 32; i += shift {
		x = y ^ ((x << shift) & mask)
	}
	return x
}

func (c *mtCore) next() uint32 {
	if c.index >= mtDegree {
		c.twist()
	}
	y := c.mt[c.index]
	c.index++
	return temper(y)
}

// getState returns the current mt array expressed as a tempered window,
// matching the format setState expects to receive back.
func (c *mtCore) getState() []uint32 {
	out := make([]uint32, mtDegree)
	for i, word := range c.mt {
		out[i] = temper(word)
	}
	return out
}

// setState installs state (a window of StateSize() consecutive observed
// outputs) as the generator's array, ready to twist into the following
// batch on the next call to next(). This is the core "untwistering" move:
// observed outputs are tempered, so they must be untempered before they
// can serve as raw mt words again.
func (c *mtCore) setState(state []uint32) {
	n := len(state)
	if n > mtDegree {
		n = mtDegree
	}
	for i := 0; i < n; i++ {
		c.mt[i] = untemper(state[i])
	}
	c.index = mtDegree
}

func (c *mtCore) predictForward(n int) []uint32 {
	snapshot := *c
	out := make([]uint32, n)
	for i := range out {
		out[i] = c.next()
	}
	*c = snapshot
	return out
}

// reverseCore exhaustively tries seeds in [0, maxTries) via seedFn,
// comparing the resulting state's tempered window against target. It is
// shared by every MT-family variant; only the seeding function differs.
//
// target is always a window of already-observed outputs, which are
// tempered words from the *first twisted batch*, not the raw seed array
// (seeding alone never produces output - twist() has to run once before
// next() can return anything). So every candidate is twisted once before
// its state is compared, the same way a fresh generator would be before
// its first Next() call.
func reverseCore(target []uint32, maxTries uint32, seedFn func(seed uint32) *mtCore) (uint32, bool) {
	if len(target) == 0 {
		return 0, false
	}
	want := target
	if len(want) > mtDegree {
		want = want[:mtDegree]
	}
	for seed := uint32(0); seed < maxTries; seed++ {
		candidate := seedFn(seed)
		candidate.twist()
		got := candidate.getState()[:len(want)]
		if equalWords(got, want) {
			return seed, true
		}
	}
	return 0, false
}

func equalWords(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// MT19937 is the standard 32-bit Mersenne Twister, as used by C's
// std::mt19937, Java's none (Java has its own LCG, see java.go), and as
// the embedded engine inside the PHP/Ruby/Python/WordPress variants.
type MT19937 struct {
	noEvidence
	core mtCore
	seed uint32
	seen bool
}

func newMT19937() Generator { return &MT19937{} }

func init() { register("mt19937", newMT19937) }

func (g *MT19937) Name() string { return "mt19937" }

func (g *MT19937) Seed(seed uint32) {
	g.seed = seed
	g.seen = true
	g.core.seedStandard(seed)
}

func (g *MT19937) Next() uint32 { return g.core.next() }

func (g *MT19937) StateSize() int { return mtDegree }

func (g *MT19937) GetState() []uint32 { return g.core.getState() }

func (g *MT19937) SetState(state []uint32) { g.core.setState(state) }

func (g *MT19937) PredictForward(n int) []uint32 { return g.core.predictForward(n) }

func (g *MT19937) PredictBackward(n int) []uint32 { return nil }

func (g *MT19937) SupportsBackward() bool { return false }

func (g *MT19937) SupportsReversal() bool { return true }

func (g *MT19937) ReverseToSeed(maxTries uint32) (uint32, bool) {
	return reverseCore(g.core.getState(), maxTries, func(seed uint32) *mtCore {
		var c mtCore
		c.seedStandard(seed)
		return &c
	})
}
