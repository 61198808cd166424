// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

package prng

// Python reproduces CPython's random module, a Mersenne Twister keyed via
// init_by_array from the seed split into 32-bit words (here just one,
// since this module only ever deals in uint32 seeds).
type Python struct {
	noEvidence
	core mtCore
	seed uint32
}

func newPython() Generator { return &Python{} }

func init() { register("python", newPython) }

func (g *Python) Name() string { return "python" }

func (g *Python) Seed(seed uint32) {
	g.seed = seed
	g.core.seedByArray([]uint32{seed})
}

func (g *Python) Next() uint32 { return g.core.next() }

func (g *Python) StateSize() int { return mtDegree }

func (g *Python) GetState() []uint32 { return g.core.getState() }

func (g *Python) SetState(state []uint32) { g.core.setState(state) }

func (g *Python) PredictForward(n int) []uint32 { return g.core.predictForward(n) }

func (g *Python) PredictBackward(n int) []uint32 { return nil }

func (g *Python) SupportsBackward() bool { return false }

func (g *Python) SupportsReversal() bool { return true }

func (g *Python) ReverseToSeed(maxTries uint32) (uint32, bool) {
	return reverseCore(g.core.getState(), maxTries, func(seed uint32) *mtCore {
		var c mtCore
		c.seedByArray([]uint32{seed})
		return &c
	})
}
