// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

package prng

// Ruby reproduces Ruby's Random, a Mersenne Twister keyed via
// init_by_array from the 32-bit seed treated as a one-word key.
type Ruby struct {
	noEvidence
	core mtCore
	seed uint32
}

func newRuby() Generator { return &Ruby{} }

func init() { register("ruby", newRuby) }

func (g *Ruby) Name() string { return "ruby" }

func (g *Ruby) Seed(seed uint32) {
	g.seed = seed
	g.core.seedByArray([]uint32{seed})
}

func (g *Ruby) Next() uint32 { return g.core.next() }

func (g *Ruby) StateSize() int { return mtDegree }

func (g *Ruby) GetState() []uint32 { return g.core.getState() }

func (g *Ruby) SetState(state []uint32) { g.core.setState(state) }

func (g *Ruby) PredictForward(n int) []uint32 { return g.core.predictForward(n) }

func (g *Ruby) PredictBackward(n int) []uint32 { return nil }

func (g *Ruby) SupportsBackward() bool { return false }

func (g *Ruby) SupportsReversal() bool { return true }

func (g *Ruby) ReverseToSeed(maxTries uint32) (uint32, bool) {
	return reverseCore(g.core.getState(), maxTries, func(seed uint32) *mtCore {
		var c mtCore
		c.seedByArray([]uint32{seed})
		return &c
	})
}
