// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

package prng

// PHP reproduces mt_rand() as shipped by PHP before 7.1: a Mersenne
// Twister seeded with the old sgenrand() linear fill rather than
// init_genrand's tempered-multiplier recurrence.
type PHP struct {
	noEvidence
	core mtCore
	seed uint32
}

func newPHP() Generator { return &PHP{} }

func init() { register("php", newPHP) }

func (g *PHP) Name() string { return "php" }

func (g *PHP) Seed(seed uint32) {
	g.seed = seed
	g.core.seedLegacy(seed)
}

func (g *PHP) Next() uint32 { return g.core.next() }

func (g *PHP) StateSize() int { return mtDegree }

func (g *PHP) GetState() []uint32 { return g.core.getState() }

func (g *PHP) SetState(state []uint32) { g.core.setState(state) }

func (g *PHP) PredictForward(n int) []uint32 { return g.core.predictForward(n) }

func (g *PHP) PredictBackward(n int) []uint32 { return nil }

func (g *PHP) SupportsBackward() bool { return false }

func (g *PHP) SupportsReversal() bool { return true }

func (g *PHP) ReverseToSeed(maxTries uint32) (uint32, bool) {
	return reverseCore(g.core.getState(), maxTries, func(seed uint32) *mtCore {
		var c mtCore
		c.seedLegacy(seed)
		return &c
	})
}
