// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

package prng

import (
	"crypto/sha256"
	"encoding/binary"
)

// WordPress models wp_rand()'s pre-PHP-8.2 fallback: an internal
// Mersenne Twister, but keyed by hashing the seed through a diffusion
// step first rather than feeding it straight into the standard or legacy
// MT seeding recurrence. Treated as unreversible: the hash step is a
// one-way function, so unlike PHP's own mt_rand(), no amount of
// state-matching recovers the original seed.
type WordPress struct {
	noEvidence
	core mtCore
}

func newWordPress() Generator { return &WordPress{} }

func init() { register("wordpress", newWordPress) }

func (g *WordPress) Name() string { return "wordpress" }

func (g *WordPress) Seed(seed uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], seed)
	digest := sha256.Sum256(buf[:])
	key := make([]uint32, 8)
	for i := range key {
		key[i] = binary.BigEndian.Uint32(digest[i*4 : i*4+4])
	}
	g.core.seedByArray(key)
}

func (g *WordPress) Next() uint32 { return g.core.next() }

func (g *WordPress) StateSize() int { return mtDegree }

func (g *WordPress) GetState() []uint32 { return g.core.getState() }

func (g *WordPress) SetState(state []uint32) { g.core.setState(state) }

func (g *WordPress) PredictForward(n int) []uint32 { return g.core.predictForward(n) }

func (g *WordPress) PredictBackward(n int) []uint32 { return nil }

func (g *WordPress) SupportsBackward() bool { return false }

func (g *WordPress) SupportsReversal() bool { return false }

func (g *WordPress) ReverseToSeed(maxTries uint32) (uint32, bool) { return 0, false }
