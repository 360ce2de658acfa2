// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stoch

import (
	"math/rand/v2"
)

// RNG is the random-state collaborator owned by a [Runtime]. The handler
// core never draws from it directly; primitives capture it from the
// runtime, and [SeedMessenger] snapshots and restores its state around a
// scope.
type RNG interface {
	// Seed resets the generator to a reproducible state.
	Seed(seed uint64)
	// State snapshots the full generator state.
	State() []byte
	// SetState restores a snapshot taken with State.
	SetState(state []byte) error

	Uint64() uint64
	Float64() float64
	IntN(n int) int
}

// pcgRNG backs the default RNG with a math/rand/v2 PCG source, whose
// binary-marshaled form serves as the state snapshot.
type pcgRNG struct {
	src *rand.PCG
	r   *rand.Rand
}

// NewPCGRNG returns an [RNG] backed by a PCG source seeded with seed.
func NewPCGRNG(seed uint64) RNG {
	src := rand.NewPCG(seed, 0)
	return &pcgRNG{src: src, r: rand.New(src)}
}

func (p *pcgRNG) Seed(seed uint64) { p.src.Seed(seed, 0) }

func (p *pcgRNG) State() []byte {
	// PCG's MarshalBinary cannot fail.
	b, _ := p.src.MarshalBinary()
	return b
}

func (p *pcgRNG) SetState(state []byte) error {
	return p.src.UnmarshalBinary(state)
}

func (p *pcgRNG) Uint64() uint64   { return p.r.Uint64() }
func (p *pcgRNG) Float64() float64 { return p.r.Float64() }
func (p *pcgRNG) IntN(n int) int   { return p.r.IntN(n) }

// randomSeed derives a nondeterministic default seed for runtimes
// constructed without [WithRNG].
func randomSeed() uint64 { return rand.Uint64() }
