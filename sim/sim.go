// Copyright 2021 The CEC Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package sim

import (
	"math/bits"
	"math/rand"

	"github.com/go-air/cec/aig"
)

// Sim holds word-parallel simulation vectors for every node of one
// graph.  Bit 0 of every CI vector is forced to zero, so the first
// pattern is always the all-zero assignment and node phases can be
// read off bit 0.
type Sim struct {
	g     *aig.Graph
	words int
	vecs  []uint64
	slot  int // next free pattern slot
	rng   *rand.Rand
	saved []uint64 // CI vector history, one block per SaveCIs call
}

// New creates a simulator for g with the given number of 64-bit
// words per node and a deterministic seed.
func New(g *aig.Graph, words int, seed int64) *Sim {
	if words < 1 {
		words = 1
	}
	return &Sim{
		g:     g,
		words: words,
		vecs:  make([]uint64, words*g.Len()),
		slot:  1,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Words gives the vector width in 64-bit words.
func (s *Sim) Words() int {
	return s.words
}

// Vec gives the vector of node id.
func (s *Sim) Vec(id int) []uint64 {
	return s.vecs[id*s.words : (id+1)*s.words]
}

// RandomizeCIs assigns every CI a fresh random vector, forces bit 0
// to zero and resets the pattern cursor to slot 1.
func (s *Sim) RandomizeCIs() {
	for _, id := range s.g.CIs() {
		v := s.Vec(id)
		for w := range v {
			v[w] = s.rng.Uint64()
		}
		v[0] <<= 1
	}
	s.slot = 1
}

// Propagate recomputes every AND vector from its fanins, in
// topological (ascending id) order.  CO vectors are recomputed by
// CheckCOs.
func (s *Sim) Propagate() {
	for id := 1; id < s.g.Len(); id++ {
		if !s.g.IsAnd(id) {
			continue
		}
		f0, f1 := s.g.Fanins(id)
		v := s.Vec(id)
		v0 := s.Vec(f0.ID())
		v1 := s.Vec(f1.ID())
		switch {
		case !f0.IsPos() && !f1.IsPos():
			for w := range v {
				v[w] = ^v0[w] & ^v1[w]
			}
		case !f0.IsPos():
			for w := range v {
				v[w] = ^v0[w] & v1[w]
			}
		case !f1.IsPos():
			for w := range v {
				v[w] = v0[w] & ^v1[w]
			}
		default:
			for w := range v {
				v[w] = v0[w] & v1[w]
			}
		}
	}
}

// Equal compares the vectors of two nodes up to phase: bit 0 decides
// whether the same or the complemented sense applies, and all words
// must then agree in that sense.
func (s *Sim) Equal(i, j int) bool {
	vi := s.Vec(i)
	vj := s.Vec(j)
	if vi[0]&1 == vj[0]&1 {
		for w := range vi {
			if vi[w] != vj[w] {
				return false
			}
		}
		return true
	}
	for w := range vi {
		if vi[w] != ^vj[w] {
			return false
		}
	}
	return true
}

// CheckCOs recomputes every CO vector and compares it against the
// constant node.  In a miter any disagreement is a counterexample:
// the first disagreeing pattern slot is extracted.  Returns nil when
// all outputs are constant false.
func (s *Sim) CheckCOs() *Cex {
	for k, id := range s.g.COs() {
		s.simCO(id)
		if s.Equal(id, 0) {
			continue
		}
		return s.DeriveCex(k, firstBit(s.Vec(id)))
	}
	return nil
}

func (s *Sim) simCO(id int) {
	f0, _ := s.g.Fanins(id)
	v := s.Vec(id)
	v0 := s.Vec(f0.ID())
	if !f0.IsPos() {
		for w := range v {
			v[w] = ^v0[w]
		}
		return
	}
	copy(v, v0)
}

func firstBit(v []uint64) int {
	for w, x := range v {
		if x != 0 {
			return 64*w + bits.TrailingZeros64(x)
		}
	}
	return -1
}

// SetCIBit forces pattern bit slot of the ci'th input to val.
func (s *Sim) SetCIBit(ci, slot int, val bool) {
	v := s.Vec(s.g.CIs()[ci])
	if val {
		v[slot>>6] |= 1 << uint(slot&63)
	} else {
		v[slot>>6] &^= 1 << uint(slot&63)
	}
}

// NextSlot advances the pattern cursor through [1, 64*words-1],
// wrapping around and never touching the reserved all-zero slot 0.
func (s *Sim) NextSlot() int {
	if s.slot == 64*s.words-1 {
		s.slot = 1
	} else {
		s.slot++
	}
	return s.slot
}

// SaveCIs appends a snapshot of all CI vectors to the replay history.
func (s *Sim) SaveCIs() {
	for _, id := range s.g.CIs() {
		s.saved = append(s.saved, s.Vec(id)...)
	}
}

// SavedRounds gives the number of saved CI snapshots.
func (s *Sim) SavedRounds() int {
	if s.g.NumCIs() == 0 {
		return 0
	}
	return len(s.saved) / (s.words * s.g.NumCIs())
}

// RestoreCIs loads the round'th saved snapshot back into the CI
// vectors.
func (s *Sim) RestoreCIs(round int) {
	base := round * s.words * s.g.NumCIs()
	for i, id := range s.g.CIs() {
		copy(s.Vec(id), s.saved[base+i*s.words:base+(i+1)*s.words])
	}
}
