// Copyright 2021 The CEC Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package sim

import "github.com/go-air/cec/aig"

var simPrimes = [16]uint32{
	1291, 1699, 1999, 2357, 2953, 3313, 3907, 4177,
	4831, 5147, 5647, 6343, 6899, 7103, 7873, 8147,
}

// hashKey folds a node's vector into a table index.  The fold runs
// over 32-bit halves against a fixed prime table; when bit 0 is set
// the complemented vector is folded instead, so that phase-opposite
// nodes collide into the same bucket.
func (s *Sim) hashKey(id, size int) int {
	v := s.Vec(id)
	compl := v[0]&1 == 1
	var h uint32
	i := 0
	for _, w := range v {
		lo, hi := uint32(w), uint32(w>>32)
		if compl {
			lo, hi = ^lo, ^hi
		}
		h ^= lo * simPrimes[i&15]
		i++
		h ^= hi * simPrimes[i&15]
		i++
	}
	return int(h % uint32(size))
}

// BuildClasses partitions all non-CO nodes into candidate classes by
// simulation signature and refines away hash collisions, so that
// every resulting class is consistent with the current vectors.  The
// classes are candidates for proof, not proofs.
func (s *Sim) BuildClasses() *aig.Classes {
	n := s.g.Len()
	cls := aig.NewClasses(n)
	size := primeAtLeast(n)
	table := make([]int32, size)
	for i := range table {
		table[i] = -1
	}
	for id := 0; id < n; id++ {
		if s.g.IsCO(id) {
			continue
		}
		key := s.hashKey(id, size)
		if table[key] == -1 {
			table[key] = int32(id)
		} else {
			cls.SetRepr(id, int(table[key]))
		}
	}
	// turn bucket membership into chains; descending prepend keeps
	// every chain ascending in id
	for id := n - 1; id >= 0; id-- {
		r := cls.Repr(id)
		if r == aig.Void {
			continue
		}
		cls.SetNext(id, cls.Next(r))
		cls.SetNext(r, id)
	}
	s.Refine(cls)
	return cls
}

// Refine runs one ascending pass of class refinement.  Splits create
// new heads with larger ids than the current one, so cascaded splits
// are picked up later in the same pass and the pass leaves every
// class consistent with the current vectors.
func (s *Sim) Refine(cls *aig.Classes) {
	for id := 0; id < cls.Len(); id++ {
		if cls.IsHead(id) {
			s.refineOne(cls, id)
		}
	}
}

// refineOne splits the chain rooted at head at the first member whose
// vector disagrees with the head's.  Members agreeing with the head
// stay, in order; the first disagreeing member roots a new chain
// which absorbs the remaining disagreeing members.
func (s *Sim) refineOne(cls *aig.Classes, head int) {
	prev := head
	split := cls.Next(head)
	for ; split > 0; split = cls.Next(split) {
		if !s.Equal(head, split) {
			break
		}
		prev = split
	}
	if split <= 0 {
		return
	}
	cls.SetRepr(split, aig.Void)
	prev2 := split
	for id := cls.Next(split); id > 0; id = cls.Next(id) {
		if s.Equal(head, id) {
			cls.SetNext(prev, id)
			prev = id
		} else {
			cls.SetRepr(id, split)
			cls.SetNext(prev2, id)
			prev2 = id
		}
	}
	cls.SetNext(prev, aig.Void)
	cls.SetNext(prev2, aig.Void)
}

func primeAtLeast(n int) int {
	if n <= 2 {
		return 2
	}
	p := n
	if p%2 == 0 {
		p++
	}
	for !isPrime(p) {
		p += 2
	}
	return p
}

func isPrime(p int) bool {
	for d := 3; d*d <= p; d += 2 {
		if p%d == 0 {
			return false
		}
	}
	return p%2 != 0
}
