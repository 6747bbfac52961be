// Copyright 2021 The CEC Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package sim

import (
	"fmt"
	"strings"
)

// A Cex is a distinguishing input assignment: the index of the
// failing output together with one bit per CI.  A nil Inputs slice
// means the all-zero assignment (the trivial failure under the base
// pattern).
type Cex struct {
	Out    int
	NumCIs int
	Inputs []uint64
}

// Bit gives the value assigned to the i'th input.
func (c *Cex) Bit(i int) bool {
	if c.Inputs == nil {
		return false
	}
	return c.Inputs[i>>6]&(1<<uint(i&63)) != 0
}

// Bits expands the assignment into a bool per CI.
func (c *Cex) Bits() []bool {
	bs := make([]bool, c.NumCIs)
	for i := range bs {
		bs[i] = c.Bit(i)
	}
	return bs
}

func (c *Cex) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "out %d:", c.Out)
	for i := 0; i < c.NumCIs; i++ {
		if c.Bit(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// DeriveCex reads pattern slot of every CI vector into a packed
// assignment for output out.  Slot -1 yields the trivial all-zero
// assignment.
func (s *Sim) DeriveCex(out, slot int) *Cex {
	c := &Cex{Out: out, NumCIs: s.g.NumCIs()}
	if slot == -1 {
		return c
	}
	if slot < 0 || slot >= 64*s.words {
		panic(fmt.Sprintf("sim: pattern slot %d out of range", slot))
	}
	c.Inputs = make([]uint64, (s.g.NumCIs()+63)/64)
	for i, id := range s.g.CIs() {
		if s.Vec(id)[slot>>6]&(1<<uint(slot&63)) != 0 {
			c.Inputs[i>>6] |= 1 << uint(i&63)
		}
	}
	return c
}
