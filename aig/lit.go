// Copyright 2021 The CEC Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package aig

import "fmt"

// A Lit is an edge of the graph: a node id together with an
// inversion bit in the lowest position.
type Lit uint32

// LitNone is the null edge.  It is not a valid edge of any graph.
const LitNone = ^Lit(0)

// MkLit makes the edge pointing at node id, inverted if compl is true.
func MkLit(id int, compl bool) Lit {
	if compl {
		return Lit(id<<1) | 1
	}
	return Lit(id << 1)
}

// ID gives the node the edge points at.
func (m Lit) ID() int {
	return int(m >> 1)
}

// IsPos tells whether the edge is non-inverted.
func (m Lit) IsPos() bool {
	return m&1 == 0
}

// Not gives the inverse edge.
func (m Lit) Not() Lit {
	return m ^ 1
}

// Xor inverts m when c is true.
func (m Lit) Xor(c bool) Lit {
	if c {
		return m ^ 1
	}
	return m
}

func (m Lit) String() string {
	if m == LitNone {
		return "~"
	}
	if m.IsPos() {
		return fmt.Sprintf("n%d", m.ID())
	}
	return fmt.Sprintf("!n%d", m.ID())
}
