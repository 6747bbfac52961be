// Copyright 2021 The CEC Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package aig

// IsMuxType tells whether the AND node id realizes an if-then-else:
// both fanin edges are inverted, both fanins are AND nodes, and the
// fanins share one grand-fanin in opposite polarities (the control).
func (g *Graph) IsMuxType(id int) bool {
	if !g.IsAnd(id) {
		return false
	}
	e0, e1 := g.Fanins(id)
	if e0.IsPos() || e1.IsPos() {
		return false
	}
	n0, n1 := e0.ID(), e1.ID()
	if !g.IsAnd(n0) || !g.IsAnd(n1) {
		return false
	}
	a0, a1 := g.Fanins(n0)
	b0, b1 := g.Fanins(n1)
	return (a0.ID() == b0.ID() && a0.IsPos() != b0.IsPos()) ||
		(a0.ID() == b1.ID() && a0.IsPos() != b1.IsPos()) ||
		(a1.ID() == b0.ID() && a1.IsPos() != b0.IsPos()) ||
		(a1.ID() == b1.ID() && a1.IsPos() != b1.IsPos())
}

// RecognizeMux decomposes the mux-type node id as ITE(ctl, t, e),
// returning the control node id and the then/else edges.  The node's
// value equals t when ctl is true and e otherwise.  id must satisfy
// IsMuxType.
func (g *Graph) RecognizeMux(id int) (ctl int, t, e Lit) {
	e0, e1 := g.Fanins(id)
	n0, n1 := e0.ID(), e1.ID()
	a0, a1 := g.Fanins(n0)
	b0, b1 := g.Fanins(n1)
	switch {
	case a1.ID() == b1.ID() && a1.IsPos() != b1.IsPos():
		if !a1.IsPos() {
			return b1.ID(), b0.Not(), a0.Not()
		}
		return a1.ID(), a0.Not(), b0.Not()
	case a0.ID() == b0.ID() && a0.IsPos() != b0.IsPos():
		if !a0.IsPos() {
			return b0.ID(), b1.Not(), a1.Not()
		}
		return a0.ID(), a1.Not(), b1.Not()
	case a0.ID() == b1.ID() && a0.IsPos() != b1.IsPos():
		if !a0.IsPos() {
			return b1.ID(), b0.Not(), a1.Not()
		}
		return a0.ID(), a1.Not(), b0.Not()
	case a1.ID() == b0.ID() && a1.IsPos() != b0.IsPos():
		if !b0.IsPos() {
			return a1.ID(), a0.Not(), b1.Not()
		}
		return b0.ID(), b1.Not(), a0.Not()
	}
	panic("aig: RecognizeMux on non-mux node")
}
