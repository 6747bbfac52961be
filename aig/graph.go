// Copyright 2021 The CEC Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package aig

// Graph is an and-inverter graph: a dense arena of nodes where
// every internal node is a two-input AND with optionally inverted
// fanin edges.  Node 0 is the constant false.  Combinational inputs
// have no fanins, combinational outputs have a single fanin edge.
//
// Ids are handed out in fanin-before-fanout order, so iterating ids
// in increasing order is a topological traversal.
type Graph struct {
	nodes  []node
	strash []uint32
	cis    []int
	cos    []int
	refs   []int32
	phase  []bool
}

type node struct {
	fan0, fan1 Lit
	n          uint32 // next in strash chain
	cio        int32  // index into cis or cos, -1 otherwise
}

// New creates an empty graph.
func New() *Graph {
	return NewCap(128)
}

// NewCap creates an empty graph with capacity hint capHint.
func NewCap(capHint int) *Graph {
	if capHint < 2 {
		capHint = 2
	}
	g := &Graph{
		nodes:  make([]node, 1, capHint),
		strash: make([]uint32, capHint),
		refs:   make([]int32, 1, capHint),
	}
	g.nodes[0] = node{fan0: LitNone, fan1: LitNone, cio: -1}
	return g
}

// ConstFalse gives the edge for the constant false.
func (g *Graph) ConstFalse() Lit {
	return MkLit(0, false)
}

// ConstTrue gives the edge for the constant true.
func (g *Graph) ConstTrue() Lit {
	return MkLit(0, true)
}

// Len gives the number of nodes, including the constant node.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// CI appends a combinational input and returns its edge.
func (g *Graph) CI() Lit {
	nd, id := g.newNode()
	nd.fan0 = LitNone
	nd.fan1 = LitNone
	nd.cio = int32(len(g.cis))
	g.cis = append(g.cis, int(id))
	return MkLit(int(id), false)
}

// CO appends a combinational output driven by d and returns its
// output index.
func (g *Graph) CO(d Lit) int {
	nd, id := g.newNode()
	nd.fan0 = d
	nd.fan1 = LitNone
	nd.cio = int32(len(g.cos))
	g.cos = append(g.cos, int(id))
	g.refs[d.ID()]++
	return int(nd.cio)
}

// And returns an edge conjoining a and b.  Structurally identical
// nodes are shared, and trivial conjunctions are folded away.
func (g *Graph) And(a, b Lit) Lit {
	if a == b {
		return a
	}
	if a == b.Not() {
		return g.ConstFalse()
	}
	if a > b {
		a, b = b, a
	}
	if a == g.ConstFalse() {
		return g.ConstFalse()
	}
	if a == g.ConstTrue() {
		return b
	}
	c := strashCode(a, b)
	si := g.strash[c%uint32(len(g.strash))]
	for si != 0 {
		n := &g.nodes[si]
		if n.fan0 == a && n.fan1 == b {
			return MkLit(int(si), false)
		}
		si = n.n
	}
	nd, id := g.newNode()
	nd.fan0 = a
	nd.fan1 = b
	nd.cio = -1
	k := c % uint32(len(g.strash))
	nd.n = g.strash[k]
	g.strash[k] = id
	g.refs[a.ID()]++
	g.refs[b.ID()]++
	return MkLit(int(id), false)
}

// Ands conjoins a sequence of edges.  Empty input yields true.
func (g *Graph) Ands(ms ...Lit) Lit {
	a := g.ConstTrue()
	for _, m := range ms {
		a = g.And(a, m)
	}
	return a
}

// Or returns an edge disjoining a and b.
func (g *Graph) Or(a, b Lit) Lit {
	return g.And(a.Not(), b.Not()).Not()
}

// Xor returns an edge for a xor b.
func (g *Graph) Xor(a, b Lit) Lit {
	return g.Or(g.And(a, b.Not()), g.And(a.Not(), b))
}

// Ite returns an edge for "if i then t else e".
func (g *Graph) Ite(i, t, e Lit) Lit {
	return g.Or(g.And(i, t), g.And(i.Not(), e))
}

// Fanins gives the fanin edges of id.  CIs and the constant have
// (LitNone, LitNone), COs have (driver, LitNone).
func (g *Graph) Fanins(id int) (Lit, Lit) {
	n := &g.nodes[id]
	return n.fan0, n.fan1
}

// IsAnd tells whether id is an AND node.
func (g *Graph) IsAnd(id int) bool {
	n := &g.nodes[id]
	return n.fan0 != LitNone && n.fan1 != LitNone
}

// IsCI tells whether id is a combinational input.
func (g *Graph) IsCI(id int) bool {
	n := &g.nodes[id]
	return id != 0 && n.fan0 == LitNone
}

// IsCO tells whether id is a combinational output.
func (g *Graph) IsCO(id int) bool {
	n := &g.nodes[id]
	return n.fan0 != LitNone && n.fan1 == LitNone
}

// CIIndex gives the input index of a CI node.
func (g *Graph) CIIndex(id int) int {
	return int(g.nodes[id].cio)
}

// NumCIs gives the number of combinational inputs.
func (g *Graph) NumCIs() int {
	return len(g.cis)
}

// NumCOs gives the number of combinational outputs.
func (g *Graph) NumCOs() int {
	return len(g.cos)
}

// CIs gives the node ids of the combinational inputs, in input order.
func (g *Graph) CIs() []int {
	return g.cis
}

// COs gives the node ids of the combinational outputs, in output order.
func (g *Graph) COs() []int {
	return g.cos
}

// Refs gives the fanout reference count of id: the number of fanin
// edges of other nodes pointing at it.
func (g *Graph) Refs(id int) int {
	return int(g.refs[id])
}

// ComputePhases computes for every node its value under the all-zero
// input assignment.
func (g *Graph) ComputePhases() {
	if len(g.phase) != len(g.nodes) {
		g.phase = make([]bool, len(g.nodes))
	}
	for id := 1; id < len(g.nodes); id++ {
		n := &g.nodes[id]
		switch {
		case n.fan0 == LitNone:
			g.phase[id] = false
		case n.fan1 == LitNone:
			g.phase[id] = g.phase[n.fan0.ID()] != !n.fan0.IsPos()
		default:
			p0 := g.phase[n.fan0.ID()] != !n.fan0.IsPos()
			p1 := g.phase[n.fan1.ID()] != !n.fan1.IsPos()
			g.phase[id] = p0 && p1
		}
	}
}

// Phase gives the all-zero-input value of id.  ComputePhases must
// have run since the last structural change.
func (g *Graph) Phase(id int) bool {
	return g.phase[id]
}

// Eval computes the value of every node under the input assignment
// in, indexed like CIs().  The result is indexed by node id.
func (g *Graph) Eval(in []bool) []bool {
	vs := make([]bool, len(g.nodes))
	for id := 1; id < len(g.nodes); id++ {
		n := &g.nodes[id]
		switch {
		case n.fan0 == LitNone:
			vs[id] = in[n.cio]
		case n.fan1 == LitNone:
			vs[id] = vs[n.fan0.ID()] != !n.fan0.IsPos()
		default:
			v0 := vs[n.fan0.ID()] != !n.fan0.IsPos()
			v1 := vs[n.fan1.ID()] != !n.fan1.IsPos()
			vs[id] = v0 && v1
		}
	}
	return vs
}

// EvalLit gives the value of edge m under node values vs.
func EvalLit(vs []bool, m Lit) bool {
	return vs[m.ID()] != !m.IsPos()
}

func (g *Graph) newNode() (*node, uint32) {
	if len(g.nodes) == len(g.strash) {
		g.grow()
	}
	id := len(g.nodes)
	g.nodes = append(g.nodes, node{})
	g.refs = append(g.refs, 0)
	return &g.nodes[id], uint32(id)
}

func (g *Graph) grow() {
	newCap := len(g.strash) * 2
	nodes := make([]node, len(g.nodes), newCap)
	strash := make([]uint32, newCap)
	copy(nodes, g.nodes)
	ucap := uint32(newCap)
	for i := range nodes {
		n := &nodes[i]
		if n.fan0 == LitNone || n.fan1 == LitNone {
			continue
		}
		c := strashCode(n.fan0, n.fan1)
		j := c % ucap
		n.n = strash[j]
		strash[j] = uint32(i)
	}
	g.nodes = nodes
	g.strash = strash
}

func strashCode(a, b Lit) uint32 {
	return uint32((a << 13) * b)
}
