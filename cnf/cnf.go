// Copyright 2021 The CEC Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package cnf lazily translates fanin cones of an and-inverter graph
// into clauses.  Instead of one gate per Tseytin step it collapses
// maximal single-fanout AND trees into supergates and emits a direct
// 6-clause encoding for recognized if-then-else shapes, keeping the
// clause count per query small.
package cnf

import (
	"fmt"

	"github.com/go-air/cec/aig"
	"github.com/go-air/cec/sat"
	"github.com/go-air/gini/z"
)

// CIVar pairs a CI index with the solver variable assigned to it
// during the current query.
type CIVar struct {
	CI  int
	Var z.Lit
}

// Builder emits clauses for queried nodes on demand.  All variables
// and clauses belong to the current query: Release returns both the
// builder and the solver to the empty state.
type Builder struct {
	g       *aig.Graph
	s       *sat.Solver
	useMux  bool
	vars    []z.Lit // per node id, z.LitNull when unassigned
	front   []int
	super   []aig.Lit
	touched []int
	ciVars  []CIVar
}

// New creates a builder over g emitting into s.  When useMux is
// true, mux-shaped nodes get the dedicated encoding and supergate
// collection stops at them.
func New(g *aig.Graph, s *sat.Solver, useMux bool) *Builder {
	return &Builder{g: g, s: s, useMux: useMux}
}

// Var gives the solver variable of node id, building CNF for its
// fanin cone first if needed.
func (b *Builder) Var(id int) z.Lit {
	if id >= len(b.vars) {
		grown := make([]z.Lit, b.g.Len())
		copy(grown, b.vars)
		b.vars = grown
	}
	if b.vars[id] != z.LitNull {
		return b.vars[id]
	}
	v := b.ensure(id)
	// drain the frontier; clause emission discovers more fanins and
	// appends while we iterate
	for i := 0; i < len(b.front); i++ {
		n := b.front[i]
		if b.useMux && b.g.IsMuxType(n) {
			ctl, t, e := b.g.RecognizeMux(n)
			b.ensure(ctl)
			b.ensure(t.ID())
			b.ensure(e.ID())
			b.addMuxClauses(n, ctl, t, e)
		} else {
			b.collectSuper(n)
			for _, leaf := range b.super {
				b.ensure(leaf.ID())
			}
			b.addSuperClauses(n)
		}
	}
	b.front = b.front[:0]
	return v
}

// CIVars gives the (CI index, variable) pairs assigned during the
// current query.
func (b *Builder) CIVars() []CIVar {
	return b.ciVars
}

// Touched gives the number of nodes holding a variable.
func (b *Builder) Touched() int {
	return len(b.touched)
}

// Release ends the query: the variable cache is cleared for every
// touched node and the solver is rolled back to empty.
func (b *Builder) Release() {
	for _, id := range b.touched {
		b.vars[id] = z.LitNull
	}
	b.touched = b.touched[:0]
	b.ciVars = b.ciVars[:0]
	b.front = b.front[:0]
	b.s.Rollback()
}

// ensure assigns a variable to id if it has none, scheduling AND
// nodes for clause emission.  CIs and the constant get a free
// variable and no clauses.
func (b *Builder) ensure(id int) z.Lit {
	if b.vars[id] != z.LitNull {
		return b.vars[id]
	}
	v := b.s.Lit()
	b.vars[id] = v
	b.touched = append(b.touched, id)
	if b.g.IsAnd(id) {
		b.front = append(b.front, id)
	} else if b.g.IsCI(id) {
		b.ciVars = append(b.ciVars, CIVar{CI: b.g.CIIndex(id), Var: v})
	}
	return v
}

// collectSuper gathers the leaves of the maximal AND tree rooted at
// root, using an explicit stack.  Growth stops at inverted edges,
// CIs, mux roots (when enabled), shared leaves and nodes with more
// than one fanout.
func (b *Builder) collectSuper(root int) {
	b.super = b.super[:0]
	f0, f1 := b.g.Fanins(root)
	stack := make([]aig.Lit, 0, 8)
	stack = append(stack, f1, f0)
	for len(stack) > 0 {
		m := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		id := m.ID()
		if !m.IsPos() || b.g.IsCI(id) || b.g.Refs(id) > 1 ||
			(b.useMux && b.g.IsMuxType(id)) {
			b.pushUnique(m)
			continue
		}
		a, c := b.g.Fanins(id)
		stack = append(stack, c, a)
	}
	if len(b.super) < 2 {
		panic(fmt.Sprintf("cnf: degenerate supergate at node %d", root))
	}
}

func (b *Builder) pushUnique(m aig.Lit) {
	for _, x := range b.super {
		if x == m {
			return
		}
	}
	b.super = append(b.super, m)
}

// leafLit gives the solver literal carrying the value of edge m.
func (b *Builder) leafLit(m aig.Lit) z.Lit {
	v := b.vars[m.ID()]
	if !m.IsPos() {
		return v.Not()
	}
	return v
}

// addSuperClauses encodes root as the conjunction of the collected
// leaves: one binary clause per leaf plus one wide clause.
func (b *Builder) addSuperClauses(root int) {
	f := b.vars[root]
	for _, leaf := range b.super {
		b.s.AddClause(b.leafLit(leaf), f.Not())
	}
	wide := make([]z.Lit, 0, len(b.super)+1)
	for _, leaf := range b.super {
		wide = append(wide, b.leafLit(leaf).Not())
	}
	wide = append(wide, f)
	b.s.AddClause(wide...)
}

// addMuxClauses encodes root = ITE(ctl, t, e) with the standard
// 6-clause Tseytin form.  The last two clauses relate the branches
// and are dropped when they share one variable.
func (b *Builder) addMuxClauses(root, ctl int, t, e aig.Lit) {
	vf := b.vars[root]
	vi := b.vars[ctl]
	vt := b.leafLit(t)
	ve := b.leafLit(e)
	b.s.AddClause(vi.Not(), vt.Not(), vf)
	b.s.AddClause(vi.Not(), vt, vf.Not())
	b.s.AddClause(vi, ve.Not(), vf)
	b.s.AddClause(vi, ve, vf.Not())
	if vt.Var() == ve.Var() {
		return
	}
	b.s.AddClause(vt, ve, vf.Not())
	b.s.AddClause(vt.Not(), ve.Not(), vf)
}
