// Copyright 2021 The CEC Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package aig

import (
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/logic/aiger"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
)

// FromAiger imports a circuit read by gini's aiger package.  Inputs
// and latch outputs become CIs, in that order; declared outputs,
// bad-state literals and latch next-state functions become COs, in
// that order.  Sequential structure is flattened away: the import is
// the standard combinational framing of the design.
func FromAiger(t *aiger.T) (*Graph, error) {
	sys := t.Sys()
	g := NewCap(sys.Len())
	mp := make(map[z.Var]Lit, sys.Len())
	mp[z.Var(1)] = g.ConstTrue()
	for _, in := range t.Inputs {
		mp[in.Var()] = g.CI()
	}
	for _, l := range t.Latches {
		mp[l.Var()] = g.CI()
	}
	conv := func(m z.Lit) (Lit, error) {
		e, ok := mp[m.Var()]
		if !ok {
			return LitNone, errors.Errorf("aiger: undefined literal %s", m)
		}
		return e.Xor(!m.IsPos()), nil
	}
	for i := 2; i < sys.Len(); i++ {
		v := z.Var(i)
		if _, ok := mp[v]; ok {
			continue
		}
		a, b := sys.Ins(v.Pos())
		if a == z.LitNull || a == sys.T || a == sys.F {
			mp[v] = g.CI()
			continue
		}
		ea, err := conv(a)
		if err != nil {
			return nil, err
		}
		eb, err := conv(b)
		if err != nil {
			return nil, err
		}
		mp[v] = g.And(ea, eb)
	}
	addCO := func(m z.Lit) error {
		e, err := conv(m)
		if err != nil {
			return err
		}
		g.CO(e)
		return nil
	}
	for _, o := range t.Outputs {
		if err := addCO(o); err != nil {
			return nil, err
		}
	}
	for _, b := range t.Bad {
		if err := addCO(b); err != nil {
			return nil, err
		}
	}
	for _, l := range t.Latches {
		if err := addCO(sys.Next(l)); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// FromSystem imports a gini logic system directly, with the edges in
// outs becoming the COs.
func FromSystem(sys *logic.S, outs ...z.Lit) (*Graph, error) {
	t := aiger.MakeFor(sys, outs...)
	return FromAiger(t)
}

// Miter builds a miter of two graphs with the same numbers of CIs
// and COs: the graphs share their inputs and every output pair
// becomes one xor output, true exactly when the originals disagree.
func Miter(g1, g2 *Graph) (*Graph, error) {
	if g1.NumCIs() != g2.NumCIs() {
		return nil, errors.Errorf("miter: input mismatch: %d vs %d", g1.NumCIs(), g2.NumCIs())
	}
	if g1.NumCOs() != g2.NumCOs() {
		return nil, errors.Errorf("miter: output mismatch: %d vs %d", g1.NumCOs(), g2.NumCOs())
	}
	m := NewCap(g1.Len() + g2.Len())
	ins := make([]Lit, g1.NumCIs())
	for i := range ins {
		ins[i] = m.CI()
	}
	d1 := copyCones(m, g1, ins)
	d2 := copyCones(m, g2, ins)
	for k := range d1 {
		m.CO(m.Xor(d1[k], d2[k]))
	}
	return m, nil
}

// copyCones rebuilds the AND nodes of src inside dst over the shared
// inputs ins and returns the CO driver edges, translated.
func copyCones(dst, src *Graph, ins []Lit) []Lit {
	mp := make([]Lit, src.Len())
	mp[0] = dst.ConstFalse()
	conv := func(m Lit) Lit {
		return mp[m.ID()].Xor(!m.IsPos())
	}
	drivers := make([]Lit, 0, src.NumCOs())
	for id := 1; id < src.Len(); id++ {
		f0, f1 := src.Fanins(id)
		switch {
		case src.IsCI(id):
			mp[id] = ins[src.CIIndex(id)]
		case src.IsCO(id):
			drivers = append(drivers, conv(f0))
		default:
			mp[id] = dst.And(conv(f0), conv(f1))
		}
	}
	return drivers
}
