// Copyright 2021 The CEC Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package cec

import (
	"math/rand"
	"testing"

	"github.com/go-air/cec/aig"
	"github.com/stretchr/testify/require"
)

func testParams() Params {
	ps := DefaultParams()
	ps.SimWords = 4
	ps.SimRounds = 2
	ps.SolveBudget = 0
	ps.SelfCheck = true
	return ps
}

func assocPair() (*aig.Graph, *aig.Graph) {
	g1 := aig.New()
	{
		a, b, c := g1.CI(), g1.CI(), g1.CI()
		g1.CO(g1.And(g1.And(a, b), c))
	}
	g2 := aig.New()
	{
		a, b, c := g2.CI(), g2.CI(), g2.CI()
		g2.CO(g2.And(a, g2.And(b, c)))
	}
	return g1, g2
}

func TestCheckEquivalent(t *testing.T) {
	g1, g2 := assocPair()
	res, err := Check(g1, g2, testParams())
	require.NoError(t, err)
	require.Equal(t, Equivalent, res.Status)
	require.Nil(t, res.Cex)
	require.Greater(t, res.Proved, 0)
	require.Zero(t, res.Failed)
}

func TestCheckNotEquivalent(t *testing.T) {
	g1 := aig.New()
	{
		a, b := g1.CI(), g1.CI()
		g1.CO(g1.And(a, b))
	}
	g2 := aig.New()
	{
		a, b := g2.CI(), g2.CI()
		g2.CO(g2.Or(a, b))
	}
	res, err := Check(g1, g2, testParams())
	require.NoError(t, err)
	require.Equal(t, NotEquivalent, res.Status)
	require.NotNil(t, res.Cex)

	// the assignment must actually distinguish the designs
	in := res.Cex.Bits()
	v1 := g1.Eval(in)
	v2 := g2.Eval(in)
	d1, _ := g1.Fanins(g1.COs()[res.Cex.Out])
	d2, _ := g2.Fanins(g2.COs()[res.Cex.Out])
	require.NotEqual(t, aig.EvalLit(v1, d1), aig.EvalLit(v2, d2))
}

func TestCheckShapeMismatch(t *testing.T) {
	g1 := aig.New()
	g1.CO(g1.CI())
	g2 := aig.New()
	g2.CI()
	g2.CO(g2.CI())
	_, err := Check(g1, g2, testParams())
	require.Error(t, err)
}

func TestSweepTrivialCex(t *testing.T) {
	g := aig.New()
	a := g.CI()
	g.CO(g.Or(a, a.Not()))
	ps := testParams()
	ps.Miter = true
	res := Sweep(g, ps)
	require.Equal(t, NotEquivalent, res.Status)
	require.NotNil(t, res.Cex)
	require.Equal(t, 0, res.Cex.Out)
	require.Nil(t, res.Cex.Inputs)
}

func TestSweepComplementMerge(t *testing.T) {
	g := aig.New()
	a, b := g.CI(), g.CI()
	x := g.Xor(a, b)
	xn := g.And(g.Or(a, b), g.And(a, b).Not()).Not()
	res := Sweep(g, testParams())
	require.Equal(t, Equivalent, res.Status)

	lo, hi := x.ID(), xn.ID()
	if lo > hi {
		lo, hi = hi, lo
	}
	ml, mh := res.Map[lo], res.Map[hi]
	require.NotEqual(t, aig.LitNone, ml)
	require.NotEqual(t, aig.LitNone, mh)
	require.Equal(t, ml.ID(), mh.ID())
	require.NotEqual(t, ml.IsPos(), mh.IsPos())
}

// sweeping a miter must preserve every swept node's function: the
// mapped edge in the reduced graph computes the same values.
func TestSweepPreservesFunctions(t *testing.T) {
	g1, g2 := assocPair()
	m, err := aig.Miter(g1, g2)
	require.NoError(t, err)
	ps := testParams()
	ps.Miter = true
	res := Sweep(m, ps)
	require.Equal(t, Equivalent, res.Status)
	require.NotNil(t, res.Reduced)

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 32; trial++ {
		in := make([]bool, m.NumCIs())
		for k := range in {
			in[k] = rng.Intn(2) == 1
		}
		mvs := m.Eval(in)
		rvs := res.Reduced.Eval(in)
		for id := 0; id < m.Len(); id++ {
			if res.Map[id] == aig.LitNone {
				continue
			}
			require.Equal(t, mvs[id], aig.EvalLit(rvs, res.Map[id]),
				"node %d diverges at %v", id, in)
		}
	}
}

func TestCheckMuxCuts(t *testing.T) {
	// maj(a,b,c) two ways: sum of products vs shannon expansion
	g1 := aig.New()
	{
		a, b, c := g1.CI(), g1.CI(), g1.CI()
		g1.CO(g1.Or(g1.Or(g1.And(a, b), g1.And(a, c)), g1.And(b, c)))
	}
	g2 := aig.New()
	{
		a, b, c := g2.CI(), g2.CI(), g2.CI()
		g2.CO(g2.Ite(a, g2.Or(b, c), g2.And(b, c)))
	}
	for _, useMux := range []bool{true, false} {
		ps := testParams()
		ps.UseMuxCuts = useMux
		res, err := Check(g1, g2, ps)
		require.NoError(t, err)
		require.Equal(t, Equivalent, res.Status, "useMux=%v", useMux)
	}
}

func TestCheckAdders(t *testing.T) {
	// 3-bit ripple-carry adders with different carry structure
	build := func(ite bool) *aig.Graph {
		g := aig.New()
		xs := []aig.Lit{g.CI(), g.CI(), g.CI()}
		ys := []aig.Lit{g.CI(), g.CI(), g.CI()}
		carry := g.ConstFalse()
		for i := 0; i < 3; i++ {
			s := g.Xor(g.Xor(xs[i], ys[i]), carry)
			var nc aig.Lit
			if ite {
				nc = g.Ite(g.Xor(xs[i], ys[i]), carry, xs[i])
			} else {
				nc = g.Or(g.And(xs[i], ys[i]), g.And(carry, g.Xor(xs[i], ys[i])))
			}
			g.CO(s)
			carry = nc
		}
		g.CO(carry)
		return g
	}
	res, err := Check(build(false), build(true), testParams())
	require.NoError(t, err)
	require.Equal(t, Equivalent, res.Status)
	require.Nil(t, res.Cex)
}

func TestSweepKeepsDistinctApart(t *testing.T) {
	// close but inequivalent functions must never merge, and every
	// swept node must keep its function in the reduced graph
	g := aig.New()
	a, b, c := g.CI(), g.CI(), g.CI()
	n1 := g.And(g.And(a, b), c)
	n2 := g.And(a, g.And(b.Not(), c).Not())
	res := Sweep(g, testParams())
	require.Equal(t, Equivalent, res.Status)
	require.Zero(t, res.Failed)

	m1, m2 := res.Map[n1.ID()], res.Map[n2.ID()]
	require.NotEqual(t, aig.LitNone, m1)
	require.NotEqual(t, aig.LitNone, m2)
	require.NotEqual(t, m1.ID(), m2.ID())
	for x := 0; x < 8; x++ {
		in := []bool{x&1 != 0, x&2 != 0, x&4 != 0}
		vs := g.Eval(in)
		rvs := res.Reduced.Eval(in)
		for id := 0; id < g.Len(); id++ {
			if res.Map[id] == aig.LitNone {
				continue
			}
			require.Equal(t, vs[id], aig.EvalLit(rvs, res.Map[id]),
				"node %d diverges at %v", id, in)
		}
	}
}

func TestSweepDegenerate(t *testing.T) {
	res := Sweep(aig.New(), testParams())
	require.Equal(t, Equivalent, res.Status)

	g := aig.New()
	g.CI()
	g.CI()
	ps := testParams()
	ps.Miter = true
	res = Sweep(g, ps)
	require.Equal(t, Equivalent, res.Status)
	require.Nil(t, res.Cex)
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "equivalent", Equivalent.String())
	require.Equal(t, "not equivalent", NotEquivalent.String())
	require.Equal(t, "inconclusive", Inconclusive.String())
}
