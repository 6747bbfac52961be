// Copyright 2021 The CEC Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package cec

import (
	"fmt"
	"io"

	"github.com/go-air/cec/aig"
	"github.com/go-air/cec/cnf"
	"github.com/go-air/cec/sat"
	"github.com/go-air/cec/sim"
	"github.com/go-air/gini/z"
	"github.com/sirupsen/logrus"
)

// Status is the verdict of a sweep.
type Status int

const (
	// Equivalent: every candidate pair was proved.
	Equivalent Status = iota
	// NotEquivalent: a counterexample was found (miter mode).
	NotEquivalent
	// Inconclusive: some pairs exhausted the solve budget.
	Inconclusive
)

func (s Status) String() string {
	switch s {
	case Equivalent:
		return "equivalent"
	case NotEquivalent:
		return "not equivalent"
	default:
		return "inconclusive"
	}
}

// Result reports the outcome of a sweep.  The reduced graph and the
// per-node mapping let the caller rebuild the minimized circuit:
// Map[id] is the reduced edge computing node id, or LitNone for
// nodes that were never swept (COs, disproved leftovers).
type Result struct {
	Status  Status
	Cex     *sim.Cex
	Iters   int
	Proved  int
	Failed  int
	Reduced *aig.Graph
	Map     []aig.Lit
	Classes *aig.Classes
}

type engine struct {
	ps  Params
	log *logrus.Logger
	g   *aig.Graph
	rg  *aig.Graph
	sim *sim.Sim
	sat *sat.Solver
	bld *cnf.Builder
	cls *aig.Classes

	val   []aig.Lit // original id -> reduced edge, LitNone unswept
	taint []bool

	patBuf  []ciBit // model capture of the last Sat query
	nProved int
	nFailed int
}

type ciBit struct {
	ci  int
	val bool
}

// Check builds a miter of two graphs and sweeps it.
func Check(g1, g2 *aig.Graph, ps Params) (*Result, error) {
	m, err := aig.Miter(g1, g2)
	if err != nil {
		return nil, err
	}
	ps.Miter = true
	return Sweep(m, ps), nil
}

// Sweep runs the SAT sweep over g: candidate classes are seeded by
// simulation, then proved pairwise by two-polarity solver queries or
// disproved by satisfying assignments folded back into the
// simulation vectors, until no class changes.
func Sweep(g *aig.Graph, ps Params) *Result {
	log := ps.Log
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	g.ComputePhases()
	if ps.Miter {
		for k, id := range g.COs() {
			if g.Phase(id) {
				// the all-zero pattern already fails this output
				return &Result{
					Status: NotEquivalent,
					Cex:    &sim.Cex{Out: k, NumCIs: g.NumCIs()},
				}
			}
		}
	}

	s := sim.New(g, ps.SimWords, ps.Seed)
	s.RandomizeCIs()
	s.Propagate()
	if ps.Miter {
		if cex := s.CheckCOs(); cex != nil {
			return &Result{Status: NotEquivalent, Cex: cex}
		}
	}
	cls := s.BuildClasses()
	logClasses(log, ps, "seed", cls)
	for r := 0; r < ps.SimRounds; r++ {
		s.RandomizeCIs()
		s.Propagate()
		if ps.Miter {
			if cex := s.CheckCOs(); cex != nil {
				return &Result{Status: NotEquivalent, Cex: cex}
			}
		}
		s.Refine(cls)
		s.SaveCIs()
		logClasses(log, ps, fmt.Sprintf("sim %d", r), cls)
	}

	e := newEngine(g, cls, s, ps, log)
	return e.sweep()
}

func newEngine(g *aig.Graph, cls *aig.Classes, s *sim.Sim, ps Params, log *logrus.Logger) *engine {
	e := &engine{
		ps:    ps,
		log:   log,
		g:     g,
		rg:    aig.NewCap(g.Len()),
		sim:   s,
		sat:   sat.New(ps.SolveBudget),
		cls:   cls,
		val:   make([]aig.Lit, g.Len()),
		taint: make([]bool, g.Len()),
	}
	for id := range e.val {
		e.val[id] = aig.LitNone
	}
	e.val[0] = e.rg.ConstFalse()
	for _, id := range g.CIs() {
		e.val[id] = e.rg.CI()
	}
	e.bld = cnf.New(e.rg, e.sat, ps.UseMuxCuts)
	return e
}

func (e *engine) sweep() *Result {
	var cex *sim.Cex
	iters := 0
	for disproved := true; disproved && cex == nil; iters++ {
		disproved = false
		e.sim.RandomizeCIs()
		for id := 1; id < e.g.Len(); id++ {
			if !e.g.IsAnd(id) {
				continue
			}
			f0, f1 := e.g.Fanins(id)
			e.taint[id] = e.taint[f0.ID()] || e.taint[f1.ID()]
			if e.taint[id] {
				continue
			}
			if e.val[id] != aig.LitNone {
				continue
			}
			rv0, rv1 := e.val[f0.ID()], e.val[f1.ID()]
			if rv0 == aig.LitNone || rv1 == aig.LitNone {
				continue
			}
			rv := e.rg.And(rv0.Xor(!f0.IsPos()), rv1.Xor(!f1.IsPos()))
			e.val[id] = rv
			repr := e.cls.Repr(id)
			if repr == aig.Void || e.taint[repr] {
				continue
			}
			rvr := e.val[repr]
			if rvr == aig.LitNone {
				continue
			}
			if rv.ID() == rvr.ID() {
				if (rv.IsPos() != rvr.IsPos()) != (e.g.Phase(id) != e.g.Phase(repr)) {
					panic("cec: structural merge with inconsistent phases")
				}
				e.nProved++
				continue
			}
			compl := rv.IsPos() != rvr.IsPos() != e.g.Phase(id) != e.g.Phase(repr)
			switch e.solveTwo(rvr.ID(), rv.ID(), compl) {
			case sat.Unsat:
				e.val[id] = rvr.Xor(compl)
				e.nProved++
			case sat.Sat:
				slot := e.sim.NextSlot()
				for _, pb := range e.patBuf {
					e.sim.SetCIBit(pb.ci, slot, pb.val)
				}
				e.val[id] = aig.LitNone
				disproved = true
				if iters < e.ps.TaintRounds {
					if e.g.IsAnd(repr) {
						e.taint[repr] = true
					}
					e.taint[id] = true
				}
			case sat.Undec:
				// keeps its own reduced edge; never retried
				e.nFailed++
			}
		}
		if disproved {
			e.sim.Propagate()
			e.sim.Refine(e.cls)
			e.sim.SaveCIs()
			if e.ps.Miter {
				cex = e.sim.CheckCOs()
			}
		}
		logClasses(e.log, e.ps, fmt.Sprintf("sweep %d", iters), e.cls)
	}

	res := &Result{
		Cex:     cex,
		Iters:   iters,
		Proved:  e.nProved,
		Failed:  e.nFailed,
		Reduced: e.rg,
		Map:     e.val,
		Classes: e.cls,
	}
	switch {
	case cex != nil:
		res.Status = NotEquivalent
	case e.nFailed > 0:
		res.Status = Inconclusive
	default:
		res.Status = Equivalent
	}
	e.log.WithFields(logrus.Fields{
		"status": res.Status.String(),
		"iters":  res.Iters,
		"proved": res.Proved,
		"failed": res.Failed,
		"nodes":  e.rg.Len(),
	}).Info("sweep done")
	return res
}

// solveTwo issues the two polarity-sensitive queries for one pair of
// reduced nodes.  The direct query assumes the nodes differ in the
// expected phase relation; only when it is unsat (and the smaller
// node is not the constant) does the reverse query run.  Both must
// be unsat for a proof.  On Sat the model's CI assignment is
// captured before the query's variables are rolled back.
func (e *engine) solveTwo(i0, i1 int, compl bool) sat.Result {
	if i1 < i0 {
		i0, i1 = i1, i0
	}
	if e.sat.NumVars() != 0 {
		panic("cec: solver not empty at query start")
	}
	defer e.bld.Release()
	v0 := e.bld.Var(i0)
	v1 := e.bld.Var(i1)
	st := e.sat.Solve(v0.Not(), xorLit(v1, compl))
	if st == sat.Unsat && i0 > 0 {
		st = e.sat.Solve(v0, xorLit(v1, !compl))
	}
	if st == sat.Sat {
		e.patBuf = e.patBuf[:0]
		for _, cv := range e.bld.CIVars() {
			e.patBuf = append(e.patBuf, ciBit{ci: cv.CI, val: e.sat.Value(cv.Var)})
		}
		if e.ps.SelfCheck {
			e.verifyPattern(i0, i1, compl)
		}
	}
	return st
}

// verifyPattern replays the captured model through the reduced graph
// and checks that it indeed distinguishes the pair.
func (e *engine) verifyPattern(i0, i1 int, compl bool) {
	in := make([]bool, e.rg.NumCIs())
	for _, pb := range e.patBuf {
		in[pb.ci] = pb.val
	}
	vs := e.rg.Eval(in)
	if (vs[i0] != vs[i1]) != compl {
		return
	}
	e.log.WithFields(logrus.Fields{
		"node0": i0,
		"node1": i1,
	}).Error("counterexample verification failed")
	panic("cec: solver model does not distinguish the pair")
}

func xorLit(v z.Lit, c bool) z.Lit {
	if c {
		return v.Not()
	}
	return v
}

func logClasses(log *logrus.Logger, ps Params, stage string, cls *aig.Classes) {
	if !ps.Verbose {
		return
	}
	classes, members := cls.Counts()
	log.WithFields(logrus.Fields{
		"stage":   stage,
		"classes": classes,
		"members": members,
	}).Info("equivalence classes")
}
