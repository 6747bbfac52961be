// Copyright 2021 The CEC Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package sat adapts the gini solver to the narrow interface the
// sweeping engine needs: fresh variables, clause insertion,
// assumption-based solving under a budget, model read-back, and a
// full per-query rollback.
package sat

import (
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// Result is the outcome of one solver call.  The values follow
// gini's convention.
type Result int

const (
	Unsat Result = -1
	Undec Result = 0
	Sat   Result = 1
)

func (r Result) String() string {
	switch r {
	case Unsat:
		return "unsat"
	case Sat:
		return "sat"
	default:
		return "undec"
	}
}

// Solver wraps one gini instance.  Variables and clauses only live
// between a query and the following Rollback; the sweep requires the
// solver to be empty when a query begins.
type Solver struct {
	g      *gini.Gini
	budget time.Duration
	nVars  int
}

// New creates a solver with a per-call time budget.  A zero budget
// solves without bound, making Undec impossible.
func New(budget time.Duration) *Solver {
	return &Solver{g: gini.New(), budget: budget}
}

// Lit allocates a fresh variable and returns its positive literal.
func (s *Solver) Lit() z.Lit {
	s.nVars++
	return s.g.Lit()
}

// NumVars gives the number of live variables.
func (s *Solver) NumVars() int {
	return s.nVars
}

// AddClause inserts one clause.  Insertion cannot fail; an
// inconsistent clause set surfaces as Unsat on the next Solve.
func (s *Solver) AddClause(ms ...z.Lit) {
	for _, m := range ms {
		s.g.Add(m)
	}
	s.g.Add(z.LitNull)
}

// Solve solves under the given assumption literals.  The assumptions
// hold for this call only.
func (s *Solver) Solve(assumes ...z.Lit) Result {
	s.g.Assume(assumes...)
	if s.budget <= 0 {
		return Result(s.g.Solve())
	}
	return Result(s.g.Try(s.budget))
}

// Value gives m's polarity in the model of the last Sat result.
func (s *Solver) Value(m z.Lit) bool {
	return s.g.Value(m)
}

// Rollback discards every variable and clause added since the last
// rollback (or creation), returning the solver to the empty state
// with a fresh budget.
func (s *Solver) Rollback() {
	s.g = gini.New()
	s.nVars = 0
}
