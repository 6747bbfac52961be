// Copyright 2021 The CEC Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package cec

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Params configures one sweep.
type Params struct {
	// SimWords is the simulation vector width in 64-bit words.
	SimWords int
	// SimRounds is the number of extra simulation rounds run to
	// strengthen candidate classes before the first SAT query.
	SimRounds int
	// SolveBudget bounds each solver call.  Zero solves without
	// bound; with a bound, exhausted calls leave the node
	// inconclusive.
	SolveBudget time.Duration
	// Miter treats the graph as a miter: outputs are checked
	// against constant false and any violation is a counterexample.
	Miter bool
	// TaintRounds is the number of leading sweep iterations during
	// which a disproof taints the node, its representative and its
	// fanout cone, deferring their queries until after
	// resimulation.  Later iterations tolerate disproofs without
	// tainting, trading completeness per round for speed.
	TaintRounds int
	// UseMuxCuts enables the dedicated if-then-else clause
	// encoding.
	UseMuxCuts bool
	// SelfCheck re-evaluates every extracted counterexample
	// pattern against the graph.
	SelfCheck bool
	// Seed drives the simulation pseudorandom source.
	Seed int64
	// Verbose logs per-round class statistics at info level.
	Verbose bool
	// Log receives progress and statistics.  Nil discards.
	Log *logrus.Logger
}

// DefaultParams gives defaults suitable for medium-sized designs.
func DefaultParams() Params {
	return Params{
		SimWords:    8,
		SimRounds:   4,
		SolveBudget: time.Second,
		TaintRounds: 5,
		UseMuxCuts:  true,
		Seed:        1,
	}
}
