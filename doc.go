// Copyright 2021 The CEC Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package cec implements SAT-sweeping combinational equivalence
// checking over and-inverter graphs.
//
// The sweep interleaves word-parallel random simulation with
// incremental SAT.  Simulation groups nodes with identical signatures
// into candidate equivalence classes; each candidate is then checked
// against its class representative with a pair of SAT queries over a
// locally constructed CNF cut.  Proven nodes are merged into a reduced
// graph built by structural hashing, counterexamples are folded back
// into the simulation vectors to split spurious classes, and the loop
// repeats until no class member is disproved.
//
// The top level entry points are Check, which builds a miter of two
// graphs and sweeps it, and Sweep, which sweeps a single graph (and,
// when Params.Miter is set, decides its outputs).  Supporting packages:
//
//	aig  and-inverter graphs, structural hashing, mux recognition
//	sim  word-parallel simulation and equivalence classes
//	cnf  cut-local CNF construction with release/rollback
//	sat  a thin solver adapter over gini
package cec
