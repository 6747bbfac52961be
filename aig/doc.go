// Copyright 2021 The CEC Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package aig provides an and-inverter graph: the circuit substrate
// over which the sweeping engine, the simulator and the CNF builder
// operate.  Nodes live in a dense arena addressed by integer ids and
// edges carry an inversion bit, mirroring gini's z.Lit encoding.
// Structural hashing shares identical AND nodes on construction.
package aig
