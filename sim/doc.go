// Copyright 2021 The CEC Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package sim simulates an and-inverter graph on 64-bit words of
// pseudorandom input patterns and maintains the candidate
// equivalence classes that the patterns induce.  It both seeds the
// classes from scratch and refines them when the sweeping engine
// feeds back distinguishing patterns from satisfiable queries.
package sim
