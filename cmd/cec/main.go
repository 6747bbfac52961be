// Copyright 2021 The CEC Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Command cec checks combinational equivalence of and-inverter
// graphs in AIGER format.
//
//	cec miter.aig          sweep a single miter
//	cec left.aig right.aig build the miter of two designs and sweep it
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-air/cec"
	"github.com/go-air/cec/aig"
	"github.com/go-air/gini/logic/aiger"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	words   int
	rounds  int
	budget  time.Duration
	taint   int
	noMux   bool
	seed    int64
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "cec <miter.aig> | <left.aig> <right.aig>",
		Short:        "SAT-sweeping combinational equivalence checker",
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, args)
		},
	}
	fs := cmd.Flags()
	fs.IntVarP(&opts.words, "words", "w", 8, "simulation words per node")
	fs.IntVarP(&opts.rounds, "rounds", "r", 4, "extra simulation rounds")
	fs.DurationVarP(&opts.budget, "budget", "b", time.Second, "solve budget per query (0 = unbounded)")
	fs.IntVar(&opts.taint, "taint-rounds", 5, "iterations that taint fanout cones on disproof")
	fs.BoolVar(&opts.noMux, "no-mux", false, "disable the dedicated mux clause encoding")
	fs.Int64Var(&opts.seed, "seed", 1, "simulation seed")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log per-round statistics")
	return cmd
}

func run(opts *options, args []string) error {
	log := logrus.New()
	if opts.verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	ps := cec.DefaultParams()
	ps.SimWords = opts.words
	ps.SimRounds = opts.rounds
	ps.SolveBudget = opts.budget
	ps.TaintRounds = opts.taint
	ps.UseMuxCuts = !opts.noMux
	ps.Seed = opts.seed
	ps.Verbose = opts.verbose
	ps.Log = log

	var res *cec.Result
	if len(args) == 1 {
		g, err := readGraph(args[0])
		if err != nil {
			return err
		}
		ps.Miter = true
		res = cec.Sweep(g, ps)
	} else {
		g1, err := readGraph(args[0])
		if err != nil {
			return err
		}
		g2, err := readGraph(args[1])
		if err != nil {
			return err
		}
		res, err = cec.Check(g1, g2, ps)
		if err != nil {
			return err
		}
	}

	switch res.Status {
	case cec.Equivalent:
		fmt.Println("equivalent")
	case cec.NotEquivalent:
		fmt.Println("NOT equivalent")
		fmt.Println("counterexample:", res.Cex)
		os.Exit(1)
	case cec.Inconclusive:
		fmt.Printf("inconclusive: %d nodes exhausted the solve budget\n", res.Failed)
		os.Exit(2)
	}
	return nil
}

func readGraph(path string) (*aig.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	var t *aiger.T
	if strings.EqualFold(filepath.Ext(path), ".aag") {
		t, err = aiger.ReadAscii(f)
	} else {
		t, err = aiger.ReadBinary(f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	g, err := aig.FromAiger(t)
	if err != nil {
		return nil, errors.Wrapf(err, "importing %s", path)
	}
	return g, nil
}
