// Copyright 2021 The CEC Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package aig

import (
	"testing"

	"github.com/go-air/gini/logic"
)

func TestFromSystem(t *testing.T) {
	sys := logic.NewS()
	a := sys.Lit()
	b := sys.Lit()
	g, err := FromSystem(sys, sys.And(a, b), sys.Or(a, b).Not())
	if err != nil {
		t.Fatal(err)
	}
	if g.NumCIs() != 2 {
		t.Fatalf("inputs %d, want 2", g.NumCIs())
	}
	if g.NumCOs() != 2 {
		t.Fatalf("outputs %d, want 2", g.NumCOs())
	}
	for x := 0; x < 4; x++ {
		in := []bool{x&1 != 0, x&2 != 0}
		vs := g.Eval(in)
		d0, _ := g.Fanins(g.COs()[0])
		d1, _ := g.Fanins(g.COs()[1])
		if EvalLit(vs, d0) != (in[0] && in[1]) {
			t.Errorf("and output wrong at %v", in)
		}
		if EvalLit(vs, d1) != !(in[0] || in[1]) {
			t.Errorf("nor output wrong at %v", in)
		}
	}
}

func TestFromSystemLatch(t *testing.T) {
	sys := logic.NewS()
	a := sys.Lit()
	l := sys.Latch(sys.F)
	sys.SetNext(l, sys.And(a, l.Not()))
	g, err := FromSystem(sys)
	if err != nil {
		t.Fatal(err)
	}
	// latch output becomes an input, next-state becomes an output
	if g.NumCIs() != 2 {
		t.Fatalf("inputs %d, want 2", g.NumCIs())
	}
	if g.NumCOs() != 1 {
		t.Fatalf("outputs %d, want 1", g.NumCOs())
	}
	vs := g.Eval([]bool{true, false})
	d, _ := g.Fanins(g.COs()[0])
	if !EvalLit(vs, d) {
		t.Errorf("next state wrong")
	}
}

func TestMiterMismatch(t *testing.T) {
	g1 := New()
	g1.CO(g1.CI())
	g2 := New()
	g2.CI()
	g2.CO(g2.CI())
	if _, err := Miter(g1, g2); err == nil {
		t.Errorf("input mismatch not reported")
	}
	g3 := New()
	a := g3.CI()
	g3.CO(a)
	g3.CO(a.Not())
	g4 := New()
	g4.CO(g4.CI())
	if _, err := Miter(g3, g4); err == nil {
		t.Errorf("output mismatch not reported")
	}
}

func TestMiter(t *testing.T) {
	// (a&b)&c vs a&(b&c): miter output is false everywhere
	g1 := New()
	{
		a, b, c := g1.CI(), g1.CI(), g1.CI()
		g1.CO(g1.And(g1.And(a, b), c))
	}
	g2 := New()
	{
		a, b, c := g2.CI(), g2.CI(), g2.CI()
		g2.CO(g2.And(a, g2.And(b, c)))
	}
	m, err := Miter(g1, g2)
	if err != nil {
		t.Fatal(err)
	}
	if m.NumCIs() != 3 || m.NumCOs() != 1 {
		t.Fatalf("miter shape %d/%d", m.NumCIs(), m.NumCOs())
	}
	for x := 0; x < 8; x++ {
		in := []bool{x&1 != 0, x&2 != 0, x&4 != 0}
		vs := m.Eval(in)
		d, _ := m.Fanins(m.COs()[0])
		if EvalLit(vs, d) {
			t.Errorf("miter fires at %v", in)
		}
	}

	// a&b vs a|b: miter fires exactly when a != b
	g3 := New()
	{
		a, b := g3.CI(), g3.CI()
		g3.CO(g3.And(a, b))
	}
	g4 := New()
	{
		a, b := g4.CI(), g4.CI()
		g4.CO(g4.Or(a, b))
	}
	m2, err := Miter(g3, g4)
	if err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 4; x++ {
		in := []bool{x&1 != 0, x&2 != 0}
		vs := m2.Eval(in)
		d, _ := m2.Fanins(m2.COs()[0])
		if EvalLit(vs, d) != (in[0] != in[1]) {
			t.Errorf("miter wrong at %v", in)
		}
	}
}
