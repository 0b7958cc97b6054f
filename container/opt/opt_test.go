package opt

import "testing"

func TestOptional(t *testing.T) {
	o := None[int]()
	if o.IsSome() || !o.IsNone() {
		t.Fatal("fresh optional not empty")
	}
	if _, ok := o.Get(); ok {
		t.Fatal("Get on empty optional")
	}
	if g, e := o.GetOr(7), 7; g != e {
		t.Fatal(g, e)
	}

	o.Set(42)
	if !o.IsSome() {
		t.Fatal("Set did not initialize")
	}
	if v, ok := o.Get(); !ok || v != 42 {
		t.Fatal(v, ok)
	}
	if g, e := o.GetOr(7), 42; g != e {
		t.Fatal(g, e)
	}

	o.Set(43)
	if v, _ := o.Get(); v != 43 {
		t.Fatal(v)
	}

	o.Reset()
	if o.IsSome() {
		t.Fatal("Reset left a value")
	}

	s := Some("x")
	if v, ok := s.Get(); !ok || v != "x" {
		t.Fatal(v, ok)
	}
}

func TestPair(t *testing.T) {
	p := MakePair("k", 1)
	if g, e := p.GetKey(), "k"; g != e {
		t.Fatal(g, e)
	}
	if g, e := p.GetVal(), 1; g != e {
		t.Fatal(g, e)
	}

	q := MakePair("k", 1)
	eq := func(a, b string) bool { return a == b }
	eqi := func(a, b int) bool { return a == b }
	if !Equal(p, q, eq, eqi) {
		t.Fatal("equal pairs compare unequal")
	}
	if Equal(p, MakePair("k", 2), eq, eqi) {
		t.Fatal("pairs differing in value compare equal")
	}
	if Equal(p, MakePair("j", 1), eq, eqi) {
		t.Fatal("pairs differing in key compare equal")
	}
}

func TestTuples(t *testing.T) {
	t2 := MakeTuple2(1, "a")
	if g, e := t2.Get0(), 1; g != e {
		t.Fatal(g, e)
	}
	if g, e := t2.Get1(), "a"; g != e {
		t.Fatal(g, e)
	}

	t3 := MakeTuple3(1, "a", 2.5)
	if g, e := t3.Get2(), 2.5; g != e {
		t.Fatal(g, e)
	}
}
