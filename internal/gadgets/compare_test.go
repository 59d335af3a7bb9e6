package gadgets

import (
	"math/big"
	"testing"

	"github.com/Epiisteme/zinc/internal/scalar"
)

func TestEqualsAndNotEquals(t *testing.T) {
	sys := scalar.NewSystem()
	ns := sys.Root()
	a := AllocWire(ns, big.NewInt(7), 8, false)
	b := AllocWire(ns, big.NewInt(7), 8, false)
	c := AllocWire(ns, big.NewInt(9), 8, false)

	eq, err := Equals(ns, "eq1", a, b)
	if err != nil {
		t.Fatalf("Equals: %v", err)
	}
	if eq.Val.Sign() == 0 {
		t.Errorf("7 == 7 should be true")
	}

	neq, err := NotEquals(ns, "neq1", a, c)
	if err != nil {
		t.Fatalf("NotEquals: %v", err)
	}
	if neq.Val.Sign() == 0 {
		t.Errorf("7 != 9 should be true")
	}

	eq2, err := Equals(ns, "eq2", a, c)
	if err != nil {
		t.Fatalf("Equals: %v", err)
	}
	if eq2.Val.Sign() != 0 {
		t.Errorf("7 == 9 should be false")
	}
}

func TestLtLeGtGe(t *testing.T) {
	sys := scalar.NewSystem()
	ns := sys.Root()
	a := AllocWire(ns, big.NewInt(3), 8, false)
	b := AllocWire(ns, big.NewInt(5), 8, false)

	lt, err := Lt(ns, "lt", a, b, 8)
	if err != nil {
		t.Fatalf("Lt: %v", err)
	}
	if lt.Val.Sign() == 0 {
		t.Errorf("3 < 5 should be true")
	}

	le, err := Le(ns, "le", a, b, 8)
	if err != nil {
		t.Fatalf("Le: %v", err)
	}
	if le.Val.Sign() == 0 {
		t.Errorf("3 <= 5 should be true")
	}

	gt, err := Gt(ns, "gt", a, b, 8)
	if err != nil {
		t.Fatalf("Gt: %v", err)
	}
	if gt.Val.Sign() != 0 {
		t.Errorf("3 > 5 should be false")
	}

	ge, err := Ge(ns, "ge", b, a, 8)
	if err != nil {
		t.Fatalf("Ge: %v", err)
	}
	if ge.Val.Sign() == 0 {
		t.Errorf("5 >= 3 should be true")
	}
}

func TestLtHandlesNegativeSignedOperands(t *testing.T) {
	sys := scalar.NewSystem()
	ns := sys.Root()
	a := AllocWire(ns, big.NewInt(-5), 8, true)
	b := AllocWire(ns, big.NewInt(3), 8, true)

	lt, err := Lt(ns, "lt", a, b, 8)
	if err != nil {
		t.Fatalf("Lt: %v", err)
	}
	if lt.Val.Sign() == 0 {
		t.Errorf("-5 < 3 should be true")
	}
}
