package gadgets

import (
	"math/big"
	"testing"

	"github.com/Epiisteme/zinc/internal/scalar"
)

func TestSelectPicksTrueArm(t *testing.T) {
	sys := scalar.NewSystem()
	ns := sys.Root()
	c := BoolConst(true)
	tArm := AllocWire(ns, big.NewInt(11), 8, false)
	fArm := AllocWire(ns, big.NewInt(22), 8, false)

	out, err := Select(ns, "sel", c, tArm, fArm)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if out.Val.Cmp(big.NewInt(11)) != 0 {
		t.Errorf("Select(true, 11, 22) = %s, want 11", out.Val)
	}
}

func TestSelectPicksFalseArmAndConstrainsBothArms(t *testing.T) {
	sys := scalar.NewSystem()
	ns := sys.Root()
	c := BoolConst(false)
	tArm := AllocWire(ns, big.NewInt(11), 8, false)
	fArm := AllocWire(ns, big.NewInt(22), 8, false)

	before := len(sys.Constraints())
	out, err := Select(ns, "sel", c, tArm, fArm)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if out.Val.Cmp(big.NewInt(22)) != 0 {
		t.Errorf("Select(false, 11, 22) = %s, want 22", out.Val)
	}
	if len(sys.Constraints()) == before {
		t.Errorf("Select must emit a constraint even though c is a compile-time constant here")
	}
}
