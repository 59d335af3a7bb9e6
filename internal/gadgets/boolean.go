package gadgets

import (
	"math/big"

	"github.com/Epiisteme/zinc/internal/scalar"
)

// BoolConst builds a boolean wire for a compile-time-known value.
func BoolConst(v bool) Wire {
	val := big.NewInt(0)
	if v {
		val.SetInt64(1)
	}
	return ConstWire(val, 1, false)
}

// BoolAlloc allocates a witness variable for v and constrains it to {0,1}.
func BoolAlloc(ns *scalar.Namespace, label string, v bool) (Wire, error) {
	val := big.NewInt(0)
	if v {
		val.SetInt64(1)
	}
	w := AllocWire(ns, val, 1, false)
	child := ns.Namespace(label)
	if err := child.Enforce(w.LC, scalar.Const(scalar.One()).Sub(w.LC), scalar.Const(scalar.Zero()), "boolean"); err != nil {
		return Wire{}, err
	}
	return w, nil
}

// BoolAllocInput is BoolAlloc, but the variable is additionally recorded
// as a public input, for the VM's input(type) instruction.
func BoolAllocInput(ns *scalar.Namespace, label string, v bool) (Wire, error) {
	val := big.NewInt(0)
	if v {
		val.SetInt64(1)
	}
	w := AllocWireInput(ns, val, 1, false)
	child := ns.Namespace(label)
	if err := child.Enforce(w.LC, scalar.Const(scalar.One()).Sub(w.LC), scalar.Const(scalar.Zero()), "boolean"); err != nil {
		return Wire{}, err
	}
	return w, nil
}

// Not returns 1-b; no new constraint is needed (spec.md §4.2).
func Not(b Wire) Wire {
	val := new(big.Int).Sub(big.NewInt(1), b.Val)
	return Wire{LC: scalar.Const(scalar.One()).Sub(b.LC), Val: val, Bits: 1, Signed: false}
}

// And allocates c with a*b=c.
func And(ns *scalar.Namespace, label string, a, b Wire) (Wire, error) {
	val := new(big.Int).And(a.Val, b.Val)
	v := ns.Allocate(scalar.FromBigInt(val))
	out := Wire{LC: scalar.FromVar(v), Val: val, Bits: 1, Signed: false}
	if err := ns.Namespace(label).Enforce(a.LC, b.LC, out.LC, "and"); err != nil {
		return Wire{}, err
	}
	return out, nil
}

// Or returns 1-((1-a)*(1-b)).
func Or(ns *scalar.Namespace, label string, a, b Wire) (Wire, error) {
	notA, notB := Not(a), Not(b)
	nand, err := And(ns, label, notA, notB)
	if err != nil {
		return Wire{}, err
	}
	return Not(nand), nil
}

// Xor allocates c with c = a+b-2ab.
func Xor(ns *scalar.Namespace, label string, a, b Wire) (Wire, error) {
	val := new(big.Int).Xor(a.Val, b.Val)
	v := ns.Allocate(scalar.FromBigInt(val))
	out := Wire{LC: scalar.FromVar(v), Val: val, Bits: 1, Signed: false}
	// c = a + b - 2ab  <=>  (2a)*(b) = a+b-c
	two := scalar.FromBigInt(big.NewInt(2))
	rhs := a.LC.Add(b.LC).Sub(out.LC)
	if err := ns.Namespace(label).Enforce(a.LC.Scale(two), b.LC, rhs, "xor"); err != nil {
		return Wire{}, err
	}
	return out, nil
}
