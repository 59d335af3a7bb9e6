package gadgets

import (
	"math/big"

	"github.com/Epiisteme/zinc/internal/scalar"
)

// Equals implements eq(a,b): allocate e ∈ {0,1} and an inverse witness inv
// such that (a-b)*inv = 1-e and (a-b)*e = 0 (spec.md §4.2). When a==b, e=1
// and inv is unconstrained by either equation so any placeholder (0) does;
// when a!=b, e=0 and inv must be the field inverse of (a-b), which exists
// because a!=b implies a-b is a nonzero field element.
func Equals(ns *scalar.Namespace, label string, a, b Wire) (Wire, error) {
	diffVal := new(big.Int).Sub(a.Val, b.Val)
	diffLC := a.LC.Sub(b.LC)
	eqNS := ns.Namespace(label)

	var eVal, invVal *big.Int
	if diffVal.Sign() == 0 {
		eVal = big.NewInt(1)
		invVal = big.NewInt(0)
	} else {
		eVal = big.NewInt(0)
		inv, ok := scalar.Inverse(scalar.FromBigInt(diffVal))
		if !ok {
			// diffVal reduces to zero mod the field order; impossible for any
			// width this language allows, since the field modulus vastly
			// exceeds 2^253.
			inv = scalar.Zero()
		}
		invVal = scalar.ToBigInt(inv)
	}
	eVar := eqNS.Allocate(scalar.FromBigInt(eVal))
	invVar := eqNS.Allocate(scalar.FromBigInt(invVal))
	eLC := scalar.FromVar(eVar)
	invLC := scalar.FromVar(invVar)

	if err := eqNS.Enforce(diffLC, invLC, scalar.Const(scalar.One()).Sub(eLC), "inverse"); err != nil {
		return Wire{}, err
	}
	if err := eqNS.Enforce(diffLC, eLC, scalar.Const(scalar.Zero()), "zero"); err != nil {
		return Wire{}, err
	}
	return Wire{LC: eLC, Val: eVal, Bits: 1, Signed: false}, nil
}

// NotEquals implements neq as 1-eq (spec.md §4.2).
func NotEquals(ns *scalar.Namespace, label string, a, b Wire) (Wire, error) {
	eq, err := Equals(ns, label, a, b)
	if err != nil {
		return Wire{}, err
	}
	return Not(eq), nil
}

// Lt implements lt(a,b) by biasing (a-b) into a non-negative width+1-bit
// range and bit-decomposing it: the top bit is 1 iff a-b >= 0, so its
// complement is exactly "a < b" (spec.md §4.2). Because a Wire's Val is
// always the true (possibly negative) integer regardless of signedness,
// this single construction is correct for both signed and unsigned
// operands — no separate sign-bit-agreement case is needed.
func Lt(ns *scalar.Namespace, label string, a, b Wire, width uint) (Wire, error) {
	diffVal := new(big.Int).Sub(a.Val, b.Val)
	diffLC := a.LC.Sub(b.LC)
	bias := pow2(width)
	biasedVal := new(big.Int).Add(diffVal, bias)
	biasedLC := diffLC.AddConst(scalar.FromBigInt(bias))
	bits, err := BitDecompose(ns, label, Wire{LC: biasedLC, Val: biasedVal, Bits: width + 1, Signed: false}, width+1)
	if err != nil {
		return Wire{}, err
	}
	return Not(bits[width]), nil
}

// Le, Gt, and Ge derive from Lt and Not (spec.md §4.2: "le, gt, ge derive
// from lt and eq" — equivalently, from lt alone with operands swapped).
func Le(ns *scalar.Namespace, label string, a, b Wire, width uint) (Wire, error) {
	gt, err := Lt(ns, label, b, a, width)
	if err != nil {
		return Wire{}, err
	}
	return Not(gt), nil
}

func Gt(ns *scalar.Namespace, label string, a, b Wire, width uint) (Wire, error) {
	return Lt(ns, label, b, a, width)
}

func Ge(ns *scalar.Namespace, label string, a, b Wire, width uint) (Wire, error) {
	lt, err := Lt(ns, label, a, b, width)
	if err != nil {
		return Wire{}, err
	}
	return Not(lt), nil
}
