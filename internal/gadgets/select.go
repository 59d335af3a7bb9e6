package gadgets

import (
	"math/big"

	"github.com/Epiisteme/zinc/internal/scalar"
)

// Select implements cselect: c*t + (1-c)*f, the arithmetization
// replacement for branching over values (spec.md §4.2, §6). Both t and f
// are always fully constrained regardless of which branch "wins" — that
// is the entire point: soundness requires every arm's constraints to be
// emitted unconditionally. Callers (the value layer) are responsible for
// matching t and f's type before calling Select; this gadget trusts that
// t.Bits, t.Signed already agree with f's.
func Select(ns *scalar.Namespace, label string, c, t, f Wire) (Wire, error) {
	var resultVal *big.Int
	if c.Val.Sign() != 0 {
		resultVal = new(big.Int).Set(t.Val)
	} else {
		resultVal = new(big.Int).Set(f.Val)
	}
	selNS := ns.Namespace(label)
	v := selNS.Allocate(scalar.FromBigInt(resultVal))
	outLC := scalar.FromVar(v)
	// c*(t-f) = out-f  <=>  out = c*t + (1-c)*f
	if err := selNS.Enforce(c.LC, t.LC.Sub(f.LC), outLC.Sub(f.LC), "select"); err != nil {
		return Wire{}, err
	}
	return Wire{LC: outLC, Val: resultVal, Bits: t.Bits, Signed: t.Signed}, nil
}
