package gadgets

import (
	"math/big"

	"github.com/Epiisteme/zinc/internal/diag"
	"github.com/Epiisteme/zinc/internal/scalar"
)

// signBitOfSigned returns a boolean wire that is 1 iff x.Val < 0, derived
// from the same bias-by-half decomposition RangeCheck uses for a signed
// width. It produces a genuine constrained wire, not a bare witness
// value, so cast's bit-reinterpretation is backed by a real constraint.
func signBitOfSigned(ns *scalar.Namespace, label string, x Wire) (Wire, error) {
	bias := pow2(x.Bits - 1)
	biasedLC := x.LC.AddConst(scalar.FromBigInt(bias))
	biasedVal := new(big.Int).Add(x.Val, bias)
	bits, err := BitDecompose(ns, label, Wire{LC: biasedLC, Val: biasedVal, Bits: x.Bits, Signed: false}, x.Bits)
	if err != nil {
		return Wire{}, err
	}
	// bits[Bits-1] is 1 iff biasedVal >= 2^(Bits-1) iff x.Val >= 0.
	return Not(bits[x.Bits-1]), nil
}

// topBitOfUnsigned returns x's most significant bit, given x.Val is
// already non-negative and fits x.Bits bits (true of any well-formed
// unsigned Wire).
func topBitOfUnsigned(ns *scalar.Namespace, label string, x Wire) (Wire, error) {
	bits, err := BitDecompose(ns, label, x, x.Bits)
	if err != nil {
		return Wire{}, err
	}
	return bits[x.Bits-1], nil
}

// Cast implements width- and sign-changing cast (spec.md §4.2, §9). A
// signedness change at the same width is pure bit-pattern reinterpretation
// and never fails — the Open Question resolution documented in
// SPEC_FULL.md: `let x: i8 = -1; output x as u8;` yields 255, not an
// error. Widening always succeeds (the value already fits the narrower
// source width, so it trivially fits a wider one at the same
// signedness). Narrowing re-checks the range and fails with
// NarrowingOutOfRange if the value no longer fits.
func Cast(ns *scalar.Namespace, label string, x Wire, newWidth uint, newSigned bool) (Wire, error) {
	v2LC := x.LC
	v2Val := new(big.Int).Set(x.Val)

	switch {
	case x.Signed && !newSigned:
		sign, err := signBitOfSigned(ns, label+".sign", x)
		if err != nil {
			return Wire{}, err
		}
		if x.Val.Sign() < 0 {
			v2Val = new(big.Int).Add(x.Val, pow2(x.Bits))
		}
		v2LC = x.LC.Add(sign.LC.Scale(scalar.FromBigInt(pow2(x.Bits))))
	case !x.Signed && newSigned:
		top, err := topBitOfUnsigned(ns, label+".sign", x)
		if err != nil {
			return Wire{}, err
		}
		if x.Val.Cmp(pow2(x.Bits-1)) >= 0 {
			v2Val = new(big.Int).Sub(x.Val, pow2(x.Bits))
		}
		v2LC = x.LC.Sub(top.LC.Scale(scalar.FromBigInt(pow2(x.Bits))))
	}

	result := Wire{LC: v2LC, Val: v2Val, Bits: newWidth, Signed: newSigned}
	if err := RangeCheck(ns, label+".range", result, newWidth, diag.NarrowingOutOfRange); err != nil {
		return Wire{}, err
	}
	return result, nil
}
