package gadgets

import (
	"math/big"

	"github.com/Epiisteme/zinc/internal/diag"
	"github.com/Epiisteme/zinc/internal/scalar"
)

var one = big.NewInt(1)

func pow2(bits uint) *big.Int {
	return new(big.Int).Lsh(one, bits)
}

// EncodeTwosComplement returns the non-negative, width-`bits` two's
// complement bit pattern for value, used by Wire.SignedValue and
// Wire.UnsignedValue where the literal bit representation is wanted
// rather than the arithmetic value (spec.md §3, §9 Open Question on
// signed<->unsigned cast).
func EncodeTwosComplement(value *big.Int, bits uint) *big.Int {
	mod := pow2(bits)
	out := new(big.Int).Mod(value, mod)
	if out.Sign() < 0 {
		out.Add(out, mod)
	}
	return out
}

// DecodeTwosComplement interprets a non-negative width-`bits` bit pattern
// as a native integer, signed or unsigned.
func DecodeTwosComplement(repr *big.Int, bits uint, signed bool) *big.Int {
	if !signed {
		return new(big.Int).Set(repr)
	}
	half := new(big.Int).Lsh(one, bits-1)
	if repr.Cmp(half) < 0 {
		return new(big.Int).Set(repr)
	}
	return new(big.Int).Sub(repr, pow2(bits))
}

// InRange reports whether value fits in a width-`bits` signed or unsigned
// integer without truncation.
func InRange(value *big.Int, bits uint, signed bool) bool {
	if !signed {
		return value.Sign() >= 0 && value.Cmp(pow2(bits)) < 0
	}
	half := new(big.Int).Lsh(one, bits-1)
	min := new(big.Int).Neg(half)
	max := new(big.Int).Sub(half, one)
	return value.Cmp(min) >= 0 && value.Cmp(max) <= 0
}

// BitDecompose allocates `bits` boolean variables v0..v(bits-1) (LSB
// first) and enforces sum(2^i*vi) = x.LC, per spec.md §4.2. x.Val must
// already be a non-negative integer less than 2^bits — callers reach this
// through RangeCheck, which biases a possibly-signed value into that
// domain first.
func BitDecompose(ns *scalar.Namespace, label string, x Wire, bits uint) ([]Wire, error) {
	bitNS := ns.Namespace(label)
	out := make([]Wire, bits)
	sum := scalar.LinearCombination{}
	weight := big.NewInt(1)
	for i := uint(0); i < bits; i++ {
		bitVal := new(big.Int).And(new(big.Int).Rsh(x.Val, i), one)
		v := bitNS.Allocate(scalar.FromBigInt(bitVal))
		bitLC := scalar.FromVar(v)
		if err := bitNS.Enforce(bitLC, scalar.Const(scalar.One()).Sub(bitLC), scalar.Const(scalar.Zero()), "bit_boolean"); err != nil {
			return nil, err
		}
		out[i] = Wire{LC: bitLC, Val: bitVal, Bits: 1, Signed: false}
		sum = sum.Add(bitLC.Scale(scalar.FromBigInt(weight)))
		weight = new(big.Int).Lsh(weight, 1)
	}
	if err := bitNS.Enforce(scalar.Const(scalar.One()), sum, x.LC, "decomposition_sum"); err != nil {
		return nil, err
	}
	return out, nil
}

// recombine rebuilds a linear combination and concrete value from a
// low-to-high slice of boolean wires, the inverse of BitDecompose.
func recombine(bits []Wire) (scalar.LinearCombination, *big.Int) {
	lc := scalar.LinearCombination{}
	val := big.NewInt(0)
	weight := big.NewInt(1)
	for _, b := range bits {
		lc = lc.Add(b.LC.Scale(scalar.FromBigInt(weight)))
		if b.Val.Sign() != 0 {
			val = new(big.Int).Add(val, weight)
		}
		weight = new(big.Int).Lsh(weight, 1)
	}
	return lc, val
}

// RangeCheck is the workhorse range-enforcement gadget behind every
// width-bounded integer operation (spec.md §4.2: "Required before any
// operation that could overflow or underflow the declared width"). It
// reports InRange's verdict as a typed error under `kind` if w.Val does
// not fit width `bits` at w's own signedness, and otherwise emits the
// constraints binding w.LC to that many bits via a biased (always
// non-negative) decomposition — necessary because signed values can be
// negative, and BitDecompose only ever works over non-negative integers.
func RangeCheck(ns *scalar.Namespace, label string, w Wire, bits uint, kind diag.Kind) error {
	if !InRange(w.Val, bits, w.Signed) {
		return typeErr(kind, "value %s does not fit in a %d-bit %s integer", w.Val.String(), bits, signWord(w.Signed))
	}
	biasedLC := w.LC
	biasedVal := w.Val
	if w.Signed {
		bias := pow2(bits - 1)
		biasedLC = w.LC.AddConst(scalar.FromBigInt(bias))
		biasedVal = new(big.Int).Add(w.Val, bias)
	}
	_, err := BitDecompose(ns, label, Wire{LC: biasedLC, Val: biasedVal, Bits: bits, Signed: false}, bits)
	return err
}

func signWord(signed bool) string {
	if signed {
		return "signed"
	}
	return "unsigned"
}
