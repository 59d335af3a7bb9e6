// Package gadgets implements the arithmetization primitives of spec.md
// §4.2: boolean logic, bit decomposition, fixed-width integer arithmetic,
// comparisons, conditional select, and range checks. Every gadget takes a
// namespace, operates on Wires, and returns both an updated witness and
// the constraints binding it — witness generation and constraint emission
// happen together, in one pass, exactly as spec.md §5 requires.
package gadgets

import (
	"math/big"

	"github.com/Epiisteme/zinc/internal/diag"
	"github.com/Epiisteme/zinc/internal/scalar"
)

// Wire is a single scalar-valued wire: a linear combination over the
// constraint system's variables, paired with the concrete native integer
// it represents (spec.md §3, Integer/Boolean invariant). Val is the
// literal signed-or-unsigned value — negative when Signed and the value
// is negative — and w.LC always field-evaluates to exactly Val. Because
// the field modulus is far larger than any width spec.md allows (max 253
// bits), ordinary field addition/subtraction/multiplication of two Wires'
// Val-consistent LCs tracks plain integer arithmetic exactly, with no
// wraparound, up to the point a width-bounded gadget explicitly range
// checks the result (see RangeCheck in bits.go). Only bit-level
// operations — decomposition, casts — need the bias trick of shifting Val
// into a non-negative range first.
type Wire struct {
	LC     scalar.LinearCombination
	Val    *big.Int
	Bits   uint
	Signed bool
}

// ConstWire builds a Wire for a compile-time-known value; no variable is
// allocated (spec.md §3: a constant is a distinct, cheaper reference kind
// than an allocated variable). value is trusted to already fit width
// bits at the given signedness — the caller (constant folding, bytecode
// push_const) is responsible for that invariant.
func ConstWire(value *big.Int, bits uint, signed bool) Wire {
	return Wire{
		LC:     scalar.Const(scalar.FromBigInt(value)),
		Val:    new(big.Int).Set(value),
		Bits:   bits,
		Signed: signed,
	}
}

// AllocWire allocates a fresh private witness variable carrying value,
// without constraining its range — callers that need a range guarantee
// must follow up with RangeCheck.
func AllocWire(ns *scalar.Namespace, value *big.Int, bits uint, signed bool) Wire {
	v := ns.Allocate(scalar.FromBigInt(value))
	return Wire{LC: scalar.FromVar(v), Val: new(big.Int).Set(value), Bits: bits, Signed: signed}
}

// AllocWireInput is AllocWire, but the variable is additionally recorded
// as a public input (spec.md §4.1, "allocate-input"), for the VM's
// input(type) instruction.
func AllocWireInput(ns *scalar.Namespace, value *big.Int, bits uint, signed bool) Wire {
	v := ns.AllocateInput(scalar.FromBigInt(value))
	return Wire{LC: scalar.FromVar(v), Val: new(big.Int).Set(value), Bits: bits, Signed: signed}
}

// SignedValue reinterprets w's Bits-wide two's-complement bit pattern as
// a signed integer, regardless of w.Signed. Cast does not call it; it
// derives the reinterpreted value and its constraints from a bit
// decomposition instead.
func (w Wire) SignedValue() *big.Int {
	return DecodeTwosComplement(EncodeTwosComplement(w.Val, w.Bits), w.Bits, true)
}

// UnsignedValue reinterprets w's bit pattern as an unsigned integer.
func (w Wire) UnsignedValue() *big.Int {
	return DecodeTwosComplement(EncodeTwosComplement(w.Val, w.Bits), w.Bits, false)
}

// Value returns w's native integer value using its own Signed tag. This
// is simply w.Val: a Wire's Val is always already stored under its own
// signedness.
func (w Wire) Value() *big.Int {
	return w.Val
}

func typeErr(kind diag.Kind, format string, args ...interface{}) error {
	return diag.NewUnlocated(kind, format, args...)
}
