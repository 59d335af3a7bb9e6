// Package scalar adapts a pairing-friendly prime field to the needs of a
// constraint-generating evaluator: allocation of witness variables, linear
// combinations over them, and rank-1 enforcement. It never knows about the
// language's integers, booleans, or arrays — those live in internal/value
// and internal/gadgets. See the scalar backend adapter in spec.md §4.1.
package scalar

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Element is a field element of the bn254 scalar field, the same
// ~254-bit pairing-friendly field the rest of the retrieved pack reaches
// for (see _examples/other_examples/*gnark* and *go-corset*).
type Element = fr.Element

// FromInt64 builds a field element from a native signed integer.
func FromInt64(v int64) Element {
	var e Element
	e.SetInt64(v)
	return e
}

// FromBigInt reduces an arbitrary-precision integer modulo the field order.
func FromBigInt(v *big.Int) Element {
	var e Element
	e.SetBigInt(v)
	return e
}

// ToBigInt recovers the canonical representative of e in [0, modulus).
func ToBigInt(e Element) *big.Int {
	out := new(big.Int)
	e.BigInt(out)
	return out
}

// Zero and One are convenience constants, allocated fresh each call so
// callers may mutate their own copy freely (fr.Element is a value type).
func Zero() Element {
	var e Element
	e.SetZero()
	return e
}

func One() Element {
	var e Element
	e.SetOne()
	return e
}

func Add(a, b Element) Element {
	var out Element
	out.Add(&a, &b)
	return out
}

func Sub(a, b Element) Element {
	var out Element
	out.Sub(&a, &b)
	return out
}

func Mul(a, b Element) Element {
	var out Element
	out.Mul(&a, &b)
	return out
}

func Neg(a Element) Element {
	var out Element
	out.Neg(&a)
	return out
}

// Inverse returns a^-1 and true, or false if a is zero (it has no inverse).
func Inverse(a Element) (Element, bool) {
	if a.IsZero() {
		return Element{}, false
	}
	var out Element
	out.Inverse(&a)
	return out, true
}

func Equal(a, b Element) bool {
	return a.Equal(&b)
}

func IsZero(a Element) bool {
	return a.IsZero()
}
