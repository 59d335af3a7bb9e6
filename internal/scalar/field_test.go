package scalar

import (
	"math/big"
	"testing"
)

func TestElementArithmetic(t *testing.T) {
	a := FromInt64(5)
	b := FromInt64(3)

	if !Equal(Add(a, b), FromInt64(8)) {
		t.Errorf("5 + 3 != 8")
	}
	if !Equal(Sub(a, b), FromInt64(2)) {
		t.Errorf("5 - 3 != 2")
	}
	if !Equal(Mul(a, b), FromInt64(15)) {
		t.Errorf("5 * 3 != 15")
	}
	if !Equal(Neg(a), Sub(Zero(), a)) {
		t.Errorf("-5 != 0 - 5")
	}
}

func TestInverseRoundTrips(t *testing.T) {
	a := FromInt64(7)
	inv, ok := Inverse(a)
	if !ok {
		t.Fatalf("expected 7 to be invertible")
	}
	if !Equal(Mul(a, inv), One()) {
		t.Errorf("a * a^-1 != 1")
	}
}

func TestInverseOfZeroFails(t *testing.T) {
	if _, ok := Inverse(Zero()); ok {
		t.Errorf("zero must have no inverse")
	}
}

func TestFromBigIntToBigIntRoundTrip(t *testing.T) {
	want := big.NewInt(123456789)
	e := FromBigInt(want)
	got := ToBigInt(e)
	if got.Cmp(want) != 0 {
		t.Errorf("round trip: got %s, want %s", got, want)
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(Zero()) {
		t.Errorf("Zero() must report IsZero")
	}
	if IsZero(One()) {
		t.Errorf("One() must not report IsZero")
	}
}

func TestLinearCombinationAddScaleConst(t *testing.T) {
	lc := FromVar(0).Add(ScaledVar(FromInt64(2), 1)).AddConst(FromInt64(10))
	// 1*v0 + 2*v1 + 10, evaluated with v0=3, v1=4 => 3 + 8 + 10 = 21
	sys := NewSystem()
	ns := sys.Root()
	ns.Allocate(FromInt64(3))
	ns.Allocate(FromInt64(4))

	if got := sys.Eval(lc); !Equal(got, FromInt64(21)) {
		t.Errorf("eval = %s, want 21", got.String())
	}

	scaled := lc.Scale(FromInt64(2))
	if got := sys.Eval(scaled); !Equal(got, FromInt64(42)) {
		t.Errorf("scaled eval = %s, want 42", got.String())
	}
}

func TestLinearCombinationSub(t *testing.T) {
	sys := NewSystem()
	ns := sys.Root()
	ns.Allocate(FromInt64(9))

	lc := FromVar(0).Sub(Const(FromInt64(4)))
	if got := sys.Eval(lc); !Equal(got, FromInt64(5)) {
		t.Errorf("eval = %s, want 5", got.String())
	}
}

func TestIsConstant(t *testing.T) {
	if !Const(FromInt64(1)).IsConstant() {
		t.Errorf("a bare constant must report IsConstant")
	}
	if FromVar(0).IsConstant() {
		t.Errorf("a variable term must not report IsConstant")
	}
}
