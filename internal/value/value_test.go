package value

import (
	"math/big"
	"testing"

	"github.com/Epiisteme/zinc/internal/scalar"
)

func TestArrayIndexUpdateRoundTrip(t *testing.T) {
	u8 := Int(8, false)
	arr := NewArray(u8, []Value{
		IntConst(8, false, big.NewInt(1)),
		IntConst(8, false, big.NewInt(2)),
		IntConst(8, false, big.NewInt(3)),
	})

	got, err := Index(arr, 1)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if got.Wire.Val.Cmp(big.NewInt(2)) != 0 {
		t.Errorf("arr[1] = %s, want 2", got.Wire.Val)
	}

	updated, err := Update(arr, 1, IntConst(8, false, big.NewInt(99)))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	again, _ := Index(updated, 1)
	if again.Wire.Val.Cmp(big.NewInt(99)) != 0 {
		t.Errorf("updated arr[1] = %s, want 99", again.Wire.Val)
	}
	// original must be untouched (copy semantics).
	orig, _ := Index(arr, 1)
	if orig.Wire.Val.Cmp(big.NewInt(2)) != 0 {
		t.Errorf("original array mutated: arr[1] = %s, want 2", orig.Wire.Val)
	}
}

func TestStructFieldGetUpdate(t *testing.T) {
	u8 := Int(8, false)
	s := NewStruct([]string{"x", "y"}, []Value{
		IntConst(8, false, big.NewInt(10)),
		IntConst(8, false, big.NewInt(20)),
	})
	y, err := Field(s, "y")
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	if y.Wire.Val.Cmp(big.NewInt(20)) != 0 {
		t.Errorf("s.y = %s, want 20", y.Wire.Val)
	}

	updated, err := UpdateField(s, "x", IntConst(8, false, big.NewInt(11)))
	if err != nil {
		t.Fatalf("update field: %v", err)
	}
	x, _ := Field(updated, "x")
	if x.Wire.Val.Cmp(big.NewInt(11)) != 0 {
		t.Errorf("updated s.x = %s, want 11", x.Wire.Val)
	}
	_ = u8
}

func TestSelectConstrainsBothArms(t *testing.T) {
	sys := scalar.NewSystem()
	ns := sys.Root()

	cond, err := AllocBool(ns, "c", true)
	if err != nil {
		t.Fatalf("alloc bool: %v", err)
	}
	tArm := AllocInt(ns, 8, false, big.NewInt(5))
	fArm := AllocInt(ns, 8, false, big.NewInt(9))

	before := sys.NumVariables()
	result, err := Select(ns, "sel", cond, tArm, fArm)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if result.Wire.Val.Cmp(big.NewInt(5)) != 0 {
		t.Errorf("select(true, 5, 9) = %s, want 5", result.Wire.Val)
	}
	if sys.NumVariables() == before {
		t.Errorf("expected select to allocate at least one new variable")
	}
}

func TestEqualsReflexiveAndSymmetric(t *testing.T) {
	sys := scalar.NewSystem()
	ns := sys.Root()
	a := AllocInt(ns, 8, false, big.NewInt(42))
	b := AllocInt(ns, 8, false, big.NewInt(42))

	aa, err := Equals(ns, "aa", a, a)
	if err != nil {
		t.Fatalf("equals a a: %v", err)
	}
	if aa.IsZero() {
		t.Errorf("expected a == a to hold")
	}

	ab, err := Equals(ns, "ab", a, b)
	if err != nil {
		t.Fatalf("equals a b: %v", err)
	}
	ba, err := Equals(ns, "ba", b, a)
	if err != nil {
		t.Fatalf("equals b a: %v", err)
	}
	if ab.IsZero() != ba.IsZero() {
		t.Errorf("equals should be symmetric: a==b is %v, b==a is %v", !ab.IsZero(), !ba.IsZero())
	}
}
