package scalar

// Term is one weighted variable inside a linear combination: coeff * var.
type Term struct {
	Coeff Element
	Var   int
}

// LinearCombination is a finite weighted sum of variables plus a constant,
// per spec.md §3: one of the three abstract kinds of scalar reference (the
// other two — a bare constant and a single allocated variable — are both
// just degenerate linear combinations here, which keeps the algebra in one
// place instead of three).
type LinearCombination struct {
	Terms []Term
	Const Element
}

// Const builds a linear combination holding only a constant; no variable is
// referenced, so no witness allocation is implied.
func Const(v Element) LinearCombination {
	return LinearCombination{Const: v}
}

// FromVar builds a linear combination that is exactly one variable with
// coefficient one.
func FromVar(v int) LinearCombination {
	return LinearCombination{Terms: []Term{{Coeff: One(), Var: v}}}
}

// ScaledVar builds coeff * var.
func ScaledVar(coeff Element, v int) LinearCombination {
	return LinearCombination{Terms: []Term{{Coeff: coeff, Var: v}}}
}

// Add returns a new linear combination representing lc + other. Terms are
// concatenated rather than merged by variable; merging is a compaction
// concern the constraint system may apply at enforcement time, not an
// obligation of the algebra itself.
func (lc LinearCombination) Add(other LinearCombination) LinearCombination {
	out := LinearCombination{
		Terms: make([]Term, 0, len(lc.Terms)+len(other.Terms)),
		Const: Add(lc.Const, other.Const),
	}
	out.Terms = append(out.Terms, lc.Terms...)
	out.Terms = append(out.Terms, other.Terms...)
	return out
}

// Sub returns lc - other.
func (lc LinearCombination) Sub(other LinearCombination) LinearCombination {
	return lc.Add(other.Scale(Neg(One())))
}

// Scale returns by * lc.
func (lc LinearCombination) Scale(by Element) LinearCombination {
	out := LinearCombination{
		Terms: make([]Term, len(lc.Terms)),
		Const: Mul(lc.Const, by),
	}
	for i, t := range lc.Terms {
		out.Terms[i] = Term{Coeff: Mul(t.Coeff, by), Var: t.Var}
	}
	return out
}

// AddConst returns lc + v.
func (lc LinearCombination) AddConst(v Element) LinearCombination {
	return LinearCombination{Terms: lc.Terms, Const: Add(lc.Const, v)}
}

// IsConstant reports whether lc carries no variable terms at all.
func (lc LinearCombination) IsConstant() bool {
	return len(lc.Terms) == 0
}
