package scalar

import (
	"fmt"
	"strings"
)

// R1C is one rank-1 constraint A*B=C over linear combinations (spec.md §3).
type R1C struct {
	A, B, C LinearCombination
	Label   string
}

// System is the growing constraint system for a single run: the witness
// vector, the public-input subset of it, the namespace label recorded per
// allocation (diagnostics only — spec.md §4.1), and the ordered constraint
// list. Constraints, allocations, and witness entries are append-only for
// the lifetime of a run (spec.md §3, "Lifecycles").
//
// A System is owned by exactly one run; spec.md §5 forbids sharing one
// across concurrent runs.
type System struct {
	values      []Element
	public      []bool
	labels      []string
	constraints []R1C
	publicVals  []Element
}

// NewSystem returns an empty constraint system with no allocations.
func NewSystem() *System {
	return &System{}
}

// Root returns the top-level namespace handle over this system.
func (s *System) Root() *Namespace {
	return &Namespace{sys: s, path: ""}
}

// NumVariables returns the number of allocated variables (public + private).
func (s *System) NumVariables() int {
	return len(s.values)
}

// ValueOf returns the witness value currently assigned to variable v.
func (s *System) ValueOf(v int) Element {
	return s.values[v]
}

// Constraints returns the full, insertion-ordered constraint list.
func (s *System) Constraints() []R1C {
	return s.constraints
}

// PublicInputs returns the public-input vector in allocation order.
func (s *System) PublicInputs() []Element {
	return s.publicVals
}

// Witness returns the full witness assignment, indexed by variable.
func (s *System) Witness() []Element {
	return s.values
}

// Eval resolves a linear combination against the current witness.
func (s *System) Eval(lc LinearCombination) Element {
	out := lc.Const
	for _, t := range lc.Terms {
		out = Add(out, Mul(t.Coeff, s.values[t.Var]))
	}
	return out
}

// Namespace is a borrowable handle onto a System that records a dotted
// diagnostic path (spec.md §4.1, §4.6, §9 "Namespaces"). It carries no
// state of its own beyond the path string and a pointer to the shared
// System; it is never used for anything but error messages and constraint
// labels, matching the spec's requirement that namespaces never affect
// constraint semantics.
type Namespace struct {
	sys  *System
	path string
}

// Namespace returns a child handle whose path is this one's with label
// appended. It never mutates the parent.
func (n *Namespace) Namespace(label string) *Namespace {
	return &Namespace{sys: n.sys, path: join(n.path, label)}
}

func join(path, label string) string {
	if path == "" {
		return label
	}
	return path + "." + label
}

// Path returns the dotted diagnostic path of this namespace.
func (n *Namespace) Path() string {
	return n.path
}

// System returns the underlying constraint system.
func (n *Namespace) System() *System {
	return n.sys
}

// Allocate appends a new private witness variable with the given concrete
// value, tagged with this namespace's path for diagnostics, and returns
// its index.
func (n *Namespace) Allocate(value Element) int {
	n.sys.values = append(n.sys.values, value)
	n.sys.public = append(n.sys.public, false)
	n.sys.labels = append(n.sys.labels, n.path)
	return len(n.sys.values) - 1
}

// AllocateInput is identical to Allocate but additionally marks the
// variable public and appends it to the public-input vector, per spec.md
// §4.1.
func (n *Namespace) AllocateInput(value Element) int {
	v := n.Allocate(value)
	n.sys.public[v] = true
	n.sys.publicVals = append(n.sys.publicVals, value)
	return v
}

// Enforce records A*B=C in insertion order under label (qualified by this
// namespace's path). The evaluation-consistency check below is not part of
// the constraint system itself — it is a defensive internal assertion that
// a gadget computed its witness correctly; a mismatch here indicates a bug
// in gadget code, not a user-facing VM error; the VM wraps it with
// diag.Wrap as a ConstraintBackendError so callers still see a typed,
// located failure instead of a silently-wrong proof.
func (n *Namespace) Enforce(a, b, c LinearCombination, label string) error {
	lhs := Mul(n.sys.Eval(a), n.sys.Eval(b))
	rhs := n.sys.Eval(c)
	if !Equal(lhs, rhs) {
		return fmt.Errorf("constraint %s does not hold: %s * %s != %s",
			join(n.path, label), n.sys.Eval(a).String(), n.sys.Eval(b).String(), rhs.String())
	}
	n.sys.constraints = append(n.sys.constraints, R1C{A: a, B: b, C: c, Label: join(n.path, label)})
	return nil
}

// String renders a constraint in a form useful for test failure diffs.
func (c R1C) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] (%d terms)*(%d terms)=(%d terms)", c.Label, len(c.A.Terms), len(c.B.Terms), len(c.C.Terms))
	return sb.String()
}
