// Package guard synthesizes the boolean predicates attached to EFSM
// transitions (spec component E): given positive and negative
// attribute-dictionary examples for a transition, search a bounded
// space of atomic predicates and their short conjunctions for one that
// separates the two example sets.
//
// Grounded on the original's guard_inference.py
// (generate_atomic_predicates, synthesize_guard_z3, validate_guard).
// Per spec.md §9, the SMT validator the original used is abstracted
// behind a Validator interface; the shipped DirectValidator evaluates
// candidates by direct substitution, since no SMT/SAT binding exists
// anywhere in the example corpus (see DESIGN.md).
//
// The Guard AST type defined here is reused, unmodified, as the guard
// representation efsm.Transition carries — efsm type-aliases it
// (efsm.Guard = guard.Guard) rather than duplicating it, since guard
// is the package that actually builds and validates guards.
package guard

import (
	"fmt"

	"github.com/katalvlaran/flowmine/value"
)

// CompareOp is the comparison operator of an atomic predicate.
type CompareOp int

const (
	// LE is "<=".
	LE CompareOp = iota
	// GE is ">=".
	GE
	// EQ is "=".
	EQ
)

// String renders the operator's textual form, used by Serialize.
func (op CompareOp) String() string {
	switch op {
	case LE:
		return "<="
	case GE:
		return ">="
	case EQ:
		return "="
	default:
		return "?"
	}
}

// Guard is the guard AST: a trivial truth value, a single atomic
// predicate, a conjunction of atoms, or a disjunction of guards (Or,
// built only by dpn's compact projection). There is no negation, and
// the synthesiser only ever builds conjunctive windows of atomic
// predicates (spec.md §4.E).
type Guard interface {
	// Evaluate substitutes vars into the guard and reports whether it
	// holds. An error means a variable referenced by the guard was
	// missing from vars or held a value of an incompatible kind — the
	// GuardEvalError case of spec.md §7.
	Evaluate(vars map[string]value.Value) (bool, error)

	// Serialize renders the guard's canonical textual form — "true"
	// for GuardTrue, "var <op> lit" for an Atom, "a1 and a2 and ..."
	// for And, "(g1) Or (g2) ..." for Or. efsm.ParseGuard reads back
	// the first three forms; it does not parse the Or form.
	Serialize() string

	isGuard()
}

// GuardTrue is the trivial guard that always holds.
type GuardTrue struct{}

func (GuardTrue) isGuard() {}

// Evaluate always succeeds and returns true.
func (GuardTrue) Evaluate(map[string]value.Value) (bool, error) { return true, nil }

// Serialize renders the canonical "true" literal.
func (GuardTrue) Serialize() string { return "true" }

// Atom is a single comparison of a named variable against a literal.
type Atom struct {
	Var string
	Op  CompareOp
	Lit value.Value
}

func (Atom) isGuard() {}

// Serialize renders "var <op> lit".
func (a Atom) Serialize() string {
	return fmt.Sprintf("%s %s %s", a.Var, a.Op, a.Lit.AsString())
}

// Evaluate substitutes vars[a.Var] into the comparison.
func (a Atom) Evaluate(vars map[string]value.Value) (bool, error) {
	v, ok := vars[a.Var]
	if !ok || v.IsMissing() {
		return false, fmt.Errorf("%w: %s not bound", ErrGuardEval, a.Var)
	}
	switch a.Op {
	case EQ:
		return v.Equal(a.Lit), nil
	case LE, GE:
		vf, ok1 := v.AsFloat64()
		lf, ok2 := a.Lit.AsFloat64()
		if !ok1 || !ok2 {
			return false, fmt.Errorf("%w: %s is not numeric", ErrGuardEval, a.Var)
		}
		if a.Op == LE {
			return vf <= lf, nil
		}
		return vf >= lf, nil
	default:
		return false, fmt.Errorf("%w: unknown operator", ErrGuardEval)
	}
}

// Or is a disjunction of guards. The synthesiser (4.E) never produces
// one — it only ever searches conjunctive windows — but dpn's compact
// projection (spec.md §4.G's "alternative compact projection") merges
// same-label transitions' guards by disjunction, mirroring the
// original's " Or ".join(guard_strings) construction in
// map/efsm_to_dpn.py, so Or lives here rather than being duplicated
// per caller.
type Or struct {
	Guards []Guard
}

func (Or) isGuard() {}

// Serialize renders "(g1) Or (g2) Or ...", matching the original's
// merged_guard_str format exactly.
func (g Or) Serialize() string {
	s := ""
	for i, sub := range g.Guards {
		if i > 0 {
			s += " Or "
		}
		s += "(" + sub.Serialize() + ")"
	}
	return s
}

// Evaluate holds iff any disjunct holds. An erroring disjunct is
// skipped in favor of a later disjunct that holds; if every disjunct
// either fails to hold or errors, the first encountered error (if any)
// is returned so the caller can classify the firing as undefined
// rather than silently false.
func (g Or) Evaluate(vars map[string]value.Value) (bool, error) {
	var firstErr error
	for _, sub := range g.Guards {
		ok, err := sub.Evaluate(vars)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if ok {
			return true, nil
		}
	}
	return false, firstErr
}

// And is a conjunction of atoms — the only composite the synthesiser
// ever produces.
type And struct {
	Atoms []Atom
}

func (And) isGuard() {}

// Serialize joins each atom's serialization with " and ".
func (g And) Serialize() string {
	s := ""
	for i, a := range g.Atoms {
		if i > 0 {
			s += " and "
		}
		s += a.Serialize()
	}
	return s
}

// Evaluate holds iff every atom holds; it short-circuits on the first
// atom that is false, but propagates an evaluation error immediately
// (an indeterminate atom makes the whole conjunction indeterminate).
func (g And) Evaluate(vars map[string]value.Value) (bool, error) {
	for _, a := range g.Atoms {
		ok, err := a.Evaluate(vars)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
