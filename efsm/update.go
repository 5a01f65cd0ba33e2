package efsm

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/flowmine/value"
)

// ErrUpdateEval marks the UpdateEvalError case of spec.md §7: an
// update expression failed at evaluation time. Recovered locally —
// the affected variable is left unchanged, other assignments in the
// same Update still apply.
var ErrUpdateEval = errors.New("efsm: update evaluation error")

// ArithOp is the arithmetic operator of a BinOp operand.
type ArithOp int

const (
	// Add is "+".
	Add ArithOp = iota
	// Sub is "-".
	Sub
	// Mul is "*".
	Mul
)

// Operand is one side of a BinOp: either a literal value, or a
// reference to an incoming event attribute.
type Operand struct {
	// IsAttr selects whether this operand reads from the event's
	// attribute dictionary (true, using AttrName) or is a fixed
	// Literal (false).
	IsAttr   bool
	AttrName string
	Literal  value.Value
}

func (o Operand) resolve(attrs map[string]value.Value) (value.Value, error) {
	if !o.IsAttr {
		return o.Literal, nil
	}
	v, ok := attrs[o.AttrName]
	if !ok || v.IsMissing() {
		return value.Value{}, fmt.Errorf("%w: attribute %q not present", ErrUpdateEval, o.AttrName)
	}
	return v, nil
}

// Assignment is one variable assignment within an Update: either a
// direct copy of an incoming attribute (CopyAttr, the original's
// "attr.X" shorthand) or a restricted binary arithmetic expression
// over two Operands (BinOp) — the safe replacement for the original's
// unrestricted eval(), per spec.md §9.
type Assignment struct {
	CopyAttr string // non-empty selects CopyAttr form

	// BinOp form, used when CopyAttr == "".
	Left  Operand
	Right Operand
	Op    ArithOp
}

func (a Assignment) isCopy() bool { return a.CopyAttr != "" }

func (a Assignment) evaluate(attrs map[string]value.Value) (value.Value, error) {
	if a.isCopy() {
		v, ok := attrs[a.CopyAttr]
		if !ok || v.IsMissing() {
			return value.Value{}, fmt.Errorf("%w: attribute %q not present", ErrUpdateEval, a.CopyAttr)
		}
		return v, nil
	}

	lv, err := a.Left.resolve(attrs)
	if err != nil {
		return value.Value{}, err
	}
	rv, err := a.Right.resolve(attrs)
	if err != nil {
		return value.Value{}, err
	}
	lf, ok1 := lv.AsFloat64()
	rf, ok2 := rv.AsFloat64()
	if !ok1 || !ok2 {
		return value.Value{}, fmt.Errorf("%w: non-numeric operand", ErrUpdateEval)
	}
	switch a.Op {
	case Add:
		return value.Real(lf + rf), nil
	case Sub:
		return value.Real(lf - rf), nil
	case Mul:
		return value.Real(lf * rf), nil
	default:
		return value.Value{}, fmt.Errorf("%w: unknown operator", ErrUpdateEval)
	}
}

// Update is a set of named variable assignments, applied one by one:
// a failing assignment leaves its variable unchanged in varState but
// does not block the others, which are still written, per
// spec.md §7's UpdateEvalError recovery policy.
type Update struct {
	Assignments map[string]Assignment
}

// Apply evaluates every assignment against attrs and writes successful
// results into varState, mutating it in place.
func (u Update) Apply(varState map[string]value.Value, attrs map[string]value.Value) {
	for name, a := range u.Assignments {
		v, err := a.evaluate(attrs)
		if err != nil {
			continue
		}
		varState[name] = v
	}
}

// Serialize renders the update's assignments as
// {var: "attr.X"} for CopyAttr, or {var: "left op right"} for BinOp —
// the canonical textual form spec.md §6's EFSM JSON expects per
// variable.
func (u Update) Serialize() map[string]string {
	out := make(map[string]string, len(u.Assignments))
	for name, a := range u.Assignments {
		if a.isCopy() {
			out[name] = "attr." + a.CopyAttr
			continue
		}
		out[name] = fmt.Sprintf("%s %s %s", operandString(a.Left), arithOpString(a.Op), operandString(a.Right))
	}
	return out
}

func operandString(o Operand) string {
	if o.IsAttr {
		return "attr." + o.AttrName
	}
	return o.Literal.AsString()
}

func arithOpString(op ArithOp) string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	default:
		return "?"
	}
}

// parseLiteral recovers a value.Value from a bare (non attr.-prefixed)
// operand token by syntax alone — used when no variable-dtype context
// is available to disambiguate, mirroring ParseGuard's untyped path.
func parseLiteral(s string) value.Value {
	var f float64
	if n, err := fmt.Sscanf(s, "%g", &f); err == nil && n == 1 {
		return value.Real(f)
	}
	return value.Str(s)
}

// WriteVars returns the sorted set of EFSM variable names this update
// assigns to — spec.md §4.G's write_vars, used by dpn to derive a
// transition's Petri-net write set.
func (u Update) WriteVars() []string {
	out := make([]string, 0, len(u.Assignments))
	for name := range u.Assignments {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ReadVars returns the sorted, deduplicated set of event-attribute
// identifiers this update reads from: a CopyAttr's own source
// attribute, or a BinOp operand's AttrName when IsAttr is true —
// spec.md §4.G's read_vars contribution from the update side (the
// guard side is guard.Identifiers).
func (u Update) ReadVars() []string {
	set := map[string]struct{}{}
	for _, a := range u.Assignments {
		if a.isCopy() {
			set[a.CopyAttr] = struct{}{}
			continue
		}
		if a.Left.IsAttr {
			set[a.Left.AttrName] = struct{}{}
		}
		if a.Right.IsAttr {
			set[a.Right.AttrName] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
