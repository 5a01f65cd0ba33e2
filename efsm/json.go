package efsm

import (
	"encoding/json"
	"fmt"

	"github.com/katalvlaran/flowmine/eventlog"
	"github.com/katalvlaran/flowmine/value"
)

// jsonModel mirrors spec.md §6's EFSM JSON shape exactly:
//
//	{states, initial, variables: {name: {name, dtype}},
//	 transitions: [{source, label, guard: {serialized}, update:
//	 {assignments: {var: expr}}, target}]}
type jsonModel struct {
	States      []string               `json:"states"`
	Initial     string                 `json:"initial"`
	Variables   map[string]jsonVar     `json:"variables"`
	Transitions []jsonTransition       `json:"transitions"`
}

type jsonVar struct {
	Name  string `json:"name"`
	Dtype string `json:"dtype"`
}

type jsonTransition struct {
	Source string         `json:"source"`
	Label  string         `json:"label"`
	Guard  jsonGuard      `json:"guard"`
	Update jsonUpdate     `json:"update"`
	Target string         `json:"target"`
}

type jsonGuard struct {
	Serialized *string `json:"serialized"`
}

type jsonUpdate struct {
	Assignments map[string]string `json:"assignments"`
}

// MarshalJSON implements the exact shape of spec.md §6's EFSM JSON.
func (m *Model) MarshalJSON() ([]byte, error) {
	jm := jsonModel{
		States:  m.States,
		Initial: m.Initial,
	}
	jm.Variables = make(map[string]jsonVar, len(m.Variables))
	for name, v := range m.Variables {
		jm.Variables[name] = jsonVar{Name: v.Name, Dtype: v.Dtype.String()}
	}
	for _, tr := range m.Transitions {
		s := tr.Guard.Serialize()
		jm.Transitions = append(jm.Transitions, jsonTransition{
			Source: tr.Source,
			Label:  tr.Label,
			Guard:  jsonGuard{Serialized: &s},
			Update: jsonUpdate{Assignments: tr.Update.Serialize()},
			Target: tr.Target,
		})
	}
	return json.Marshal(jm)
}

// UnmarshalJSON rebuilds a Model from the EFSM JSON shape. "true" or a
// null serialized guard both denote the trivial guard, per spec.md
// §6. This implementation round-trips GuardTrue exactly; a serialized
// Atom/And guard produced by this package round-trips through
// ParseGuard, since MarshalJSON/UnmarshalJSON together must satisfy
// invariant 4 of spec.md §8 for every Guard this package can produce.
func (m *Model) UnmarshalJSON(data []byte) error {
	var jm jsonModel
	if err := json.Unmarshal(data, &jm); err != nil {
		return err
	}

	variables := make(map[string]Variable, len(jm.Variables))
	for name, jv := range jm.Variables {
		variables[name] = Variable{Name: jv.Name, Dtype: parseDtype(jv.Dtype)}
	}

	transitions := make([]Transition, 0, len(jm.Transitions))
	for _, jt := range jm.Transitions {
		g, err := parseGuardTyped(jt.Guard.Serialized, variables)
		if err != nil {
			return err
		}
		transitions = append(transitions, Transition{
			Source: jt.Source,
			Label:  jt.Label,
			Guard:  g,
			Update: parseUpdate(jt.Update.Assignments),
			Target: jt.Target,
		})
	}

	built, err := New(jm.States, jm.Initial, variables, transitions)
	if err != nil {
		return err
	}
	*m = *built
	return nil
}

func parseDtype(s string) eventlog.Dtype {
	switch s {
	case "int":
		return eventlog.DtypeInt
	case "float":
		return eventlog.DtypeFloat
	case "cat":
		return eventlog.DtypeCat
	default:
		return eventlog.DtypeString
	}
}

// ParseGuard parses a guard's canonical Serialize() form back into a
// Guard, treating every literal as numeric-or-string by syntax alone.
// Prefer parseGuardTyped when the transition's variable declarations
// are available, since a categorical literal that happens to look
// numeric (e.g. a category named "123") would otherwise mis-parse.
func ParseGuard(serialized *string) (Guard, error) {
	return parseGuardTyped(serialized, nil)
}

func parseGuardTyped(serialized *string, variables map[string]Variable) (Guard, error) {
	if serialized == nil || *serialized == "" || *serialized == "true" {
		return GuardTrue{}, nil
	}
	atoms, err := parseAtoms(*serialized, variables)
	if err != nil {
		return nil, err
	}
	if len(atoms) == 1 {
		return atoms[0], nil
	}
	return And{Atoms: atoms}, nil
}

func parseAtoms(s string, variables map[string]Variable) ([]Atom, error) {
	parts := splitAnd(s)
	atoms := make([]Atom, 0, len(parts))
	for _, p := range parts {
		a, err := parseAtom(p, variables)
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, a)
	}
	return atoms, nil
}

func splitAnd(s string) []string {
	const sep = " and "
	var out []string
	for {
		idx := indexOf(s, sep)
		if idx < 0 {
			out = append(out, s)
			return out
		}
		out = append(out, s[:idx])
		s = s[idx+len(sep):]
	}
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func parseAtom(s string, variables map[string]Variable) (Atom, error) {
	for _, candidate := range []struct {
		sep string
		op  CompareOp
	}{
		{" <= ", LE},
		{" >= ", GE},
		{" = ", EQ},
	} {
		idx := indexOf(s, candidate.sep)
		if idx < 0 {
			continue
		}
		name := s[:idx]
		lit := s[idx+len(candidate.sep):]
		return Atom{Var: name, Op: candidate.op, Lit: parseLiteralFor(name, lit, variables)}, nil
	}
	return Atom{}, fmt.Errorf("%w: malformed atom %q", ErrInconsistentEFSM, s)
}

// parseLiteralFor recovers a value.Value from an atom's textual
// literal, consulting the variable's declared dtype when available so
// a categorical value that happens to look numeric (e.g. "123") still
// round-trips as a string rather than a number.
func parseLiteralFor(varName, lit string, variables map[string]Variable) value.Value {
	if variables != nil {
		if v, ok := variables[varName]; ok {
			switch v.Dtype {
			case eventlog.DtypeCat, eventlog.DtypeString:
				return value.Str(lit)
			}
		}
	}
	var f float64
	if n, err := fmt.Sscanf(lit, "%g", &f); err == nil && n == 1 {
		return value.Real(f)
	}
	return value.Str(lit)
}

func parseUpdate(assignments map[string]string) Update {
	out := Update{Assignments: make(map[string]Assignment, len(assignments))}
	for name, expr := range assignments {
		out.Assignments[name] = parseAssignment(expr)
	}
	return out
}

// parseAssignment recovers an Assignment from its Serialize() form:
// "attr.X" for CopyAttr, or "left op right" for BinOp.
func parseAssignment(expr string) Assignment {
	const attrPrefix = "attr."
	if len(expr) > len(attrPrefix) && expr[:len(attrPrefix)] == attrPrefix && !containsArith(expr) {
		return Assignment{CopyAttr: expr[len(attrPrefix):]}
	}
	for _, candidate := range []struct {
		sep string
		op  ArithOp
	}{
		{" + ", Add},
		{" - ", Sub},
		{" * ", Mul},
	} {
		idx := indexOf(expr, candidate.sep)
		if idx < 0 {
			continue
		}
		left := parseOperand(expr[:idx])
		right := parseOperand(expr[idx+len(candidate.sep):])
		return Assignment{Left: left, Right: right, Op: candidate.op}
	}
	// Fallback: treat the whole expression as a CopyAttr target.
	return Assignment{CopyAttr: expr}
}

func containsArith(s string) bool {
	for _, sep := range []string{" + ", " - ", " * "} {
		if indexOf(s, sep) >= 0 {
			return true
		}
	}
	return false
}

// ParseAssignment recovers an Assignment from its Serialize() form —
// exported so callers outside this package (dpn's PNML round-trip)
// can parse the "var=expr" text form it emits per variable without
// duplicating this parser.
func ParseAssignment(expr string) Assignment {
	return parseAssignment(expr)
}

func parseOperand(s string) Operand {
	const attrPrefix = "attr."
	if len(s) > len(attrPrefix) && s[:len(attrPrefix)] == attrPrefix {
		return Operand{IsAttr: true, AttrName: s[len(attrPrefix):]}
	}
	return Operand{Literal: parseLiteral(s)}
}
