package guard

import "github.com/katalvlaran/flowmine/value"

// Example is one observed attribute dictionary, positive or negative,
// used to validate a candidate guard.
type Example map[string]value.Value

// Validator decides whether a candidate Guard separates a set of
// positive examples (must all satisfy it) from a set of negative
// examples (must all fail it). The shipped DirectValidator evaluates
// by direct substitution; the interface exists so an SMT-backed
// validator could be substituted without touching Synthesize's search
// loop, per spec.md §9.
type Validator interface {
	Validate(g Guard, pos, neg []Example) bool
}

// DirectValidator validates a guard by evaluating it against every
// example via Guard.Evaluate. A candidate is valid iff every positive
// example evaluates to true and every negative example evaluates to
// false; any evaluation error (an unbound or mistyped variable)
// invalidates the candidate outright, mirroring how the original
// treats a solver timeout — the candidate is rejected and synthesis
// proceeds to the next one.
type DirectValidator struct{}

// Validate implements Validator.
func (DirectValidator) Validate(g Guard, pos, neg []Example) bool {
	for _, e := range pos {
		ok, err := g.Evaluate(map[string]value.Value(e))
		if err != nil || !ok {
			return false
		}
	}
	for _, e := range neg {
		ok, err := g.Evaluate(map[string]value.Value(e))
		if err != nil || ok {
			return false
		}
	}
	return true
}
