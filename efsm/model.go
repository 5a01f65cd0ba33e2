// Package efsm assembles and operates on the Extended Finite State
// Machine of spec component F: states, guarded/updating transitions,
// and the declared data variables they read and write.
//
// Grounded on the original's models/efsm.py for field shapes and
// EFSM.simulate_trace semantics. The guard language is owned by
// package guard and reused here verbatim (Guard = guard.Guard) rather
// than duplicated, since guard is the package that builds and
// validates it; Update, by contrast, is genuinely efsm's own — a
// restricted safe-arithmetic AST replacing the original's unrestricted
// Python eval(), per spec.md §9's safety note.
//
// Model is named (not "EFSM") to avoid colliding with the package
// name, the way the teacher names its aggregate type Graph inside
// package core rather than core.Core.
package efsm

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/flowmine/eventlog"
	"github.com/katalvlaran/flowmine/guard"
)

// Guard and its constructors are re-exported from package guard: the
// predicate language is defined once, in the package that synthesises
// and validates it.
type (
	Guard     = guard.Guard
	GuardTrue = guard.GuardTrue
	Atom      = guard.Atom
	And       = guard.And
	Or        = guard.Or
	CompareOp = guard.CompareOp
)

const (
	LE = guard.LE
	GE = guard.GE
	EQ = guard.EQ
)

var (
	// ErrInconsistentEFSM marks a transition referencing a state
	// outside the model's declared state set, or an initial state not
	// in the state set — spec.md §7's InconsistentEFSM, fatal on
	// construction.
	ErrInconsistentEFSM = errors.New("efsm: inconsistent EFSM")

	// ErrNoSuchState is returned by state-scoped lookups given an
	// undeclared state.
	ErrNoSuchState = errors.New("efsm: no such state")
)

// Variable declares one data variable the EFSM's guards and updates
// may reference, carried through from an eventlog.AttributeDomain.
type Variable struct {
	Name  string
	Dtype eventlog.Dtype
}

// Transition is one guarded, updating edge of the state machine.
type Transition struct {
	Source string
	Label  string
	Guard  Guard
	Update Update
	Target string
}

// Model is the EFSM itself: a state set, an initial state, declared
// variables, and an ordered transition list. Transition data lives
// only in the Transitions slice — Simulate needs the original spec's
// exact "first transition in list order" firing rule, so there is no
// benefit to also shadowing it in a separate adjacency structure;
// Reachable (the one place the topology alone, not firing order,
// matters) builds its own scratch adjacency map on the fly.
type Model struct {
	States      []string
	Initial     string
	Variables   map[string]Variable
	Transitions []Transition
}

// New builds a Model from its parts, validating the invariants
// spec.md §7 requires at construction: the initial state must be
// declared, and every transition's source and target must be declared.
func New(states []string, initial string, variables map[string]Variable, transitions []Transition) (*Model, error) {
	stateSet := make(map[string]struct{}, len(states))
	for _, s := range states {
		stateSet[s] = struct{}{}
	}
	if _, ok := stateSet[initial]; !ok {
		return nil, fmt.Errorf("%w: initial state %q not declared", ErrInconsistentEFSM, initial)
	}
	for _, tr := range transitions {
		if _, ok := stateSet[tr.Source]; !ok {
			return nil, fmt.Errorf("%w: transition source %q not declared", ErrInconsistentEFSM, tr.Source)
		}
		if _, ok := stateSet[tr.Target]; !ok {
			return nil, fmt.Errorf("%w: transition target %q not declared", ErrInconsistentEFSM, tr.Target)
		}
	}

	return &Model{
		States:      states,
		Initial:     initial,
		Variables:   variables,
		Transitions: transitions,
	}, nil
}

// Reachable lists every state reachable from the initial state,
// including the initial state itself, via a breadth-first walk of the
// transitions' source->target edges. A learned model with states
// absent from this set — merged in but never connected to the rest of
// the machine — is a sign of a pathological or under-populated log.
func (m *Model) Reachable() ([]string, error) {
	if _, err := m.stateIndex(m.Initial); err != nil {
		return nil, fmt.Errorf("efsm: reachability from %q: %w", m.Initial, err)
	}

	adj := make(map[string][]string, len(m.States))
	for _, tr := range m.Transitions {
		adj[tr.Source] = append(adj[tr.Source], tr.Target)
	}

	visited := map[string]bool{m.Initial: true}
	order := []string{m.Initial}
	queue := []string{m.Initial}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if visited[next] {
				continue
			}
			visited[next] = true
			order = append(order, next)
			queue = append(queue, next)
		}
	}
	return order, nil
}

func (m *Model) stateIndex(state string) (int, error) {
	for i, s := range m.States {
		if s == state {
			return i, nil
		}
	}
	return 0, ErrNoSuchState
}

// TransitionsFrom returns, in declaration order, every transition
// whose Source is state and whose Label equals label.
func (m *Model) TransitionsFrom(state, label string) []Transition {
	var out []Transition
	for _, tr := range m.Transitions {
		if tr.Source == state && tr.Label == label {
			out = append(out, tr)
		}
	}
	return out
}
