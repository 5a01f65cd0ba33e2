package efsm

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/flowmine/eventlog"
	"github.com/katalvlaran/flowmine/guard"
	"github.com/katalvlaran/flowmine/merge"
	"github.com/katalvlaran/flowmine/pta"
	"github.com/katalvlaran/flowmine/value"
)

func stateName(id int) string { return fmt.Sprintf("q%d", id) }

// Assemble builds a Model from a merged prefix tree, per spec.md §4.F:
// groups merged PTA edges by (source-state, label, target-state) —
// already unique per (source-state, label), since a PTA node has at
// most one child per label — pools each group's positive examples
// (that node's edge samples under the label) against its negative
// examples (the same node's edge samples under every other label),
// synthesizes a guard, and derives a copy-through update for every
// attribute that actually appears in the positive samples.
//
// Grounded on the original's efsm_learner.py::learn_efsm_from_pta.
func Assemble(tree *pta.Tree, sm *merge.StateMap, domains map[string]*eventlog.AttributeDomain, maxConjuncts int, validator guard.Validator) (*Model, error) {
	sm.Compress()

	stateSet := map[string]struct{}{}
	var states []string
	var transitions []Transition

	addState := func(name string) {
		if _, ok := stateSet[name]; !ok {
			stateSet[name] = struct{}{}
			states = append(states, name)
		}
	}

	for id := 0; id < tree.NodeCount(); id++ {
		if sm.Find(id) != id {
			continue // merged away; its data was folded into its representative
		}
		node, err := tree.Node(id)
		if err != nil {
			return nil, err
		}
		src := stateName(id)
		addState(src)

		labels := sortedLabels(node.Children)
		for _, label := range labels {
			child := node.Children[label]
			tgt := stateName(sm.Find(child))
			addState(tgt)

			pos := toExamples(node.EdgeSamples[label])
			var neg []guard.Example
			for _, other := range labels {
				if other == label {
					continue
				}
				neg = append(neg, toExamples(node.EdgeSamples[other])...)
			}

			g := guard.Synthesize(pos, neg, domains, maxConjuncts, validator)
			transitions = append(transitions, Transition{
				Source: src,
				Label:  label,
				Guard:  g,
				Update: deriveUpdate(pos),
				Target: tgt,
			})
		}
	}

	initial := stateName(sm.Find(tree.Root()))
	return New(states, initial, collectVariables(domains), transitions)
}

func sortedLabels(children map[string]int) []string {
	out := make([]string, 0, len(children))
	for l := range children {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

func toExamples(samples []map[string]value.Value) []guard.Example {
	out := make([]guard.Example, len(samples))
	for i, s := range samples {
		out[i] = guard.Example(s)
	}
	return out
}

// deriveUpdate builds a copy-through assignment for every attribute
// that appears, non-missing, anywhere in pos — spec.md §4.F's
// `update.assignments[attr] = "attr.<attr>"` rule.
func deriveUpdate(pos []guard.Example) Update {
	assignments := map[string]Assignment{}
	for _, e := range pos {
		for attr, v := range e {
			if v.IsMissing() {
				continue
			}
			if _, ok := assignments[attr]; ok {
				continue
			}
			assignments[attr] = Assignment{CopyAttr: attr}
		}
	}
	return Update{Assignments: assignments}
}

// collectVariables declares one Variable per attribute domain; every
// eventlog.Dtype (int, float, cat, string) is a legal declared
// variable type, per spec.md §4.F.
func collectVariables(domains map[string]*eventlog.AttributeDomain) map[string]Variable {
	vars := make(map[string]Variable, len(domains))
	for name, d := range domains {
		vars[name] = Variable{Name: name, Dtype: d.Dtype}
	}
	return vars
}

// ExternalPlaceSet is the collaborator contract for bootstrapping an
// EFSM directly from an externally discovered Petri net's places,
// per spec.md §6's --bootstrap-inductive-miner flag and §4.F's
// restored learn_efsm_from_petri_net path. No inductive-miner
// implementation is in scope — it is the external collaborator named
// in spec.md §1 — this only consumes its output shape.
type ExternalPlaceSet struct {
	Places      []string
	Transitions []ExternalTransition
	Initial     string
}

// ExternalTransition is one (source place, activity label, target
// place) triple as discovered by the external miner.
type ExternalTransition struct {
	Source string
	Label  string
	Target string
}

// AssembleFromPlaces builds a Model directly from places, bypassing
// PTA construction and merging entirely. Every guard is trivial, per
// spec.md §4.F's bootstrap note ("guards all true").
func AssembleFromPlaces(places ExternalPlaceSet, domains map[string]*eventlog.AttributeDomain) (*Model, error) {
	transitions := make([]Transition, 0, len(places.Transitions))
	for _, t := range places.Transitions {
		transitions = append(transitions, Transition{
			Source: t.Source,
			Label:  t.Label,
			Guard:  GuardTrue{},
			Update: Update{Assignments: map[string]Assignment{}},
			Target: t.Target,
		})
	}
	return New(places.Places, places.Initial, collectVariables(domains), transitions)
}
