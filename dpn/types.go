// Package dpn implements the Data-aware Petri Net: the projection
// target of an EFSM (spec component G), with PNML/JSON export and a
// Petri-net incidence matrix view.
//
// Grounded on the original's models/dpn.py and map/efsm_to_dpn.py.
package dpn

import (
	"errors"
	"sort"

	"github.com/katalvlaran/flowmine/efsm"
)

// ErrUnknownPlace/ErrUnknownTransition mark lookups against vertices
// that were never added to the net.
var (
	ErrUnknownPlace      = errors.New("dpn: unknown place")
	ErrUnknownTransition = errors.New("dpn: unknown transition")
)

// TransitionData is the data annotation carried by a Petri-net
// transition, mirroring the original's DPNTransition: a guard, an
// update, and their derived read/write variable sets (spec.md §4.G).
type TransitionData struct {
	Label  string
	Guard  efsm.Guard
	Update efsm.Update
	Read   []string
	Write  []string
}

// Arc is one directed place<->transition arc.
type Arc struct {
	Source string
	Target string
}

// Net is a Data-aware Petri Net: a bipartite graph of places and
// transitions. Per spec.md §9's "arena of nodes + integer indices over
// a graph of pointers" recommendation, the bipartition is held
// directly — a place set, a transition map, and a flat arc list — with
// each transition's incident places pre-indexed on insertion, rather
// than wrapping a general-purpose vertex/edge graph a bipartite net
// never needs the full generality of (no weights, no vertex locking,
// no mixed-direction edges).
type Net struct {
	Name        string
	Description string
	Variables   map[string]efsm.Variable
	Initial     map[string]int64 // place name -> initial token count

	places      map[string]struct{}
	transitions map[string]*TransitionData
	arcs        []Arc
	inputs      map[string][]string // transition -> places with an arc into it
	outputs     map[string][]string // transition -> places with an arc out of it
}

func newNet(name string, variables map[string]efsm.Variable) *Net {
	return &Net{
		Name:        name,
		Variables:   variables,
		Initial:     map[string]int64{},
		places:      map[string]struct{}{},
		transitions: map[string]*TransitionData{},
		inputs:      map[string][]string{},
		outputs:     map[string][]string{},
	}
}

// addPlace registers a place. Idempotent: re-adding an existing place
// is a no-op, the way project.go shares one place across several
// transitions' source/target without tracking first-use itself.
func (n *Net) addPlace(name string) error {
	n.places[name] = struct{}{}
	return nil
}

func (n *Net) addTransition(name string, data *TransitionData) error {
	n.transitions[name] = data
	return nil
}

// addArc records a directed arc and, since every arc in a well-formed
// DPN joins a place to a transition or a transition to a place, files
// it under the transition endpoint's input or output place list.
func (n *Net) addArc(from, to string) error {
	n.arcs = append(n.arcs, Arc{Source: from, Target: to})
	if _, ok := n.transitions[to]; ok {
		n.inputs[to] = append(n.inputs[to], from)
	}
	if _, ok := n.transitions[from]; ok {
		n.outputs[from] = append(n.outputs[from], to)
	}
	return nil
}

// Places returns every place name, sorted ascending.
func (n *Net) Places() []string {
	out := make([]string, 0, len(n.places))
	for p := range n.places {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Transitions returns every transition name, sorted ascending.
func (n *Net) Transitions() []string {
	out := make([]string, 0, len(n.transitions))
	for t := range n.transitions {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// TransitionData returns the data annotation for a transition vertex.
func (n *Net) TransitionData(name string) (*TransitionData, error) {
	td, ok := n.transitions[name]
	if !ok {
		return nil, ErrUnknownTransition
	}
	return td, nil
}

// Arcs returns every arc in the net, in insertion order.
func (n *Net) Arcs() []Arc {
	out := make([]Arc, len(n.arcs))
	copy(out, n.arcs)
	return out
}

// InputPlaces returns the places with an arc into transition t, sorted.
func (n *Net) InputPlaces(t string) []string { return sortedCopy(n.inputs[t]) }

// OutputPlaces returns the places with an arc out of transition t, sorted.
func (n *Net) OutputPlaces(t string) []string { return sortedCopy(n.outputs[t]) }

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
