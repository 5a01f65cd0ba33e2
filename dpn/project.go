package dpn

import (
	"sort"
	"strconv"

	"github.com/katalvlaran/flowmine/efsm"
	"github.com/katalvlaran/flowmine/guard"
)

// Project is the canonical EFSM->DPN projection of spec.md §4.G: one
// place per EFSM state, one transition per EFSM transition with a
// single input arc from its source place and a single output arc to
// its target place, and an initial marking of one token on the
// initial state's place. This is the default; it is what spec.md §8
// tests against.
func Project(m *efsm.Model) (*Net, error) {
	n := newNet("EFSM_DPN", m.Variables)

	for _, s := range m.States {
		if err := n.addPlace(s); err != nil {
			return nil, err
		}
	}
	n.Initial[m.Initial] = 1

	for i, tr := range m.Transitions {
		name := transitionName(tr, i)
		data := &TransitionData{
			Label:  tr.Label,
			Guard:  tr.Guard,
			Update: tr.Update,
			Read:   readVars(tr.Guard, tr.Update),
			Write:  tr.Update.WriteVars(),
		}
		if err := n.addTransition(name, data); err != nil {
			return nil, err
		}
		if err := n.addArc(tr.Source, name); err != nil {
			return nil, err
		}
		if err := n.addArc(name, tr.Target); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// ProjectCompact is the alternative "compact" projection present in
// the original source (map/efsm_to_dpn.py::map_efsm_to_dpn): a single
// shared "process" place (plus silent start/end places) with one
// visible transition per distinct activity label, wired as a
// self-loop on the process place. Transitions sharing a label have
// their guards combined by disjunction and their update assignments
// merged. Opt-in per spec.md §4.G ("a conformant implementation MAY
// offer this as an option").
//
// Disjunction is not otherwise representable in the guard.Guard AST
// (spec.md §4.E only ever synthesizes conjunctions) — merging reuses
// guard.Or, serializing as "(g1) Or (g2) Or ...", matching the
// original's merged_guard_str construction exactly.
func ProjectCompact(m *efsm.Model) (*Net, error) {
	n := newNet("EFSM_DPN", m.Variables)

	const (
		start   = "start"
		process = "process"
		end     = "end"
	)
	for _, p := range []string{start, process, end} {
		if err := n.addPlace(p); err != nil {
			return nil, err
		}
	}
	n.Initial[start] = 1

	if err := n.addTransition("start_process", &TransitionData{Guard: efsm.GuardTrue{}, Update: efsm.Update{}}); err != nil {
		return nil, err
	}
	if err := n.addArc(start, "start_process"); err != nil {
		return nil, err
	}
	if err := n.addArc("start_process", process); err != nil {
		return nil, err
	}

	byLabel := map[string][]efsm.Transition{}
	for _, tr := range m.Transitions {
		byLabel[tr.Label] = append(byLabel[tr.Label], tr)
	}
	var labels []string
	for l := range byLabel {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	for _, label := range labels {
		group := byLabel[label]
		merged := mergeGuards(group)
		update := mergeUpdates(group)
		data := &TransitionData{
			Label:  label,
			Guard:  merged,
			Update: update,
			Read:   readVars(merged, update),
			Write:  update.WriteVars(),
		}
		if err := n.addTransition(label, data); err != nil {
			return nil, err
		}
		if err := n.addArc(process, label); err != nil {
			return nil, err
		}
		if err := n.addArc(label, process); err != nil {
			return nil, err
		}
	}

	if err := n.addTransition("end_process", &TransitionData{Guard: efsm.GuardTrue{}, Update: efsm.Update{}}); err != nil {
		return nil, err
	}
	if err := n.addArc(process, "end_process"); err != nil {
		return nil, err
	}
	if err := n.addArc("end_process", end); err != nil {
		return nil, err
	}

	return n, nil
}

// transitionName derives a deterministic, unique vertex ID for an
// EFSM transition's DPN counterpart: "source--label-->target" followed
// by "#" and the transition's declaration index, for every transition.
func transitionName(tr efsm.Transition, index int) string {
	return tr.Source + "--" + tr.Label + "-->" + tr.Target + "#" + strconv.Itoa(index)
}

// readVars is spec.md §4.G's read_vars rule: identifiers syntactically
// in the guard, union identifiers on the right-hand side of any update
// assignment (excluding the attr. literal prefix carried by
// Update.ReadVars already).
func readVars(g efsm.Guard, u efsm.Update) []string {
	set := map[string]struct{}{}
	for _, id := range guard.Identifiers(g) {
		set[id] = struct{}{}
	}
	for _, id := range u.ReadVars() {
		set[id] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// mergeGuards combines a label group's guards by disjunction, dropping
// trivial (always-true) members — mirroring the original's
// guard_strings filter that skips serialized == "true". An empty or
// all-trivial group yields GuardTrue.
func mergeGuards(group []efsm.Transition) efsm.Guard {
	var nonTrivial []efsm.Guard
	for _, tr := range group {
		if tr.Guard.Serialize() == "true" {
			continue
		}
		nonTrivial = append(nonTrivial, tr.Guard)
	}
	if len(nonTrivial) == 0 {
		return efsm.GuardTrue{}
	}
	if len(nonTrivial) == 1 {
		return nonTrivial[0]
	}
	return guard.Or{Guards: nonTrivial}
}

// mergeUpdates unions every group member's assignments; later members
// overwrite earlier ones on key collision, matching the original's
// dict.update() semantics.
func mergeUpdates(group []efsm.Transition) efsm.Update {
	out := efsm.Update{Assignments: map[string]efsm.Assignment{}}
	for _, tr := range group {
		for k, v := range tr.Update.Assignments {
			out.Assignments[k] = v
		}
	}
	return out
}
