// Package flowmine (module github.com/katalvlaran/flowmine) learns a
// data-aware process model from an event log. It holds no code of its
// own; the command-line front end lives in cmd/flowmine.
//
// Given a set of traces — ordered activity sequences, each event
// carrying a dictionary of named data attributes — flowmine builds a
// prefix-tree acceptor, merges statistically compatible states under a
// Jensen-Shannon divergence threshold (blue-fringe), synthesizes
// guard predicates and update assignments over the surviving
// transitions, and assembles the result into an Extended Finite State
// Machine. The EFSM is then projected onto a Data-aware Petri Net for
// export (JSON, PNML) and conformance checking.
//
// Package layout:
//
//	value/       — the tagged scalar variant shared by every stage
//	eventlog/    — Event, Trace, attribute-domain and propagation inference
//	pta/         — prefix-tree acceptor construction
//	compat/      — state-compatibility test (Jensen-Shannon / mean-gap)
//	merge/       — blue-fringe state merging
//	guard/       — guard predicate synthesis and the Guard AST
//	efsm/        — Extended Finite State Machine assembly and simulation
//	dpn/         — EFSM→DPN projection, PNML/JSON export, incidence matrix
//	align/       — pluggable control-flow alignment (edit-distance default)
//	conformance/ — guard-satisfaction replay and control-flow fitness
//	config/      — YAML-configurable knobs
//	logging/     — structured logging construction
//	cmd/flowmine/ — the discover/evaluate/simulate command-line front end
//
// pta, efsm, and dpn each hold their own minimal arena-of-nodes or
// bipartite-map representation rather than sharing a general-purpose
// graph package; see spec.md §9 and DESIGN.md.
package flowmine
