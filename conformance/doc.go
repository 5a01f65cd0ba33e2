// Package conformance replays an event log against a Data-aware Petri
// Net to measure data-guard satisfaction and, optionally, control-flow
// fitness (spec component H).
//
// Grounded on the original's conformance/checks.py: Replay reproduces
// evaluate_guard_satisfaction exactly (it is deliberately
// control-flow-agnostic — it never checks Petri-net enabling). Evaluate
// additionally restores the evaluate_control_flow_fitness field that
// checks.py delegated to pm4py's alignments, using the pluggable
// align.Aligner (default align.New) against a greedy structural replay
// of the net instead.
package conformance
