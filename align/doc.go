// Package align computes edit-distance alignments between two
// sequences of activity labels.
//
// It is the default, swappable implementation of the external
// control-flow-alignment collaborator named in spec.md §1/§6 (there
// delegated to an alignment library operating on Petri-net markings).
// Where that collaborator aligns an observed trace against the
// optimal run of a full Petri-net unfolding, align does the same job
// approximately: it treats both the observed trace and a
// caller-supplied reference trace as plain label sequences and finds
// the minimal-cost sequence of matches, insertions, and substitutions
// that turns one into the other — the same windowed dynamic-programming
// recurrence the teacher's dtw package uses for numeric time series,
// generalized from a numeric distance to a label-equality distance.
//
// Usage:
//
//	a := align.New()
//	res, err := a.Align(observedLabels, referenceLabels, align.DefaultOptions())
//	fitness := res.Fitness // 1.0 == perfect match, 0.0 == fully divergent
package align
