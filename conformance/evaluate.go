package conformance

import (
	"github.com/katalvlaran/flowmine/align"
	"github.com/katalvlaran/flowmine/dpn"
	"github.com/katalvlaran/flowmine/eventlog"
)

// Result adds control-flow fitness to GuardSatisfaction, restoring the
// original's evaluate_conformance shape
// ({control_flow_fitness, guard_satisfaction, num_traces}).
type Result struct {
	GuardSatisfaction  GuardSatisfaction
	ControlFlowFitness float64
	NumTraces          int
}

// Evaluate runs Replay for data-guard satisfaction and, for each
// trace, aligns its observed activity sequence against a greedy
// structural walk of net (replayGreedyPath) using aligner, averaging
// the per-trace align.Result.Fitness into ControlFlowFitness — the
// restored, approximate stand-in for the original's pm4py-delegated
// evaluate_control_flow_fitness (spec.md §1 Non-goals: optimal
// alignment, like optimal guard minimisation, is not required).
func Evaluate(net *dpn.Net, traces []eventlog.Trace, aligner align.Aligner) (Result, error) {
	guardResult := Replay(net, traces)

	fitness, err := controlFlowFitness(net, traces, aligner)
	if err != nil {
		return Result{}, err
	}

	return Result{
		GuardSatisfaction:  guardResult,
		ControlFlowFitness: fitness,
		NumTraces:          len(traces),
	}, nil
}

// controlFlowFitness averages, across traces, the align.Aligner
// fitness between each trace's observed activity sequence and a greedy
// structural replay of net over that same sequence.
func controlFlowFitness(net *dpn.Net, traces []eventlog.Trace, aligner align.Aligner) (float64, error) {
	if len(traces) == 0 {
		return 0, nil
	}

	opts := align.DefaultOptions()
	var total float64
	for _, tr := range traces {
		observed := activityLabels(tr)
		reference := replayGreedyPath(net, observed)

		res, err := aligner.Align(observed, reference, opts)
		if err != nil {
			return 0, err
		}
		total += res.Fitness
	}
	return total / float64(len(traces)), nil
}

func activityLabels(tr eventlog.Trace) []string {
	out := make([]string, len(tr))
	for i, ev := range tr {
		out[i] = ev.Activity
	}
	return out
}

// replayGreedyPath walks net's token marking forward once per observed
// activity: if a transition labelled identically to the activity is
// enabled (every input place carries a token), it fires and its label
// is recorded; otherwise any other enabled transition fires instead,
// recording what the net expected next. Firing stops, and the
// reference trace is truncated, the moment no transition is enabled at
// all — net has reached a structural dead end this greedy walk cannot
// push past.
//
// This is a deliberately approximate stand-in for full marking-graph
// alignment (spec.md §1 Non-goals; see DESIGN.md), not a search for the
// globally optimal firing sequence.
func replayGreedyPath(net *dpn.Net, observed []string) []string {
	marking := make(map[string]int64, len(net.Initial))
	for place, tokens := range net.Initial {
		marking[place] = tokens
	}

	path := make([]string, 0, len(observed))
	for _, activity := range observed {
		trName, ok := findEnabledTransition(net, marking, activity)
		if !ok {
			trName, ok = findAnyEnabledTransition(net, marking)
		}
		if !ok {
			break
		}

		fireTransition(net, marking, trName)
		td, err := net.TransitionData(trName)
		if err != nil {
			break
		}
		path = append(path, td.Label)
	}
	return path
}

func findEnabledTransition(net *dpn.Net, marking map[string]int64, label string) (string, bool) {
	for _, trName := range net.Transitions() {
		td, err := net.TransitionData(trName)
		if err != nil || td.Label != label {
			continue
		}
		if isEnabled(net, marking, trName) {
			return trName, true
		}
	}
	return "", false
}

func findAnyEnabledTransition(net *dpn.Net, marking map[string]int64) (string, bool) {
	for _, trName := range net.Transitions() {
		if isEnabled(net, marking, trName) {
			return trName, true
		}
	}
	return "", false
}

func isEnabled(net *dpn.Net, marking map[string]int64, trName string) bool {
	for _, place := range net.InputPlaces(trName) {
		if marking[place] <= 0 {
			return false
		}
	}
	return true
}

func fireTransition(net *dpn.Net, marking map[string]int64, trName string) {
	for _, place := range net.InputPlaces(trName) {
		marking[place]--
	}
	for _, place := range net.OutputPlaces(trName) {
		marking[place]++
	}
}
