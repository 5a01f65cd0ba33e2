package conformance

import (
	"github.com/katalvlaran/flowmine/dpn"
	"github.com/katalvlaran/flowmine/eventlog"
	"github.com/katalvlaran/flowmine/value"
)

// GuardSatisfaction is the result of Replay: spec.md §4.H's
// {satisfaction_rate, satisfied, violated, undefined, per-transition
// violation counts}.
type GuardSatisfaction struct {
	SatisfactionRate float64
	TotalTransitions int
	Satisfied        int
	Violated         int
	Undefined        int

	// ViolationDetails counts, per transition name, how many times its
	// guard evaluated false — the original's violation_details dict.
	ViolationDetails map[string]int
}

// Replay evaluates data-guard satisfaction of net against traces, per
// spec.md §4.H / checks.py::evaluate_guard_satisfaction: for every
// declared variable the per-trace state starts unbound (value.Missing);
// walking each trace, every net transition whose label matches the
// event's activity is a candidate, independent of whether the net
// would actually enable it — Replay never checks token marking.
//
// A guard evaluating true increments Satisfied and applies the
// transition's update using the event's attributes; false increments
// Violated and records one more violation against that transition name;
// a guard-evaluation error (an unbound variable, a type mismatch)
// increments Undefined and leaves the variable state untouched.
func Replay(net *dpn.Net, traces []eventlog.Trace) GuardSatisfaction {
	result := GuardSatisfaction{ViolationDetails: map[string]int{}}
	transitionNames := net.Transitions()

	for _, tr := range traces {
		varState := make(map[string]value.Value, len(net.Variables))
		for name := range net.Variables {
			varState[name] = value.Missing()
		}

		for _, ev := range tr {
			for _, trName := range transitionNames {
				td, err := net.TransitionData(trName)
				if err != nil || td.Label != ev.Activity {
					continue
				}

				result.TotalTransitions++
				ok, evalErr := td.Guard.Evaluate(varState)
				switch {
				case evalErr != nil:
					result.Undefined++
				case ok:
					result.Satisfied++
					td.Update.Apply(varState, ev.Attrs)
				default:
					result.Violated++
					result.ViolationDetails[trName]++
				}
			}
		}
	}

	if result.TotalTransitions > 0 {
		result.SatisfactionRate = float64(result.Satisfied) / float64(result.TotalTransitions)
	}
	return result
}
