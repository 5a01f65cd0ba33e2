package efsm

import (
	"github.com/katalvlaran/flowmine/eventlog"
	"github.com/katalvlaran/flowmine/value"
)

// Result is what Simulate returns: whether the whole trace was
// accepted, the sequence of states visited (including the starting
// state), and the final variable assignment.
type Result struct {
	Accepted      bool
	StatePath     []string
	FinalVarState map[string]value.Value
}

// Simulate replays trace against m starting at m.Initial, per spec.md
// §4.I: at each event, the first transition (in declaration order)
// leaving the current state under the event's label whose guard
// evaluates true fires; its update is applied and the state advances.
// A guard-evaluation error is treated as the guard being false (spec.md
// §7's GuardEvalError recovery), never as a reason to stop early — the
// search simply continues to the next matching transition. If no
// transition fires for an event, the trace is rejected at that
// position and simulation stops.
func (m *Model) Simulate(tr eventlog.Trace) Result {
	current := m.Initial
	varState := map[string]value.Value{}
	path := []string{current}

	for _, ev := range tr {
		candidates := m.TransitionsFrom(current, ev.Activity)
		fired := false
		for _, c := range candidates {
			ok, err := c.Guard.Evaluate(varState)
			if err != nil {
				ok = false
			}
			if !ok {
				continue
			}
			c.Update.Apply(varState, ev.Attrs)
			current = c.Target
			path = append(path, current)
			fired = true
			break
		}
		if !fired {
			return Result{Accepted: false, StatePath: path, FinalVarState: varState}
		}
	}
	return Result{Accepted: true, StatePath: path, FinalVarState: varState}
}
