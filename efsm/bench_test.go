package efsm_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/flowmine/efsm"
	"github.com/katalvlaran/flowmine/eventlog"
	"github.com/katalvlaran/flowmine/value"
)

// benchChain builds a linear n-state chain, every transition labelled
// "step" and gated on a numeric threshold, for throughput benchmarks.
func benchChain(b *testing.B, n int) *efsm.Model {
	b.Helper()
	states := make([]string, n)
	transitions := make([]efsm.Transition, 0, n-1)
	for i := 0; i < n; i++ {
		states[i] = fmt.Sprintf("s%d", i)
		if i > 0 {
			transitions = append(transitions, efsm.Transition{
				Source: states[i-1],
				Label:  "step",
				Guard:  efsm.Atom{Var: "amount", Op: efsm.LE, Lit: value.Real(1000)},
				Target: states[i],
			})
		}
	}
	m, err := efsm.New(states, states[0], nil, transitions)
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}
	return m
}

func benchTrace(n int) eventlog.Trace {
	tr := make(eventlog.Trace, n)
	for i := range tr {
		tr[i] = eventlog.Event{Activity: "step", Attrs: map[string]value.Value{"amount": value.Real(50)}}
	}
	return tr
}

func BenchmarkModel_Simulate(b *testing.B) {
	m := benchChain(b, 100)
	tr := benchTrace(99)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Simulate(tr)
	}
}

func BenchmarkModel_Reachable(b *testing.B) {
	m := benchChain(b, 100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.Reachable(); err != nil {
			b.Fatalf("Reachable failed: %v", err)
		}
	}
}
