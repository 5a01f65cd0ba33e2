package dpn_test

import (
	"strconv"
	"testing"

	"github.com/katalvlaran/flowmine/dpn"
	"github.com/katalvlaran/flowmine/efsm"
)

func benchModel(b *testing.B, n int) *efsm.Model {
	b.Helper()
	states := make([]string, n+1)
	for i := range states {
		states[i] = "s" + strconv.Itoa(i)
	}
	transitions := make([]efsm.Transition, n)
	for i := 0; i < n; i++ {
		transitions[i] = efsm.Transition{
			Source: states[i],
			Label:  "step",
			Guard:  efsm.GuardTrue{},
			Target: states[i+1],
		}
	}
	m, err := efsm.New(states, states[0], nil, transitions)
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}
	return m
}

func BenchmarkProject(b *testing.B) {
	m := benchModel(b, 200)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dpn.Project(m); err != nil {
			b.Fatalf("Project failed: %v", err)
		}
	}
}

func BenchmarkProjectCompact(b *testing.B) {
	m := benchModel(b, 200)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dpn.ProjectCompact(m); err != nil {
			b.Fatalf("ProjectCompact failed: %v", err)
		}
	}
}

func BenchmarkExportPNML(b *testing.B) {
	m := benchModel(b, 200)
	net, err := dpn.Project(m)
	if err != nil {
		b.Fatalf("Project failed: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dpn.ExportPNML(net); err != nil {
			b.Fatalf("ExportPNML failed: %v", err)
		}
	}
}
