package efsm_test

import (
	"testing"

	"github.com/katalvlaran/flowmine/compat"
	"github.com/katalvlaran/flowmine/efsm"
	"github.com/katalvlaran/flowmine/eventlog"
	"github.com/katalvlaran/flowmine/guard"
	"github.com/katalvlaran/flowmine/merge"
	"github.com/katalvlaran/flowmine/pta"
	"github.com/katalvlaran/flowmine/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approveReject(amount int64, label string) eventlog.Trace {
	return eventlog.Trace{
		{Activity: label, Attrs: map[string]value.Value{"amount": value.Int(amount)}},
	}
}

func TestAssembleFromMergedTree(t *testing.T) {
	tree, err := pta.Build([]eventlog.Trace{
		approveReject(10, "approve"),
		approveReject(1000, "reject"),
	})
	require.NoError(t, err)

	sm, err := merge.BlueFringe(tree, []compat.Attr{{Name: "amount", Kind: compat.AttrNumeric}}, 0.3)
	require.NoError(t, err)

	domains, err := eventlog.InferDomains([]eventlog.Trace{
		approveReject(10, "approve"), approveReject(1000, "reject"),
	})
	require.NoError(t, err)

	m, err := efsm.Assemble(tree, sm, domains, 3, guard.DirectValidator{})
	require.NoError(t, err)

	assert.NotEmpty(t, m.States)
	assert.Contains(t, m.States, m.Initial)
	labels := map[string]bool{}
	for _, tr := range m.Transitions {
		labels[tr.Label] = true
	}
	assert.True(t, labels["approve"])
	assert.True(t, labels["reject"])
}

func TestAssembleFromPlacesAllGuardsTrivial(t *testing.T) {
	places := efsm.ExternalPlaceSet{
		Places:  []string{"p0", "p1"},
		Initial: "p0",
		Transitions: []efsm.ExternalTransition{
			{Source: "p0", Label: "start", Target: "p1"},
		},
	}
	m, err := efsm.AssembleFromPlaces(places, nil)
	require.NoError(t, err)
	require.Len(t, m.Transitions, 1)
	assert.Equal(t, "true", m.Transitions[0].Guard.Serialize())
}
