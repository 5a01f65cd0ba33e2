package dpn_test

import (
	"encoding/json"
	"testing"

	"github.com/katalvlaran/flowmine/dpn"
	"github.com/katalvlaran/flowmine/efsm"
	"github.com/katalvlaran/flowmine/eventlog"
	"github.com/katalvlaran/flowmine/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEFSM(t *testing.T) *efsm.Model {
	t.Helper()
	m, err := efsm.New(
		[]string{"s0", "s1"},
		"s0",
		map[string]efsm.Variable{"amount": {Name: "amount", Dtype: eventlog.DtypeInt}},
		[]efsm.Transition{
			{
				Source: "s0",
				Label:  "pay",
				Guard:  efsm.Atom{Var: "amount", Op: efsm.LE, Lit: value.Real(100)},
				Update: efsm.Update{Assignments: map[string]efsm.Assignment{"amount": {CopyAttr: "amount"}}},
				Target: "s1",
			},
		},
	)
	require.NoError(t, err)
	return m
}

func TestProjectCanonicalShape(t *testing.T) {
	m := sampleEFSM(t)
	n, err := dpn.Project(m)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"s0", "s1"}, n.Places())
	require.Len(t, n.Transitions(), 1)
	assert.Equal(t, int64(1), n.Initial["s0"])

	// spec.md §8 Scenario 5: 2 arcs per transition (one in, one out).
	assert.Len(t, n.Arcs(), 2*len(n.Transitions()))

	td, err := n.TransitionData(n.Transitions()[0])
	require.NoError(t, err)
	assert.Equal(t, "pay", td.Label)
	assert.Equal(t, []string{"amount"}, td.Read)
	assert.Equal(t, []string{"amount"}, td.Write)
}

func TestProjectCompactMergesGuardsByDisjunction(t *testing.T) {
	m, err := efsm.New(
		[]string{"s0", "s1", "s2"},
		"s0",
		map[string]efsm.Variable{"amount": {Name: "amount", Dtype: eventlog.DtypeInt}},
		[]efsm.Transition{
			{Source: "s0", Label: "pay", Guard: efsm.Atom{Var: "amount", Op: efsm.LE, Lit: value.Real(10)}, Target: "s1"},
			{Source: "s1", Label: "pay", Guard: efsm.Atom{Var: "amount", Op: efsm.GE, Lit: value.Real(90)}, Target: "s2"},
		},
	)
	require.NoError(t, err)

	n, err := dpn.ProjectCompact(m)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"start", "process", "end"}, n.Places())
	td, err := n.TransitionData("pay")
	require.NoError(t, err)
	assert.Contains(t, td.Guard.Serialize(), "Or")

	ok, err := td.Guard.Evaluate(map[string]value.Value{"amount": value.Int(5)})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = td.Guard.Evaluate(map[string]value.Value{"amount": value.Int(50)})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIncidenceMatrixArcCountMatchesNet(t *testing.T) {
	m := sampleEFSM(t)
	n, err := dpn.Project(m)
	require.NoError(t, err)

	mat, err := dpn.IncidenceMatrix(n)
	require.NoError(t, err)

	rows, cols := mat.Shape()
	assert.Equal(t, len(n.Places()), rows)
	assert.Equal(t, len(n.Transitions()), cols)
	assert.Equal(t, len(n.Arcs()), mat.ArcCount())

	tr := n.Transitions()[0]
	v, err := mat.At("s0", tr)
	require.NoError(t, err)
	assert.Equal(t, -1, v)
	v, err = mat.At("s1", tr)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestJSONExportShapeAndTypeMapping(t *testing.T) {
	m := sampleEFSM(t)
	n, err := dpn.Project(m)
	require.NoError(t, err)

	data, err := json.Marshal(n)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	dataVars := decoded["dataVariables"].([]interface{})
	require.Len(t, dataVars, 1)
	dv := dataVars[0].(map[string]interface{})
	assert.Equal(t, "number", dv["type"])
}

func TestPNMLRoundTrip(t *testing.T) {
	m := sampleEFSM(t)
	n, err := dpn.Project(m)
	require.NoError(t, err)

	raw, err := dpn.ExportPNML(n)
	require.NoError(t, err)

	rebuilt, err := dpn.ImportPNML(raw)
	require.NoError(t, err)

	assert.ElementsMatch(t, n.Places(), rebuilt.Places())
	assert.ElementsMatch(t, n.Transitions(), rebuilt.Transitions())
	assert.Equal(t, n.Initial, rebuilt.Initial)

	origTD, err := n.TransitionData(n.Transitions()[0])
	require.NoError(t, err)
	rebuiltTD, err := rebuilt.TransitionData(rebuilt.Transitions()[0])
	require.NoError(t, err)
	assert.Equal(t, origTD.Guard.Serialize(), rebuiltTD.Guard.Serialize())
	assert.Equal(t, origTD.Read, rebuiltTD.Read)
	assert.Equal(t, origTD.Write, rebuiltTD.Write)
}
