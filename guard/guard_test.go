package guard_test

import (
	"testing"

	"github.com/katalvlaran/flowmine/eventlog"
	"github.com/katalvlaran/flowmine/guard"
	"github.com/katalvlaran/flowmine/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomEvaluateNumeric(t *testing.T) {
	a := guard.Atom{Var: "amount", Op: guard.LE, Lit: value.Real(10)}
	ok, err := a.Evaluate(map[string]value.Value{"amount": value.Int(5)})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.Evaluate(map[string]value.Value{"amount": value.Int(50)})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAtomEvaluateMissingVarErrors(t *testing.T) {
	a := guard.Atom{Var: "amount", Op: guard.LE, Lit: value.Real(10)}
	_, err := a.Evaluate(map[string]value.Value{})
	assert.ErrorIs(t, err, guard.ErrGuardEval)
}

func TestAndEvaluateShortCircuits(t *testing.T) {
	g := guard.And{Atoms: []guard.Atom{
		{Var: "amount", Op: guard.GE, Lit: value.Real(0)},
		{Var: "amount", Op: guard.LE, Lit: value.Real(10)},
	}}
	ok, err := g.Evaluate(map[string]value.Value{"amount": value.Int(5)})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.Evaluate(map[string]value.Value{"amount": value.Int(500)})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGuardTrueAlwaysHolds(t *testing.T) {
	ok, err := guard.GuardTrue{}.Evaluate(nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", guard.GuardTrue{}.Serialize())
}

func TestSynthesizeNoPositivesOrNegativesIsTrivial(t *testing.T) {
	g := guard.Synthesize(nil, []guard.Example{{"amount": value.Int(1)}}, nil, 3, guard.DirectValidator{})
	assert.Equal(t, "true", g.Serialize())
}

func TestSynthesizeSeparatesByThreshold(t *testing.T) {
	domains := map[string]*eventlog.AttributeDomain{
		"amount": {Name: "amount", Dtype: eventlog.DtypeInt},
	}
	pos := []guard.Example{
		{"amount": value.Int(1)}, {"amount": value.Int(2)}, {"amount": value.Int(3)},
	}
	neg := []guard.Example{
		{"amount": value.Int(100)}, {"amount": value.Int(200)}, {"amount": value.Int(300)},
	}
	g := guard.Synthesize(pos, neg, domains, 3, guard.DirectValidator{})
	require.NotEqual(t, "true", g.Serialize())

	for _, e := range pos {
		ok, err := g.Evaluate(e)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	for _, e := range neg {
		ok, err := g.Evaluate(e)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestSynthesizeFallsBackToTrueWhenInseparable(t *testing.T) {
	domains := map[string]*eventlog.AttributeDomain{
		"amount": {Name: "amount", Dtype: eventlog.DtypeInt},
	}
	pos := []guard.Example{{"amount": value.Int(5)}}
	neg := []guard.Example{{"amount": value.Int(5)}}
	g := guard.Synthesize(pos, neg, domains, 1, guard.DirectValidator{})
	assert.Equal(t, "true", g.Serialize())
}

func TestOrEvaluateHoldsIfAnyDisjunctHolds(t *testing.T) {
	g := guard.Or{Guards: []guard.Guard{
		guard.Atom{Var: "amount", Op: guard.LE, Lit: value.Real(10)},
		guard.Atom{Var: "amount", Op: guard.GE, Lit: value.Real(90)},
	}}
	ok, err := g.Evaluate(map[string]value.Value{"amount": value.Int(5)})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.Evaluate(map[string]value.Value{"amount": value.Int(50)})
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Contains(t, g.Serialize(), "Or")
}

func TestIdentifiersCoversAndOrAtom(t *testing.T) {
	g := guard.And{Atoms: []guard.Atom{{Var: "amount", Op: guard.LE, Lit: value.Real(1)}}}
	assert.Equal(t, []string{"amount"}, guard.Identifiers(g))

	or := guard.Or{Guards: []guard.Guard{
		guard.Atom{Var: "b", Op: guard.EQ, Lit: value.Str("x")},
		guard.Atom{Var: "a", Op: guard.EQ, Lit: value.Str("y")},
	}}
	assert.Equal(t, []string{"a", "b"}, guard.Identifiers(or))

	assert.Empty(t, guard.Identifiers(guard.GuardTrue{}))
}

func TestDirectValidatorRejectsOnEvalError(t *testing.T) {
	g := guard.Atom{Var: "missing", Op: guard.EQ, Lit: value.Str("x")}
	ok := guard.DirectValidator{}.Validate(g,
		[]guard.Example{{"amount": value.Int(1)}},
		[]guard.Example{{"amount": value.Int(2)}})
	assert.False(t, ok)
}
