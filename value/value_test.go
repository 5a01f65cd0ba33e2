package value_test

import (
	"testing"

	"github.com/katalvlaran/flowmine/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValueIsMissing(t *testing.T) {
	var v value.Value
	assert.True(t, v.IsMissing())
	assert.Equal(t, value.KindMissing, v.Kind())
}

func TestConstructorsRoundTrip(t *testing.T) {
	i := value.Int(42)
	f, ok := i.AsFloat64()
	require.True(t, ok)
	assert.Equal(t, float64(42), f)
	n, ok := i.AsInt64()
	require.True(t, ok)
	assert.Equal(t, int64(42), n)

	r := value.Real(3.5)
	f, ok = r.AsFloat64()
	require.True(t, ok)
	assert.Equal(t, 3.5, f)

	b := value.Bool(true)
	bv, ok := b.AsBool()
	require.True(t, ok)
	assert.True(t, bv)

	s := value.Str("hello")
	assert.Equal(t, "hello", s.AsString())
}

func TestEqualRequiresSameKind(t *testing.T) {
	assert.True(t, value.Int(1).Equal(value.Int(1)))
	assert.False(t, value.Int(1).Equal(value.Real(1)))
	assert.False(t, value.Int(1).Equal(value.Int(2)))
	assert.True(t, value.Missing().Equal(value.Missing()))
}

func TestLessOnlyDefinedForNumeric(t *testing.T) {
	less, ok := value.Int(1).Less(value.Real(2))
	require.True(t, ok)
	assert.True(t, less)

	_, ok = value.Str("a").Less(value.Str("b"))
	assert.False(t, ok)
}

func TestAsStringCoversAllKinds(t *testing.T) {
	assert.Equal(t, "42", value.Int(42).AsString())
	assert.Equal(t, "true", value.Bool(true).AsString())
	assert.Equal(t, "", value.Missing().AsString())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "int", value.KindInt.String())
	assert.Equal(t, "missing", value.KindMissing.String())
}
