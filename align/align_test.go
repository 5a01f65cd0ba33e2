package align_test

import (
	"testing"

	"github.com/katalvlaran/flowmine/align"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAlign_IdenticalSequences verifies that identical label sequences
// have zero distance and perfect fitness.
func TestAlign_IdenticalSequences(t *testing.T) {
	a := align.New()
	res, err := a.Align([]string{"pay", "ship"}, []string{"pay", "ship"}, align.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Distance)
	assert.Equal(t, 1.0, res.Fitness)
	assert.Nil(t, res.Path)
}

// TestAlign_EmptyObservedCostsAllDeletions verifies the edit-distance
// base case: aligning an empty observed trace against a reference of
// length M costs M deletions (unlike dtw.DTW, this is not an error).
func TestAlign_EmptyObservedCostsAllDeletions(t *testing.T) {
	a := align.New()
	res, err := a.Align(nil, []string{"pay", "ship", "close"}, align.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.Distance)
	assert.Equal(t, 0.0, res.Fitness)
}

// TestAlign_BothEmptyIsPerfectMatch verifies the degenerate case where
// both sequences are empty.
func TestAlign_BothEmptyIsPerfectMatch(t *testing.T) {
	a := align.New()
	res, err := a.Align(nil, nil, align.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Distance)
	assert.Equal(t, 1.0, res.Fitness)
}

// TestAlign_SingleSubstitution checks a one-label mismatch costs
// exactly one substitution; on two length-1 traces that is the
// worst-case distance, so fitness drops to zero.
func TestAlign_SingleSubstitution(t *testing.T) {
	a := align.New()
	res, err := a.Align([]string{"pay"}, []string{"ship"}, align.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Distance)
	assert.Equal(t, 0.0, res.Fitness)
}

// TestAlign_InsertionSkipsExtraActivity verifies that an observed trace
// with one extra activity costs a single insertion against the shorter
// reference.
func TestAlign_InsertionSkipsExtraActivity(t *testing.T) {
	a := align.New()
	res, err := a.Align([]string{"pay", "retry", "ship"}, []string{"pay", "ship"}, align.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Distance)
}

// TestAlign_BadWindowOption ensures Window < -1 errors ErrBadInput.
func TestAlign_BadWindowOption(t *testing.T) {
	a := align.New()
	opts := align.DefaultOptions()
	opts.Window = -2

	_, err := a.Align([]string{"pay"}, []string{"pay"}, opts)
	assert.ErrorIs(t, err, align.ErrBadInput)
}

// TestAlign_PathNeedsMatrix ensures ReturnPath=true with non-FullMatrix
// mode errors ErrPathNeedsMatrix.
func TestAlign_PathNeedsMatrix(t *testing.T) {
	a := align.New()
	opts := align.DefaultOptions()
	opts.ReturnPath = true
	opts.MemoryMode = align.TwoRows

	_, err := a.Align([]string{"pay"}, []string{"pay"}, opts)
	assert.ErrorIs(t, err, align.ErrPathNeedsMatrix)
}

// TestAlign_ReturnPathReconstructsAlignment checks that the backtracked
// path starts at (0,0) and ends at (N-1,M-1) for identical sequences.
func TestAlign_ReturnPathReconstructsAlignment(t *testing.T) {
	a := align.New()
	opts := align.DefaultOptions()
	opts.ReturnPath = true
	opts.MemoryMode = align.FullMatrix

	seq := []string{"pay", "ship", "close"}
	res, err := a.Align(seq, seq, opts)
	require.NoError(t, err)
	require.NotEmpty(t, res.Path)
	assert.Equal(t, align.Coord{I: 0, J: 0}, res.Path[0])
	assert.Equal(t, align.Coord{I: 2, J: 2}, res.Path[len(res.Path)-1])
}
