package align

import "errors"

// MemoryMode controls how much of the DP matrix Align retains.
//
//   - NoMemory   - distance only; uses the same two-row storage as TwoRows.
//   - TwoRows    - O(M) memory (M = len(reference)), distance only.
//   - FullMatrix - O(N*M) memory, enables path backtracking.
type MemoryMode int

const (
	// NoMemory keeps no matrix history; ReturnPath is rejected in this mode.
	NoMemory MemoryMode = iota

	// TwoRows keeps only the current and previous DP rows.
	TwoRows

	// FullMatrix retains every row, enabling backtracking.
	FullMatrix
)

// Sentinel errors mirroring the teacher dtw package's validation contract.
var (
	// ErrBadInput indicates an invalid combination of Options fields.
	ErrBadInput = errors.New("align: invalid options combination")

	// ErrPathNeedsMatrix indicates ReturnPath=true requires MemoryMode=FullMatrix.
	ErrPathNeedsMatrix = errors.New("align: ReturnPath requires MemoryMode=FullMatrix")

	// ErrIncompletePath indicates path backtrace failed to reach (0,0).
	ErrIncompletePath = errors.New("align: path computation incomplete")
)

// Coord is one step of the optimal alignment path: I indexes the
// observed sequence, J indexes the reference sequence.
type Coord struct {
	I, J int
}

// Options configures the alignment DP.
//
//	Window         - Sakoe-Chiba band: maximum |i-j| allowed; -1 disables it.
//	InsertCost     - cost of an observed label with no reference counterpart.
//	DeleteCost     - cost of a reference label with no observed counterpart.
//	SubstituteCost - cost of aligning two unequal labels; equal labels cost 0.
//	ReturnPath     - if true, backtrack and return the optimal alignment path.
//	                 Requires MemoryMode=FullMatrix.
//	MemoryMode     - NoMemory, TwoRows, or FullMatrix DP storage strategy.
type Options struct {
	Window         int
	InsertCost     float64
	DeleteCost     float64
	SubstituteCost float64
	ReturnPath     bool
	MemoryMode     MemoryMode
}

// DefaultOptions returns safe defaults: no window, unit costs, distance
// only, two-row storage.
func DefaultOptions() Options {
	return Options{
		Window:         -1,
		InsertCost:     1,
		DeleteCost:     1,
		SubstituteCost: 1,
		ReturnPath:     false,
		MemoryMode:     TwoRows,
	}
}

// Validate checks that Options holds a consistent combination of
// fields, the way dtw.Options.Validate does for its numeric analogue.
func (o *Options) Validate() error {
	if o.Window < -1 {
		return ErrBadInput
	}
	if o.InsertCost < 0 || o.DeleteCost < 0 || o.SubstituteCost < 0 {
		return ErrBadInput
	}
	if o.ReturnPath && o.MemoryMode != FullMatrix {
		return ErrPathNeedsMatrix
	}
	return nil
}

// Result is the outcome of one alignment.
type Result struct {
	// Distance is the total edit cost of the optimal alignment.
	Distance float64

	// Path is the optimal alignment path from (0,0) to (N-1,M-1), present
	// only when Options.ReturnPath was set.
	Path []Coord

	// Fitness is Distance normalized to [0,1], 1 meaning a perfect
	// match and 0 meaning fully divergent sequences.
	Fitness float64
}
