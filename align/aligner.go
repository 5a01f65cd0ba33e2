package align

// Aligner computes the control-flow alignment between an observed
// activity-label sequence and a reference (model-permitted) sequence.
// It is the pluggable stand-in for the external alignment library
// spec.md §1/§6 names as out of scope; conformance.Evaluate depends
// on this interface, not on the concrete DP implementation, so a
// real Petri-net-alignment backend can be substituted without
// touching conformance.
type Aligner interface {
	// Align returns the minimal-cost edit alignment between observed
	// and reference under opts.
	Align(observed, reference []string, opts Options) (Result, error)
}

// defaultAligner is the DP-based Aligner implementation.
type defaultAligner struct{}

// New returns the default Aligner: a windowed edit-distance DP engine
// generalized from the teacher's numeric DTW into label sequences.
func New() Aligner {
	return defaultAligner{}
}

// Align implements Aligner.
func (defaultAligner) Align(observed, reference []string, opts Options) (Result, error) {
	dist, path, err := distance(observed, reference, &opts)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Distance: dist,
		Path:     path,
		Fitness:  fitness(dist, len(observed), len(reference)),
	}, nil
}

// fitness normalizes an edit distance to [0,1] against the worst-case
// unit-cost distance between two sequences of the given lengths: every
// overlapping position substituted, plus every non-overlapping
// position inserted or deleted, i.e. max(nObserved, nReference). Two
// empty sequences are a perfect match.
func fitness(dist float64, nObserved, nReference int) float64 {
	worst := nObserved
	if nReference > worst {
		worst = nReference
	}
	if worst == 0 {
		return 1.0
	}

	f := 1.0 - dist/float64(worst)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
