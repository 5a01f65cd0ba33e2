package guard

import (
	"sort"

	"github.com/katalvlaran/flowmine/eventlog"
	"github.com/katalvlaran/flowmine/value"
)

// exampleCap is the deterministic truncation limit spec.md §4.E
// imposes on positive/negative example counts before search.
const exampleCap = 50

// candidateCap is the ceiling on the thresholds kept per numeric
// attribute (each threshold yields a <= and a >= atom); beyond it, 20
// evenly spaced by index are kept.
const candidateCap = 20

// categoricalTop is how many of the most frequent categorical values
// become equality-predicate candidates.
const categoricalTop = 10

// Synthesize searches for a Guard that holds on every example in pos
// and fails on every example in neg, trying conjunctions of up to
// maxConjuncts atomic predicates drawn from domains. With no positives
// or no negatives, the trivial guard is returned immediately — there
// is nothing to discriminate (spec.md §4.E).
func Synthesize(pos, neg []Example, domains map[string]*eventlog.AttributeDomain, maxConjuncts int, v Validator) Guard {
	if len(pos) == 0 || len(neg) == 0 {
		return GuardTrue{}
	}

	posT := truncate(pos, exampleCap)
	negT := truncate(neg, exampleCap)

	atoms := candidateAtoms(posT, negT, domains)
	if len(atoms) == 0 {
		return GuardTrue{}
	}

	for k := 1; k <= maxConjuncts; k++ {
		for start := 0; start+k <= len(atoms); start++ {
			candidate := And{Atoms: append([]Atom(nil), atoms[start:start+k]...)}
			if v.Validate(candidate, posT, negT) {
				return candidate
			}
		}
	}
	return GuardTrue{}
}

func truncate(examples []Example, n int) []Example {
	if len(examples) <= n {
		return examples
	}
	return examples[:n]
}

// candidateAtoms builds the full ordered predicate list: every
// numeric attribute's LE/GE thresholds (attribute names in ascending
// order), followed by every categorical attribute's EQ values
// (likewise ascending) — numeric predicates are tried before
// categorical per spec.md §4.E.
func candidateAtoms(pos, neg []Example, domains map[string]*eventlog.AttributeDomain) []Atom {
	numericAttrs, catAttrs := []string{}, []string{}
	for name, dom := range domains {
		switch dom.Dtype {
		case eventlog.DtypeInt, eventlog.DtypeFloat:
			numericAttrs = append(numericAttrs, name)
		case eventlog.DtypeCat:
			catAttrs = append(catAttrs, name)
		}
		// DtypeString is excluded from guard candidates per spec.md §4.E.
	}
	sort.Strings(numericAttrs)
	sort.Strings(catAttrs)

	var atoms []Atom
	for _, attr := range numericAttrs {
		posVals := numericValues(pos, attr)
		negVals := numericValues(neg, attr)
		for _, k := range numericThresholds(posVals, negVals) {
			lit := value.Real(k)
			atoms = append(atoms, Atom{Var: attr, Op: LE, Lit: lit})
			atoms = append(atoms, Atom{Var: attr, Op: GE, Lit: lit})
		}
	}
	for _, attr := range catAttrs {
		posVals := stringValues(pos, attr)
		negVals := stringValues(neg, attr)
		for _, c := range topFrequent(append(posVals, negVals...), categoricalTop) {
			atoms = append(atoms, Atom{Var: attr, Op: EQ, Lit: value.Str(c)})
		}
	}
	return atoms
}

func numericValues(examples []Example, attr string) []float64 {
	var out []float64
	for _, e := range examples {
		v, ok := e[attr]
		if !ok || v.IsMissing() {
			continue
		}
		f, ok := v.AsFloat64()
		if ok {
			out = append(out, f)
		}
	}
	return out
}

func stringValues(examples []Example, attr string) []string {
	var out []string
	for _, e := range examples {
		v, ok := e[attr]
		if !ok || v.IsMissing() {
			continue
		}
		out = append(out, v.AsString())
	}
	return out
}

// numericThresholds builds the candidate k values for one numeric
// attribute: midpoints of disjoint pos/neg ranges, each group's
// min/max, each group's quartiles, and every distinct value when the
// combined cardinality is at most 10. Deduplicated, sorted, and capped
// to candidateCap evenly-spaced-by-index entries.
func numericThresholds(pos, neg []float64) []float64 {
	var cand []float64

	if len(pos) > 0 && len(neg) > 0 {
		posMin, posMax := minMax(pos)
		negMin, negMax := minMax(neg)
		switch {
		case posMax < negMin:
			cand = append(cand, (posMax+negMin)/2)
		case negMax < posMin:
			cand = append(cand, (negMax+posMin)/2)
		}
	}
	if len(pos) > 0 {
		lo, hi := minMax(pos)
		cand = append(cand, lo, hi)
		cand = append(cand, quartiles(pos)...)
	}
	if len(neg) > 0 {
		lo, hi := minMax(neg)
		cand = append(cand, lo, hi)
		cand = append(cand, quartiles(neg)...)
	}

	combined := dedupFloats(append(append([]float64{}, pos...), neg...))
	if len(combined) <= 10 {
		cand = append(cand, combined...)
	}

	cand = dedupFloats(cand)
	sort.Float64s(cand)
	return capEvenly(cand, candidateCap)
}

func minMax(xs []float64) (lo, hi float64) {
	lo, hi = xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}

func quartiles(xs []float64) []float64 {
	sorted := append([]float64{}, xs...)
	sort.Float64s(sorted)
	return []float64{
		percentile(sorted, 0.25),
		percentile(sorted, 0.50),
		percentile(sorted, 0.75),
	}
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	idx := p * float64(len(sorted)-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := idx - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func dedupFloats(xs []float64) []float64 {
	seen := make(map[float64]struct{}, len(xs))
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		out = append(out, x)
	}
	return out
}

// capEvenly returns xs unchanged if it already has at most n entries,
// otherwise n entries picked at evenly spaced indices (including the
// first and last), per spec.md §4.E's "pick 20 evenly spaced by index".
func capEvenly(xs []float64, n int) []float64 {
	if len(xs) <= n {
		return xs
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		idx := i * (len(xs) - 1) / (n - 1)
		out[i] = xs[idx]
	}
	return out
}

// topFrequent returns up to n values from vs ordered by descending
// frequency, ties broken by ascending value, matching the
// deterministic "most frequent" selection of spec.md §4.E.
func topFrequent(vs []string, n int) []string {
	counts := map[string]int{}
	for _, v := range vs {
		counts[v]++
	}
	distinct := make([]string, 0, len(counts))
	for v := range counts {
		distinct = append(distinct, v)
	}
	sort.Slice(distinct, func(i, j int) bool {
		if counts[distinct[i]] != counts[distinct[j]] {
			return counts[distinct[i]] > counts[distinct[j]]
		}
		return distinct[i] < distinct[j]
	})
	if len(distinct) > n {
		distinct = distinct[:n]
	}
	return distinct
}
