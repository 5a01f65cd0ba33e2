// Package compat implements the state-compatibility test of spec
// component C: whether two PTA nodes' outgoing-edge attribute samples
// are similar enough, under a divergence threshold, to be merge
// candidates.
//
// Grounded on the original's state_merger.py
// (compute_attribute_divergence, are_states_compatible): categorical
// attributes are compared by Jensen-Shannon distance over their
// value-count distributions, numeric attributes by a normalized
// mean-gap; the worst per-attribute average divergence gates the
// threshold.
package compat

import (
	"math"

	"github.com/katalvlaran/flowmine/pta"
	"github.com/katalvlaran/flowmine/value"
)

// AttrKind tells Compatible how to compare one attribute's samples.
type AttrKind int

const (
	// AttrNumeric compares via normalized mean-gap.
	AttrNumeric AttrKind = iota
	// AttrCategorical compares via Jensen-Shannon distance.
	AttrCategorical
)

// Attr names one attribute to compare and how to compare it.
type Attr struct {
	Name string
	Kind AttrKind
}

// Compatible reports whether nodes u and v are merge candidates under
// divergence threshold theta, per spec.md §4.C:
//
//  1. Compatibility is evaluated only over outgoing labels common to
//     both u and v; if there are none, the nodes are incompatible.
//  2. For each attribute and each common label, divergence is computed
//     between u's and v's edge-sample distributions for that label,
//     then averaged across labels.
//  3. If any attribute's averaged divergence exceeds theta, the nodes
//     are incompatible.
func Compatible(u, v *pta.Node, attrs []Attr, theta float64) bool {
	common := commonLabels(u, v)
	if len(common) == 0 {
		return false
	}

	for _, attr := range attrs {
		var sum float64
		var n int
		for _, label := range common {
			d, ok := attributeDivergence(u.EdgeSamples[label], v.EdgeSamples[label], attr)
			if !ok {
				// No samples for this attribute under this label on
				// either side: skipped, per spec.md §4.C edge case.
				continue
			}
			sum += d
			n++
		}
		if n == 0 {
			continue
		}
		if sum/float64(n) > theta {
			return false
		}
	}
	return true
}

func commonLabels(u, v *pta.Node) []string {
	var out []string
	for label := range u.EdgeSamples {
		if _, ok := v.EdgeSamples[label]; ok {
			out = append(out, label)
		}
	}
	return out
}

// attributeDivergence computes the divergence between the attr-th
// values observed in samplesU and samplesV. ok is false if neither side
// has any non-missing observation of attr.
func attributeDivergence(samplesU, samplesV []map[string]value.Value, attr Attr) (div float64, ok bool) {
	switch attr.Kind {
	case AttrCategorical:
		return categoricalDivergence(samplesU, samplesV, attr.Name)
	default:
		return numericDivergence(samplesU, samplesV, attr.Name)
	}
}

func collectStrings(samples []map[string]value.Value, attr string) []string {
	var out []string
	for _, s := range samples {
		v, ok := s[attr]
		if !ok || v.IsMissing() {
			continue
		}
		out = append(out, v.AsString())
	}
	return out
}

func collectNumeric(samples []map[string]value.Value, attr string) []float64 {
	var out []float64
	for _, s := range samples {
		v, ok := s[attr]
		if !ok || v.IsMissing() {
			continue
		}
		f, ok := v.AsFloat64()
		if !ok {
			continue
		}
		out = append(out, f)
	}
	return out
}

// categoricalDivergence builds two probability vectors over the union
// of observed values and returns their Jensen-Shannon distance
// (base-2, range [0,1]).
func categoricalDivergence(samplesU, samplesV []map[string]value.Value, attr string) (float64, bool) {
	us := collectStrings(samplesU, attr)
	vs := collectStrings(samplesV, attr)
	if len(us) == 0 && len(vs) == 0 {
		return 0, false
	}

	counts := func(xs []string) map[string]int {
		m := map[string]int{}
		for _, x := range xs {
			m[x]++
		}
		return m
	}
	cu, cv := counts(us), counts(vs)

	universe := map[string]struct{}{}
	for k := range cu {
		universe[k] = struct{}{}
	}
	for k := range cv {
		universe[k] = struct{}{}
	}

	p := make([]float64, 0, len(universe))
	q := make([]float64, 0, len(universe))
	for k := range universe {
		p = append(p, float64(cu[k])/float64(max(1, len(us))))
		q = append(q, float64(cv[k])/float64(max(1, len(vs))))
	}
	return jensenShannonDistance(p, q), true
}

// numericDivergence is |mean_u - mean_v| / max(range_u, range_v, 1),
// clamped to [0,1].
func numericDivergence(samplesU, samplesV []map[string]value.Value, attr string) (float64, bool) {
	us := collectNumeric(samplesU, attr)
	vs := collectNumeric(samplesV, attr)
	if len(us) == 0 && len(vs) == 0 {
		return 0, false
	}
	meanU, rangeU := meanAndRange(us)
	meanV, rangeV := meanAndRange(vs)

	denom := math.Max(rangeU, math.Max(rangeV, 1))
	d := math.Abs(meanU-meanV) / denom
	return math.Min(1, math.Max(0, d)), true
}

func meanAndRange(xs []float64) (mean, rng float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	min, max := xs[0], xs[0]
	var sum float64
	for _, x := range xs {
		sum += x
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	return sum / float64(len(xs)), max - min
}

// jensenShannonDistance computes the base-2 Jensen-Shannon distance
// (the square root of the JS divergence) between two probability
// vectors of equal length, clamped to [0,1].
func jensenShannonDistance(p, q []float64) float64 {
	m := make([]float64, len(p))
	for i := range p {
		m[i] = (p[i] + q[i]) / 2
	}
	div := 0.5*klDivergence(p, m) + 0.5*klDivergence(q, m)
	if div < 0 {
		div = 0
	}
	d := math.Sqrt(div)
	if d > 1 {
		d = 1
	}
	return d
}

func klDivergence(p, m []float64) float64 {
	var sum float64
	for i := range p {
		if p[i] == 0 {
			continue
		}
		sum += p[i] * math.Log2(p[i]/m[i])
	}
	return sum
}
