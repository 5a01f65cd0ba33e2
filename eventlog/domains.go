package eventlog

import (
	"sort"

	"github.com/katalvlaran/flowmine/value"
)

// InferDomains walks every trace and produces one AttributeDomain per
// attribute name observed anywhere in the log, applying the dtype
// classification rules of spec.md §4.A in order: all-integer-non-bool
// wins over all-numeric, which wins over all-string-low-cardinality,
// which falls back to free-text string.
func InferDomains(traces []Trace) (map[string]*AttributeDomain, error) {
	if len(traces) == 0 {
		return nil, ErrEmptyTrace
	}

	numeric := map[string][]float64{}
	allInt := map[string]bool{}
	strings := map[string][]string{}
	seenNumeric := map[string]bool{}
	seenString := map[string]bool{}
	order := []string{}
	known := map[string]bool{}

	record := func(name string) {
		if !known[name] {
			known[name] = true
			order = append(order, name)
			allInt[name] = true
		}
	}

	for _, tr := range traces {
		for _, ev := range tr {
			for name, v := range ev.Attrs {
				if v.IsMissing() {
					continue
				}
				record(name)
				switch v.Kind() {
				case value.KindInt:
					n, _ := v.AsInt64()
					numeric[name] = append(numeric[name], float64(n))
					seenNumeric[name] = true
				case value.KindReal:
					f, _ := v.AsFloat64()
					numeric[name] = append(numeric[name], f)
					seenNumeric[name] = true
					allInt[name] = false
				default:
					// Bool and Str (and anything non-numeric) count
					// against both the "all numeric" and "all string"
					// buckets depending on kind.
					strings[name] = append(strings[name], v.AsString())
					seenString[name] = true
					allInt[name] = false
				}
			}
		}
	}

	domains := make(map[string]*AttributeDomain, len(order))
	for _, name := range order {
		dom := &AttributeDomain{Name: name}

		switch {
		case seenNumeric[name] && !seenString[name] && allInt[name]:
			dom.Dtype = DtypeInt
			fillNumeric(dom, numeric[name])
		case seenNumeric[name] && !seenString[name]:
			dom.Dtype = DtypeFloat
			fillNumeric(dom, numeric[name])
		case !seenNumeric[name] && seenString[name]:
			distinct := sortedDistinct(strings[name])
			if len(distinct) <= catCardinalityLimit {
				dom.Dtype = DtypeCat
				dom.Values = distinct
			} else {
				dom.Dtype = DtypeString
			}
		default:
			// Mixed numeric/string observations for the same
			// attribute name: not representable as a single typed
			// guard variable, so it falls through to free text.
			dom.Dtype = DtypeString
		}

		dom.Propagated = detectPropagationFor(traces, name)
		domains[name] = dom
	}

	return domains, nil
}

func fillNumeric(dom *AttributeDomain, xs []float64) {
	if len(xs) == 0 {
		return
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	dom.Min = sorted[0]
	dom.Max = sorted[len(sorted)-1]
	dom.Quartiles = [3]float64{
		percentile(sorted, 0.25),
		percentile(sorted, 0.50),
		percentile(sorted, 0.75),
	}
}

// percentile computes the p-th percentile of a pre-sorted slice via
// linear interpolation between closest ranks, matching pandas' default
// quantile method closely enough for guard-threshold purposes.
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
