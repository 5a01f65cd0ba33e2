package eventlog

// detectPropagationFor computes the propagation class of a single
// attribute across the corpus, per spec.md §4.A: walk each trace in
// order, and for every occurrence of the attribute after its first in
// that trace, count whether its value equals the immediately preceding
// occurrence's value. The aggregated ratio (equal / total-with-a-
// predecessor) classifies the attribute.
func detectPropagationFor(traces []Trace, attr string) PropagationClass {
	var same, total int

	for _, tr := range traces {
		var prev string
		havePrev := false
		for _, ev := range tr {
			v, ok := ev.Attrs[attr]
			if !ok || v.IsMissing() {
				continue
			}
			cur := v.AsString()
			if havePrev {
				total++
				if cur == prev {
					same++
				}
			}
			prev = cur
			havePrev = true
		}
	}

	if total == 0 {
		return Transient
	}
	ratio := float64(same) / float64(total)
	switch {
	case ratio >= 0.7:
		return Persistent
	case ratio > 0.3:
		return Sometimes
	default:
		return Transient
	}
}

// DetectPropagation computes the propagation class for every attribute
// named in attrs, independent of InferDomains (exposed separately per
// spec.md §4.A, which treats it as its own operation).
func DetectPropagation(traces []Trace, attrs []string) (map[string]PropagationClass, error) {
	if len(traces) == 0 {
		return nil, ErrEmptyTrace
	}
	out := make(map[string]PropagationClass, len(attrs))
	for _, a := range attrs {
		out[a] = detectPropagationFor(traces, a)
	}
	return out, nil
}
