// Package eventlog holds the canonical in-memory log representation —
// Event, Trace, and the per-attribute domain/propagation analysis of
// spec component A — that every downstream package (pta, guard, efsm)
// consumes. Reading XES or CSV into this shape is outside the core, per
// spec.md §6 ("the log reader ... is external to the core"); eventlog
// only defines the contract and the domain-inference math.
package eventlog

import (
	"errors"
	"sort"

	"github.com/katalvlaran/flowmine/value"
)

var (
	// ErrEmptyTrace is returned by InferDomains/DetectPropagation when
	// called with no traces at all — there is nothing to infer from.
	ErrEmptyTrace = errors.New("eventlog: no traces supplied")

	// ErrInputFormat marks a log source that could not be parsed into
	// Trace/Event form (unknown extension, malformed XES/CSV). It is
	// one of the two error kinds spec.md §7 allows to reach the CLI
	// boundary unrecovered.
	ErrInputFormat = errors.New("eventlog: unreadable or unrecognised log format")
)

// Event is one occurrence of an activity, with its attribute snapshot.
type Event struct {
	Activity string
	Attrs    map[string]value.Value
}

// Trace is an ordered sequence of Events belonging to one case.
type Trace []Event

// Dtype classifies an attribute's inferred type, per spec.md §4.A.
type Dtype int

const (
	// DtypeInt: every non-null value observed is an integer and none
	// is boolean.
	DtypeInt Dtype = iota
	// DtypeFloat: every non-null value is numeric (int or real), but
	// not all are integral.
	DtypeFloat
	// DtypeCat: every value is a string and the distinct-value
	// cardinality is at most 20.
	DtypeCat
	// DtypeString: none of the above; excluded from guard candidates.
	DtypeString
)

// String renders the Dtype name.
func (d Dtype) String() string {
	switch d {
	case DtypeInt:
		return "int"
	case DtypeFloat:
		return "float"
	case DtypeCat:
		return "cat"
	case DtypeString:
		return "string"
	default:
		return "unknown"
	}
}

// PropagationClass classifies how stable an attribute's value tends to
// be within a trace, per spec.md §4.A.
type PropagationClass int

const (
	// Persistent: aggregated persistence ratio >= 0.7.
	Persistent PropagationClass = iota
	// Sometimes: aggregated persistence ratio > 0.3 and < 0.7.
	Sometimes
	// Transient: aggregated persistence ratio <= 0.3.
	Transient
)

// String renders the PropagationClass name.
func (p PropagationClass) String() string {
	switch p {
	case Persistent:
		return "persistent"
	case Sometimes:
		return "sometimes"
	case Transient:
		return "transient"
	default:
		return "unknown"
	}
}

// AttributeDomain summarizes one attribute's observed values across an
// entire log: its inferred type, numeric range/quartiles where
// applicable, the distinct categorical values where applicable, and
// its propagation class.
type AttributeDomain struct {
	Name       string
	Dtype      Dtype
	Min        float64
	Max        float64
	Quartiles  [3]float64
	Values     []string // sorted, distinct; populated only for DtypeCat
	Propagated PropagationClass
}

// catCardinalityLimit is the distinct-value ceiling at or below which an
// all-string attribute is classified categorical instead of free-text,
// per spec.md §4.A.
const catCardinalityLimit = 20

// sortedDistinct returns the sorted, de-duplicated contents of vs.
func sortedDistinct(vs []string) []string {
	seen := make(map[string]struct{}, len(vs))
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
