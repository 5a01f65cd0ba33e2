// Package merge implements the blue-fringe state merger of spec
// component D: it folds compatible PTA nodes together into the
// smaller set of EFSM states, tracked by a union-find StateMap.
//
// Grounded on the original's state_merger.py (blue_fringe_merge,
// merge_states); the union-find-with-path-compression representation
// follows spec.md §9's own suggestion and the teacher's general
// preference for id-indexed maps over pointer graphs.
package merge

import (
	"errors"
	"sort"
)

// ErrFrozen is returned by Union once the StateMap has been frozen —
// spec.md §3's lifecycle rule that the state map must not change once
// guard synthesis begins.
var ErrFrozen = errors.New("merge: state map is frozen")

// StateMap is a union-find over prefix-tree node IDs, mapping each
// node to the representative of its merge-equivalence class.
type StateMap struct {
	parent []int
	frozen bool
}

// NewStateMap returns a StateMap over n elements, each initially its
// own representative.
func NewStateMap(n int) *StateMap {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return &StateMap{parent: p}
}

// Find returns the representative of id's equivalence class, applying
// path compression (halving) along the way.
func (s *StateMap) Find(id int) int {
	for s.parent[id] != id {
		s.parent[id] = s.parent[s.parent[id]]
		id = s.parent[id]
	}
	return id
}

// Union merges drop's equivalence class into keep's. A no-op if they
// are already in the same class. Returns ErrFrozen if the map has
// been frozen.
func (s *StateMap) Union(keep, drop int) error {
	if s.frozen {
		return ErrFrozen
	}
	kr, dr := s.Find(keep), s.Find(drop)
	if kr == dr {
		return nil
	}
	s.parent[dr] = kr
	return nil
}

// Freeze prevents any further Union calls, per spec.md §3's
// frozen-before-guard-synthesis rule.
func (s *StateMap) Freeze() { s.frozen = true }

// Frozen reports whether Freeze has been called.
func (s *StateMap) Frozen() bool { return s.frozen }

// Compress walks every element to its fixed point and rewrites parent
// pointers directly to it — the explicit path-compression pass
// spec.md §4.D runs after the merge loop completes. After Compress,
// distinct Find(id) values are exactly the final EFSM state IDs.
func (s *StateMap) Compress() {
	for id := range s.parent {
		s.parent[id] = s.Find(id)
	}
}

// States returns the sorted, deduplicated set of representative IDs —
// the final EFSM states, one per merge-equivalence class.
func (s *StateMap) States() []int {
	s.Compress()
	seen := make(map[int]struct{})
	var out []int
	for id := range s.parent {
		r := s.Find(id)
		if _, ok := seen[r]; !ok {
			seen[r] = struct{}{}
			out = append(out, r)
		}
	}
	sort.Ints(out)
	return out
}
