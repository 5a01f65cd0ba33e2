// Package pta builds the prefix-tree acceptor of spec component B: one
// node per observed prefix of activity labels, with an edge-sample
// buffer of attribute dictionaries per outgoing label.
//
// Per spec.md §9's recommendation to prefer "an arena of nodes +
// integer indices over a graph of pointers", nodes live in a flat
// slice keyed by int ID, and the diagnostic walks spec.md §9 restores
// from the original (reachable-state listing, future-label listing)
// are small recursive walks directly over that arena — ported from
// the original's get_reachable_states/get_future_labels — rather than
// a general-purpose graph traversal over a separately maintained
// mirror.
package pta

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/flowmine/eventlog"
	"github.com/katalvlaran/flowmine/value"
)

// ErrNoSuchNode is returned by lookups given an out-of-range node ID.
var ErrNoSuchNode = errors.New("pta: no such node")

// Node is one prefix-tree state: the set of labels it has ever seen
// leaving it, the samples gathered per label, and whether any ingested
// trace ended exactly here.
type Node struct {
	ID        int
	Depth     int
	Accepting bool

	// Children maps an activity label to the ID of the node reached by
	// following that label from this node.
	Children map[string]int

	// EdgeSamples maps an activity label to every attribute dictionary
	// observed on an edge under that label leaving this node, in
	// ingestion order — mirrors the original's per-edge defaultdict of
	// lists.
	EdgeSamples map[string][]map[string]value.Value
}

func newNode(id, depth int) *Node {
	return &Node{
		ID:          id,
		Depth:       depth,
		Children:    make(map[string]int),
		EdgeSamples: make(map[string][]map[string]value.Value),
	}
}

// Tree is the prefix-tree acceptor: an arena of Nodes indexed by ID.
type Tree struct {
	nodes []*Node
	root  int
}

// New returns an empty Tree with a single root node.
func New() *Tree {
	t := &Tree{}
	t.allocate(0)
	return t
}

func (t *Tree) allocate(depth int) int {
	id := len(t.nodes)
	t.nodes = append(t.nodes, newNode(id, depth))
	return id
}

// Root returns the ID of the tree's root node.
func (t *Tree) Root() int { return t.root }

// Node returns the node with the given ID.
func (t *Tree) Node(id int) (*Node, error) {
	if id < 0 || id >= len(t.nodes) {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchNode, id)
	}
	return t.nodes[id], nil
}

// NodeCount reports how many nodes the tree currently holds.
func (t *Tree) NodeCount() int { return len(t.nodes) }

// AddTrace ingests one trace: starting at the root, for each event in
// order, appends its attributes to the current node's edge-sample
// buffer for that label, descends (allocating a new child node on
// first use of that label), and marks the final node accepting.
//
// Matches pta.py's PTA.add_trace exactly, including the
// create-on-first-use buffer semantics (spec.md §4.B).
func (t *Tree) AddTrace(tr eventlog.Trace) error {
	cur := t.root
	for _, ev := range tr {
		node := t.nodes[cur]
		node.EdgeSamples[ev.Activity] = append(node.EdgeSamples[ev.Activity], ev.Attrs)

		child, ok := node.Children[ev.Activity]
		if !ok {
			child = t.allocate(node.Depth + 1)
			node.Children[ev.Activity] = child
		}
		cur = child
	}
	t.nodes[cur].Accepting = true
	return nil
}

// ReachableFrom lists every node ID reachable from start, including
// start itself — a port of the original's get_reachable_states.
func (t *Tree) ReachableFrom(start int) ([]int, error) {
	if start < 0 || start >= len(t.nodes) {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchNode, start)
	}
	out := []int{start}
	var walk func(id int)
	walk = func(id int) {
		node := t.nodes[id]
		for _, child := range node.Children {
			out = append(out, child)
			walk(child)
		}
	}
	walk(start)
	return out, nil
}

// FutureLabels lists every activity label that appears anywhere in the
// subtree rooted at start — a port of the original's get_future_labels.
func (t *Tree) FutureLabels(start int) ([]string, error) {
	ids, err := t.ReachableFrom(start)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	var labels []string
	for _, id := range ids {
		for label := range t.nodes[id].EdgeSamples {
			if _, ok := seen[label]; !ok {
				seen[label] = struct{}{}
				labels = append(labels, label)
			}
		}
	}
	return labels, nil
}

// Build ingests every trace in traces into a fresh Tree, in order.
func Build(traces []eventlog.Trace) (*Tree, error) {
	t := New()
	for _, tr := range traces {
		if err := t.AddTrace(tr); err != nil {
			return nil, err
		}
	}
	return t, nil
}
