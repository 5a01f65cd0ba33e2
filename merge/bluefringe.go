package merge

import (
	"sort"

	"github.com/katalvlaran/flowmine/compat"
	"github.com/katalvlaran/flowmine/pta"
)

// BlueFringe runs the blue-fringe merge over tree's nodes and returns
// the resulting StateMap (frozen, path-compressed — ready for guard
// synthesis), per spec.md §4.D.
//
// red starts as {root}; blue starts as root's direct children. While
// blue is non-empty, the lowest-ID blue node b is tested against every
// red node in ascending-ID order; the first compatible red node r
// absorbs b (merge(r, b)), and b's reparented grandchildren re-enter
// blue. If no red node is compatible, b itself is promoted to red and
// its direct children enter blue. Determinism follows spec.md §4.D's
// explicit requirement: both red and blue are iterated in ascending-ID
// order, never map order.
func BlueFringe(tree *pta.Tree, attrs []compat.Attr, theta float64) (*StateMap, error) {
	sm := NewStateMap(tree.NodeCount())
	root := tree.Root()

	red := []int{root}
	blue, err := childIDs(tree, root)
	if err != nil {
		return nil, err
	}

	for len(blue) > 0 {
		sort.Ints(blue)
		b := blue[0]
		blue = blue[1:]

		sortedRed := append([]int(nil), red...)
		sort.Ints(sortedRed)

		merged := false
		for _, r := range sortedRed {
			un, err := tree.Node(r)
			if err != nil {
				return nil, err
			}
			bn, err := tree.Node(b)
			if err != nil {
				return nil, err
			}
			if !compat.Compatible(un, bn, attrs, theta) {
				continue
			}
			fresh, err := mergeInto(tree, sm, r, b)
			if err != nil {
				return nil, err
			}
			blue = append(blue, fresh...)
			merged = true
			break
		}
		if merged {
			continue
		}

		red = append(red, b)
		children, err := childIDs(tree, b)
		if err != nil {
			return nil, err
		}
		blue = append(blue, children...)
	}

	sm.Compress()
	sm.Freeze()
	return sm, nil
}

// childIDs returns the direct children of node id, sorted ascending.
func childIDs(tree *pta.Tree, id int) ([]int, error) {
	node, err := tree.Node(id)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(node.Children))
	for _, child := range node.Children {
		out = append(out, child)
	}
	sort.Ints(out)
	return out, nil
}

// mergeInto folds drop into keep (the original's merge_states): for
// each of drop's outgoing labels, if keep already has that label the
// corresponding children are recursively folded together; otherwise
// drop's child is reparented directly under keep and returned as a
// freshly-reachable node for the blue frontier. Edge-sample buffers
// are concatenated and the accepting flags OR'd. Labels are visited in
// sorted order for determinism.
func mergeInto(tree *pta.Tree, sm *StateMap, keep, drop int) ([]int, error) {
	keepNode, err := tree.Node(keep)
	if err != nil {
		return nil, err
	}
	dropNode, err := tree.Node(drop)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(dropNode.Children))
	for label := range dropNode.Children {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var fresh []int
	for _, label := range labels {
		child := dropNode.Children[label]
		if keepChild, ok := keepNode.Children[label]; ok {
			nested, err := mergeInto(tree, sm, keepChild, child)
			if err != nil {
				return nil, err
			}
			fresh = append(fresh, nested...)
		} else {
			keepNode.Children[label] = child
			fresh = append(fresh, child)
		}
	}

	for label, samples := range dropNode.EdgeSamples {
		keepNode.EdgeSamples[label] = append(keepNode.EdgeSamples[label], samples...)
	}
	keepNode.Accepting = keepNode.Accepting || dropNode.Accepting

	if err := sm.Union(keep, drop); err != nil {
		return nil, err
	}
	return fresh, nil
}
