package repo

import "github.com/dcgit/gitlet/pkg/object"

// ancestorDepth records how a commit was first reached during a
// breadth-first walk: its distance from the walk's root and the order in
// which it was discovered, used to break depth ties deterministically.
type ancestorDepth struct {
	depth int
	order int
}

// ancestorDepths walks every ancestor of start (following both parent1 and
// parent2) breadth-first, recording each commit's depth and discovery
// order.
func (r *Repo) ancestorDepths(start object.Hash) (map[object.Hash]ancestorDepth, error) {
	depths := map[object.Hash]ancestorDepth{start: {depth: 0, order: 0}}
	type queueItem struct {
		id    object.Hash
		depth int
	}
	queue := []queueItem{{start, 0}}
	order := 0

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		c, err := r.Store.ReadCommit(item.id)
		if err != nil {
			return nil, err
		}
		for _, p := range [2]object.Hash{c.Parent1, c.Parent2} {
			if p == "" {
				continue
			}
			if _, seen := depths[p]; seen {
				continue
			}
			order++
			depths[p] = ancestorDepth{depth: item.depth + 1, order: order}
			queue = append(queue, queueItem{p, item.depth + 1})
		}
	}
	return depths, nil
}

// SplitPoint finds the latest common ancestor of current and other: the
// commit reachable from both that has minimum depth on the current side,
// ties broken by which was discovered first in current's breadth-first
// traversal. Returns "" if the two commits share no ancestor.
func (r *Repo) SplitPoint(current, other object.Hash) (object.Hash, error) {
	if current == other {
		return current, nil
	}
	currentDepths, err := r.ancestorDepths(current)
	if err != nil {
		return "", err
	}
	otherDepths, err := r.ancestorDepths(other)
	if err != nil {
		return "", err
	}

	var best object.Hash
	var bestDepth, bestOrder int
	found := false
	for id, d := range currentDepths {
		if _, ok := otherDepths[id]; !ok {
			continue
		}
		if !found || d.depth < bestDepth || (d.depth == bestDepth && d.order < bestOrder) {
			best, bestDepth, bestOrder, found = id, d.depth, d.order, true
		}
	}
	if !found {
		return "", nil
	}
	return best, nil
}
