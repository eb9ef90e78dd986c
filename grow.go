package bonsai

import (
	"cmp"
	"context"
	"fmt"

	"github.com/pbanos/bonsai/dataset"
	"github.com/pbanos/bonsai/queue"
	"github.com/pbanos/bonsai/tree"
)

// task is the pending development of a node of the tree
// with the samples that reached it.
type task[I comparable, V cmp.Ordered, L cmp.Ordered] struct {
	nodeID  int
	dataset *dataset.Dataset[I, V, L]
	depth   int
}

/*
Grow takes a context, a training dataset, the feature indices that can
be used to split it and a strategy, and returns a tree grown from the
dataset, or an error.

Nodes are developed in breadth-first order. A node becomes a leaf
predicting the majority label of its samples when they all share a
label, when the strategy limits are reached or when no candidate split
sends samples to both sides. Otherwise it becomes an internal node with
the best scoring split according to the strategy's scorer, and both
subsets of samples are developed as its children.

An InputError is returned if the dataset has no samples or if a node
with samples of different labels has no indices to split on. If the
context is done before growing completes, its error is returned.
A nil strategy is equivalent to DefaultStrategy().
*/
func Grow[I comparable, V cmp.Ordered, L cmp.Ordered](ctx context.Context, ds *dataset.Dataset[I, V, L], indices []I, s *Strategy) (*tree.Tree[I, V, L], error) {
	if ds.Count() == 0 {
		return nil, ErrEmptyTrainingSet
	}
	scorer := s.scorer()
	store := tree.NewStore[I, V, L]()
	root := &tree.Node[I, V, L]{}
	store.Create(root)
	q := queue.New[*task[I, V, L]]()
	q.Push(&task[I, V, L]{nodeID: root.ID, dataset: ds})
	for {
		t, ok := q.Pull()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := develop(store, q, t, indices, scorer, s); err != nil {
			return nil, err
		}
	}
	s.logf("Tree grown with %d nodes", store.Len())
	return store.Tree(root.ID)
}

// develop turns the node of the given task into a leaf or into an
// internal node, creating its children and queueing their tasks.
func develop[I comparable, V cmp.Ordered, L cmp.Ordered](store *tree.Store[I, V, L], q *queue.Queue[*task[I, V, L]], t *task[I, V, L], indices []I, scorer Scorer, s *Strategy) error {
	n, ok := store.Get(t.nodeID)
	if !ok {
		return fmt.Errorf("developing node %d: node not found", t.nodeID)
	}
	n.Label, _ = t.dataset.Majority()
	n.Weight = t.dataset.Count()
	n.Leaf = true
	if t.dataset.Pure() || s.stop(t.depth, t.dataset.Count()) {
		s.logf("Node %d at depth %d is a leaf predicting %v for %d samples", n.ID, t.depth, n.Label, n.Weight)
		return store.Store(&n)
	}
	if len(indices) == 0 {
		return fmt.Errorf("developing node %d: %w", n.ID, ErrNoCandidates)
	}
	p := bestPartition(t.dataset, indices, scorer)
	if p == nil || p.Split.Degenerate() {
		s.logf("Node %d at depth %d has no useful split, so it is a leaf predicting %v for %d samples", n.ID, t.depth, n.Label, n.Weight)
		return store.Store(&n)
	}
	below, above := t.dataset.SubsetWith(p.Criterion)
	if below.Count() == 0 || above.Count() == 0 {
		return store.Store(&n)
	}
	left := &tree.Node[I, V, L]{}
	store.Create(left)
	right := &tree.Node[I, V, L]{}
	store.Create(right)
	n.Leaf = false
	n.Criterion = p.Criterion
	n.Left, n.Right = left.ID, right.ID
	s.logf("Node %d at depth %d split on %v with score %g (%d/%d samples)", n.ID, t.depth, p.Criterion, p.Score, below.Count(), above.Count())
	q.Push(&task[I, V, L]{nodeID: left.ID, dataset: below, depth: t.depth + 1})
	q.Push(&task[I, V, L]{nodeID: right.ID, dataset: above, depth: t.depth + 1})
	return store.Store(&n)
}
