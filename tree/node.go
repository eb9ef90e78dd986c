package tree

import (
	"cmp"

	"github.com/pbanos/bonsai/feature"
)

/*
Node is a node of the tree, either a leaf or an internal node with
exactly two children.
*/
type Node[I comparable, V cmp.Ordered, L cmp.Ordered] struct {
	// An ID to identify the node in its tree
	ID int
	// Whether the node is a leaf
	Leaf bool
	// The label predicted for samples reaching the node. For internal
	// nodes it is the majority label of their training samples.
	Label L
	// The number of training samples that reached the node
	Weight int
	// The test internal nodes apply to samples: those satisfying it
	// continue on the Left subtree, the rest on the Right one.
	Criterion feature.Criterion[I, V]
	// The IDs of the children of an internal node
	Left, Right int
}

// Children returns the IDs of the node's children,
// left first, or nil for a leaf.
func (n Node[I, V, L]) Children() []int {
	if n.Leaf {
		return nil
	}
	return []int{n.Left, n.Right}
}
