package tree

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"github.com/pbanos/bonsai/dataset"
	"github.com/pbanos/bonsai/feature"
)

// ErrStopTraversal can be returned by the function passed
// to Traverse to stop it without Traverse returning an error.
var ErrStopTraversal = errors.New("stop traversal")

/*
Tree represents a binary decision tree. Once built it is never
modified, so it can be shared by concurrent readers without further
synchronization.

Nodes are addressed by their ID, with the root node having ID 0.
*/
type Tree[I comparable, V cmp.Ordered, L cmp.Ordered] struct {
	nodes []Node[I, V, L]
}

// Root returns the root node of the tree.
func (t *Tree[I, V, L]) Root() Node[I, V, L] {
	return t.nodes[0]
}

// Node takes an ID and returns the node with that ID and
// true, or false if the tree has no such node.
func (t *Tree[I, V, L]) Node(id int) (Node[I, V, L], bool) {
	if id < 0 || id >= len(t.nodes) {
		return Node[I, V, L]{}, false
	}
	return t.nodes[id], true
}

// Len returns the number of nodes in the tree.
func (t *Tree[I, V, L]) Len() int {
	return len(t.nodes)
}

/*
Decide takes a feature vector and returns the label the tree predicts for
it. Starting at the root, each internal node sends the vector to its left
child if its value for the node's index is strictly less than the node's
threshold and to the right child otherwise, until a leaf is reached.
*/
func (t *Tree[I, V, L]) Decide(v feature.Vector[I, V]) L {
	n := &t.nodes[0]
	for !n.Leaf {
		if n.Criterion.SatisfiedBy(v) {
			n = &t.nodes[n.Left]
		} else {
			n = &t.nodes[n.Right]
		}
	}
	return n.Label
}

// Depth returns the number of edges in the longest path
// from the root to a leaf.
func (t *Tree[I, V, L]) Depth() int {
	depths := make([]int, len(t.nodes))
	var result int
	// nodes are laid out parents first
	for i, n := range t.nodes {
		if n.Leaf {
			result = max(result, depths[i])
			continue
		}
		depths[n.Left] = depths[i] + 1
		depths[n.Right] = depths[i] + 1
	}
	return result
}

// Leaves returns the number of leaves in the tree.
func (t *Tree[I, V, L]) Leaves() int {
	var result int
	for _, n := range t.nodes {
		if n.Leaf {
			result++
		}
	}
	return result
}

/*
Traverse takes a bottomup boolean and an error-returning function that
takes a node and goes through the tree calling the function for every
node. The function is called with a parent node before its children if
bottomup is false, and after them if bottomup is true. Left subtrees
are visited before right ones.

If the function returns an error the traversal is aborted and the error
returned, unless it is ErrStopTraversal, in which case nil is returned.
*/
func (t *Tree[I, V, L]) Traverse(bottomup bool, f func(Node[I, V, L]) error) error {
	type frame struct {
		id      int
		visited bool
	}
	stack := []frame{{id: 0}}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[fr.id]
		if n.Leaf || fr.visited == bottomup {
			if err := f(n); err != nil {
				if err == ErrStopTraversal {
					return nil
				}
				return err
			}
		}
		if n.Leaf || fr.visited {
			continue
		}
		if bottomup {
			stack = append(stack, frame{id: fr.id, visited: true})
		}
		stack = append(stack, frame{id: n.Right}, frame{id: n.Left})
	}
	return nil
}

/*
Test takes a dataset and returns the rate of its samples for which the
tree predicts their label. An empty dataset has a rate of 0.
*/
func (t *Tree[I, V, L]) Test(ds *dataset.Dataset[I, V, L]) float64 {
	if ds.Count() == 0 {
		return 0.0
	}
	var hits int
	for _, s := range ds.Samples() {
		if t.Decide(s.Vector) == s.Label {
			hits++
		}
	}
	return float64(hits) / float64(ds.Count())
}

func (t *Tree[I, V, L]) String() string {
	return t.subtreeString(0)
}

func (t *Tree[I, V, L]) subtreeString(id int) string {
	n := t.nodes[id]
	var b strings.Builder
	fmt.Fprintf(&b, "[%d]\n", id)
	if n.Leaf {
		fmt.Fprintf(&b, "{ %v (%d) }\n \n", n.Label, n.Weight)
		return b.String()
	}
	fmt.Fprintf(&b, "{ %v }\n|\n", n.Criterion)
	children := n.Children()
	for i, childID := range children {
		for j, line := range strings.Split(t.subtreeString(childID), "\n") {
			if len(line) == 0 {
				continue
			}
			switch {
			case j == 0:
				fmt.Fprintf(&b, "|__%s\n", line)
			case i == len(children)-1:
				fmt.Fprintf(&b, "   %s\n", line)
			default:
				fmt.Fprintf(&b, "|  %s\n", line)
			}
		}
	}
	return b.String()
}
