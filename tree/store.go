package tree

import (
	"cmp"
	"fmt"
)

// StructureError represents an error on the structure of
// the nodes a tree is made of
type StructureError string

// ErrMalformedTree is the error returned when freezing a
// store whose nodes do not form a binary tree.
const ErrMalformedTree = StructureError("nodes do not form a binary tree")

func (se StructureError) Error() string {
	return string(se)
}

/*
Store is the arena where the nodes of a tree are created and updated
while it is grown. Nodes are identified by their position on the
arena.

A Store is not safe for concurrent use. Once the tree is grown, use
the Tree method to obtain the immutable tree.
*/
type Store[I comparable, V cmp.Ordered, L cmp.Ordered] struct {
	nodes []Node[I, V, L]
}

// NewStore returns an empty Store
func NewStore[I comparable, V cmp.Ordered, L cmp.Ordered]() *Store[I, V, L] {
	return &Store[I, V, L]{}
}

// Create takes a node and stores it for the first time
// in the store, setting its ID.
func (s *Store[I, V, L]) Create(n *Node[I, V, L]) {
	n.ID = len(s.nodes)
	s.nodes = append(s.nodes, *n)
}

// Store takes a node already existing in the store and
// updates it on the store. It returns an error if there
// is no node with its ID.
func (s *Store[I, V, L]) Store(n *Node[I, V, L]) error {
	if n.ID < 0 || n.ID >= len(s.nodes) {
		return fmt.Errorf("storing node %d: node not found", n.ID)
	}
	s.nodes[n.ID] = *n
	return nil
}

// Get takes an id and returns a copy of the node with
// that id and true, or false if it cannot be found.
func (s *Store[I, V, L]) Get(id int) (Node[I, V, L], bool) {
	if id < 0 || id >= len(s.nodes) {
		return Node[I, V, L]{}, false
	}
	return s.nodes[id], true
}

// Len returns the number of nodes in the store.
func (s *Store[I, V, L]) Len() int {
	return len(s.nodes)
}

/*
Tree takes the ID of the root node and returns the tree made of the
nodes reachable from it, or an error if those nodes do not form a
binary tree: an internal node missing a child, or a node reachable
twice. The returned tree keeps its own copy of the nodes, so the
store can be discarded.
*/
func (s *Store[I, V, L]) Tree(rootID int) (*Tree[I, V, L], error) {
	if _, ok := s.Get(rootID); !ok {
		return nil, fmt.Errorf("root node %d: %w", rootID, ErrMalformedTree)
	}
	ids := make(map[int]int, len(s.nodes))
	var order []int
	stack := []int{rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := ids[id]; seen {
			return nil, fmt.Errorf("node %d reached twice: %w", id, ErrMalformedTree)
		}
		n, ok := s.Get(id)
		if !ok {
			return nil, fmt.Errorf("node %d not found: %w", id, ErrMalformedTree)
		}
		ids[id] = len(order)
		order = append(order, id)
		if !n.Leaf {
			stack = append(stack, n.Right, n.Left)
		}
	}
	nodes := make([]Node[I, V, L], 0, len(order))
	for _, id := range order {
		n := s.nodes[id]
		n.ID = ids[id]
		if !n.Leaf {
			n.Left, n.Right = ids[n.Left], ids[n.Right]
		}
		nodes = append(nodes, n)
	}
	return &Tree[I, V, L]{nodes: nodes}, nil
}
