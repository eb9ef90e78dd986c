package feature

import (
	"cmp"
	"fmt"
)

/*
Vector is the read-only capability a tree needs from an instance: the
value it holds for a given feature index.

ValueFor must be pure and total over the indices the tree was grown
with.
*/
type Vector[I comparable, V cmp.Ordered] interface {
	ValueFor(I) V
}

/*
Criterion represents the test an internal node of a tree applies to
a vector: whether its value for Index is strictly below Threshold.
Vectors satisfying the criterion go to the left subtree, the rest go
to the right one.
*/
type Criterion[I comparable, V cmp.Ordered] struct {
	Index     I
	Threshold V
}

/*
NewCriterion takes a feature index and a threshold and returns the
Criterion satisfied by vectors whose value for the index is below the
threshold.
*/
func NewCriterion[I comparable, V cmp.Ordered](index I, threshold V) Criterion[I, V] {
	return Criterion[I, V]{Index: index, Threshold: threshold}
}

/*
SatisfiedBy receives a vector and returns a boolean indicating if its
value for the criterion's index is strictly less than the threshold.
*/
func (c Criterion[I, V]) SatisfiedBy(v Vector[I, V]) bool {
	return v.ValueFor(c.Index) < c.Threshold
}

func (c Criterion[I, V]) String() string {
	return fmt.Sprintf("%v < %v", c.Index, c.Threshold)
}
