package dataset

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/pbanos/bonsai/feature"
)

/*
Sample is a training instance: a feature vector along with the label
it is known to have.
*/
type Sample[I comparable, V cmp.Ordered, L cmp.Ordered] struct {
	Vector feature.Vector[I, V]
	Label  L
}

/*
Dataset represents an immutable collection of samples.

Its Entropy method returns the entropy of the labels of its samples: a
measure of the disinformation we have on the classes of samples that belong to
it.

Its Labels method returns the set of uniq labels of samples belonging to the
dataset, in ascending order.

Its SubsetWith method takes a feature.Criterion and splits the dataset
into the samples that satisfy it and those that do not.
*/
type Dataset[I comparable, V cmp.Ordered, L cmp.Ordered] struct {
	samples     []Sample[I, V, L]
	labelCounts map[L]int
	labels      []L
	entropy     float64
}

/*
New takes a slice of samples and returns a dataset built with them.
The slice is copied, so later changes to it do not affect the dataset.
*/
func New[I comparable, V cmp.Ordered, L cmp.Ordered](samples []Sample[I, V, L]) *Dataset[I, V, L] {
	return newDataset(slices.Clone(samples))
}

func newDataset[I comparable, V cmp.Ordered, L cmp.Ordered](samples []Sample[I, V, L]) *Dataset[I, V, L] {
	ds := &Dataset[I, V, L]{samples: samples, labelCounts: make(map[L]int)}
	for _, s := range samples {
		ds.labelCounts[s.Label]++
	}
	ds.labels = sortedKeys(ds.labelCounts)
	ds.entropy = entropyOfCounts(ds.labels, ds.labelCounts)
	return ds
}

/*
Entropy takes a sequence of labels and returns the Shannon entropy in
bits of their distribution. It is 0 for an empty sequence or one with a
single distinct label.
*/
func Entropy[L cmp.Ordered](labels []L) float64 {
	counts := make(map[L]int)
	for _, l := range labels {
		counts[l]++
	}
	return entropyOfCounts(sortedKeys(counts), counts)
}

/*
CountsEntropy takes the number of occurrences of each label of a
multiset and returns the Shannon entropy in bits of their distribution.
Labels with no occurrences contribute nothing.
*/
func CountsEntropy(counts []int) float64 {
	var total int
	for _, c := range counts {
		total += c
	}
	var result float64
	if total == 0 {
		return result
	}
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(total)
		result -= p * math.Log2(p)
	}
	return result
}

// entropyOfCounts adds up the terms in the order of the given
// labels so the result does not depend on map iteration.
func entropyOfCounts[L comparable](labels []L, counts map[L]int) float64 {
	ordered := make([]int, 0, len(labels))
	for _, l := range labels {
		ordered = append(ordered, counts[l])
	}
	return CountsEntropy(ordered)
}

// Count returns the number of samples in the dataset.
func (ds *Dataset[I, V, L]) Count() int {
	return len(ds.samples)
}

// Samples returns the samples in the dataset. The returned
// slice must not be modified.
func (ds *Dataset[I, V, L]) Samples() []Sample[I, V, L] {
	return ds.samples
}

// Entropy returns the entropy of the labels in the dataset.
func (ds *Dataset[I, V, L]) Entropy() float64 {
	return ds.entropy
}

// Labels returns the distinct labels in the dataset in
// ascending order.
func (ds *Dataset[I, V, L]) Labels() []L {
	return slices.Clone(ds.labels)
}

// CountLabels returns the number of samples in the dataset
// for each of its labels.
func (ds *Dataset[I, V, L]) CountLabels() map[L]int {
	result := make(map[L]int, len(ds.labelCounts))
	for l, c := range ds.labelCounts {
		result[l] = c
	}
	return result
}

// Pure returns whether all samples in the dataset share
// the same label. An empty dataset is pure.
func (ds *Dataset[I, V, L]) Pure() bool {
	return len(ds.labels) <= 1
}

/*
Majority returns the most frequent label in the dataset and true, or the
zero label and false for an empty dataset. Ties are broken in favour of
the smallest label.
*/
func (ds *Dataset[I, V, L]) Majority() (L, bool) {
	var result L
	best := 0
	for _, l := range ds.labels {
		if c := ds.labelCounts[l]; c > best {
			result = l
			best = c
		}
	}
	return result, best > 0
}

/*
FeatureValues takes a feature index and returns the distinct values the
samples in the dataset take for it, in ascending order.
*/
func (ds *Dataset[I, V, L]) FeatureValues(idx I) []V {
	values := make([]V, 0, len(ds.samples))
	for _, s := range ds.samples {
		values = append(values, s.Vector.ValueFor(idx))
	}
	slices.Sort(values)
	return slices.Compact(values)
}

/*
SubsetWith takes a criterion and returns two datasets: the one with the
samples satisfying it and the one with the rest. Samples keep their
relative order.
*/
func (ds *Dataset[I, V, L]) SubsetWith(c feature.Criterion[I, V]) (*Dataset[I, V, L], *Dataset[I, V, L]) {
	var below, above []Sample[I, V, L]
	for _, s := range ds.samples {
		if c.SatisfiedBy(s.Vector) {
			below = append(below, s)
		} else {
			above = append(above, s)
		}
	}
	return newDataset(below), newDataset(above)
}

func (ds *Dataset[I, V, L]) String() string {
	return fmt.Sprintf("[ %v ]", ds.Count())
}

func sortedKeys[L cmp.Ordered](counts map[L]int) []L {
	keys := make([]L, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
