package bonsai

import (
	"cmp"
	"math"
	"slices"

	"github.com/pbanos/bonsai/dataset"
	"github.com/pbanos/bonsai/feature"
)

/*
Partition represents the split of a dataset's samples according to a
criterion into those satisfying it (below) and the rest (above), along
with the score the split obtained.
*/
type Partition[I comparable, V cmp.Ordered, L cmp.Ordered] struct {
	Criterion feature.Criterion[I, V]
	Split     Split
	Score     float64
}

/*
SplitOf takes a dataset and a criterion and returns the split the
criterion makes of the dataset's samples, with counts aligned to the
dataset's labels in ascending order.
*/
func SplitOf[I comparable, V cmp.Ordered, L cmp.Ordered](ds *dataset.Dataset[I, V, L], c feature.Criterion[I, V]) Split {
	positions := labelPositions(ds)
	sp := Split{Below: make([]int, len(positions)), Above: make([]int, len(positions))}
	for _, s := range ds.Samples() {
		if c.SatisfiedBy(s.Vector) {
			sp.Below[positions[s.Label]]++
		} else {
			sp.Above[positions[s.Label]]++
		}
	}
	return sp
}

/*
Evaluate takes a dataset, a criterion and a scorer and returns the score
of splitting the dataset with the criterion.
*/
func Evaluate[I comparable, V cmp.Ordered, L cmp.Ordered](ds *dataset.Dataset[I, V, L], c feature.Criterion[I, V], s Scorer) float64 {
	return s.Score(SplitOf(ds, c))
}

/*
bestPartition takes a dataset, the feature indices to consider and a
scorer, and returns the best scoring partition among the candidates made
of every index and every value observed for it in the dataset, used as
threshold. Ties are resolved in favour of the earliest index in the given
order, then of the lowest threshold. The result is nil if every candidate
is degenerate.
*/
func bestPartition[I comparable, V cmp.Ordered, L cmp.Ordered](ds *dataset.Dataset[I, V, L], indices []I, s Scorer) *Partition[I, V, L] {
	type entry struct {
		value V
		label int
	}
	positions := labelPositions(ds)
	counts := ds.CountLabels()
	totals := make([]int, len(positions))
	for l, i := range positions {
		totals[i] = counts[l]
	}
	var result *Partition[I, V, L]
	best := math.Inf(-1)
	entries := make([]entry, ds.Count())
	for _, idx := range indices {
		for i, smp := range ds.Samples() {
			entries[i] = entry{smp.Vector.ValueFor(idx), positions[smp.Label]}
		}
		slices.SortStableFunc(entries, func(a, b entry) int {
			return cmp.Compare(a.value, b.value)
		})
		below := make([]int, len(totals))
		for i := 0; i < len(entries); {
			threshold := entries[i].value
			sp := Split{Below: slices.Clone(below), Above: make([]int, len(totals))}
			for j := range totals {
				sp.Above[j] = totals[j] - below[j]
			}
			// NaN scores never compare greater
			if score := s.Score(sp); score > best {
				best = score
				result = &Partition[I, V, L]{Criterion: feature.NewCriterion(idx, threshold), Split: sp, Score: score}
			}
			for {
				below[entries[i].label]++
				i++
				if i == len(entries) || entries[i].value != threshold {
					break
				}
			}
		}
	}
	return result
}

func labelPositions[I comparable, V cmp.Ordered, L cmp.Ordered](ds *dataset.Dataset[I, V, L]) map[L]int {
	labels := ds.Labels()
	result := make(map[L]int, len(labels))
	for i, l := range labels {
		result[l] = i
	}
	return result
}
