package bonsai

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/pbanos/bonsai/dataset"
)

type point []float64

func (p point) ValueFor(i int) float64 {
	return p[i]
}

func samples(pairs ...interface{}) []dataset.Sample[int, float64, int] {
	var result []dataset.Sample[int, float64, int]
	for i := 0; i < len(pairs); i += 2 {
		result = append(result, dataset.Sample[int, float64, int]{Vector: pairs[i].(point), Label: pairs[i+1].(int)})
	}
	return result
}

func exampleSet() *dataset.Dataset[int, float64, int] {
	return dataset.New(samples(
		point{0.1}, 1,
		point{0.2}, 1,
		point{0.9}, 2,
		point{0.95}, 2,
	))
}

func dataset5() *dataset.Dataset[int, float64, int] {
	return dataset.New(samples(
		point{1, 5, 0}, 0,
		point{2, 4, 0}, 1,
		point{3, 3, 0}, 0,
		point{4, 2, 0}, 1,
		point{5, 1, 0}, 1,
	))
}

func TestGrowSeparatesExample(t *testing.T) {
	for name, scorer := range map[string]Scorer{
		"label-normalized": LabelNormalizedGainRatio(),
		"split-info":       SplitInfoGainRatio(),
	} {
		tr, err := Grow(context.Background(), exampleSet(), []int{0}, &Strategy{Scorer: scorer})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if tr.Depth() != 1 || tr.Len() != 3 {
			t.Fatalf("%s: expected a depth 1 tree with 3 nodes, got\n%v", name, tr)
		}
		root := tr.Root()
		if root.Criterion.Index != 0 || root.Criterion.Threshold != 0.9 {
			t.Errorf("%s: expected root criterion 0 < 0.9, got %v", name, root.Criterion)
		}
		left, _ := tr.Node(root.Left)
		right, _ := tr.Node(root.Right)
		if !left.Leaf || left.Label != 1 || !right.Leaf || right.Label != 2 {
			t.Errorf("%s: expected Leaf(1) below and Leaf(2) above, got\n%v", name, tr)
		}
	}
}

func TestGrowSingleLabel(t *testing.T) {
	for _, n := range []int{1, 2, 17} {
		var s []dataset.Sample[int, float64, int]
		for i := 0; i < n; i++ {
			s = append(s, dataset.Sample[int, float64, int]{Vector: point{float64(i), float64(-i)}, Label: 7})
		}
		tr, err := Grow(context.Background(), dataset.New(s), []int{0, 1}, nil)
		if err != nil {
			t.Fatal(err)
		}
		if tr.Len() != 1 || !tr.Root().Leaf || tr.Root().Label != 7 || tr.Root().Weight != n {
			t.Errorf("expected a single Leaf(7) for %d samples, got\n%v", n, tr)
		}
	}
}

func TestGrowConstantFeatureFallsBackToMajority(t *testing.T) {
	ds := dataset.New(samples(
		point{1}, 3,
		point{1}, 2,
		point{1}, 2,
		point{1}, 3,
		point{1}, 4,
	))
	tr, err := Grow(context.Background(), ds, []int{0}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Len() != 1 || tr.Root().Label != 2 {
		t.Errorf("expected a single Leaf(2), got\n%v", tr)
	}
}

func TestGrowSeparableSetHasNoTrainingError(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	var s []dataset.Sample[int, float64, int]
	for i := 0; i < 200; i++ {
		p := point{r.Float64(), r.Float64(), r.Float64()}
		label := 0
		if p[1] >= 0.3 {
			label = 1
		}
		if p[1] >= 0.3 && p[2] >= 0.6 {
			label = 2
		}
		s = append(s, dataset.Sample[int, float64, int]{Vector: p, Label: label})
	}
	ds := dataset.New(s)
	tr, err := Grow(context.Background(), ds, []int{0, 1, 2}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if rate := tr.Test(ds); rate != 1.0 {
		t.Errorf("expected no training error, got success rate %v", rate)
	}
	for _, smp := range s {
		if tr.Decide(smp.Vector) != tr.Decide(smp.Vector) {
			t.Fatalf("Decide is not idempotent for %v", smp.Vector)
		}
	}
}

func TestGrowIsDeterministic(t *testing.T) {
	ds := dataset5()
	first, err := Grow(context.Background(), ds, []int{0, 1, 2}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		tr, err := Grow(context.Background(), ds, []int{0, 1, 2}, nil)
		if err != nil {
			t.Fatal(err)
		}
		if tr.String() != first.String() {
			t.Fatalf("trees differ:\n%v\n%v", first, tr)
		}
	}
}

func TestGrowTieBreaksOnEarliestIndex(t *testing.T) {
	// both features separate the labels perfectly
	ds := dataset.New(samples(
		point{0, 10}, 1,
		point{1, 20}, 2,
	))
	tr, err := Grow(context.Background(), ds, []int{1, 0}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if c := tr.Root().Criterion; c.Index != 1 || c.Threshold != 20 {
		t.Errorf("expected root criterion 1 < 20, got %v", c)
	}
}

func TestGrowLimits(t *testing.T) {
	ds := dataset.New(samples(
		point{1}, 0,
		point{2}, 1,
		point{3}, 0,
		point{4}, 1,
		point{5}, 0,
	))
	tr, err := Grow(context.Background(), ds, []int{0}, &Strategy{MaxDepth: 1})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Depth() > 1 {
		t.Errorf("expected depth at most 1, got\n%v", tr)
	}
	tr, err = Grow(context.Background(), ds, []int{0}, &Strategy{MinSamples: 6})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Len() != 1 || tr.Root().Label != 0 {
		t.Errorf("expected a single Leaf(0), got\n%v", tr)
	}
	tr, err = Grow(context.Background(), ds, []int{0}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Test(ds) != 1.0 {
		t.Errorf("expected an unlimited tree to fit its training set, got\n%v", tr)
	}
}

func TestGrowErrors(t *testing.T) {
	_, err := Grow(context.Background(), dataset.New[int, float64, int](nil), []int{0}, nil)
	if err != ErrEmptyTrainingSet || !IsInvalidInput(err) {
		t.Errorf("expected ErrEmptyTrainingSet, got %v", err)
	}
	_, err = Grow(context.Background(), exampleSet(), nil, nil)
	if !errors.Is(err, ErrNoCandidates) || !IsInvalidInput(err) {
		t.Errorf("expected ErrNoCandidates, got %v", err)
	}
	pure := dataset.New(samples(point{1}, 1, point{2}, 1))
	if _, err = Grow(context.Background(), pure, nil, nil); err != nil {
		t.Errorf("expected a pure set without indices to grow a leaf, got %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tr, err := Grow(ctx, exampleSet(), []int{0}, nil)
	if err != context.Canceled || tr != nil {
		t.Errorf("expected context.Canceled and no tree, got %v and %v", err, tr)
	}
	if IsInvalidInput(errors.New("other")) {
		t.Error("IsInvalidInput accepted an unrelated error")
	}
}

type recordingLogger []string

func (rl *recordingLogger) Logf(format string, a ...interface{}) {
	*rl = append(*rl, format)
}

func TestGrowLogs(t *testing.T) {
	rl := &recordingLogger{}
	if _, err := Grow(context.Background(), exampleSet(), []int{0}, &Strategy{Logger: rl}); err != nil {
		t.Fatal(err)
	}
	// one split, two leaves and the summary
	if len(*rl) != 4 {
		t.Errorf("expected 4 log lines, got %d: %v", len(*rl), *rl)
	}
}
