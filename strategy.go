package bonsai

import (
	"fmt"
	"math"
	"strings"

	"github.com/pbanos/bonsai/dataset"
)

// Strategy holds the configuration for how a tree
// is grown.
type Strategy struct {
	// Scorer rates the candidate splits of a node. The
	// candidate with the highest score is chosen.
	// LabelNormalizedGainRatio is used if nil.
	Scorer
	// MaxDepth, if positive, is the depth at which
	// nodes become leaves regardless of their samples.
	MaxDepth int
	// MinSamples, if positive, is the number of samples
	// below which nodes become leaves.
	MinSamples int
	// Logger, if set, receives progress messages.
	Logger Logger
}

// Logger is an interface wrapping the Logf method, which
// takes a format and arguments as fmt.Printf does.
type Logger interface {
	Logf(format string, a ...interface{})
}

// DefaultStrategy returns the strategy with the default
// scorer and no limits other than label purity.
func DefaultStrategy() *Strategy {
	return &Strategy{Scorer: LabelNormalizedGainRatio()}
}

func (s *Strategy) scorer() Scorer {
	if s == nil || s.Scorer == nil {
		return LabelNormalizedGainRatio()
	}
	return s.Scorer
}

func (s *Strategy) logf(format string, a ...interface{}) {
	if s != nil && s.Logger != nil {
		s.Logger.Logf(format, a...)
	}
}

// stop returns whether a node at the given depth with the given
// number of samples must become a leaf because of the strategy limits.
func (s *Strategy) stop(depth, count int) bool {
	if s == nil {
		return false
	}
	return (s.MaxDepth > 0 && depth >= s.MaxDepth) || (s.MinSamples > 0 && count < s.MinSamples)
}

/*
Split holds the number of samples of a node that a split candidate
sends to each side, per label. Both slices are aligned, position i
holding the counts of the node's i-th label in ascending order.
*/
type Split struct {
	Below []int
	Above []int
}

// Degenerate returns whether the split leaves one of its
// sides empty.
func (sp Split) Degenerate() bool {
	return sum(sp.Below) == 0 || sum(sp.Above) == 0
}

/*
Scorer is an interface wrapping the Score method, that rates how good
a split is to tell the labels of a node's samples apart.

The Score method takes a split and returns its score. Degenerate splits
must be scored math.Inf(-1).
*/
type Scorer interface {
	Score(Split) float64
}

/*
ScorerFunc wraps a function with the Score method signature to implement
the Scorer interface
*/
type ScorerFunc func(Split) float64

// Score invokes the ScorerFunc with the given split to
// return its score.
func (sf ScorerFunc) Score(sp Split) float64 {
	return sf(sp)
}

/*
LabelNormalizedGainRatio returns a Scorer whose Score method evaluates the
conditional entropy of a split as

	cond = -Σ p(L) x log2 p(L)   with p(L) = below(L) / total(L)

for every label L with total(L) > 0, and returns its reduction normalized
by the entropy H of the node's labels

	(H - cond) / H

which is 1 for a split that sends every label entirely to one side. For
nodes whose samples share a label H is 0 and the score is 0.
*/
func LabelNormalizedGainRatio() Scorer {
	return ScorerFunc(func(sp Split) float64 {
		if sp.Degenerate() {
			return math.Inf(-1)
		}
		totals := make([]int, len(sp.Below))
		for i := range totals {
			totals[i] = sp.Below[i] + sp.Above[i]
		}
		h := dataset.CountsEntropy(totals)
		if h == 0 {
			return 0
		}
		var cond float64
		for i, total := range totals {
			if total == 0 {
				continue
			}
			p := float64(sp.Below[i]) / float64(total)
			if p > 0 {
				cond -= p * math.Log2(p)
			}
		}
		return (h - cond) / h
	})
}

/*
SplitInfoGainRatio returns a Scorer whose Score method evaluates the C4.5
gain ratio of a split: the information gain

	H(S) - |Sb|/|S| x H(Sb) - |Sa|/|S| x H(Sa)

divided by the split information, the entropy of the proportion of
samples sent to each side.
*/
func SplitInfoGainRatio() Scorer {
	return ScorerFunc(func(sp Split) float64 {
		if sp.Degenerate() {
			return math.Inf(-1)
		}
		totals := make([]int, len(sp.Below))
		for i := range totals {
			totals[i] = sp.Below[i] + sp.Above[i]
		}
		nb, na := float64(sum(sp.Below)), float64(sum(sp.Above))
		n := nb + na
		gain := dataset.CountsEntropy(totals) - nb/n*dataset.CountsEntropy(sp.Below) - na/n*dataset.CountsEntropy(sp.Above)
		return gain / dataset.CountsEntropy([]int{sum(sp.Below), sum(sp.Above)})
	})
}

/*
ParseScorer takes the name of a scorer and returns it, or an error if the
name is unknown. Known names are "label-normalized" (also the empty
string) and "split-info".
*/
func ParseScorer(name string) (Scorer, error) {
	switch strings.ToLower(name) {
	case "", "label-normalized":
		return LabelNormalizedGainRatio(), nil
	case "split-info":
		return SplitInfoGainRatio(), nil
	}
	return nil, fmt.Errorf("unknown scorer %q: expected label-normalized or split-info", name)
}

func sum(counts []int) int {
	var result int
	for _, c := range counts {
		result += c
	}
	return result
}
