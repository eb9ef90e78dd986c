package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pbanos/bonsai"
	"github.com/pbanos/bonsai/dataset"
	"github.com/pbanos/bonsai/tree"
)

// trainCmdConfig holds the flags of the commands that grow a tree
// before using it.
type trainCmdConfig struct {
	*rootCmdConfig
	dataInput     string
	metadataInput string
	classFeature  string
	scorer        string
	maxDepth      int
	minSamples    int
}

func (tcc *trainCmdConfig) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&(tcc.dataInput), "input", "i", "", locationHelp+" with data to use to grow the tree (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(tcc.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the different features available on the input file (required)")
	cmd.PersistentFlags().StringVarP(&(tcc.classFeature), "class-feature", "c", "", "name of the discrete feature the generated tree should predict (required)")
	cmd.PersistentFlags().StringVarP(&(tcc.scorer), "score", "s", "label-normalized", "scoring used to choose splits, the following are valid: label-normalized, split-info")
	cmd.PersistentFlags().IntVar(&(tcc.maxDepth), "max-depth", 0, "depth at which nodes become leaves (defaults to 0: no limit)")
	cmd.PersistentFlags().IntVar(&(tcc.minSamples), "min-samples", 0, "number of samples below which nodes become leaves (defaults to 0: no limit)")
}

func (tcc *trainCmdConfig) Validate() error {
	if tcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if tcc.classFeature == "" {
		return fmt.Errorf("required class-feature flag was not set")
	}
	if tcc.maxDepth < 0 {
		return fmt.Errorf("max-depth cannot be negative")
	}
	if tcc.minSamples < 0 {
		return fmt.Errorf("min-samples cannot be negative")
	}
	_, err := bonsai.ParseScorer(tcc.scorer)
	return err
}

func (tcc *trainCmdConfig) strategy() (*bonsai.Strategy, error) {
	scorer, err := bonsai.ParseScorer(tcc.scorer)
	if err != nil {
		return nil, err
	}
	return &bonsai.Strategy{
		Scorer:     scorer,
		MaxDepth:   tcc.maxDepth,
		MinSamples: tcc.minSamples,
		Logger:     tcc.logger,
	}, nil
}

func (tcc *trainCmdConfig) schema() (*dataset.Schema, error) {
	return loadSchema(tcc.rootCmdConfig, tcc.metadataInput, tcc.classFeature)
}

// grow reads the training set and grows a tree from it, returning
// the tree and the set.
func (tcc *trainCmdConfig) grow(s *dataset.Schema) (*tree.Tree[string, float64, string], *dataset.Dataset[string, float64, string], error) {
	st, err := tcc.strategy()
	if err != nil {
		return nil, nil, err
	}
	rows, err := tcc.readRows(tcc.Context(), tcc.dataInput, s, false)
	if err != nil {
		return nil, nil, fmt.Errorf("reading training set: %w", err)
	}
	trainingSet := dataset.FromRows(rows)
	tcc.Logf("Growing tree from a set with %d samples and %d features to predict %s ...", trainingSet.Count(), len(s.Features), s.Label.Name())
	t, err := bonsai.Grow(tcc.Context(), trainingSet, s.Indices(), st)
	if err != nil {
		return nil, nil, fmt.Errorf("growing the tree: %w", err)
	}
	tcc.Logf("Done")
	return t, trainingSet, nil
}
