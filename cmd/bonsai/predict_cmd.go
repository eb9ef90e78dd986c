package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pbanos/bonsai/dataset"
	"github.com/pbanos/bonsai/dataset/inputsample"
	"github.com/pbanos/bonsai/feature"
	"github.com/pbanos/bonsai/tree"
)

type predictCmdConfig struct {
	trainCmdConfig
	samplesInput string
	output       string
}

type stdoutFeatureValueRequester struct {
	w io.Writer
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{trainCmdConfig: trainCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the class of samples",
		Long: `Grow a tree and use it to predict the class feature value for a sample answering a reduced set of questions about its features,
or for every sample on a CSV file when the samples flag is given`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			defer config.ContextCancelFunc()()
			s, err := config.schema()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			t, _, err := config.grow(s)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			if config.samplesInput == "" {
				label, err := predict(t, s, os.Stdin, stdoutFeatureValueRequester{os.Stdout})
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(4)
				}
				fmt.Printf("Predicted %s is %s\n", s.Label.Name(), label)
				return
			}
			err = config.predictSamples(t, s)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
		},
	}
	config.addFlags(cmd)
	cmd.PersistentFlags().StringVar(&(config.samplesInput), "samples", "", "path to a CSV file with samples lacking the class feature to predict it for (defaults to asking for the values of a single sample on STDIN)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", locationHelp+" to dump the samples along their predicted class (defaults to STDOUT in CSV)")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.samplesInput == "" && pcc.dataInput == "" {
		return fmt.Errorf("input flag is required to answer questions about a sample on STDIN")
	}
	if pcc.samplesInput != "" && backendFor(pcc.samplesInput) != csvBackend {
		return fmt.Errorf("samples flag must point to a CSV file")
	}
	return pcc.trainCmdConfig.Validate()
}

// predictSamples labels every sample in the samples file with the
// tree's prediction and dumps it into the output.
func (pcc *predictCmdConfig) predictSamples(t *tree.Tree[string, float64, string], s *dataset.Schema) error {
	rows, err := pcc.readRows(pcc.Context(), pcc.samplesInput, s, true)
	if err != nil {
		return fmt.Errorf("reading samples: %w", err)
	}
	for i := range rows {
		rows[i].Label = t.Decide(rows[i].Record)
	}
	output, err := pcc.openOutput(pcc.output, s)
	if err != nil {
		return err
	}
	defer output.Close()
	pcc.Logf("Dumping %d samples along their predictions...", len(rows))
	_, err = output.Write(pcc.Context(), rows)
	if err != nil {
		return err
	}
	return output.Flush()
}

func predict(t *tree.Tree[string, float64, string], s *dataset.Schema, r io.Reader, fvr inputsample.FeatureValueRequester) (string, error) {
	sample := inputsample.New(r, s.Features, fvr)
	label := t.Decide(sample)
	if err := sample.Err(); err != nil {
		return "", err
	}
	return label, nil
}

func (sfvr stdoutFeatureValueRequester) RequestValueFor(f feature.Feature) error {
	var err error
	switch f := f.(type) {
	case *feature.DiscreteFeature:
		_, err = fmt.Fprintf(sfvr.w, "Please provide the sample's %s:\n(valid values are %v)\n", f.Name(), f.AvailableValues())
	case *feature.ContinuousFeature:
		_, err = fmt.Fprintf(sfvr.w, "Please provide the sample's %s:\n(valid values are real numbers)\n", f.Name())
	default:
		return fmt.Errorf("unknown feature type %T", f)
	}
	return err
}

func (sfvr stdoutFeatureValueRequester) RejectValueFor(f feature.Feature, value string) error {
	var err error
	switch f := f.(type) {
	case *feature.DiscreteFeature:
		_, err = fmt.Fprintf(sfvr.w, "%s is not a valid value for the sample's %s. Please provide one of %v.\n", value, f.Name(), f.AvailableValues())
	case *feature.ContinuousFeature:
		_, err = fmt.Fprintf(sfvr.w, "%s is not a valid value for the sample's %s. Please provide a real number.\n", value, f.Name())
	default:
		return fmt.Errorf("unknown feature type %T", f)
	}
	return err
}
