package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pbanos/bonsai/dataset"
)

type setCmdConfig struct {
	*rootCmdConfig
	setInput      string
	metadataInput string
	classFeature  string
	setOutput     string
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Manage sets of data",
		Long:  `Manage sets of data, dumping the input set into the output set`,
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
			output, err := config.openOutput(config.setOutput, s)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			defer output.Close()
			input, err := config.openInput(config.setInput, s, false)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			defer input.Close()
			count, err := config.copyRows(input, func(dataset.Row) dataset.Writer { return output })
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			config.Logf("Flushing output set...")
			err = output.Flush()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
			config.Logf("Done dumping %d samples", count)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.setInput), "input", "i", "", locationHelp+" with the input set (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the different features available on the input set (required)")
	cmd.PersistentFlags().StringVarP(&(config.classFeature), "class-feature", "c", "", "name of the discrete feature samples are labeled with (required)")
	cmd.PersistentFlags().StringVarP(&(config.setOutput), "output", "o", "", locationHelp+" to dump the output set (defaults to STDOUT in CSV)")
	cmd.AddCommand(splitCmd(config), describeCmd(config))
	return cmd
}

func (scc *setCmdConfig) Validate() error {
	if scc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if scc.classFeature == "" {
		return fmt.Errorf("required class-feature flag was not set")
	}
	return nil
}

func (scc *setCmdConfig) schema() (*dataset.Schema, error) {
	return loadSchema(scc.rootCmdConfig, scc.metadataInput, scc.classFeature)
}

/*
copyRows reads every row from the given reader and writes it on the
writer the route function returns for it. It returns the number of rows
written. Reading is cancelled on the first write error.
*/
func (scc *setCmdConfig) copyRows(input dataset.Reader, route func(dataset.Row) dataset.Writer) (int, error) {
	ctx, cancel := context.WithCancel(scc.Context())
	defer cancel()
	rows, errs := input.Read(ctx)
	var count int
	var err error
	for r := range rows {
		if err != nil {
			continue
		}
		if _, err = route(r).Write(ctx, []dataset.Row{r}); err != nil {
			cancel()
			continue
		}
		count++
	}
	readErr := <-errs
	if err != nil {
		return count, err
	}
	if readErr != nil {
		return count, fmt.Errorf("reading input set: %w", readErr)
	}
	return count, nil
}

type splitCmdConfig struct {
	*setCmdConfig
	splitOutput      string
	splitProbability int
	seed             int64
}

func splitCmd(setConfig *setCmdConfig) *cobra.Command {
	config := &splitCmdConfig{setCmdConfig: setConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set into two sets",
		Long:  `Split a set into an output set and a split set, for instance to get training and testing sets`,
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
			output, err := config.openOutput(config.setOutput, s)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			defer output.Close()
			splitOutput, err := config.openOutput(config.splitOutput, s)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			defer splitOutput.Close()
			input, err := config.openInput(config.setInput, s, false)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			defer input.Close()
			config.Logf("Splitting input set into output and split output sets...")
			var outputCount, splitCount int
			randomizer := rand.New(rand.NewSource(config.seed))
			_, err = config.copyRows(input, func(dataset.Row) dataset.Writer {
				if 100*randomizer.Float64() >= float64(config.splitProbability) {
					outputCount++
					return output
				}
				splitCount++
				return splitOutput
			})
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
			config.Logf("Flushing output set...")
			if err = output.Flush(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(7)
			}
			config.Logf("Flushing split set...")
			if err = splitOutput.Flush(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(8)
			}
			config.Logf("Done")
			config.Logf("Input set with %d samples was split into sets with %d and %d samples", outputCount+splitCount, outputCount, splitCount)
		},
	}
	cmd.Flags().IntVarP(&(config.splitProbability), "split-probability", "p", 20, "probability as percent integer that a sample of the set will be assigned to the split set")
	cmd.Flags().StringVarP(&(config.splitOutput), "split-output", "s", "", locationHelp+" to dump the split set (required)")
	cmd.Flags().Int64Var(&(config.seed), "seed", time.Now().UnixNano(), "seed for the random assignment of samples (defaults to the current time)")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if scc.splitOutput == "" {
		return fmt.Errorf("required split-output flag was not set")
	}
	if scc.splitOutput == scc.setOutput {
		return fmt.Errorf("output and split-output flags cannot point to the same set")
	}
	if scc.splitProbability <= 0 || scc.splitProbability > 100 {
		return fmt.Errorf("split-probability flag was set to an invalid value: it must be set to an integer between 1 and 100")
	}
	return scc.setCmdConfig.Validate()
}
