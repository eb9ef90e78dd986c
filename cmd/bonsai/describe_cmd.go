package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/spf13/cobra"

	"github.com/pbanos/bonsai/dataset"
	"github.com/pbanos/bonsai/feature"
)

// labelCounter is implemented by sets able to count the samples
// per label without reading them.
type labelCounter interface {
	CountLabels(context.Context) (map[string]int, error)
}

func describeCmd(setConfig *setCmdConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Describe a set",
		Long:  `Print summary statistics of the features of a set and the number of samples per label`,
		Run: func(cmd *cobra.Command, args []string) {
			err := setConfig.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			defer setConfig.ContextCancelFunc()()
			s, err := setConfig.schema()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			input, err := setConfig.openInput(setConfig.setInput, s, false)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			defer input.Close()
			rows, err := dataset.ReadAll(setConfig.Context(), input)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading input set: %v\n", err)
				os.Exit(4)
			}
			var counts map[string]int
			if lc, ok := input.Reader.(labelCounter); ok {
				setConfig.Logf("Counting labels on the set backend...")
				counts, err = lc.CountLabels(setConfig.Context())
				if err != nil {
					fmt.Fprintf(os.Stderr, "counting labels: %v\n", err)
					os.Exit(5)
				}
			} else {
				counts = dataset.FromRows(rows).CountLabels()
			}
			err = describe(os.Stdout, s, rows, counts)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
		},
	}
}

/*
frame takes a schema and rows and returns a dataframe with a column per
schema column. Continuous features become float columns and the rest
string columns holding the discrete values.
*/
func frame(s *dataset.Schema, rows []dataset.Row) dataframe.DataFrame {
	columns := s.Columns()
	types := make(map[string]series.Type, len(columns))
	header := make([]string, len(columns))
	for i, f := range columns {
		header[i] = f.Name()
		types[f.Name()] = series.String
		if _, ok := f.(*feature.ContinuousFeature); ok {
			types[f.Name()] = series.Float
		}
	}
	records := [][]string{header}
	for _, r := range rows {
		raw := s.Format(r)
		record := make([]string, len(header))
		for i, name := range header {
			record[i] = raw[name]
		}
		records = append(records, record)
	}
	return dataframe.LoadRecords(records, dataframe.DetectTypes(false), dataframe.WithTypes(types))
}

func describe(w io.Writer, s *dataset.Schema, rows []dataset.Row, counts map[string]int) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "The set is empty")
		return err
	}
	df := frame(s, rows)
	if df.Err != nil {
		return fmt.Errorf("building dataframe: %w", df.Err)
	}
	if _, err := fmt.Fprintf(w, "%d samples with %d features\n%v\n", df.Nrow(), len(s.Features), df.Describe()); err != nil {
		return err
	}
	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	for _, l := range labels {
		if _, err := fmt.Fprintf(w, "%s=%s: %d samples\n", s.Label.Name(), l, counts[l]); err != nil {
			return err
		}
	}
	return nil
}
