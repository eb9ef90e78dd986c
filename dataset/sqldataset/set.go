package sqldataset

import (
	"context"
	"fmt"

	"github.com/pbanos/bonsai/dataset"
	"github.com/pbanos/bonsai/feature"
)

/*
Set is a set of samples stored on a database through an Adapter.
It implements both dataset.Reader and dataset.Writer.
*/
type Set struct {
	db                  Adapter
	schema              *dataset.Schema
	featureNamesColumns map[string]string
	columnFeatures      map[string]feature.Feature
	dfColumns           []string
	cfColumns           []string
}

/*
Open takes a context, an Adapter to a db backend and a schema and returns
a Set backed by the given adapter or an error. The samples table is
expected to exist already.
*/
func Open(ctx context.Context, dbAdapter Adapter, s *dataset.Schema) (*Set, error) {
	ss := &Set{db: dbAdapter, schema: s}
	err := ss.initFeatureColumns()
	if err != nil {
		return nil, err
	}
	if _, err = ss.Count(ctx); err != nil {
		return nil, fmt.Errorf("opening samples table: %w", err)
	}
	return ss, nil
}

/*
Create takes a context, an Adapter and a schema and returns a Set backed
by the given adapter or an error. The samples table is created on the
database if it does not exist.
*/
func Create(ctx context.Context, dbAdapter Adapter, s *dataset.Schema) (*Set, error) {
	ss := &Set{db: dbAdapter, schema: s}
	err := ss.initFeatureColumns()
	if err != nil {
		return nil, err
	}
	err = ss.db.CreateSampleTable(ctx, ss.dfColumns, ss.cfColumns)
	if err != nil {
		return nil, err
	}
	return ss, nil
}

// Count returns the number of samples in the set.
func (ss *Set) Count(ctx context.Context) (int, error) {
	return ss.db.CountSamples(ctx)
}

// Read reads the samples in the set, sending them on the
// returned channel.
func (ss *Set) Read(ctx context.Context) (<-chan dataset.Row, <-chan error) {
	return dataset.Stream(ctx, func(emit func(dataset.Row) bool) error {
		return ss.db.IterateOnSamples(ctx, ss.dfColumns, ss.cfColumns, func(n int, rs map[string]interface{}) (bool, error) {
			raw := make(map[string]interface{}, len(rs))
			for c, v := range rs {
				raw[ss.columnFeatures[c].Name()] = v
			}
			row, err := ss.schema.ParseTyped(raw)
			if err != nil {
				return false, fmt.Errorf("parsing sample %d: %w", n+1, err)
			}
			return emit(row), nil
		})
	})
}

// Write adds the given rows to the set, returning the number
// of them written.
func (ss *Set) Write(ctx context.Context, rows []dataset.Row) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	rawSamples := make([]map[string]interface{}, 0, len(rows))
	for _, r := range rows {
		rawSamples = append(rawSamples, ss.newRawSample(r))
	}
	return ss.db.AddSamples(ctx, rawSamples, ss.dfColumns, ss.cfColumns)
}

// Flush returns nil, as writes are not buffered.
func (ss *Set) Flush() error {
	return nil
}

func (ss *Set) newRawSample(r dataset.Row) map[string]interface{} {
	rs := make(map[string]interface{})
	for _, f := range ss.schema.Features {
		column := ss.featureNamesColumns[f.Name()]
		if _, ok := f.(*feature.DiscreteFeature); ok {
			rs[column] = f.Decode(r.Record.ValueFor(f.Name()))
		} else {
			rs[column] = r.Record.ValueFor(f.Name())
		}
	}
	rs[ss.featureNamesColumns[ss.schema.Label.Name()]] = r.Label
	return rs
}

func (ss *Set) initFeatureColumns() error {
	ss.columnFeatures = make(map[string]feature.Feature)
	ss.featureNamesColumns = make(map[string]string)
	for _, f := range ss.schema.Columns() {
		column, err := ss.db.ColumnName(f.Name())
		if err != nil {
			return fmt.Errorf("invalid feature %s: %w", f.Name(), err)
		}
		of, ok := ss.columnFeatures[column]
		if ok {
			return fmt.Errorf("%s and %s feature names translate to the same column name %s", f.Name(), of.Name(), column)
		}
		ss.columnFeatures[column] = f
		ss.featureNamesColumns[f.Name()] = column
		if _, ok := f.(*feature.DiscreteFeature); ok {
			ss.dfColumns = append(ss.dfColumns, column)
		} else {
			ss.cfColumns = append(ss.cfColumns, column)
		}
	}
	return nil
}
