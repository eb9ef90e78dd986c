package dataset

import (
	"fmt"
	"strconv"

	"github.com/pbanos/bonsai/feature"
)

/*
Record holds the encoded values of a sample's features keyed by feature
name. It implements feature.Vector with feature names as indices.
*/
type Record map[string]float64

// ValueFor returns the value of the record for the feature
// with the given name.
func (r Record) ValueFor(name string) float64 {
	return r[name]
}

/*
Row is a record along with its label, the unit in which samples are read
from and written to backends.
*/
type Row struct {
	Record Record
	Label  string
}

func (r Row) String() string {
	return fmt.Sprintf("[%v -> %s]", map[string]float64(r.Record), r.Label)
}

/*
FromRows takes a slice of rows and returns the dataset of samples they
represent.
*/
func FromRows(rows []Row) *Dataset[string, float64, string] {
	samples := make([]Sample[string, float64, string], 0, len(rows))
	for _, r := range rows {
		samples = append(samples, Sample[string, float64, string]{Vector: r.Record, Label: r.Label})
	}
	return newDataset(samples)
}

/*
Schema describes the samples of a dataset: the features used to predict
and the discrete label feature whose values are predicted.
*/
type Schema struct {
	Features []feature.Feature
	Label    *feature.DiscreteFeature
}

/*
NewSchema takes a slice of features and the name of one of them and
returns a schema that predicts that feature using the rest, in the order
they are given. An error is returned if the label feature is not
defined or is not discrete.
*/
func NewSchema(features []feature.Feature, label string) (*Schema, error) {
	s := &Schema{}
	for _, f := range features {
		if f.Name() != label {
			s.Features = append(s.Features, f)
			continue
		}
		df, ok := f.(*feature.DiscreteFeature)
		if !ok {
			return nil, fmt.Errorf("label feature %s must be discrete, got %T", label, f)
		}
		s.Label = df
	}
	if s.Label == nil {
		return nil, fmt.Errorf("label feature '%s' is not defined", label)
	}
	return s, nil
}

// Indices returns the names of the schema's features, which
// index the records of its rows.
func (s *Schema) Indices() []string {
	result := make([]string, 0, len(s.Features))
	for _, f := range s.Features {
		result = append(result, f.Name())
	}
	return result
}

// Columns returns the schema's features followed by its
// label feature.
func (s *Schema) Columns() []feature.Feature {
	result := make([]feature.Feature, 0, len(s.Features)+1)
	result = append(result, s.Features...)
	return append(result, s.Label)
}

/*
Parse takes a map of feature names to raw string values and returns the
row they represent or an error if a value is missing or invalid for its
feature.
*/
func (s *Schema) Parse(raw map[string]string) (Row, error) {
	record, err := s.ParseRecord(raw)
	if err != nil {
		return Row{}, err
	}
	label, ok := raw[s.Label.Name()]
	if !ok {
		return Row{}, fmt.Errorf("missing value for label feature %s", s.Label.Name())
	}
	if _, err := s.Label.Encode(label); err != nil {
		return Row{}, err
	}
	return Row{Record: record, Label: label}, nil
}

/*
ParseRecord works as Parse for samples whose label is unknown, ignoring
any value given for the label feature.
*/
func (s *Schema) ParseRecord(raw map[string]string) (Record, error) {
	record := make(Record, len(s.Features))
	for _, f := range s.Features {
		v, ok := raw[f.Name()]
		if !ok {
			return nil, fmt.Errorf("missing value for feature %s", f.Name())
		}
		ev, err := f.Encode(v)
		if err != nil {
			return nil, err
		}
		record[f.Name()] = ev
	}
	return record, nil
}

/*
ParseTyped works as Parse on values as returned by database drivers:
strings, byte slices, integers and floats.
*/
func (s *Schema) ParseTyped(raw map[string]interface{}) (Row, error) {
	strs := make(map[string]string, len(raw))
	for k, v := range raw {
		switch v := v.(type) {
		case nil:
			continue
		case string:
			strs[k] = v
		case []byte:
			strs[k] = string(v)
		case float64:
			strs[k] = strconv.FormatFloat(v, 'g', -1, 64)
		case float32:
			strs[k] = strconv.FormatFloat(float64(v), 'g', -1, 32)
		case int:
			strs[k] = strconv.Itoa(v)
		case int64:
			strs[k] = strconv.FormatInt(v, 10)
		default:
			return Row{}, fmt.Errorf("unexpected %T value for feature %s", v, k)
		}
	}
	return s.Parse(strs)
}

/*
Format takes a row and returns its raw string values keyed by feature
name, label included.
*/
func (s *Schema) Format(row Row) map[string]string {
	result := make(map[string]string, len(s.Features)+1)
	for _, f := range s.Features {
		result[f.Name()] = f.Decode(row.Record[f.Name()])
	}
	result[s.Label.Name()] = row.Label
	return result
}
