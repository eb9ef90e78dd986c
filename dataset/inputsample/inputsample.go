/*
Package inputsample provides a feature vector whose values are read
from an io.Reader as they are needed.
*/
package inputsample

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pbanos/bonsai/dataset"
	"github.com/pbanos/bonsai/feature"
)

/*
Sample represents a sample whose feature values are retrieved from a
reader. A feature value will be requested using a FeatureValueRequester
before reading it, and only the values a tree asks for are read.

Sample implements feature.Vector[string, float64]. As the ValueFor
method cannot return errors, the first error found is kept and returned
by the Err method, and ValueFor returns 0 from then on.
*/
type Sample struct {
	obtainedValues        dataset.Record
	scanner               *bufio.Scanner
	featureValueRequester FeatureValueRequester
	features              map[string]feature.Feature
	err                   error
}

/*
FeatureValueRequester represents a way to ask
for feature values and reject the given values.
*/
type FeatureValueRequester interface {
	RequestValueFor(feature.Feature) error
	RejectValueFor(feature.Feature, string) error
}

/*
New takes an io.Reader, a slice of features and a FeatureValueRequester
and returns a Sample.

The returned Sample ValueFor method reads feature values first
requesting them with the given FeatureValueRequester and then parsing
the values from the reader. Each value is expected on its own line.
Lines are read until one with a valid value for the feature is found,
rejecting the invalid ones with the FeatureValueRequester's
RejectValueFor method.
*/
func New(r io.Reader, features []feature.Feature, featureValueRequester FeatureValueRequester) *Sample {
	byName := make(map[string]feature.Feature, len(features))
	for _, f := range features {
		byName[f.Name()] = f
	}
	return &Sample{
		obtainedValues:        make(dataset.Record),
		scanner:               bufio.NewScanner(r),
		featureValueRequester: featureValueRequester,
		features:              byName,
	}
}

// ValueFor returns the encoded value of the sample for the
// feature with the given name, reading it if not read before.
func (rs *Sample) ValueFor(name string) float64 {
	if rs.err != nil {
		return 0
	}
	if value, ok := rs.obtainedValues[name]; ok {
		return value
	}
	value, err := rs.read(name)
	if err != nil {
		rs.err = err
		return 0
	}
	rs.obtainedValues[name] = value
	return value
}

// Err returns the first error found reading values, if any.
func (rs *Sample) Err() error {
	return rs.err
}

// Record returns the values read so far.
func (rs *Sample) Record() dataset.Record {
	return rs.obtainedValues
}

func (rs *Sample) read(name string) (float64, error) {
	f, ok := rs.features[name]
	if !ok {
		return 0, fmt.Errorf("have no information about feature %s, do not know how to read its value", name)
	}
	err := rs.featureValueRequester.RequestValueFor(f)
	if err != nil {
		return 0, err
	}
	for rs.scanner.Scan() {
		line := rs.scanner.Text()
		value, err := f.Encode(line)
		if err == nil {
			return value, nil
		}
		err = rs.featureValueRequester.RejectValueFor(f, line)
		if err != nil {
			return 0, err
		}
	}
	if err = rs.scanner.Err(); err != nil {
		return 0, err
	}
	return 0, fmt.Errorf("reading value for feature %s: %w", name, io.ErrUnexpectedEOF)
}
