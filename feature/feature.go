package feature

import (
	"fmt"
	"math"
	"strconv"
)

/*
UndefinedValue is the conventional marker for a missing value in
input data. Samples are required to define every feature, so it is
always rejected.
*/
const UndefinedValue = "?"

/*
Feature represents a named property that can be observed on a sample.

Its Encode method parses a raw value into the float64 used to compare
samples on the feature, and Decode returns the raw representation of
an encoded value.
*/
type Feature interface {
	Name() string
	Encode(string) (float64, error)
	Decode(float64) string
}

/*
DiscreteFeature represents a property that can be observed and that can only
take a value among a finite set. Values are encoded as their position
in that set, so the order of declaration is the order of comparison.
*/
type DiscreteFeature struct {
	name            string
	availableValues []string
}

/*
ContinuousFeature represents a property that can be observed and that can take
a numeric value
*/
type ContinuousFeature struct {
	name string
}

/*
NewDiscreteFeature takes a name string and a slice of available value strings
and returns a discrete feature with the given names and available values.
*/
func NewDiscreteFeature(name string, availableValues []string) *DiscreteFeature {
	return &DiscreteFeature{name, availableValues}
}

/*
NewContinuousFeature takes a name string and returns a continuous feature with
the given name.
*/
func NewContinuousFeature(name string) *ContinuousFeature {
	return &ContinuousFeature{name}
}

/*
Name returns a string with the name of the feature
*/
func (df *DiscreteFeature) Name() string {
	return df.name
}

/*
Encode receives a raw value and returns its position among the
available values of the feature, or an error if it is not one of them.
*/
func (df *DiscreteFeature) Encode(value string) (float64, error) {
	for i, av := range df.availableValues {
		if av == value {
			return float64(i), nil
		}
	}
	return 0, fmt.Errorf("discrete feature %s got unknown value %q", df.Name(), value)
}

/*
Decode receives an encoded value and returns the available value at
that position, or an empty string if there is none.
*/
func (df *DiscreteFeature) Decode(value float64) string {
	i := int(value)
	if float64(i) != value || i < 0 || i >= len(df.availableValues) {
		return ""
	}
	return df.availableValues[i]
}

/*
AvailableValues returns a string slice with the values available for the feature
*/
func (df *DiscreteFeature) AvailableValues() []string {
	return df.availableValues
}

func (df *DiscreteFeature) String() string {
	return df.name
}

/*
Name returns a string with the name of the feature
*/
func (cf *ContinuousFeature) Name() string {
	return cf.name
}

/*
Encode receives a raw value and returns it parsed as a float64. Values
that are not finite real numbers are rejected with an error.
*/
func (cf *ContinuousFeature) Encode(value string) (float64, error) {
	if value == UndefinedValue {
		return 0, fmt.Errorf("continuous feature %s has undefined value", cf.Name())
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("continuous feature %s: %w", cf.Name(), err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("continuous feature %s expects a finite number, got %v", cf.Name(), f)
	}
	return f, nil
}

// Decode formats the value with the minimum precision that parses back to it.
func (cf *ContinuousFeature) Decode(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

func (cf *ContinuousFeature) String() string {
	return cf.name
}
