package bonsai

import "errors"

// InputError represents an error caused by the data a
// tree is asked to be grown from.
type InputError string

const (
	// ErrEmptyTrainingSet is returned when growing a tree from a
	// dataset without samples.
	ErrEmptyTrainingSet = InputError("cannot grow a tree from an empty training set")
	// ErrNoCandidates is returned when a node whose samples have
	// different labels cannot be split because no feature indices
	// are available.
	ErrNoCandidates = InputError("no split candidates for an impure set of samples")
)

func (ie InputError) Error() string {
	return string(ie)
}

// IsInvalidInput returns whether the given error, or any error
// it wraps, is an InputError.
func IsInvalidInput(err error) bool {
	var ie InputError
	return errors.As(err, &ie)
}
