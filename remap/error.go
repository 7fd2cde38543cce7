package remap

import (
	"errors"
	"fmt"
)

var (
	ErrUnrecognizedOperator = errors.New("unrecognized operator")
	ErrMalformedValue       = errors.New("malformed value")
	ErrBandCountMismatch    = errors.New("reference raster has too few bands")
	ErrArity                = errors.New("list length mismatch")
)

// UnrecognizedOperatorError names an operator token that is none of > < <= >= == != or their aliases.
type UnrecognizedOperatorError struct {
	Token string
}

func (e *UnrecognizedOperatorError) Error() string {
	return fmt.Sprintf("operator input not understood: %q", e.Token)
}

func (e *UnrecognizedOperatorError) Is(target error) bool {
	return target == ErrUnrecognizedOperator
}

// MalformedValueError names a threshold or output value that is not a number.
type MalformedValueError struct {
	Kind  string // "threshold" or "output value"
	Token string
	Err   error
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("malformed %s %q", e.Kind, e.Token)
}

func (e *MalformedValueError) Is(target error) bool {
	return target == ErrMalformedValue
}

func (e *MalformedValueError) Unwrap() error {
	return e.Err
}

// BandCountMismatchError is raised when band Band of the target needs the same
// band of a per-band reference raster that only has Have bands.
type BandCountMismatchError struct {
	Band int
	Have int
}

func (e *BandCountMismatchError) Error() string {
	return fmt.Sprintf("reference raster has %d bands, band %d requested", e.Have, e.Band)
}

func (e *BandCountMismatchError) Is(target error) bool {
	return target == ErrBandCountMismatch
}

// ArityError reports parallel lists of different lengths.
type ArityError struct {
	What   string
	Counts []int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: lengths %v differ", e.What, e.Counts)
}

func (e *ArityError) Is(target error) bool {
	return target == ErrArity
}
